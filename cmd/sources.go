package cmd

import (
	"context"
	"fmt"

	"github.com/josexy/hosts-whitelist/config"
	"github.com/josexy/hosts-whitelist/fetcher"
	"github.com/josexy/hosts-whitelist/matcher"
	"github.com/josexy/hosts-whitelist/suffixdb"
	"github.com/josexy/hosts-whitelist/util/hostsutil"
	"github.com/josexy/hosts-whitelist/util/logger"
)

func newFetcher(cfg *config.Config) *fetcher.Client {
	return fetcher.New(cfg.FetchLinks(), cfg.Fetch.Timeout, cfg.Fetch.UserAgent)
}

// collectRules gathers the rule and anti-rule lines of every configured
// source.
func collectRules(ctx context.Context, client *fetcher.Client, wl *config.WhitelistConfig) (rules, anti []string, err error) {
	if !wl.WithoutCore {
		if rules, err = client.Core(ctx); err != nil {
			return nil, nil, fmt.Errorf("fetch core whitelist: %w", err)
		}
		logger.Logger.Infof("core whitelist: %d lines", len(rules))
	}
	files, err := client.AllLines(ctx, wl.Files)
	if err != nil {
		return nil, nil, fmt.Errorf("read whitelist: %w", err)
	}
	rules = append(append(rules, files...), wl.Rules...)

	if anti, err = client.AllLines(ctx, wl.AntiFiles); err != nil {
		return nil, nil, fmt.Errorf("read anti-whitelist: %w", err)
	}
	anti = append(anti, wl.AntiRules...)
	return rules, anti, nil
}

// buildIndex compiles the configured whitelist. The suffix databases are
// only downloaded when an effective RZD rule needs them.
func buildIndex(ctx context.Context, cfg *config.Config) (*matcher.Index, error) {
	client := newFetcher(cfg)
	rules, anti, err := collectRules(ctx, client, cfg.Whitelist)
	if err != nil {
		return nil, err
	}

	var db *suffixdb.Database
	if matcher.NeedsSuffixes(matcher.Effective(rules, anti)) {
		if db, err = suffixdb.Load(ctx, client); err != nil {
			return nil, err
		}
		logger.Logger.Infof("suffix database: %d suffixes", db.Len())
	}
	return matcher.Compile(rules, anti, db, matcher.WithNoComplement(cfg.Whitelist.NoComplement))
}

func formatLines(lines []string) {
	for i, line := range lines {
		lines[i] = hostsutil.FormatLine(line)
	}
}
