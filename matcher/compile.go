package matcher

import (
	"time"

	"github.com/josexy/hosts-whitelist/rule"
	"github.com/josexy/hosts-whitelist/statistic"
	"github.com/josexy/hosts-whitelist/suffixdb"
	"github.com/josexy/hosts-whitelist/util"
	"github.com/josexy/hosts-whitelist/util/logger"
	"github.com/josexy/logx"
)

// Effective subtracts the anti-rules from the rules, comparing raw lines
// byte for byte. The result is deduplicated and sorted.
func Effective(rules, anti []string) []string {
	cancel := make(map[string]struct{}, len(anti))
	for _, line := range anti {
		cancel[line] = struct{}{}
	}
	out := make([]string, 0, len(rules))
	for _, line := range rules {
		if _, ok := cancel[line]; !ok {
			out = append(out, line)
		}
	}
	return util.UniqSortFold(out)
}

// NeedsSuffixes reports whether any line is an RZD rule, i.e. whether a
// suffix database has to be loaded before compiling.
func NeedsSuffixes(lines []string) bool {
	for _, line := range lines {
		if r, ok := rule.Parse(line); ok && r.Marker == rule.RootZoneDB {
			return true
		}
	}
	return false
}

// Compile builds the index of rules minus anti. db is only required when an
// RZD rule survives the subtraction.
func Compile(rules, anti []string, db *suffixdb.Database, opts ...Option) (*Index, error) {
	start := time.Now()
	lines := Effective(rules, anti)

	b := NewBuilder(db, opts...)
	for _, line := range lines {
		if err := b.AddLine(line); err != nil {
			return nil, err
		}
	}
	idx, err := b.Build()
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	stats := idx.Stats()
	statistic.ObserveCompile(elapsed, stats.Entries())
	logger.Logger.Debug("rules compiled",
		logx.Int("rules", len(rules)),
		logx.Int("anti", len(anti)),
		logx.Int("effective", len(lines)),
		logx.Int("strict", stats.StrictEntries),
		logx.Int("present", stats.PresentEntries),
		logx.Int("ends", stats.EndsEntries),
		logx.Int("regex", stats.Fragments),
		logx.String("elapsed", elapsed.String()),
	)
	return idx, nil
}
