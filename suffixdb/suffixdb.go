// Package suffixdb prepares the root-zone and public-suffix enumerations
// used to expand RZD rules.
package suffixdb

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/josexy/hosts-whitelist/util"
	"github.com/josexy/hosts-whitelist/util/logger"
	"github.com/josexy/logx"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Source provides the two decoded JSON databases.
type Source interface {
	// RootZone returns a mapping whose keys are the root-zone TLDs.
	RootZone(ctx context.Context) (map[string]any, error)
	// PublicSuffix returns a mapping whose values are lists of suffixes.
	PublicSuffix(ctx context.Context) (map[string][]string, error)
}

// Database is a sorted, deduplicated set of suffixes. It is never modified
// after construction.
type Database struct {
	suffixes []string
}

// New combines the root-zone keys with every public suffix.
func New(rootZone map[string]any, publicSuffix map[string][]string) *Database {
	all := lo.Keys(rootZone)
	for _, list := range publicSuffix {
		all = append(all, list...)
	}
	return FromList(all)
}

// FromList builds a Database from literal suffixes.
func FromList(suffixes []string) *Database {
	suffixes = lo.Filter(suffixes, func(s string, _ int) bool { return s != "" })
	return &Database{suffixes: util.UniqSortFold(suffixes)}
}

// Load fetches both databases concurrently. Any fetch failure is returned
// as is, nothing is substituted.
func Load(ctx context.Context, src Source) (*Database, error) {
	var (
		rootZone     map[string]any
		publicSuffix map[string][]string
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if rootZone, err = src.RootZone(ctx); err != nil {
			return fmt.Errorf("load root zone database: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if publicSuffix, err = src.PublicSuffix(ctx); err != nil {
			return fmt.Errorf("load public suffix database: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	db := New(rootZone, publicSuffix)
	logger.Logger.Debug("suffix database loaded",
		logx.Int("root_zone", len(rootZone)),
		logx.Int("public_suffix", len(publicSuffix)),
		logx.Int("suffixes", db.Len()),
	)
	return db, nil
}

// List returns a copy of the suffixes.
func (d *Database) List() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.suffixes...)
}

func (d *Database) Len() int {
	if d == nil {
		return 0
	}
	return len(d.suffixes)
}

// RegexForm returns `(?:\.(?:suf1|suf2|...))` with every suffix escaped.
func (d *Database) RegexForm() string {
	quoted := make([]string, 0, d.Len())
	for _, s := range d.List() {
		quoted = append(quoted, regexp.QuoteMeta(s))
	}
	return `(?:\.(?:` + strings.Join(quoted, "|") + `))`
}
