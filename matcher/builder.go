package matcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/dlclark/regexp2"
	"github.com/josexy/hosts-whitelist/rule"
	"github.com/josexy/hosts-whitelist/suffixdb"
)

var (
	ErrInvalidRegex     = errors.New("invalid regex fragment")
	ErrNoSuffixDatabase = errors.New("suffix database required by RZD rule")
)

// Builder accumulates compiled rules. Build hands its containers over to an
// Index, after which the Builder starts empty again.
type Builder struct {
	opts     *options
	db       *suffixdb.Database
	suffixes []string

	strict    buckets
	present   buckets
	ends      buckets
	fragments *bucket
	// lines counts every added line, skipped ones included
	lines int
}

// NewBuilder creates a Builder. db may be nil when no RZD rule is added.
func NewBuilder(db *suffixdb.Database, opts ...Option) *Builder {
	b := &Builder{opts: newOptions(opts), db: db, suffixes: db.List()}
	b.reset()
	return b
}

func (b *Builder) reset() {
	b.strict = make(buckets)
	b.present = make(buckets)
	b.ends = make(buckets)
	b.fragments = newBucket()
	b.lines = 0
}

// AddLine parses and adds one raw rule line. Empty and comment lines are
// ignored.
func (b *Builder) AddLine(line string) error {
	b.lines++
	r, ok := rule.Parse(line)
	if !ok {
		return nil
	}
	return b.add(r)
}

func (b *Builder) Add(r rule.Rule) error {
	b.lines++
	return b.add(r)
}

func (b *Builder) add(r rule.Rule) error {
	if r.Marker == rule.RootZoneDB && b.db == nil {
		return fmt.Errorf("%w: %q", ErrNoSuffixDatabase, r.Raw)
	}
	c := r.Compile(b.suffixes, !b.opts.noComplement)
	for _, s := range c.Subjects {
		b.strict.add(rule.HeadKey(rule.Bare(s)), s)
	}
	for _, s := range c.Present {
		b.present.add(rule.HeadKey(rule.Bare(s)), s)
	}
	if c.Suffix != "" {
		b.ends.add(rule.TailKey(c.Suffix), c.Suffix)
	}
	if c.Fragment != "" {
		b.fragments.add(c.Fragment)
	}
	return nil
}

// Build freezes everything added so far into an Index.
func (b *Builder) Build() (*Index, error) {
	idx := &Index{
		strict:  b.strict,
		present: b.present,
		ends:    b.ends,
		lines:   b.lines,
	}
	fragments := b.fragments.list
	b.reset()

	if len(fragments) > 0 {
		idx.pattern = "(" + strings.Join(fragments, "|") + ")"
		re, err := regexp2.Compile(idx.pattern, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRegex, err)
		}
		if b.opts.regexTimeout > 0 {
			re.MatchTimeout = b.opts.regexTimeout
		}
		idx.regex = re
		idx.fragments = len(fragments)
	}

	exact := idx.strict.entries() + idx.present.entries()
	if b.opts.bloomThreshold >= 0 && exact > 0 && exact >= b.opts.bloomThreshold {
		idx.filter = bloom.NewWithEstimates(uint(exact)*4, 1e-4)
		for _, bs := range []buckets{idx.strict, idx.present} {
			for _, bk := range bs {
				for _, s := range bk.list {
					idx.filter.AddString(s)
				}
			}
		}
	}
	return idx, nil
}
