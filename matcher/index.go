package matcher

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/dlclark/regexp2"
)

// Index is the compiled, read-only rule set. It is safe for concurrent use.
type Index struct {
	strict  buckets
	present buckets
	ends    buckets
	lines   int

	regex     *regexp2.Regexp
	pattern   string
	fragments int

	// filter is nil for small indexes
	filter *bloom.BloomFilter
}

type Stats struct {
	Lines          int  `json:"lines"`
	StrictBuckets  int  `json:"strict_buckets"`
	StrictEntries  int  `json:"strict_entries"`
	PresentBuckets int  `json:"present_buckets"`
	PresentEntries int  `json:"present_entries"`
	EndsBuckets    int  `json:"ends_buckets"`
	EndsEntries    int  `json:"ends_entries"`
	Fragments      int  `json:"regex_fragments"`
	Bloom          bool `json:"bloom"`
}

// Entries returns the entry counts keyed by kind.
func (s Stats) Entries() map[string]int {
	return map[string]int{
		"strict":  s.StrictEntries,
		"present": s.PresentEntries,
		"ends":    s.EndsEntries,
		"regex":   s.Fragments,
	}
}

func (idx *Index) Stats() Stats {
	if idx == nil {
		return Stats{}
	}
	return Stats{
		Lines:          idx.lines,
		StrictBuckets:  len(idx.strict),
		StrictEntries:  idx.strict.entries(),
		PresentBuckets: len(idx.present),
		PresentEntries: idx.present.entries(),
		EndsBuckets:    len(idx.ends),
		EndsEntries:    idx.ends.entries(),
		Fragments:      idx.fragments,
		Bloom:          idx.filter != nil,
	}
}

// Empty reports whether the index was built from no line at all. A rule set
// of only comments or blank lines is not empty.
func (idx *Index) Empty() bool {
	return idx == nil || idx.lines == 0
}

// Strict returns a copy of the exact subject buckets.
func (idx *Index) Strict() map[string][]string { return idx.strict.snapshot() }

// Present returns a copy of the root-zone expansion buckets.
func (idx *Index) Present() map[string][]string { return idx.present.snapshot() }

// Ends returns a copy of the suffix pattern buckets.
func (idx *Index) Ends() map[string][]string { return idx.ends.snapshot() }

// Pattern is the combined regex source, empty without REG rules.
func (idx *Index) Pattern() string { return idx.pattern }
