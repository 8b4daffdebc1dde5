package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/josexy/hosts-whitelist/matcher"
	"github.com/josexy/hosts-whitelist/util"
	"github.com/miekg/dns"
	"golang.org/x/net/publicsuffix"
)

const (
	SortNone SortMode = iota
	SortStandard
	SortHierarchical
)

type SortMode uint8

func (m SortMode) String() string {
	switch m {
	case SortStandard:
		return "standard"
	case SortHierarchical:
		return "hierarchical"
	default:
		return "none"
	}
}

func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return SortNone, nil
	case "standard":
		return SortStandard, nil
	case "hierarchical":
		return SortHierarchical, nil
	}
	return SortNone, fmt.Errorf("unknown sort mode %q", s)
}

func (m SortMode) apply(lines []string) []string {
	switch m {
	case SortStandard:
		return Standard(lines)
	case SortHierarchical:
		return Hierarchical(lines)
	default:
		return lines
	}
}

// Standard returns a case-insensitive alphabetic copy of lines.
func Standard(lines []string) []string {
	out := append([]string(nil), lines...)
	util.SortFold(out)
	return out
}

// Hierarchical returns a copy of lines grouped by domain: first by public
// suffix, then label by label towards the host, so every subdomain follows
// its parent.
func Hierarchical(lines []string) []string {
	type keyed struct {
		line string
		key  []string
	}
	items := make([]keyed, len(lines))
	for i, line := range lines {
		items[i] = keyed{line: line, key: hierarchyKey(matcher.Subject(line))}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].key, items[j].key
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return strings.ToLower(items[i].line) < strings.ToLower(items[j].line)
	})
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.line
	}
	return out
}

// hierarchyKey turns "a.example.co.uk" into ["co.uk", "example", "a"].
func hierarchyKey(host string) []string {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "" {
		return nil
	}
	labels := dns.SplitDomainName(host)
	suffix, _ := publicsuffix.PublicSuffix(host)
	n := len(dns.SplitDomainName(suffix))
	if n > len(labels) {
		n = len(labels)
	}
	key := make([]string, 0, len(labels)-n+1)
	key = append(key, strings.Join(labels[len(labels)-n:], "."))
	for i := len(labels) - n - 1; i >= 0; i-- {
		key = append(key, labels[i])
	}
	return key
}
