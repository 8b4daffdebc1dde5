package util

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// SortFold sorts s in place by case-insensitive lexical order, breaking ties
// by the raw bytes so the result is deterministic.
func SortFold(s []string) {
	sort.SliceStable(s, func(i, j int) bool {
		li, lj := strings.ToLower(s[i]), strings.ToLower(s[j])
		if li != lj {
			return li < lj
		}
		return s[i] < s[j]
	})
}

// UniqSortFold returns the distinct values of s sorted with SortFold.
func UniqSortFold(s []string) []string {
	out := lo.Uniq(s)
	SortFold(out)
	return out
}
