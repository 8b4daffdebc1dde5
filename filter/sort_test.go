package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortMode(t *testing.T) {
	for s, want := range map[string]SortMode{
		"":             SortNone,
		"none":         SortNone,
		"standard":     SortStandard,
		"Hierarchical": SortHierarchical,
	} {
		got, err := ParseSortMode(s)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseSortMode("random")
	assert.Error(t, err)
}

func TestStandard(t *testing.T) {
	lines := []string{"b.com", "A.com", "a.com"}
	assert.Equal(t, []string{"A.com", "a.com", "b.com"}, Standard(lines))
	assert.Equal(t, []string{"b.com", "A.com", "a.com"}, lines)
}

func TestHierarchical(t *testing.T) {
	lines := []string{
		"b.example.com",
		"example.org",
		"0.0.0.0 example.com",
		"a.example.co.uk",
		"www.example.com",
		"zeta.com",
	}
	assert.Equal(t, []string{
		"a.example.co.uk",
		"0.0.0.0 example.com",
		"b.example.com",
		"www.example.com",
		"zeta.com",
		"example.org",
	}, Hierarchical(lines))
}

func TestHierarchyKey(t *testing.T) {
	assert.Equal(t, []string{"co.uk", "example", "a"}, hierarchyKey("a.Example.co.uk."))
	assert.Equal(t, []string{"com"}, hierarchyKey("com"))
	assert.Nil(t, hierarchyKey(""))
}
