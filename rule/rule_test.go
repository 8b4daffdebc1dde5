package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line    string
		ok      bool
		marker  Marker
		payload string
	}{
		{"", false, Plain, ""},
		{"   ", false, Plain, ""},
		{"# comment", false, Plain, ""},
		{"  #ALL .com", false, Plain, ""},
		{"example.com", true, Plain, "example.com"},
		{"  www.example.com \n", true, Plain, "www.example.com"},
		{"ALL .com", true, All, ".com"},
		{"REG ^ad[0-9]+\\.", true, Regex, "^ad[0-9]+\\."},
		{"RZD example", true, RootZoneDB, "example"},
		{"ALL REG x", true, All, "REG x"},
		{"REG ALL x", true, Regex, "ALL x"},
		{"all .com", true, Plain, "all .com"},
		{"ALL", true, Plain, "ALL"},
	}
	for _, tt := range tests {
		r, ok := Parse(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		if !ok {
			continue
		}
		assert.Equal(t, tt.marker, r.Marker, tt.line)
		assert.Equal(t, tt.payload, r.Payload, tt.line)
	}
}

func TestParseBytes(t *testing.T) {
	r, ok := ParseBytes([]byte("RZD example\r\n"))
	assert.True(t, ok)
	assert.Equal(t, RootZoneDB, r.Marker)
	assert.Equal(t, "RZD example", r.Raw)
}

func TestMarkerString(t *testing.T) {
	assert.Equal(t, "ALL", All.String())
	assert.Equal(t, "REG", Regex.String())
	assert.Equal(t, "RZD", RootZoneDB.String())
	assert.Equal(t, "PLAIN", Plain.String())
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "exam", HeadKey("example.com"))
	assert.Equal(t, "exam", HeadKey(Bare("www.example.com")))
	assert.Equal(t, "www.", HeadKey(Bare("www.www.example.com")))
	assert.Equal(t, "ab", HeadKey("ab"))
	assert.Equal(t, "schö", HeadKey("schön.de"))
	assert.Equal(t, "com", TailKey(".example.com"))
	assert.Equal(t, "om", TailKey("om"))
	assert.Equal(t, "ön", TailKey("ön"))
	assert.Equal(t, "hön", TailKey("schön"))
}

func TestCompilePlain(t *testing.T) {
	r, _ := Parse("www.example.com")
	assert.Equal(t, []string{"example.com", "www.example.com"}, r.Compile(nil, true).Subjects)
	assert.Equal(t, []string{"www.example.com"}, r.Compile(nil, false).Subjects)

	r, _ = Parse("example.com")
	assert.Equal(t, []string{"example.com"}, r.Compile(nil, false).Subjects)
}

func TestCompileAll(t *testing.T) {
	r, _ := Parse("ALL .com")
	c := r.Compile(nil, true)
	assert.Equal(t, ".com", c.Suffix)
	assert.Empty(t, c.Subjects)

	r, _ = Parse("ALL .example.co.uk")
	c = r.Compile(nil, true)
	assert.Equal(t, ".example.co.uk", c.Suffix)
	assert.Equal(t, []string{"example.co.uk", "www.example.co.uk"}, c.Subjects)

	r, _ = Parse("ALL example.com")
	c = r.Compile(nil, true)
	assert.Equal(t, "example.com", c.Suffix)
	assert.Empty(t, c.Subjects)
}

func TestCompileRegex(t *testing.T) {
	r, _ := Parse("REG ^(ad|ads)\\.")
	c := r.Compile(nil, true)
	assert.Equal(t, "^(ad|ads)\\.", c.Fragment)
	assert.Empty(t, c.Subjects)
	assert.Empty(t, c.Suffix)
}

func TestCompileRootZoneDB(t *testing.T) {
	suffixes := []string{"com", "org"}

	r, _ := Parse("RZD example")
	assert.Equal(t,
		[]string{"example.com", "example.org", "www.example.com", "www.example.org"},
		r.Compile(suffixes, true).Present)
	assert.Equal(t, []string{"example.com", "example.org"}, r.Compile(suffixes, false).Present)

	r, _ = Parse("RZD www.example")
	assert.Equal(t,
		[]string{"example.com", "example.org", "www.example.com", "www.example.org"},
		r.Compile(suffixes, true).Present)
	assert.Equal(t, []string{"www.example.com", "www.example.org"}, r.Compile(suffixes, false).Present)

	assert.Empty(t, r.Compile(nil, true).Present)
}
