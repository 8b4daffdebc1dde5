package rule

import (
	"strings"
	"unicode/utf8"
)

const (
	Plain Marker = iota
	All
	Regex
	RootZoneDB
)

const (
	wwwPrefix     = "www."
	commentPrefix = "#"

	headKeyLen = 4
	tailKeyLen = 3
)

type (
	Marker uint8

	// Rule is one non-empty, non-comment rule line split into its marker and
	// the text following the marker.
	Rule struct {
		Marker
		Payload string
		Raw     string
	}
)

// markers are checked in this order, the first matching prefix wins.
var markers = []struct {
	Marker
	prefix string
}{
	{All, "ALL "},
	{Regex, "REG "},
	{RootZoneDB, "RZD "},
}

func (m Marker) String() string {
	switch m {
	case All:
		return "ALL"
	case Regex:
		return "REG"
	case RootZoneDB:
		return "RZD"
	default:
		return "PLAIN"
	}
}

// Parse interprets a raw rule line. Empty and comment lines report false.
func Parse(line string) (Rule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, commentPrefix) {
		return Rule{}, false
	}
	for _, m := range markers {
		if payload, ok := strings.CutPrefix(line, m.prefix); ok {
			payload = strings.TrimSpace(payload)
			if payload == "" {
				return Rule{}, false
			}
			return Rule{Marker: m.Marker, Payload: payload, Raw: line}, true
		}
	}
	return Rule{Marker: Plain, Payload: line, Raw: line}, true
}

// ParseBytes is Parse for byte-text input.
func ParseBytes(line []byte) (Rule, bool) {
	return Parse(string(line))
}

// Bare removes one leading "www." from s.
func Bare(s string) string {
	return strings.TrimPrefix(s, wwwPrefix)
}

// HeadKey is the bucket key of exact subjects: the first four characters of
// the bare form. Callers pass the bare form.
func HeadKey(bare string) string {
	i, n := 0, 0
	for i < len(bare) && n < headKeyLen {
		_, size := utf8.DecodeRuneInString(bare[i:])
		i += size
		n++
	}
	return bare[:i]
}

// TailKey is the bucket key of suffix patterns: the last three characters.
func TailKey(s string) string {
	i, n := len(s), 0
	for i > 0 && n < tailKeyLen {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
		n++
	}
	return s[i:]
}
