package hostsutil

import (
	"net/netip"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// reserved hosts entries are never rewritten.
var reservedRegexp = regexp.MustCompile(`(localhost|localdomain|local|broadcasthost|0\.0\.0\.0|allhosts|allnodes|allrouters|localnet|loopback|mcastprefix)$`)

// FormatLine converts every hostname column of a hosts or domain list line to
// its IDNA ASCII form. Separators, addresses and the inline comment are kept.
func FormatLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || reservedRegexp.MatchString(trimmed) {
		return line
	}

	sep := " "
	if strings.Contains(line, "\t") {
		sep = "\t"
	}
	body, comment, hasComment := strings.Cut(line, "#")
	columns := strings.Split(body, sep)
	for i, col := range columns {
		columns[i] = formatColumn(col)
	}
	formatted := strings.Join(columns, sep)
	if hasComment {
		formatted += "#" + comment
	}
	return formatted
}

func formatColumn(col string) string {
	word := strings.TrimSpace(col)
	if word == "" || isASCII(word) {
		return col
	}
	if _, err := netip.ParseAddr(word); err == nil {
		return col
	}
	// only the host of a URL column is converted, scheme, port and path stay
	if host, ok := URLBase(word); ok {
		if isASCII(host) {
			return col
		}
		word = host
	}
	ascii, err := idna.Lookup.ToASCII(word)
	if err != nil {
		return col
	}
	return strings.Replace(col, word, ascii, 1)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// URLBase returns the host of a URL shaped token.
func URLBase(token string) (string, bool) {
	if !strings.Contains(token, "://") {
		return "", false
	}
	u, err := url.Parse(token)
	if err != nil || u.Hostname() == "" {
		return "", false
	}
	return u.Hostname(), true
}
