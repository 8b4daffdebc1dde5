package hostsutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLine(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"", ""},
		{"# schön.com", "# schön.com"},
		{"schön.de", "xn--schn-7qa.de"},
		{"example.com", "example.com"},
		{"0.0.0.0 schön.com # Hello, World!", "0.0.0.0 xn--schn-7qa.com # Hello, World!"},
		{"0.0.0.0\tschön.com", "0.0.0.0\txn--schn-7qa.com"},
		{"127.0.0.1 localhost", "127.0.0.1 localhost"},
		{"::1 schön.com", "::1 xn--schn-7qa.com"},
		{"0.0.0.0 schön.com  bücher.de", "0.0.0.0 xn--schn-7qa.com  xn--bcher-kva.de"},
		{"schön.com#comment with ü", "xn--schn-7qa.com#comment with ü"},
		{"https://bücher.de/x", "https://xn--bcher-kva.de/x"},
		{"0.0.0.0 http://bücher.de:8080/bücher", "0.0.0.0 http://xn--bcher-kva.de:8080/bücher"},
		{"https://example.com/bücher", "https://example.com/bücher"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLine(tt.line), tt.line)
	}
}

func TestURLBase(t *testing.T) {
	host, ok := URLBase("https://www.example.org/path?q=1")
	assert.True(t, ok)
	assert.Equal(t, "www.example.org", host)

	host, ok = URLBase("http://example.com:8080")
	assert.True(t, ok)
	assert.Equal(t, "example.com", host)

	_, ok = URLBase("example.com")
	assert.False(t, ok)

	_, ok = URLBase("file:///etc/hosts")
	assert.False(t, ok)
}

func TestSystemHosts(t *testing.T) {
	lines, err := SystemHosts()
	if err != nil {
		t.Skip(err)
	}
	for _, line := range lines {
		assert.NotEmpty(t, line)
	}
}

func TestParseHosts(t *testing.T) {
	content := []byte("# comment\n" +
		"127.0.0.1 localhost\n" +
		"0.0.0.0 ads.example.com tracker.example.org\n" +
		"::1 ads.example.com\n" +
		"not-an-ip bad.example.com\n")
	lines, err := parseHosts(content, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"0.0.0.0 ads.example.com",
		"::1 ads.example.com",
		"127.0.0.1 localhost",
		"0.0.0.0 tracker.example.org",
	}, lines)

	_, err = parseHosts(nil, errors.New("permission denied"))
	assert.Error(t, err)
}
