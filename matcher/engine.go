package matcher

import (
	"fmt"
	"strings"

	"github.com/josexy/hosts-whitelist/rule"
	"github.com/josexy/hosts-whitelist/util/hostsutil"
)

const (
	None Category = iota
	Empty
	Strict
	Present
	Ends
	Regex
)

// Category names the bucket that decided a line.
type Category uint8

func (c Category) String() string {
	switch c {
	case Empty:
		return "empty"
	case Strict:
		return "strict"
	case Present:
		return "present"
	case Ends:
		return "ends"
	case Regex:
		return "regex"
	default:
		return "none"
	}
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type Verdict struct {
	// Line is the candidate exactly as given.
	Line        string   `json:"line"`
	Subject     string   `json:"subject,omitempty"`
	Whitelisted bool     `json:"whitelisted"`
	By          Category `json:"by"`
}

// Subject extracts what is matched from a candidate line: the last
// whitespace separated token, or the host of that token when it is a URL.
func Subject(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	token := fields[len(fields)-1]
	if host, ok := hostsutil.URLBase(token); ok {
		return host
	}
	return token
}

// Check decides whether line is whitelisted. Buckets are consulted in the
// order strict, present, ends, regex and the first hit wins. A blank line is
// always whitelisted.
func (idx *Index) Check(line string) (Verdict, error) {
	v := Verdict{Line: line}
	subject := Subject(line)
	if subject == "" {
		v.Whitelisted, v.By = true, Empty
		return v, nil
	}
	v.Subject = subject

	bare := rule.Bare(subject)
	head := rule.HeadKey(bare)
	if idx.filter == nil || idx.filter.TestString(subject) {
		if idx.strict[head].contains(subject) {
			v.Whitelisted, v.By = true, Strict
			return v, nil
		}
		if idx.present[head].contains(subject) {
			v.Whitelisted, v.By = true, Present
			return v, nil
		}
	}
	if b := idx.ends[rule.TailKey(bare)]; b != nil {
		for _, pattern := range b.list {
			if strings.HasSuffix(subject, pattern) {
				v.Whitelisted, v.By = true, Ends
				return v, nil
			}
		}
	}
	if idx.regex != nil {
		ok, err := idx.regex.MatchString(subject)
		if err != nil {
			return v, fmt.Errorf("regex search %q: %w", subject, err)
		}
		if ok {
			v.Whitelisted, v.By = true, Regex
			return v, nil
		}
	}
	return v, nil
}

// CheckBytes is Check for byte-text candidates.
func (idx *Index) CheckBytes(line []byte) (Verdict, error) {
	return idx.Check(string(line))
}
