package rule

import (
	"strings"

	"github.com/josexy/hosts-whitelist/util"
)

// Compiled is what a single rule contributes to the match index.
type Compiled struct {
	// Subjects are exact hostnames for the strict buckets.
	Subjects []string
	// Present holds the root-zone expansion for the present buckets.
	Present []string
	// Suffix is the pattern tested with "candidate ends with".
	Suffix string
	// Fragment is a raw regular expression alternation member.
	Fragment string
}

// Compile interprets the rule. suffixes is only consulted by RootZoneDB
// rules; complement controls the "www." sibling generation.
func (r Rule) Compile(suffixes []string, complement bool) Compiled {
	switch r.Marker {
	case All:
		c := Compiled{Suffix: r.Payload}
		if strings.HasPrefix(r.Payload, ".") && strings.Count(r.Payload, ".") >= 2 {
			c.Subjects = Subjects(r.Payload[1:], complement)
		}
		return c
	case Regex:
		return Compiled{Fragment: r.Payload}
	case RootZoneDB:
		return Compiled{Present: Expand(r.Payload, suffixes, complement)}
	default:
		return Compiled{Subjects: Subjects(r.Payload, complement)}
	}
}

// Subjects returns the exact subjects of a plain hostname. With complements
// it is the bare form and its "www." sibling, otherwise the literal text.
func Subjects(host string, complement bool) []string {
	if !complement {
		return []string{host}
	}
	bare := Bare(host)
	return []string{bare, wwwPrefix + bare}
}

// Expand builds "{name}.{suffix}" for every suffix. A leading "www." is
// stripped before expansion when complements are enabled, and every result
// then gets its "www." sibling.
func Expand(name string, suffixes []string, complement bool) []string {
	if complement {
		name = Bare(name)
	}
	n := len(suffixes)
	if complement {
		n *= 2
	}
	out := make([]string, 0, n)
	for _, suffix := range suffixes {
		fqdn := name + "." + suffix
		out = append(out, fqdn)
		if complement {
			out = append(out, wwwPrefix+fqdn)
		}
	}
	return util.UniqSortFold(out)
}
