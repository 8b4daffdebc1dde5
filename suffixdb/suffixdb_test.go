package suffixdb

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	rootZone     map[string]any
	publicSuffix map[string][]string
	err          error
}

func (s staticSource) RootZone(context.Context) (map[string]any, error) {
	return s.rootZone, s.err
}

func (s staticSource) PublicSuffix(context.Context) (map[string][]string, error) {
	return s.publicSuffix, nil
}

func TestNew(t *testing.T) {
	db := New(
		map[string]any{"com": []string{"whois.verisign-grs.com"}, "org": nil, "uk": nil},
		map[string][]string{
			"uk":  {"co.uk", "org.uk"},
			"com": {"com"},
			"km":  {"km", "com.km"},
		},
	)
	assert.Equal(t, []string{"co.uk", "com", "com.km", "km", "org", "org.uk", "uk"}, db.List())
	assert.Equal(t, 7, db.Len())
}

func TestRegexForm(t *testing.T) {
	db := FromList([]string{"org", "co.uk", "com", ""})
	assert.Equal(t, `(?:\.(?:co\.uk|com|org))`, db.RegexForm())

	re := regexp.MustCompile(`^example` + db.RegexForm() + `$`)
	assert.True(t, re.MatchString("example.co.uk"))
	assert.True(t, re.MatchString("example.org"))
	assert.False(t, re.MatchString("example.coXuk"))
	assert.False(t, re.MatchString("example.de"))
}

func TestNilDatabase(t *testing.T) {
	var db *Database
	assert.Equal(t, 0, db.Len())
	assert.Nil(t, db.List())
}

func TestListIsCopy(t *testing.T) {
	db := FromList([]string{"com", "org"})
	l := db.List()
	l[0] = "changed"
	assert.Equal(t, []string{"com", "org"}, db.List())
}

func TestLoad(t *testing.T) {
	db, err := Load(context.Background(), staticSource{
		rootZone:     map[string]any{"de": nil, "fr": nil},
		publicSuffix: map[string][]string{"fr": {"fr", "asso.fr"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"asso.fr", "de", "fr"}, db.List())
}

func TestLoadError(t *testing.T) {
	fetchErr := errors.New("connection refused")
	db, err := Load(context.Background(), staticSource{err: fetchErr})
	assert.Nil(t, db)
	assert.ErrorIs(t, err, fetchErr)
}
