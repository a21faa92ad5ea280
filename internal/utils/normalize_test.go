package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNameLower(t *testing.T) {
	assert.Equal(t, "sharma sweets", NormalizeNameLower("  Sharma   Sweets "))
	assert.Equal(t, "", NormalizeNameLower("   "))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "sharma-sweets", Slugify("Sharma Sweets"))
	assert.Equal(t, "cafe-dosa", Slugify("Café Dosa"))
	assert.Equal(t, "a-b-c", Slugify("a_b - c"))
	assert.Equal(t, "", Slugify("!!!"))
	assert.Equal(t, "", Slugify(""))
}

func TestKeywordsFromName(t *testing.T) {
	kw := KeywordsFromName("sharma sweets", "sharma-sweets")
	assert.Contains(t, kw, "sharma")
	assert.Contains(t, kw, "sweets")
	assert.Contains(t, kw, "sharma sweets")
	assert.Contains(t, kw, "sharma-sweets")

	// no duplicates
	seen := map[string]bool{}
	for _, k := range kw {
		assert.False(t, seen[k], "duplicate keyword %q", k)
		seen[k] = true
	}

	assert.Nil(t, KeywordsFromName("", ""))
}

func TestTrimMax(t *testing.T) {
	assert.Equal(t, "abc", TrimMax("  abc  ", 10))
	assert.Equal(t, "ab", TrimMax("abcdef", 2))
}

func TestParseTime(t *testing.T) {
	for _, s := range []string{
		"2025-06-15T10:30:00Z",
		"2025-06-15T10:30:00+05:30",
		"2025-06-15T10:30:00",
		"2025-06-15 10:30:00",
		"2025-06-15",
	} {
		_, err := ParseTime(s)
		assert.NoError(t, err, "format %q", s)
	}

	parsed, err := ParseTime("2025-06-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC), parsed)

	_, err = ParseTime("15/06/2025")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}
