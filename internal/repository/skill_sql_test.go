package repository

import (
	"os"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// normalized_skills() trims with an explicit character list. It has to be the
// same set strings.TrimSpace uses or the SQL and Go keys drift apart.
func TestSkillSpaceCharsMatchTrimSpace(t *testing.T) {
	src, err := os.ReadFile("../../migrations/V4__skill_unicode.sql")
	require.NoError(t, err)

	m := regexp.MustCompile(`(?s)ARRAY\[(.*?)\]`).FindSubmatch(src)
	require.NotNil(t, m)

	got := map[rune]bool{}
	for _, f := range strings.Split(string(m[1]), ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		require.NoError(t, err)
		got[rune(n)] = true
	}

	want := map[rune]bool{}
	for r := rune(0); r <= unicode.MaxRune; r++ {
		if unicode.IsSpace(r) {
			want[r] = true
		}
	}
	assert.Equal(t, want, got)

	assert.Contains(t, string(src), "lower(normalize(btrim(s, skill_space_chars()), NFC))")
}
