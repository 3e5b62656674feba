package harvest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugifyHyphenatesWhitespace(t *testing.T) {
	require.Equal(t, "มะม่วง", Slugify("  มะม่วง "))
	require.Equal(t, "Mangifera-indica", Slugify("Mangifera indica"))
	require.Equal(t, "a-b-c", Slugify("a \t b\nc"))
}

func TestSlugifyFallsBackToPercentEncoding(t *testing.T) {
	slug := Slugify("   ")
	require.NotEmpty(t, slug)
	require.NotContains(t, slug, " ")
	require.True(t, strings.Contains(slug, "%"), "whitespace-only input should percent-encode")
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"มะม่วง",
		"Mangifera indica",
		"  หญ้า แพรก  ",
		"a \t b\nc",
		" ",
		"\t\n",
		"already-a-slug",
	}
	for _, in := range inputs {
		once := Slugify(in)
		require.NotEmpty(t, once, "input %q", in)
		require.Equal(t, once, Slugify(once), "input %q", in)
	}
}

func TestLetterSet(t *testing.T) {
	set := NewLetterSet([]string{"ก", "ม", ""})
	require.True(t, set.Has('ก'))
	require.True(t, set.Has('ม'))
	require.False(t, set.Has('ข'))
	require.Len(t, set, 2)
}

func TestHasScientificName(t *testing.T) {
	require.False(t, ArticleRecord{ScientificName: NoValue}.HasScientificName())
	require.False(t, ArticleRecord{}.HasScientificName())
	require.True(t, ArticleRecord{ScientificName: "Mangifera indica"}.HasScientificName())
}
