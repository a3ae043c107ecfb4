package recommendation

import (
	"strings"
	"unicode"
)

// genreAliases is a small hand-maintained mapping from noisy user-entered
// genre labels (typos included) to the canonical taxonomy. Checked in order,
// first match wins. Extend the table, not the algorithm.
type genreAlias struct {
	equals    []string
	contains  []string
	canonical string
}

var genreAliases = []genreAlias{
	{contains: []string{"psycholog", "pscolog"}, canonical: "Mystery"},
	{contains: []string{"fantas", "fanasy"}, canonical: "Fantasy"},
	{contains: []string{"sci-fi", "sci fi", "science fiction"}, canonical: "Sci-Fi"},
	{equals: []string{"self-help"}, contains: []string{"self help"}, canonical: "Self-Help"},
}

// NormalizeGenre canonicalizes a raw genre label. Blank input yields "",
// meaning no genre signal. Unmapped labels are title-cased on the first
// character only ("HORROR" -> "Horror"). Idempotent.
func NormalizeGenre(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	for _, alias := range genreAliases {
		for _, eq := range alias.equals {
			if lower == eq {
				return alias.canonical
			}
		}
		for _, sub := range alias.contains {
			if strings.Contains(lower, sub) {
				return alias.canonical
			}
		}
	}
	runes := []rune(lower)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
