package recommendation

import "testing"

func TestNormalizeGenre(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "blank", raw: "", want: ""},
		{name: "whitespace_only", raw: "   ", want: ""},
		{name: "psychological_thriller", raw: "Psychological Thriller", want: "Mystery"},
		{name: "psychology_typo", raw: "pscological", want: "Mystery"},
		{name: "fantasy", raw: "fantasy", want: "Fantasy"},
		{name: "fantasy_typo", raw: "fanasy", want: "Fantasy"},
		{name: "fantastical", raw: "Fantastical Fiction", want: "Fantasy"},
		{name: "scifi_hyphen", raw: "sci-fi", want: "Sci-Fi"},
		{name: "scifi_space", raw: "Sci fi", want: "Sci-Fi"},
		{name: "science_fiction_upper", raw: "SCIENCE FICTION", want: "Sci-Fi"},
		{name: "self_help_hyphen", raw: "self-help", want: "Self-Help"},
		{name: "self_help_space", raw: "Self Help Books", want: "Self-Help"},
		{name: "unmapped_upper", raw: "HORROR", want: "Horror"},
		{name: "unmapped_lower", raw: "romance", want: "Romance"},
		{name: "unmapped_padded", raw: "  thriller  ", want: "Thriller"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeGenre(tc.raw)
			if got != tc.want {
				t.Fatalf("NormalizeGenre(%q)=%q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestNormalizeGenreIdempotent(t *testing.T) {
	inputs := []string{
		"", "Psychological Thriller", "fanasy", "Sci fi", "self help",
		"HORROR", "romance", "Mystery", "Fantasy", "Sci-Fi", "Self-Help",
	}
	for _, raw := range inputs {
		once := NormalizeGenre(raw)
		twice := NormalizeGenre(once)
		if once != twice {
			t.Fatalf("NormalizeGenre not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}
