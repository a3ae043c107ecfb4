package recommendation

import (
	"reflect"
	"testing"

	"github.com/readsphere/readsphere-backend/internal/types"
)

func intPtr(v int) *int { return &v }

func TestBuildProfileWeights(t *testing.T) {
	books := []types.Book{
		{ID: 1, Genre: "Fantasy", Status: "READ", Rating: intPtr(5)},
		{ID: 2, Genre: "fantasy", Status: "READ", Rating: intPtr(5)},
		{ID: 3, Genre: "Fantasy", Status: "READ", Rating: intPtr(5)},
		// WANT_TO_READ on a legacy record contributes no weight at all.
		{ID: 4, Genre: "Horror", Status: "WANT_TO_READ"},
	}
	items := HistoryFromBooks(books)
	p := BuildProfile(items)

	if got := p.GenreWeight["Fantasy"]; got != 9 {
		t.Fatalf("Fantasy weight=%d, want 9", got)
	}
	if got := p.GenreWeight["Horror"]; got != 0 {
		t.Fatalf("Horror weight=%d, want 0", got)
	}
	want := []string{"Fantasy", "Fantasy", "Fantasy"}
	if !reflect.DeepEqual(p.LovedGenres, want) {
		t.Fatalf("LovedGenres=%v, want %v", p.LovedGenres, want)
	}
}

func TestBuildProfileShelfWantToReadGetsWeightOne(t *testing.T) {
	shelf := []types.UserBook{
		{ID: 1, CatalogBook: types.CatalogBook{Genre: "Horror"}, Status: "WANT_TO_READ"},
		{ID: 2, CatalogBook: types.CatalogBook{Genre: "Horror"}, Status: "totally unknown"},
		{ID: 3, CatalogBook: types.CatalogBook{Genre: "Horror"}, Status: "READING", Rating: intPtr(4)},
	}
	p := BuildProfile(HistoryFromShelf(shelf))

	// 1 (want) + 1 (unknown falls to the weight-1 bucket) + 3 (reading)
	if got := p.GenreWeight["Horror"]; got != 5 {
		t.Fatalf("Horror weight=%d, want 5", got)
	}
	if !reflect.DeepEqual(p.LovedGenres, []string{"Horror"}) {
		t.Fatalf("LovedGenres=%v, want [Horror]", p.LovedGenres)
	}
}

func TestBuildProfileSkipsBlankGenres(t *testing.T) {
	items := []HistoryItem{
		{Genre: "", Status: StatusRead, Rating: 5, Source: SourceLibrary},
		{Genre: "   ", Status: StatusReading, Rating: 5, Source: SourceShelf},
	}
	p := BuildProfile(items)
	if len(p.GenreWeight) != 0 {
		t.Fatalf("GenreWeight=%v, want empty", p.GenreWeight)
	}
	if len(p.LovedGenres) != 0 {
		t.Fatalf("LovedGenres=%v, want empty", p.LovedGenres)
	}
}

func TestBuildProfileNormalizesGenres(t *testing.T) {
	items := []HistoryItem{
		{Genre: "Psychological Thriller", Status: StatusRead, Rating: 5, Source: SourceLibrary},
		{Genre: "pscological", Status: StatusReading, Source: SourceShelf},
		{Genre: "sci fi", Status: StatusWantToRead, Source: SourceShelf},
	}
	p := BuildProfile(items)
	if got := p.GenreWeight["Mystery"]; got != 6 {
		t.Fatalf("Mystery weight=%d, want 6", got)
	}
	if got := p.GenreWeight["Sci-Fi"]; got != 1 {
		t.Fatalf("Sci-Fi weight=%d, want 1", got)
	}
	if !reflect.DeepEqual(p.LovedGenres, []string{"Mystery"}) {
		t.Fatalf("LovedGenres=%v, want [Mystery]", p.LovedGenres)
	}
}

func TestTopGenres(t *testing.T) {
	cases := []struct {
		name    string
		weights map[string]int
		n       int
		want    []string
	}{
		{
			name:    "orders_by_weight",
			weights: map[string]int{"Fantasy": 9, "Horror": 2, "Mystery": 5},
			n:       3,
			want:    []string{"Fantasy", "Mystery", "Horror"},
		},
		{
			name:    "ties_break_alphabetically",
			weights: map[string]int{"Romance": 3, "Horror": 3, "Fantasy": 3},
			n:       2,
			want:    []string{"Fantasy", "Horror"},
		},
		{
			name:    "n_larger_than_map",
			weights: map[string]int{"Fantasy": 1},
			n:       3,
			want:    []string{"Fantasy"},
		},
		{
			name:    "empty",
			weights: map[string]int{},
			n:       3,
			want:    []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TopGenres(Profile{GenreWeight: tc.weights}, tc.n)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("TopGenres=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestTopGenresDeterministic(t *testing.T) {
	weights := map[string]int{"A": 2, "B": 2, "C": 2, "D": 2, "E": 2}
	first := TopGenres(Profile{GenreWeight: weights}, 3)
	for i := 0; i < 50; i++ {
		again := TopGenres(Profile{GenreWeight: weights}, 3)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("TopGenres unstable: %v vs %v", first, again)
		}
	}
}
