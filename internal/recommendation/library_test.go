package recommendation

import (
	"reflect"
	"testing"

	"github.com/readsphere/readsphere-backend/internal/types"
)

func TestRecommendFromLibraryEmpty(t *testing.T) {
	items := RecommendFromLibrary(nil)
	if len(items) != 0 {
		t.Fatalf("items=%v, want empty", items)
	}
}

func TestRecommendFromLibraryTopGenre(t *testing.T) {
	books := []types.Book{
		{ID: 1, Title: "Dune", Genre: "Sci-Fi", Status: "READ", Rating: intPtr(5)},
		{ID: 2, Title: "Foundation", Genre: "Sci-Fi", Status: "READ", Rating: intPtr(4)},
		{ID: 3, Title: "Hyperion", Genre: "Sci-Fi", Status: "Want to Read", Rating: intPtr(3)},
		{ID: 4, Title: "Ubik", Genre: "sci-fi", Status: "In Progress"},
		{ID: 5, Title: "Emma", Genre: "Romance", Status: "READ"},
	}

	items := RecommendFromLibrary(books)

	// Sci-Fi is the top genre (2 reads vs 1); unread Sci-Fi sorted by rating:
	// Hyperion (3) before Ubik (unrated). Dune and Foundation rated >= 4 also
	// trigger the rating strategy over the same pool, which is a no-op.
	if len(items) != 2 {
		t.Fatalf("len=%d items=%+v, want 2", len(items), items)
	}
	wantIDs := []uint{3, 4}
	if !reflect.DeepEqual(itemIDs(items), wantIDs) {
		t.Fatalf("ids=%v, want %v", itemIDs(items), wantIDs)
	}
	for _, it := range items {
		if it.Strategy != StrategyGenre {
			t.Fatalf("strategy=%q, want GENRE", it.Strategy)
		}
		if it.Reason != "Top genre: Sci-Fi" {
			t.Fatalf("reason=%q", it.Reason)
		}
	}
}

func TestRecommendFromLibraryRatingReason(t *testing.T) {
	books := []types.Book{
		{ID: 1, Title: "Dune", Genre: "Sci-Fi", Status: "READ", Rating: intPtr(5)},
		{ID: 2, Title: "Emma", Genre: "Romance", Status: "READ", Rating: intPtr(5)},
		{ID: 3, Title: "Persuasion", Genre: "Romance", Status: "WANT_TO_READ"},
		{ID: 4, Title: "Hyperion", Genre: "Sci-Fi", Status: "WANT_TO_READ"},
	}

	items := RecommendFromLibrary(books)

	// Both genres have one read each; alphabetical tie-break ranks Romance
	// before Sci-Fi, and both unread books arrive via the genre strategy.
	wantIDs := []uint{3, 4}
	if !reflect.DeepEqual(itemIDs(items), wantIDs) {
		t.Fatalf("ids=%v, want %v", itemIDs(items), wantIDs)
	}

	// Drop the genre signal to force the rating strategy.
	solo := []types.Book{
		{ID: 1, Title: "Dune", Genre: "Sci-Fi", Status: "READ", Rating: intPtr(5)},
		{ID: 4, Title: "Hyperion", Genre: "Sci-Fi", Status: "WANT_TO_READ"},
	}
	items = RecommendFromLibrary(solo)
	if len(items) != 1 {
		t.Fatalf("len=%d, want 1", len(items))
	}
	// Genre strategy already claims Hyperion here (Sci-Fi is a top genre), so
	// assert on the genre-first composition instead of pretending otherwise.
	if items[0].Strategy != StrategyGenre {
		t.Fatalf("strategy=%q, want GENRE", items[0].Strategy)
	}
}

func TestRecommendFromLibraryRatingStrategyWhenGenreMisses(t *testing.T) {
	// The favorite's genre never reaches the top-2 genre list because two
	// other genres dominate the read counts but have no unread books.
	books := []types.Book{
		{ID: 1, Genre: "Horror", Status: "READ"},
		{ID: 2, Genre: "Horror", Status: "READ"},
		{ID: 3, Genre: "Mystery", Status: "READ"},
		{ID: 4, Genre: "Mystery", Status: "READ"},
		{ID: 5, Title: "Dune", Genre: "Sci-Fi", Status: "READ", Rating: intPtr(5)},
		{ID: 6, Title: "Hyperion", Genre: "Sci-Fi", Status: "WANT_TO_READ"},
	}

	items := RecommendFromLibrary(books)
	if len(items) != 1 {
		t.Fatalf("len=%d items=%+v, want 1", len(items), items)
	}
	if items[0].BookID != 6 {
		t.Fatalf("id=%d, want 6", items[0].BookID)
	}
	if items[0].Strategy != StrategyRating {
		t.Fatalf("strategy=%q, want RATING", items[0].Strategy)
	}
	if items[0].Reason != `Because you rated "Dune" 5 stars` {
		t.Fatalf("reason=%q", items[0].Reason)
	}
}

func TestRecommendFromLibraryFallback(t *testing.T) {
	books := []types.Book{
		{ID: 1, Title: "Ubik", Status: "WANT_TO_READ", Rating: intPtr(2)},
		{ID: 2, Title: "Emma", Status: "In Progress", Rating: intPtr(4)},
		{ID: 3, Title: "Dune", Status: "WANT_TO_READ"},
	}

	items := RecommendFromLibrary(books)

	// No read books at all: everything unread, best rated first.
	wantIDs := []uint{2, 1, 3}
	if !reflect.DeepEqual(itemIDs(items), wantIDs) {
		t.Fatalf("ids=%v, want %v", itemIDs(items), wantIDs)
	}
	for _, it := range items {
		if it.Strategy != StrategyFallback {
			t.Fatalf("strategy=%q, want FALLBACK", it.Strategy)
		}
		if it.Reason != "Unread in your library" {
			t.Fatalf("reason=%q", it.Reason)
		}
	}
}

func TestRecommendFromLibraryCap(t *testing.T) {
	var books []types.Book
	for i := 1; i <= 15; i++ {
		books = append(books, types.Book{ID: uint(i), Status: "WANT_TO_READ"})
	}
	items := RecommendFromLibrary(books)
	if len(items) != MaxResults {
		t.Fatalf("len=%d, want %d", len(items), MaxResults)
	}
}
