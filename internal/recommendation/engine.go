package recommendation

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/readsphere/readsphere-backend/internal/types"
)

const (
	// MaxResults caps one recommendation response regardless of how many
	// strategies contributed.
	MaxResults = 10

	topGenreCount     = 3
	genreMinRating    = 4.0
	genrePerGenre     = 4
	ratingMinRating   = 4.3
	ratingPerGenre    = 3
	fallbackMinRating = 4.5
)

// CatalogSource supplies ranked candidate queries. Both methods return titles
// ordered by average rating descending.
type CatalogSource interface {
	TopRatedByGenre(ctx context.Context, genre string, minRating float64) ([]types.CatalogBook, error)
	TopRated(ctx context.Context, minRating float64) ([]types.CatalogBook, error)
}

// Item is one recommendation in the response. Not persisted.
type Item struct {
	BookID      uint     `json:"bookId"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Genre       string   `json:"genre"`
	Description string   `json:"description,omitempty"`
	Rating      *int     `json:"rating,omitempty"`
	CoverURL    string   `json:"coverUrl,omitempty"`
	Status      string   `json:"status,omitempty"`
	TotalPages  *int     `json:"totalPages,omitempty"`
	PagesRead   int      `json:"pagesRead"`
	Reason      string   `json:"reason"`
	Strategy    Strategy `json:"strategy"`
}

func catalogItem(b types.CatalogBook, reason string, strategy Strategy) Item {
	var rating *int
	if b.AverageRating != nil {
		r := int(*b.AverageRating)
		rating = &r
	}
	return Item{
		BookID:      b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Genre:       b.Genre,
		Description: b.Description,
		Rating:      rating,
		CoverURL:    b.CoverURL,
		TotalPages:  b.TotalPages,
		Reason:      reason,
		Strategy:    strategy,
	}
}

// RecommendFromCatalog runs the catalog engine: genre strategy, then rating
// strategy, then the popular fallback when neither produced anything. Owned
// titles are never returned and no id appears twice; the first strategy to
// pick an id keeps its reason.
func RecommendFromCatalog(ctx context.Context, profile Profile, owned map[uint]bool, src CatalogSource) ([]Item, error) {
	selected := make(map[uint]bool, MaxResults)
	items := make([]Item, 0, MaxResults)

	take := func(books []types.CatalogBook, perGenre int, reason string, strategy Strategy) {
		taken := 0
		for _, b := range books {
			if len(items) >= MaxResults || taken >= perGenre {
				return
			}
			if owned[b.ID] {
				continue
			}
			// The per-genre budget counts candidates, not additions, so a
			// repeated loved genre re-walks the same slots and is a no-op.
			taken++
			if selected[b.ID] {
				continue
			}
			selected[b.ID] = true
			items = append(items, catalogItem(b, reason, strategy))
		}
	}

	for _, genre := range TopGenres(profile, topGenreCount) {
		if len(items) >= MaxResults {
			break
		}
		books, err := src.TopRatedByGenre(ctx, genre, genreMinRating)
		if err != nil {
			return nil, fmt.Errorf("genre candidates for %q: %w", genre, err)
		}
		take(books, genrePerGenre, fmt.Sprintf("Popular in %s (your favorite genre)", genre), StrategyGenre)
	}

	for _, genre := range profile.LovedGenres {
		if len(items) >= MaxResults {
			break
		}
		books, err := src.TopRatedByGenre(ctx, genre, ratingMinRating)
		if err != nil {
			return nil, fmt.Errorf("rating candidates for %q: %w", genre, err)
		}
		take(books, ratingPerGenre, fmt.Sprintf("Because you loved books in %s", genre), StrategyRating)
	}

	if len(items) == 0 {
		books, err := src.TopRated(ctx, fallbackMinRating)
		if err != nil {
			return nil, fmt.Errorf("fallback candidates: %w", err)
		}
		take(books, MaxResults, "Highly rated across all readers", StrategyPopular)
	}

	return items, nil
}

// Shuffle reorders items in place. Callers pass their own source so tests can
// fix the seed; production seeds from the clock, which is intentionally
// non-reproducible.
func Shuffle(r *rand.Rand, items []Item) {
	if r == nil || len(items) < 2 {
		return
	}
	r.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
