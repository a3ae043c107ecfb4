package recommendation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/readsphere/readsphere-backend/internal/types"
)

const libraryTopGenreCount = 2

// RecommendFromLibrary is the personal-library variant: the candidate pool is
// the user's own not-yet-finished books, so there is nothing to query and no
// owned-set to exclude. Genres match case-insensitively on the stored label;
// this predates the catalog normalizer and keeps its original matching.
func RecommendFromLibrary(books []types.Book) []Item {
	if len(books) == 0 {
		return []Item{}
	}

	var readBooks []types.Book
	for _, b := range books {
		if ParseReadStatus(b.Status) == StatusRead {
			readBooks = append(readBooks, b)
		}
	}

	genreCount := make(map[string]int)
	for _, b := range readBooks {
		if strings.TrimSpace(b.Genre) == "" {
			continue
		}
		genreCount[strings.ToLower(b.Genre)]++
	}

	selected := make(map[uint]bool, MaxResults)
	items := make([]Item, 0, MaxResults)
	add := func(b types.Book, reason string, strategy Strategy) {
		if len(items) >= MaxResults || selected[b.ID] {
			return
		}
		selected[b.ID] = true
		items = append(items, libraryItem(b, reason, strategy))
	}

	for _, genre := range topCountedGenres(genreCount, libraryTopGenreCount) {
		display := displayGenre(books, genre)
		for _, b := range unreadByRating(books, genre, 0) {
			add(b, "Top genre: "+display, StrategyGenre)
		}
	}

	for _, favorite := range readBooks {
		rating := 0
		if favorite.Rating != nil {
			rating = *favorite.Rating
		}
		if rating < lovedMinRating || strings.TrimSpace(favorite.Genre) == "" {
			continue
		}
		reason := fmt.Sprintf("Because you rated %q %d stars", favorite.Title, rating)
		for _, b := range unreadByRating(books, strings.ToLower(favorite.Genre), favorite.ID) {
			add(b, reason, StrategyRating)
		}
	}

	if len(items) == 0 {
		for _, b := range unreadByRating(books, "", 0) {
			add(b, "Unread in your library", StrategyFallback)
		}
	}

	return items
}

func libraryItem(b types.Book, reason string, strategy Strategy) Item {
	total := b.TotalPages
	return Item{
		BookID:     b.ID,
		Title:      b.Title,
		Author:     b.Author,
		Genre:      b.Genre,
		Rating:     b.Rating,
		CoverURL:   b.CoverURL,
		Status:     b.Status,
		TotalPages: &total,
		PagesRead:  b.PagesRead,
		Reason:     reason,
		Strategy:   strategy,
	}
}

// topCountedGenres ranks lowercased genre labels by read count, ties
// alphabetical, same determinism rule as the catalog engine.
func topCountedGenres(counts map[string]int, n int) []string {
	type genreCount struct {
		genre string
		count int
	}
	ranked := make([]genreCount, 0, len(counts))
	for g, c := range counts {
		ranked = append(ranked, genreCount{genre: g, count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].genre < ranked[j].genre
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	top := make([]string, 0, n)
	for _, gc := range ranked[:n] {
		top = append(top, gc.genre)
	}
	return top
}

// unreadByRating returns the not-READ books matching the lowercased genre
// (all genres when empty), excluding excludeID, best-rated first. Stable, so
// equally rated books keep their stored order.
func unreadByRating(books []types.Book, genre string, excludeID uint) []types.Book {
	var out []types.Book
	for _, b := range books {
		if ParseReadStatus(b.Status) == StatusRead {
			continue
		}
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if genre != "" && strings.ToLower(b.Genre) != genre {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return bookRating(out[i]) > bookRating(out[j])
	})
	return out
}

// displayGenre recovers a stored casing for a lowercased genre key.
func displayGenre(books []types.Book, lowered string) string {
	for _, b := range books {
		if strings.ToLower(b.Genre) == lowered {
			return b.Genre
		}
	}
	return lowered
}

func bookRating(b types.Book) int {
	if b.Rating == nil {
		return 0
	}
	return *b.Rating
}
