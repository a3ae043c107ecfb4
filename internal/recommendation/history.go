package recommendation

import (
	"github.com/readsphere/readsphere-backend/internal/types"
)

// Source tells the profiler which store a history item came from. The two
// stores weight WANT_TO_READ differently (legacy: 0, shelf: 1), so the
// distinction has to survive into the unified sequence.
type Source int

const (
	SourceLibrary Source = iota
	SourceShelf
)

// HistoryItem is the unified view of one reading-history row, produced by
// adapters over the legacy book table and the shelf.
type HistoryItem struct {
	Genre  string
	Status ReadStatus
	Rating int
	Source Source
}

func HistoryFromBooks(books []types.Book) []HistoryItem {
	items := make([]HistoryItem, 0, len(books))
	for _, b := range books {
		rating := 0
		if b.Rating != nil {
			rating = *b.Rating
		}
		items = append(items, HistoryItem{
			Genre:  b.Genre,
			Status: ParseReadStatus(b.Status),
			Rating: rating,
			Source: SourceLibrary,
		})
	}
	return items
}

func HistoryFromShelf(entries []types.UserBook) []HistoryItem {
	items := make([]HistoryItem, 0, len(entries))
	for _, e := range entries {
		rating := 0
		if e.Rating != nil {
			rating = *e.Rating
		}
		items = append(items, HistoryItem{
			Genre:  e.CatalogBook.Genre,
			Status: ParseReadStatus(e.Status),
			Rating: rating,
			Source: SourceShelf,
		})
	}
	return items
}
