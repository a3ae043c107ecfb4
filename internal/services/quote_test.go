package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/readsphere/readsphere-backend/internal/apierr"
	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/repos"
	"github.com/readsphere/readsphere-backend/internal/types"
)

type stubQuoteRepo struct {
	repos.QuoteRepo
	created *types.Quote
}

func (s *stubQuoteRepo) Create(ctx context.Context, tx *gorm.DB, quote *types.Quote) error {
	quote.ID = 1
	s.created = quote
	return nil
}

func newTestQuoteService(t *testing.T, quoteRepo *stubQuoteRepo) QuoteService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewQuoteService(nil, log, quoteRepo,
		&stubLookupBookRepo{known: map[uint]bool{1: true}},
		&stubLookupShelfRepo{known: map[uint]bool{7: true}})
}

func TestQuoteAddRejectsUnknownShelfEntry(t *testing.T) {
	quoteRepo := &stubQuoteRepo{}
	svc := newTestQuoteService(t, quoteRepo)

	missing := uint(99)
	_, err := svc.Add(context.Background(), QuoteInput{UserBookID: &missing, Text: "opening line", PageNumber: 1})
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Status != 404 {
		t.Fatalf("err=%v, want 404", err)
	}
	if quoteRepo.created != nil {
		t.Fatalf("quote was created despite unknown shelf entry")
	}
}

func TestQuoteAddAcceptsKnownShelfEntry(t *testing.T) {
	quoteRepo := &stubQuoteRepo{}
	svc := newTestQuoteService(t, quoteRepo)

	entryID := uint(7)
	quote, err := svc.Add(context.Background(), QuoteInput{UserBookID: &entryID, Text: "opening line", PageNumber: 1})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if quote.UserBookID == nil || *quote.UserBookID != entryID {
		t.Fatalf("userBookId=%v, want %d", quote.UserBookID, entryID)
	}
}

func TestQuoteAddRejectsUnknownBook(t *testing.T) {
	svc := newTestQuoteService(t, &stubQuoteRepo{})

	missing := uint(42)
	_, err := svc.Add(context.Background(), QuoteInput{BookID: &missing, Text: "opening line"})
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Status != 404 {
		t.Fatalf("err=%v, want 404", err)
	}
}
