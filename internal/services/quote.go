package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/readsphere/readsphere-backend/internal/apierr"
	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/repos"
	"github.com/readsphere/readsphere-backend/internal/types"
)

type QuoteInput struct {
	BookID     *uint  `json:"bookId"`
	UserBookID *uint  `json:"userBookId"`
	Text       string `json:"text"`
	PageNumber int    `json:"pageNumber"`
}

type QuoteService interface {
	Add(ctx context.Context, input QuoteInput) (*types.Quote, error)
	Get(ctx context.Context, id uint) (*types.Quote, error)
	ListByBook(ctx context.Context, bookID uint) ([]types.Quote, error)
	Update(ctx context.Context, id uint, input QuoteInput) (*types.Quote, error)
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, query string, bookID *uint) ([]types.Quote, error)
}

type quoteService struct {
	db           *gorm.DB
	log          *logger.Logger
	quoteRepo    repos.QuoteRepo
	bookRepo     repos.BookRepo
	userBookRepo repos.UserBookRepo
}

func NewQuoteService(db *gorm.DB, baseLog *logger.Logger, quoteRepo repos.QuoteRepo, bookRepo repos.BookRepo, userBookRepo repos.UserBookRepo) QuoteService {
	serviceLog := baseLog.With("service", "QuoteService")
	return &quoteService{db: db, log: serviceLog, quoteRepo: quoteRepo, bookRepo: bookRepo, userBookRepo: userBookRepo}
}

func validateQuoteInput(input QuoteInput) error {
	if strings.TrimSpace(input.Text) == "" {
		return apierr.BadRequest("text_required", fmt.Errorf("Quote text is required"))
	}
	if input.BookID == nil && input.UserBookID == nil {
		return apierr.BadRequest("book_required", fmt.Errorf("Quote must reference a book"))
	}
	if input.BookID != nil && input.UserBookID != nil {
		return apierr.BadRequest("ambiguous_book", fmt.Errorf("Quote cannot reference both a book and a shelf entry"))
	}
	if input.PageNumber < 0 {
		return apierr.BadRequest("invalid_page", fmt.Errorf("Page number cannot be negative"))
	}
	return nil
}

func (qs *quoteService) Add(ctx context.Context, input QuoteInput) (*types.Quote, error) {
	if err := validateQuoteInput(input); err != nil {
		return nil, err
	}
	if input.BookID != nil {
		if _, err := qs.bookRepo.GetByID(ctx, nil, *input.BookID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierr.NotFound("book_not_found", fmt.Errorf("Book not found"))
			}
			return nil, fmt.Errorf("load book: %w", err)
		}
	}
	if input.UserBookID != nil {
		if _, err := qs.userBookRepo.GetByID(ctx, nil, *input.UserBookID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierr.NotFound("shelf_entry_not_found", fmt.Errorf("Shelf entry not found"))
			}
			return nil, fmt.Errorf("load shelf entry: %w", err)
		}
	}
	quote := &types.Quote{
		BookID:     input.BookID,
		UserBookID: input.UserBookID,
		Text:       input.Text,
		PageNumber: input.PageNumber,
	}
	if err := qs.quoteRepo.Create(ctx, nil, quote); err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}
	return quote, nil
}

func (qs *quoteService) Get(ctx context.Context, id uint) (*types.Quote, error) {
	quote, err := qs.quoteRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("quote_not_found", fmt.Errorf("Quote not found"))
		}
		return nil, fmt.Errorf("load quote: %w", err)
	}
	return quote, nil
}

func (qs *quoteService) ListByBook(ctx context.Context, bookID uint) ([]types.Quote, error) {
	return qs.quoteRepo.GetByBookID(ctx, nil, bookID)
}

func (qs *quoteService) Update(ctx context.Context, id uint, input QuoteInput) (*types.Quote, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, apierr.BadRequest("text_required", fmt.Errorf("Quote text is required"))
	}
	quote, err := qs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	quote.Text = input.Text
	quote.PageNumber = input.PageNumber
	if err := qs.quoteRepo.Update(ctx, nil, quote); err != nil {
		return nil, fmt.Errorf("update quote: %w", err)
	}
	return quote, nil
}

func (qs *quoteService) Delete(ctx context.Context, id uint) error {
	if _, err := qs.Get(ctx, id); err != nil {
		return err
	}
	return qs.quoteRepo.Delete(ctx, nil, id)
}

func (qs *quoteService) Search(ctx context.Context, query string, bookID *uint) ([]types.Quote, error) {
	return qs.quoteRepo.Search(ctx, nil, query, bookID)
}
