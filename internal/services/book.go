package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/readsphere/readsphere-backend/internal/apierr"
	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/repos"
	"github.com/readsphere/readsphere-backend/internal/types"
)

type BookInput struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	Genre      string `json:"genre"`
	TotalPages int    `json:"totalPages"`
	PagesRead  int    `json:"pagesRead"`
	Status     string `json:"status"`
	Rating     *int   `json:"rating"`
	CoverURL   string `json:"coverUrl"`
}

type BookService interface {
	Add(ctx context.Context, userID uint, input BookInput) (*types.Book, error)
	Get(ctx context.Context, id uint) (*types.Book, error)
	ListByUser(ctx context.Context, userID uint) ([]types.Book, error)
	Update(ctx context.Context, id uint, input BookInput) (*types.Book, error)
	Delete(ctx context.Context, id uint) error
	// UpdateProgress moves the page cursor, appends a reading-log row for
	// the delta and flips the status to Read when the book completes.
	UpdateProgress(ctx context.Context, id uint, pagesRead int) (*types.Book, error)
	Search(ctx context.Context, userID uint, query string) ([]types.Book, error)
	FilterByStatus(ctx context.Context, userID uint, status string) ([]types.Book, error)
}

type bookService struct {
	db             *gorm.DB
	log            *logger.Logger
	bookRepo       repos.BookRepo
	userRepo       repos.UserRepo
	readingLogRepo repos.ReadingLogRepo
}

func NewBookService(
	db *gorm.DB,
	baseLog *logger.Logger,
	bookRepo repos.BookRepo,
	userRepo repos.UserRepo,
	readingLogRepo repos.ReadingLogRepo,
) BookService {
	serviceLog := baseLog.With("service", "BookService")
	return &bookService{
		db:             db,
		log:            serviceLog,
		bookRepo:       bookRepo,
		userRepo:       userRepo,
		readingLogRepo: readingLogRepo,
	}
}

func validateBookInput(input BookInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return apierr.BadRequest("title_required", fmt.Errorf("Title is required"))
	}
	if input.TotalPages < 0 || input.PagesRead < 0 {
		return apierr.BadRequest("invalid_pages", fmt.Errorf("Page counts cannot be negative"))
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return apierr.BadRequest("invalid_rating", fmt.Errorf("Rating must be between 1 and 5"))
	}
	return nil
}

func (bs *bookService) Add(ctx context.Context, userID uint, input BookInput) (*types.Book, error) {
	if err := validateBookInput(input); err != nil {
		return nil, err
	}
	if _, err := bs.userRepo.GetByID(ctx, nil, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("user_not_found", fmt.Errorf("User not found"))
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	book := &types.Book{
		UserID:     userID,
		Title:      input.Title,
		Author:     input.Author,
		Genre:      input.Genre,
		TotalPages: input.TotalPages,
		PagesRead:  input.PagesRead,
		Status:     input.Status,
		Rating:     input.Rating,
		CoverURL:   input.CoverURL,
	}
	if err := bs.bookRepo.Create(ctx, nil, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return book, nil
}

func (bs *bookService) Get(ctx context.Context, id uint) (*types.Book, error) {
	book, err := bs.bookRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("book_not_found", fmt.Errorf("Book not found"))
		}
		return nil, fmt.Errorf("load book: %w", err)
	}
	return book, nil
}

func (bs *bookService) ListByUser(ctx context.Context, userID uint) ([]types.Book, error) {
	return bs.bookRepo.GetByUserID(ctx, nil, userID)
}

func (bs *bookService) Update(ctx context.Context, id uint, input BookInput) (*types.Book, error) {
	if err := validateBookInput(input); err != nil {
		return nil, err
	}
	book, err := bs.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	book.Title = input.Title
	book.Author = input.Author
	book.Genre = input.Genre
	book.TotalPages = input.TotalPages
	book.PagesRead = input.PagesRead
	book.Status = input.Status
	book.Rating = input.Rating
	if input.CoverURL != "" {
		book.CoverURL = input.CoverURL
	}
	if err := bs.bookRepo.Update(ctx, nil, book); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}
	return book, nil
}

func (bs *bookService) Delete(ctx context.Context, id uint) error {
	if _, err := bs.Get(ctx, id); err != nil {
		return err
	}
	return bs.bookRepo.Delete(ctx, nil, id)
}

func (bs *bookService) UpdateProgress(ctx context.Context, id uint, pagesRead int) (*types.Book, error) {
	if pagesRead < 0 {
		return nil, apierr.BadRequest("invalid_pages", fmt.Errorf("pagesRead cannot be negative"))
	}
	book, err := bs.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if book.TotalPages > 0 && pagesRead > book.TotalPages {
		pagesRead = book.TotalPages
	}
	delta := pagesRead - book.PagesRead
	book.PagesRead = pagesRead
	if book.TotalPages > 0 && pagesRead >= book.TotalPages {
		book.Status = "Read"
	}
	if err := bs.bookRepo.Update(ctx, nil, book); err != nil {
		return nil, fmt.Errorf("update progress: %w", err)
	}

	if delta > 0 {
		entry := &types.ReadingLog{
			UserID: book.UserID,
			BookID: book.ID,
			Pages:  delta,
			Date:   time.Now(),
		}
		if err := bs.readingLogRepo.Create(ctx, nil, entry); err != nil {
			// The progress update already landed; a missing log row only
			// affects the timeline.
			bs.log.Warn("reading log append failed", "book_id", book.ID, "error", err)
		}
	}
	return book, nil
}

func (bs *bookService) Search(ctx context.Context, userID uint, query string) ([]types.Book, error) {
	if strings.TrimSpace(query) == "" {
		return bs.bookRepo.GetByUserID(ctx, nil, userID)
	}
	return bs.bookRepo.SearchByUser(ctx, nil, userID, query)
}

func (bs *bookService) FilterByStatus(ctx context.Context, userID uint, status string) ([]types.Book, error) {
	return bs.bookRepo.FilterByStatus(ctx, nil, userID, status)
}
