package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/readsphere/readsphere-backend/internal/apierr"
	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/recommendation"
	"github.com/readsphere/readsphere-backend/internal/repos"
	"github.com/readsphere/readsphere-backend/internal/types"
)

type ShelfEntryInput struct {
	CatalogBookID uint   `json:"catalogBookId"`
	Status        string `json:"status"`
	PagesRead     *int   `json:"pagesRead"`
	Rating        *int   `json:"rating"`
	CoverURL      string `json:"coverUrl"`
}

type UserBookService interface {
	Add(ctx context.Context, userID uint, input ShelfEntryInput) (*types.UserBook, error)
	Get(ctx context.Context, id uint) (*types.UserBook, error)
	ListByUser(ctx context.Context, userID uint) ([]types.UserBook, error)
	Update(ctx context.Context, id uint, input ShelfEntryInput) (*types.UserBook, error)
	Delete(ctx context.Context, id uint) error
}

type userBookService struct {
	db           *gorm.DB
	log          *logger.Logger
	userBookRepo repos.UserBookRepo
	catalogRepo  repos.CatalogBookRepo
	userRepo     repos.UserRepo
}

func NewUserBookService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userBookRepo repos.UserBookRepo,
	catalogRepo repos.CatalogBookRepo,
	userRepo repos.UserRepo,
) UserBookService {
	serviceLog := baseLog.With("service", "UserBookService")
	return &userBookService{
		db:           db,
		log:          serviceLog,
		userBookRepo: userBookRepo,
		catalogRepo:  catalogRepo,
		userRepo:     userRepo,
	}
}

func (us *userBookService) Add(ctx context.Context, userID uint, input ShelfEntryInput) (*types.UserBook, error) {
	if input.CatalogBookID == 0 {
		return nil, apierr.BadRequest("catalog_book_required", fmt.Errorf("catalogBookId is required"))
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return nil, apierr.BadRequest("invalid_rating", fmt.Errorf("Rating must be between 1 and 5"))
	}
	if _, err := us.userRepo.GetByID(ctx, nil, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("user_not_found", fmt.Errorf("User not found"))
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	exists, err := us.catalogRepo.Exists(ctx, nil, input.CatalogBookID)
	if err != nil {
		return nil, fmt.Errorf("check catalog book: %w", err)
	}
	if !exists {
		return nil, apierr.NotFound("catalog_book_not_found", fmt.Errorf("Catalog book not found"))
	}
	onShelf, err := us.userBookRepo.ExistsForUser(ctx, nil, userID, input.CatalogBookID)
	if err != nil {
		return nil, fmt.Errorf("check shelf: %w", err)
	}
	if onShelf {
		return nil, apierr.Conflict("already_on_shelf", fmt.Errorf("Book is already on this shelf"))
	}

	now := time.Now()
	entry := &types.UserBook{
		UserID:        userID,
		CatalogBookID: input.CatalogBookID,
		Status:        input.Status,
		PagesRead:     input.PagesRead,
		Rating:        input.Rating,
		CoverURL:      input.CoverURL,
		AddedAt:       now,
	}
	applyStatusTimestamps(entry, "", now)
	if err := us.userBookRepo.Create(ctx, nil, entry); err != nil {
		return nil, fmt.Errorf("create shelf entry: %w", err)
	}
	return us.userBookRepo.GetByID(ctx, nil, entry.ID)
}

func (us *userBookService) Get(ctx context.Context, id uint) (*types.UserBook, error) {
	entry, err := us.userBookRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("shelf_entry_not_found", fmt.Errorf("Shelf entry not found"))
		}
		return nil, fmt.Errorf("load shelf entry: %w", err)
	}
	return entry, nil
}

func (us *userBookService) ListByUser(ctx context.Context, userID uint) ([]types.UserBook, error) {
	return us.userBookRepo.GetByUserID(ctx, nil, userID)
}

func (us *userBookService) Update(ctx context.Context, id uint, input ShelfEntryInput) (*types.UserBook, error) {
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return nil, apierr.BadRequest("invalid_rating", fmt.Errorf("Rating must be between 1 and 5"))
	}
	entry, err := us.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previousStatus := entry.Status
	entry.Status = input.Status
	entry.PagesRead = input.PagesRead
	entry.Rating = input.Rating
	if input.CoverURL != "" {
		entry.CoverURL = input.CoverURL
	}
	applyStatusTimestamps(entry, previousStatus, time.Now())
	if err := us.userBookRepo.Update(ctx, nil, entry); err != nil {
		return nil, fmt.Errorf("update shelf entry: %w", err)
	}
	return entry, nil
}

func (us *userBookService) Delete(ctx context.Context, id uint) error {
	if _, err := us.Get(ctx, id); err != nil {
		return err
	}
	return us.userBookRepo.Delete(ctx, nil, id)
}

// applyStatusTimestamps stamps StartedAt on the first transition into
// READING and FinishedAt on the first transition into READ. Existing stamps
// are never overwritten.
func applyStatusTimestamps(entry *types.UserBook, previousStatus string, now time.Time) {
	was := recommendation.ParseReadStatus(previousStatus)
	is := recommendation.ParseReadStatus(entry.Status)
	if is == recommendation.StatusReading && was != recommendation.StatusReading && entry.StartedAt == nil {
		entry.StartedAt = &now
	}
	if is == recommendation.StatusRead && was != recommendation.StatusRead {
		if entry.StartedAt == nil {
			entry.StartedAt = &now
		}
		if entry.FinishedAt == nil {
			entry.FinishedAt = &now
		}
	}
}
