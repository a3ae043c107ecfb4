package repos

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/types"
)

type CatalogBookRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.CatalogBook, error)
	Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	List(ctx context.Context, tx *gorm.DB, genre string) ([]types.CatalogBook, error)
	Search(ctx context.Context, tx *gorm.DB, query, genre string) ([]types.CatalogBook, error)
	Genres(ctx context.Context, tx *gorm.DB) ([]string, error)
	// TopRated returns catalog titles with average rating >= minRating,
	// best rated first.
	TopRated(ctx context.Context, tx *gorm.DB, minRating float64) ([]types.CatalogBook, error)
	// TopRatedByGenre is TopRated restricted to one genre
	// (case-insensitive match on the stored label).
	TopRatedByGenre(ctx context.Context, tx *gorm.DB, genre string, minRating float64) ([]types.CatalogBook, error)
	CreateInBatches(ctx context.Context, tx *gorm.DB, books []types.CatalogBook) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type catalogBookRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCatalogBookRepo(db *gorm.DB, baseLog *logger.Logger) CatalogBookRepo {
	repoLog := baseLog.With("repo", "CatalogBookRepo")
	return &catalogBookRepo{db: db, log: repoLog}
}

func (cr *catalogBookRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.CatalogBook, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var book types.CatalogBook
	if err := transaction.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (cr *catalogBookRepo) Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.CatalogBook{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr *catalogBookRepo) List(ctx context.Context, tx *gorm.DB, genre string) ([]types.CatalogBook, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	q := transaction.WithContext(ctx).Order("title")
	if strings.TrimSpace(genre) != "" {
		q = q.Where("LOWER(genre) = ?", strings.ToLower(strings.TrimSpace(genre)))
	}
	var books []types.CatalogBook
	if err := q.Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (cr *catalogBookRepo) Search(ctx context.Context, tx *gorm.DB, query, genre string) ([]types.CatalogBook, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	q := transaction.WithContext(ctx).Order("title")
	if strings.TrimSpace(query) != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ?", like, like)
	}
	if strings.TrimSpace(genre) != "" {
		q = q.Where("LOWER(genre) = ?", strings.ToLower(strings.TrimSpace(genre)))
	}
	var books []types.CatalogBook
	if err := q.Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (cr *catalogBookRepo) Genres(ctx context.Context, tx *gorm.DB) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var genres []string
	if err := transaction.WithContext(ctx).
		Model(&types.CatalogBook{}).
		Where("genre IS NOT NULL AND genre <> ''").
		Distinct("genre").
		Order("genre").
		Pluck("genre", &genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (cr *catalogBookRepo) TopRated(ctx context.Context, tx *gorm.DB, minRating float64) ([]types.CatalogBook, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var books []types.CatalogBook
	if err := transaction.WithContext(ctx).
		Where("average_rating >= ?", minRating).
		Order("average_rating DESC, id").
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (cr *catalogBookRepo) TopRatedByGenre(ctx context.Context, tx *gorm.DB, genre string, minRating float64) ([]types.CatalogBook, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var books []types.CatalogBook
	if err := transaction.WithContext(ctx).
		Where("LOWER(genre) = ?", strings.ToLower(genre)).
		Where("average_rating >= ?", minRating).
		Order("average_rating DESC, id").
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (cr *catalogBookRepo) CreateInBatches(ctx context.Context, tx *gorm.DB, books []types.CatalogBook) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(books) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).CreateInBatches(books, 100).Error
}

func (cr *catalogBookRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.CatalogBook{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
