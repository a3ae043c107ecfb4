package repos

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/types"
)

type BookRepo interface {
	Create(ctx context.Context, tx *gorm.DB, book *types.Book) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Book, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]types.Book, error)
	Update(ctx context.Context, tx *gorm.DB, book *types.Book) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	SearchByUser(ctx context.Context, tx *gorm.DB, userID uint, query string) ([]types.Book, error)
	FilterByStatus(ctx context.Context, tx *gorm.DB, userID uint, status string) ([]types.Book, error)
}

type bookRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookRepo(db *gorm.DB, baseLog *logger.Logger) BookRepo {
	repoLog := baseLog.With("repo", "BookRepo")
	return &bookRepo{db: db, log: repoLog}
}

func (br *bookRepo) Create(ctx context.Context, tx *gorm.DB, book *types.Book) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	return transaction.WithContext(ctx).Create(book).Error
}

func (br *bookRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var book types.Book
	if err := transaction.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (br *bookRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var books []types.Book
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (br *bookRepo) Update(ctx context.Context, tx *gorm.DB, book *types.Book) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	return transaction.WithContext(ctx).Save(book).Error
}

func (br *bookRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	return transaction.WithContext(ctx).Delete(&types.Book{}, id).Error
}

func (br *bookRepo) SearchByUser(ctx context.Context, tx *gorm.DB, userID uint, query string) ([]types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var books []types.Book
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(genre) LIKE ?", like, like, like).
		Order("id").
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (br *bookRepo) FilterByStatus(ctx context.Context, tx *gorm.DB, userID uint, status string) ([]types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var books []types.Book
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("LOWER(status) = ?", strings.ToLower(strings.TrimSpace(status))).
		Order("id").
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}
