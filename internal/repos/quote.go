package repos

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/types"
)

type QuoteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, quote *types.Quote) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Quote, error)
	GetByBookID(ctx context.Context, tx *gorm.DB, bookID uint) ([]types.Quote, error)
	Update(ctx context.Context, tx *gorm.DB, quote *types.Quote) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	Search(ctx context.Context, tx *gorm.DB, query string, bookID *uint) ([]types.Quote, error)
}

type quoteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuoteRepo(db *gorm.DB, baseLog *logger.Logger) QuoteRepo {
	repoLog := baseLog.With("repo", "QuoteRepo")
	return &quoteRepo{db: db, log: repoLog}
}

func (qr *quoteRepo) Create(ctx context.Context, tx *gorm.DB, quote *types.Quote) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	return transaction.WithContext(ctx).Create(quote).Error
}

func (qr *quoteRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Quote, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var quote types.Quote
	if err := transaction.WithContext(ctx).First(&quote, id).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}

func (qr *quoteRepo) GetByBookID(ctx context.Context, tx *gorm.DB, bookID uint) ([]types.Quote, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var quotes []types.Quote
	if err := transaction.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("page_number").
		Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

func (qr *quoteRepo) Update(ctx context.Context, tx *gorm.DB, quote *types.Quote) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	return transaction.WithContext(ctx).Save(quote).Error
}

func (qr *quoteRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	return transaction.WithContext(ctx).Delete(&types.Quote{}, id).Error
}

func (qr *quoteRepo) Search(ctx context.Context, tx *gorm.DB, query string, bookID *uint) ([]types.Quote, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	q := transaction.WithContext(ctx).
		Where("LOWER(text) LIKE ?", like).
		Order("page_number")
	if bookID != nil {
		q = q.Where("book_id = ?", *bookID)
	}
	var quotes []types.Quote
	if err := q.Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}
