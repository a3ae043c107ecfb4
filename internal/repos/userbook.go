package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/types"
)

type UserBookRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.UserBook) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.UserBook, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]types.UserBook, error)
	ExistsForUser(ctx context.Context, tx *gorm.DB, userID, catalogBookID uint) (bool, error)
	// OwnedCatalogIDs returns the catalog ids already on the user's shelf.
	OwnedCatalogIDs(ctx context.Context, tx *gorm.DB, userID uint) ([]uint, error)
	Update(ctx context.Context, tx *gorm.DB, entry *types.UserBook) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type userBookRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserBookRepo(db *gorm.DB, baseLog *logger.Logger) UserBookRepo {
	repoLog := baseLog.With("repo", "UserBookRepo")
	return &userBookRepo{db: db, log: repoLog}
}

func (ubr *userBookRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.UserBook) error {
	transaction := tx
	if transaction == nil {
		transaction = ubr.db
	}
	return transaction.WithContext(ctx).Create(entry).Error
}

func (ubr *userBookRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.UserBook, error) {
	transaction := tx
	if transaction == nil {
		transaction = ubr.db
	}
	var entry types.UserBook
	if err := transaction.WithContext(ctx).
		Preload("CatalogBook").
		First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (ubr *userBookRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]types.UserBook, error) {
	transaction := tx
	if transaction == nil {
		transaction = ubr.db
	}
	var entries []types.UserBook
	if err := transaction.WithContext(ctx).
		Preload("CatalogBook").
		Where("user_id = ?", userID).
		Order("id").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (ubr *userBookRepo) ExistsForUser(ctx context.Context, tx *gorm.DB, userID, catalogBookID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ubr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.UserBook{}).
		Where("user_id = ? AND catalog_book_id = ?", userID, catalogBookID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ubr *userBookRepo) OwnedCatalogIDs(ctx context.Context, tx *gorm.DB, userID uint) ([]uint, error) {
	transaction := tx
	if transaction == nil {
		transaction = ubr.db
	}
	var ids []uint
	if err := transaction.WithContext(ctx).
		Model(&types.UserBook{}).
		Where("user_id = ?", userID).
		Pluck("catalog_book_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (ubr *userBookRepo) Update(ctx context.Context, tx *gorm.DB, entry *types.UserBook) error {
	transaction := tx
	if transaction == nil {
		transaction = ubr.db
	}
	return transaction.WithContext(ctx).Save(entry).Error
}

func (ubr *userBookRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	transaction := tx
	if transaction == nil {
		transaction = ubr.db
	}
	return transaction.WithContext(ctx).Delete(&types.UserBook{}, id).Error
}
