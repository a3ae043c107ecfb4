package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/types"
)

type ReadingLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, log *types.ReadingLog) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]types.ReadingLog, error)
}

type readingLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReadingLogRepo(db *gorm.DB, baseLog *logger.Logger) ReadingLogRepo {
	repoLog := baseLog.With("repo", "ReadingLogRepo")
	return &readingLogRepo{db: db, log: repoLog}
}

func (rlr *readingLogRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.ReadingLog) error {
	transaction := tx
	if transaction == nil {
		transaction = rlr.db
	}
	return transaction.WithContext(ctx).Create(entry).Error
}

func (rlr *readingLogRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]types.ReadingLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = rlr.db
	}
	var logs []types.ReadingLog
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
