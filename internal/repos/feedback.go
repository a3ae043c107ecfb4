package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/types"
)

// FeedbackRepo is insert-only. Feedback rows are never updated, deduplicated
// or read back by the recommender in this version.
type FeedbackRepo interface {
	Create(ctx context.Context, tx *gorm.DB, record *types.RecommendationFeedback) error
}

type feedbackRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFeedbackRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackRepo {
	repoLog := baseLog.With("repo", "FeedbackRepo")
	return &feedbackRepo{db: db, log: repoLog}
}

func (fr *feedbackRepo) Create(ctx context.Context, tx *gorm.DB, record *types.RecommendationFeedback) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).Create(record).Error
}
