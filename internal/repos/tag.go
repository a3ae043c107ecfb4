package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/types"
)

type TagRepo interface {
	GetOrCreateByName(ctx context.Context, tx *gorm.DB, name string) (*types.Tag, error)
	ReplaceForNote(ctx context.Context, tx *gorm.DB, note *types.Note, tags []types.Tag) error
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	repoLog := baseLog.With("repo", "TagRepo")
	return &tagRepo{db: db, log: repoLog}
}

func (tr *tagRepo) GetOrCreateByName(ctx context.Context, tx *gorm.DB, name string) (*types.Tag, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var tag types.Tag
	if err := transaction.WithContext(ctx).
		Where("name = ?", name).
		FirstOrCreate(&tag, types.Tag{Name: name}).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (tr *tagRepo) ReplaceForNote(ctx context.Context, tx *gorm.DB, note *types.Note, tags []types.Tag) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).Model(note).Association("Tags").Replace(tags)
}
