package repos

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/types"
)

type NoteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, note *types.Note) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Note, error)
	GetByBookID(ctx context.Context, tx *gorm.DB, bookID uint) ([]types.Note, error)
	Update(ctx context.Context, tx *gorm.DB, note *types.Note) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	Search(ctx context.Context, tx *gorm.DB, query string, bookID *uint) ([]types.Note, error)
}

type noteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
	repoLog := baseLog.With("repo", "NoteRepo")
	return &noteRepo{db: db, log: repoLog}
}

func (nr *noteRepo) Create(ctx context.Context, tx *gorm.DB, note *types.Note) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	return transaction.WithContext(ctx).Create(note).Error
}

func (nr *noteRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	var note types.Note
	if err := transaction.WithContext(ctx).Preload("Tags").First(&note, id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (nr *noteRepo) GetByBookID(ctx context.Context, tx *gorm.DB, bookID uint) ([]types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	var notes []types.Note
	if err := transaction.WithContext(ctx).
		Preload("Tags").
		Where("book_id = ?", bookID).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (nr *noteRepo) Update(ctx context.Context, tx *gorm.DB, note *types.Note) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	return transaction.WithContext(ctx).Save(note).Error
}

func (nr *noteRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	return transaction.WithContext(ctx).Delete(&types.Note{}, id).Error
}

func (nr *noteRepo) Search(ctx context.Context, tx *gorm.DB, query string, bookID *uint) ([]types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	q := transaction.WithContext(ctx).
		Preload("Tags").
		Where("LOWER(text) LIKE ?", like).
		Order("created_at DESC")
	if bookID != nil {
		q = q.Where("book_id = ?", *bookID)
	}
	var notes []types.Note
	if err := q.Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}
