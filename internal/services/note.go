package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/readsphere/readsphere-backend/internal/apierr"
	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/repos"
	"github.com/readsphere/readsphere-backend/internal/types"
)

type NoteInput struct {
	BookID     *uint  `json:"bookId"`
	UserBookID *uint  `json:"userBookId"`
	Text       string `json:"text"`
	ImageURL   string `json:"imageUrl"`
	Flagged    bool   `json:"flagged"`
}

type NoteService interface {
	Add(ctx context.Context, input NoteInput) (*types.Note, error)
	Get(ctx context.Context, id uint) (*types.Note, error)
	ListByBook(ctx context.Context, bookID uint) ([]types.Note, error)
	Update(ctx context.Context, id uint, input NoteInput) (*types.Note, error)
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, query string, bookID *uint) ([]types.Note, error)
	SetTags(ctx context.Context, id uint, names []string) (*types.Note, error)
}

type noteService struct {
	db           *gorm.DB
	log          *logger.Logger
	noteRepo     repos.NoteRepo
	tagRepo      repos.TagRepo
	bookRepo     repos.BookRepo
	userBookRepo repos.UserBookRepo
}

func NewNoteService(db *gorm.DB, baseLog *logger.Logger, noteRepo repos.NoteRepo, tagRepo repos.TagRepo, bookRepo repos.BookRepo, userBookRepo repos.UserBookRepo) NoteService {
	serviceLog := baseLog.With("service", "NoteService")
	return &noteService{db: db, log: serviceLog, noteRepo: noteRepo, tagRepo: tagRepo, bookRepo: bookRepo, userBookRepo: userBookRepo}
}

func validateNoteInput(input NoteInput) error {
	if strings.TrimSpace(input.Text) == "" {
		return apierr.BadRequest("text_required", fmt.Errorf("Note text is required"))
	}
	if input.BookID == nil && input.UserBookID == nil {
		return apierr.BadRequest("book_required", fmt.Errorf("Note must reference a book"))
	}
	if input.BookID != nil && input.UserBookID != nil {
		return apierr.BadRequest("ambiguous_book", fmt.Errorf("Note cannot reference both a book and a shelf entry"))
	}
	return nil
}

func (ns *noteService) Add(ctx context.Context, input NoteInput) (*types.Note, error) {
	if err := validateNoteInput(input); err != nil {
		return nil, err
	}
	if input.BookID != nil {
		if _, err := ns.bookRepo.GetByID(ctx, nil, *input.BookID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierr.NotFound("book_not_found", fmt.Errorf("Book not found"))
			}
			return nil, fmt.Errorf("load book: %w", err)
		}
	}
	if input.UserBookID != nil {
		if _, err := ns.userBookRepo.GetByID(ctx, nil, *input.UserBookID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierr.NotFound("shelf_entry_not_found", fmt.Errorf("Shelf entry not found"))
			}
			return nil, fmt.Errorf("load shelf entry: %w", err)
		}
	}
	note := &types.Note{
		BookID:     input.BookID,
		UserBookID: input.UserBookID,
		Text:       input.Text,
		ImageURL:   input.ImageURL,
		Flagged:    input.Flagged,
	}
	if err := ns.noteRepo.Create(ctx, nil, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

func (ns *noteService) Get(ctx context.Context, id uint) (*types.Note, error) {
	note, err := ns.noteRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("note_not_found", fmt.Errorf("Note not found"))
		}
		return nil, fmt.Errorf("load note: %w", err)
	}
	return note, nil
}

func (ns *noteService) ListByBook(ctx context.Context, bookID uint) ([]types.Note, error) {
	return ns.noteRepo.GetByBookID(ctx, nil, bookID)
}

func (ns *noteService) Update(ctx context.Context, id uint, input NoteInput) (*types.Note, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, apierr.BadRequest("text_required", fmt.Errorf("Note text is required"))
	}
	note, err := ns.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	note.Text = input.Text
	note.ImageURL = input.ImageURL
	note.Flagged = input.Flagged
	if err := ns.noteRepo.Update(ctx, nil, note); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return note, nil
}

func (ns *noteService) Delete(ctx context.Context, id uint) error {
	if _, err := ns.Get(ctx, id); err != nil {
		return err
	}
	return ns.noteRepo.Delete(ctx, nil, id)
}

func (ns *noteService) Search(ctx context.Context, query string, bookID *uint) ([]types.Note, error) {
	return ns.noteRepo.Search(ctx, nil, query, bookID)
}

// SetTags replaces the note's tag set. Names are trimmed, blanks dropped,
// duplicates collapsed, and missing tags created on the fly.
func (ns *noteService) SetTags(ctx context.Context, id uint, names []string) (*types.Note, error) {
	note, err := ns.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(names))
	tags := make([]types.Tag, 0, len(names))
	for _, name := range names {
		cleaned := strings.TrimSpace(name)
		if cleaned == "" || seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		tag, err := ns.tagRepo.GetOrCreateByName(ctx, nil, cleaned)
		if err != nil {
			return nil, fmt.Errorf("resolve tag %q: %w", cleaned, err)
		}
		tags = append(tags, *tag)
	}
	if err := ns.tagRepo.ReplaceForNote(ctx, nil, note, tags); err != nil {
		return nil, fmt.Errorf("replace tags: %w", err)
	}
	note.Tags = tags
	return note, nil
}
