package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/readsphere/readsphere-backend/internal/apierr"
	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/repos"
	"github.com/readsphere/readsphere-backend/internal/types"
)

type stubNoteRepo struct {
	repos.NoteRepo
	notes   map[uint]types.Note
	created *types.Note
}

func (s *stubNoteRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Note, error) {
	note, ok := s.notes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &note, nil
}

func (s *stubNoteRepo) Create(ctx context.Context, tx *gorm.DB, note *types.Note) error {
	note.ID = 1
	s.created = note
	return nil
}

type stubTagRepo struct {
	repos.TagRepo
	nextID   uint
	resolved []string
	replaced []types.Tag
}

func (s *stubTagRepo) GetOrCreateByName(ctx context.Context, tx *gorm.DB, name string) (*types.Tag, error) {
	s.nextID++
	s.resolved = append(s.resolved, name)
	return &types.Tag{ID: s.nextID, Name: name}, nil
}

func (s *stubTagRepo) ReplaceForNote(ctx context.Context, tx *gorm.DB, note *types.Note, tags []types.Tag) error {
	s.replaced = tags
	return nil
}

type stubLookupBookRepo struct {
	repos.BookRepo
	known map[uint]bool
}

func (s *stubLookupBookRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Book, error) {
	if !s.known[id] {
		return nil, gorm.ErrRecordNotFound
	}
	return &types.Book{ID: id}, nil
}

type stubLookupShelfRepo struct {
	repos.UserBookRepo
	known map[uint]bool
}

func (s *stubLookupShelfRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.UserBook, error) {
	if !s.known[id] {
		return nil, gorm.ErrRecordNotFound
	}
	return &types.UserBook{ID: id}, nil
}

func newTestNoteService(t *testing.T, noteRepo *stubNoteRepo, tagRepo *stubTagRepo) NoteService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewNoteService(nil, log, noteRepo, tagRepo,
		&stubLookupBookRepo{known: map[uint]bool{1: true}},
		&stubLookupShelfRepo{known: map[uint]bool{7: true}})
}

func TestNoteAddRejectsUnknownShelfEntry(t *testing.T) {
	noteRepo := &stubNoteRepo{}
	svc := newTestNoteService(t, noteRepo, &stubTagRepo{})

	missing := uint(99)
	_, err := svc.Add(context.Background(), NoteInput{UserBookID: &missing, Text: "margin note"})
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Status != 404 {
		t.Fatalf("err=%v, want 404", err)
	}
	if noteRepo.created != nil {
		t.Fatalf("note was created despite unknown shelf entry")
	}
}

func TestNoteAddAcceptsKnownShelfEntry(t *testing.T) {
	noteRepo := &stubNoteRepo{}
	svc := newTestNoteService(t, noteRepo, &stubTagRepo{})

	entryID := uint(7)
	note, err := svc.Add(context.Background(), NoteInput{UserBookID: &entryID, Text: "margin note"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if note.UserBookID == nil || *note.UserBookID != entryID {
		t.Fatalf("userBookId=%v, want %d", note.UserBookID, entryID)
	}
}

func TestNoteSetTagsTrimsAndDeduplicates(t *testing.T) {
	noteRepo := &stubNoteRepo{notes: map[uint]types.Note{5: {ID: 5, Text: "margin note"}}}
	tagRepo := &stubTagRepo{}
	svc := newTestNoteService(t, noteRepo, tagRepo)

	note, err := svc.SetTags(context.Background(), 5, []string{" classics ", "classics", "", "  ", "reread"})
	if err != nil {
		t.Fatalf("SetTags: %v", err)
	}

	want := []string{"classics", "reread"}
	if len(tagRepo.resolved) != len(want) {
		t.Fatalf("resolved=%v, want %v", tagRepo.resolved, want)
	}
	for i, w := range want {
		if tagRepo.resolved[i] != w {
			t.Fatalf("resolved[%d]=%q, want %q", i, tagRepo.resolved[i], w)
		}
	}
	if len(tagRepo.replaced) != 2 {
		t.Fatalf("replaced=%v, want 2 tags", tagRepo.replaced)
	}
	if len(note.Tags) != 2 || note.Tags[0].Name != "classics" || note.Tags[1].Name != "reread" {
		t.Fatalf("tags=%v, want [classics reread]", note.Tags)
	}
}

func TestNoteSetTagsEmptyListClearsTags(t *testing.T) {
	noteRepo := &stubNoteRepo{notes: map[uint]types.Note{5: {ID: 5, Text: "margin note"}}}
	tagRepo := &stubTagRepo{replaced: []types.Tag{{ID: 1, Name: "stale"}}}
	svc := newTestNoteService(t, noteRepo, tagRepo)

	note, err := svc.SetTags(context.Background(), 5, nil)
	if err != nil {
		t.Fatalf("SetTags: %v", err)
	}
	if len(tagRepo.replaced) != 0 {
		t.Fatalf("replaced=%v, want empty set", tagRepo.replaced)
	}
	if len(note.Tags) != 0 {
		t.Fatalf("tags=%v, want none", note.Tags)
	}
}

func TestNoteSetTagsUnknownNote(t *testing.T) {
	svc := newTestNoteService(t, &stubNoteRepo{}, &stubTagRepo{})

	_, err := svc.SetTags(context.Background(), 404, []string{"classics"})
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Status != 404 {
		t.Fatalf("err=%v, want 404", err)
	}
}
