package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/services"
)

type NoteHandler struct {
	log         *logger.Logger
	noteService services.NoteService
}

func NewNoteHandler(log *logger.Logger, noteService services.NoteService) *NoteHandler {
	return &NoteHandler{
		log:         log.With("handler", "NoteHandler"),
		noteService: noteService,
	}
}

// GET /api/notes/book/:bookId
func (nh *NoteHandler) ListByBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}
	notes, err := nh.noteService.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, notes)
}

// POST /api/notes/book/:bookId
func (nh *NoteHandler) Add(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}
	var input services.NoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if input.UserBookID == nil {
		input.BookID = &bookID
	}
	note, err := nh.noteService.Add(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, note)
}

// PUT /api/notes/:id
func (nh *NoteHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input services.NoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	note, err := nh.noteService.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, note)
}

// DELETE /api/notes/:id
func (nh *NoteHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := nh.noteService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/notes/:id/tags
func (nh *NoteHandler) SetTags(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var names []string
	if err := c.ShouldBindJSON(&names); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	note, err := nh.noteService.SetTags(c.Request.Context(), id, names)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, note)
}

// GET /api/notes/search?q=&bookId=
func (nh *NoteHandler) Search(c *gin.Context) {
	var bookID *uint
	if raw := c.Query("bookId"); raw != "" {
		id, ok := parseQueryID(c, "bookId", raw)
		if !ok {
			return
		}
		bookID = &id
	}
	notes, err := nh.noteService.Search(c.Request.Context(), c.Query("q"), bookID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, notes)
}
