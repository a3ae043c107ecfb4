package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/services"
)

type UserBookHandler struct {
	log             *logger.Logger
	userBookService services.UserBookService
}

func NewUserBookHandler(log *logger.Logger, userBookService services.UserBookService) *UserBookHandler {
	return &UserBookHandler{
		log:             log.With("handler", "UserBookHandler"),
		userBookService: userBookService,
	}
}

// GET /api/user-books/user/:userId
func (uh *UserBookHandler) ListByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	entries, err := uh.userBookService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, entries)
}

// GET /api/user-books/:id
func (uh *UserBookHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	entry, err := uh.userBookService.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, entry)
}

// POST /api/user-books/user/:userId/add/:catalogBookId
// The body is optional; status/rating/pagesRead may ride along.
func (uh *UserBookHandler) Add(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	catalogBookID, ok := parseIDParam(c, "catalogBookId")
	if !ok {
		return
	}
	var input services.ShelfEntryInput
	if err := c.ShouldBindJSON(&input); err != nil && err != io.EOF {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	input.CatalogBookID = catalogBookID
	entry, err := uh.userBookService.Add(c.Request.Context(), userID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, entry)
}

// PUT /api/user-books/:id
func (uh *UserBookHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input services.ShelfEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	entry, err := uh.userBookService.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, entry)
}

// DELETE /api/user-books/:id
func (uh *UserBookHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := uh.userBookService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
