package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/services"
)

type BookHandler struct {
	log         *logger.Logger
	bookService services.BookService
}

func NewBookHandler(log *logger.Logger, bookService services.BookService) *BookHandler {
	return &BookHandler{
		log:         log.With("handler", "BookHandler"),
		bookService: bookService,
	}
}

// GET /api/books/user/:userId
func (bh *BookHandler) ListByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	books, err := bh.bookService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, books)
}

// GET /api/books/:id
func (bh *BookHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book, err := bh.bookService.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, book)
}

// POST /api/books/user/:userId
func (bh *BookHandler) Add(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	var input services.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	book, err := bh.bookService.Add(c.Request.Context(), userID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, book)
}

// PUT /api/books/:id
func (bh *BookHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input services.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	book, err := bh.bookService.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, book)
}

// DELETE /api/books/:id
func (bh *BookHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := bh.bookService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PATCH /api/books/:id/progress?pagesRead=
func (bh *BookHandler) UpdateProgress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	pagesRead, err := strconv.Atoi(c.Query("pagesRead"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_pages", err)
		return
	}
	book, err := bh.bookService.UpdateProgress(c.Request.Context(), id, pagesRead)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, book)
}

// GET /api/books/user/:userId/search?q=
func (bh *BookHandler) Search(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	books, err := bh.bookService.Search(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, books)
}

// GET /api/books/user/:userId/status?status=
func (bh *BookHandler) FilterByStatus(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	books, err := bh.bookService.FilterByStatus(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, books)
}
