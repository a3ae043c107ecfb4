package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/services"
)

type QuoteHandler struct {
	log          *logger.Logger
	quoteService services.QuoteService
}

func NewQuoteHandler(log *logger.Logger, quoteService services.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		log:          log.With("handler", "QuoteHandler"),
		quoteService: quoteService,
	}
}

// GET /api/quotes/book/:bookId
func (qh *QuoteHandler) ListByBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}
	quotes, err := qh.quoteService.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, quotes)
}

// POST /api/quotes/book/:bookId
func (qh *QuoteHandler) Add(c *gin.Context) {
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}
	var input services.QuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if input.UserBookID == nil {
		input.BookID = &bookID
	}
	quote, err := qh.quoteService.Add(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, quote)
}

// PUT /api/quotes/:id
func (qh *QuoteHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input services.QuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	quote, err := qh.quoteService.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, quote)
}

// DELETE /api/quotes/:id
func (qh *QuoteHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := qh.quoteService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/quotes/search?q=&bookId=
func (qh *QuoteHandler) Search(c *gin.Context) {
	var bookID *uint
	if raw := c.Query("bookId"); raw != "" {
		id, ok := parseQueryID(c, "bookId", raw)
		if !ok {
			return
		}
		bookID = &id
	}
	quotes, err := qh.quoteService.Search(c.Request.Context(), c.Query("q"), bookID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, quotes)
}
