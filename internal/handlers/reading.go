package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/services"
)

type ReadingHandler struct {
	log            *logger.Logger
	readingService services.ReadingService
}

func NewReadingHandler(log *logger.Logger, readingService services.ReadingService) *ReadingHandler {
	return &ReadingHandler{
		log:            log.With("handler", "ReadingHandler"),
		readingService: readingService,
	}
}

// POST /api/reading/logs/user/:userId
func (rh *ReadingHandler) AddLog(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	var input services.ReadingLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	entry, err := rh.readingService.AddLog(c.Request.Context(), userID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, entry)
}

// GET /api/reading/timeline?userId=
func (rh *ReadingHandler) Timeline(c *gin.Context) {
	raw := c.Query("userId")
	if raw == "" {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("userId is required"))
		return
	}
	userID, ok := parseQueryID(c, "userId", raw)
	if !ok {
		return
	}
	timeline, err := rh.readingService.Timeline(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, timeline)
}
