package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/services"
)

type RecommendationHandler struct {
	log    *logger.Logger
	recSvc services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, recSvc services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		log:    log.With("handler", "RecommendationHandler"),
		recSvc: recSvc,
	}
}

// GET /api/recommendations/:userId?refresh=
// Suggestions mined from the user's own library.
func (rh *RecommendationHandler) GetForUser(c *gin.Context) {
	rh.recommend(c, "library")
}

// GET /api/recommendations/:userId/catalog?refresh=
// Catalog-backed suggestions from the taste profile.
func (rh *RecommendationHandler) GetFromCatalog(c *gin.Context) {
	rh.recommend(c, "catalog")
}

func (rh *RecommendationHandler) recommend(c *gin.Context, source string) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	refresh, err := strconv.ParseBool(c.DefaultQuery("refresh", "false"))
	if err != nil {
		refresh = false
	}
	items, err := rh.recSvc.Recommend(c.Request.Context(), userID, source, refresh)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, items)
}

// POST /api/recommendations/:userId/:bookId/feedback
func (rh *RecommendationHandler) SubmitFeedback(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}
	var body struct {
		Feedback string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	record, err := rh.recSvc.SubmitFeedback(c.Request.Context(), userID, bookID, body.Feedback)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, record)
}
