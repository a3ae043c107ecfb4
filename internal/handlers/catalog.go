package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/services"
)

const defaultTopRatedMin = 4.5

type CatalogHandler struct {
	log            *logger.Logger
	catalogService services.CatalogService
}

func NewCatalogHandler(log *logger.Logger, catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		log:            log.With("handler", "CatalogHandler"),
		catalogService: catalogService,
	}
}

// GET /api/catalog?genre=
func (ch *CatalogHandler) List(c *gin.Context) {
	books, err := ch.catalogService.List(c.Request.Context(), c.Query("genre"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, books)
}

// GET /api/catalog/:id
func (ch *CatalogHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	book, err := ch.catalogService.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, book)
}

// GET /api/catalog/genres
func (ch *CatalogHandler) Genres(c *gin.Context) {
	genres, err := ch.catalogService.Genres(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, genres)
}

// GET /api/catalog/search?q=&genre=
func (ch *CatalogHandler) Search(c *gin.Context) {
	books, err := ch.catalogService.Search(c.Request.Context(), c.Query("q"), c.Query("genre"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, books)
}

// GET /api/catalog/top-rated?min=
func (ch *CatalogHandler) TopRated(c *gin.Context) {
	min := defaultTopRatedMin
	if raw := c.Query("min"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_min", err)
			return
		}
		min = parsed
	}
	books, err := ch.catalogService.TopRated(c.Request.Context(), min)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, books)
}
