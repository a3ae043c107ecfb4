package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/readsphere/readsphere-backend/internal/apierr"
	"github.com/readsphere/readsphere-backend/internal/cache"
	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/recommendation"
	"github.com/readsphere/readsphere-backend/internal/repos"
	"github.com/readsphere/readsphere-backend/internal/types"
)

// CatalogService reads the shared catalog. Its TopRated/TopRatedByGenre
// methods satisfy recommendation.CatalogSource, with a best-effort redis
// cache in front of the two ranking queries.
type CatalogService interface {
	recommendation.CatalogSource
	Get(ctx context.Context, id uint) (*types.CatalogBook, error)
	List(ctx context.Context, genre string) ([]types.CatalogBook, error)
	Search(ctx context.Context, query, genre string) ([]types.CatalogBook, error)
	Genres(ctx context.Context) ([]string, error)
}

type catalogService struct {
	db          *gorm.DB
	log         *logger.Logger
	catalogRepo repos.CatalogBookRepo
	cache       *cache.CatalogCache
}

func NewCatalogService(
	db *gorm.DB,
	baseLog *logger.Logger,
	catalogRepo repos.CatalogBookRepo,
	catalogCache *cache.CatalogCache,
) CatalogService {
	serviceLog := baseLog.With("service", "CatalogService")
	return &catalogService{
		db:          db,
		log:         serviceLog,
		catalogRepo: catalogRepo,
		cache:       catalogCache,
	}
}

func (cs *catalogService) Get(ctx context.Context, id uint) (*types.CatalogBook, error) {
	book, err := cs.catalogRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("catalog_book_not_found", fmt.Errorf("Catalog book not found"))
		}
		return nil, fmt.Errorf("load catalog book: %w", err)
	}
	return book, nil
}

func (cs *catalogService) List(ctx context.Context, genre string) ([]types.CatalogBook, error) {
	return cs.catalogRepo.List(ctx, nil, genre)
}

func (cs *catalogService) Search(ctx context.Context, query, genre string) ([]types.CatalogBook, error) {
	return cs.catalogRepo.Search(ctx, nil, query, genre)
}

// Genres returns the catalog's distinct genres after normalization, so
// "fantasy" and "Fantasy" collapse into one entry.
func (cs *catalogService) Genres(ctx context.Context) ([]string, error) {
	raw, err := cs.catalogRepo.Genres(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}
	seen := make(map[string]bool, len(raw))
	genres := make([]string, 0, len(raw))
	for _, g := range raw {
		normalized := recommendation.NormalizeGenre(g)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		genres = append(genres, normalized)
	}
	sort.Strings(genres)
	return genres, nil
}

func (cs *catalogService) TopRated(ctx context.Context, minRating float64) ([]types.CatalogBook, error) {
	key := cache.TopRatedKey(minRating)
	if books, ok := cs.cache.Get(ctx, key); ok {
		return books, nil
	}
	books, err := cs.catalogRepo.TopRated(ctx, nil, minRating)
	if err != nil {
		return nil, err
	}
	cs.cache.Set(ctx, key, books)
	return books, nil
}

func (cs *catalogService) TopRatedByGenre(ctx context.Context, genre string, minRating float64) ([]types.CatalogBook, error) {
	key := cache.TopRatedByGenreKey(genre, minRating)
	if books, ok := cs.cache.Get(ctx, key); ok {
		return books, nil
	}
	books, err := cs.catalogRepo.TopRatedByGenre(ctx, nil, genre, minRating)
	if err != nil {
		return nil, err
	}
	cs.cache.Set(ctx, key, books)
	return books, nil
}
