package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/readsphere/readsphere-backend/internal/apierr"
	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/recommendation"
	"github.com/readsphere/readsphere-backend/internal/repos"
	"github.com/readsphere/readsphere-backend/internal/types"
)

type RecommendationService interface {
	// Recommend computes up to recommendation.MaxResults items for the user.
	// source selects the candidate pool: "catalog" (default) or "library".
	// refresh asks for a randomized reorder of the final list.
	Recommend(ctx context.Context, userID uint, source string, refresh bool) ([]recommendation.Item, error)
	// SubmitFeedback validates and persists one thumbs-up/down signal
	// against a catalog title.
	SubmitFeedback(ctx context.Context, userID, bookID uint, rawFeedback string) (*types.RecommendationFeedback, error)
}

type recommendationService struct {
	db           *gorm.DB
	log          *logger.Logger
	bookRepo     repos.BookRepo
	userBookRepo repos.UserBookRepo
	catalogRepo  repos.CatalogBookRepo
	feedbackRepo repos.FeedbackRepo
	catalog      CatalogService

	// rng backs the refresh shuffle. Seeded from the clock in production;
	// tests inject a fixed seed through WithRand. Guarded because *rand.Rand
	// is not safe for concurrent use.
	mu  sync.Mutex
	rng *rand.Rand
}

type RecommendationOption func(*recommendationService)

// WithRand replaces the shuffle source, letting tests pin the permutation.
func WithRand(r *rand.Rand) RecommendationOption {
	return func(rs *recommendationService) {
		rs.rng = r
	}
}

func NewRecommendationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	bookRepo repos.BookRepo,
	userBookRepo repos.UserBookRepo,
	catalogRepo repos.CatalogBookRepo,
	feedbackRepo repos.FeedbackRepo,
	catalog CatalogService,
	opts ...RecommendationOption,
) RecommendationService {
	serviceLog := baseLog.With("service", "RecommendationService")
	rs := &recommendationService{
		db:           db,
		log:          serviceLog,
		bookRepo:     bookRepo,
		userBookRepo: userBookRepo,
		catalogRepo:  catalogRepo,
		feedbackRepo: feedbackRepo,
		catalog:      catalog,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

func (rs *recommendationService) Recommend(ctx context.Context, userID uint, source string, refresh bool) ([]recommendation.Item, error) {
	var items []recommendation.Item
	var err error
	if source == "library" {
		items, err = rs.recommendFromLibrary(ctx, userID)
	} else {
		items, err = rs.recommendFromCatalog(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	if refresh && len(items) > 1 {
		rs.mu.Lock()
		recommendation.Shuffle(rs.rng, items)
		rs.mu.Unlock()
	}
	return items, nil
}

func (rs *recommendationService) recommendFromCatalog(ctx context.Context, userID uint) ([]recommendation.Item, error) {
	var books []types.Book
	var entries []types.UserBook

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		books, err = rs.bookRepo.GetByUserID(gctx, nil, userID)
		if err != nil {
			return fmt.Errorf("load user books: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		entries, err = rs.userBookRepo.GetByUserID(gctx, nil, userID)
		if err != nil {
			return fmt.Errorf("load shelf entries: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	owned := make(map[uint]bool, len(entries))
	for _, e := range entries {
		owned[e.CatalogBookID] = true
	}

	history := recommendation.HistoryFromBooks(books)
	history = append(history, recommendation.HistoryFromShelf(entries)...)
	profile := recommendation.BuildProfile(history)

	items, err := recommendation.RecommendFromCatalog(ctx, profile, owned, rs.catalog)
	if err != nil {
		return nil, fmt.Errorf("catalog recommendation: %w", err)
	}
	rs.log.Debug("catalog recommendations computed",
		"user_id", userID, "history", len(history), "items", len(items))
	return items, nil
}

func (rs *recommendationService) recommendFromLibrary(ctx context.Context, userID uint) ([]recommendation.Item, error) {
	books, err := rs.bookRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load user books: %w", err)
	}
	return recommendation.RecommendFromLibrary(books), nil
}

func (rs *recommendationService) SubmitFeedback(ctx context.Context, userID, bookID uint, rawFeedback string) (*types.RecommendationFeedback, error) {
	kind, err := recommendation.ParseFeedbackKind(rawFeedback)
	if err != nil {
		return nil, apierr.BadRequest("invalid_feedback", err)
	}

	exists, err := rs.catalogRepo.Exists(ctx, nil, bookID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check catalog book: %w", err)
	}
	if !exists {
		return nil, apierr.NotFound("catalog_book_not_found", fmt.Errorf("Catalog book not found"))
	}

	record := &types.RecommendationFeedback{
		UserID:   userID,
		BookID:   bookID,
		Feedback: string(kind),
	}
	if err := rs.feedbackRepo.Create(ctx, nil, record); err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}
	rs.log.Info("recommendation feedback recorded",
		"user_id", userID, "book_id", bookID, "feedback", record.Feedback)
	return record, nil
}
