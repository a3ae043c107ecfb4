package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/readsphere/readsphere-backend/internal/apierr"
	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/repos"
	"github.com/readsphere/readsphere-backend/internal/types"
)

type ReadingLogInput struct {
	BookID uint       `json:"bookId"`
	Pages  int        `json:"pages"`
	Date   *time.Time `json:"date"`
}

// TimelineDay rolls one calendar day's logs into a single page count.
type TimelineDay struct {
	Date  string `json:"date"`
	Pages int    `json:"pages"`
}

type ReadingService interface {
	AddLog(ctx context.Context, userID uint, input ReadingLogInput) (*types.ReadingLog, error)
	ListByUser(ctx context.Context, userID uint) ([]types.ReadingLog, error)
	// Timeline aggregates the user's logs per day, newest day first.
	Timeline(ctx context.Context, userID uint) ([]TimelineDay, error)
}

type readingService struct {
	db             *gorm.DB
	log            *logger.Logger
	readingLogRepo repos.ReadingLogRepo
	bookRepo       repos.BookRepo
}

func NewReadingService(
	db *gorm.DB,
	baseLog *logger.Logger,
	readingLogRepo repos.ReadingLogRepo,
	bookRepo repos.BookRepo,
) ReadingService {
	serviceLog := baseLog.With("service", "ReadingService")
	return &readingService{
		db:             db,
		log:            serviceLog,
		readingLogRepo: readingLogRepo,
		bookRepo:       bookRepo,
	}
}

func (rs *readingService) AddLog(ctx context.Context, userID uint, input ReadingLogInput) (*types.ReadingLog, error) {
	if input.Pages <= 0 {
		return nil, apierr.BadRequest("invalid_pages", fmt.Errorf("Pages must be positive"))
	}
	if _, err := rs.bookRepo.GetByID(ctx, nil, input.BookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("book_not_found", fmt.Errorf("Book not found"))
		}
		return nil, fmt.Errorf("load book: %w", err)
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}
	entry := &types.ReadingLog{
		UserID: userID,
		BookID: input.BookID,
		Pages:  input.Pages,
		Date:   date,
	}
	if err := rs.readingLogRepo.Create(ctx, nil, entry); err != nil {
		return nil, fmt.Errorf("create reading log: %w", err)
	}
	return entry, nil
}

func (rs *readingService) ListByUser(ctx context.Context, userID uint) ([]types.ReadingLog, error) {
	return rs.readingLogRepo.GetByUserID(ctx, nil, userID)
}

func (rs *readingService) Timeline(ctx context.Context, userID uint) ([]TimelineDay, error) {
	logs, err := rs.readingLogRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load reading logs: %w", err)
	}
	byDay := make(map[string]int, len(logs))
	for _, entry := range logs {
		byDay[entry.Date.Format("2006-01-02")] += entry.Pages
	}
	timeline := make([]TimelineDay, 0, len(byDay))
	for day, pages := range byDay {
		timeline = append(timeline, TimelineDay{Date: day, Pages: pages})
	}
	sort.Slice(timeline, func(i, j int) bool {
		return timeline[i].Date > timeline[j].Date
	})
	return timeline, nil
}
