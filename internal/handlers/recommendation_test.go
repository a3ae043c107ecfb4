package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/recommendation"
	"github.com/readsphere/readsphere-backend/internal/services"
	"github.com/readsphere/readsphere-backend/internal/types"
)

type stubRecommendationService struct {
	lastRefresh bool
	lastSource  string
}

func (s *stubRecommendationService) Recommend(ctx context.Context, userID uint, source string, refresh bool) ([]recommendation.Item, error) {
	s.lastSource = source
	s.lastRefresh = refresh
	return nil, nil
}

func (s *stubRecommendationService) SubmitFeedback(ctx context.Context, userID, bookID uint, rawFeedback string) (*types.RecommendationFeedback, error) {
	return &types.RecommendationFeedback{UserID: userID, BookID: bookID, Feedback: rawFeedback}, nil
}

var _ services.RecommendationService = (*stubRecommendationService)(nil)

func newRecommendationRouter(t *testing.T) (*gin.Engine, *stubRecommendationService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	svc := &stubRecommendationService{}
	handler := NewRecommendationHandler(log, svc)
	router := gin.New()
	router.GET("/api/recommendations/:userId", handler.GetForUser)
	return router, svc
}

func TestRecommendationRefreshQueryForms(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  bool
	}{
		{"absent", "", false},
		{"lowercase true", "?refresh=true", true},
		{"uppercase true", "?refresh=TRUE", true},
		{"numeric one", "?refresh=1", true},
		{"explicit false", "?refresh=false", false},
		{"garbage", "?refresh=banana", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, svc := newRecommendationRouter(t)
			req := httptest.NewRequest(http.MethodGet, "/api/recommendations/1"+tc.query, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status=%d, want 200", rec.Code)
			}
			if svc.lastRefresh != tc.want {
				t.Fatalf("refresh=%v, want %v", svc.lastRefresh, tc.want)
			}
			if svc.lastSource != "library" {
				t.Fatalf("source=%q, want library", svc.lastSource)
			}
		})
	}
}
