package types

import (
	"time"
)

// RecommendationFeedback is an append-only thumbs-up/down row against a
// recommended book. Repeated submissions create new rows; nothing reads these
// back yet.
type RecommendationFeedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null;column:user_id" json:"userId"`
	BookID    uint      `gorm:"not null;column:book_id" json:"bookId"`
	Feedback  string    `gorm:"not null;column:feedback" json:"feedback"`
	CreatedAt time.Time `json:"createdAt"`
}

func (RecommendationFeedback) TableName() string {
	return "recommendation_feedback"
}
