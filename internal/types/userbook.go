package types

import (
	"time"
)

// UserBook is a shelf entry: one user's relationship to one catalog title.
// Unique per (user, catalog book).
type UserBook struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uint        `gorm:"uniqueIndex:idx_user_catalog;not null;column:user_id" json:"userId"`
	CatalogBookID uint        `gorm:"uniqueIndex:idx_user_catalog;not null;column:catalog_book_id" json:"catalogBookId"`
	CatalogBook   CatalogBook `gorm:"foreignKey:CatalogBookID" json:"catalogBook"`
	Status        string      `gorm:"column:status" json:"status"`
	PagesRead     *int        `gorm:"column:pages_read" json:"pagesRead,omitempty"`
	Rating        *int        `gorm:"column:rating" json:"rating,omitempty"`
	CoverURL      string      `gorm:"column:cover_url" json:"coverUrl,omitempty"`
	AddedAt       time.Time   `gorm:"column:added_at" json:"addedAt"`
	StartedAt     *time.Time  `gorm:"column:started_at" json:"startedAt,omitempty"`
	FinishedAt    *time.Time  `gorm:"column:finished_at" json:"finishedAt,omitempty"`
}

func (UserBook) TableName() string {
	return "user_books"
}
