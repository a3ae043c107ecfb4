package types

import (
	"time"
)

// Book is a legacy, fully user-owned record with its own genre/rating/status,
// not linked to any shared catalog title. Status is free text from older
// clients ("Read", "In Progress", "Want to Read"); parse it with
// recommendation.ParseReadStatus before relying on it.
type Book struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null;column:user_id" json:"userId"`
	Title      string    `gorm:"not null;column:title" json:"title"`
	Author     string    `gorm:"column:author" json:"author"`
	Genre      string    `gorm:"column:genre" json:"genre"`
	TotalPages int       `gorm:"column:total_pages" json:"totalPages"`
	PagesRead  int       `gorm:"column:pages_read" json:"pagesRead"`
	Status     string    `gorm:"column:status" json:"status"`
	Rating     *int      `gorm:"column:rating" json:"rating,omitempty"`
	CoverURL   string    `gorm:"column:cover_url" json:"coverUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Book) TableName() string {
	return "books"
}
