package types

import (
	"time"
)

// CatalogBook is one title in the shared, multi-user catalog. Immutable from
// the recommender's point of view; AverageRating is an aggregate across all
// readers.
type CatalogBook struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null;column:title" json:"title"`
	Author        string    `gorm:"column:author" json:"author"`
	Genre         string    `gorm:"index;column:genre" json:"genre"`
	Description   string    `gorm:"type:text;column:description" json:"description"`
	CoverURL      string    `gorm:"column:cover_url" json:"coverUrl,omitempty"`
	AverageRating *float64  `gorm:"column:average_rating" json:"averageRating,omitempty"`
	TotalPages    *int      `gorm:"column:total_pages" json:"totalPages,omitempty"`
	ISBN          string    `gorm:"column:isbn" json:"isbn,omitempty"`
	PublishedYear *int      `gorm:"column:published_year" json:"publishedYear,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (CatalogBook) TableName() string {
	return "book_catalog"
}
