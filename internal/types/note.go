package types

import (
	"time"
)

// Note attaches to either a legacy book or a shelf entry, never both.
type Note struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BookID     *uint     `gorm:"index;column:book_id" json:"bookId,omitempty"`
	UserBookID *uint     `gorm:"index;column:user_book_id" json:"userBookId,omitempty"`
	Text       string    `gorm:"type:text;not null;column:text" json:"text"`
	ImageURL   string    `gorm:"column:image_url" json:"imageUrl,omitempty"`
	Flagged    bool      `gorm:"column:flagged" json:"flagged"`
	Tags       []Tag     `gorm:"many2many:note_tags" json:"tags,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Note) TableName() string {
	return "notes"
}
