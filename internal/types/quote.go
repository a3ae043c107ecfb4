package types

import (
	"time"
)

type Quote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BookID     *uint     `gorm:"index;column:book_id" json:"bookId,omitempty"`
	UserBookID *uint     `gorm:"index;column:user_book_id" json:"userBookId,omitempty"`
	Text       string    `gorm:"type:text;not null;column:text" json:"text"`
	PageNumber int       `gorm:"column:page_number" json:"pageNumber"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Quote) TableName() string {
	return "quotes"
}
