package types

import (
	"time"
)

// ReadingLog is one day's page count against a legacy book.
type ReadingLog struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uint      `gorm:"index;not null;column:user_id" json:"userId"`
	BookID uint      `gorm:"index;not null;column:book_id" json:"bookId"`
	Pages  int       `gorm:"column:pages" json:"pages"`
	Date   time.Time `gorm:"column:date" json:"date"`
}

func (ReadingLog) TableName() string {
	return "reading_logs"
}
