package types

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password  string         `gorm:"not null;column:password" json:"-"`
	Name      string         `gorm:"column:name" json:"name"`
	Settings  datatypes.JSON `gorm:"column:settings" json:"settings,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
