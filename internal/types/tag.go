package types

// Tag is a user-defined label shared across notes. Names are unique.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null;column:name" json:"name"`
}

func (Tag) TableName() string {
	return "tags"
}
