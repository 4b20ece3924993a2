package entity

// Book is a folder-like container organizing notes. Books nest under other
// books through ParentID (nil means root level).
type Book struct {
	ID          int64  `gorm:"primaryKey"`
	UserID      int64  `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	ParentID    *int64 `gorm:"index"`
	Description *string
	Color       string `gorm:"not null"`
	Icon        string `gorm:"not null"`
	SortOrder   int    `gorm:"not null;default:0"`
	CreatedAt   int64  `gorm:"not null"`
	UpdatedAt   int64  `gorm:"not null;autoUpdateTime:false"`
}
