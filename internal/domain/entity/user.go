package entity

// Settings holds per-user preferences. Only these keys are writable through
// the settings endpoint.
type Settings struct {
	Theme      string `json:"theme"`
	AIProvider string `json:"ai_provider"`
}

// User is the owner of all books, notes and reminders. Every query against
// those aggregates is scoped by User.ID.
type User struct {
	ID           int64    `gorm:"primaryKey"`
	Email        string   `gorm:"not null;uniqueIndex"`
	Name         string   `gorm:"not null"`
	PasswordHash string   `gorm:"not null"`
	Settings     Settings `gorm:"serializer:json"`
	ActiveAddons []string `gorm:"serializer:json"`
	CreatedAt    int64    `gorm:"not null"`
	UpdatedAt    int64    `gorm:"not null;autoUpdateTime:false"`
}
