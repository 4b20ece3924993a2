package entity

// Reminder is a scheduled notification anchored to a note, optionally to a
// specific canvas block. DueDate is epoch millis UTC; the effective trigger
// time is DueDate minus EarlyReminderMinutes.
type Reminder struct {
	ID                   int64 `gorm:"primaryKey"`
	UserID               int64 `gorm:"not null;index"`
	NoteID               int64 `gorm:"not null;index"`
	BlockID              *string
	Message              string `gorm:"not null"`
	DueDate              int64  `gorm:"not null"`
	RawText              string `gorm:"not null"`
	EarlyReminderMinutes int    `gorm:"not null;default:0"`
	Completed            bool   `gorm:"not null;default:false"`
	Notified             bool   `gorm:"not null;default:false"`
	CreatedAt            int64  `gorm:"not null"`
}
