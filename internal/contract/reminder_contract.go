package contract

type CreateReminderRequest struct {
	Message              string  `json:"message" validate:"required,notblank"`
	NoteID               int64   `json:"note_id" validate:"required"`
	BlockID              *string `json:"block_id"`
	DueDate              string  `json:"due_date" validate:"required"`
	EarlyReminderMinutes int     `json:"early_reminder_minutes" validate:"min=0"`
}

type ParseReminderRequest struct {
	Text                 string  `json:"text" validate:"required,notblank"`
	NoteID               int64   `json:"note_id" validate:"required"`
	BlockID              *string `json:"block_id"`
	EarlyReminderMinutes int     `json:"early_reminder_minutes" validate:"min=0"`
}

type ReminderResponse struct {
	ID                   int64   `json:"id"`
	UserID               int64   `json:"user_id"`
	NoteID               int64   `json:"note_id"`
	BlockID              *string `json:"block_id"`
	Message              string  `json:"message"`
	DueDate              string  `json:"due_date"`
	RawText              string  `json:"raw_text"`
	EarlyReminderMinutes int     `json:"early_reminder_minutes"`
	Completed            bool    `json:"completed"`
	Notified             bool    `json:"notified"`
	CreatedAt            string  `json:"created_at"`
	// TriggerTime is only set on /due responses: due date minus the early
	// reminder offset.
	TriggerTime string `json:"trigger_time,omitempty"`
}

type ParsedReminderResponse struct {
	Success  bool              `json:"success"`
	Reminder *ReminderResponse `json:"reminder,omitempty"`
	Error    string            `json:"error,omitempty"`
}
