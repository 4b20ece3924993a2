package entity

import "encoding/json"

// Annotation is an AI insight pinned to a text selection inside a note.
type Annotation struct {
	ID           string `json:"id"`
	SelectedText string `json:"selected_text"`
	Insight      string `json:"insight"`
	BlockID      string `json:"block_id,omitempty"`
	Prompt       string `json:"prompt,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// Note is a canvas document belonging to exactly one book. Notes nest under
// other notes through ParentID (nil means root of the book), and may point at
// peer notes through LinkedNoteIDs. Links are weak references: they confer no
// ownership and are pruned when the target note is deleted.
//
// CanvasData is opaque to the server; the client owns its shape.
type Note struct {
	ID            int64  `gorm:"primaryKey"`
	UserID        int64  `gorm:"not null;index"`
	BookID        int64  `gorm:"not null;index"`
	Title         string `gorm:"not null"`
	ParentID      *int64 `gorm:"index"`
	Content       string
	CanvasData    json.RawMessage `gorm:"serializer:json"`
	Annotations   []Annotation    `gorm:"serializer:json"`
	LinkedNoteIDs []int64         `gorm:"serializer:json;column:linked_note_ids"`
	Tags          []string        `gorm:"serializer:json"`
	SortOrder     int             `gorm:"not null;default:0"`
	CreatedAt     int64           `gorm:"not null"`
	UpdatedAt     int64           `gorm:"not null;autoUpdateTime:false"`
}

// HasLink reports whether the note already links to the given id.
func (n *Note) HasLink(noteID int64) bool {
	for _, id := range n.LinkedNoteIDs {
		if id == noteID {
			return true
		}
	}
	return false
}
