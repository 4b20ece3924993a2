package contract

import (
	"encoding/json"

	"spryte/internal/domain/entity"
)

type NoteResponse struct {
	ID            int64               `json:"id"`
	UserID        int64               `json:"user_id"`
	BookID        int64               `json:"book_id"`
	Title         string              `json:"title"`
	ParentID      *int64              `json:"parent_id"`
	Content       string              `json:"content"`
	CanvasData    json.RawMessage     `json:"canvas_data,omitempty"`
	Annotations   []entity.Annotation `json:"annotations"`
	LinkedNoteIDs []int64             `json:"linked_note_ids"`
	Tags          []string            `json:"tags"`
	Order         int                 `json:"order"`
	CreatedAt     string              `json:"created_at"`
	UpdatedAt     string              `json:"updated_at"`
}

// NoteDetailResponse is the single-note view: the full note plus summaries
// of every note it links to. Dangling link ids resolve to nothing and are
// simply absent from the list.
type NoteDetailResponse struct {
	Note        *NoteResponse  `json:"note"`
	LinkedNotes []*NoteSummary `json:"linked_notes"`
}

// NoteSummary is the minimal projection used by tree views and linked-note
// listings: no content, no canvas payload.
type NoteSummary struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ParentID    *int64 `json:"parent_id"`
	BookID      int64  `json:"book_id"`
	Order       int    `json:"order"`
	HasChildren bool   `json:"has_children"`
	LinkedCount int    `json:"linked_count"`
}

// NoteTreeNode is a NoteSummary annotated with its nested children.
type NoteTreeNode struct {
	NoteSummary
	Children []*NoteTreeNode `json:"children"`
}

func (n *NoteTreeNode) TreeID() int64        { return n.ID }
func (n *NoteTreeNode) TreeParentID() *int64 { return n.ParentID }

type CreateNoteRequest struct {
	Title      string          `json:"title" validate:"required,notblank,max=200"`
	BookID     int64           `json:"book_id" validate:"required"`
	ParentID   *int64          `json:"parent_id"`
	Content    *string         `json:"content"`
	CanvasData json.RawMessage `json:"canvas_data"`
}

// UpdateNoteRequest applies only the fields present in the body. Slices use
// pointers so "absent" and "provided but empty" stay distinguishable.
type UpdateNoteRequest struct {
	Title       *string              `json:"title" validate:"omitempty,notblank,max=200"`
	Content     *string              `json:"content"`
	CanvasData  json.RawMessage      `json:"canvas_data"`
	Tags        *[]string            `json:"tags" validate:"omitempty,nodupes"`
	Annotations *[]entity.Annotation `json:"annotations"`
	ParentID    Optional[int64]      `json:"parent_id"`
	BookID      *int64               `json:"book_id"`
	Order       *int                 `json:"order"`
}

type CanvasRequest struct {
	CanvasData json.RawMessage `json:"canvas_data"`
}

type AddLinkRequest struct {
	LinkedNoteID int64 `json:"linked_note_id" validate:"required"`
}

type AddAnnotationRequest struct {
	SelectedText string `json:"selected_text" validate:"required,notblank"`
	Insight      string `json:"insight" validate:"required,notblank"`
	BlockID      string `json:"block_id"`
	ShapeID      string `json:"shape_id"` // accepted as an alias for block_id
	Prompt       string `json:"prompt"`
}
