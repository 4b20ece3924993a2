package contract

type BookResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	Name        string  `json:"name"`
	ParentID    *int64  `json:"parent_id"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
	Icon        string  `json:"icon"`
	Order       int     `json:"order"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// BookTreeNode is a BookResponse annotated with its nested children. It
// satisfies tree.Node so the shared builder can assemble the forest.
type BookTreeNode struct {
	BookResponse
	Children []*BookTreeNode `json:"children"`
}

func (b *BookTreeNode) TreeID() int64        { return b.ID }
func (b *BookTreeNode) TreeParentID() *int64 { return b.ParentID }

type CreateBookRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=120"`
	ParentID    *int64  `json:"parent_id"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
}

// UpdateBookRequest applies only the fields present in the body. Optional
// fields accept an explicit null (detach parent, clear description).
type UpdateBookRequest struct {
	Name        *string          `json:"name" validate:"omitempty,notblank,max=120"`
	Description Optional[string] `json:"description"`
	Color       Optional[string] `json:"color"`
	Icon        Optional[string] `json:"icon"`
	ParentID    Optional[int64]  `json:"parent_id"`
	Order       *int             `json:"order"`
}
