package contract

type TransformRequest struct {
	Text    string `json:"text" validate:"required,notblank"`
	Action  string `json:"action" validate:"required,notblank"`
	Context string `json:"context"`
}

type TransformResponse struct {
	Text   string `json:"text"`
	Action string `json:"action"`
}

type ActionInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
