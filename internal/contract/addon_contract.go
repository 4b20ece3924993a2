package contract

// Addon catalog shapes. The catalog is static server-side data; AddonName and
// AddonID are filled in when commands from multiple addons are aggregated.

type AddonTemplate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Pattern     string `json:"pattern,omitempty"`
	IsInline    bool   `json:"is_inline,omitempty"`
	Content     string `json:"content,omitempty"`
	AddonID     string `json:"addon_id,omitempty"`
	AddonName   string `json:"addon_name,omitempty"`
}

type AddonAction struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Pattern     string `json:"pattern,omitempty"`
	Template    string `json:"template,omitempty"`
	AddonID     string `json:"addon_id,omitempty"`
	AddonName   string `json:"addon_name,omitempty"`
}

type AddonUIItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	ShapeType string `json:"shape_type"`
}

type AddonUIComponent struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Type        string        `json:"type"`
	Items       []AddonUIItem `json:"items"`
	AddonID     string        `json:"addon_id,omitempty"`
	AddonName   string        `json:"addon_name,omitempty"`
}

type Addon struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	Icon           string             `json:"icon"`
	IsFree         bool               `json:"is_free"`
	IsAlwaysActive bool               `json:"is_always_active,omitempty"`
	Features       []string           `json:"features"`
	Templates      []AddonTemplate    `json:"templates"`
	Actions        []AddonAction      `json:"actions"`
	UIComponents   []AddonUIComponent `json:"ui_components,omitempty"`
}

type AddonStatus struct {
	Addon
	Enabled bool `json:"enabled"`
}

type AddonCommandsResponse struct {
	Templates    []AddonTemplate    `json:"templates"`
	Actions      []AddonAction      `json:"actions"`
	UIComponents []AddonUIComponent `json:"ui_components"`
}
