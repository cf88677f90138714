package domain

// ChecklistItem is one entry of a trip's checklist.
// Generated items carry their template's id; custom items get a minted id.
type ChecklistItem struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	LocalizedTitle string `json:"localizedTitle,omitempty"`
	CategoryID     string `json:"categoryId"`
	Checked        bool   `json:"checked"`
	Important      bool   `json:"important"`
	IsCustom       bool   `json:"isCustom"`
}

// CategoryProgress counts the checked items of one category in a checklist.
type CategoryProgress struct {
	CategoryID string `json:"categoryId"`
	Total      int    `json:"total"`
	Checked    int    `json:"checked"`
}
