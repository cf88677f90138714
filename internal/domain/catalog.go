package domain

// ItemTemplate is a catalog entry from which checklist items are generated.
// Required templates are included for every travel type.
type ItemTemplate struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	LocalizedTitle string   `json:"localizedTitle"`
	CategoryID     string   `json:"categoryId"`
	Required       bool     `json:"required"`
	Tags           []string `json:"tags"`
}

// HasAnyTag reports whether the template carries at least one of tags.
func (t ItemTemplate) HasAnyTag(tags []string) bool {
	for _, have := range t.Tags {
		for _, want := range tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// TravelType selects optional templates through IncludeTags.
type TravelType struct {
	ID          string   `json:"id"`
	TitleKo     string   `json:"titleKo"`
	Icon        string   `json:"icon"`
	IncludeTags []string `json:"includeTags"`
}

// Category groups checklist items for display.
type Category struct {
	ID      string `json:"id"`
	TitleKo string `json:"titleKo"`
	Icon    string `json:"icon"`
}
