package model

// ItemOutfit is a recommendation built around one base garment.
type ItemOutfit struct {
	BaseItem        *Garment             `json:"base_item,omitempty"`
	Recommendations map[string][]Garment `json:"recommendations,omitempty"`
	Message         string               `json:"message,omitempty"`
	Suggestions     []string             `json:"suggestions,omitempty"`
}

// IsEmpty reports whether the service found nothing to recommend.
func (o ItemOutfit) IsEmpty() bool {
	if o.BaseItem == nil {
		return true
	}
	for _, items := range o.Recommendations {
		if len(items) > 0 {
			return false
		}
	}
	return true
}

// Outfit is one scored combination of garments.
type Outfit struct {
	Type  string    `json:"type,omitempty"`
	Items []Garment `json:"items"`
	Score float64   `json:"score"`
}

// ScorePercent returns the match score as a whole percentage.
func (o Outfit) ScorePercent() int {
	return int(o.Score*100 + 0.5)
}

// OccasionOutfits holds the combinations recommended for an occasion.
type OccasionOutfits struct {
	Occasion string   `json:"occasion,omitempty"`
	Season   string   `json:"season,omitempty"`
	Message  string   `json:"message,omitempty"`
	Outfits  []Outfit `json:"outfits,omitempty"`
	Success  bool     `json:"success"`
}

// ColorMatching lists colors that pair well with a base color.
type ColorMatching struct {
	BaseColor      string   `json:"base_color"`
	MatchingColors []string `json:"matching_colors"`
}

// OccasionQuery selects occasion-based recommendations.
type OccasionQuery struct {
	Occasion string
	Season   string
	Style    string
}

// ItemOutfitQuery narrows an item-based recommendation.
type ItemOutfitQuery struct {
	Occasion string
	Season   string
	Limit    int
}
