package model

import (
	"net/url"
	"strconv"
)

// Garment is a persisted record in the closet service's catalog.
type Garment struct {
	PurchaseDate        *Timestamp `json:"purchase_date,omitempty"`
	LastWornDate        *Timestamp `json:"last_worn_date,omitempty"`
	CreatedAt           *Timestamp `json:"created_at,omitempty"`
	UpdatedAt           *Timestamp `json:"updated_at,omitempty"`
	Price               *float64   `json:"price,omitempty"`
	Filename            string     `json:"filename"`
	OriginalPath        string     `json:"original_path,omitempty"`
	TransparentPath     string     `json:"transparent_path,omitempty"`
	Category            string     `json:"category,omitempty"`
	Type                string     `json:"type,omitempty"`
	Color               string     `json:"color,omitempty"`
	ColorTone           string     `json:"color_tone,omitempty"`
	Material            string     `json:"material,omitempty"`
	Thickness           string     `json:"thickness,omitempty"`
	SuitableAgeGroup    string     `json:"suitable_age_group,omitempty"`
	BodyTypeTips        string     `json:"body_type_tips,omitempty"`
	Description         string     `json:"description,omitempty"`
	Confidence          string     `json:"confidence,omitempty"`
	Brand               string     `json:"brand,omitempty"`
	UserNotes           string     `json:"user_notes,omitempty"`
	Style               StringList `json:"style,omitempty"`
	Features            StringList `json:"features,omitempty"`
	Season              StringList `json:"season,omitempty"`
	SuitableWeather     StringList `json:"suitable_weather,omitempty"`
	SuitableOccasions   StringList `json:"suitable_occasions,omitempty"`
	MatchingTops        StringList `json:"matching_tops,omitempty"`
	MatchingBottoms     StringList `json:"matching_bottoms,omitempty"`
	MatchingShoes       StringList `json:"matching_shoes,omitempty"`
	MatchingAccessories StringList `json:"matching_accessories,omitempty"`
	MatchingColors      StringList `json:"matching_colors,omitempty"`
	OutfitTags          StringList `json:"outfit_tags,omitempty"`
	ID                  int64      `json:"id"`
	WearCount           int        `json:"wear_count"`
	IsFavorite          bool       `json:"is_favorite"`
	IsArchived          bool       `json:"is_archived"`
}

// DisplayType returns the garment type or a placeholder for unclassified items.
func (g Garment) DisplayType() string {
	if g.Type == "" {
		return "未分类"
	}
	return g.Type
}

// Tags returns the tag line shown in the detail view: styles, thickness, color tone.
func (g Garment) Tags() []string {
	tags := make([]string, 0, len(g.Style)+2)
	tags = append(tags, g.Style...)
	if g.Thickness != "" {
		tags = append(tags, g.Thickness)
	}
	if g.ColorTone != "" {
		tags = append(tags, g.ColorTone)
	}
	return tags
}

// GarmentUpdate is a partial update. Nil fields are left untouched by the service.
type GarmentUpdate struct {
	Category          *string  `json:"category,omitempty"`
	Type              *string  `json:"type,omitempty"`
	Color             *string  `json:"color,omitempty"`
	ColorTone         *string  `json:"color_tone,omitempty"`
	Material          *string  `json:"material,omitempty"`
	Thickness         *string  `json:"thickness,omitempty"`
	Description       *string  `json:"description,omitempty"`
	Brand             *string  `json:"brand,omitempty"`
	UserNotes         *string  `json:"user_notes,omitempty"`
	Price             *float64 `json:"price,omitempty"`
	IsFavorite        *bool    `json:"is_favorite,omitempty"`
	IsArchived        *bool    `json:"is_archived,omitempty"`
	Style             []string `json:"style,omitempty"`
	Season            []string `json:"season,omitempty"`
	SuitableWeather   []string `json:"suitable_weather,omitempty"`
	SuitableOccasions []string `json:"suitable_occasions,omitempty"`
	MatchingColors    []string `json:"matching_colors,omitempty"`
	OutfitTags        []string `json:"outfit_tags,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (u GarmentUpdate) IsEmpty() bool {
	return u.Category == nil && u.Type == nil && u.Color == nil && u.ColorTone == nil &&
		u.Material == nil && u.Thickness == nil && u.Description == nil && u.Brand == nil &&
		u.UserNotes == nil && u.Price == nil && u.IsFavorite == nil && u.IsArchived == nil &&
		u.Style == nil && u.Season == nil && u.SuitableWeather == nil &&
		u.SuitableOccasions == nil && u.MatchingColors == nil && u.OutfitTags == nil
}

// ListFilter narrows a garment listing. Zero values are not sent.
type ListFilter struct {
	IsFavorite *bool
	IsArchived *bool
	Category   string
	Color      string
	Style      string
	Season     string
	Search     string
	Skip       int
	Limit      int
}

// Query encodes the filter, dropping empty values the way the service expects.
func (f ListFilter) Query() url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}

	set("category", f.Category)
	set("color", f.Color)
	set("style", f.Style)
	set("season", f.Season)
	set("search", f.Search)
	if f.IsFavorite != nil {
		q.Set("is_favorite", strconv.FormatBool(*f.IsFavorite))
	}
	if f.IsArchived != nil {
		q.Set("is_archived", strconv.FormatBool(*f.IsArchived))
	}
	if f.Skip > 0 {
		q.Set("skip", strconv.Itoa(f.Skip))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// WearRecord is the service's reply to a recorded wear.
type WearRecord struct {
	LastWornDate *Timestamp `json:"last_worn_date"`
	WearCount    int        `json:"wear_count"`
}
