// Package model defines the domain types exchanged with the closet service.
package model

import "strings"

// ColorSeparator joins multiple selected colors into the single color field.
const ColorSeparator = "、"

// ClassificationResult holds the attributes the service proposes for an uploaded image.
// It lives only between the classify call and the confirm call for one file.
type ClassificationResult struct {
	Filename            string     `json:"filename"`
	OriginalPath        string     `json:"original_path,omitempty"`
	TempID              string     `json:"temp_id,omitempty"`
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
}

// Colors splits the proposed color field into individual colors.
func (r ClassificationResult) Colors() []string {
	return SplitColors(r.Color)
}

// SplitColors splits a joined color field. Both the ideographic and the ASCII comma are accepted.
func SplitColors(color string) []string {
	if strings.TrimSpace(color) == "" {
		return nil
	}
	fields := strings.FieldsFunc(color, func(r rune) bool {
		return r == '、' || r == ',' || r == '，'
	})
	colors := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			colors = append(colors, f)
		}
	}
	return colors
}

// ConfirmedRecord is the user-validated record sent to the confirm endpoint.
// Filename and OriginalPath pass through unchanged from the classify step.
type ConfirmedRecord struct {
	Filename          string   `json:"filename"`
	OriginalPath      string   `json:"original_path,omitempty"`
	Category          string   `json:"category"`
	Type              string   `json:"type"`
	Color             string   `json:"color"`
	Material          string   `json:"material"`
	Thickness         string   `json:"thickness"`
	Description       string   `json:"description"`
	Style             []string `json:"style"`
	Season            []string `json:"season"`
	SuitableOccasions []string `json:"suitable_occasions"`
}
