package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/wardrobe/internal/model"
	"golang.org/x/text/unicode/norm"
)

// Form fields that carry validation rules.
const (
	FieldCategory = "category"
	FieldColors   = "colors"
	FieldStyles   = "styles"
	FieldSeasons  = "seasons"
)

// ValidationError reports the first form field that blocks saving.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfirmForm is the editable state of one classification under review.
// Renderers draw it; they never hold state of their own.
type ConfirmForm struct {
	Filename     string
	OriginalPath string
	Category     string
	Type         string
	Material     string
	Thickness    string
	Description  string
	Colors       []string
	Styles       []string
	Seasons      []string
	Occasions    []string
}

// NewConfirmForm pre-fills a form from the service's proposal.
func NewConfirmForm(result *model.ClassificationResult) ConfirmForm {
	if result == nil {
		return ConfirmForm{}
	}

	seasons := make([]string, 0, len(result.Season))
	for _, s := range result.Season {
		seasons = append(seasons, model.NormalizeSeason(s))
	}

	form := ConfirmForm{
		Filename:     result.Filename,
		OriginalPath: result.OriginalPath,
		Category:     result.Category,
		Type:         result.Type,
		Material:     result.Material,
		Thickness:    result.Thickness,
		Description:  result.Description,
		Colors:       result.Colors(),
		Styles:       []string(result.Style),
		Seasons:      seasons,
		Occasions:    []string(result.SuitableOccasions),
	}
	return form.Normalized()
}

// Normalized returns a copy with text in NFC form, trimmed, and lists deduplicated.
func (f ConfirmForm) Normalized() ConfirmForm {
	f.Category = clean(f.Category)
	f.Type = clean(f.Type)
	f.Material = clean(f.Material)
	f.Thickness = clean(f.Thickness)
	f.Description = clean(f.Description)
	f.Colors = cleanList(f.Colors)
	f.Styles = cleanList(f.Styles)
	f.Seasons = cleanList(f.Seasons)
	f.Occasions = cleanList(f.Occasions)
	return f
}

// Validate returns a *ValidationError for the first rule the form breaks.
func (f ConfirmForm) Validate() error {
	f = f.Normalized()
	switch {
	case f.Category == "":
		return &ValidationError{Field: FieldCategory, Message: "select a category"}
	case len(f.Colors) == 0:
		return &ValidationError{Field: FieldColors, Message: "select at least one color"}
	case len(f.Styles) == 0:
		return &ValidationError{Field: FieldStyles, Message: "select at least one style"}
	case len(f.Seasons) == 0:
		return &ValidationError{Field: FieldSeasons, Message: "select at least one season"}
	}
	return nil
}

// Record builds the save payload. Call only after Validate succeeds.
func (f ConfirmForm) Record() model.ConfirmedRecord {
	f = f.Normalized()
	return model.ConfirmedRecord{
		Filename:          f.Filename,
		OriginalPath:      f.OriginalPath,
		Category:          f.Category,
		Type:              f.Type,
		Color:             strings.Join(f.Colors, model.ColorSeparator),
		Style:             nonNil(f.Styles),
		Season:            nonNil(f.Seasons),
		Material:          f.Material,
		Thickness:         f.Thickness,
		SuitableOccasions: nonNil(f.Occasions),
		Description:       f.Description,
	}
}

// Toggle adds value to list when absent and removes it when present.
func Toggle(list []string, value string) []string {
	if i := slices.Index(list, value); i >= 0 {
		return slices.Delete(slices.Clone(list), i, i+1)
	}
	return append(slices.Clone(list), value)
}

func clean(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

func cleanList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = clean(v)
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
