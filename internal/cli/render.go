package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/engine"
	"github.com/Veraticus/wardrobe/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// chartWidth is the number of cells a 100% bar spans.
const chartWidth = 30

// Renderer writes service data in the configured output format.
// Table output is styled for people; json and yaml are for scripts.
type Renderer struct {
	writer io.Writer
	now    func() time.Time
	format string
}

// NewRenderer creates a renderer. Unknown formats are rejected.
func NewRenderer(writer io.Writer, format string) (*Renderer, error) {
	switch format {
	case "", FormatTable:
		format = FormatTable
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("%w: output format %q", common.ErrInvalidConfig, format)
	}
	return &Renderer{writer: writer, format: format, now: time.Now}, nil
}

// Garments renders a listing with its sidebar counts.
func (r *Renderer) Garments(items []model.Garment) error {
	if r.format != FormatTable {
		return r.encode(items)
	}
	if len(items) == 0 {
		return r.write(SubtleStyle.Render("No garments found."))
	}

	rows := make([][]string, 0, len(items))
	favorites := 0
	for _, g := range items {
		if g.IsFavorite {
			favorites++
		}
		rows = append(rows, []string{
			strconv.FormatInt(g.ID, 10),
			flags(g),
			orDash(g.Category),
			g.DisplayType(),
			orDash(g.Color),
			orDash(strings.Join(g.Season, " ")),
			strconv.Itoa(g.WearCount),
		})
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("ID", "", "CATEGORY", "TYPE", "COLOR", "SEASON", "WORN").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})

	summary := SubtleStyle.Render(fmt.Sprintf("%d garment(s), %d favorite(s)", len(items), favorites))
	return r.write(t.Render() + "\n" + summary)
}

// Garment renders the detail view of one garment.
func (r *Renderer) Garment(g *model.Garment) error {
	if r.format != FormatTable {
		return r.encode(g)
	}

	var b strings.Builder
	if tags := g.Tags(); len(tags) > 0 {
		rendered := make([]string, len(tags))
		for i, tag := range tags {
			rendered[i] = TagStyle.Render(tag)
		}
		b.WriteString(strings.Join(rendered, " ") + "\n\n")
	}

	b.WriteString(BoldStyle.Render("Basics") + "\n")
	writeField(&b, "Category", g.Category)
	writeField(&b, "Color", g.Color)
	writeField(&b, "Material", g.Material)
	writeField(&b, "Season", strings.Join(g.Season, ", "))
	writeField(&b, "Brand", g.Brand)
	if g.Price != nil {
		writeField(&b, "Price", strconv.FormatFloat(*g.Price, 'f', 2, 64))
	}

	if len(g.SuitableOccasions) > 0 || len(g.SuitableWeather) > 0 {
		b.WriteString("\n" + BoldStyle.Render("Occasions") + "\n")
		writeField(&b, "Occasions", strings.Join(g.SuitableOccasions, ", "))
		writeField(&b, "Weather", strings.Join(g.SuitableWeather, ", "))
	}

	if len(g.MatchingTops)+len(g.MatchingBottoms)+len(g.MatchingShoes)+len(g.MatchingAccessories) > 0 {
		b.WriteString("\n" + BoldStyle.Render("Pairs with") + "\n")
		writeField(&b, "Tops", strings.Join(g.MatchingTops, ", "))
		writeField(&b, "Bottoms", strings.Join(g.MatchingBottoms, ", "))
		writeField(&b, "Shoes", strings.Join(g.MatchingShoes, ", "))
		writeField(&b, "Accessories", strings.Join(g.MatchingAccessories, ", "))
	}

	if g.Description != "" {
		b.WriteString("\n" + g.Description + "\n")
	}

	worn := "never"
	if g.LastWornDate != nil && !g.LastWornDate.IsZero() {
		worn = RelativeDate(g.LastWornDate.Time, r.now())
	}
	b.WriteString("\n" + SubtleStyle.Render(fmt.Sprintf("Worn %d time(s), last %s", g.WearCount, worn)))

	title := fmt.Sprintf("#%d %s %s", g.ID, g.DisplayType(), flags(*g))
	return r.write(RenderBox(strings.TrimSpace(title), b.String()))
}

// Statistics renders the closet summary with a category chart.
func (r *Renderer) Statistics(stats *model.Statistics, options *model.FilterOptions) error {
	if r.format != FormatTable {
		return r.encode(struct {
			Statistics *model.Statistics    `json:"statistics"`
			Filters    *model.FilterOptions `json:"filters,omitempty"`
		}{stats, options})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total: %s   Favorites: %s   Never worn: %s\n\n",
		BoldStyle.Render(strconv.Itoa(stats.TotalItems)),
		BoldStyle.Render(strconv.Itoa(stats.Favorites)),
		BoldStyle.Render(strconv.Itoa(stats.NeverWornCount)))

	b.WriteString(BoldStyle.Render(ChartIcon+" By category") + "\n")
	b.WriteString(CategoryChart(stats.SortedDistribution()))

	if len(stats.RecentlyWorn) > 0 {
		b.WriteString("\n" + BoldStyle.Render("Recently worn") + "\n")
		for _, g := range stats.RecentlyWorn {
			when := ""
			if g.LastWornDate != nil {
				when = RelativeDate(g.LastWornDate.Time, r.now())
			}
			fmt.Fprintf(&b, "  #%d %s %s\n", g.ID, g.DisplayType(), SubtleStyle.Render(when))
		}
	}

	if options != nil {
		b.WriteString("\n" + FormatFilterOptions(*options))
	}
	return r.write(RenderBox("Closet Statistics", strings.TrimRight(b.String(), "\n")))
}

// FilterOptions renders the values available for list filters.
func (r *Renderer) FilterOptions(options *model.FilterOptions) error {
	if r.format != FormatTable {
		return r.encode(options)
	}
	return r.write(FormatFilterOptions(*options))
}

// ItemOutfit renders recommendations around one garment.
func (r *Renderer) ItemOutfit(outfit *model.ItemOutfit) error {
	if r.format != FormatTable {
		return r.encode(outfit)
	}
	if outfit.IsEmpty() {
		msg := outfit.Message
		if msg == "" {
			msg = "No matching garments yet."
		}
		return r.write(SubtleStyle.Render(msg))
	}

	var b strings.Builder
	for _, category := range model.Categories {
		items := outfit.Recommendations[category]
		if len(items) == 0 {
			continue
		}
		b.WriteString(BoldStyle.Render(category) + "\n")
		for _, g := range items {
			fmt.Fprintf(&b, "  #%d %s %s\n", g.ID, g.DisplayType(), SubtleStyle.Render(g.Color))
		}
	}
	for category, items := range outfit.Recommendations {
		if containsString(model.Categories, category) || len(items) == 0 {
			continue
		}
		b.WriteString(BoldStyle.Render(category) + "\n")
		for _, g := range items {
			fmt.Fprintf(&b, "  #%d %s %s\n", g.ID, g.DisplayType(), SubtleStyle.Render(g.Color))
		}
	}
	for _, s := range outfit.Suggestions {
		b.WriteString(InfoStyle.Render(SparkleIcon+" "+s) + "\n")
	}

	title := fmt.Sprintf("Outfits with #%d %s", outfit.BaseItem.ID, outfit.BaseItem.DisplayType())
	return r.write(RenderBox(title, strings.TrimRight(b.String(), "\n")))
}

// OccasionOutfits renders scored outfits for an occasion.
func (r *Renderer) OccasionOutfits(result *model.OccasionOutfits) error {
	if r.format != FormatTable {
		return r.encode(result)
	}
	if !result.Success || len(result.Outfits) == 0 {
		msg := result.Message
		if msg == "" {
			msg = "No outfits found for this occasion."
		}
		return r.write(SubtleStyle.Render(msg))
	}

	var b strings.Builder
	for i, o := range result.Outfits {
		fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render(fmt.Sprintf("Outfit %d", i+1)),
			SuccessStyle.Render(fmt.Sprintf("%d%% match", o.ScorePercent())))
		for _, g := range o.Items {
			fmt.Fprintf(&b, "  #%d %s · %s %s\n", g.ID, orDash(g.Category), g.DisplayType(), SubtleStyle.Render(g.Color))
		}
	}

	title := "Outfits for " + result.Occasion
	if result.Season != "" {
		title += " (" + result.Season + ")"
	}
	return r.write(RenderBox(title, strings.TrimRight(b.String(), "\n")))
}

// ColorMatching renders colors that pair with a base color.
func (r *Renderer) ColorMatching(m *model.ColorMatching) error {
	if r.format != FormatTable {
		return r.encode(m)
	}
	if len(m.MatchingColors) == 0 {
		return r.write(SubtleStyle.Render("No suggestions for " + m.BaseColor))
	}
	return r.write(fmt.Sprintf("%s pairs with %s", BoldStyle.Render(m.BaseColor), strings.Join(m.MatchingColors, ", ")))
}

// BatchResult renders the tally of a batch run.
func (r *Renderer) BatchResult(result engine.BatchResult) error {
	if r.format != FormatTable {
		failed := make(map[string]string, len(result.Errors))
		for id, err := range result.Errors {
			failed[strconv.FormatInt(id, 10)] = err.Error()
		}
		return r.encode(struct {
			Errors  map[string]string `json:"errors,omitempty"`
			Action  string            `json:"action"`
			Success int               `json:"success"`
			Failed  int               `json:"failed"`
		}{failed, result.Action.String(), result.Success, result.Failed})
	}
	return r.write(FormatBatchResult(result))
}

// Message prints a single line in table mode and a {"message": ...} object otherwise.
func (r *Renderer) Message(msg string) error {
	if r.format != FormatTable {
		return r.encode(map[string]string{"message": msg})
	}
	return r.write(FormatSuccess(msg))
}

// Value encodes an arbitrary value in json or yaml mode and prints it with %v in table mode.
func (r *Renderer) Value(v any) error {
	if r.format != FormatTable {
		return r.encode(v)
	}
	return r.write(fmt.Sprintf("%v", v))
}

func (r *Renderer) encode(v any) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.writer)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatYAML:
		// Round-trip through JSON so yaml keys follow the json tags.
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		enc := yaml.NewEncoder(r.writer)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: output format %q", common.ErrInvalidConfig, r.format)
	}
}

func (r *Renderer) write(s string) error {
	if _, err := fmt.Fprintln(r.writer, s); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// CategoryChart draws one bar per category. Bars never drop below 10% so
// small categories stay visible.
func CategoryChart(counts []model.CategoryCount) string {
	if len(counts) == 0 {
		return SubtleStyle.Render("  No data yet") + "\n"
	}

	labelWidth := 0
	for _, c := range counts {
		labelWidth = max(labelWidth, lipgloss.Width(categoryLabel(c.Category)))
	}

	var b strings.Builder
	for _, c := range counts {
		label := categoryLabel(c.Category)
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(label))
		fmt.Fprintf(&b, "  %s%s %s %d\n", label, pad, BarStyle.Render(strings.Repeat("█", BarCells(c.Percent))), c.Count)
	}
	return b.String()
}

// BarCells converts a percentage into chart cells, floored at 10%.
func BarCells(percent int) int {
	percent = min(max(percent, 10), 100)
	return (percent*chartWidth + 50) / 100
}

// FormatConfirmForm renders the confirmation form state.
func FormatConfirmForm(form engine.ConfirmForm) string {
	var b strings.Builder
	writeField(&b, "Category", form.Category)
	writeField(&b, "Type", form.Type)
	writeField(&b, "Colors", strings.Join(form.Colors, model.ColorSeparator))
	writeField(&b, "Styles", strings.Join(form.Styles, ", "))
	writeField(&b, "Seasons", strings.Join(form.Seasons, ", "))
	writeField(&b, "Occasions", strings.Join(form.Occasions, ", "))
	writeField(&b, "Material", form.Material)
	writeField(&b, "Thickness", form.Thickness)
	writeField(&b, "Description", form.Description)
	return strings.TrimRight(b.String(), "\n")
}

// FormatWorkflowReport summarizes an upload run.
func FormatWorkflowReport(report engine.WorkflowReport, elapsed time.Duration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Saved: %d\n", SuccessIcon, report.Saved)
	fmt.Fprintf(&b, "%s Failed: %d\n", ErrorIcon, report.Failed)
	fmt.Fprintf(&b, "» Skipped: %d\n", report.Cancelled)
	if failed := report.FailedFiles(); len(failed) > 0 {
		b.WriteString("\nNot saved:\n")
		for _, o := range failed {
			fmt.Fprintf(&b, "  • %s (%s: %v)\n", o.File.Name, o.FailedAt, o.Err)
		}
	}
	if elapsed > 0 {
		fmt.Fprintf(&b, "\nTime taken: %s", elapsed.Round(time.Second))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatBatchResult summarizes a batch run.
func FormatBatchResult(result engine.BatchResult) string {
	lines := []string{}
	if result.Success > 0 {
		lines = append(lines, FormatSuccess(fmt.Sprintf("%s: %d succeeded", result.Action, result.Success)))
	}
	if result.Failed > 0 {
		lines = append(lines, FormatError(fmt.Sprintf("%s: %d failed", result.Action, result.Failed)))
	}
	return strings.Join(lines, "\n")
}

// FormatFilterOptions lists filter values by kind.
func FormatFilterOptions(options model.FilterOptions) string {
	var b strings.Builder
	writeField(&b, "Categories", strings.Join(options.Categories, ", "))
	writeField(&b, "Colors", strings.Join(options.Colors, ", "))
	writeField(&b, "Styles", strings.Join(options.Styles, ", "))
	return strings.TrimRight(b.String(), "\n")
}

// RelativeDate renders t as "today", "yesterday" or a short month-day date.
func RelativeDate(t, now time.Time) string {
	switch diff := now.Sub(t); {
	case diff < 24*time.Hour:
		return "today"
	case diff < 48*time.Hour:
		return "yesterday"
	default:
		return t.Format("Jan 2")
	}
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s %s\n", SubtleStyle.Render(label+":"), value)
}

func flags(g model.Garment) string {
	var f string
	if g.IsFavorite {
		f += FavoriteIcon
	}
	if g.IsArchived {
		f += ArchiveIcon
	}
	return f
}

func categoryLabel(category string) string {
	if category == "" {
		return "其他"
	}
	return category
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
