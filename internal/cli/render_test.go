package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/engine"
	"github.com/Veraticus/wardrobe/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testGarments() []model.Garment {
	return []model.Garment{
		{ID: 1, Category: "上衣", Type: "衬衫", Color: "白色", Season: model.StringList{"春季", "秋季"}, IsFavorite: true, WearCount: 4},
		{ID: 2, Category: "裤子", Color: "黑色", IsArchived: true},
	}
}

func newTestRenderer(t *testing.T, format string) (*Renderer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	r, err := NewRenderer(&buf, format)
	require.NoError(t, err)
	r.now = func() time.Time { return time.Date(2024, 5, 20, 12, 0, 0, 0, time.Local) }
	return r, &buf
}

func TestNewRenderer_RejectsUnknownFormat(t *testing.T) {
	_, err := NewRenderer(&bytes.Buffer{}, "xml")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	r, err := NewRenderer(&bytes.Buffer{}, "")
	require.NoError(t, err)
	assert.Equal(t, FormatTable, r.format)
}

func TestRenderer_GarmentsTable(t *testing.T) {
	r, buf := newTestRenderer(t, FormatTable)

	require.NoError(t, r.Garments(testGarments()))

	out := buf.String()
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "衬衫")
	assert.Contains(t, out, "未分类")
	assert.Contains(t, out, FavoriteIcon)
	assert.Contains(t, out, "2 garment(s), 1 favorite(s)")
}

func TestRenderer_GarmentsEmpty(t *testing.T) {
	r, buf := newTestRenderer(t, FormatTable)
	require.NoError(t, r.Garments(nil))
	assert.Contains(t, buf.String(), "No garments found.")
}

func TestRenderer_GarmentsJSON(t *testing.T) {
	r, buf := newTestRenderer(t, FormatJSON)
	require.NoError(t, r.Garments(testGarments()))

	var decoded []model.Garment
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "衬衫", decoded[0].Type)
	assert.NotContains(t, buf.String(), `\u`)
}

func TestRenderer_GarmentsYAMLUsesJSONKeys(t *testing.T) {
	r, buf := newTestRenderer(t, FormatYAML)
	require.NoError(t, r.Garments(testGarments()))

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, true, decoded[0]["is_favorite"])
	assert.EqualValues(t, 4, decoded[0]["wear_count"])
}

func TestRenderer_GarmentDetail(t *testing.T) {
	r, buf := newTestRenderer(t, FormatTable)
	worn := model.Timestamp{Time: time.Date(2024, 5, 19, 9, 0, 0, 0, time.Local)}
	g := model.Garment{
		ID:                7,
		Category:          "外套",
		Type:              "风衣",
		Style:             model.StringList{"通勤"},
		Thickness:         "中等",
		SuitableOccasions: model.StringList{"上班通勤"},
		MatchingShoes:     model.StringList{"乐福鞋"},
		Description:       "卡其色长款风衣",
		LastWornDate:      &worn,
		WearCount:         2,
	}

	require.NoError(t, r.Garment(&g))

	out := buf.String()
	assert.Contains(t, out, "#7 风衣")
	assert.Contains(t, out, "通勤")
	assert.Contains(t, out, "中等")
	assert.Contains(t, out, "乐福鞋")
	assert.Contains(t, out, "卡其色长款风衣")
	assert.Contains(t, out, "Worn 2 time(s), last yesterday")
}

func TestRelativeDate(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		when     time.Time
		name     string
		expected string
	}{
		{name: "an hour ago", when: now.Add(-time.Hour), expected: "today"},
		{name: "thirty hours ago", when: now.Add(-30 * time.Hour), expected: "yesterday"},
		{name: "three days ago", when: now.Add(-72 * time.Hour), expected: "May 17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RelativeDate(tt.when, now))
		})
	}
}

func TestCategoryChart(t *testing.T) {
	stats := model.Statistics{CategoryDistribution: map[string]int{"上衣": 18, "": 1, "鞋子": 1}}

	chart := CategoryChart(stats.SortedDistribution())
	lines := strings.Split(strings.TrimRight(chart, "\n"), "\n")

	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "上衣")
	assert.Contains(t, chart, "其他")
	assert.Equal(t, BarCells(10), strings.Count(lines[2], "█"))
}

func TestCategoryChart_NoData(t *testing.T) {
	assert.Contains(t, CategoryChart(nil), "No data yet")
}

func TestBarCells(t *testing.T) {
	assert.Equal(t, 3, BarCells(0))
	assert.Equal(t, 3, BarCells(5))
	assert.Equal(t, 15, BarCells(50))
	assert.Equal(t, chartWidth, BarCells(100))
	assert.Equal(t, chartWidth, BarCells(140))
}

func TestRenderer_Statistics(t *testing.T) {
	r, buf := newTestRenderer(t, FormatTable)
	stats := &model.Statistics{
		CategoryDistribution: map[string]int{"上衣": 3},
		TotalItems:           3,
		Favorites:            1,
		NeverWornCount:       2,
	}
	options := &model.FilterOptions{Colors: []string{"黑色", "白色"}}

	require.NoError(t, r.Statistics(stats, options))

	out := buf.String()
	assert.Contains(t, out, "Closet Statistics")
	assert.Contains(t, out, "By category")
	assert.Contains(t, out, "黑色, 白色")
}

func TestRenderer_OccasionOutfits(t *testing.T) {
	t.Run("scored outfits", func(t *testing.T) {
		r, buf := newTestRenderer(t, FormatTable)
		result := &model.OccasionOutfits{
			Success:  true,
			Occasion: "约会",
			Season:   "春季",
			Outfits: []model.Outfit{{
				Score: 0.876,
				Items: []model.Garment{{ID: 1, Category: "裙子", Type: "连衣裙"}},
			}},
		}

		require.NoError(t, r.OccasionOutfits(result))
		out := buf.String()
		assert.Contains(t, out, "Outfits for 约会 (春季)")
		assert.Contains(t, out, "88% match")
		assert.Contains(t, out, "连衣裙")
	})

	t.Run("service message", func(t *testing.T) {
		r, buf := newTestRenderer(t, FormatTable)
		require.NoError(t, r.OccasionOutfits(&model.OccasionOutfits{Message: "衣橱中衣物不足"}))
		assert.Contains(t, buf.String(), "衣橱中衣物不足")
	})
}

func TestRenderer_ItemOutfit(t *testing.T) {
	r, buf := newTestRenderer(t, FormatTable)
	outfit := &model.ItemOutfit{
		BaseItem: &model.Garment{ID: 3, Type: "毛衣"},
		Recommendations: map[string][]model.Garment{
			"裤子": {{ID: 4, Type: "阔腿裤", Color: "米色"}},
			"其他": {{ID: 5, Type: "围巾"}},
		},
		Suggestions: []string{"搭配浅色裤装"},
	}

	require.NoError(t, r.ItemOutfit(outfit))

	out := buf.String()
	assert.Contains(t, out, "Outfits with #3 毛衣")
	assert.Contains(t, out, "阔腿裤")
	assert.Contains(t, out, "围巾")
	assert.Contains(t, out, "搭配浅色裤装")
}

func TestRenderer_ColorMatching(t *testing.T) {
	r, buf := newTestRenderer(t, FormatTable)
	require.NoError(t, r.ColorMatching(&model.ColorMatching{BaseColor: "黑色", MatchingColors: []string{"白色", "灰色"}}))
	assert.Contains(t, buf.String(), "白色, 灰色")
}

func TestRenderer_BatchResultJSON(t *testing.T) {
	r, buf := newTestRenderer(t, FormatJSON)
	result := engine.BatchResult{
		Action:  engine.BatchDelete,
		Success: 1,
		Failed:  1,
		Errors:  map[int64]error{9: errors.New("gone")},
	}

	require.NoError(t, r.BatchResult(result))

	var decoded struct {
		Errors  map[string]string `json:"errors"`
		Action  string            `json:"action"`
		Success int               `json:"success"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "delete", decoded.Action)
	assert.Equal(t, 1, decoded.Success)
	assert.Equal(t, "gone", decoded.Errors["9"])
}

func TestFormatConfirmForm(t *testing.T) {
	out := FormatConfirmForm(engine.ConfirmForm{
		Category: "上衣",
		Colors:   []string{"黑色", "白色"},
		Seasons:  []string{"春季"},
	})

	assert.Contains(t, out, "上衣")
	assert.Contains(t, out, "黑色、白色")
	assert.NotContains(t, out, "Material")
}
