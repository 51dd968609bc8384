package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics_SortedDistribution(t *testing.T) {
	stats := Statistics{CategoryDistribution: map[string]int{
		"裤子": 2,
		"上衣": 5,
		"鞋子": 2,
		"帽子": 1,
	}}

	got := stats.SortedDistribution()
	require.Len(t, got, 4)

	assert.Equal(t, CategoryCount{Category: "上衣", Count: 5, Percent: 50}, got[0])
	// Equal counts fall back to name order.
	assert.Equal(t, "裤子", got[1].Category)
	assert.Equal(t, "鞋子", got[2].Category)
	assert.Equal(t, 20, got[1].Percent)
	assert.Equal(t, CategoryCount{Category: "帽子", Count: 1, Percent: 10}, got[3])

	assert.Nil(t, Statistics{}.SortedDistribution())
}

func TestClassificationResult_Colors(t *testing.T) {
	tests := []struct {
		name  string
		color string
		want  []string
	}{
		{name: "single", color: "黑色", want: []string{"黑色"}},
		{name: "ideographic comma", color: "黑色、白色", want: []string{"黑色", "白色"}},
		{name: "mixed separators", color: "黑色, 白色，灰色", want: []string{"黑色", "白色", "灰色"}},
		{name: "blank", color: "  ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassificationResult{Color: tt.color}.Colors())
		})
	}
}

func TestOutfits(t *testing.T) {
	assert.Equal(t, 87, Outfit{Score: 0.866}.ScorePercent())

	var empty ItemOutfit
	assert.True(t, empty.IsEmpty())

	full := ItemOutfit{
		BaseItem:        &Garment{ID: 1},
		Recommendations: map[string][]Garment{"裤子": {{ID: 2}}},
	}
	assert.False(t, full.IsEmpty())

	var occasion OccasionOutfits
	require.NoError(t, json.Unmarshal([]byte(`{"success":false,"message":"衣柜中没有足够的衣物"}`), &occasion))
	assert.False(t, occasion.Success)
	assert.Equal(t, "衣柜中没有足够的衣物", occasion.Message)
	assert.Empty(t, occasion.Outfits)
}

func TestNormalizeSeason(t *testing.T) {
	assert.Equal(t, "春季", NormalizeSeason("春"))
	assert.Equal(t, "冬季", NormalizeSeason("冬季"))
	assert.Equal(t, "四季", NormalizeSeason("四季"))
}
