package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_AssignsFreeIDs(t *testing.T) {
	garments := NewGarmentBuilder().
		WithFixture(FixtureMinimal).
		WithGarment(model.Garment{Type: "风衣", Category: "外套"}).Favorite().Worn(2).
		Build()

	require.Len(t, garments, 4)
	assert.Equal(t, []int64{1, 2, 3, 4}, garments.IDs())

	coat := garments.MustFind(t, "风衣")
	assert.True(t, coat.IsFavorite)
	assert.Equal(t, 2, coat.WearCount)
	assert.Equal(t, "风衣.png", coat.Filename)
	assert.Nil(t, garments.Find("礼服"))
}

func TestFixtures_ReturnCopies(t *testing.T) {
	first := FixtureStandard.Garments()
	first[0].Type = "changed"

	assert.Equal(t, "T恤", FixtureStandard.Garments()[0].Type)
	assert.Len(t, FixtureStandard.Garments(), len(model.Categories))
	assert.NotEmpty(t, FixtureMinimal.Name())
	assert.NotEmpty(t, FixtureStandard.Description())
}

func TestCloset_ListFilters(t *testing.T) {
	closet := NewCloset(NewGarmentBuilder().WithFixture(FixtureStandard).Build()...)
	ctx := context.Background()
	favorite := true

	tests := []struct {
		name   string
		filter model.ListFilter
		want   int
	}{
		{"everything", model.ListFilter{}, 8},
		{"category", model.ListFilter{Category: "外套"}, 1},
		{"season", model.ListFilter{Season: "夏季"}, 3},
		{"style", model.ListFilter{Style: "通勤"}, 2},
		{"search", model.ListFilter{Search: "裤"}, 1},
		{"favorites", model.ListFilter{IsFavorite: &favorite}, 0},
		{"limit", model.ListFilter{Limit: 2}, 2},
		{"skip past end", model.ListFilter{Skip: 20}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := closet.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, items, tt.want)
		})
	}
}

func TestCloset_MutationsAndFailures(t *testing.T) {
	closet := NewCloset(FixtureMinimal.Garments()...)
	ctx := context.Background()

	favorite, err := closet.ToggleFavorite(ctx, 1)
	require.NoError(t, err)
	assert.True(t, favorite)

	closet.Fail(2)
	_, err = closet.ToggleArchive(ctx, 2)
	assert.ErrorIs(t, err, ErrInjected)

	require.NoError(t, closet.Delete(ctx, 3))
	_, err = closet.Get(ctx, 3)
	assert.ErrorIs(t, err, common.ErrNotFound)

	saved, err := closet.Confirm(ctx, model.ConfirmedRecord{Filename: "new.png", Category: "外套"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), saved.ID)
	assert.Equal(t, 3, closet.Len())
	assert.Equal(t, 1, closet.CallCount("favorite"))
	assert.Equal(t, 1, closet.CallCount("archive"))
}
