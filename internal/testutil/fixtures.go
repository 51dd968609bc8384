package testutil

import "github.com/Veraticus/wardrobe/internal/model"

// Fixture is a predefined set of garments for tests.
type Fixture interface {
	// Name returns the fixture's descriptive name.
	Name() string

	// Description says what the fixture is for.
	Description() string

	// Garments returns copies of the fixture's garments.
	Garments() []model.Garment
}

type fixture struct {
	name        string
	description string
	garments    []model.Garment
}

func (f *fixture) Name() string        { return f.name }
func (f *fixture) Description() string { return f.description }

func (f *fixture) Garments() []model.Garment {
	out := make([]model.Garment, len(f.garments))
	copy(out, f.garments)
	return out
}

// Predefined fixtures.
var (
	// FixtureMinimal is one top, one pair of trousers and one pair of shoes.
	FixtureMinimal Fixture = &fixture{
		name:        "Minimal",
		description: "Three garments for grid and batch tests",
		garments: []model.Garment{
			{ID: 1, Category: "上衣", Type: "衬衫", Color: "白色"},
			{ID: 2, Category: "裤子", Type: "牛仔裤", Color: "牛仔蓝", IsFavorite: true},
			{ID: 3, Category: "鞋子", Type: "运动鞋", Color: "黑色"},
		},
	}

	// FixtureStandard has one garment in every category.
	FixtureStandard Fixture = &fixture{
		name:        "Standard",
		description: "One garment per category with styles and seasons filled in",
		garments: []model.Garment{
			{Category: "上衣", Type: "T恤", Color: "白色", Style: model.StringList{"休闲"}, Season: model.StringList{"夏季"}},
			{Category: "裤子", Type: "西裤", Color: "黑色", Style: model.StringList{"通勤"}, Season: model.StringList{"春季", "秋季"}},
			{Category: "裙子", Type: "半身裙", Color: "米色", Style: model.StringList{"优雅"}, Season: model.StringList{"夏季"}},
			{Category: "外套", Type: "风衣", Color: "米色", Style: model.StringList{"通勤"}, Season: model.StringList{"春季", "秋季"}},
			{Category: "鞋子", Type: "乐福鞋", Color: "棕色", Style: model.StringList{"复古"}, Season: model.StringList{"春季"}},
			{Category: "帽子", Type: "棒球帽", Color: "蓝色", Style: model.StringList{"运动"}, Season: model.StringList{"夏季"}},
			{Category: "包包", Type: "托特包", Color: "黑色", Style: model.StringList{"简约"}},
			{Category: "配饰", Type: "围巾", Color: "灰色", Style: model.StringList{"简约"}, Season: model.StringList{"冬季"}},
		},
	}
)
