package testutil

import (
	"testing"

	"github.com/Veraticus/wardrobe/internal/model"
)

// Builder provides a fluent interface for constructing test garments.
type Builder interface {
	// WithGarment adds a single garment. A zero ID is assigned on Build.
	WithGarment(g model.Garment) Builder

	// WithGarments adds several garments.
	WithGarments(gs ...model.Garment) Builder

	// WithFixture adds the garments of a predefined fixture.
	WithFixture(fixture Fixture) Builder

	// Favorite marks the most recently added garment as a favorite.
	Favorite() Builder

	// Worn gives the most recently added garment a wear count.
	Worn(times int) Builder

	// Build numbers the garments and returns them.
	Build() Garments
}

type builder struct {
	garments []model.Garment
}

// NewGarmentBuilder creates an empty builder.
func NewGarmentBuilder() Builder {
	return &builder{}
}

func (b *builder) WithGarment(g model.Garment) Builder {
	b.garments = append(b.garments, g)
	return b
}

func (b *builder) WithGarments(gs ...model.Garment) Builder {
	b.garments = append(b.garments, gs...)
	return b
}

func (b *builder) WithFixture(fixture Fixture) Builder {
	return b.WithGarments(fixture.Garments()...)
}

func (b *builder) Favorite() Builder {
	if n := len(b.garments); n > 0 {
		b.garments[n-1].IsFavorite = true
	}
	return b
}

func (b *builder) Worn(times int) Builder {
	if n := len(b.garments); n > 0 {
		b.garments[n-1].WearCount = times
	}
	return b
}

func (b *builder) Build() Garments {
	used := make(map[int64]bool, len(b.garments))
	for _, g := range b.garments {
		if g.ID != 0 {
			used[g.ID] = true
		}
	}

	out := make(Garments, len(b.garments))
	next := int64(1)
	for i, g := range b.garments {
		if g.ID == 0 {
			for used[next] {
				next++
			}
			g.ID = next
			used[next] = true
		}
		if g.Filename == "" {
			g.Filename = g.Type + ".png"
		}
		out[i] = g
	}
	return out
}

// Garments is a collection of built test garments.
type Garments []model.Garment

// Find returns the first garment of the given type, or nil.
func (gs Garments) Find(garmentType string) *model.Garment {
	for i := range gs {
		if gs[i].Type == garmentType {
			return &gs[i]
		}
	}
	return nil
}

// MustFind returns the garment of the given type or fails the test.
func (gs Garments) MustFind(t *testing.T, garmentType string) model.Garment {
	t.Helper()
	g := gs.Find(garmentType)
	if g == nil {
		t.Fatalf("garment %q not found in test data", garmentType)
	}
	return *g
}

// IDs returns the garment ids in order.
func (gs Garments) IDs() []int64 {
	ids := make([]int64, len(gs))
	for i, g := range gs {
		ids[i] = g.ID
	}
	return ids
}
