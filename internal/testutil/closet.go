package testutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/model"
	"github.com/Veraticus/wardrobe/internal/service"
)

// ErrInjected is returned for garments marked with Fail.
var ErrInjected = errors.New("service exploded")

// Closet is an in-memory service.ClothesService. It is safe for concurrent use.
type Closet struct {
	garments map[int64]*model.Garment
	failIDs  map[int64]bool
	calls    []string
	images   map[int64][]byte
	mu       sync.Mutex
	nextID   int64
}

var _ service.ClothesService = (*Closet)(nil)

// NewCloset creates a closet holding garments.
func NewCloset(garments ...model.Garment) *Closet {
	c := &Closet{
		garments: make(map[int64]*model.Garment),
		failIDs:  make(map[int64]bool),
		images:   make(map[int64][]byte),
	}
	for i := range garments {
		g := garments[i]
		c.garments[g.ID] = &g
		c.nextID = max(c.nextID, g.ID)
	}
	return c
}

// Fail makes every call that touches id return ErrInjected.
func (c *Closet) Fail(ids ...int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		c.failIDs[id] = true
	}
}

// Garment returns a copy of the stored garment.
func (c *Closet) Garment(id int64) (model.Garment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.garments[id]
	if !ok {
		return model.Garment{}, false
	}
	return *g, true
}

// Len returns the number of stored garments.
func (c *Closet) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.garments)
}

// CallCount returns how often call ("list", "favorite", "delete", ...) was made.
func (c *Closet) CallCount(call string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, made := range c.calls {
		if made == call {
			n++
		}
	}
	return n
}

// SetImage stores the bytes returned by Image for id.
func (c *Closet) SetImage(id int64, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images[id] = data
}

func (c *Closet) lookup(id int64) (*model.Garment, error) {
	if c.failIDs[id] {
		return nil, ErrInjected
	}
	g, ok := c.garments[id]
	if !ok {
		return nil, fmt.Errorf("garment %d: %w", id, common.ErrNotFound)
	}
	return g, nil
}

func (c *Closet) sortedIDs() []int64 {
	ids := make([]int64, 0, len(c.garments))
	for id := range c.garments {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// List applies the category, color, favorite, archived and search filters.
func (c *Closet) List(_ context.Context, filter model.ListFilter) ([]model.Garment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "list")

	items := make([]model.Garment, 0, len(c.garments))
	for _, id := range c.sortedIDs() {
		g := c.garments[id]
		if matches(*g, filter) {
			items = append(items, *g)
		}
	}
	if filter.Skip > 0 {
		items = items[min(filter.Skip, len(items)):]
	}
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func matches(g model.Garment, f model.ListFilter) bool {
	switch {
	case f.Category != "" && g.Category != f.Category:
		return false
	case f.Color != "" && g.Color != f.Color:
		return false
	case f.Style != "" && !slices.Contains(g.Style, f.Style):
		return false
	case f.Season != "" && !slices.Contains(g.Season, f.Season):
		return false
	case f.IsFavorite != nil && g.IsFavorite != *f.IsFavorite:
		return false
	case f.IsArchived != nil && g.IsArchived != *f.IsArchived:
		return false
	case f.Search != "" && !strings.Contains(g.Type+g.Description+g.UserNotes, f.Search):
		return false
	}
	return true
}

// Get returns a copy of one garment.
func (c *Closet) Get(_ context.Context, id int64) (*model.Garment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "get")
	g, err := c.lookup(id)
	if err != nil {
		return nil, err
	}
	copied := *g
	return &copied, nil
}

// ToggleFavorite flips the favorite flag.
func (c *Closet) ToggleFavorite(_ context.Context, id int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "favorite")
	g, err := c.lookup(id)
	if err != nil {
		return false, err
	}
	g.IsFavorite = !g.IsFavorite
	return g.IsFavorite, nil
}

// ToggleArchive flips the archived flag.
func (c *Closet) ToggleArchive(_ context.Context, id int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "archive")
	g, err := c.lookup(id)
	if err != nil {
		return false, err
	}
	g.IsArchived = !g.IsArchived
	return g.IsArchived, nil
}

// RecordWear increments the wear count.
func (c *Closet) RecordWear(_ context.Context, id int64) (*model.WearRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "wear")
	g, err := c.lookup(id)
	if err != nil {
		return nil, err
	}
	g.WearCount++
	return &model.WearRecord{WearCount: g.WearCount}, nil
}

// Delete removes a garment.
func (c *Closet) Delete(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "delete")
	if _, err := c.lookup(id); err != nil {
		return err
	}
	delete(c.garments, id)
	return nil
}

// Statistics counts garments per category, favorites and never-worn garments.
func (c *Closet) Statistics(_ context.Context) (*model.Statistics, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "statistics")
	stats := &model.Statistics{CategoryDistribution: map[string]int{}}
	for _, g := range c.garments {
		stats.TotalItems++
		stats.CategoryDistribution[g.Category]++
		if g.IsFavorite {
			stats.Favorites++
		}
		if g.WearCount == 0 {
			stats.NeverWornCount++
		}
	}
	return stats, nil
}

// Upload proposes a top for every image.
func (c *Closet) Upload(_ context.Context, file model.PendingFile, _ bool) (*model.ClassificationResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "upload")
	return &model.ClassificationResult{
		Filename:     file.Name,
		OriginalPath: "data/images/" + file.Name,
		Category:     "上衣",
		Season:       model.StringList{"夏"},
	}, nil
}

// PreviewClassify returns an empty proposal.
func (c *Closet) PreviewClassify(_ context.Context, file model.PendingFile) (*model.ClassificationResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "preview")
	return &model.ClassificationResult{Filename: file.Name}, nil
}

// Confirm stores a new garment from record.
func (c *Closet) Confirm(_ context.Context, record model.ConfirmedRecord) (*model.Garment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "confirm")
	c.nextID++
	g := &model.Garment{
		ID:                c.nextID,
		Filename:          record.Filename,
		Category:          record.Category,
		Type:              record.Type,
		Color:             record.Color,
		Style:             record.Style,
		Season:            record.Season,
		SuitableOccasions: record.SuitableOccasions,
	}
	c.garments[g.ID] = g
	copied := *g
	return &copied, nil
}

// Create stores a new garment like Confirm.
func (c *Closet) Create(ctx context.Context, record model.ConfirmedRecord) (*model.Garment, error) {
	return c.Confirm(ctx, record)
}

// Update applies the text fields and flags of update.
func (c *Closet) Update(_ context.Context, id int64, update model.GarmentUpdate) (*model.Garment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "update")
	g, err := c.lookup(id)
	if err != nil {
		return nil, err
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&g.Category, update.Category)
	set(&g.Type, update.Type)
	set(&g.Color, update.Color)
	set(&g.Material, update.Material)
	set(&g.Description, update.Description)
	set(&g.UserNotes, update.UserNotes)
	if update.IsFavorite != nil {
		g.IsFavorite = *update.IsFavorite
	}
	if update.IsArchived != nil {
		g.IsArchived = *update.IsArchived
	}
	if update.Season != nil {
		g.Season = update.Season
	}
	copied := *g
	return &copied, nil
}

// Reclassify returns the garment unchanged.
func (c *Closet) Reclassify(ctx context.Context, id int64) (*model.Garment, error) {
	return c.Get(ctx, id)
}

// Image writes the bytes set with SetImage.
func (c *Closet) Image(_ context.Context, id int64, _ service.ImageVariant, w io.Writer) (string, error) {
	c.mu.Lock()
	data, ok := c.images[id]
	c.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("image of garment %d: %w", id, common.ErrNotFound)
	}
	if _, err := w.Write(data); err != nil {
		return "", err
	}
	return "image/png", nil
}

// FilterOptions lists the categories, colors and styles in use.
func (c *Closet) FilterOptions(_ context.Context) (*model.FilterOptions, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	options := &model.FilterOptions{}
	for _, id := range c.sortedIDs() {
		g := c.garments[id]
		if g.Category != "" && !slices.Contains(options.Categories, g.Category) {
			options.Categories = append(options.Categories, g.Category)
		}
		if g.Color != "" && !slices.Contains(options.Colors, g.Color) {
			options.Colors = append(options.Colors, g.Color)
		}
		for _, s := range g.Style {
			if !slices.Contains(options.Styles, s) {
				options.Styles = append(options.Styles, s)
			}
		}
	}
	return options, nil
}

// ItemOutfit returns no suggestions.
func (c *Closet) ItemOutfit(_ context.Context, _ int64, _ model.ItemOutfitQuery) (*model.ItemOutfit, error) {
	return &model.ItemOutfit{}, nil
}

// OccasionOutfits returns no outfits.
func (c *Closet) OccasionOutfits(_ context.Context, query model.OccasionQuery) (*model.OccasionOutfits, error) {
	return &model.OccasionOutfits{Occasion: query.Occasion}, nil
}

// ColorMatching returns no matches.
func (c *Closet) ColorMatching(_ context.Context, color string) (*model.ColorMatching, error) {
	return &model.ColorMatching{BaseColor: color}, nil
}
