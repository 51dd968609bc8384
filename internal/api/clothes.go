package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Veraticus/wardrobe/internal/model"
	"github.com/Veraticus/wardrobe/internal/service"
)

func itemPath(id int64, suffix string) string {
	return "/clothes/" + strconv.FormatInt(id, 10) + suffix
}

// List returns garments matching filter.
func (c *Client) List(ctx context.Context, filter model.ListFilter) ([]model.Garment, error) {
	env, err := c.call(ctx, request{Method: http.MethodGet, Path: "/clothes/", Query: filter.Query()})
	if err != nil {
		return nil, err
	}
	var items []model.Garment
	if err := decodeData(env, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns one garment.
func (c *Client) Get(ctx context.Context, id int64) (*model.Garment, error) {
	return c.garment(ctx, request{Method: http.MethodGet, Path: itemPath(id, "")})
}

// Confirm saves a user-confirmed classification.
func (c *Client) Confirm(ctx context.Context, record model.ConfirmedRecord) (*model.Garment, error) {
	return c.garment(ctx, request{Method: http.MethodPost, Path: "/clothes/confirm", JSON: record})
}

// Create registers a garment directly, without an upload.
func (c *Client) Create(ctx context.Context, record model.ConfirmedRecord) (*model.Garment, error) {
	return c.garment(ctx, request{Method: http.MethodPost, Path: "/clothes/", JSON: record})
}

// Update applies a partial update.
func (c *Client) Update(ctx context.Context, id int64, update model.GarmentUpdate) (*model.Garment, error) {
	return c.garment(ctx, request{Method: http.MethodPut, Path: itemPath(id, ""), JSON: update})
}

// Reclassify runs the classifier again over the stored original image.
func (c *Client) Reclassify(ctx context.Context, id int64) (*model.Garment, error) {
	return c.garment(ctx, request{Method: http.MethodPost, Path: itemPath(id, "/reclassify")})
}

// Delete removes a garment and its images.
func (c *Client) Delete(ctx context.Context, id int64) error {
	_, err := c.call(ctx, request{Method: http.MethodDelete, Path: itemPath(id, "")})
	return err
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (c *Client) ToggleFavorite(ctx context.Context, id int64) (bool, error) {
	env, err := c.call(ctx, request{Method: http.MethodPost, Path: itemPath(id, "/favorite")})
	if err != nil {
		return false, err
	}
	var state struct {
		IsFavorite bool `json:"is_favorite"`
	}
	if err := decodeData(env, &state); err != nil {
		return false, err
	}
	return state.IsFavorite, nil
}

// ToggleArchive flips the archived flag and returns the new value.
func (c *Client) ToggleArchive(ctx context.Context, id int64) (bool, error) {
	env, err := c.call(ctx, request{Method: http.MethodPost, Path: itemPath(id, "/archive")})
	if err != nil {
		return false, err
	}
	var state struct {
		IsArchived bool `json:"is_archived"`
	}
	if err := decodeData(env, &state); err != nil {
		return false, err
	}
	return state.IsArchived, nil
}

// RecordWear counts one wear of a garment.
func (c *Client) RecordWear(ctx context.Context, id int64) (*model.WearRecord, error) {
	env, err := c.call(ctx, request{Method: http.MethodPost, Path: itemPath(id, "/wear")})
	if err != nil {
		return nil, err
	}
	var record model.WearRecord
	if err := decodeData(env, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Image writes a stored image to w and returns its content type.
func (c *Client) Image(ctx context.Context, id int64, variant service.ImageVariant, w io.Writer) (string, error) {
	query := url.Values{}
	query.Set("transparent", strconv.FormatBool(variant == service.ImageTransparent))

	data, contentType, err := c.fetch(ctx, request{Method: http.MethodGet, Path: itemPath(id, "/image"), Query: query})
	if err != nil {
		return "", err
	}
	if _, err := w.Write(data); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return contentType, nil
}

// Statistics returns the closet summary.
func (c *Client) Statistics(ctx context.Context) (*model.Statistics, error) {
	env, err := c.call(ctx, request{Method: http.MethodGet, Path: "/clothes/statistics"})
	if err != nil {
		return nil, err
	}
	var stats model.Statistics
	if err := decodeData(env, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// FilterOptions returns the values available for each list filter.
func (c *Client) FilterOptions(ctx context.Context) (*model.FilterOptions, error) {
	env, err := c.call(ctx, request{Method: http.MethodGet, Path: "/clothes/filters"})
	if err != nil {
		return nil, err
	}
	var options model.FilterOptions
	if err := decodeData(env, &options); err != nil {
		return nil, err
	}
	return &options, nil
}

// ItemOutfit recommends garments to wear with the given one.
func (c *Client) ItemOutfit(ctx context.Context, id int64, query model.ItemOutfitQuery) (*model.ItemOutfit, error) {
	q := url.Values{}
	if query.Occasion != "" {
		q.Set("occasion", query.Occasion)
	}
	if query.Season != "" {
		q.Set("season", query.Season)
	}
	if query.Limit > 0 {
		q.Set("limit", strconv.Itoa(query.Limit))
	}

	env, err := c.call(ctx, request{Method: http.MethodGet, Path: itemPath(id, "/outfit"), Query: q})
	if err != nil {
		return nil, err
	}
	var outfit model.ItemOutfit
	if err := decodeData(env, &outfit); err != nil {
		return nil, err
	}
	return &outfit, nil
}

// OccasionOutfits recommends complete outfits for an occasion.
// A reply with success=false is not an error; its message explains why nothing matched.
func (c *Client) OccasionOutfits(ctx context.Context, query model.OccasionQuery) (*model.OccasionOutfits, error) {
	q := url.Values{}
	q.Set("occasion", query.Occasion)
	if query.Season != "" {
		q.Set("season", query.Season)
	}
	if query.Style != "" {
		q.Set("style", query.Style)
	}

	env, err := c.call(ctx, request{Method: http.MethodGet, Path: "/clothes/outfit/occasion", Query: q})
	if err != nil {
		return nil, err
	}
	outfits := model.OccasionOutfits{Occasion: query.Occasion, Season: query.Season}
	if err := decodeData(env, &outfits); err != nil {
		return nil, err
	}
	outfits.Success = env.Success
	if outfits.Message == "" {
		outfits.Message = env.Message
	}
	return &outfits, nil
}

// ColorMatching returns colors that pair with color.
func (c *Client) ColorMatching(ctx context.Context, color string) (*model.ColorMatching, error) {
	env, err := c.call(ctx, request{
		Method: http.MethodGet,
		Path:   "/clothes/colors/" + url.PathEscape(color) + "/matching",
	})
	if err != nil {
		return nil, err
	}
	matching := model.ColorMatching{BaseColor: color}
	if err := decodeData(env, &matching); err != nil {
		return nil, err
	}
	return &matching, nil
}

func (c *Client) garment(ctx context.Context, r request) (*model.Garment, error) {
	env, err := c.call(ctx, r)
	if err != nil {
		return nil, err
	}
	var g model.Garment
	if err := decodeData(env, &g); err != nil {
		return nil, err
	}
	return &g, nil
}
