// Package service defines the contract between the workflows and the closet service.
package service

import (
	"context"
	"io"

	"github.com/Veraticus/wardrobe/internal/model"
)

// ImageVariant selects which stored rendition of a garment image to fetch.
type ImageVariant int

const (
	// ImageOriginal is the uploaded photo.
	ImageOriginal ImageVariant = iota
	// ImageTransparent is the background-removed rendition.
	ImageTransparent
)

// Classifier turns an uploaded image into proposed attributes.
type Classifier interface {
	// Upload sends one image and returns the classification proposal.
	// With autoClassify false the service stores the file without running the classifier.
	Upload(ctx context.Context, file model.PendingFile, autoClassify bool) (*model.ClassificationResult, error)
	PreviewClassify(ctx context.Context, file model.PendingFile) (*model.ClassificationResult, error)
}

// Catalog covers reads and writes of persisted garments.
type Catalog interface {
	List(ctx context.Context, filter model.ListFilter) ([]model.Garment, error)
	Get(ctx context.Context, id int64) (*model.Garment, error)
	Confirm(ctx context.Context, record model.ConfirmedRecord) (*model.Garment, error)
	Create(ctx context.Context, record model.ConfirmedRecord) (*model.Garment, error)
	Update(ctx context.Context, id int64, update model.GarmentUpdate) (*model.Garment, error)
	Delete(ctx context.Context, id int64) error
	ToggleFavorite(ctx context.Context, id int64) (bool, error)
	ToggleArchive(ctx context.Context, id int64) (bool, error)
	RecordWear(ctx context.Context, id int64) (*model.WearRecord, error)
	Reclassify(ctx context.Context, id int64) (*model.Garment, error)
	Image(ctx context.Context, id int64, variant ImageVariant, w io.Writer) (string, error)
}

// Insights covers the read-only dashboards.
type Insights interface {
	Statistics(ctx context.Context) (*model.Statistics, error)
	FilterOptions(ctx context.Context) (*model.FilterOptions, error)
	ItemOutfit(ctx context.Context, id int64, query model.ItemOutfitQuery) (*model.ItemOutfit, error)
	OccasionOutfits(ctx context.Context, query model.OccasionQuery) (*model.OccasionOutfits, error)
	ColorMatching(ctx context.Context, color string) (*model.ColorMatching, error)
}

// ClothesService is the full remote service surface.
type ClothesService interface {
	Classifier
	Catalog
	Insights
}
