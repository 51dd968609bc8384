package components

import "github.com/Veraticus/wardrobe/internal/model"

// GarmentOpenedMsg requests the detail view of a garment.
type GarmentOpenedMsg struct {
	Garment model.Garment
}

// BackToGridMsg requests to go back to the garment grid.
type BackToGridMsg struct{}
