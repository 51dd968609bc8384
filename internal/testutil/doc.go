// Package testutil provides test infrastructure shared by the wardrobe packages:
// a fluent builder for garment fixtures and an in-memory closet service.
//
// Example usage:
//
//	garments := testutil.NewGarmentBuilder().
//		WithFixture(testutil.FixtureMinimal).
//		WithGarment(model.Garment{Type: "风衣", Category: "外套"}).
//		Build()
//
//	closet := testutil.NewCloset(garments...)
//	items, _ := closet.List(ctx, model.ListFilter{})
//
// The closet records every call so tests can assert on what was sent, and
// Fail makes individual garments return errors to exercise partial failures.
package testutil
