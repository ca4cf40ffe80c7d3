package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"divyakart/database"
	"divyakart/models"
	"divyakart/store"
)

type VariantService struct {
	store store.Store
	log   *zap.Logger
}

func NewVariantService(st store.Store, log *zap.Logger) *VariantService {
	return &VariantService{store: st, log: log}
}

func (s *VariantService) Create(ctx context.Context, variant models.Variant) (*models.Variant, error) {
	now := time.Now()
	variant.CreatedAt = now
	variant.UpdatedAt = now

	id, err := s.store.Create(ctx, database.Variants, variant)
	if err != nil {
		return nil, err
	}
	variant.ID = id
	return &variant, nil
}

func (s *VariantService) ListByProduct(ctx context.Context, productID string) ([]models.Variant, error) {
	var variants []models.Variant
	err := s.store.Find(ctx, database.Variants, store.Query{Field: "productId", Value: productID, Sort: "createdAt"}, &variants)
	if err != nil {
		return nil, err
	}
	return variants, nil
}

func (s *VariantService) Update(ctx context.Context, id string, fields map[string]any) (*models.Variant, error) {
	fields["updatedAt"] = time.Now()
	if err := s.store.Update(ctx, database.Variants, id, fields); err != nil {
		return nil, err
	}
	var variant models.Variant
	if err := s.store.GetByID(ctx, database.Variants, id, &variant); err != nil {
		return nil, err
	}
	return &variant, nil
}

func (s *VariantService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, database.Variants, id)
}

// EffectiveDefault picks the variant the storefront preselects: the
// flagged default, else the first with stock, else the first.
func EffectiveDefault(variants []models.Variant) (models.Variant, bool) {
	if len(variants) == 0 {
		return models.Variant{}, false
	}
	for _, v := range variants {
		if v.IsDefault {
			return v, true
		}
	}
	for _, v := range variants {
		if v.Inventory > 0 {
			return v, true
		}
	}
	return variants[0], true
}

// SynthesizeDefault builds a stand-in variant from the product record,
// used when a product has no variants or the variant fetch failed.
func SynthesizeDefault(p models.Product) models.Variant {
	return models.Variant{
		ID:        "default-" + p.ID,
		ProductID: p.ID,
		Label:     "Standard",
		Price:     p.Price,
		Discount:  p.Discount,
		Inventory: 1,
		IsDefault: true,
	}
}
