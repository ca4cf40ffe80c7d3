package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"divyakart/database"
	"divyakart/models"
	"divyakart/store"
)

// variantFanout bounds the parallel variant lookups during list enrichment.
const variantFanout = 8

// ProductWithVariants is the enriched listing shape the storefront reads.
type ProductWithVariants struct {
	models.Product
	Variants       []models.Variant `json:"variants"`
	DefaultVariant models.Variant   `json:"defaultVariant"`
}

type ProductService struct {
	store      store.Store
	categories *CategoryService
	variants   *VariantService
	log        *zap.Logger
}

func NewProductService(st store.Store, categories *CategoryService, variants *VariantService, log *zap.Logger) *ProductService {
	return &ProductService{store: st, categories: categories, variants: variants, log: log}
}

// Create stamps timestamps and denormalizes the category name onto the
// product.
func (s *ProductService) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	if product.CategoryID != "" {
		category, err := s.categories.GetByID(ctx, product.CategoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryName = category.Name
	}

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	id, err := s.store.Create(ctx, database.Products, product)
	if err != nil {
		return nil, err
	}
	product.ID = id
	return &product, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := s.store.GetByID(ctx, database.Products, id, &product)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetEnriched returns one product with its variants; a failed or empty
// variant fetch degrades to a synthesized default variant.
func (s *ProductService) GetEnriched(ctx context.Context, id string) (*ProductWithVariants, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	enriched := s.enrich(ctx, *product)
	return &enriched, nil
}

// List returns products, optionally filtered by category, each enriched
// with variants via bounded parallel fan-out.
func (s *ProductService) List(ctx context.Context, categoryID string) ([]ProductWithVariants, error) {
	q := store.Query{Sort: "createdAt", Desc: true}
	if categoryID != "" {
		q.Field = "categoryId"
		q.Value = categoryID
	}

	var products []models.Product
	if err := s.store.Find(ctx, database.Products, q, &products); err != nil {
		return nil, err
	}

	enriched := make([]ProductWithVariants, len(products))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(variantFanout)
	for i, p := range products {
		g.Go(func() error {
			enriched[i] = s.enrich(gctx, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return enriched, nil
}

func (s *ProductService) enrich(ctx context.Context, p models.Product) ProductWithVariants {
	variants, err := s.variants.ListByProduct(ctx, p.ID)
	if err != nil {
		s.log.Warn("variant fetch failed, synthesizing default",
			zap.String("productId", p.ID), zap.Error(err))
		variants = nil
	}
	if len(variants) == 0 {
		variants = []models.Variant{SynthesizeDefault(p)}
	}
	def, _ := EffectiveDefault(variants)
	return ProductWithVariants{Product: p, Variants: variants, DefaultVariant: def}
}

func (s *ProductService) Update(ctx context.Context, id string, fields map[string]any) (*models.Product, error) {
	if categoryID, ok := fields["categoryId"].(string); ok && categoryID != "" {
		category, err := s.categories.GetByID(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		fields["categoryName"] = category.Name
	}
	fields["updatedAt"] = time.Now()

	err := s.store.Update(ctx, database.Products, id, fields)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete hard-deletes the product and its variants. Stored images live in
// an external object store outside this service's contract, so their URLs
// are logged for out-of-band cleanup.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, database.Products, id); err != nil {
		return err
	}

	variants, err := s.variants.ListByProduct(ctx, id)
	if err == nil {
		for _, v := range variants {
			if err := s.store.Delete(ctx, database.Variants, v.ID); err != nil {
				s.log.Warn("variant cleanup failed", zap.String("variantId", v.ID), zap.Error(err))
			}
		}
	}

	if len(product.Images) > 0 {
		s.log.Info("product deleted, images orphaned",
			zap.String("productId", id), zap.Strings("images", product.Images))
	}
	return nil
}

func (s *ProductService) Count(ctx context.Context) (int, error) {
	var products []models.Product
	if err := s.store.Find(ctx, database.Products, store.Query{}, &products); err != nil {
		return 0, err
	}
	return len(products), nil
}
