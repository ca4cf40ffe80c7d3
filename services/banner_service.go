package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"divyakart/database"
	"divyakart/models"
	"divyakart/store"
)

type BannerService struct {
	store store.Store
	log   *zap.Logger
}

func NewBannerService(st store.Store, log *zap.Logger) *BannerService {
	return &BannerService{store: st, log: log}
}

func (s *BannerService) Create(ctx context.Context, banner models.Banner) (*models.Banner, error) {
	now := time.Now()
	banner.CreatedAt = now
	banner.UpdatedAt = now

	id, err := s.store.Create(ctx, database.Banners, banner)
	if err != nil {
		return nil, err
	}
	banner.ID = id
	return &banner, nil
}

// ListActive returns storefront banners in position order.
func (s *BannerService) ListActive(ctx context.Context) ([]models.Banner, error) {
	var banners []models.Banner
	err := s.store.Find(ctx, database.Banners, store.Query{Field: "active", Value: true, Sort: "position"}, &banners)
	if err != nil {
		return nil, err
	}
	return banners, nil
}

func (s *BannerService) List(ctx context.Context) ([]models.Banner, error) {
	var banners []models.Banner
	if err := s.store.Find(ctx, database.Banners, store.Query{Sort: "position"}, &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

func (s *BannerService) Update(ctx context.Context, id string, fields map[string]any) (*models.Banner, error) {
	fields["updatedAt"] = time.Now()
	err := s.store.Update(ctx, database.Banners, id, fields)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrBannerNotFound
	}
	if err != nil {
		return nil, err
	}
	var banner models.Banner
	if err := s.store.GetByID(ctx, database.Banners, id, &banner); err != nil {
		return nil, err
	}
	return &banner, nil
}

func (s *BannerService) Delete(ctx context.Context, id string) error {
	err := s.store.Delete(ctx, database.Banners, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrBannerNotFound
	}
	return err
}
