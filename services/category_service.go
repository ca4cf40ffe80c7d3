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

type CategoryService struct {
	store store.Store
	log   *zap.Logger
}

func NewCategoryService(st store.Store, log *zap.Logger) *CategoryService {
	return &CategoryService{store: st, log: log}
}

func (s *CategoryService) Create(ctx context.Context, category models.Category) (*models.Category, error) {
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	id, err := s.store.Create(ctx, database.Categories, category)
	if err != nil {
		return nil, err
	}
	category.ID = id
	return &category, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := s.store.GetByID(ctx, database.Categories, id, &category)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.store.Find(ctx, database.Categories, store.Query{Sort: "name"}, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, fields map[string]any) (*models.Category, error) {
	fields["updatedAt"] = time.Now()
	err := s.store.Update(ctx, database.Categories, id, fields)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	err := s.store.Delete(ctx, database.Categories, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrCategoryNotFound
	}
	return err
}
