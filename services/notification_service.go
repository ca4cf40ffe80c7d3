package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"divyakart/database"
	"divyakart/models"
	"divyakart/store"
)

type NotificationService struct {
	store store.Store
	log   *zap.Logger
}

func NewNotificationService(st store.Store, log *zap.Logger) *NotificationService {
	return &NotificationService{store: st, log: log}
}

func (s *NotificationService) Create(ctx context.Context, n models.Notification) error {
	n.CreatedAt = time.Now()
	_, err := s.store.Create(ctx, database.Notifications, n)
	return err
}

func (s *NotificationService) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.store.Find(ctx, database.Notifications, store.Query{
		Field: "userId", Value: userID, Sort: "createdAt", Desc: true,
	}, &notifications)
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.store.Update(ctx, database.Notifications, id, map[string]any{"read": true})
}
