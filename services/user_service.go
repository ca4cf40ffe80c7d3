package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"divyakart/database"
	"divyakart/models"
	"divyakart/store"
)

// UserService maps users onto the persistence gateway. Users are keyed by
// phone number so the auth subject and the stored document coincide.
type UserService struct {
	store store.Store
	log   *zap.Logger
}

func NewUserService(st store.Store, log *zap.Logger) *UserService {
	return &UserService{store: st, log: log}
}

func (s *UserService) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	err := s.store.GetByID(ctx, database.Users, phone, &user)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureUser returns the user for phone, creating a bare customer record
// on first sight.
func (s *UserService) EnsureUser(ctx context.Context, phone string) (*models.User, error) {
	user, err := s.GetByPhone(ctx, phone)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	now := time.Now()
	created := models.User{
		ID:        phone,
		Phone:     phone,
		Role:      "customer",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.store.Create(ctx, database.Users, created, store.WithID(phone)); err != nil {
		return nil, err
	}
	s.log.Info("user created", zap.String("phone", phone))
	return &created, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, phone, name, email string) (*models.User, error) {
	user, err := s.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	user.Name = name
	user.Email = email
	user.UpdatedAt = time.Now()
	err = s.store.Update(ctx, database.Users, phone, map[string]any{
		"name":      name,
		"email":     email,
		"updatedAt": user.UpdatedAt,
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// AddAddress attaches addr unless an identical composed address already
// exists on the user.
func (s *UserService) AddAddress(ctx context.Context, phone string, addr models.Address) error {
	user, err := s.GetByPhone(ctx, phone)
	if err != nil {
		return err
	}
	for _, existing := range user.Addresses {
		if existing.Composed() == addr.Composed() {
			return nil
		}
	}
	addresses := append(user.Addresses, addr)
	return s.store.Update(ctx, database.Users, phone, map[string]any{
		"addresses": addresses,
		"updatedAt": time.Now(),
	})
}

// AppendOrderID back-references an order onto the user. Eventually
// consistent with the orders collection; callers treat failure as
// non-fatal.
func (s *UserService) AppendOrderID(ctx context.Context, phone, orderID string) error {
	user, err := s.GetByPhone(ctx, phone)
	if err != nil {
		return err
	}
	for _, id := range user.OrderIDs {
		if id == orderID {
			return nil
		}
	}
	orderIDs := append(user.OrderIDs, orderID)
	return s.store.Update(ctx, database.Users, phone, map[string]any{
		"orderIds":  orderIDs,
		"updatedAt": time.Now(),
	})
}

// AuthenticateAdmin validates dashboard credentials against users with
// the admin role.
func (s *UserService) AuthenticateAdmin(ctx context.Context, email, password string) (*models.User, error) {
	var users []models.User
	err := s.store.Find(ctx, database.Users, store.Query{Field: "email", Value: email, Limit: 1}, &users)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 || users[0].Role != "admin" {
		return nil, ErrInvalidCredentials
	}
	admin := users[0]
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &admin, nil
}

func (s *UserService) ListAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.store.Find(ctx, database.Users, store.Query{}, &users); err != nil {
		return nil, err
	}
	return users, nil
}
