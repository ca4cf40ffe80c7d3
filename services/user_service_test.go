package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"divyakart/database"
	"divyakart/models"
	"divyakart/store"
)

func newUserService(t *testing.T) (*UserService, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	return NewUserService(st, zaptest.NewLogger(t)), st
}

func TestEnsureUserCreatesPhoneKeyedDocument(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.EnsureUser(ctx, "+919876543210")
	require.NoError(t, err)
	assert.Equal(t, "+919876543210", user.ID)
	assert.Equal(t, "customer", user.Role)

	again, err := svc.EnsureUser(ctx, "+919876543210")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}

func TestAddAddressDeduplicatesByComposedString(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.EnsureUser(ctx, "+919876543210")
	require.NoError(t, err)

	addr := models.Address{Name: "Asha", Phone: "+919876543210", Address: "12 Temple Road", City: "Varanasi", State: "UP", Pincode: "221001"}
	require.NoError(t, svc.AddAddress(ctx, "+919876543210", addr))
	require.NoError(t, svc.AddAddress(ctx, "+919876543210", addr))

	different := addr
	different.City = "Haridwar"
	require.NoError(t, svc.AddAddress(ctx, "+919876543210", different))

	user, err := svc.GetByPhone(ctx, "+919876543210")
	require.NoError(t, err)
	assert.Len(t, user.Addresses, 2)
}

func TestUpdateProfileCompleteness(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.EnsureUser(ctx, "+919876543210")
	require.NoError(t, err)
	assert.False(t, user.ProfileComplete())

	user, err = svc.UpdateProfile(ctx, "+919876543210", "Asha", "asha@example.com")
	require.NoError(t, err)
	assert.True(t, user.ProfileComplete())
}

func TestAuthenticateAdmin(t *testing.T) {
	svc, st := newUserService(t)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("temple-secret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	_, err = st.Create(ctx, database.Users, models.User{
		Phone: "+911111111111", Email: "admin@divyakart.in", Role: "admin", Password: string(hash),
	}, store.WithID("+911111111111"))
	require.NoError(t, err)

	admin, err := svc.AuthenticateAdmin(ctx, "admin@divyakart.in", "temple-secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Role)

	_, err = svc.AuthenticateAdmin(ctx, "admin@divyakart.in", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.AuthenticateAdmin(ctx, "nobody@divyakart.in", "temple-secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
