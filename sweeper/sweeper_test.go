package sweeper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"divyakart/database"
	"divyakart/models"
	"divyakart/services"
	"divyakart/store"
)

type stubGateway struct{}

func (stubGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]any) (string, error) {
	return "order_stub", nil
}

func (stubGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return false
}

func TestSweeperExpiresStaleOrdersAndStopsOnCancel(t *testing.T) {
	st := store.NewMemoryStore()
	log := zaptest.NewLogger(t)
	users := services.NewUserService(st, log)
	notifications := services.NewNotificationService(st, log)
	orders := services.NewOrderService(st, stubGateway{}, users, notifications, log)

	stale := models.Order{
		OrderNumber:   "DK000001",
		UserID:        "+919876543210",
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		OrderDate:     time.Now().Add(-8 * 24 * time.Hour),
	}
	id, err := st.Create(context.Background(), database.Orders, stale)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		New(orders, time.Hour, log).Run(ctx)
		close(done)
	}()

	// The first sweep runs on startup before the first tick.
	require.Eventually(t, func() bool {
		var order models.Order
		if err := st.GetByID(context.Background(), database.Orders, id, &order); err != nil {
			return false
		}
		return order.PaymentStatus == models.PaymentStatusFailed
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}
