package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"divyakart/database"
	"divyakart/models"
	"divyakart/payments"
	"divyakart/pkg/idgen"
	"divyakart/store"
)

const (
	// ShippingFee is the flat shipping charge below the free threshold.
	ShippingFee = 99.0
	// FreeShippingThreshold waives shipping when the subtotal reaches it.
	FreeShippingThreshold = 999.0

	Currency = "INR"

	// Abandonment thresholds for the sweep.
	pendingPaymentMaxAge = 7 * 24 * time.Hour
	failedPaymentMaxAge  = 14 * 24 * time.Hour
)

// statusRank orders the forward-only fulfillment states. Cancelled sits
// outside the ladder as the escape hatch.
var statusRank = map[models.OrderStatus]int{
	models.OrderStatusPending:    0,
	models.OrderStatusProcessing: 1,
	models.OrderStatusPacked:     2,
	models.OrderStatusShipped:    3,
	models.OrderStatusDelivered:  4,
}

// CanTransition reports whether an order may move from cur to next:
// strictly forward along the ladder, or to cancelled from any
// non-delivered, non-cancelled state.
func CanTransition(cur, next models.OrderStatus) bool {
	if next == models.OrderStatusCancelled {
		return cur != models.OrderStatusDelivered && cur != models.OrderStatusCancelled
	}
	curRank, ok := statusRank[cur]
	if !ok {
		return false
	}
	nextRank, ok := statusRank[next]
	if !ok {
		return false
	}
	return nextRank > curRank
}

// CreateOrderInput is the checkout payload after cart freeze.
type CreateOrderInput struct {
	// UserID is the authenticated phone number; empty means guest checkout.
	UserID       string
	CustomerInfo models.CustomerInfo
	Items        []models.OrderItem
}

// OrderService runs the order lifecycle and payment reconciliation flow.
type OrderService struct {
	store         store.Store
	gateway       payments.Gateway
	users         *UserService
	notifications *NotificationService
	orderNumbers  *idgen.Generator
	log           *zap.Logger
	now           func() time.Time
}

func NewOrderService(st store.Store, gateway payments.Gateway, users *UserService, notifications *NotificationService, log *zap.Logger) *OrderService {
	return &OrderService{
		store:         st,
		gateway:       gateway,
		users:         users,
		notifications: notifications,
		orderNumbers:  idgen.New("DK"),
		log:           log,
		now:           time.Now,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeTotals fills line totals and returns subtotal, shipping and
// total for the snapshotted items.
func ComputeTotals(items []models.OrderItem) (subtotal, shipping, total float64, out []models.OrderItem) {
	out = make([]models.OrderItem, len(items))
	for i, it := range items {
		it.LineTotal = round2(it.Price * (100 - it.Discount) / 100 * float64(it.Quantity))
		subtotal += it.LineTotal
		out[i] = it
	}
	subtotal = round2(subtotal)
	shipping = ShippingFee
	if subtotal >= FreeShippingThreshold {
		shipping = 0
	}
	total = round2(subtotal + shipping)
	return subtotal, shipping, total, out
}

// MinorUnits converts a rupee amount to paise for the gateway.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func receiptFor(now time.Time, userID string) string {
	tail := userID
	if len(tail) > 10 {
		tail = tail[len(tail)-10:]
	}
	return fmt.Sprintf("rcpt_%d_%s", now.Unix(), tail)
}

// Create runs the checkout protocol: price the snapshot, register the
// gateway order, upsert the customer, persist the domain order, then
// back-reference it onto the user. The user upsert and back-reference are
// best-effort; a failed domain persist after a successful gateway order
// substitutes a local fallback id so checkout can still reach payment.
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("order requires at least one item")
	}
	if input.CustomerInfo.Phone == "" || input.CustomerInfo.Name == "" || input.CustomerInfo.Address == "" {
		return nil, fmt.Errorf("customer name, phone and address are required")
	}

	now := s.now()
	subtotal, shipping, total, items := ComputeTotals(input.Items)

	userID := input.UserID
	guest := userID == ""
	if guest {
		userID = "guest_" + uuid.NewString()
	}

	razorpayOrderID, err := s.gateway.CreateOrder(ctx, MinorUnits(total), Currency,
		receiptFor(now, userID), map[string]any{"phone": input.CustomerInfo.Phone})
	if err != nil {
		return nil, fmt.Errorf("payment gateway order creation failed: %w", err)
	}

	// Customer upsert keyed by the shipping phone; failure must not block
	// checkout.
	if _, err := s.users.EnsureUser(ctx, input.CustomerInfo.Phone); err != nil {
		s.log.Error("user upsert failed during checkout",
			zap.String("phone", input.CustomerInfo.Phone), zap.Error(err))
	} else if err := s.users.AddAddress(ctx, input.CustomerInfo.Phone, models.Address{
		Name:    input.CustomerInfo.Name,
		Phone:   input.CustomerInfo.Phone,
		Address: input.CustomerInfo.Address,
		City:    input.CustomerInfo.City,
		State:   input.CustomerInfo.State,
		Pincode: input.CustomerInfo.Pincode,
	}); err != nil {
		s.log.Error("address attach failed during checkout",
			zap.String("phone", input.CustomerInfo.Phone), zap.Error(err))
	}

	order := models.Order{
		OrderNumber:     s.orderNumbers.Next(),
		UserID:          userID,
		CustomerInfo:    input.CustomerInfo,
		Items:           items,
		Subtotal:        subtotal,
		ShippingCost:    shipping,
		Total:           total,
		RazorpayOrderID: razorpayOrderID,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		StatusHistory: []models.StatusEntry{
			{Status: models.OrderStatusPending, Timestamp: now, UpdatedBy: "system"},
		},
		OrderDate: now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.store.Create(ctx, database.Orders, order)
	if err != nil {
		// Accepted reconciliation debt: the gateway order exists, so hand
		// the customer a locally generated id rather than blocking payment.
		id = "local_" + uuid.NewString()
		s.log.Error("domain order persist failed, continuing with fallback id",
			zap.String("fallbackId", id),
			zap.String("razorpayOrderId", razorpayOrderID),
			zap.Error(err))
		order.ID = id
		return &order, nil
	}
	order.ID = id

	if !guest {
		if err := s.users.AppendOrderID(ctx, input.UserID, id); err != nil {
			s.log.Error("order back-reference failed",
				zap.String("orderId", id), zap.String("phone", input.UserID), zap.Error(err))
		}
	}

	s.log.Info("order created",
		zap.String("orderId", id),
		zap.String("orderNumber", order.OrderNumber),
		zap.Float64("total", total))
	return &order, nil
}

func (s *OrderService) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.store.GetByID(ctx, database.Orders, id, &order)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) GetByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*models.Order, error) {
	var orders []models.Order
	err := s.store.Find(ctx, database.Orders, store.Query{
		Field: "razorpayOrderId", Value: razorpayOrderID, Limit: 1,
	}, &orders)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrOrderNotFound
	}
	return &orders[0], nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.store.Find(ctx, database.Orders, store.Query{
		Field: "userId", Value: userID, Sort: "orderDate", Desc: true,
	}, &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.store.Find(ctx, database.Orders, store.Query{Sort: "orderDate", Desc: true}, &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ConfirmPayment handles the checkout callback. Signature verification is
// the sole authority for paymentStatus=completed; a completed payment is
// never reverted, and repeated callbacks are idempotent.
func (s *OrderService) ConfirmPayment(ctx context.Context, razorpayOrderID, paymentID, signature string) (*models.Order, error) {
	order, err := s.GetByRazorpayOrderID(ctx, razorpayOrderID)
	if err != nil {
		return nil, err
	}

	if order.PaymentStatus == models.PaymentStatusCompleted {
		return order, nil
	}

	now := s.now()
	if !s.gateway.VerifySignature(razorpayOrderID, paymentID, signature) {
		fields := map[string]any{
			"paymentStatus": models.PaymentStatusFailed,
			"updatedAt":     now,
		}
		if err := s.store.Update(ctx, database.Orders, order.ID, fields); err != nil {
			s.log.Error("payment failure mark failed", zap.String("orderId", order.ID), zap.Error(err))
		}
		order.PaymentStatus = models.PaymentStatusFailed
		s.log.Warn("payment signature rejected",
			zap.String("orderId", order.ID), zap.String("paymentId", paymentID))
		return order, ErrSignatureInvalid
	}

	fields := map[string]any{
		"paymentStatus":     models.PaymentStatusCompleted,
		"razorpayPaymentId": paymentID,
		"paidAt":            now,
		"updatedAt":         now,
	}
	if order.Status == models.OrderStatusPending {
		history := append(order.StatusHistory, models.StatusEntry{
			Status:    models.OrderStatusProcessing,
			Timestamp: now,
			UpdatedBy: "payment",
		})
		fields["status"] = models.OrderStatusProcessing
		fields["statusHistory"] = history
		order.Status = models.OrderStatusProcessing
		order.StatusHistory = history
	}
	if err := s.store.Update(ctx, database.Orders, order.ID, fields); err != nil {
		return nil, err
	}
	order.PaymentStatus = models.PaymentStatusCompleted
	order.RazorpayPaymentID = paymentID
	order.PaidAt = &now

	s.notify(ctx, order, "payment_completed",
		fmt.Sprintf("Payment received for order %s", order.OrderNumber))
	s.log.Info("payment confirmed",
		zap.String("orderId", order.ID), zap.String("paymentId", paymentID))
	return order, nil
}

// RetryPayment creates a fresh gateway order for a failed payment and
// overwrites only the razorpayOrderId on the domain order. Items and
// amounts are never recomputed.
func (s *OrderService) RetryPayment(ctx context.Context, orderID, requester string) (*models.Order, error) {
	order, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if requester != order.UserID && requester != order.CustomerInfo.Phone {
		return nil, ErrNotOrderOwner
	}
	if order.PaymentStatus != models.PaymentStatusFailed || order.Status == models.OrderStatusCancelled {
		return nil, ErrRetryNotAllowed
	}

	now := s.now()
	razorpayOrderID, err := s.gateway.CreateOrder(ctx, MinorUnits(order.Total), Currency,
		receiptFor(now, order.UserID), map[string]any{"retryOf": order.RazorpayOrderID})
	if err != nil {
		return nil, fmt.Errorf("payment gateway order creation failed: %w", err)
	}

	// Only the gateway order id is overwritten; items, amounts and payment
	// state are left as they were.
	err = s.store.Update(ctx, database.Orders, order.ID, map[string]any{
		"razorpayOrderId": razorpayOrderID,
		"updatedAt":       now,
	})
	if err != nil {
		return nil, err
	}
	order.RazorpayOrderID = razorpayOrderID

	s.log.Info("payment retry issued",
		zap.String("orderId", order.ID), zap.String("razorpayOrderId", razorpayOrderID))
	return order, nil
}

// UpdateStatus applies an admin transition: validates the move, appends
// one history entry, stamps deliveredAt on delivery and back-fills paidAt
// when entering processing with payment already completed. The customer
// notification is fire-and-forget.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, next models.OrderStatus, updatedBy string) (*models.Order, error) {
	order, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(order.Status, next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}

	now := s.now()
	history := append(order.StatusHistory, models.StatusEntry{
		Status:    next,
		Timestamp: now,
		UpdatedBy: updatedBy,
	})
	fields := map[string]any{
		"status":        next,
		"statusHistory": history,
		"updatedAt":     now,
	}
	if next == models.OrderStatusDelivered {
		fields["deliveredAt"] = now
		order.DeliveredAt = &now
	}
	if next == models.OrderStatusProcessing &&
		order.PaymentStatus == models.PaymentStatusCompleted && order.PaidAt == nil {
		fields["paidAt"] = now
		order.PaidAt = &now
	}

	if err := s.store.Update(ctx, database.Orders, order.ID, fields); err != nil {
		return nil, err
	}
	order.Status = next
	order.StatusHistory = history

	s.notify(ctx, order, "status_update",
		fmt.Sprintf("Order %s is now %s", order.OrderNumber, next))
	return order, nil
}

// Cancel lets the owning customer cancel a not-yet-delivered order.
func (s *OrderService) Cancel(ctx context.Context, orderID, requester, reason string) (*models.Order, error) {
	order, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if requester != order.UserID && requester != order.CustomerInfo.Phone {
		return nil, ErrNotOrderOwner
	}
	if !CanTransition(order.Status, models.OrderStatusCancelled) {
		return nil, fmt.Errorf("%w: %s -> cancelled", ErrInvalidTransition, order.Status)
	}

	now := s.now()
	history := append(order.StatusHistory, models.StatusEntry{
		Status:    models.OrderStatusCancelled,
		Timestamp: now,
		UpdatedBy: requester,
	})
	err = s.store.Update(ctx, database.Orders, order.ID, map[string]any{
		"status":             models.OrderStatusCancelled,
		"statusHistory":      history,
		"cancellationReason": reason,
		"updatedAt":          now,
	})
	if err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusCancelled
	order.StatusHistory = history
	order.CancellationReason = reason
	return order, nil
}

// SweepAbandoned expires stale unpaid orders: payments pending beyond 7
// days are marked failed, and failed payments beyond 14 days cancel the
// order. Each pass is idempotent; completed payments are never touched.
func (s *OrderService) SweepAbandoned(ctx context.Context) (int, error) {
	now := s.now()
	swept := 0

	var pending []models.Order
	err := s.store.Find(ctx, database.Orders, store.Query{
		Field: "paymentStatus", Value: models.PaymentStatusPending,
	}, &pending)
	if err != nil {
		return 0, err
	}
	for _, order := range pending {
		if now.Sub(order.OrderDate) <= pendingPaymentMaxAge {
			continue
		}
		err := s.store.Update(ctx, database.Orders, order.ID, map[string]any{
			"paymentStatus": models.PaymentStatusFailed,
			"updatedAt":     now,
		})
		if err != nil {
			s.log.Error("sweep: payment expiry failed", zap.String("orderId", order.ID), zap.Error(err))
			continue
		}
		swept++
	}

	var failed []models.Order
	err = s.store.Find(ctx, database.Orders, store.Query{
		Field: "paymentStatus", Value: models.PaymentStatusFailed,
	}, &failed)
	if err != nil {
		return swept, err
	}
	for _, order := range failed {
		if order.Status == models.OrderStatusCancelled || now.Sub(order.OrderDate) <= failedPaymentMaxAge {
			continue
		}
		history := append(order.StatusHistory, models.StatusEntry{
			Status:    models.OrderStatusCancelled,
			Timestamp: now,
			UpdatedBy: "system",
		})
		err := s.store.Update(ctx, database.Orders, order.ID, map[string]any{
			"status":             models.OrderStatusCancelled,
			"statusHistory":      history,
			"cancellationReason": "payment abandoned",
			"updatedAt":          now,
		})
		if err != nil {
			s.log.Error("sweep: abandon cancel failed", zap.String("orderId", order.ID), zap.Error(err))
			continue
		}
		swept++
	}
	return swept, nil
}

func (s *OrderService) notify(ctx context.Context, order *models.Order, kind, message string) {
	err := s.notifications.Create(ctx, models.Notification{
		UserID:  order.UserID,
		OrderID: order.ID,
		Type:    kind,
		Message: message,
	})
	if err != nil {
		s.log.Warn("customer notification failed",
			zap.String("orderId", order.ID), zap.Error(err))
	}
}
