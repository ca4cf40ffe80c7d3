package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // created, payment not completed
	OrderStatusProcessing OrderStatus = "processing" // payment confirmed, fulfillment begun
	OrderStatusPacked     OrderStatus = "packed"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// CustomerInfo is the shipping snapshot taken at order time.
type CustomerInfo struct {
	Name    string `bson:"name" json:"name"`
	Phone   string `bson:"phone" json:"phone"`
	Email   string `bson:"email" json:"email"`
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	Pincode string `bson:"pincode" json:"pincode"`
}

// OrderItem is snapshotted at order creation and never recomputed from
// live product or variant records.
type OrderItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	VariantID string  `bson:"variantId" json:"variantId"`
	Name      string  `bson:"name" json:"name"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
	Discount  float64 `bson:"discount" json:"discount"`
	LineTotal float64 `bson:"lineTotal" json:"lineTotal"`
}

// StatusEntry is one append-only audit record on an order.
type StatusEntry struct {
	Status    OrderStatus `bson:"status" json:"status"`
	Timestamp time.Time   `bson:"timestamp" json:"timestamp"`
	UpdatedBy string      `bson:"updatedBy" json:"updatedBy"`
}

type Order struct {
	ID                 string        `bson:"_id,omitempty" json:"id"`
	OrderNumber        string        `bson:"orderNumber" json:"orderNumber"`
	UserID             string        `bson:"userId" json:"userId"`
	CustomerInfo       CustomerInfo  `bson:"customerInfo" json:"customerInfo"`
	Items              []OrderItem   `bson:"items" json:"items"`
	Subtotal           float64       `bson:"subtotal" json:"subtotal"`
	ShippingCost       float64       `bson:"shippingCost" json:"shippingCost"`
	Total              float64       `bson:"total" json:"total"`
	RazorpayOrderID    string        `bson:"razorpayOrderId" json:"razorpayOrderId"`
	RazorpayPaymentID  string        `bson:"razorpayPaymentId,omitempty" json:"razorpayPaymentId,omitempty"`
	Status             OrderStatus   `bson:"status" json:"status"`
	PaymentStatus      PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	StatusHistory      []StatusEntry `bson:"statusHistory" json:"statusHistory"`
	OrderDate          time.Time     `bson:"orderDate" json:"orderDate"`
	PaidAt             *time.Time    `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	DeliveredAt        *time.Time    `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CancellationReason string        `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CreatedAt          time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time     `bson:"updatedAt" json:"updatedAt"`
}
