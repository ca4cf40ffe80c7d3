package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"divyakart/cart"
	"divyakart/middleware"
	"divyakart/models"
	"divyakart/services"
)

// PaymentController runs checkout: it turns a cart (or an explicit item
// list for guests) into a gateway order, then reconciles the callback.
type PaymentController struct {
	orders  *services.OrderService
	storage cart.Storage
	keyID   string
	log     *zap.Logger
}

func NewPaymentController(orders *services.OrderService, storage cart.Storage, keyID string, log *zap.Logger) *PaymentController {
	return &PaymentController{orders: orders, storage: storage, keyID: keyID, log: log}
}

type createOrderRequest struct {
	CustomerInfo models.CustomerInfo `json:"customerInfo" binding:"required"`
	// Items lets guests check out without a server cart; authenticated
	// requests leave it empty and the cart is used instead.
	Items []models.OrderItem `json:"items"`
}

// CreateOrder prices the snapshot and registers a gateway order. An
// authenticated caller's cart is frozen for the duration of the payment.
func (pc *PaymentController) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "customerInfo is required")
		return
	}

	phone := c.GetString("phoneNumber")
	items := req.Items
	var userCart *cart.Store

	if len(items) == 0 && phone != "" {
		s, err := cart.New(c.Request.Context(), "user:"+phone, pc.storage)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "failed to load cart")
			return
		}
		for _, it := range s.Items() {
			items = append(items, models.OrderItem{
				ProductID: it.ProductID,
				VariantID: it.VariantID,
				Name:      it.Name,
				Quantity:  it.Quantity,
				Price:     it.Price,
				Discount:  it.Discount,
			})
		}
		userCart = s
	}
	if len(items) == 0 {
		respondError(c, http.StatusBadRequest, "order requires at least one item")
		return
	}

	order, err := pc.orders.Create(c.Request.Context(), services.CreateOrderInput{
		UserID:       c.GetString("userId"),
		CustomerInfo: req.CustomerInfo,
		Items:        items,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if userCart != nil {
		if err := userCart.Freeze(c.Request.Context()); err != nil {
			pc.log.Warn("cart freeze failed", zap.String("orderId", order.ID), zap.Error(err))
		}
	}

	respondCreated(c, gin.H{
		"order":           order,
		"razorpayOrderId": order.RazorpayOrderID,
		"razorpayKeyId":   pc.keyID,
		"amount":          services.MinorUnits(order.Total),
		"currency":        services.Currency,
	})
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// VerifyPayment reconciles the checkout callback. A successful payment
// empties the caller's cart; failure releases the freeze so the cart can
// be edited again.
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "razorpay_order_id, razorpay_payment_id and razorpay_signature are required")
		return
	}

	order, err := pc.orders.ConfirmPayment(c.Request.Context(),
		req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if err != nil {
		middleware.RecordPaymentOutcome("failed")
		pc.releaseCart(c, false)
		respondServiceError(c, err)
		return
	}

	middleware.RecordPaymentOutcome("completed")
	pc.releaseCart(c, true)
	respondOK(c, gin.H{"order": order})
}

// RetryPayment issues a fresh gateway order for a failed payment.
func (pc *PaymentController) RetryPayment(c *gin.Context) {
	order, err := pc.orders.RetryPayment(c.Request.Context(), c.Param("id"), c.GetString("userId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{
		"order":           order,
		"razorpayOrderId": order.RazorpayOrderID,
		"razorpayKeyId":   pc.keyID,
		"amount":          services.MinorUnits(order.Total),
		"currency":        services.Currency,
	})
}

func (pc *PaymentController) releaseCart(c *gin.Context, clear bool) {
	phone := c.GetString("phoneNumber")
	if phone == "" {
		return
	}
	s, err := cart.New(c.Request.Context(), "user:"+phone, pc.storage)
	if err != nil {
		pc.log.Warn("cart release failed", zap.String("phone", phone), zap.Error(err))
		return
	}
	if err := s.Unfreeze(c.Request.Context()); err != nil {
		pc.log.Warn("cart unfreeze failed", zap.String("phone", phone), zap.Error(err))
		return
	}
	if clear {
		if err := s.Clear(c.Request.Context()); err != nil {
			pc.log.Warn("cart clear failed", zap.String("phone", phone), zap.Error(err))
		}
	}
}
