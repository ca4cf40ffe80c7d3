package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"divyakart/cart"
)

// CartController exposes the per-user cart. Each request rehydrates the
// store from the configured storage, so multiple devices see the same
// cart.
type CartController struct {
	storage cart.Storage
}

func NewCartController(storage cart.Storage) *CartController {
	return &CartController{storage: storage}
}

func cartKey(c *gin.Context) string {
	return "user:" + c.GetString("phoneNumber")
}

func (cc *CartController) open(c *gin.Context) (*cart.Store, bool) {
	s, err := cart.New(c.Request.Context(), cartKey(c), cc.storage)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load cart")
		return nil, false
	}
	return s, true
}

func (cc *CartController) Get(c *gin.Context) {
	s, ok := cc.open(c)
	if !ok {
		return
	}
	respondOK(c, s.Snapshot())
}

func (cc *CartController) AddItem(c *gin.Context) {
	var item cart.Item
	if err := c.ShouldBindJSON(&item); err != nil || item.ProductID == "" || item.Quantity <= 0 {
		respondError(c, http.StatusBadRequest, "productId and a positive quantity are required")
		return
	}

	s, ok := cc.open(c)
	if !ok {
		return
	}
	if err := s.AddItem(c.Request.Context(), item); err != nil {
		cc.respondCartError(c, err)
		return
	}
	respondOK(c, s.Snapshot())
}

func (cc *CartController) UpdateQuantity(c *gin.Context) {
	var input struct {
		ProductID string `json:"productId" binding:"required"`
		VariantID string `json:"variantId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "productId is required")
		return
	}

	s, ok := cc.open(c)
	if !ok {
		return
	}
	if err := s.UpdateQuantity(c.Request.Context(), input.ProductID, input.VariantID, input.Quantity); err != nil {
		cc.respondCartError(c, err)
		return
	}
	respondOK(c, s.Snapshot())
}

func (cc *CartController) RemoveItem(c *gin.Context) {
	s, ok := cc.open(c)
	if !ok {
		return
	}
	if err := s.RemoveItem(c.Request.Context(), c.Param("productId"), c.Query("variantId")); err != nil {
		cc.respondCartError(c, err)
		return
	}
	respondOK(c, s.Snapshot())
}

func (cc *CartController) Clear(c *gin.Context) {
	s, ok := cc.open(c)
	if !ok {
		return
	}
	if err := s.Clear(c.Request.Context()); err != nil {
		cc.respondCartError(c, err)
		return
	}
	respondOK(c, s.Snapshot())
}

func (cc *CartController) respondCartError(c *gin.Context, err error) {
	if errors.Is(err, cart.ErrCartFrozen) {
		respondError(c, http.StatusConflict, "cart is locked while payment is in progress")
		return
	}
	respondError(c, http.StatusInternalServerError, err.Error())
}
