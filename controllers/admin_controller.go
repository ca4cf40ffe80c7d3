package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"divyakart/models"
	"divyakart/services"
)

// AdminController covers the dashboard: catalog management, order
// oversight and the stats summary.
type AdminController struct {
	categories *services.CategoryService
	products   *services.ProductService
	variants   *services.VariantService
	banners    *services.BannerService
	orders     *services.OrderService
	dashboard  *services.DashboardService
}

func NewAdminController(
	categories *services.CategoryService,
	products *services.ProductService,
	variants *services.VariantService,
	banners *services.BannerService,
	orders *services.OrderService,
	dashboard *services.DashboardService,
) *AdminController {
	return &AdminController{
		categories: categories,
		products:   products,
		variants:   variants,
		banners:    banners,
		orders:     orders,
		dashboard:  dashboard,
	}
}

// Categories

func (a *AdminController) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil || category.Name == "" {
		respondError(c, http.StatusBadRequest, "category name is required")
		return
	}
	created, err := a.categories.Create(c.Request.Context(), category)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, gin.H{"category": created})
}

func (a *AdminController) UpdateCategory(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}
	category, err := a.categories.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"category": category})
}

func (a *AdminController) DeleteCategory(c *gin.Context) {
	if err := a.categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "category deleted"})
}

// Products

func (a *AdminController) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil || product.Name == "" {
		respondError(c, http.StatusBadRequest, "product name is required")
		return
	}
	created, err := a.products.Create(c.Request.Context(), product)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, gin.H{"product": created})
}

func (a *AdminController) UpdateProduct(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}
	product, err := a.products.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"product": product})
}

func (a *AdminController) DeleteProduct(c *gin.Context) {
	if err := a.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "product deleted"})
}

// Variants

func (a *AdminController) CreateVariant(c *gin.Context) {
	var variant models.Variant
	if err := c.ShouldBindJSON(&variant); err != nil || variant.ProductID == "" || variant.Label == "" {
		respondError(c, http.StatusBadRequest, "productId and label are required")
		return
	}
	created, err := a.variants.Create(c.Request.Context(), variant)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, gin.H{"variant": created})
}

func (a *AdminController) UpdateVariant(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}
	variant, err := a.variants.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"variant": variant})
}

func (a *AdminController) DeleteVariant(c *gin.Context) {
	if err := a.variants.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "variant deleted"})
}

// Banners

func (a *AdminController) ListBanners(c *gin.Context) {
	banners, err := a.banners.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"banners": banners})
}

func (a *AdminController) CreateBanner(c *gin.Context) {
	var banner models.Banner
	if err := c.ShouldBindJSON(&banner); err != nil {
		respondError(c, http.StatusBadRequest, "banner title is required")
		return
	}
	created, err := a.banners.Create(c.Request.Context(), banner)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, gin.H{"banner": created})
}

func (a *AdminController) UpdateBanner(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}
	banner, err := a.banners.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"banner": banner})
}

func (a *AdminController) DeleteBanner(c *gin.Context) {
	if err := a.banners.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "banner deleted"})
}

// Orders

func (a *AdminController) ListOrders(c *gin.Context) {
	orders, err := a.orders.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"orders": orders})
}

func (a *AdminController) GetOrder(c *gin.Context) {
	order, err := a.orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"order": order})
}

func (a *AdminController) UpdateOrderStatus(c *gin.Context) {
	var input struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "status is required")
		return
	}

	order, err := a.orders.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status, c.GetString("userId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"order": order})
}

// Dashboard

func (a *AdminController) Dashboard(c *gin.Context) {
	stats, err := a.dashboard.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"stats": stats})
}

// bindFields reads a partial-update body into a field map.
func bindFields(c *gin.Context) (map[string]any, bool) {
	fields := map[string]any{}
	if err := c.ShouldBindJSON(&fields); err != nil || len(fields) == 0 {
		respondError(c, http.StatusBadRequest, "at least one field is required")
		return nil, false
	}
	return fields, true
}
