package controllers

import (
	"github.com/gin-gonic/gin"

	"divyakart/services"
)

// CatalogController serves the public storefront reads.
type CatalogController struct {
	categories *services.CategoryService
	products   *services.ProductService
	banners    *services.BannerService
}

func NewCatalogController(categories *services.CategoryService, products *services.ProductService, banners *services.BannerService) *CatalogController {
	return &CatalogController{categories: categories, products: products, banners: banners}
}

func (cc *CatalogController) ListCategories(c *gin.Context) {
	categories, err := cc.categories.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"categories": categories})
}

func (cc *CatalogController) ListProducts(c *gin.Context) {
	products, err := cc.products.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"products": products})
}

func (cc *CatalogController) GetProduct(c *gin.Context) {
	product, err := cc.products.GetEnriched(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"product": product})
}

func (cc *CatalogController) ListBanners(c *gin.Context) {
	banners, err := cc.banners.ListActive(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"banners": banners})
}
