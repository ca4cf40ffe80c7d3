package models

import "time"

type Category struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name" binding:"required"`
	Description string    `bson:"description" json:"description"`
	Image       string    `bson:"image" json:"image"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Product carries a denormalized categoryName plus a base price/discount
// used to synthesize a default variant when none exist.
type Product struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name" binding:"required"`
	Description  string    `bson:"description" json:"description"`
	CategoryID   string    `bson:"categoryId" json:"categoryId"`
	CategoryName string    `bson:"categoryName" json:"categoryName"`
	Price        float64   `bson:"price" json:"price"`
	Discount     float64   `bson:"discount" json:"discount"`
	Images       []string  `bson:"images" json:"images"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

type Variant struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	ProductID string    `bson:"productId" json:"productId"`
	Label     string    `bson:"label" json:"label"`
	Price     float64   `bson:"price" json:"price"`
	Discount  float64   `bson:"discount" json:"discount"`
	Inventory int       `bson:"inventory" json:"inventory"`
	SKU       string    `bson:"sku" json:"sku"`
	IsDefault bool      `bson:"isDefault" json:"isDefault"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type Banner struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Title     string    `bson:"title" json:"title" binding:"required"`
	Image     string    `bson:"image" json:"image"`
	Link      string    `bson:"link" json:"link"`
	Active    bool      `bson:"active" json:"active"`
	Position  int       `bson:"position" json:"position"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type Notification struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	OrderID   string    `bson:"orderId" json:"orderId"`
	Type      string    `bson:"type" json:"type"`
	Message   string    `bson:"message" json:"message"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
