package services

import (
	"context"

	"divyakart/models"
)

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	TotalOrders    int                        `json:"totalOrders"`
	OrdersByStatus map[models.OrderStatus]int `json:"ordersByStatus"`
	Revenue        float64                    `json:"revenue"`
	TotalUsers     int                        `json:"totalUsers"`
	TotalProducts  int                        `json:"totalProducts"`
}

type DashboardService struct {
	orders   *OrderService
	users    *UserService
	products *ProductService
}

func NewDashboardService(orders *OrderService, users *UserService, products *ProductService) *DashboardService {
	return &DashboardService{orders: orders, users: users, products: products}
}

// Stats aggregates order counts by status, revenue over completed
// payments, and user/product counts.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalOrders:    len(orders),
		OrdersByStatus: make(map[models.OrderStatus]int),
	}
	for _, o := range orders {
		stats.OrdersByStatus[o.Status]++
		if o.PaymentStatus == models.PaymentStatusCompleted {
			stats.Revenue += o.Total
		}
	}

	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalUsers = len(users)

	count, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalProducts = count

	return stats, nil
}
