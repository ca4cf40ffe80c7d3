package sweeper

import (
	"context"
	"time"

	"go.uber.org/zap"

	"divyakart/middleware"
	"divyakart/services"
)

// DefaultInterval is how often abandoned orders are swept.
const DefaultInterval = time.Hour

// Sweeper periodically expires abandoned orders: stale pending payments
// become failed, and long-failed payments cancel the order.
type Sweeper struct {
	orders   *services.OrderService
	interval time.Duration
	log      *zap.Logger
}

func New(orders *services.OrderService, interval time.Duration, log *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sweeper{orders: orders, interval: interval, log: log}
}

// Run sweeps once immediately and then on every tick until ctx is
// cancelled. Intended to run on its own goroutine.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	swept, err := s.orders.SweepAbandoned(ctx)
	if err != nil {
		s.log.Error("abandonment sweep failed", zap.Error(err))
		return
	}
	if swept > 0 {
		middleware.RecordOrdersSwept(swept)
		s.log.Info("abandonment sweep finished", zap.Int("swept", swept))
	}
}
