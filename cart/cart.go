package cart

import (
	"context"
	"errors"
	"math"
	"sync"
)

// ErrCartFrozen is returned by mutating actions while the cart is frozen
// for payment.
var ErrCartFrozen = errors.New("cart is frozen during payment")

// Item is one cart line. Lines are keyed by (ProductID, VariantID);
// re-adding an existing pair merges quantities instead of duplicating.
type Item struct {
	ProductID string  `json:"productId"`
	VariantID string  `json:"variantId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Discount  float64 `json:"discount"`
	Quantity  int     `json:"quantity"`
}

// Totals are derived on read and never stored.
type Totals struct {
	TotalItems     int     `json:"totalItems"`
	TotalPrice     float64 `json:"totalPrice"`
	DiscountAmount float64 `json:"discountAmount"`
}

// Snapshot is the immutable view handed to subscribers and callers.
type Snapshot struct {
	Items  []Item `json:"items"`
	Frozen bool   `json:"frozen"`
	Totals Totals `json:"totals"`
}

// Store is the single source of truth for pending purchase intent. State
// persists through a Storage adapter; observers subscribe for changes.
type Store struct {
	mu      sync.Mutex
	key     string
	storage Storage
	items   []Item
	frozen  bool
	subs    map[int]func(Snapshot)
	nextSub int
}

// New loads any persisted state for key and returns a store bound to it.
func New(ctx context.Context, key string, storage Storage) (*Store, error) {
	s := &Store{key: key, storage: storage, subs: make(map[int]func(Snapshot))}
	state, err := storage.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if state != nil {
		s.items = state.Items
		s.frozen = state.Frozen
	}
	return s, nil
}

// Subscribe registers an observer and returns its unsubscribe function.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// AddItem merges quantity into an existing (productID, variantID) line or
// appends a new one.
func (s *Store) AddItem(ctx context.Context, item Item) error {
	return s.mutate(ctx, func() error {
		for i := range s.items {
			if s.items[i].ProductID == item.ProductID && s.items[i].VariantID == item.VariantID {
				s.items[i].Quantity += item.Quantity
				return nil
			}
		}
		s.items = append(s.items, item)
		return nil
	})
}

// UpdateQuantity sets a line's quantity; zero removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, productID, variantID string, quantity int) error {
	return s.mutate(ctx, func() error {
		for i := range s.items {
			if s.items[i].ProductID == productID && s.items[i].VariantID == variantID {
				if quantity <= 0 {
					s.items = append(s.items[:i], s.items[i+1:]...)
				} else {
					s.items[i].Quantity = quantity
				}
				return nil
			}
		}
		return nil
	})
}

func (s *Store) RemoveItem(ctx context.Context, productID, variantID string) error {
	return s.UpdateQuantity(ctx, productID, variantID, 0)
}

func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, func() error {
		s.items = nil
		return nil
	})
}

// Freeze blocks mutating actions while a payment is in flight.
func (s *Store) Freeze(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frozen = true
	return s.persistAndNotifyLocked(ctx)
}

func (s *Store) Unfreeze(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frozen = false
	return s.persistAndNotifyLocked(ctx)
}

func (s *Store) Frozen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frozen
}

func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Item(nil), s.items...)
}

// Totals computes derived values from the current lines.
func (s *Store) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalsOf(s.items)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Items:  append([]Item(nil), s.items...),
		Frozen: s.frozen,
		Totals: totalsOf(s.items),
	}
}

func (s *Store) mutate(ctx context.Context, apply func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frozen {
		return ErrCartFrozen
	}
	if err := apply(); err != nil {
		return err
	}
	return s.persistAndNotifyLocked(ctx)
}

func (s *Store) persistAndNotifyLocked(ctx context.Context) error {
	if err := s.storage.Save(ctx, s.key, &State{Items: s.items, Frozen: s.frozen}); err != nil {
		return err
	}
	snap := s.snapshotLocked()
	for _, fn := range s.subs {
		fn(snap)
	}
	return nil
}

func totalsOf(items []Item) Totals {
	var t Totals
	for _, it := range items {
		t.TotalItems += it.Quantity
		gross := it.Price * float64(it.Quantity)
		net := it.Price * (100 - it.Discount) / 100 * float64(it.Quantity)
		t.TotalPrice += net
		t.DiscountAmount += gross - net
	}
	t.TotalPrice = round2(t.TotalPrice)
	t.DiscountAmount = round2(t.DiscountAmount)
	return t
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
