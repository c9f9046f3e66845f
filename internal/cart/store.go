package cart

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/chainfeed/storefront-backend/internal/catalog"
	pkgerrors "github.com/chainfeed/storefront-backend/pkg/errors"
	"github.com/chainfeed/storefront-backend/pkg/logger"
	"github.com/chainfeed/storefront-backend/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Store owns one session's cart: the line collection, the duplicate-add
// guard, and the persistence bridge. Mutations reduce to a new collection
// and then write the whole snapshot through the storage port; a failed
// write is logged and absorbed, never surfaced, because the cart must not
// block the rest of the page.
//
// The mutex gives in-process memory safety only. Two clients sharing a
// session key still race last-write-wins on the durable snapshot, which is
// the documented limitation for a single-user cart; no transactional write
// protocol is layered on top.
type Store struct {
	mu       sync.Mutex
	key      string
	lines    []Line
	ready    bool
	guard    *txGuard
	storage  Storage
	settings CheckoutSettings
	logg     *logger.Logger
	metrics  *metrics.CartMetrics
	now      func() time.Time
}

// StoreParams wires a store's collaborators.
type StoreParams struct {
	Key      string
	Storage  Storage
	Settings CheckoutSettings
	Logger   *logger.Logger
	Metrics  *metrics.CartMetrics
	Now      func() time.Time
}

// NewStore builds an uninitialized store. Initialize must run before any
// mutator is honored.
func NewStore(p StoreParams) (*Store, error) {
	if strings.TrimSpace(p.Key) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storage key is required")
	}
	if p.Storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "storage port required")
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		key:      p.Key,
		lines:    []Line{},
		guard:    newTxGuard(guardCapacity),
		storage:  p.Storage,
		settings: p.Settings,
		logg:     p.Logger,
		metrics:  p.Metrics,
		now:      now,
	}, nil
}

// Initialize materializes the line collection from durable storage. A
// missing or malformed snapshot leaves the cart empty and is never fatal.
// Calling it again on a ready store is a no-op.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return
	}

	payload, ok, err := s.storage.Load(ctx, s.key)
	switch {
	case err != nil:
		s.metrics.IncStorageFailure()
		if s.logg != nil {
			s.logg.Error(ctx, "cart.snapshot.load", err)
		}
	case ok:
		var stored []Line
		if unmarshalErr := json.Unmarshal(payload, &stored); unmarshalErr != nil {
			if s.logg != nil {
				s.logg.Warn(ctx, "cart.snapshot.malformed, starting empty")
			}
		} else if reduced, reduceErr := Reduce(s.lines, Initialize{Lines: stored}); reduceErr == nil {
			s.lines = reduced
		}
	}

	s.ready = true
}

// Add dispatches a guarded add. Duplicate tokens inside the guard window
// are suppressed as a successful no-op.
func (s *Store) Add(ctx context.Context, product catalog.Product, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyCheck(); err != nil {
		return err
	}

	// Guard-boundary validation: malformed adds never reach the reducer
	// and never burn a transaction token.
	if strings.TrimSpace(product.ID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	token := txToken(product.ID, s.now())
	if !s.guard.admit(token) {
		s.metrics.IncSuppressed()
		if s.logg != nil {
			s.logg.Warn(ctx, "cart.add.duplicate_suppressed")
		}
		return nil
	}

	next, err := Reduce(s.lines, Add{Product: product, Quantity: quantity})
	if err != nil {
		s.guard.release(token)
		return err
	}

	s.lines = next
	s.metrics.IncAdd()
	s.persist(ctx)
	return nil
}

// Remove deletes the line with the given id. An absent id is a no-op that
// still counts as a successful mutation.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyCheck(); err != nil {
		return err
	}

	next, err := Reduce(s.lines, Remove{ID: id})
	if err != nil {
		return err
	}
	s.lines = next
	s.persist(ctx)
	return nil
}

// SetQuantity overwrites a line's quantity. Values below 1 and unknown ids
// leave the collection untouched.
func (s *Store) SetQuantity(ctx context.Context, id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyCheck(); err != nil {
		return err
	}

	next, err := Reduce(s.lines, SetQuantity{ID: id, Quantity: quantity})
	if err != nil {
		return err
	}
	s.lines = next
	s.persist(ctx)
	return nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyCheck(); err != nil {
		return err
	}

	next, err := Reduce(s.lines, Clear{})
	if err != nil {
		return err
	}
	s.lines = next
	s.persist(ctx)
	return nil
}

// Lines returns a copy of the current collection in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLines(s.lines)
}

// Total sums price times quantity over all lines.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// ItemCount sums quantities over all lines, not the line count.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// CheckoutURL derives the provider redirect for the current collection.
// Empty cart yields an empty string.
func (s *Store) CheckoutURL(origin string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	built := BuildCheckoutURL(s.settings, s.lines, origin)
	if built != "" {
		s.metrics.IncCheckoutURL()
	}
	return built
}

func (s *Store) readyCheck() error {
	if !s.ready {
		return pkgerrors.New(pkgerrors.CodeConflict, "cart is not initialized")
	}
	return nil
}

// persist writes the full snapshot after a successful reduction. Failures
// are absorbed: the in-memory state stays authoritative for this process
// and the next successful mutation retries the write.
func (s *Store) persist(ctx context.Context) {
	payload, err := json.Marshal(s.lines)
	if err != nil {
		s.metrics.IncStorageFailure()
		if s.logg != nil {
			s.logg.Error(ctx, "cart.snapshot.marshal", err)
		}
		return
	}
	if err := s.storage.Save(ctx, s.key, payload); err != nil {
		s.metrics.IncStorageFailure()
		if s.logg != nil {
			s.logg.Error(ctx, "cart.snapshot.save", err)
		}
	}
}
