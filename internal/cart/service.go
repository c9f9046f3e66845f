package cart

import (
	"context"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/chainfeed/storefront-backend/pkg/errors"
	"github.com/chainfeed/storefront-backend/pkg/logger"
	"github.com/chainfeed/storefront-backend/pkg/metrics"
)

const defaultMaxSessions = 10000

// Service hands out one Store per cart session, hydrating it from durable
// storage on first touch. The registry is bounded: at capacity the least
// recently touched session is evicted, mirroring the rolling TTL the redis
// backend applies to snapshots. Eviction loses nothing durable — the
// session's snapshot stays in storage and rehydrates on its next request —
// so one-shot sessions (bots, probes, clients that never replay the header)
// cannot grow the map without limit.
type Service struct {
	mu          sync.Mutex
	stores      map[string]*sessionEntry
	maxSessions int
	storage     Storage
	settings    CheckoutSettings
	logg        *logger.Logger
	metrics     *metrics.CartMetrics
	now         func() time.Time
}

type sessionEntry struct {
	store    *Store
	lastSeen time.Time
}

// ServiceParams wires the service's collaborators. MaxSessions and Now
// default to the process-wide cap and the wall clock.
type ServiceParams struct {
	Storage     Storage
	Settings    CheckoutSettings
	Logger      *logger.Logger
	Metrics     *metrics.CartMetrics
	MaxSessions int
	Now         func() time.Time
}

func NewService(p ServiceParams) (*Service, error) {
	if p.Storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "storage port required")
	}
	maxSessions := p.MaxSessions
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		stores:      make(map[string]*sessionEntry),
		maxSessions: maxSessions,
		storage:     p.Storage,
		settings:    p.Settings,
		logg:        p.Logger,
		metrics:     p.Metrics,
		now:         now,
	}, nil
}

// ForSession returns the ready store for the given session key, creating
// and initializing it when the session is new to this process.
func (s *Service) ForSession(ctx context.Context, session string) (*Store, error) {
	session = strings.TrimSpace(session)
	if session == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart session is required")
	}

	s.mu.Lock()
	entry, ok := s.stores[session]
	if !ok {
		if len(s.stores) >= s.maxSessions {
			s.evictOldestLocked()
		}
		store, err := NewStore(StoreParams{
			Key:      session,
			Storage:  s.storage,
			Settings: s.settings,
			Logger:   s.logg,
			Metrics:  s.metrics,
			Now:      s.now,
		})
		if err != nil {
			s.mu.Unlock()
			return nil, err
		}
		entry = &sessionEntry{store: store}
		s.stores[session] = entry
	}
	entry.lastSeen = s.now()
	s.mu.Unlock()

	entry.store.Initialize(ctx)
	return entry.store, nil
}

func (s *Service) evictOldestLocked() {
	var oldestKey string
	var oldestSeen time.Time
	for key, entry := range s.stores {
		if oldestKey == "" || entry.lastSeen.Before(oldestSeen) {
			oldestKey = key
			oldestSeen = entry.lastSeen
		}
	}
	if oldestKey != "" {
		delete(s.stores, oldestKey)
	}
}
