package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rcifuentes/caja-api/internal/domain/entity"
	"github.com/rcifuentes/caja-api/internal/domain/gateway"
	"github.com/rcifuentes/caja-api/pkg/apperror"
	"github.com/rcifuentes/caja-api/pkg/debounce"
)

const (
	debouncerCleanupInterval = 5 * time.Minute
	debouncerEntryTTL        = 10 * time.Minute
)

// CatalogService fronts the sale service's product search. Bursts of
// searches from one cashier are debounced on the trailing edge so rapid
// typing turns into a single remote call; superseded callers get
// debounce.ErrSuperseded. In-flight remote requests are not cancelled, so
// with overlapping searches the last response to arrive wins.
type CatalogService struct {
	pos    gateway.PosGateway
	window time.Duration

	mu         sync.Mutex
	debouncers map[uuid.UUID]*debouncerEntry
}

type debouncerEntry struct {
	debouncer *debounce.Debouncer
	lastSeen  time.Time
}

// NewCatalogService creates a new catalog service
func NewCatalogService(pos gateway.PosGateway, window time.Duration) *CatalogService {
	s := &CatalogService{
		pos:        pos,
		window:     window,
		debouncers: make(map[uuid.UUID]*debouncerEntry),
	}

	go s.cleanupLoop()

	return s
}

// Search looks products up by free text or code for one cashier.
func (s *CatalogService) Search(ctx context.Context, cashierID uuid.UUID, query string) ([]entity.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.NewBadRequestError("Ingresa un término de búsqueda.")
	}

	return debounce.Do(ctx, s.debouncer(cashierID), func() ([]entity.Product, error) {
		return s.pos.SearchProducts(ctx, query)
	})
}

func (s *CatalogService) debouncer(cashierID uuid.UUID) *debounce.Debouncer {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.debouncers[cashierID]
	if !ok {
		entry = &debouncerEntry{debouncer: debounce.New(s.window)}
		s.debouncers[cashierID] = entry
	}
	entry.lastSeen = time.Now()
	return entry.debouncer
}

// cleanupLoop periodically drops debouncers for cashiers that stopped
// searching, so the map does not grow with every cashier ever seen
func (s *CatalogService) cleanupLoop() {
	ticker := time.NewTicker(debouncerCleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.cleanup(time.Now().Add(-debouncerEntryTTL))
	}
}

// cleanup removes entries last used before the cutoff
func (s *CatalogService) cleanup(cutoff time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for cashierID, entry := range s.debouncers {
		if entry.lastSeen.Before(cutoff) {
			delete(s.debouncers, cashierID)
		}
	}
}
