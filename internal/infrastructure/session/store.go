// Package session keeps the per-cashier checkout state in memory. Nothing
// here survives a restart: the sale service owns the durable cart, this is
// only the screen's working copy.
package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rcifuentes/caja-api/internal/domain/entity"
	"github.com/rcifuentes/caja-api/internal/domain/enum"
)

// Checkout is one cashier's screen state. Callers must hold the mutex while
// reading or mutating; handlers for one cashier therefore serialize, which
// is the moral equivalent of the browser's single event loop.
type Checkout struct {
	sync.Mutex

	Cart          *entity.Cart
	SaleType      enum.SaleType
	PaymentMethod enum.PaymentMethod

	// AmountPaidRaw is the paid field exactly as entered. The empty string
	// is meaningful (nothing entered yet) and distinct from "0".
	AmountPaidRaw     string
	TransactionNumber string
	BankName          string
}

func newCheckout() *Checkout {
	return &Checkout{
		Cart:          entity.NewCart(),
		SaleType:      enum.SaleTypeReceipt,
		PaymentMethod: enum.PaymentCash,
	}
}

// Store hands out checkout sessions keyed by cashier ID.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Checkout
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*Checkout)}
}

// Get returns the cashier's checkout session, creating a fresh one (empty
// cart, receipt, cash) on first use.
func (s *Store) Get(cashierID uuid.UUID) *Checkout {
	s.mu.RLock()
	checkout, ok := s.sessions[cashierID]
	s.mu.RUnlock()
	if ok {
		return checkout
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if checkout, ok := s.sessions[cashierID]; ok {
		return checkout
	}
	checkout = newCheckout()
	s.sessions[cashierID] = checkout
	return checkout
}

// Drop removes a cashier's session, e.g. after the till is closed.
func (s *Store) Drop(cashierID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, cashierID)
}
