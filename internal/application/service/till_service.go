package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rcifuentes/caja-api/internal/domain/gateway"
	"github.com/rcifuentes/caja-api/internal/infrastructure/session"
)

// TillService handles closing the cashier's till. Opening a till and the
// closing summary live in the back office; the terminal only triggers the
// close and hands the UI the till ID to navigate to.
type TillService struct {
	pos      gateway.PosGateway
	sessions *session.Store
}

// NewTillService creates a new till service
func NewTillService(pos gateway.PosGateway, sessions *session.Store) *TillService {
	return &TillService{
		pos:      pos,
		sessions: sessions,
	}
}

// Close closes the cashier's open till on the sale service and drops the
// local checkout session: a closed till means the screen starts over.
func (s *TillService) Close(ctx context.Context, cashierID uuid.UUID) (*gateway.TillClosing, error) {
	closing, err := s.pos.CloseTill(ctx)
	if err != nil {
		return nil, err
	}

	s.sessions.Drop(cashierID)
	return closing, nil
}
