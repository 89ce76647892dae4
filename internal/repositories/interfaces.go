package repositories

import (
	"context"
	"errors"

	"github.com/calleviva/trucksim/internal/models"
)

// ErrSessionNotFound is returned when no session exists for an id.
var ErrSessionNotFound = errors.New("game session not found")

// SessionRepository persists game sessions. The simulation core never
// talks to it directly; the integrator hydrates the controller from
// Load and checkpoints with Save on day-end transitions.
type SessionRepository interface {
	Create(ctx context.Context, session *models.GameSession) error
	Load(ctx context.Context, gameID string) (*models.GameSession, error)
	Save(ctx context.Context, session *models.GameSession) error
	Delete(ctx context.Context, gameID string) error
}
