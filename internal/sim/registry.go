package sim

import (
	"sync"

	"github.com/calleviva/trucksim/internal/models"
)

// Registry keeps one controller per game session, so simulation state
// survives navigation between views and concurrent sessions stay
// isolated.
type Registry struct {
	mu          sync.Mutex
	cfg         models.SimulationConfig
	catalog     *models.Catalog
	controllers map[string]*Controller
}

func NewRegistry(cfg models.SimulationConfig, catalog *models.Catalog) *Registry {
	return &Registry{
		cfg:         cfg,
		catalog:     catalog,
		controllers: make(map[string]*Controller),
	}
}

// GetOrCreate returns the controller for the session, building one
// hydrated from the given record on first access. The session argument
// is only consulted when the controller does not exist yet.
func (r *Registry) GetOrCreate(session models.GameSession) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.controllers[session.ID]; ok {
		return c
	}
	c := NewController(r.cfg, r.catalog, session)
	r.controllers[session.ID] = c
	return c
}

// Get returns the controller for a game id, or nil.
func (r *Registry) Get(gameID string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.controllers[gameID]
}

// Remove stops and forgets a session's controller.
func (r *Registry) Remove(gameID string) {
	r.mu.Lock()
	c, ok := r.controllers[gameID]
	if ok {
		delete(r.controllers, gameID)
	}
	r.mu.Unlock()
	if ok {
		c.Stop()
	}
}

// Len reports how many sessions are live.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}
