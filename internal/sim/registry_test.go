package sim

import (
	"testing"

	"github.com/calleviva/trucksim/internal/models"
)

func TestRegistryGetOrCreateReturnsSameController(t *testing.T) {
	r := NewRegistry(testControllerCfg(), busyCatalog())
	session := models.GameSession{ID: "game-a"}

	first := r.GetOrCreate(session)
	second := r.GetOrCreate(session)
	if first != second {
		t.Fatalf("expected the same controller for the same session")
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 live session, got %d", r.Len())
	}
	first.Stop()
}

func TestRegistryGetUnknownIsNil(t *testing.T) {
	r := NewRegistry(testControllerCfg(), busyCatalog())
	if r.Get("missing") != nil {
		t.Fatalf("expected nil for unknown game id")
	}
}

func TestRegistrySessionsAreIsolated(t *testing.T) {
	r := NewRegistry(testControllerCfg(), busyCatalog())
	a := r.GetOrCreate(models.GameSession{ID: "game-a"})
	b := r.GetOrCreate(models.GameSession{ID: "game-b"})
	defer a.Stop()
	defer b.Stop()

	for i := 0; i < 5; i++ {
		step(a)
	}

	snapA := a.Snapshot()
	snapB := b.Snapshot()
	if snapA.Hour == snapB.Hour {
		t.Fatalf("expected only session a to advance, both at %v", snapA.Hour)
	}
	if snapB.Hour != 6 {
		t.Fatalf("expected session b untouched at hour 6, got %v", snapB.Hour)
	}
}

func TestRegistryRemoveStopsController(t *testing.T) {
	r := NewRegistry(testControllerCfg(), busyCatalog())
	c := r.GetOrCreate(models.GameSession{ID: "game-a"})

	r.Remove("game-a")
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.Len())
	}
	if r.Get("game-a") != nil {
		t.Fatalf("expected controller forgotten")
	}

	// a stopped controller refuses to play
	c.Play()
	if c.CurrentState() == StateRunning {
		t.Fatalf("removed controller should not run")
	}
}
