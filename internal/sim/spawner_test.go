package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/calleviva/trucksim/internal/factories"
	"github.com/calleviva/trucksim/internal/models"
)

func testLocation(rate float64) models.Location {
	return models.Location{
		Code:             "ucr",
		Name:             "Universidad",
		BaseCustomerRate: rate,
		PriceMultiplier:  1.0,
	}
}

func newTestSpawner(seed int64) *Spawner {
	catalog := models.DefaultCatalog()
	rng := rand.New(rand.NewSource(seed))
	return NewSpawner(rng, factories.NewCustomerFactory(catalog, rng))
}

func TestSpeedCompensation(t *testing.T) {
	if SpeedCompensation(1) != 1.0 {
		t.Fatalf("expected 1.0 at speed 1, got %v", SpeedCompensation(1))
	}
	if got := SpeedCompensation(4); got != 2.0 {
		t.Fatalf("expected 2.0 at speed 4, got %v", got)
	}
	if got := SpeedCompensation(5); math.Abs(got-math.Sqrt(5)) > 1e-12 {
		t.Fatalf("expected sqrt(5) at speed 5, got %v", got)
	}
}

func TestSpawnerZeroRateNeverSpawns(t *testing.T) {
	s := newTestSpawner(1)
	loc := testLocation(0)

	for i := 0; i < 500; i++ {
		if c, _ := s.MaybeSpawn(loc, 10, 5, 0, 6); c != nil {
			t.Fatalf("spawn at zero rate on iteration %d", i)
		}
	}
}

func TestSpawnerSaturatedRateAlwaysSpawns(t *testing.T) {
	s := newTestSpawner(1)
	loc := testLocation(1.0)

	for i := 0; i < 100; i++ {
		c, turnedAway := s.MaybeSpawn(loc, 10, 1, 0, 6)
		if c == nil {
			t.Fatalf("expected spawn at saturated rate on iteration %d", i)
		}
		if turnedAway {
			t.Fatalf("unexpected turn-away with room in the queue")
		}
		if c.State != models.CustomerWaiting {
			t.Fatalf("expected waiting state, got %q", c.State)
		}
	}
}

func TestSpawnerFullQueueTurnsAway(t *testing.T) {
	s := newTestSpawner(1)
	loc := testLocation(1.0)

	c, turnedAway := s.MaybeSpawn(loc, 10, 1, 6, 6)
	if c == nil {
		t.Fatalf("expected a spawn roll to succeed")
	}
	if !turnedAway {
		t.Fatalf("expected turn-away with a full queue")
	}
	if c.State != models.CustomerGone {
		t.Fatalf("expected gone state, got %q", c.State)
	}
}

func TestSpawnerRushHourRaisesRate(t *testing.T) {
	loc := testLocation(0.3)
	loc.RushHours = []models.RushHour{{Start: 11, End: 14, Multiplier: 4.0}}

	// effective rate 1.2 during the rush window, so every roll lands
	s := newTestSpawner(7)
	for i := 0; i < 100; i++ {
		if c, _ := s.MaybeSpawn(loc, 12, 1, 0, 6); c == nil {
			t.Fatalf("expected spawn during rush hour on iteration %d", i)
		}
	}
}
