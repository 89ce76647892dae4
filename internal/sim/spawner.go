package sim

import (
	"math"
	"math/rand"

	"github.com/calleviva/trucksim/internal/factories"
	"github.com/calleviva/trucksim/internal/models"
)

// SpeedCompensation dampens the per-tick arrival probability under
// acceleration. Ticks fire proportionally faster at higher speeds, so
// a linear multiplier would inflate arrivals; sqrt is the tuned
// compromise carried over from production balancing.
func SpeedCompensation(speed int) float64 {
	return math.Sqrt(float64(speed))
}

// Spawner decides, once per tick, whether a new customer arrives.
type Spawner struct {
	rng     *rand.Rand
	factory *factories.CustomerFactory
}

func NewSpawner(rng *rand.Rand, factory *factories.CustomerFactory) *Spawner {
	return &Spawner{rng: rng, factory: factory}
}

// MaybeSpawn draws one uniform sample against the location's effective
// arrival rate. On a successful roll it returns the new customer;
// turnedAway is set when the roll succeeded but the queue was full,
// which the caller must count as a lost customer.
func (s *Spawner) MaybeSpawn(loc models.Location, hour float64, speed, queueLen, maxQueueLen int) (c *models.Customer, turnedAway bool) {
	effectiveRate := loc.BaseCustomerRate * loc.RushMultiplier(hour)
	if s.rng.Float64() >= effectiveRate*SpeedCompensation(speed) {
		return nil, false
	}

	customer := s.factory.NewCustomer(loc, hour)
	if queueLen >= maxQueueLen {
		customer.State = models.CustomerGone
		return &customer, true
	}
	customer.State = models.CustomerWaiting
	return &customer, false
}
