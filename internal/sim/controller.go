package sim

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/calleviva/trucksim/internal/factories"
	"github.com/calleviva/trucksim/internal/models"
)

// State is the controller's lifecycle phase.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateDayEnded State = "day_ended"
)

// leavingGraceTicks is how many ticks a served customer lingers in the
// snapshot before disappearing, so renderers can play an exit.
const leavingGraceTicks = 10

var validSpeeds = []int{1, 2, 5}

// ClampSpeed snaps an arbitrary speed to the nearest supported value.
// Speed comes from trusted UI, so out-of-range values are corrected
// rather than rejected.
func ClampSpeed(speed int) int {
	best := validSpeeds[0]
	for _, v := range validSpeeds[1:] {
		if abs(speed-v) < abs(speed-best) {
			best = v
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Snapshot is the read-only view of the simulation published to
// subscribers after every tick.
type Snapshot struct {
	GameID          string
	State           State
	Playing         bool
	Speed           int
	Day             int
	Hour            float64
	Money           int64
	Revenue         int64
	CustomersServed int
	CustomersLost   int
	Reputation      float64
	Location        models.Location
	Queue           []models.Customer
	Leaving         []models.Customer
	Inventory       models.Inventory
	RecentEvents    []LogEntry
}

// Subscriber receives snapshots. Callbacks run outside the
// controller's lock but on its tick goroutine, so they should return
// quickly.
type Subscriber func(Snapshot)

// EventSink receives serialized business events, one topic per event
// family.
type EventSink interface {
	WriteMessage(topic string, msg []byte) error
}

// CheckpointFunc persists the session at each day end. Failures are
// the integrator's concern; the controller never retries and never
// lets a failed save corrupt in-memory state.
type CheckpointFunc func(models.GameSession)

type leavingCustomer struct {
	customer  models.Customer
	ticksLeft int
}

// Controller orchestrates clock, spawner, queue, fulfillment and
// ledger for one game session. All mutation happens under one lock;
// the tick goroutine is the sole writer between intents.
type Controller struct {
	mu      sync.Mutex
	cfg     models.SimulationConfig
	catalog *models.Catalog

	gameID     string
	playerID   string
	initialDay int

	state      State
	speed      int
	clock      *Clock
	queue      *Queue
	inventory  models.Inventory
	ledger     *Ledger
	reputation float64
	location   models.Location
	spawner    *Spawner
	engine     *Engine
	rng        *rand.Rand

	leaving    []leavingCustomer
	events     []LogEntry
	subs       map[int]Subscriber
	nextSubID  int
	sink       EventSink
	checkpoint CheckpointFunc

	pendingSave    bool
	pendingSession models.GameSession

	timer   *time.Timer
	stopped bool
}

// NewController builds a controller hydrated from the given session.
// A zero-value session starts a fresh game with the configured
// defaults.
func NewController(cfg models.SimulationConfig, catalog *models.Catalog, session models.GameSession) *Controller {
	rng := rand.New(rand.NewSource(cfg.Seed))

	locationCode := session.CurrentLocation
	if locationCode == "" {
		locationCode = cfg.Location
	}
	location := catalog.Location(locationCode)

	// a session that has never played a day carries no economy yet; a
	// resumed one keeps its money even at zero
	money := session.Money
	initialDay := session.GameDay
	if initialDay < 1 {
		initialDay = 1
		money = cfg.StartingMoney
	}

	inventory := hydrateInventory(session.Stats, cfg.Inventory)
	factory := factories.NewCustomerFactory(catalog, rng)

	return &Controller{
		cfg:        cfg,
		catalog:    catalog,
		gameID:     session.ID,
		playerID:   session.PlayerID,
		initialDay: initialDay,
		state:      StateIdle,
		speed:      ClampSpeed(cfg.Speed),
		clock:      NewClock(cfg.OpenHour, cfg.CloseHour),
		queue:      NewQueue(cfg.MaxQueueLength),
		inventory:  inventory,
		ledger:     NewLedger(money),
		reputation: session.Reputation,
		location:   location,
		spawner:    NewSpawner(rng, factory),
		engine:     NewEngine(catalog, rng),
		rng:        rng,
		subs:       make(map[int]Subscriber),
	}
}

func hydrateInventory(stats json.RawMessage, fallback map[string]int) models.Inventory {
	if len(stats) > 0 {
		var st models.SessionStats
		if err := json.Unmarshal(stats, &st); err == nil && len(st.Inventory) > 0 {
			return models.Inventory(st.Inventory)
		}
	}
	inv := make(models.Inventory, len(fallback))
	for code, qty := range fallback {
		inv[code] = qty
	}
	return inv
}

// SetSink routes serialized business events to the given destination.
// Must be called before Play.
func (c *Controller) SetSink(sink EventSink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sink = sink
}

// SetCheckpoint registers the day-end persistence hook.
func (c *Controller) SetCheckpoint(fn CheckpointFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkpoint = fn
}

// Subscribe registers a snapshot consumer and returns its
// unsubscribe function.
func (c *Controller) Subscribe(fn Subscriber) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// Play starts or resumes ticking. From DayEnded it opens the next
// business day: clock and per-day counters reset, the queue clears,
// money carries over.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || c.state == StateRunning {
		return
	}

	switch c.state {
	case StateIdle:
		c.logEventLocked(EventDayStarted, fmt.Sprintf("Day %d begins at %s", c.dayLocked(), c.location.Name))
	case StateDayEnded:
		c.clock.StartNextDay()
		c.ledger.StartNewDay()
		c.queue.Clear()
		c.leaving = nil
		c.logEventLocked(EventDayStarted, fmt.Sprintf("Day %d begins at %s", c.dayLocked(), c.location.Name))
	}

	c.state = StateRunning
	c.scheduleTickLocked()
}

// Pause halts ticking without mutating any other state. Pausing while
// already paused is a no-op.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRunning {
		return
	}
	c.state = StatePaused
	c.cancelTimerLocked()
}

// SetSpeed changes the simulation speed. Takes effect on the next
// scheduled tick, never retroactively.
func (c *Controller) SetSpeed(speed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = ClampSpeed(speed)
}

// SetLocation swaps the active location wholesale. The new rates apply
// from the next tick.
func (c *Controller) SetLocation(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.location = c.catalog.Location(code)
}

// ForceServe is the click-the-truck override: serve the front of the
// queue immediately, bypassing the stochastic service roll. Only
// honored while running.
func (c *Controller) ForceServe() {
	c.mu.Lock()
	if c.stopped || c.state != StateRunning || c.queue.Len() == 0 {
		c.mu.Unlock()
		return
	}
	c.serveFrontLocked()
	snap, subs := c.publishLocked()
	c.mu.Unlock()
	notify(subs, snap)
}

// Stop permanently cancels the controller, for session teardown. No
// tick fires after Stop returns.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	c.cancelTimerLocked()
}

// CurrentState returns the current lifecycle phase.
func (c *Controller) CurrentState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns a read-only copy of the full simulation state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Session materializes the current state as a persistable session
// record.
func (c *Controller) Session() models.GameSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionLocked()
}

func (c *Controller) sessionLocked() models.GameSession {
	stats, err := json.Marshal(models.SessionStats{
		CustomersServed: c.ledger.CustomersServed,
		CustomersLost:   c.ledger.CustomersLost,
		TotalRevenue:    c.ledger.Revenue,
		Inventory:       c.inventory,
	})
	if err != nil {
		log.Printf("Error serializing session stats: %v", err)
	}
	return models.GameSession{
		ID:              c.gameID,
		PlayerID:        c.playerID,
		GameDay:         c.dayLocked(),
		Money:           c.ledger.Money,
		Reputation:      c.reputation,
		CurrentLocation: c.location.Code,
		Status:          models.SessionStatusActive,
		Stats:           stats,
		UpdatedAt:       time.Now().UTC(),
	}
}

func (c *Controller) dayLocked() int {
	return c.initialDay + c.clock.DaysElapsed
}

func (c *Controller) scheduleTickLocked() {
	delay := time.Duration(float64(c.cfg.TickInterval) / float64(c.speed))
	c.timer = time.AfterFunc(delay, c.tick)
}

func (c *Controller) cancelTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) tick() {
	c.mu.Lock()
	if c.stopped || c.state != StateRunning {
		c.mu.Unlock()
		return
	}

	c.stepLocked()

	if c.state == StateRunning {
		c.scheduleTickLocked()
	}
	snap, subs := c.publishLocked()
	save, session, saving := c.takeCheckpointLocked()
	c.mu.Unlock()

	if saving {
		save(session)
	}
	notify(subs, snap)
}

// stepLocked advances the simulation by exactly one tick: clock, then
// spawner, then the stochastic service roll.
func (c *Controller) stepLocked() {
	c.ageLeavingLocked()

	if dayEnded := c.clock.Advance(c.cfg.MinutesPerTick); dayEnded {
		c.endDayLocked()
		return
	}

	c.maybeSpawnLocked()

	if c.queue.Len() > 0 && c.rng.Float64() < c.cfg.ServiceChance*SpeedCompensation(c.speed) {
		c.serveFrontLocked()
	}
}

func (c *Controller) maybeSpawnLocked() {
	customer, turnedAway := c.spawner.MaybeSpawn(c.location, c.clock.Hour, c.speed, c.queue.Len(), c.cfg.MaxQueueLength)
	if customer == nil {
		return
	}

	if turnedAway || !c.queue.Enqueue(*customer) {
		c.ledger.RecordLoss()
		c.logEventLocked(EventCustomerTurnedAway, fmt.Sprintf("%s left, the line was full", customer.DisplayName))
		c.emitLocked(TopicCustomerEvents, CustomerEvent{
			EventType:        EventCustomerTurnedAway,
			GameID:           c.gameID,
			Day:              int32(c.dayLocked()),
			Hour:             c.clock.Hour,
			CustomerID:       customer.ID,
			CustomerType:     customer.TypeID,
			PreferredProduct: customer.PreferredProduct,
			QueueLength:      int32(c.queue.Len()),
		})
		return
	}

	c.logEventLocked(EventCustomerArrived, fmt.Sprintf("%s joined the line", customer.DisplayName))
	c.emitLocked(TopicCustomerEvents, CustomerEvent{
		EventType:        EventCustomerArrived,
		GameID:           c.gameID,
		Day:              int32(c.dayLocked()),
		Hour:             c.clock.Hour,
		CustomerID:       customer.ID,
		CustomerType:     customer.TypeID,
		PreferredProduct: customer.PreferredProduct,
		QueueLength:      int32(c.queue.Len()),
	})
}

func (c *Controller) serveFrontLocked() {
	result := c.engine.TryServeFront(c.queue, c.inventory, c.ledger, c.location)
	switch result.Outcome {
	case SaleSold:
		c.leaving = append(c.leaving, leavingCustomer{customer: result.Customer, ticksLeft: leavingGraceTicks})
		product := c.catalog.Products[result.ProductCode]
		msg := fmt.Sprintf("%s bought %s for %d", result.Customer.DisplayName, product.Name, result.Amount)
		if result.Substituted {
			msg = fmt.Sprintf("%s settled for %s for %d", result.Customer.DisplayName, product.Name, result.Amount)
		}
		c.logEventLocked(EventSaleCompleted, msg)
		c.emitLocked(TopicSaleEvents, SaleEvent{
			EventType:   EventSaleCompleted,
			GameID:      c.gameID,
			Day:         int32(c.dayLocked()),
			Hour:        c.clock.Hour,
			CustomerID:  result.Customer.ID,
			ProductCode: result.ProductCode,
			Amount:      result.Amount,
			Substituted: result.Substituted,
			Money:       c.ledger.Money,
		})
	case SaleOutOfStock:
		c.logEventLocked(EventOutOfStock, fmt.Sprintf("%s left, nothing in stock", result.Customer.DisplayName))
		c.emitLocked(TopicSaleEvents, SaleEvent{
			EventType:  EventOutOfStock,
			GameID:     c.gameID,
			Day:        int32(c.dayLocked()),
			Hour:       c.clock.Hour,
			CustomerID: result.Customer.ID,
			Money:      c.ledger.Money,
		})
	}
}

func (c *Controller) endDayLocked() {
	c.state = StateDayEnded
	c.cancelTimerLocked()

	summary := c.ledger.Summary()
	c.reputation = AdjustReputation(c.reputation, summary)

	c.logEventLocked(EventDayEnded, fmt.Sprintf(
		"Day %d closed: %d served, %d lost, revenue %d",
		c.dayLocked(), summary.CustomersServed, summary.CustomersLost, summary.Revenue,
	))
	c.emitLocked(TopicDaySummaryEvents, DaySummaryEvent{
		EventType:       EventDayEnded,
		GameID:          c.gameID,
		Day:             int32(c.dayLocked()),
		Revenue:         summary.Revenue,
		CustomersServed: int32(summary.CustomersServed),
		CustomersLost:   int32(summary.CustomersLost),
		Money:           c.ledger.Money,
		Reputation:      c.reputation,
	})

	// staged here, invoked by the caller after the lock is released;
	// the hook may do slow I/O and must not stall snapshots or intents
	if c.checkpoint != nil {
		c.pendingSession = c.sessionLocked()
		c.pendingSave = true
	}
}

// takeCheckpointLocked hands over the staged day-end save, if any, so
// the caller can run the hook outside the lock.
func (c *Controller) takeCheckpointLocked() (CheckpointFunc, models.GameSession, bool) {
	if !c.pendingSave {
		return nil, models.GameSession{}, false
	}
	c.pendingSave = false
	return c.checkpoint, c.pendingSession, true
}

func (c *Controller) ageLeavingLocked() {
	remaining := c.leaving[:0]
	for _, lc := range c.leaving {
		lc.ticksLeft--
		if lc.ticksLeft > 0 {
			lc.customer.State = models.CustomerLeaving
			remaining = append(remaining, lc)
		}
	}
	c.leaving = remaining
}

func (c *Controller) logEventLocked(eventType, message string) {
	entry := LogEntry{
		Type:    eventType,
		Message: message,
		Day:     c.dayLocked(),
		Hour:    c.clock.Hour,
	}
	c.events = append([]LogEntry{entry}, c.events...)
	if max := c.cfg.EventLogSize; max > 0 && len(c.events) > max {
		c.events = c.events[:max]
	}
}

func (c *Controller) emitLocked(topic string, event interface{}) {
	if c.sink == nil {
		return
	}
	msg, err := marshalEvent(topic, event)
	if err != nil {
		log.Printf("Error serializing event: %v", err)
		return
	}
	if err := c.sink.WriteMessage(msg.Topic, msg.Message); err != nil {
		log.Printf("Failed to write message: %v", err)
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	leaving := make([]models.Customer, 0, len(c.leaving))
	for _, lc := range c.leaving {
		leaving = append(leaving, lc.customer)
	}
	events := make([]LogEntry, len(c.events))
	copy(events, c.events)

	return Snapshot{
		GameID:          c.gameID,
		State:           c.state,
		Playing:         c.state == StateRunning,
		Speed:           c.speed,
		Day:             c.dayLocked(),
		Hour:            c.clock.Hour,
		Money:           c.ledger.Money,
		Revenue:         c.ledger.Revenue,
		CustomersServed: c.ledger.CustomersServed,
		CustomersLost:   c.ledger.CustomersLost,
		Reputation:      c.reputation,
		Location:        c.location,
		Queue:           c.queue.Snapshot(),
		Leaving:         leaving,
		Inventory:       c.inventory.Clone(),
		RecentEvents:    events,
	}
}

func (c *Controller) publishLocked() (Snapshot, []Subscriber) {
	snap := c.snapshotLocked()
	subs := make([]Subscriber, 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return snap, subs
}

func notify(subs []Subscriber, snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
