package sim

// Ledger accumulates the session's economy. Money persists across
// days; the per-day counters reset when a new day starts.
type Ledger struct {
	Money           int64
	Revenue         int64
	CustomersServed int
	CustomersLost   int
	SalesByProduct  map[string]int
}

// DaySummary is the end-of-day snapshot taken before the per-day
// counters reset.
type DaySummary struct {
	Revenue         int64
	CustomersServed int
	CustomersLost   int
	SalesByProduct  map[string]int
}

func NewLedger(startingMoney int64) *Ledger {
	return &Ledger{
		Money:          startingMoney,
		SalesByProduct: make(map[string]int),
	}
}

// RecordSale credits a completed sale. Money only ever increases
// through this subsystem; spending happens elsewhere.
func (l *Ledger) RecordSale(productCode string, amount int64) {
	l.Money += amount
	l.Revenue += amount
	l.CustomersServed++
	l.SalesByProduct[productCode]++
}

// RecordLoss counts a customer lost to a stock-out or a full queue.
func (l *Ledger) RecordLoss() {
	l.CustomersLost++
}

// Summary reads the current per-day counters without resetting them.
func (l *Ledger) Summary() DaySummary {
	sales := make(map[string]int, len(l.SalesByProduct))
	for code, n := range l.SalesByProduct {
		sales[code] = n
	}
	return DaySummary{
		Revenue:         l.Revenue,
		CustomersServed: l.CustomersServed,
		CustomersLost:   l.CustomersLost,
		SalesByProduct:  sales,
	}
}

// StartNewDay snapshots then resets the per-day counters, leaving the
// cumulative money untouched.
func (l *Ledger) StartNewDay() DaySummary {
	summary := l.Summary()
	l.Revenue = 0
	l.CustomersServed = 0
	l.CustomersLost = 0
	l.SalesByProduct = make(map[string]int)
	return summary
}
