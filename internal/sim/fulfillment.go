package sim

import (
	"math"
	"math/rand"

	"github.com/calleviva/trucksim/internal/models"
)

// SaleOutcome tags the result of a service attempt. These are business
// events, not faults; none of them is ever surfaced as an error.
type SaleOutcome string

const (
	SaleQueueEmpty SaleOutcome = "queue_empty"
	SaleSold       SaleOutcome = "sold"
	SaleOutOfStock SaleOutcome = "out_of_stock"
)

// SaleResult describes what happened to the customer at the front of
// the queue.
type SaleResult struct {
	Outcome     SaleOutcome
	Customer    models.Customer
	ProductCode string
	Amount      int64
	Substituted bool
}

// Engine resolves the head of the queue against inventory and settles
// the sale into the ledger.
type Engine struct {
	catalog *models.Catalog
	rng     *rand.Rand
}

func NewEngine(catalog *models.Catalog, rng *rand.Rand) *Engine {
	return &Engine{catalog: catalog, rng: rng}
}

// TryServeFront serves the customer at the front of the queue. The
// preferred product wins when in stock; otherwise the customer settles
// for a uniformly chosen in-stock item. With nothing in stock the
// customer is dequeued as lost. Inventory is never decremented below
// zero.
func (e *Engine) TryServeFront(queue *Queue, inv models.Inventory, ledger *Ledger, loc models.Location) SaleResult {
	front := queue.PeekFront()
	if front == nil {
		return SaleResult{Outcome: SaleQueueEmpty}
	}

	productCode := front.PreferredProduct
	substituted := false
	if inv[productCode] <= 0 {
		available := inv.Available(e.catalog.ProductOrder())
		if len(available) == 0 {
			customer, _ := queue.DequeueFront()
			customer.State = models.CustomerLeaving
			ledger.RecordLoss()
			return SaleResult{Outcome: SaleOutOfStock, Customer: customer}
		}
		productCode = available[e.rng.Intn(len(available))]
		substituted = true
	}

	inv[productCode]--
	product := e.catalog.Products[productCode]
	amount := int64(math.Round(float64(product.Price) * loc.PriceMultiplier))

	customer, _ := queue.DequeueFront()
	customer.State = models.CustomerServed
	ledger.RecordSale(productCode, amount)

	return SaleResult{
		Outcome:     SaleSold,
		Customer:    customer,
		ProductCode: productCode,
		Amount:      amount,
		Substituted: substituted,
	}
}
