package models

// Product describes a single item the truck can sell.
type Product struct {
	Code     string `json:"code" mapstructure:"code"`
	Name     string `json:"name" mapstructure:"name"`
	Price    int64  `json:"price" mapstructure:"price"`
	Cost     int64  `json:"cost" mapstructure:"cost"`
	PrepTime int    `json:"prep_time" mapstructure:"prep_time"` // minutes, informational only
}

// Inventory maps product codes to remaining stock. Quantities never
// drop below zero; only the fulfillment engine decrements them.
type Inventory map[string]int

// Available lists every product code with stock remaining, in stable
// order so callers can sample from it deterministically under a seeded
// rng.
func (inv Inventory) Available(order []string) []string {
	codes := make([]string, 0, len(inv))
	for _, code := range order {
		if inv[code] > 0 {
			codes = append(codes, code)
		}
	}
	return codes
}

// Clone returns an independent copy for snapshots.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for code, qty := range inv {
		out[code] = qty
	}
	return out
}
