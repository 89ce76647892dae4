package models

// CustomerState tracks where a customer is in their visit. Arriving
// and Leaving exist for presentation layers; the economy only cares
// about Waiting, Served and Lost.
type CustomerState string

const (
	CustomerArriving CustomerState = "arriving"
	CustomerWaiting  CustomerState = "waiting"
	CustomerOrdering CustomerState = "ordering"
	CustomerServed   CustomerState = "served"
	CustomerLeaving  CustomerState = "leaving"
	CustomerGone     CustomerState = "gone"
)

// CustomerType is a static archetype used to bias which product a
// spawned customer prefers. Patience and TipChance are carried from
// the catalog but not read by the engine.
type CustomerType struct {
	ID                string   `json:"id" mapstructure:"id"`
	Name              string   `json:"name" mapstructure:"name"`
	PreferredProducts []string `json:"preferred_products" mapstructure:"preferred_products"`
	Patience          int      `json:"patience" mapstructure:"patience"`
	TipChance         float64  `json:"tip_chance" mapstructure:"tip_chance"`
}

// Customer is one visitor to the truck. IDs are monotonically
// increasing per controller, in creation order.
type Customer struct {
	ID               int64         `json:"id"`
	DisplayName      string        `json:"display_name"`
	TypeID           string        `json:"type_id"`
	PreferredProduct string        `json:"preferred_product"`
	State            CustomerState `json:"state"`
	ArrivedAtHour    float64       `json:"arrived_at_hour"`
}
