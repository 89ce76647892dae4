package models

// RushHour is a spawn-rate multiplier applied while the clock is
// inside the [Start, End] hour window.
type RushHour struct {
	Start      float64 `json:"start" mapstructure:"start"`
	End        float64 `json:"end" mapstructure:"end"`
	Multiplier float64 `json:"multiplier" mapstructure:"multiplier"`
}

// Location is the static configuration bundle for a spot the truck can
// operate from. Immutable for the duration of a simulation run.
type Location struct {
	Code             string     `json:"code" mapstructure:"code"`
	Name             string     `json:"name" mapstructure:"name"`
	Description      string     `json:"description" mapstructure:"description"`
	CustomerTypes    []string   `json:"customer_types" mapstructure:"customer_types"`
	RushHours        []RushHour `json:"rush_hours" mapstructure:"rush_hours"`
	BaseCustomerRate float64    `json:"base_customer_rate" mapstructure:"base_customer_rate"`
	PriceMultiplier  float64    `json:"price_multiplier" mapstructure:"price_multiplier"`
}

// RushMultiplier returns the multiplier of the first rush-hour window
// containing hour, or 1.0 when no window matches.
func (l *Location) RushMultiplier(hour float64) float64 {
	for _, rush := range l.RushHours {
		if hour >= rush.Start && hour <= rush.End {
			return rush.Multiplier
		}
	}
	return 1.0
}
