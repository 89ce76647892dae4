package models

import (
	"encoding/json"
	"time"
)

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusAbandoned = "abandoned"
)

// GameSession is the persistence shape for one player's game. The
// controller hydrates from it at start and checkpoints back to it at
// each day end.
type GameSession struct {
	ID              string          `json:"id"`
	PlayerID        string          `json:"player_id"`
	Name            string          `json:"name,omitempty"`
	GameDay         int             `json:"game_day"`
	Money           int64           `json:"money"`
	Reputation      float64         `json:"reputation"`
	CurrentLocation string          `json:"current_location,omitempty"`
	Status          string          `json:"status"`
	Stats           json.RawMessage `json:"stats,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// SessionStats is the blob stored in GameSession.Stats.
type SessionStats struct {
	CustomersServed int            `json:"customers_served"`
	CustomersLost   int            `json:"customers_lost"`
	TotalRevenue    int64          `json:"total_revenue"`
	Inventory       map[string]int `json:"inventory"`
}
