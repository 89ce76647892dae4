package models

import (
	"testing"
	"time"
)

func validSimConfig() SimulationConfig {
	return SimulationConfig{
		OpenHour:       6,
		CloseHour:      18,
		TickInterval:   80 * time.Millisecond,
		MinutesPerTick: 1,
		MaxQueueLength: 6,
		ServiceChance:  0.08,
	}
}

func TestSimulationConfigValidate(t *testing.T) {
	good := validSimConfig()
	if err := good.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	bad := validSimConfig()
	bad.CloseHour = 6
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for close_hour <= open_hour")
	}

	bad = validSimConfig()
	bad.MaxQueueLength = 0
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for zero queue length")
	}

	bad = validSimConfig()
	bad.TickInterval = 0
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for zero tick interval")
	}

	bad = validSimConfig()
	bad.ServiceChance = 1.5
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for service chance above 1")
	}
}

func TestDatabaseConnectionString(t *testing.T) {
	dc := DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "sim",
		Password: "secret",
		DBName:   "trucksim",
		SSLMode:  "disable",
	}
	want := "host=localhost port=5432 user=sim password=secret dbname=trucksim sslmode=disable"
	if got := dc.ConnectionString(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
