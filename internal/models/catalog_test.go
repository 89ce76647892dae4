package models

import (
	"reflect"
	"testing"
)

func TestRushMultiplierWindows(t *testing.T) {
	loc := DefaultLocations["ucr"]

	cases := []struct {
		hour float64
		want float64
	}{
		{6.5, 1.0},  // before any window
		{7.0, 2.0},  // window start is inclusive
		{9.0, 2.0},  // window end is inclusive
		{10.0, 1.0}, // between windows
		{12.0, 3.0}, // lunch rush
		{17.5, 1.5}, // evening rush
	}
	for _, tc := range cases {
		if got := loc.RushMultiplier(tc.hour); got != tc.want {
			t.Fatalf("RushMultiplier(%v) = %v, want %v", tc.hour, got, tc.want)
		}
	}
}

func TestRushMultiplierNoWindows(t *testing.T) {
	loc := Location{Code: "empty"}
	if got := loc.RushMultiplier(12); got != 1.0 {
		t.Fatalf("expected 1.0 without rush windows, got %v", got)
	}
}

func TestDefaultLocationsComplete(t *testing.T) {
	want := []string{
		"ucr", "mercado_central", "jaco", "saprissa",
		"feria_agricultor", "aeropuerto", "sabana", "escalante",
	}
	if len(DefaultLocations) != len(want) {
		t.Fatalf("expected %d locations, got %d", len(want), len(DefaultLocations))
	}
	for _, code := range want {
		loc, ok := DefaultLocations[code]
		if !ok {
			t.Fatalf("missing location %q", code)
		}
		if loc.Code != code {
			t.Fatalf("location %q carries code %q", code, loc.Code)
		}
	}

	esc := DefaultLocations["escalante"]
	if esc.BaseCustomerRate != 0.04 || esc.PriceMultiplier != 1.4 {
		t.Fatalf("unexpected escalante rates: %+v", esc)
	}
	if got := esc.RushMultiplier(20); got != 3.0 {
		t.Fatalf("expected dinner rush 3.0 at escalante, got %v", got)
	}
	if got := esc.RushMultiplier(13); got != 2.0 {
		t.Fatalf("expected lunch rush 2.0 at escalante, got %v", got)
	}
}

func TestCatalogLocationFallback(t *testing.T) {
	c := DefaultCatalog()
	if got := c.Location("mercado_central"); got.Code != "mercado_central" {
		t.Fatalf("expected mercado_central, got %q", got.Code)
	}
	if got := c.Location("atlantis"); got.Code != "ucr" {
		t.Fatalf("expected fallback to ucr, got %q", got.Code)
	}
}

func TestCatalogProductOrderIsSorted(t *testing.T) {
	c := DefaultCatalog()
	want := []string{"agua_dulce", "empanada", "gallo_pinto"}
	if !reflect.DeepEqual(c.ProductOrder(), want) {
		t.Fatalf("expected %v, got %v", want, c.ProductOrder())
	}
}

func TestCustomerTypesForFiltersByLocation(t *testing.T) {
	c := DefaultCatalog()
	loc := c.Location("aeropuerto")

	types := c.CustomerTypesFor(loc)
	if len(types) != 3 {
		t.Fatalf("expected 3 types at the airport, got %d", len(types))
	}
	for _, ct := range types {
		found := false
		for _, id := range loc.CustomerTypes {
			if ct.ID == id {
				found = true
			}
		}
		if !found {
			t.Fatalf("type %q does not frequent %q", ct.ID, loc.Code)
		}
	}
}

func TestCustomerTypesForEmptyFilterReturnsAll(t *testing.T) {
	c := DefaultCatalog()
	types := c.CustomerTypesFor(Location{Code: "anywhere"})
	if len(types) != len(DefaultCustomerTypes) {
		t.Fatalf("expected all %d types, got %d", len(DefaultCustomerTypes), len(types))
	}
}

func TestInventoryAvailable(t *testing.T) {
	inv := Inventory{"gallo_pinto": 0, "empanada": 2, "agua_dulce": 1}
	got := inv.Available([]string{"agua_dulce", "empanada", "gallo_pinto"})
	want := []string{"agua_dulce", "empanada"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestInventoryCloneIsIndependent(t *testing.T) {
	inv := Inventory{"empanada": 2}
	clone := inv.Clone()
	clone["empanada"] = 99
	if inv["empanada"] != 2 {
		t.Fatalf("clone mutation leaked into source")
	}
}
