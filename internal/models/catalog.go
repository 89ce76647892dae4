package models

import "sort"

// Static catalog used when the integrator does not supply one. Values
// match the production parameter set for the San José launch map.

var DefaultProducts = map[string]Product{
	"gallo_pinto": {Code: "gallo_pinto", Name: "Pinto", Price: 2500, Cost: 800, PrepTime: 3},
	"empanada":    {Code: "empanada", Name: "Empanada", Price: 1500, Cost: 400, PrepTime: 2},
	"agua_dulce":  {Code: "agua_dulce", Name: "Agua Dulce", Price: 1000, Cost: 200, PrepTime: 1},
}

var DefaultCustomerTypes = []CustomerType{
	{ID: "student_f", Name: "Estudiante", PreferredProducts: []string{"empanada", "agua_dulce"}, Patience: 6, TipChance: 0.1},
	{ID: "student_m", Name: "Estudiante", PreferredProducts: []string{"gallo_pinto", "empanada"}, Patience: 5, TipChance: 0.15},
	{ID: "office_m", Name: "Oficinista", PreferredProducts: []string{"gallo_pinto", "agua_dulce"}, Patience: 4, TipChance: 0.3},
	{ID: "office_f", Name: "Ejecutiva", PreferredProducts: []string{"agua_dulce", "empanada"}, Patience: 3, TipChance: 0.4},
	{ID: "senior_m", Name: "Don Pedro", PreferredProducts: []string{"agua_dulce", "gallo_pinto"}, Patience: 8, TipChance: 0.2},
	{ID: "senior_f", Name: "Doña María", PreferredProducts: []string{"gallo_pinto", "empanada"}, Patience: 8, TipChance: 0.25},
	{ID: "worker", Name: "Trabajador", PreferredProducts: []string{"empanada", "gallo_pinto"}, Patience: 4, TipChance: 0.2},
	{ID: "chef", Name: "Chef", PreferredProducts: []string{"gallo_pinto"}, Patience: 5, TipChance: 0.5},
	{ID: "tourist", Name: "Turista", PreferredProducts: []string{"gallo_pinto", "agua_dulce"}, Patience: 7, TipChance: 0.6},
	{ID: "kid", Name: "Chiquillo", PreferredProducts: []string{"empanada", "agua_dulce"}, Patience: 3, TipChance: 0.05},
}

var DefaultLocations = map[string]Location{
	"ucr": {
		Code:          "ucr",
		Name:          "Universidad",
		Description:   "Campus universitario lleno de estudiantes hambrientos",
		CustomerTypes: []string{"student_f", "student_m", "office_m", "office_f", "chef"},
		RushHours: []RushHour{
			{Start: 7, End: 9, Multiplier: 2.0},
			{Start: 11, End: 14, Multiplier: 3.0},
			{Start: 17, End: 19, Multiplier: 1.5},
		},
		BaseCustomerRate: 0.05,
		PriceMultiplier:  0.9,
	},
	"mercado_central": {
		Code:          "mercado_central",
		Name:          "Mercado Central",
		Description:   "El corazón gastronómico de San José",
		CustomerTypes: []string{"senior_m", "senior_f", "worker", "office_m", "tourist"},
		RushHours: []RushHour{
			{Start: 6, End: 9, Multiplier: 2.5},
			{Start: 11, End: 13, Multiplier: 2.0},
		},
		BaseCustomerRate: 0.08,
		PriceMultiplier:  1.0,
	},
	"jaco": {
		Code:          "jaco",
		Name:          "Playa Jacó",
		Description:   "Sol, arena y turistas con hambre",
		CustomerTypes: []string{"tourist", "kid", "student_f", "student_m"},
		RushHours: []RushHour{
			{Start: 11, End: 15, Multiplier: 2.5},
			{Start: 17, End: 20, Multiplier: 2.0},
		},
		BaseCustomerRate: 0.06,
		PriceMultiplier:  1.3,
	},
	"saprissa": {
		Code:          "saprissa",
		Name:          "Estadio Saprissa",
		Description:   "El Monstruo Morado y sus fanáticos",
		CustomerTypes: []string{"worker", "student_m", "senior_m", "kid"},
		RushHours: []RushHour{
			{Start: 18, End: 22, Multiplier: 4.0},
		},
		BaseCustomerRate: 0.03,
		PriceMultiplier:  1.2,
	},
	"feria_agricultor": {
		Code:          "feria_agricultor",
		Name:          "Feria del Agricultor",
		Description:   "Productos frescos y ambiente familiar",
		CustomerTypes: []string{"senior_f", "senior_m", "office_f", "kid"},
		RushHours: []RushHour{
			{Start: 6, End: 10, Multiplier: 3.0},
		},
		BaseCustomerRate: 0.07,
		PriceMultiplier:  0.85,
	},
	"aeropuerto": {
		Code:          "aeropuerto",
		Name:          "Aeropuerto",
		Description:   "Viajeros de todo el mundo",
		CustomerTypes: []string{"tourist", "office_m", "office_f"},
		RushHours: []RushHour{
			{Start: 5, End: 8, Multiplier: 2.0},
			{Start: 12, End: 15, Multiplier: 1.5},
			{Start: 18, End: 22, Multiplier: 2.0},
		},
		BaseCustomerRate: 0.04,
		PriceMultiplier:  1.5,
	},
	"escalante": {
		Code:          "escalante",
		Name:          "Barrio Escalante",
		Description:   "El barrio gastronómico de moda",
		CustomerTypes: []string{"office_f", "office_m", "chef", "tourist"},
		RushHours: []RushHour{
			{Start: 12, End: 14, Multiplier: 2.0},
			{Start: 19, End: 22, Multiplier: 3.0},
		},
		BaseCustomerRate: 0.04,
		PriceMultiplier:  1.4,
	},
	"sabana": {
		Code:          "sabana",
		Name:          "Parque La Sabana",
		Description:   "Deportistas y familias disfrutando",
		CustomerTypes: []string{"worker", "student_m", "student_f", "kid", "senior_m"},
		RushHours: []RushHour{
			{Start: 6, End: 8, Multiplier: 2.0},
			{Start: 16, End: 19, Multiplier: 2.5},
		},
		BaseCustomerRate: 0.05,
		PriceMultiplier:  1.0,
	},
}

// Catalog bundles the static definitions the spawner and fulfillment
// engine consume. Assumed immutable for the session's lifetime.
type Catalog struct {
	Products      map[string]Product
	CustomerTypes []CustomerType
	Locations     map[string]Location

	productOrder []string
}

// DefaultCatalog returns a catalog backed by the built-in parameter
// set.
func DefaultCatalog() *Catalog {
	return NewCatalog(DefaultProducts, DefaultCustomerTypes, DefaultLocations)
}

func NewCatalog(products map[string]Product, types []CustomerType, locations map[string]Location) *Catalog {
	c := &Catalog{
		Products:      products,
		CustomerTypes: types,
		Locations:     locations,
	}
	for code := range products {
		c.productOrder = append(c.productOrder, code)
	}
	sort.Strings(c.productOrder)
	return c
}

// ProductOrder returns product codes in stable sorted order, used for
// deterministic substitution sampling.
func (c *Catalog) ProductOrder() []string {
	return c.productOrder
}

// Location looks up a location by code, falling back to "ucr" for
// unknown codes so a stale session never strands the truck.
func (c *Catalog) Location(code string) Location {
	if loc, ok := c.Locations[code]; ok {
		return loc
	}
	return c.Locations["ucr"]
}

// CustomerTypesFor filters the catalog's types down to those that
// frequent the given location. Empty filter means every type spawns.
func (c *Catalog) CustomerTypesFor(loc Location) []CustomerType {
	if len(loc.CustomerTypes) == 0 {
		return c.CustomerTypes
	}
	wanted := make(map[string]bool, len(loc.CustomerTypes))
	for _, id := range loc.CustomerTypes {
		wanted[id] = true
	}
	var out []CustomerType
	for _, ct := range c.CustomerTypes {
		if wanted[ct.ID] {
			out = append(out, ct)
		}
	}
	if len(out) == 0 {
		return c.CustomerTypes
	}
	return out
}
