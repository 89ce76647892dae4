package factories

import (
	"math/rand"
	"testing"

	"github.com/calleviva/trucksim/internal/models"
)

func newTestFactory(seed int64) (*CustomerFactory, *models.Catalog) {
	catalog := models.DefaultCatalog()
	return NewCustomerFactory(catalog, rand.New(rand.NewSource(seed))), catalog
}

func TestNewCustomerIDsAreMonotonic(t *testing.T) {
	cf, catalog := newTestFactory(1)
	loc := catalog.Location("ucr")

	var last int64
	for i := 0; i < 20; i++ {
		c := cf.NewCustomer(loc, 10)
		if c.ID <= last {
			t.Fatalf("expected id above %d, got %d", last, c.ID)
		}
		last = c.ID
	}
}

func TestNewCustomerMatchesLocationCrowd(t *testing.T) {
	cf, catalog := newTestFactory(1)
	loc := catalog.Location("aeropuerto")

	allowed := make(map[string]bool)
	for _, id := range loc.CustomerTypes {
		allowed[id] = true
	}

	for i := 0; i < 50; i++ {
		c := cf.NewCustomer(loc, 9.5)
		if !allowed[c.TypeID] {
			t.Fatalf("type %q does not frequent %q", c.TypeID, loc.Code)
		}
		if c.State != models.CustomerArriving {
			t.Fatalf("expected arriving state, got %q", c.State)
		}
		if c.ArrivedAtHour != 9.5 {
			t.Fatalf("expected arrival hour 9.5, got %v", c.ArrivedAtHour)
		}
		if c.DisplayName == "" {
			t.Fatalf("expected a display name")
		}
	}
}

func TestNewCustomerPreferredFromTypeList(t *testing.T) {
	cf, catalog := newTestFactory(7)
	loc := catalog.Location("mercado_central")

	byID := make(map[string]models.CustomerType)
	for _, ct := range catalog.CustomerTypes {
		byID[ct.ID] = ct
	}

	for i := 0; i < 50; i++ {
		c := cf.NewCustomer(loc, 8)
		ct := byID[c.TypeID]
		found := false
		for _, code := range ct.PreferredProducts {
			if code == c.PreferredProduct {
				found = true
			}
		}
		if !found {
			t.Fatalf("product %q not preferred by type %q", c.PreferredProduct, c.TypeID)
		}
	}
}
