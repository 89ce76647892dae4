package factories

import (
	"math/rand"

	"github.com/calleviva/trucksim/internal/models"
	"github.com/jaswdr/faker"
)

// CustomerFactory builds customers for the spawner. IDs are a
// creation-order counter scoped to the factory; display names are
// faked presentation payload and carry no game meaning.
type CustomerFactory struct {
	catalog *models.Catalog
	rng     *rand.Rand
	fake    faker.Faker
	nextID  int64
}

func NewCustomerFactory(catalog *models.Catalog, rng *rand.Rand) *CustomerFactory {
	return &CustomerFactory{
		catalog: catalog,
		rng:     rng,
		fake:    faker.New(),
	}
}

// NewCustomer draws a customer type from the location's crowd and a
// preferred product from that type's list.
func (cf *CustomerFactory) NewCustomer(loc models.Location, hour float64) models.Customer {
	types := cf.catalog.CustomerTypesFor(loc)
	ct := types[cf.rng.Intn(len(types))]

	preferred := ct.PreferredProducts[cf.rng.Intn(len(ct.PreferredProducts))]

	cf.nextID++
	return models.Customer{
		ID:               cf.nextID,
		DisplayName:      cf.fake.Person().FirstName(),
		TypeID:           ct.ID,
		PreferredProduct: preferred,
		State:            models.CustomerArriving,
		ArrivedAtHour:    hour,
	}
}
