package datalist

import (
	"sort"

	"github.com/dukahub/dukaweb/pkg/apiv1"
	"github.com/dukahub/dukaweb/pkg/capability"
)

// Catalog names the datalists the web tier serves. Each is guarded by the list capability of the
// entity it searches.
type Catalog struct {
	configs map[string]entry
}

type entry struct {
	cfg    Config
	entity capability.Entity
}

func NewCatalog() *Catalog {
	return &Catalog{configs: map[string]entry{}}
}

func (c *Catalog) Add(e capability.Entity, cfg Config) *Catalog {
	if cfg.Name == "" {
		cfg.Name = string(e)
	}

	if cfg.Schema == "" {
		cfg.Schema = string(e)
	}

	c.configs[cfg.Name] = entry{cfg: cfg, entity: e}
	return c
}

func (c *Catalog) Lookup(name string) (Config, capability.Capability, bool) {
	e, ok := c.configs[name]
	if !ok {
		return Config{}, "", false
	}

	return e.cfg, capability.For(capability.List, e.entity), true
}

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.configs))
	for name := range c.configs {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

var visibleOnly = apiv1.Condition{"visible": true}

func named(idField string) Config {
	return Config{
		SearchFields: []string{"name"},
		LabelField:   "name",
		IDField:      idField,
		Condition:    visibleOnly,
	}
}

func DefaultCatalog() *Catalog {
	customer := named("customer")
	customer.SearchFields = []string{"name", "phoneNumber", "email"}

	supplier := named("supplier")
	supplier.SearchFields = []string{"name", "phoneNumber"}

	product := named("product")
	product.SearchFields = []string{"name", "barcode"}
	product.Dependents = map[string]string{
		"sellingPrice": "sellingPrice",
		"buyingPrice":  "buyingPrice",
		"stock":        "stock",
		"barcode":      "barcode",
	}

	account := named("account")
	account.Dependents = map[string]string{"accountBalance": "balance"}

	secondAccount := named("secondAccount")
	secondAccount.Name = "second_account"
	secondAccount.Schema = "account"

	user := Config{
		SearchFields: []string{"username", "firstName", "lastName"},
		LabelField:   "username",
		IDField:      "user",
		Condition:    visibleOnly,
	}

	truck := Config{
		SearchFields: []string{"plateNumber"},
		LabelField:   "plateNumber",
		IDField:      "truck",
		Condition:    visibleOnly,
		Dependents:   map[string]string{"driver": "driver._id"},
	}

	tour := named("tour")
	tour.Dependents = map[string]string{"price": "price"}

	hotel := named("hotel")
	hotel.Dependents = map[string]string{"pricePerNight": "pricePerNight"}

	service := named("service")
	service.Dependents = map[string]string{"price": "price"}

	return NewCatalog().
		Add(capability.Customer, customer).
		Add(capability.Supplier, supplier).
		Add(capability.Product, product).
		Add(capability.Category, named("category")).
		Add(capability.Account, account).
		Add(capability.Account, secondAccount).
		Add(capability.ExpenseType, named("expenseType")).
		Add(capability.Store, named("store")).
		Add(capability.Branch, named("branch")).
		Add(capability.Role, named("role")).
		Add(capability.User, user).
		Add(capability.Truck, truck).
		Add(capability.Driver, named("driver")).
		Add(capability.Route, Config{SearchFields: []string{"from", "to"}, LabelField: "from", IDField: "route", Condition: visibleOnly}).
		Add(capability.Service, service).
		Add(capability.Tour, tour).
		Add(capability.Tourist, named("tourist")).
		Add(capability.Hotel, hotel)
}
