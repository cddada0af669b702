// Package capability replaces the free-form permission strings ("view_customer") of the role
// table with a closed set of Action x Entity values.
package capability

import (
	"fmt"
	"sort"
	"strings"
)

type Action string

const (
	View    Action = "view"
	List    Action = "list"
	Create  Action = "create"
	Edit    Action = "edit"
	Delete  Action = "delete"
	Restore Action = "restore"
)

var actions = []Action{View, List, Create, Edit, Delete, Restore}

type Entity string

const (
	Account     Entity = "account"
	Booking     Entity = "booking"
	Branch      Entity = "branch"
	Category    Entity = "category"
	Customer    Entity = "customer"
	Debt        Entity = "debt"
	Device      Entity = "device"
	Driver      Entity = "driver"
	Expense     Entity = "expense"
	ExpenseType Entity = "expense_type"
	Hotel       Entity = "hotel"
	Invoice     Entity = "invoice"
	Order       Entity = "order"
	Payment     Entity = "payment"
	Product     Entity = "product"
	Purchase    Entity = "purchase"
	Quotation   Entity = "quotation"
	Role        Entity = "role"
	Route       Entity = "route"
	Sale        Entity = "sale"
	Service     Entity = "service"
	Stock       Entity = "stock"
	Store       Entity = "store"
	Supplier    Entity = "supplier"
	Tour        Entity = "tour"
	Tourist     Entity = "tourist"
	Transaction Entity = "transaction"
	Trip        Entity = "trip"
	Truck       Entity = "truck"
	User        Entity = "user"
)

var entities = []Entity{
	Account, Booking, Branch, Category, Customer, Debt, Device, Driver, Expense, ExpenseType,
	Hotel, Invoice, Order, Payment, Product, Purchase, Quotation, Role, Route, Sale, Service,
	Stock, Store, Supplier, Tour, Tourist, Transaction, Trip, Truck, User,
}

// Capability is a single permission, written "<action>_<entity>" in the role table.
type Capability string

func For(a Action, e Entity) Capability {
	return Capability(string(a) + "_" + string(e))
}

func (c Capability) String() string {
	return string(c)
}

// Parts splits c back into its action and entity.
func (c Capability) Parts() (Action, Entity) {
	action, entity, _ := strings.Cut(string(c), "_")
	return Action(action), Entity(entity)
}

var known = func() map[Capability]struct{} {
	m := make(map[Capability]struct{}, len(actions)*len(entities))
	for _, a := range actions {
		for _, e := range entities {
			m[For(a, e)] = struct{}{}
		}
	}
	return m
}()

// Parse maps a permission string from the role table onto a known Capability.
func Parse(s string) (Capability, error) {
	c := Capability(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := known[c]; !ok {
		return "", fmt.Errorf("unknown capability %q", s)
	}

	return c, nil
}

// ParseEntity validates a schema name used in a URL.
func ParseEntity(s string) (Entity, bool) {
	e := Entity(strings.ToLower(s))
	for _, candidate := range entities {
		if candidate == e {
			return e, true
		}
	}

	return "", false
}

// Entities lists every entity in name order.
func Entities() []Entity {
	out := make([]Entity, len(entities))
	copy(out, entities)
	return out
}

// All returns every known capability in sorted order.
func All() []Capability {
	all := make([]Capability, 0, len(known))
	for c := range known {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })

	return all
}
