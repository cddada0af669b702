package views

import (
	"sort"

	"github.com/dukahub/dukaweb/pkg/apiv1"
	"github.com/dukahub/dukaweb/pkg/capability"
	"github.com/dukahub/dukaweb/pkg/entity"
)

// Registry holds one Page per entity.
type Registry struct {
	pages map[capability.Entity]Page
}

func NewRegistry(pages ...Page) *Registry {
	r := &Registry{pages: make(map[capability.Entity]Page, len(pages))}
	for _, p := range pages {
		r.pages[p.Entity] = p
	}

	return r
}

func (r *Registry) Lookup(e capability.Entity) (Page, bool) {
	p, ok := r.pages[e]
	return p, ok
}

func (r *Registry) Entities() []capability.Entity {
	entities := make([]capability.Entity, 0, len(r.pages))
	for e := range r.pages {
		entities = append(entities, e)
	}
	sort.Slice(entities, func(i, j int) bool { return entities[i] < entities[j] })

	return entities
}

func notArchived(r apiv1.Record) bool {
	return !entity.Archived(r)
}

// standardActions is edit, delete and restore followed by links to lists of related records,
// e.g. a customer's sales.
func standardActions(e capability.Entity, relatedLists ...capability.Entity) []Action {
	base := basePath(e)

	actions := []Action{
		{Label: "edit", Capability: capability.For(capability.Edit, e), Kind: LinkAction, Route: base + "/edit?id={id}", When: notArchived},
		{Label: "delete", Capability: capability.For(capability.Delete, e), Kind: DeleteAction, Route: base + "/delete?id={id}", When: notArchived},
		{Label: "restore", Capability: capability.For(capability.Restore, e), Kind: RestoreAction, Route: base + "/restore?id={id}", When: entity.Archived},
	}

	for _, related := range relatedLists {
		actions = append(actions, Action{
			Label:      string(related),
			Capability: capability.For(capability.List, related),
			Kind:       LinkAction,
			Route:      basePath(related) + "/list?" + string(e) + "={id}",
		})
	}

	return actions
}

// relatedView links to the detail page of the record a foreign key points at. The key is named
// after the entity, both in the record and in the page's Related map, and records without it
// hide the link.
func relatedView(e capability.Entity) Action {
	key := string(e)
	return Action{
		Label:      key,
		Capability: capability.For(capability.View, e),
		Kind:       LinkAction,
		Route:      basePath(e) + "/view?id={" + key + "}",
		When:       hasRef(key),
	}
}

func audit(fields ...Field) []Field {
	return append(fields,
		Field{Label: "created by", Path: "createdBy", Format: Ref},
		Field{Label: "created at", Path: "createdAt", Format: Date},
	)
}

func debtBalance(r apiv1.Record, tr func(string) string) string {
	d, err := entity.Decode[entity.Debt](r)
	if err != nil {
		return "-"
	}

	return Money(d.Balance(), tr)
}

func stockLevel(r apiv1.Record, tr func(string) string) string {
	p, err := entity.Decode[entity.Product](r)
	if err != nil {
		return "-"
	}

	return Translated(string(p.Level()), tr)
}

func productMargin(r apiv1.Record, tr func(string) string) string {
	p, err := entity.Decode[entity.Product](r)
	if err != nil {
		return "-"
	}

	return Money(p.Margin(), tr)
}

func secondAccountImpact(r apiv1.Record, tr func(string) string) string {
	t, err := entity.Decode[entity.Transaction](r)
	if err != nil {
		return "-"
	}

	return Translated(t.SecondAccountImpact(), tr)
}

// DefaultRegistry covers every entity of the business application.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Page{
			Entity:     capability.Customer,
			NameFields: []string{"name"},
			Actions:    standardActions(capability.Customer, capability.Sale, capability.Debt, capability.Payment, capability.Invoice),
			Fields: audit(
				Field{Label: "phone number", Path: "phoneNumber"},
				Field{Label: "email", Path: "email"},
				Field{Label: "address", Path: "address"},
			),
		},
		Page{
			Entity:     capability.Supplier,
			NameFields: []string{"name"},
			Actions:    standardActions(capability.Supplier, capability.Purchase, capability.Debt),
			Fields: audit(
				Field{Label: "phone number", Path: "phoneNumber"},
				Field{Label: "email", Path: "email"},
				Field{Label: "address", Path: "address"},
			),
		},
		Page{
			Entity:     capability.Product,
			NameFields: []string{"name"},
			Actions:    standardActions(capability.Product, capability.Stock, capability.Sale, capability.Purchase),
			Fields: audit(
				Field{Label: "barcode", Path: "barcode"},
				Field{Label: "category", Path: "category", Format: Ref},
				Field{Label: "buying price", Path: "buyingPrice", Format: Money},
				Field{Label: "selling price", Path: "sellingPrice", Format: Money},
				Field{Label: "margin", Compute: productMargin},
				Field{Label: "stock", Path: "stock", Format: Number},
				Field{Label: "status", Compute: stockLevel},
				Field{Label: "visible", Path: "visible", Format: YesNo},
			),
		},
		Page{
			Entity:     capability.Category,
			NameFields: []string{"name"},
			Collection: "categories",
			Actions:    standardActions(capability.Category, capability.Product),
			Fields:     audit(Field{Label: "description", Path: "description"}),
		},
		Page{
			Entity:     capability.Store,
			NameFields: []string{"name"},
			Actions:    standardActions(capability.Store, capability.Product, capability.User),
			Fields: audit(
				Field{Label: "phone number", Path: "phoneNumber"},
				Field{Label: "address", Path: "address"},
				Field{Label: "branch", Path: "branch", Format: Ref},
			),
		},
		Page{
			Entity:     capability.Stock,
			NameFields: []string{"product.name"},
			Collection: "stocks",
			Related:    map[string]string{"product": "product"},
			Actions: append(standardActions(capability.Stock),
				relatedView(capability.Product),
			),
			Fields: audit(
				Field{Label: "product", Path: "product", Format: Ref},
				Field{Label: "quantity", Path: "quantity", Format: Number},
				Field{Label: "description", Path: "description"},
			),
		},
		Page{
			Entity:     capability.Sale,
			NameFields: []string{"product.name"},
			Related:    map[string]string{"customer": "customer", "product": "product"},
			Actions: append(standardActions(capability.Sale, capability.Debt, capability.Payment),
				relatedView(capability.Customer),
			),
			Fields: audit(
				Field{Label: "customer", Path: "customer", Format: Ref},
				Field{Label: "product", Path: "product", Format: Ref},
				Field{Label: "quantity", Path: "quantity", Format: Number},
				Field{Label: "price", Path: "sellingPrice", Format: Money},
				Field{Label: "total", Path: "totalAmount", Format: Money},
				Field{Label: "status", Path: "status", Format: Translated},
			),
		},
		Page{
			Entity:     capability.Purchase,
			NameFields: []string{"product.name"},
			Related:    map[string]string{"supplier": "supplier"},
			Actions: append(standardActions(capability.Purchase, capability.Debt),
				relatedView(capability.Supplier),
			),
			Fields: audit(
				Field{Label: "supplier", Path: "supplier", Format: Ref},
				Field{Label: "product", Path: "product", Format: Ref},
				Field{Label: "quantity", Path: "quantity", Format: Number},
				Field{Label: "total", Path: "totalAmount", Format: Money},
			),
		},
		Page{
			Entity:     capability.Order,
			NameFields: []string{"number"},
			Related:    map[string]string{"customer": "customer"},
			Actions:    standardActions(capability.Order, capability.Invoice),
			Fields: audit(
				Field{Label: "customer", Path: "customer", Format: Ref},
				Field{Label: "total", Path: "totalAmount", Format: Money},
				Field{Label: "status", Path: "status", Format: Translated},
			),
		},
		Page{
			Entity:     capability.Quotation,
			NameFields: []string{"number"},
			Actions:    standardActions(capability.Quotation),
			Fields: audit(
				Field{Label: "customer", Path: "customer", Format: Ref},
				Field{Label: "total", Path: "totalAmount", Format: Money},
			),
		},
		Page{
			Entity:     capability.Invoice,
			NameFields: []string{"number"},
			Related:    map[string]string{"customer": "customer"},
			Actions:    standardActions(capability.Invoice, capability.Payment),
			Fields: audit(
				Field{Label: "customer", Path: "customer", Format: Ref},
				Field{Label: "total", Path: "totalAmount", Format: Money},
				Field{Label: "paid", Path: "paidAmount", Format: Money},
				Field{Label: "date", Path: "dueDate", Format: Date},
			),
		},
		Page{
			Entity:     capability.Payment,
			NameFields: []string{"reference"},
			Actions:    standardActions(capability.Payment),
			Fields: audit(
				Field{Label: "amount", Path: "amount", Format: Money},
				Field{Label: "account", Path: "account", Format: Ref},
				Field{Label: "customer", Path: "customer", Format: Ref},
			),
		},
		Page{
			// Delete is guarded by delete_debt alone, whichever document the debt came from.
			Entity:     capability.Debt,
			NameFields: []string{"customer.name"},
			Related:    map[string]string{"customer": "customer", "supplier": "supplier", "sale": "sale", "purchase": "purchase"},
			Actions: append(standardActions(capability.Debt, capability.Payment),
				relatedView(capability.Sale),
				relatedView(capability.Purchase),
			),
			Fields: audit(
				Field{Label: "customer", Path: "customer", Format: Ref},
				Field{Label: "supplier", Path: "supplier", Format: Ref},
				Field{Label: "total", Path: "totalAmount", Format: Money},
				Field{Label: "paid", Path: "paidAmount", Format: Money},
				Field{Label: "balance", Compute: debtBalance},
			),
		},
		Page{
			Entity:     capability.Expense,
			NameFields: []string{"name"},
			Actions:    standardActions(capability.Expense),
			Fields: audit(
				Field{Label: "expense type", Path: "expenseType", Format: Ref},
				Field{Label: "amount", Path: "amount", Format: Money},
				Field{Label: "account", Path: "account", Format: Ref},
				Field{Label: "date", Path: "date", Format: Date},
			),
		},
		Page{
			Entity:     capability.ExpenseType,
			Schema:     "expense_type",
			NameFields: []string{"name"},
			Actions:    standardActions(capability.ExpenseType, capability.Expense),
			Fields:     audit(Field{Label: "description", Path: "description"}),
		},
		Page{
			Entity:     capability.Account,
			NameFields: []string{"name"},
			Actions:    standardActions(capability.Account, capability.Transaction, capability.Expense, capability.Payment),
			Fields: audit(
				Field{Label: "balance", Path: "balance", Format: Money},
				Field{Label: "description", Path: "description"},
			),
		},
		Page{
			Entity:     capability.Transaction,
			NameFields: []string{"reference"},
			Related:    map[string]string{"account": "account", "second_account": "secondAccount"},
			Actions: append(standardActions(capability.Transaction),
				relatedView(capability.Account),
			),
			Fields: audit(
				Field{Label: "account", Path: "account", Format: Ref},
				Field{Label: "amount", Path: "amount", Format: Money},
				Field{Label: "status", Path: "impact", Format: Translated},
				Field{Label: "second account", Path: "secondAccount", Format: Ref},
				Field{Label: "second account impact", Compute: secondAccountImpact},
			),
		},
		Page{
			Entity:     capability.Device,
			NameFields: []string{"name"},
			Actions:    standardActions(capability.Device),
			Fields: audit(
				Field{Label: "imei", Path: "imei"},
				Field{Label: "user", Path: "user", Format: Ref},
				Field{Label: "status", Path: "status", Format: Translated},
			),
		},
		Page{
			Entity:     capability.User,
			NameFields: []string{"firstName", "lastName"},
			Related:    map[string]string{"role": "role"},
			Actions: append(standardActions(capability.User, capability.Device),
				relatedView(capability.Role),
			),
			Fields: audit(
				Field{Label: "username", Path: "username"},
				Field{Label: "phone number", Path: "phoneNumber"},
				Field{Label: "email", Path: "email"},
				Field{Label: "role", Path: "role", Format: Ref},
				Field{Label: "branch", Path: "branch", Format: Ref},
			),
		},
		Page{
			Entity:     capability.Role,
			NameFields: []string{"name"},
			Actions:    standardActions(capability.Role, capability.User),
			Fields:     audit(Field{Label: "description", Path: "description"}),
		},
		Page{
			Entity:     capability.Branch,
			NameFields: []string{"name"},
			Collection: "branches",
			Actions:    standardActions(capability.Branch, capability.Store, capability.User),
			Fields: audit(
				Field{Label: "phone number", Path: "phoneNumber"},
				Field{Label: "address", Path: "address"},
			),
		},
		Page{
			Entity:     capability.Service,
			NameFields: []string{"name"},
			Actions:    standardActions(capability.Service, capability.Sale),
			Fields: audit(
				Field{Label: "price", Path: "price", Format: Money},
				Field{Label: "description", Path: "description"},
				Field{Label: "visible", Path: "visible", Format: YesNo},
			),
		},
		Page{
			Entity:     capability.Truck,
			NameFields: []string{"plateNumber"},
			Related:    map[string]string{"driver": "driver"},
			Actions: append(standardActions(capability.Truck, capability.Trip),
				relatedView(capability.Driver),
			),
			Fields: audit(
				Field{Label: "plate number", Path: "plateNumber"},
				Field{Label: "capacity", Path: "capacity", Format: Number},
				Field{Label: "driver", Path: "driver", Format: Ref},
			),
		},
		Page{
			Entity:     capability.Driver,
			NameFields: []string{"name"},
			Actions:    standardActions(capability.Driver, capability.Trip),
			Fields: audit(
				Field{Label: "phone number", Path: "phoneNumber"},
				Field{Label: "licence number", Path: "licenceNumber"},
			),
		},
		Page{
			Entity:     capability.Trip,
			NameFields: []string{"reference"},
			Related:    map[string]string{"truck": "truck", "route": "route"},
			Actions: append(standardActions(capability.Trip, capability.Expense),
				relatedView(capability.Truck),
			),
			Fields: audit(
				Field{Label: "truck", Path: "truck", Format: Ref},
				Field{Label: "route", Path: "route", Format: Ref},
				Field{Label: "amount", Path: "amount", Format: Money},
				Field{Label: "status", Path: "status", Format: Translated},
			),
		},
		Page{
			Entity:     capability.Route,
			NameFields: []string{"from", "to"},
			Actions:    standardActions(capability.Route, capability.Trip),
			Fields: audit(
				Field{Label: "description", Path: "description"},
				Field{Label: "distance", Path: "distance", Format: Number},
			),
		},
		Page{
			Entity:     capability.Booking,
			NameFields: []string{"reference"},
			Related:    map[string]string{"tourist": "tourist", "tour": "tour"},
			Actions: append(standardActions(capability.Booking, capability.Payment),
				relatedView(capability.Tourist),
				relatedView(capability.Tour),
			),
			Fields: audit(
				Field{Label: "tourist", Path: "tourist", Format: Ref},
				Field{Label: "tour", Path: "tour", Format: Ref},
				Field{Label: "hotel", Path: "hotel", Format: Ref},
				Field{Label: "date", Path: "date", Format: Date},
				Field{Label: "total", Path: "totalAmount", Format: Money},
				Field{Label: "paid", Path: "paidAmount", Format: Money},
			),
		},
		Page{
			Entity:     capability.Tour,
			NameFields: []string{"name"},
			Actions:    standardActions(capability.Tour, capability.Booking),
			Fields: audit(
				Field{Label: "price", Path: "price", Format: Money},
				Field{Label: "description", Path: "description"},
			),
		},
		Page{
			Entity:     capability.Tourist,
			NameFields: []string{"name"},
			Actions:    standardActions(capability.Tourist, capability.Booking),
			Fields: audit(
				Field{Label: "phone number", Path: "phoneNumber"},
				Field{Label: "email", Path: "email"},
				Field{Label: "nationality", Path: "nationality"},
			),
		},
		Page{
			Entity:     capability.Hotel,
			NameFields: []string{"name"},
			Actions:    standardActions(capability.Hotel, capability.Booking),
			Fields: audit(
				Field{Label: "phone number", Path: "phoneNumber"},
				Field{Label: "address", Path: "address"},
				Field{Label: "price", Path: "pricePerNight", Format: Money},
			),
		},
	)
}

func hasRef(path string) func(apiv1.Record) bool {
	return func(r apiv1.Record) bool {
		v, ok := r.Lookup(path)
		return ok && apiv1.RefID(v) != ""
	}
}
