package views

import (
	"context"
	"strings"
	"testing"

	"github.com/dukahub/dukaweb/pkg/apiv1"
	"github.com/dukahub/dukaweb/pkg/capability"
	"github.com/dukahub/dukaweb/pkg/translate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryCoversEveryEntity(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, capability.Entities(), r.Entities())

	for _, e := range r.Entities() {
		page, ok := r.Lookup(e)
		require.True(t, ok, e)
		assert.NotEmpty(t, page.NameFields, e)
		assert.NotEmpty(t, page.Fields, e)

		for _, a := range page.Actions {
			_, err := capability.Parse(a.Capability.String())
			assert.NoError(t, err, "%s: %s", e, a.Capability)
		}
	}
}

func TestBasePathUsesSlug(t *testing.T) {
	page, ok := DefaultRegistry().Lookup(capability.ExpenseType)
	require.True(t, ok)
	assert.Equal(t, "/expense-type", page.BasePath())
	assert.Equal(t, "expense_type", page.schema())
}

func TestDebtDeleteNeedsOnlyDeleteDebt(t *testing.T) {
	page, _ := DefaultRegistry().Lookup(capability.Debt)
	api := apiv1.NewMockAPI().Seed("debt", apiv1.Record{
		"_id":         "d1",
		"customer":    map[string]any{"_id": "c1", "name": "Asha"},
		"sale":        "s1",
		"totalAmount": 1000.0,
		"paidAmount":  400.0,
	})

	d, _, _ := setupDetail(page, api,
		capability.For(capability.View, capability.Debt),
		capability.For(capability.Delete, capability.Debt),
		capability.For(capability.View, capability.Sale),
		capability.For(capability.View, capability.Purchase),
	)

	require.Equal(t, Loaded, d.Mount(context.Background(), NavState{ID: "d1"}))
	view, _ := d.Render()

	var labels []string
	for _, item := range view.Menu {
		labels = append(labels, item.Label)
	}
	// No purchase link: the debt came from a sale.
	assert.Equal(t, []string{"delete", "sale"}, labels)
	assert.Equal(t, "/sale/view?id=s1", view.Menu[1].Route)
	assert.Equal(t, map[string]string{"customer": "c1", "sale": "s1"}, view.Related)

	var balance string
	for _, row := range view.Details {
		if row.Label == "balance" {
			balance = row.Value
		}
	}
	assert.Equal(t, "600.00", balance)
}

func TestProductStockLevel(t *testing.T) {
	page, _ := DefaultRegistry().Lookup(capability.Product)
	api := apiv1.NewMockAPI().Seed("product", apiv1.Record{
		"_id":               "p1",
		"name":              "Sukari",
		"stock":             3.0,
		"reorderStockLevel": 5.0,
		"buyingPrice":       2000.0,
		"sellingPrice":      2500.0,
		"visible":           true,
	})

	d, _, _ := setupDetail(page, api, capability.For(capability.View, capability.Product))
	require.Equal(t, Loaded, d.Mount(context.Background(), NavState{ID: "p1"}))
	view, _ := d.Render()

	values := map[string]string{}
	for _, row := range view.Details {
		values[row.Label] = row.Value
	}
	assert.Equal(t, "low stock", values["status"])
	assert.Equal(t, "500.00", values["margin"])
	assert.Equal(t, "2,500.00", values["selling price"])
	assert.Equal(t, "yes", values["visible"])
}

func TestRelatedViewLinksNeedTheForeignKey(t *testing.T) {
	page, _ := DefaultRegistry().Lookup(capability.Sale)
	api := apiv1.NewMockAPI().Seed("sale",
		apiv1.Record{"_id": "s1", "product": map[string]any{"_id": "p1", "name": "Sukari"}},
		apiv1.Record{"_id": "s2", "product": "p1", "customer": "c1"},
	)

	menuRoutes := func(id string) map[string]string {
		d, _, _ := setupDetail(page, api,
			capability.For(capability.View, capability.Sale),
			capability.For(capability.View, capability.Customer),
		)
		require.Equal(t, Loaded, d.Mount(context.Background(), NavState{ID: id}))
		view, _ := d.Render()

		routes := map[string]string{}
		for _, item := range view.Menu {
			assert.NotContains(t, item.Route, "{", item.Label)
			routes[item.Label] = item.Route
		}
		return routes
	}

	assert.NotContains(t, menuRoutes("s1"), "customer")
	assert.Equal(t, "/customer/view?id=c1", menuRoutes("s2")["customer"])
}

func TestEveryPlaceholderActionIsGuarded(t *testing.T) {
	r := DefaultRegistry()
	for _, e := range r.Entities() {
		page, _ := r.Lookup(e)
		for _, a := range page.Actions {
			route := strings.ReplaceAll(a.Route, "{id}", "")
			if strings.Contains(route, "{") {
				assert.NotNil(t, a.When, "%s: %s", e, a.Label)
			}
		}
	}
}

func TestDefaultVocabularyCoversPageLabels(t *testing.T) {
	known := map[string]bool{}
	for _, w := range translate.DefaultVocabulary().English {
		known[w] = true
	}

	r := DefaultRegistry()
	for _, e := range r.Entities() {
		page, _ := r.Lookup(e)
		assert.True(t, known[strings.ReplaceAll(string(e), "_", " ")], e)

		for _, f := range page.Fields {
			assert.True(t, known[f.Label], "%s: %s", e, f.Label)
		}

		for _, a := range page.Actions {
			assert.True(t, known[strings.ReplaceAll(a.Label, "_", " ")], "%s: %s", e, a.Label)
		}
	}
}
