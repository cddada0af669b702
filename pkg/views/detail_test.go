package views

import (
	"context"
	"errors"
	"testing"

	"github.com/dukahub/dukaweb/pkg/apiv1"
	"github.com/dukahub/dukaweb/pkg/capability"
	"github.com/dukahub/dukaweb/pkg/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerPage() Page {
	page, _ := DefaultRegistry().Lookup(capability.Customer)
	return page
}

func setupDetail(page Page, api apiv1.API, caps ...capability.Capability) (*Detail, *NavRecorder, *notify.UserNotifier) {
	nav := &NavRecorder{}
	notifier := new(notify.UserNotifier)
	d := NewDetail(page, Deps{
		API:          api,
		Capabilities: capability.NewSet(caps...),
		Navigator:    nav,
		Notifier:     notifier,
	})

	return d, nav, notifier
}

func TestDeniedAlwaysGoesToNotFound(t *testing.T) {
	tests := []struct {
		name string
		nav  NavState
	}{
		{name: "with id", nav: NavState{ID: "c1"}},
		{name: "without id", nav: NavState{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			api := apiv1.NewMockAPI().Seed("customer", apiv1.Record{"_id": "c1", "name": "Asha Juma"})
			d, nav, notifier := setupDetail(customerPage(), api, capability.For(capability.Edit, capability.Customer))

			require.Equal(t, Denied, d.Mount(context.Background(), test.nav))
			assert.Equal(t, NotFoundRoute, nav.Target)
			assert.False(t, nav.WentBack)
			require.Len(t, notifier.Sent(), 1)
			assert.Equal(t, notify.Warning, notifier.Sent()[0].Kind)
			assert.NotEmpty(t, notifier.Sent()[0].Message)
			assert.Equal(t, 0, api.Calls("read"))
			assert.Nil(t, d.State())
		})
	}
}

func TestMissingIDGoesBackWithoutFetching(t *testing.T) {
	api := apiv1.NewMockAPI()
	d, nav, notifier := setupDetail(customerPage(), api, capability.For(capability.View, capability.Customer))

	require.Equal(t, WentBack, d.Mount(context.Background(), NavState{ID: "  "}))
	assert.True(t, nav.WentBack)
	assert.Empty(t, nav.Target)
	assert.Empty(t, notifier.Sent())
	assert.Equal(t, 0, api.Calls("read"))
}

func TestMountLoadsRecordOnce(t *testing.T) {
	api := apiv1.NewMockAPI().Seed("customer", apiv1.Record{
		"_id":         "c1",
		"name":        "Asha Juma",
		"phoneNumber": "0712000000",
		"createdBy":   map[string]any{"_id": "u1", "username": "mwenye"},
		"createdAt":   "2024-03-01T09:30:00Z",
	})
	d, nav, notifier := setupDetail(customerPage(), api, capability.For(capability.View, capability.Customer))

	require.Equal(t, Loaded, d.Mount(context.Background(), NavState{ID: "c1"}))
	assert.Equal(t, 1, api.Calls("read"))
	assert.Empty(t, nav.Target)
	assert.Empty(t, notifier.Sent())

	state := d.State()
	require.NotNil(t, state)
	assert.Equal(t, "c1", state.ID)
	assert.Equal(t, "customers", state.Collection)

	view, ok := d.Render()
	require.True(t, ok)
	assert.Equal(t, Profile{Initials: "AJ", Name: "Asha Juma"}, view.Profile)
	assert.Empty(t, view.Menu)

	values := map[string]string{}
	for _, row := range view.Details {
		values[row.Label] = row.Value
	}
	assert.Equal(t, "0712000000", values["phone number"])
	assert.Equal(t, "-", values["email"])
	assert.Equal(t, "mwenye", values["created by"])
	assert.Equal(t, "2024-03-01 09:30", values["created at"])
}

func TestReadFailureNotifies(t *testing.T) {
	api := apiv1.NewMockAPI().Err(&apiv1.Error{Status: 500, Message: "database unavailable"})
	d, _, notifier := setupDetail(customerPage(), api, capability.For(capability.View, capability.Customer))

	require.Equal(t, Failed, d.Mount(context.Background(), NavState{ID: "c1"}))
	require.Len(t, notifier.Sent(), 1)
	assert.Equal(t, notify.Error, notifier.Sent()[0].Kind)
	assert.Equal(t, "database unavailable", notifier.Sent()[0].Message)
	assert.Equal(t, 1, api.Calls("read"))
	assert.Nil(t, d.State())

	_, ok := d.Render()
	assert.False(t, ok)
}

func TestNonBackendErrorUsesErrorText(t *testing.T) {
	api := apiv1.NewMockAPI().Err(errors.New("connection refused"))
	d, _, notifier := setupDetail(customerPage(), api, capability.For(capability.View, capability.Customer))

	require.Equal(t, Failed, d.Mount(context.Background(), NavState{ID: "c1"}))
	require.Len(t, notifier.Sent(), 1)
	assert.Equal(t, "connection refused", notifier.Sent()[0].Message)
}

func TestCancelledMountIsAbandoned(t *testing.T) {
	api := apiv1.NewMockAPI().Seed("customer", apiv1.Record{"_id": "c1", "name": "Asha"})
	d, _, notifier := setupDetail(customerPage(), api, capability.For(capability.View, capability.Customer))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, Abandoned, d.Mount(ctx, NavState{ID: "c1"}))
	assert.Nil(t, d.State())
	assert.Empty(t, notifier.Sent())
}

// slowAPI holds Read until release is closed.
type slowAPI struct {
	*apiv1.MockAPI
	started chan struct{}
	release chan struct{}
}

func newSlowAPI(api *apiv1.MockAPI) *slowAPI {
	return &slowAPI{MockAPI: api, started: make(chan struct{}), release: make(chan struct{})}
}

func (a *slowAPI) Read(ctx context.Context, q apiv1.Query) (apiv1.Record, error) {
	close(a.started)
	<-a.release
	return a.MockAPI.Read(ctx, q)
}

func TestUnmountDuringReadIsAbandoned(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "read succeeds late"},
		{name: "read fails late", err: errors.New("connection refused")},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mock := apiv1.NewMockAPI().Seed("customer", apiv1.Record{"_id": "c1", "name": "Asha"})
			if test.err != nil {
				mock.SetError(test.err)
			}
			api := newSlowAPI(mock)
			d, _, notifier := setupDetail(customerPage(), api, capability.For(capability.View, capability.Customer))

			outcome := make(chan Outcome, 1)
			go func() { outcome <- d.Mount(context.Background(), NavState{ID: "c1"}) }()

			<-api.started
			d.Unmount()
			close(api.release)

			assert.Equal(t, Abandoned, <-outcome)
			assert.Nil(t, d.State())
			assert.Empty(t, notifier.Sent())
			_, ok := d.Render()
			assert.False(t, ok)
		})
	}
}

func TestMenuKeepsDeclaredOrder(t *testing.T) {
	record := apiv1.Record{"_id": "c1", "name": "Asha Juma"}
	all := []capability.Capability{
		capability.For(capability.View, capability.Customer),
		capability.For(capability.Edit, capability.Customer),
		capability.For(capability.Delete, capability.Customer),
		capability.For(capability.Restore, capability.Customer),
		capability.For(capability.List, capability.Sale),
		capability.For(capability.List, capability.Debt),
		capability.For(capability.List, capability.Payment),
		capability.For(capability.List, capability.Invoice),
	}

	d, _, _ := setupDetail(customerPage(), apiv1.NewMockAPI().Seed("customer", record), all...)
	require.Equal(t, Loaded, d.Mount(context.Background(), NavState{ID: "c1"}))
	view, _ := d.Render()

	var labels []string
	for _, item := range view.Menu {
		labels = append(labels, item.Label)
	}
	assert.Equal(t, []string{"edit", "delete", "sale", "debt", "payment", "invoice"}, labels)
	assert.Equal(t, "/customer/edit?id=c1", view.Menu[0].Route)
	assert.Equal(t, DeleteAction, view.Menu[1].Kind)
	assert.Equal(t, "/sale/list?customer=c1", view.Menu[2].Route)

	// Dropping capabilities hides entries without reordering the rest.
	partial := []capability.Capability{all[0], all[2], all[6]}
	d, _, _ = setupDetail(customerPage(), apiv1.NewMockAPI().Seed("customer", record), partial...)
	require.Equal(t, Loaded, d.Mount(context.Background(), NavState{ID: "c1"}))
	view, _ = d.Render()

	labels = nil
	for _, item := range view.Menu {
		labels = append(labels, item.Label)
	}
	assert.Equal(t, []string{"delete", "payment"}, labels)
}

func TestArchivedRecordOffersRestore(t *testing.T) {
	record := apiv1.Record{"_id": "c1", "name": "Asha", "visible": false}
	d, _, _ := setupDetail(customerPage(), apiv1.NewMockAPI().Seed("customer", record),
		capability.For(capability.View, capability.Customer),
		capability.For(capability.Edit, capability.Customer),
		capability.For(capability.Delete, capability.Customer),
		capability.For(capability.Restore, capability.Customer),
	)

	require.Equal(t, Loaded, d.Mount(context.Background(), NavState{ID: "c1"}))
	view, _ := d.Render()
	require.Len(t, view.Menu, 1)
	assert.Equal(t, RestoreAction, view.Menu[0].Kind)
	assert.Equal(t, "/customer/restore?id=c1", view.Menu[0].Route)
}

func TestUnmountClearsState(t *testing.T) {
	api := apiv1.NewMockAPI().Seed("customer", apiv1.Record{"_id": "c1", "name": "Asha"})
	d, _, _ := setupDetail(customerPage(), api, capability.For(capability.View, capability.Customer))

	require.Equal(t, Loaded, d.Mount(context.Background(), NavState{ID: "c1"}))
	require.NotNil(t, d.State())

	d.Unmount()
	assert.Nil(t, d.State())
	_, ok := d.Render()
	assert.False(t, ok)
}

func TestRenderTranslatesLabels(t *testing.T) {
	api := apiv1.NewMockAPI().Seed("customer", apiv1.Record{"_id": "c1", "name": "Asha"})
	d := NewDetail(customerPage(), Deps{
		API:          api,
		Capabilities: capability.NewSet(capability.For(capability.View, capability.Customer)),
		Navigator:    &NavRecorder{},
		Notifier:     new(notify.UserNotifier),
		Translate: func(s string) string {
			if s == "phone number" {
				return "Namba ya simu"
			}
			return s
		},
	})

	require.Equal(t, Loaded, d.Mount(context.Background(), NavState{ID: "c1"}))
	view, _ := d.Render()
	assert.Equal(t, "Namba ya simu", view.Details[0].Label)
}

func TestProfileFallsBackToID(t *testing.T) {
	api := apiv1.NewMockAPI().Seed("customer", apiv1.Record{"_id": "c1"})
	d, _, _ := setupDetail(customerPage(), api, capability.For(capability.View, capability.Customer))

	require.Equal(t, Loaded, d.Mount(context.Background(), NavState{ID: "c1"}))
	view, _ := d.Render()
	assert.Equal(t, Profile{Initials: "C", Name: "c1"}, view.Profile)
}
