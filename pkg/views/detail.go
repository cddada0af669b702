package views

import (
	"context"
	"strings"
	"sync"

	"github.com/dukahub/dukaweb/pkg/apiv1"
	"github.com/dukahub/dukaweb/pkg/capability"
	"github.com/dukahub/dukaweb/pkg/clog"
	"github.com/dukahub/dukaweb/pkg/notify"
)

const NotFoundRoute = "/not-found"

type Navigator interface {
	NotFound()
	Back()
}

type Notifier interface {
	Notify(kind notify.Kind, message string)
}

type Capabilities interface {
	Can(c capability.Capability) bool
}

// NavState is the payload the previous screen handed over when navigating here.
type NavState struct {
	ID string
}

type Outcome string

const (
	Loaded    Outcome = "loaded"
	Denied    Outcome = "denied"
	WentBack  Outcome = "back"
	Failed    Outcome = "failed"
	Abandoned Outcome = "abandoned"
)

// State is owned by one Detail screen and discarded on Unmount.
type State struct {
	Record     apiv1.Record
	ID         string
	Collection string
	Related    map[string]string
}

type Deps struct {
	API          apiv1.API
	Capabilities Capabilities
	Navigator    Navigator
	Notifier     Notifier
	// Translate defaults to returning words unchanged.
	Translate func(string) string
}

type Detail struct {
	page    Page
	deps    Deps
	mu      sync.Mutex
	mounted bool
	state   *State
}

func NewDetail(page Page, deps Deps) *Detail {
	if deps.Translate == nil {
		deps.Translate = func(s string) string { return s }
	}

	return &Detail{page: page, deps: deps}
}

// Mount runs the screen's entry sequence: capability check, navigation payload check, then a
// single read. Errors become notifications; nothing is retried.
func (d *Detail) Mount(ctx context.Context, nav NavState) Outcome {
	log := clog.UsingCtx("views").WithField("entity", d.page.Entity)

	if !d.deps.Capabilities.Can(capability.For(capability.View, d.page.Entity)) {
		d.deps.Navigator.NotFound()
		d.deps.Notifier.Notify(notify.Warning, d.deps.Translate("no access"))
		log.Debug("view denied")
		return Denied
	}

	id := strings.TrimSpace(nav.ID)
	if id == "" {
		d.deps.Navigator.Back()
		return WentBack
	}

	d.mu.Lock()
	d.mounted = true
	d.mu.Unlock()

	record, err := d.deps.API.Read(ctx, apiv1.ByID(d.page.schema(), id))

	d.mu.Lock()
	defer d.mu.Unlock()

	// Unmounted while the read was in flight: drop the result.
	if !d.mounted || ctx.Err() != nil {
		return Abandoned
	}

	if err != nil {
		log.WithField("id", id).Warnf("read failed: %s", err)
		d.deps.Notifier.Notify(notify.Error, apiv1.UserMessage(err))
		return Failed
	}

	related := make(map[string]string, len(d.page.Related))
	for key, path := range d.page.Related {
		if v, ok := record.Lookup(path); ok {
			related[key] = apiv1.RefID(v)
		}
	}

	d.state = &State{
		Record:     record,
		ID:         record.ID(),
		Collection: d.page.collection(),
		Related:    related,
	}

	if d.state.ID == "" {
		d.state.ID = id
	}

	return Loaded
}

func (d *Detail) Unmount() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.mounted = false
	d.state = nil
}

// State returns nil until a record has loaded.
func (d *Detail) State() *State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

type Profile struct {
	Initials string `json:"initials"`
	Name     string `json:"name"`
}

type MenuItem struct {
	Label string     `json:"label"`
	Route string     `json:"route"`
	Kind  ActionKind `json:"kind"`
}

type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type View struct {
	Entity     string            `json:"entity"`
	Title      string            `json:"title"`
	ID         string            `json:"id"`
	Collection string            `json:"collection"`
	Related    map[string]string `json:"related,omitempty"`
	Profile    Profile           `json:"profile"`
	Menu       []MenuItem        `json:"menu"`
	Details    []Row             `json:"details"`
}

// Render builds the view model. ok is false when nothing is loaded.
func (d *Detail) Render() (view View, ok bool) {
	state := d.State()
	if state == nil {
		return View{}, false
	}

	tr := d.deps.Translate
	ids := map[string]string{"id": state.ID}
	for k, v := range state.Related {
		ids[k] = v
	}

	view = View{
		Entity:     string(d.page.Entity),
		Title:      tr(string(d.page.Entity)),
		ID:         state.ID,
		Collection: state.Collection,
		Related:    state.Related,
		Profile:    d.profile(state),
		Menu:       []MenuItem{},
		Details:    make([]Row, 0, len(d.page.Fields)),
	}

	for _, a := range d.page.Actions {
		if !d.deps.Capabilities.Can(a.Capability) {
			continue
		}

		if a.When != nil && !a.When(state.Record) {
			continue
		}

		view.Menu = append(view.Menu, MenuItem{
			Label: tr(a.Label),
			Route: expandRoute(a.Route, ids),
			Kind:  a.Kind,
		})
	}

	for _, f := range d.page.Fields {
		view.Details = append(view.Details, Row{
			Label: tr(f.Label),
			Value: renderField(f, state.Record, tr),
		})
	}

	return view, true
}

func (d *Detail) profile(state *State) Profile {
	var parts []string
	for _, path := range d.page.NameFields {
		if s := state.Record.String(path); s != "" {
			parts = append(parts, s)
		}
	}

	name := strings.Join(parts, " ")
	if name == "" {
		name = state.ID
	}

	return Profile{Initials: Initials(name), Name: name}
}

func renderField(f Field, r apiv1.Record, tr func(string) string) string {
	if f.Compute != nil {
		return f.Compute(r, tr)
	}

	format := f.Format
	if format == nil {
		format = Text
	}

	v, _ := r.Lookup(f.Path)
	return format(v, tr)
}

// NavRecorder is a Navigator that remembers where it was told to go. It is what the HTTP layer
// hands to a Detail, turning navigation into a redirect in the response.
type NavRecorder struct {
	Target   string
	WentBack bool
}

func (n *NavRecorder) NotFound() {
	n.Target = NotFoundRoute
}

func (n *NavRecorder) Back() {
	n.WentBack = true
}
