// Package views implements the entity detail screen once, driven by per-entity Page definitions.
package views

import (
	"strings"

	"github.com/dukahub/dukaweb/pkg/apiv1"
	"github.com/dukahub/dukaweb/pkg/capability"
	"github.com/gosimple/slug"
)

// Page describes one entity's detail screen.
type Page struct {
	Entity capability.Entity
	// Schema defaults to the entity name.
	Schema string
	// Collection is what list links and shared state call the records, e.g. "customers".
	Collection string
	// NameFields are joined with spaces to build the profile name.
	NameFields []string
	// Related maps a state key to a record path holding a foreign key, e.g. "customer" -> "customer".
	Related map[string]string
	// Actions render in declared order; only their visibility varies.
	Actions []Action
	Fields  []Field
}

func (p Page) schema() string {
	if p.Schema != "" {
		return p.Schema
	}

	return string(p.Entity)
}

func (p Page) collection() string {
	if p.Collection != "" {
		return p.Collection
	}

	return string(p.Entity) + "s"
}

// BasePath is the route prefix for the entity, e.g. "/expense-type".
func (p Page) BasePath() string {
	return basePath(p.Entity)
}

func basePath(e capability.Entity) string {
	return "/" + slug.Make(strings.ReplaceAll(string(e), "_", " "))
}

type ActionKind string

const (
	LinkAction    ActionKind = "link"
	DeleteAction  ActionKind = "delete"
	RestoreAction ActionKind = "restore"
)

type Action struct {
	Label      string
	Capability capability.Capability
	Kind       ActionKind
	// Route may contain {id} and {<related key>} placeholders.
	Route string
	// When, if set, further hides the action based on the record (e.g. restore only archived records).
	When func(r apiv1.Record) bool
}

// Formatter renders a field value for display. tr translates words such as yes/no.
type Formatter func(v any, tr func(string) string) string

type Field struct {
	Label  string
	Path   string
	Format Formatter
	// Compute replaces Path lookup for derived values (balances, stock level).
	Compute func(r apiv1.Record, tr func(string) string) string
}

func expandRoute(route string, ids map[string]string) string {
	if !strings.Contains(route, "{") {
		return route
	}

	pairs := make([]string, 0, len(ids)*2)
	for k, v := range ids {
		pairs = append(pairs, "{"+k+"}", v)
	}

	return strings.NewReplacer(pairs...).Replace(route)
}
