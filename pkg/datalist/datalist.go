// Package datalist backs autocomplete inputs that pick a backend record (a customer, an account,
// a product) and copy some of its fields into the surrounding form.
package datalist

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/dukahub/dukaweb/pkg/apiv1"
	"github.com/dukahub/dukaweb/pkg/clog"
)

// Config describes one datalist.
type Config struct {
	Name   string
	Schema string
	// SearchFields are matched case-insensitively against the typed text.
	SearchFields []string
	// LabelField is the record path shown as the option text.
	LabelField string
	// IDField is the form key the chosen record's id is written to.
	IDField string
	// Dependents maps form keys to record paths copied on selection, e.g. "price" -> "sellingPrice".
	Dependents map[string]string
	// Condition is merged into every search, e.g. {"visible": true}.
	Condition apiv1.Condition
}

type Option struct {
	ID     string       `json:"id"`
	Label  string       `json:"label"`
	Record apiv1.Record `json:"-"`
}

// Form holds the values and inline errors of the form the datalist sits in.
type Form struct {
	Values map[string]any    `json:"values"`
	Errors map[string]string `json:"errors,omitempty"`
}

func NewForm() *Form {
	return &Form{Values: map[string]any{}, Errors: map[string]string{}}
}

func (f *Form) ensure() {
	if f.Values == nil {
		f.Values = map[string]any{}
	}

	if f.Errors == nil {
		f.Errors = map[string]string{}
	}
}

// Resolver keeps the options of the last search. It is not meant to outlive the form it serves.
type Resolver struct {
	cfg       Config
	api       apiv1.API
	translate func(string) string

	mu      sync.Mutex
	options []Option
}

func NewResolver(cfg Config, api apiv1.API, translate func(string) string) *Resolver {
	if translate == nil {
		translate = func(s string) string { return s }
	}

	return &Resolver{cfg: cfg, api: api, translate: translate}
}

func (r *Resolver) Config() Config {
	return r.cfg
}

// Search issues one list-all request and replaces the option list with its results. Empty text
// lists everything the base condition allows.
func (r *Resolver) Search(ctx context.Context, text string) ([]Option, error) {
	q := apiv1.Query{
		Schema:    r.cfg.Schema,
		Condition:       r.searchCondition(strings.TrimSpace(text)),
		Sort:            map[string]any{r.cfg.LabelField: 1},
		JoinForeignKeys: true,
	}

	records, err := r.api.ListAll(ctx, q)
	if err != nil {
		clog.UsingCtx("datalist").WithField("datalist", r.cfg.Name).Warnf("search failed: %s", err)
		return nil, err
	}

	options := make([]Option, 0, len(records))
	for _, rec := range records {
		options = append(options, Option{
			ID:     rec.ID(),
			Label:  rec.String(r.cfg.LabelField),
			Record: rec,
		})
	}

	r.mu.Lock()
	r.options = options
	r.mu.Unlock()

	return options, nil
}

func (r *Resolver) searchCondition(text string) apiv1.Condition {
	condition := apiv1.Condition{}
	for k, v := range r.cfg.Condition {
		condition[k] = v
	}

	if text == "" {
		return condition
	}

	pattern := regexp.QuoteMeta(text)
	alternatives := make([]any, 0, len(r.cfg.SearchFields))
	for _, field := range r.cfg.SearchFields {
		alternatives = append(alternatives, map[string]any{
			field: map[string]any{"$regex": pattern, "$options": "i"},
		})
	}
	condition["$or"] = alternatives

	return condition
}

// Options returns the current option list.
func (r *Resolver) Options() []Option {
	r.mu.Lock()
	defer r.mu.Unlock()

	options := make([]Option, len(r.options))
	copy(options, r.options)
	return options
}

// Select writes id and its dependents into form when id belongs to a current option.
func (r *Resolver) Select(form *Form, id string) bool {
	for _, option := range r.Options() {
		if option.ID == id {
			r.apply(form, option)
			return true
		}
	}

	return false
}

// Resolve matches typed text against the option labels. A match is selected; anything else
// clears the id and dependents and leaves a "does not exist" error on the id field. Empty text
// just clears.
func (r *Resolver) Resolve(form *Form, text string) bool {
	text = strings.TrimSpace(text)

	if text != "" {
		for _, option := range r.Options() {
			if option.Label == text {
				r.apply(form, option)
				return true
			}
		}
	}

	r.clear(form)
	if text != "" {
		form.Errors[r.cfg.IDField] = r.translate(r.cfg.Name) + " " + strings.ToLower(r.translate("does not exist"))
	}

	return false
}

func (r *Resolver) apply(form *Form, option Option) {
	form.ensure()
	form.Values[r.cfg.IDField] = option.ID
	delete(form.Errors, r.cfg.IDField)

	for key, path := range r.cfg.Dependents {
		form.Values[key] = dependentValue(option.Record, path)
	}
}

// dependentValue reads path from rec. A path ending in "._id" names a foreign key, which also
// resolves when the backend sent the key unjoined as a plain id.
func dependentValue(rec apiv1.Record, path string) any {
	if v, ok := rec.Lookup(path); ok {
		return v
	}

	if ref, ok := strings.CutSuffix(path, "."+apiv1.IDField); ok {
		if v, ok := rec.Lookup(ref); ok {
			return apiv1.RefID(v)
		}
	}

	return nil
}

func (r *Resolver) clear(form *Form) {
	form.ensure()
	form.Values[r.cfg.IDField] = ""
	delete(form.Errors, r.cfg.IDField)

	for key := range r.cfg.Dependents {
		form.Values[key] = ""
	}
}
