package apiv1

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/hashicorp/go-uuid"
)

// MockAPI is an in-memory backend. It understands equality conditions, $or and $regex, which is
// enough for detail pages, datalists and local development.
type MockAPI struct {
	mu          sync.Mutex
	err         error
	collections map[string][]Record
	calls       map[string]int
	queries     map[string]Query
}

func NewMockAPI() *MockAPI {
	return &MockAPI{
		collections: make(map[string][]Record),
		calls:       make(map[string]int),
		queries:     make(map[string]Query),
	}
}

// SetError makes every following call fail with err. nil clears it.
func (m *MockAPI) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockAPI) Err(err error) *MockAPI {
	m.SetError(err)
	return m
}

// Seed appends records to schema; records without an _id get one.
func (m *MockAPI) Seed(schema string, records ...Record) *MockAPI {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range records {
		if r.ID() == "" {
			r[IDField], _ = uuid.GenerateUUID()
		}
		m.collections[schema] = append(m.collections[schema], r)
	}

	return m
}

// Calls reports how many times verb ("read", "list-all", ...) was invoked.
func (m *MockAPI) Calls(verb string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[verb]
}

// LastQuery returns the query of the most recent list-all or read call.
func (m *MockAPI) LastQuery(verb string) Query {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries[verb]
}

func (m *MockAPI) ListAll(_ context.Context, q Query) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queries["list-all"] = q
	if err := m.track("list-all"); err != nil {
		return nil, err
	}

	matches := m.find(q.Schema, q.Condition)
	if field, ok := sortField(q.Sort); ok {
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].String(field) < matches[j].String(field)
		})
	}

	return matches, nil
}

func (m *MockAPI) Read(_ context.Context, q Query) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queries["read"] = q
	if err := m.track("read"); err != nil {
		return nil, err
	}

	matches := m.find(q.Schema, q.Condition)
	if len(matches) == 0 {
		return nil, &Error{Status: 200, Message: fmt.Sprintf("%s does not exist", q.Schema)}
	}

	return matches[0], nil
}

func (m *MockAPI) CountAll(_ context.Context, q Query) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.track("count-all-collection"); err != nil {
		return 0, err
	}

	return len(m.find(q.Schema, q.Condition)), nil
}

func (m *MockAPI) Create(_ context.Context, schema string, doc Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.track("create"); err != nil {
		return nil, err
	}

	created := copyRecord(doc)
	if created.ID() == "" {
		id, err := uuid.GenerateUUID()
		if err != nil {
			return nil, err
		}
		created[IDField] = id
	}

	m.collections[schema] = append(m.collections[schema], created)
	return copyRecord(created), nil
}

func (m *MockAPI) Update(_ context.Context, schema string, condition Condition, doc Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.track("update"); err != nil {
		return nil, err
	}

	var updated Record
	for _, r := range m.collections[schema] {
		if !matches(r, condition) {
			continue
		}

		for k, v := range doc {
			r[k] = v
		}
		updated = r
	}

	if updated == nil {
		return nil, &Error{Status: 200, Message: fmt.Sprintf("%s does not exist", schema)}
	}

	return copyRecord(updated), nil
}

func (m *MockAPI) Delete(_ context.Context, schema string, condition Condition) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.track("delete"); err != nil {
		return err
	}

	var kept []Record
	for _, r := range m.collections[schema] {
		if !matches(r, condition) {
			kept = append(kept, r)
		}
	}
	m.collections[schema] = kept

	return nil
}

// track is called with mu held.
func (m *MockAPI) track(verb string) error {
	m.calls[verb]++
	return m.err
}

func (m *MockAPI) find(schema string, condition Condition) []Record {
	var found []Record
	for _, r := range m.collections[schema] {
		if matches(r, condition) {
			found = append(found, copyRecord(r))
		}
	}

	return found
}

func matches(r Record, condition map[string]any) bool {
	for key, want := range condition {
		if key == "$or" {
			if !matchesAny(r, want) {
				return false
			}
			continue
		}

		if !matchesValue(r.String(key), want) {
			return false
		}
	}

	return true
}

func matchesAny(r Record, alternatives any) bool {
	var list []map[string]any
	switch alts := alternatives.(type) {
	case []any:
		for _, alt := range alts {
			if cond, ok := asMap(alt); ok {
				list = append(list, cond)
			}
		}
	case []map[string]any:
		list = alts
	case []Condition:
		for _, cond := range alts {
			list = append(list, cond)
		}
	}

	for _, cond := range list {
		if matches(r, cond) {
			return true
		}
	}

	return false
}

func matchesValue(have string, want any) bool {
	op, ok := asMap(want)
	if !ok {
		return have == fmt.Sprintf("%v", want)
	}

	pattern, ok := op["$regex"].(string)
	if !ok {
		return false
	}

	if options, _ := op["$options"].(string); options == "i" {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}

	return re.MatchString(have)
}

func sortField(s map[string]any) (string, bool) {
	for field := range s {
		return field, true
	}

	return "", false
}

func copyRecord(r Record) Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}

	return c
}
