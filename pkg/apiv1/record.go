package apiv1

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is an untyped backend document.
type Record map[string]any

const IDField = "_id"

func (r Record) ID() string {
	return r.String(IDField)
}

// Lookup resolves dotted paths so joined foreign keys ("customer.name") can be read directly.
func (r Record) Lookup(path string) (any, bool) {
	var current any = map[string]any(r)
	for _, part := range strings.Split(path, ".") {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}

		if current, ok = m[part]; !ok {
			return nil, false
		}
	}

	return current, true
}

// String returns "" for missing or nil values.
func (r Record) String(path string) string {
	v, ok := r.Lookup(path)
	if !ok || v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func (r Record) Float(path string) (float64, bool) {
	v, ok := r.Lookup(path)
	if !ok {
		return 0, false
	}

	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Record:
		return m, true
	case Condition:
		return m, true
	default:
		return nil, false
	}
}

// RefID pulls the id out of a foreign key, which is a plain id string unless the read asked for
// joinForeignKeys, in which case it is the joined document.
func RefID(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any, Record:
		m, _ := asMap(val)
		id, _ := m[IDField].(string)
		return id
	default:
		return ""
	}
}
