// Package apiv1 talks to the generic REST backend. Every collection is addressed by schema
// name and read or written through the same handful of verbs.
package apiv1

import "context"

// Condition is the JSON filter understood by the backend, for example {"_id": "..."}.
type Condition map[string]any

// Query carries the query parameters shared by list-all, read and count-all-collection.
type Query struct {
	Schema          string
	Condition       Condition
	Select          map[string]any
	Sort            map[string]any
	JoinForeignKeys bool
}

// ByID builds the read query used by detail pages.
func ByID(schema, id string) Query {
	return Query{
		Schema:          schema,
		Condition:       Condition{"_id": id},
		Select:          map[string]any{},
		JoinForeignKeys: true,
	}
}

type API interface {
	ListAll(ctx context.Context, q Query) ([]Record, error)
	Read(ctx context.Context, q Query) (Record, error)
	CountAll(ctx context.Context, q Query) (int, error)
	Create(ctx context.Context, schema string, doc Record) (Record, error)
	Update(ctx context.Context, schema string, condition Condition, doc Record) (Record, error)
	Delete(ctx context.Context, schema string, condition Condition) error
}
