package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/circle/api/internal/database"
	"github.com/forgo/circle/api/internal/model"
)

// SurrealCollection stores one entity kind in a SurrealDB table.
// Field names are the JSON names of the model; created_on orders results.
type SurrealCollection[T any, P recordPtr[T]] struct {
	db    database.Database
	kind  model.Kind
	table string
	now   func() time.Time
}

// NewSurrealCollection creates a collection backed by table
func NewSurrealCollection[T any, P recordPtr[T]](db database.Database, kind model.Kind, table string) *SurrealCollection[T, P] {
	return &SurrealCollection[T, P]{
		db:    db,
		kind:  kind,
		table: table,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Kind returns the entity kind stored in this collection
func (c *SurrealCollection[T, P]) Kind() model.Kind {
	return c.kind
}

// Create stores record under a fresh id
func (c *SurrealCollection[T, P]) Create(ctx context.Context, record *T) (*T, error) {
	return c.create(ctx, uuid.NewString(), record)
}

// Insert stores record keeping its id. Used for seeding.
func (c *SurrealCollection[T, P]) Insert(ctx context.Context, record *T) (*T, error) {
	id := P(record).GetID()
	if id == "" {
		return nil, fmt.Errorf("%w: %s id is required", database.ErrQuery, c.kind)
	}
	return c.create(ctx, id, record)
}

func (c *SurrealCollection[T, P]) create(ctx context.Context, id string, record *T) (*T, error) {
	content, err := toContent(record)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding %s: %v", database.ErrQuery, c.kind, err)
	}
	content["created_on"] = c.now()

	query := `CREATE type::thing($tb, $id) CONTENT $content RETURN AFTER`
	vars := map[string]interface{}{
		"tb":      c.table,
		"id":      id,
		"content": content,
	}

	result, err := c.db.QueryOne(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, fmt.Errorf("%w: %s %s", database.ErrDuplicate, c.kind, id)
		}
		return nil, err
	}
	return c.decode(result)
}

// FindOne returns the first matching record or nil with no error
func (c *SurrealCollection[T, P]) FindOne(ctx context.Context, filter model.Filter) (*T, error) {
	records, err := c.find(ctx, &filter, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// FindMany returns every matching record ordered by creation time.
// A nil filter returns the whole table.
func (c *SurrealCollection[T, P]) FindMany(ctx context.Context, filter *model.Filter) ([]*T, error) {
	return c.find(ctx, filter, 0)
}

func (c *SurrealCollection[T, P]) find(ctx context.Context, filter *model.Filter, limit int) ([]*T, error) {
	vars := map[string]interface{}{"tb": c.table}
	var query string

	switch {
	case filter == nil:
		query = `SELECT * FROM type::table($tb) ORDER BY created_on ASC`
	case filter.Key == model.FieldID:
		query = `SELECT * FROM type::thing($tb, $value)`
		vars["value"] = filter.Equals
	default:
		if err := c.checkFilter(*filter); err != nil {
			return nil, err
		}
		// Field names are checked against the model above before being
		// placed in the query text.
		query = fmt.Sprintf(`SELECT * FROM type::table($tb) WHERE %s = $value ORDER BY created_on ASC`, filter.Key)
		vars["value"] = filter.Equals
	}
	if limit > 0 && (filter == nil || filter.Key != model.FieldID) {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	result, err := c.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows := extractQueryResults(result)
	records := make([]*T, 0, len(rows))
	for _, row := range rows {
		rec, err := c.decode(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Change merges updates into the stored record and returns the result
func (c *SurrealCollection[T, P]) Change(ctx context.Context, id string, updates map[string]interface{}) (*T, error) {
	existing, err := c.FindOne(ctx, model.ByID(id))
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, database.ErrNotFound
	}

	query := `UPDATE type::thing($tb, $id) MERGE $updates RETURN AFTER`
	vars := map[string]interface{}{
		"tb":      c.table,
		"id":      id,
		"updates": withoutID(updates),
	}

	result, err := c.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return c.decode(result)
}

// Delete removes the record and returns it as it was before removal
func (c *SurrealCollection[T, P]) Delete(ctx context.Context, id string) (*T, error) {
	query := `DELETE type::thing($tb, $id) RETURN BEFORE`
	vars := map[string]interface{}{
		"tb": c.table,
		"id": id,
	}

	result, err := c.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return c.decode(result)
}

func (c *SurrealCollection[T, P]) decode(raw interface{}) (*T, error) {
	rec := new(T)
	if err := decodeRecord(raw, rec); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", database.ErrQuery, c.kind, err)
	}
	return rec, nil
}

func (c *SurrealCollection[T, P]) checkFilter(filter model.Filter) error {
	var zero T
	if _, ok := P(&zero).Field(filter.Key); !ok {
		return fmt.Errorf("%w: %s cannot be filtered by %q", database.ErrQuery, c.kind, filter.Key)
	}
	return nil
}
