package query

import (
	"fmt"
	"strings"
)

// SortField represents one column in an ORDER BY clause. Field is the
// logical field name resolved through the ProjectionMap.
type SortField struct {
	Field      string
	Descending bool
}

// ParseSortFields parses a comma-separated sort string into SortFields.
// Fields prefixed with "-" sort descending, e.g. "filename,-created_at".
// Returns nil for empty input.
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	var fields []SortField
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if after, ok := strings.CutPrefix(part, "-"); ok {
			fields = append(fields, SortField{Field: after, Descending: true})
		} else {
			fields = append(fields, SortField{Field: part})
		}
	}
	return fields
}

type condition struct {
	clause string
	args   []any
}

// Builder constructs SQL queries with automatic parameter numbering.
type Builder struct {
	projection  *ProjectionMap
	conditions  []condition
	sort        []SortField
	defaultSort []SortField
}

// NewBuilder creates a Builder over the given projection with optional
// default sort fields.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		defaultSort: defaultSort,
	}
}

// WhereEquals adds an equality condition when value is non-nil.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	col := b.projection.Column(field)
	if col == "" {
		return b
	}
	b.conditions = append(b.conditions, condition{
		clause: col + " = %s",
		args:   []any{deref(value)},
	})
	return b
}

// WhereAtLeast adds a greater-than-or-equal condition when value is non-nil.
func (b *Builder) WhereAtLeast(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	col := b.projection.Column(field)
	if col == "" {
		return b
	}
	b.conditions = append(b.conditions, condition{
		clause: col + " >= %s",
		args:   []any{deref(value)},
	})
	return b
}

// WhereContains adds a case-insensitive contains condition when value is
// a non-nil string.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil {
		return b
	}
	col := b.projection.Column(field)
	if col == "" {
		return b
	}
	b.conditions = append(b.conditions, condition{
		clause: col + " ILIKE %s",
		args:   []any{"%" + *value + "%"},
	})
	return b
}

// WhereSearch adds an OR-combined contains condition across the given fields
// when search is non-nil.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || len(fields) == 0 {
		return b
	}

	var clauses []string
	var args []any
	for _, f := range fields {
		col := b.projection.Column(f)
		if col == "" {
			continue
		}
		clauses = append(clauses, col+" ILIKE %s")
		args = append(args, "%"+*search+"%")
	}
	if len(clauses) == 0 {
		return b
	}

	b.conditions = append(b.conditions, condition{
		clause: "(" + strings.Join(clauses, " OR ") + ")",
		args:   args,
	})
	return b
}

// OrderByFields replaces the default sort with explicit sort fields.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.sort = fields
	return b
}

// Build returns a SELECT query with the current conditions and ordering.
func (b *Builder) Build() (string, []any) {
	where, args := b.buildWhere()
	return fmt.Sprintf(
		"SELECT %s FROM %s%s%s",
		b.projection.Columns(), b.projection.From(), where, b.buildOrderBy(),
	), args
}

// BuildCount returns a COUNT(*) query with the current conditions.
func (b *Builder) BuildCount() (string, []any) {
	where, args := b.buildWhere()
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.projection.From(), where), args
}

// BuildPage returns a paginated SELECT with ordering, limit, and offset.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	where, args := b.buildWhere()
	return fmt.Sprintf(
		"SELECT %s FROM %s%s%s LIMIT %d OFFSET %d",
		b.projection.Columns(), b.projection.From(), where, b.buildOrderBy(),
		pageSize, (page-1)*pageSize,
	), args
}

// BuildSingle returns a SELECT for one record matched on the given field.
func (b *Builder) BuildSingle(field string, value any) (string, []any) {
	return fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		b.projection.Columns(), b.projection.From(), b.projection.Column(field),
	), []any{value}
}

func (b *Builder) buildWhere() (string, []any) {
	if len(b.conditions) == 0 {
		return "", nil
	}

	var clauses []string
	var args []any
	n := 1
	for _, c := range b.conditions {
		placeholders := make([]any, len(c.args))
		for i := range c.args {
			placeholders[i] = fmt.Sprintf("$%d", n)
			n++
		}
		clauses = append(clauses, fmt.Sprintf(c.clause, placeholders...))
		args = append(args, c.args...)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (b *Builder) buildOrderBy() string {
	sort := b.sort
	if len(sort) == 0 {
		sort = b.defaultSort
	}
	if len(sort) == 0 {
		return ""
	}

	var parts []string
	for _, f := range sort {
		col := b.projection.Column(f.Field)
		if col == "" {
			continue
		}
		if f.Descending {
			col += " DESC"
		}
		parts = append(parts, col)
	}
	if len(parts) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

func isNil(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case *string:
		return val == nil
	case *int:
		return val == nil
	case *int64:
		return val == nil
	default:
		return false
	}
}

func deref(v any) any {
	switch val := v.(type) {
	case *string:
		return *val
	case *int:
		return *val
	case *int64:
		return *val
	default:
		return v
	}
}
