// Package query builds parameterized SQL queries over a logical-field
// projection, keeping column naming out of domain code.
package query

import "strings"

type projectedColumn struct {
	column string
	field  string
}

// ProjectionMap maps logical field names to table columns for one table.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	columns []projectedColumn
	byField map[string]string
}

// NewProjectionMap creates a projection for schema.table with the given alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		byField: make(map[string]string),
	}
}

// Project registers a column under a logical field name.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.columns = append(p.columns, projectedColumn{column: qualified, field: field})
	p.byField[field] = qualified
	return p
}

// Columns returns the comma-separated projected column list.
func (p *ProjectionMap) Columns() string {
	cols := make([]string, len(p.columns))
	for i, c := range p.columns {
		cols[i] = c.column
	}
	return strings.Join(cols, ", ")
}

// From returns the FROM clause source with alias.
func (p *ProjectionMap) From() string {
	return p.schema + "." + p.table + " " + p.alias
}

// Column resolves a logical field name to its qualified column, or returns
// an empty string for unknown fields.
func (p *ProjectionMap) Column(field string) string {
	return p.byField[field]
}
