// Package ddl holds a small, backend-agnostic table model and renders
// CREATE TABLE statements for the SQL dialects the storage backends speak.
//
// Identifiers are quoted per dialect. Column defaults are raw SQL and are
// emitted verbatim.
package ddl

import (
	"fmt"
	"strings"

	"athletes/internal/schema"
)

// ColumnDef describes a single column.
type ColumnDef struct {
	Name       string
	SQLType    string
	Nullable   bool
	PrimaryKey bool
	Default    string
}

// TableDef is a dotted table name plus its ordered columns.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}

// Dialect knows how one database quotes identifiers, maps logical kinds and
// guards against an existing table.
type Dialect struct {
	Name     string
	quote    func(string) string
	types    map[schema.Kind]string
	fallback string
	create   func(fqn, body string) string
}

var (
	SQLite = Dialect{
		Name:     "sqlite",
		quote:    doubleQuote,
		types:    map[schema.Kind]string{schema.KindDate: "TEXT", schema.KindFloat: "REAL"},
		fallback: "TEXT",
		create:   ifNotExists,
	}
	Postgres = Dialect{
		Name:     "postgres",
		quote:    doubleQuote,
		types:    map[schema.Kind]string{schema.KindDate: "DATE", schema.KindFloat: "DOUBLE PRECISION"},
		fallback: "TEXT",
		create:   ifNotExists,
	}
	MySQL = Dialect{
		Name:     "mysql",
		quote:    func(id string) string { return "`" + strings.ReplaceAll(id, "`", "``") + "`" },
		types:    map[schema.Kind]string{schema.KindDate: "DATE", schema.KindFloat: "DOUBLE"},
		fallback: "VARCHAR(255)",
		create:   ifNotExists,
	}
	MSSQL = Dialect{
		Name:     "mssql",
		quote:    func(id string) string { return "[" + strings.ReplaceAll(id, "]", "]]") + "]" },
		types:    map[schema.Kind]string{schema.KindDate: "DATE", schema.KindFloat: "FLOAT"},
		fallback: "NVARCHAR(400)",
		create: func(fqn, body string) string {
			// T-SQL has no CREATE TABLE IF NOT EXISTS.
			return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NULL\nBEGIN\n  CREATE TABLE %s (\n  %s\n  );\nEND", strings.ReplaceAll(fqn, "'", "''"), fqn, body)
		},
	}
)

// MapType returns the SQL type for a logical kind.
func (d Dialect) MapType(k schema.Kind) string {
	if t, ok := d.types[k]; ok {
		return t
	}
	return d.fallback
}

// QuoteFQN quotes every dotted segment of name.
func (d Dialect) QuoteFQN(name string) string {
	parts := strings.Split(name, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, d.quote(p))
		}
	}
	return strings.Join(out, ".")
}

// QuoteIdent quotes a single identifier.
func (d Dialect) QuoteIdent(id string) string { return d.quote(id) }

// FromSchema builds the table definition for s under this dialect.
func (d Dialect) FromSchema(fqn string, s schema.Schema) TableDef {
	td := TableDef{FQN: fqn, Columns: make([]ColumnDef, 0, len(s))}
	for _, c := range s {
		td.Columns = append(td.Columns, ColumnDef{
			Name:     c.Name,
			SQLType:  d.MapType(c.Kind),
			Nullable: c.Nullable,
		})
	}
	return td
}

// CreateTable renders an idempotent CREATE TABLE statement for t:
//
//	CREATE TABLE IF NOT EXISTS "table" (
//	  "col1" TYPE [NOT NULL] [DEFAULT expr],
//	  PRIMARY KEY ("pk1")
//	);
func (d Dialect) CreateTable(t TableDef) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("%s ddl: table FQN must not be empty", d.Name)
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("%s ddl: at least one column is required", d.Name)
	}

	cols := make([]string, 0, len(t.Columns)+1)
	var pks []string
	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("%s ddl: column with empty name in table %s", d.Name, fqn)
		}
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return "", fmt.Errorf("%s ddl: column %s missing SQLType", d.Name, name)
		}

		var sb strings.Builder
		sb.WriteString(d.quote(name))
		sb.WriteByte(' ')
		sb.WriteString(typ)
		if !c.Nullable {
			sb.WriteString(" NOT NULL")
		}
		if def := strings.TrimSpace(c.Default); def != "" {
			sb.WriteString(" DEFAULT ")
			sb.WriteString(def)
		}
		cols = append(cols, sb.String())

		if c.PrimaryKey {
			pks = append(pks, d.quote(name))
		}
	}
	if len(pks) > 0 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}
	return d.create(d.QuoteFQN(fqn), strings.Join(cols, ",\n  ")), nil
}

func doubleQuote(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

func ifNotExists(fqn, body string) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n);", fqn, body)
}
