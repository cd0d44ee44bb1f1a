package sql

import (
	"strings"

	"github.com/tideorm/tide/compiler/gen"
	"github.com/tideorm/tide/dialect"
	"github.com/tideorm/tide/schema/field"
)

// Plan returns the up and down statements of a migration. Empty
// migrations have none.
func Plan(d dialect.Driver, m *gen.Migration) (up, down []string) {
	switch m.Mode {
	case gen.MigrationCreate:
		return CreateTable(d, m)
	case gen.MigrationAlter:
		return AlterTable(d, m.Table, m.Fields)
	default:
		return nil, nil
	}
}

// CreateTable returns the statements creating the table of m with its
// primary key, columns, timestamps and indexes, and the statement dropping
// it.
//
//	CREATE TABLE IF NOT EXISTS "users" (
//	    "id" INTEGER PRIMARY KEY AUTOINCREMENT,
//	    "name" VARCHAR(255) NOT NULL,
//	    "created_at" TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
//	    "updated_at" TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
//	)
func CreateTable(d dialect.Driver, m *gen.Migration) (up, down []string) {
	columns := []string{primaryKey(d, m.PrimaryKey, m.PrimaryKeyType)}
	for _, f := range m.Fields {
		columns = append(columns, Column(d, f))
	}
	if m.Timestamps {
		columns = append(columns,
			d.Quote(gen.ColumnCreatedAt)+" "+d.TimestampType()+" NOT NULL DEFAULT "+d.Now(),
			d.Quote(gen.ColumnUpdatedAt)+" "+d.TimestampType()+" NOT NULL DEFAULT "+d.Now(),
		)
	}
	if m.SoftDeletes {
		columns = append(columns, d.Quote(gen.ColumnDeletedAt)+" "+d.TimestampType()+" NULL")
	}
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(d.Quote(m.Table))
	b.WriteString(" (\n")
	for i, c := range columns {
		b.WriteString("    ")
		b.WriteString(c)
		if i < len(columns)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(")")
	up = append(up, b.String())
	for _, col := range m.Indexes {
		up = append(up, d.CreateIndex(IndexName(m.Table, col), m.Table, col))
	}
	return up, []string{"DROP TABLE IF EXISTS " + d.Quote(m.Table)}
}

// AlterTable returns one ADD COLUMN statement per field and the matching
// DROP COLUMN statements, in the same field order.
func AlterTable(d dialect.Driver, table string, fields []*gen.Field) (up, down []string) {
	for _, f := range fields {
		up = append(up, "ALTER TABLE "+d.Quote(table)+" ADD COLUMN "+Column(d, f))
		down = append(down, "ALTER TABLE "+d.Quote(table)+" DROP COLUMN "+d.Quote(f.Name))
	}
	return up, down
}

// Column returns the column definition of a field.
//
//	"email" VARCHAR(255) NOT NULL UNIQUE DEFAULT ''
func Column(d dialect.Driver, f *gen.Field) string {
	var b strings.Builder
	b.WriteString(d.Quote(f.Name))
	b.WriteByte(' ')
	b.WriteString(d.ColumnType(f.Type))
	if !f.Nullable {
		b.WriteString(" NOT NULL")
	}
	if f.Unique {
		b.WriteString(" UNIQUE")
	}
	if f.Default != nil {
		b.WriteString(" DEFAULT ")
		b.WriteString(*f.Default)
	}
	return b.String()
}

// IndexName returns the name of the secondary index on table(column).
func IndexName(table, column string) string {
	return "idx_" + table + "_" + column
}

// primaryKey returns the primary key column. Integer keys use the driver
// auto-increment type; other keys use their column type.
func primaryKey(d dialect.Driver, name string, t field.TypeInfo) string {
	switch t.Type {
	case field.TypeInt8, field.TypeInt16, field.TypeInt32, field.TypeInt64:
		return d.Quote(name) + " " + d.PrimaryKeyType() + " PRIMARY KEY" + d.AutoIncrement()
	default:
		return d.Quote(name) + " " + d.ColumnType(t) + " PRIMARY KEY"
	}
}
