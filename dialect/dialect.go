package dialect

import (
	"fmt"
	"strings"

	"github.com/tideorm/tide/schema/field"
)

// A Driver identifies the SQL dialect migrations are rendered for.
type Driver uint8

// Supported drivers.
const (
	Postgres Driver = iota + 1
	MySQL
	SQLite
)

// Drivers returns every supported driver.
func Drivers() []Driver {
	return []Driver{Postgres, MySQL, SQLite}
}

// Parse resolves a driver name. It accepts the common aliases of each
// driver and rejects anything else.
func Parse(name string) (Driver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return 0, fmt.Errorf("tide: unsupported driver %q; use postgres, mysql or sqlite", name)
	}
}

// String returns the canonical driver name.
func (d Driver) String() string {
	switch d {
	case Postgres:
		return "postgres"
	case MySQL:
		return "mysql"
	case SQLite:
		return "sqlite"
	default:
		return fmt.Sprintf("Driver(%d)", uint8(d))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Driver) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("tide: invalid driver %d", uint8(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Driver) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Valid reports if d is a supported driver.
func (d Driver) Valid() bool {
	return d >= Postgres && d <= SQLite
}

func (d Driver) mustValid() {
	if !d.Valid() {
		panic(fmt.Sprintf("dialect: unknown driver %d", uint8(d)))
	}
}

// ColumnType returns the SQL column type of a logical type. Passthrough
// types render as their upper-cased token.
func (d Driver) ColumnType(t field.TypeInfo) string {
	d.mustValid()
	switch t.Type {
	case field.TypeString:
		return "VARCHAR(255)"
	case field.TypeText:
		return "TEXT"
	case field.TypeInt8:
		if d == MySQL {
			return "TINYINT"
		}
		return "SMALLINT"
	case field.TypeInt16:
		return "SMALLINT"
	case field.TypeInt32:
		return "INTEGER"
	case field.TypeInt64:
		return "BIGINT"
	case field.TypeFloat32:
		return "REAL"
	case field.TypeFloat64:
		return "DOUBLE PRECISION"
	case field.TypeBool:
		if d == MySQL {
			return "TINYINT(1)"
		}
		return "BOOLEAN"
	case field.TypeDateTime:
		return d.TimestampType()
	case field.TypeDate:
		return "DATE"
	case field.TypeTime:
		return "TIME"
	case field.TypeUUID:
		if d == Postgres {
			return "UUID"
		}
		return "VARCHAR(36)"
	case field.TypeJSON:
		if d == Postgres {
			return "JSON"
		}
		return "TEXT"
	case field.TypeJSONB:
		if d == Postgres {
			return "JSONB"
		}
		return "TEXT"
	case field.TypeDecimal:
		return "DECIMAL(19, 4)"
	case field.TypeBytes:
		if d == Postgres {
			return "BYTEA"
		}
		return "BLOB"
	case field.TypeOther:
		return strings.ToUpper(t.Ident)
	default:
		panic(fmt.Sprintf("dialect: unknown field type %d", uint8(t.Type)))
	}
}

// PrimaryKeyType returns the column type of the auto-increment primary key.
func (d Driver) PrimaryKeyType() string {
	switch d {
	case Postgres:
		return "BIGSERIAL"
	case MySQL:
		return "BIGINT AUTO_INCREMENT"
	case SQLite:
		return "INTEGER"
	default:
		d.mustValid()
		return ""
	}
}

// AutoIncrement returns the suffix appended after PRIMARY KEY, with its
// leading space, or an empty string when the key type implies it.
func (d Driver) AutoIncrement() string {
	switch d {
	case Postgres, MySQL:
		return ""
	case SQLite:
		return " AUTOINCREMENT"
	default:
		d.mustValid()
		return ""
	}
}

// TimestampType returns the column type of the created_at and updated_at
// columns.
func (d Driver) TimestampType() string {
	switch d {
	case Postgres:
		return "TIMESTAMPTZ"
	case MySQL:
		return "DATETIME"
	case SQLite:
		return "TEXT"
	default:
		d.mustValid()
		return ""
	}
}

// Now returns the SQL expression for the current timestamp.
func (d Driver) Now() string {
	switch d {
	case Postgres, MySQL:
		return "NOW()"
	case SQLite:
		return "CURRENT_TIMESTAMP"
	default:
		d.mustValid()
		return ""
	}
}

// Quote returns ident as a quoted identifier: backticks on MySQL, double
// quotes otherwise. Embedded quote characters are doubled.
//
//	Postgres.Quote("order") => "order"
//	MySQL.Quote("order")    => `order`
func (d Driver) Quote(ident string) string {
	switch d {
	case Postgres, SQLite:
		return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
	case MySQL:
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	default:
		d.mustValid()
		return ""
	}
}

// CreateIndex returns the statement creating a secondary index. MySQL has
// no IF NOT EXISTS guard for indexes.
func (d Driver) CreateIndex(name, table string, columns ...string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = d.Quote(c)
	}
	on := d.Quote(name) + " ON " + d.Quote(table) + " (" + strings.Join(quoted, ", ") + ")"
	switch d {
	case Postgres, SQLite:
		return "CREATE INDEX IF NOT EXISTS " + on
	case MySQL:
		return "CREATE INDEX " + on
	default:
		d.mustValid()
		return ""
	}
}
