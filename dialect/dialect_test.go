package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tideorm/tide/schema/field"
)

func TestColumnType(t *testing.T) {
	tests := []struct {
		typ      string
		postgres string
		mysql    string
		sqlite   string
	}{
		{"string", "VARCHAR(255)", "VARCHAR(255)", "VARCHAR(255)"},
		{"text", "TEXT", "TEXT", "TEXT"},
		{"int8", "SMALLINT", "TINYINT", "SMALLINT"},
		{"int16", "SMALLINT", "SMALLINT", "SMALLINT"},
		{"int32", "INTEGER", "INTEGER", "INTEGER"},
		{"int64", "BIGINT", "BIGINT", "BIGINT"},
		{"float32", "REAL", "REAL", "REAL"},
		{"float64", "DOUBLE PRECISION", "DOUBLE PRECISION", "DOUBLE PRECISION"},
		{"bool", "BOOLEAN", "TINYINT(1)", "BOOLEAN"},
		{"datetime", "TIMESTAMPTZ", "DATETIME", "TEXT"},
		{"date", "DATE", "DATE", "DATE"},
		{"time", "TIME", "TIME", "TIME"},
		{"uuid", "UUID", "VARCHAR(36)", "VARCHAR(36)"},
		{"json", "JSON", "TEXT", "TEXT"},
		{"jsonb", "JSONB", "TEXT", "TEXT"},
		{"decimal", "DECIMAL(19, 4)", "DECIMAL(19, 4)", "DECIMAL(19, 4)"},
		{"bytes", "BYTEA", "BLOB", "BLOB"},
		{"point", "POINT", "POINT", "POINT"},
		{"Geometry", "GEOMETRY", "GEOMETRY", "GEOMETRY"},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			info := field.NewTypeInfo(tt.typ)
			assert.Equal(t, tt.postgres, Postgres.ColumnType(info))
			assert.Equal(t, tt.mysql, MySQL.ColumnType(info))
			assert.Equal(t, tt.sqlite, SQLite.ColumnType(info))
			// Pure: repeated calls agree.
			assert.Equal(t, Postgres.ColumnType(info), Postgres.ColumnType(info))
		})
	}
}

func TestColumnType_AllPairs(t *testing.T) {
	for _, d := range Drivers() {
		for _, typ := range field.Types() {
			t.Run(d.String()+"/"+typ.String(), func(t *testing.T) {
				assert.NotPanics(t, func() {
					assert.NotEmpty(t, d.ColumnType(field.TypeInfo{Type: typ, Ident: typ.String()}))
				})
			})
		}
	}
}

func TestColumnType_Aliases(t *testing.T) {
	assert.Equal(t, "INTEGER", MySQL.ColumnType(field.NewTypeInfo("i32")))
	assert.Equal(t, "BIGINT", Postgres.ColumnType(field.NewTypeInfo("i64")))
	assert.Equal(t, "TIMESTAMPTZ", Postgres.ColumnType(field.NewTypeInfo("timestamp")))
	assert.Equal(t, "BLOB", SQLite.ColumnType(field.NewTypeInfo("binary")))
}

func TestMigrationLookups(t *testing.T) {
	tests := []struct {
		d       Driver
		pk      string
		autoInc string
		ts      string
		now     string
	}{
		{Postgres, "BIGSERIAL", "", "TIMESTAMPTZ", "NOW()"},
		{MySQL, "BIGINT AUTO_INCREMENT", "", "DATETIME", "NOW()"},
		{SQLite, "INTEGER", " AUTOINCREMENT", "TEXT", "CURRENT_TIMESTAMP"},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			assert.Equal(t, tt.pk, tt.d.PrimaryKeyType())
			assert.Equal(t, tt.autoInc, tt.d.AutoIncrement())
			assert.Equal(t, tt.ts, tt.d.TimestampType())
			assert.Equal(t, tt.now, tt.d.Now())
		})
	}
}

func TestUnknownDriverPanics(t *testing.T) {
	var d Driver
	assert.False(t, d.Valid())
	assert.Panics(t, func() { d.ColumnType(field.NewTypeInfo("string")) })
	assert.Panics(t, func() { d.PrimaryKeyType() })
	assert.Panics(t, func() { d.AutoIncrement() })
	assert.Panics(t, func() { d.TimestampType() })
	assert.Panics(t, func() { d.Now() })
	assert.Panics(t, func() { d.CreateIndex("idx", "t", "c") })
	assert.Panics(t, func() { d.Quote("c") })
	assert.Equal(t, "Driver(0)", d.String())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want Driver
	}{
		{"postgres", Postgres},
		{"PostgreSQL", Postgres},
		{"pg", Postgres},
		{"mysql", MySQL},
		{"mariadb", MySQL},
		{"sqlite", SQLite},
		{" sqlite3 ", SQLite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
	_, err := Parse("oracle")
	assert.EqualError(t, err, `tide: unsupported driver "oracle"; use postgres, mysql or sqlite`)
}

func TestText(t *testing.T) {
	var d Driver
	require.NoError(t, d.UnmarshalText([]byte("mysql")))
	assert.Equal(t, MySQL, d)
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "mysql", string(text))
	assert.Error(t, d.UnmarshalText([]byte("db2")))
	_, err = Driver(9).MarshalText()
	assert.Error(t, err)
}

func TestCreateIndex(t *testing.T) {
	assert.Equal(t, `CREATE INDEX IF NOT EXISTS "idx_users_email" ON "users" ("email")`, Postgres.CreateIndex("idx_users_email", "users", "email"))
	assert.Equal(t, `CREATE INDEX IF NOT EXISTS "idx_users_a_b" ON "users" ("a", "b")`, SQLite.CreateIndex("idx_users_a_b", "users", "a", "b"))
	assert.Equal(t, "CREATE INDEX `idx_users_email` ON `users` (`email`)", MySQL.CreateIndex("idx_users_email", "users", "email"))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"when"`, Postgres.Quote("when"))
	assert.Equal(t, `"group"`, SQLite.Quote("group"))
	assert.Equal(t, "`order`", MySQL.Quote("order"))
	assert.Equal(t, `"a""b"`, Postgres.Quote(`a"b`))
	assert.Equal(t, "`a``b`", MySQL.Quote("a`b"))
}
