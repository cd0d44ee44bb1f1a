// Package dialect maps logical field types to SQL column types for the
// supported database drivers.
//
// # Supported Drivers
//
//   - Postgres: PostgreSQL
//   - MySQL: MySQL and MariaDB
//   - SQLite: SQLite 3
//
// Drivers form a closed set. Every lookup switches over all of them and
// panics on a value outside the set, so adding a driver without mappings
// fails instead of rendering a generic default.
//
// # Column Types
//
//	dialect.Postgres.ColumnType(field.NewTypeInfo("datetime")) // TIMESTAMPTZ
//	dialect.MySQL.ColumnType(field.NewTypeInfo("bool"))        // TINYINT(1)
//	dialect.SQLite.ColumnType(field.NewTypeInfo("uuid"))       // VARCHAR(36)
//
// Unknown type tokens render upper-cased:
//
//	dialect.Postgres.ColumnType(field.NewTypeInfo("point"))    // POINT
//
// # Migration Lookups
//
//	                 postgres     mysql                  sqlite
//	PrimaryKeyType   BIGSERIAL    BIGINT AUTO_INCREMENT  INTEGER
//	AutoIncrement    ""           ""                     " AUTOINCREMENT"
//	TimestampType    TIMESTAMPTZ  DATETIME               TEXT
//	Now              NOW()        NOW()                  CURRENT_TIMESTAMP
package dialect
