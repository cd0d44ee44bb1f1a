// Package sql implements the SQL dialect of the tide code generator.
//
// The dialect renders every artifact kind with the Jennifer code generation
// library. Emitted code imports the tide runtime package and works with any
// database reachable through sqlx.
//
// # Interface Implementation
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                         Dialect                             │
//	│  Implements: gen.MinimalDialect, gen.TestScaffolder         │
//	└─────────────────────────────────────────────────────────────┘
//	                              │
//	     ┌──────────┬──────────┬──┴───────┬──────────┬──────────┐
//	     ▼          ▼          ▼          ▼          ▼          ▼
//	  GenModel GenMigration GenSeeder GenFactory GenHandler GenIndex
//
// # Generated Output Structure
//
//	internal/
//	├── models/
//	│   ├── mod.go                  # package clause, Models registry
//	│   └── {model}.go              # struct, TableName, ModelOptions, finders
//	├── migrations/
//	│   ├── mod.go                  # MigrationTable, Migrations registry
//	│   └── {version}_{name}.go     # Name, Up, Down
//	├── seeders/
//	│   ├── mod.go                  # Seeders registry
//	│   └── {name}_seeder.go
//	├── factories/
//	│   └── {name}_factory.go
//	└── handlers/
//	    └── {name}_handler.go
//
// Every artifact may have a companion {file}_test.go built on the standard
// testing package.
//
// # Migration Statements
//
// The DDL helpers are pure and usable for dry runs:
//
//	up, down := sql.CreateTable(dialect.SQLite, user.CreateMigration())
//	up, down = sql.AlterTable(dialect.Postgres, "users", fields)
package sql
