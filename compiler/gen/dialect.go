package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/tideorm/tide/dialect"
)

// =============================================================================
// Interface Segregation: one small interface per artifact kind
// =============================================================================

// ModelGenerator generates model files.
type ModelGenerator interface {
	// GenModel generates the model struct and its methods ({model}.go)
	GenModel(t *Type) *jen.File
}

// MigrationGenerator generates migration files.
type MigrationGenerator interface {
	// GenMigration generates the Up/Down pair ({version}_{name}.go)
	GenMigration(m *Migration) *jen.File
}

// SeederGenerator generates seeder files.
type SeederGenerator interface {
	// GenSeeder generates the seeder ({name}_seeder.go)
	GenSeeder(s *Seeder) *jen.File
}

// FactoryGenerator generates factory files.
type FactoryGenerator interface {
	// GenFactory generates the factory ({name}_factory.go)
	GenFactory(f *Factory) *jen.File
}

// HandlerGenerator generates handler files.
type HandlerGenerator interface {
	// GenHandler generates the handler ({name}_handler.go)
	GenHandler(h *Handler) *jen.File
}

// IndexGenerator generates the header of the index file of a kind.
type IndexGenerator interface {
	// GenIndex generates mod.go before any module is registered.
	GenIndex(k Kind) *jen.File
}

// TestScaffolder generates companion test files. Dialects may implement
// it; a nil file means no scaffold for that artifact.
type TestScaffolder interface {
	GenModelTest(t *Type) *jen.File
	GenMigrationTest(m *Migration) *jen.File
	GenSeederTest(s *Seeder) *jen.File
	GenFactoryTest(f *Factory) *jen.File
	GenHandlerTest(h *Handler) *jen.File
}

// MinimalDialect is the minimum interface a dialect must implement.
type MinimalDialect interface {
	// Name returns the dialect name (e.g., "sql")
	Name() string
	ModelGenerator
	MigrationGenerator
	SeederGenerator
	FactoryGenerator
	HandlerGenerator
	IndexGenerator
}

// GeneratorHelper provides helper methods for dialect implementations.
// Generator implements this interface, allowing dialect packages to use
// helper methods without importing the full generator.
type GeneratorHelper interface {
	// NewFile creates a new Jennifer file with the standard header comment.
	NewFile(pkg string) *jen.File

	// GoType returns the Jennifer code for a field's Go type.
	GoType(f *Field) jen.Code

	// BaseType returns the Jennifer code for a field's base type (without pointer).
	BaseType(f *Field) jen.Code

	// IDType returns the Jennifer code for the primary key type.
	IDType() jen.Code

	// TidePkg returns the import path of the tide runtime package.
	TidePkg() string

	// FakePkg returns the import path of the fake-value package.
	FakePkg() string

	// PkgName returns the package name of an artifact kind.
	PkgName(k Kind) string

	// PkgPath returns the import path of an artifact kind.
	PkgPath(k Kind) string

	// Driver returns the SQL dialect of migrations.
	Driver() dialect.Driver

	// Config returns the generation config.
	Config() *Config
}
