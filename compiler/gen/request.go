package gen

import (
	"strings"

	"github.com/tideorm/tide/naming"
	"github.com/tideorm/tide/schema/field"
)

// A Request is one artifact to generate. *Type requests a model.
type Request interface {
	// Kind returns the artifact kind.
	Kind() Kind
	// ArtifactName returns the canonical artifact name.
	ArtifactName() string
}

var (
	_ Request = (*Type)(nil)
	_ Request = (*Migration)(nil)
	_ Request = (*Seeder)(nil)
	_ Request = (*Factory)(nil)
	_ Request = (*Handler)(nil)
)

// MigrationMode selects the statements a migration holds.
type MigrationMode uint8

// Migration modes.
const (
	// MigrationEmpty holds placeholders and no statements.
	MigrationEmpty MigrationMode = iota
	// MigrationCreate creates a table with its full column list.
	MigrationCreate
	// MigrationAlter adds one column per field and drops them on the way down.
	MigrationAlter
)

// String returns the mode name.
func (m MigrationMode) String() string {
	switch m {
	case MigrationCreate:
		return "create"
	case MigrationAlter:
		return "alter"
	default:
		return "empty"
	}
}

// Migration requests a schema migration.
type Migration struct {
	// Name is the snake_case migration name.
	Name string
	// Version is the timestamp prefix of the ID, empty when disabled.
	Version string
	Mode    MigrationMode
	Table   string
	// PrimaryKey and PrimaryKeyType describe the key of created tables.
	PrimaryKey     string
	PrimaryKeyType field.TypeInfo
	Fields         []*Field
	// Indexes are the columns of created tables that get a secondary index.
	Indexes     []string
	Timestamps  bool
	SoftDeletes bool
}

// VersionLayout is the time layout of migration versions.
const VersionLayout = "20060102150405"

// NewMigration creates a migration request. Create and alter migrations
// need a table.
func NewMigration(c *Config, name string, mode MigrationMode, table string, fields []*field.Descriptor) (*Migration, error) {
	name = naming.Snake(strings.TrimSpace(name))
	if name == "" {
		return nil, NewGenerationError(KindMigration, "", "migration name is required", ErrMissingName)
	}
	table = strings.TrimSpace(table)
	if mode != MigrationEmpty && table == "" {
		return nil, NewGenerationError(KindMigration, name, "table name is required for "+mode.String()+" migrations", ErrMissingName)
	}
	// Created tables always get created_at and updated_at; the model
	// defaults do not apply without a model.
	return newMigration(c, name, mode, table, NewFields(fields), true, c.SoftDeletes), nil
}

func newMigration(c *Config, name string, mode MigrationMode, table string, fields []*Field, timestamps, softDeletes bool) *Migration {
	m := &Migration{
		Name:           name,
		Mode:           mode,
		Table:          table,
		PrimaryKey:     c.PrimaryKey,
		PrimaryKeyType: c.PrimaryKeyType,
		Fields:         fields,
		Timestamps:     timestamps,
		SoftDeletes:    softDeletes,
	}
	for _, f := range fields {
		if f.Indexed && !f.Unique {
			m.Indexes = appendUnique(m.Indexes, f.Name)
		}
	}
	if c.MigrationTimestamps {
		m.Version = c.now().UTC().Format(VersionLayout)
	}
	return m
}

// Kind implements Request.
func (*Migration) Kind() Kind { return KindMigration }

// ArtifactName implements Request.
func (m *Migration) ArtifactName() string { return m.ID() }

// ID returns the version-prefixed name migrations are ordered and
// registered by.
func (m *Migration) ID() string {
	if m.Version == "" {
		return m.Name
	}
	return m.Version + "_" + m.Name
}

// TypeName returns the Go type name of the migration.
func (m *Migration) TypeName() string {
	return naming.Pascal(m.Name) + m.Version
}

// DefaultSeedCount is the number of records a seeder inserts by default.
const DefaultSeedCount = 10

// Seeder requests a data seeder.
type Seeder struct {
	// Name is the Go type name, ending in Seeder.
	Name string
	// Model is the seeded model, empty for a basic seeder.
	Model string
	Count int
}

// NewSeeder creates a seeder request. A non-positive count falls back to
// DefaultSeedCount.
func NewSeeder(name, model string, count int) (*Seeder, error) {
	name = withSuffix(name, "Seeder")
	if name == "" {
		return nil, NewGenerationError(KindSeeder, "", "seeder name is required", ErrMissingName)
	}
	if count <= 0 {
		count = DefaultSeedCount
	}
	return &Seeder{Name: name, Model: naming.Pascal(strings.TrimSpace(model)), Count: count}, nil
}

// Kind implements Request.
func (*Seeder) Kind() Kind { return KindSeeder }

// ArtifactName implements Request.
func (s *Seeder) ArtifactName() string { return s.Name }

// Factory requests a test-data factory.
type Factory struct {
	// Name is the Go type name, ending in Factory.
	Name string
	// Model is the built model.
	Model string
}

// NewFactory creates a factory request. The model defaults to the factory
// name without its suffix.
func NewFactory(name, model string) (*Factory, error) {
	name = withSuffix(name, "Factory")
	if name == "" {
		return nil, NewGenerationError(KindFactory, "", "factory name is required", ErrMissingName)
	}
	model = naming.Pascal(strings.TrimSpace(model))
	if model == "" {
		model = strings.TrimSuffix(name, "Factory")
	}
	if model == "" {
		return nil, NewGenerationError(KindFactory, name, "", ErrMissingModel)
	}
	return &Factory{Name: name, Model: model}, nil
}

// Kind implements Request.
func (*Factory) Kind() Kind { return KindFactory }

// ArtifactName implements Request.
func (f *Factory) ArtifactName() string { return f.Name }

// HandlerMode selects the operations a handler exposes.
type HandlerMode uint8

// Handler modes.
const (
	// HandlerBasic has a single placeholder method.
	HandlerBasic HandlerMode = iota
	// HandlerModel passes CRUD calls through to the model.
	HandlerModel
	// HandlerResource serves full CRUD over HTTP.
	HandlerResource
)

// String returns the mode name.
func (m HandlerMode) String() string {
	switch m {
	case HandlerModel:
		return "model"
	case HandlerResource:
		return "resource"
	default:
		return "basic"
	}
}

// Handler requests a request handler.
type Handler struct {
	// Name is the Go type name, ending in Handler or Controller.
	Name  string
	Model string
	Mode  HandlerMode
	// Tokenize adds a show-by-token operation to resource handlers.
	Tokenize bool
}

// NewHandler creates a handler request. A resource handler without a model
// fails with ErrMissingModel; otherwise the mode follows from the model.
func NewHandler(name, model string, resource, tokenize bool) (*Handler, error) {
	name = strings.TrimSpace(name)
	if !strings.HasSuffix(name, "Controller") && !strings.HasSuffix(name, "Handler") {
		name = withSuffix(name, "Handler")
	} else {
		name = naming.Pascal(name)
	}
	if name == "" {
		return nil, NewGenerationError(KindHandler, "", "handler name is required", ErrMissingName)
	}
	h := &Handler{Name: name, Model: naming.Pascal(strings.TrimSpace(model)), Tokenize: tokenize}
	switch {
	case resource && h.Model == "":
		return nil, NewGenerationError(KindHandler, name, "", ErrMissingModel)
	case resource:
		h.Mode = HandlerResource
	case h.Model != "":
		h.Mode = HandlerModel
	}
	return h, nil
}

// Kind implements Request.
func (*Handler) Kind() Kind { return KindHandler }

// ArtifactName implements Request.
func (h *Handler) ArtifactName() string { return h.Name }

// withSuffix returns the Pascal name with suffix appended unless present.
// An empty name stays empty.
func withSuffix(name, suffix string) string {
	name = naming.Pascal(strings.TrimSpace(name))
	if name == "" || strings.HasSuffix(name, suffix) {
		return name
	}
	return name + suffix
}
