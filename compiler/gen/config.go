package gen

import (
	"log/slog"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/tideorm/tide/dialect"
	"github.com/tideorm/tide/naming"
	"github.com/tideorm/tide/schema/field"
)

// IndexFile is the name of the per-kind registry file.
const IndexFile = "mod.go"

// Dirs holds the artifact directories, relative to Config.Root.
type Dirs struct {
	Models     string `yaml:"models"`
	Migrations string `yaml:"migrations"`
	Seeders    string `yaml:"seeders"`
	Factories  string `yaml:"factories"`
	Handlers   string `yaml:"handlers"`
}

// DefaultDirs returns the default project layout.
func DefaultDirs() Dirs {
	return Dirs{
		Models:     "internal/models",
		Migrations: "internal/migrations",
		Seeders:    "internal/seeders",
		Factories:  "internal/factories",
		Handlers:   "internal/handlers",
	}
}

// Config holds the code generation configuration.
type Config struct {
	// Root is the project directory every artifact path is resolved against.
	Root string

	// Module is the Go module path of the project, used to import generated
	// packages from each other. For example: "github.com/org/shop".
	Module string

	// Dirs holds the directory of each artifact kind.
	Dirs Dirs

	// Driver selects the SQL dialect of emitted migrations.
	Driver dialect.Driver

	// MigrationTable is the bookkeeping table of applied migrations.
	MigrationTable string

	// MigrationTimestamps prefixes migration IDs with a UTC timestamp.
	MigrationTimestamps bool

	// PrimaryKey is the primary key column of generated models.
	PrimaryKey string

	// PrimaryKeyType is the logical type of the primary key.
	PrimaryKeyType field.TypeInfo

	// Timestamps, SoftDeletes and Tokenize are the model defaults applied
	// by callers building schemas from partial input.
	Timestamps  bool
	SoftDeletes bool
	Tokenize    bool

	// TestScaffolds enables companion _test.go files.
	TestScaffolds bool

	// Header is the comment placed at the top of each generated file.
	Header string

	// Now is the clock used for migration versions.
	Now func() time.Time

	// Logger receives generation events.
	Logger *slog.Logger

	// Workers bounds parallel rendering.
	Workers int
}

// defaultHeader marks generated files.
const defaultHeader = "Code generated by tide. You may edit this file."

// NewConfig creates a new Config with the given options applied over the
// defaults.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Root:                ".",
		Dirs:                DefaultDirs(),
		Driver:              dialect.Postgres,
		MigrationTable:      "_tide_migrations",
		MigrationTimestamps: true,
		PrimaryKey:          "id",
		PrimaryKeyType:      field.NewTypeInfo("i64"),
		Timestamps:          true,
		TestScaffolds:       true,
		Header:              defaultHeader,
		Now:                 time.Now,
		Logger:              slog.Default(),
		Workers:             runtime.GOMAXPROCS(0),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig is like NewConfig but panics on error.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// RelDir returns the configured directory of kind k relative to Root.
func (c *Config) RelDir(k Kind) string {
	switch k {
	case KindModel:
		return c.Dirs.Models
	case KindMigration:
		return c.Dirs.Migrations
	case KindSeeder:
		return c.Dirs.Seeders
	case KindFactory:
		return c.Dirs.Factories
	case KindHandler:
		return c.Dirs.Handlers
	default:
		return ""
	}
}

// Dir returns the directory of kind k.
func (c *Config) Dir(k Kind) string {
	return filepath.Join(c.Root, c.RelDir(k))
}

// IndexPath returns the registry file of kind k.
func (c *Config) IndexPath(k Kind) string {
	return filepath.Join(c.Dir(k), IndexFile)
}

// ArtifactPath returns the file an artifact named name of kind k lives in.
// Migrations are named by their ID; every other kind by snake_case name.
func (c *Config) ArtifactPath(k Kind, name string) string {
	if k != KindMigration {
		name = naming.Snake(name)
	}
	return filepath.Join(c.Dir(k), name+".go")
}

// PkgPath returns the import path of the package holding kind k.
func (c *Config) PkgPath(k Kind) string {
	return path.Join(c.Module, filepath.ToSlash(c.RelDir(k)))
}

// PkgName returns the package name of the package holding kind k.
func (c *Config) PkgName(k Kind) string {
	base := path.Base(filepath.ToSlash(c.RelDir(k)))
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, base)
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		return k.String() + "s"
	}
	return name
}

// logger returns the configured logger or the default one.
func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// now returns the configured clock reading.
func (c *Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
