package gen

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/tideorm/tide/dialect"
	"github.com/tideorm/tide/schema/field"
)

// Option configures code generation.
type Option func(*Config) error

// WithRoot sets the project directory.
func WithRoot(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Root", nil, "root directory cannot be empty")
		}
		c.Root = dir
		return nil
	}
}

// WithModule sets the Go module path of the project.
// For example: "github.com/org/shop".
func WithModule(module string) Option {
	return func(c *Config) error {
		if module == "" {
			return NewConfigError("Module", nil, "module path cannot be empty")
		}
		c.Module = module
		return nil
	}
}

// WithDirs sets the artifact directories. Empty entries keep their
// current value.
func WithDirs(dirs Dirs) Option {
	return func(c *Config) error {
		set := func(dst *string, v string) {
			if v != "" {
				*dst = v
			}
		}
		set(&c.Dirs.Models, dirs.Models)
		set(&c.Dirs.Migrations, dirs.Migrations)
		set(&c.Dirs.Seeders, dirs.Seeders)
		set(&c.Dirs.Factories, dirs.Factories)
		set(&c.Dirs.Handlers, dirs.Handlers)
		return nil
	}
}

// WithDriver sets the SQL dialect.
func WithDriver(d dialect.Driver) Option {
	return func(c *Config) error {
		if !d.Valid() {
			return NewConfigError("Driver", d, "unsupported driver; use postgres, mysql or sqlite")
		}
		c.Driver = d
		return nil
	}
}

// WithDriverName sets the SQL dialect by name. Aliases such as "pg" or
// "sqlite3" are accepted.
func WithDriverName(name string) Option {
	return func(c *Config) error {
		d, err := dialect.Parse(name)
		if err != nil {
			return NewConfigError("Driver", name, "unsupported driver; use postgres, mysql or sqlite")
		}
		c.Driver = d
		return nil
	}
}

// WithMigrationTable sets the bookkeeping table of applied migrations.
func WithMigrationTable(table string) Option {
	return func(c *Config) error {
		if table == "" {
			return NewConfigError("MigrationTable", nil, "migration table cannot be empty")
		}
		c.MigrationTable = table
		return nil
	}
}

// WithMigrationTimestamps toggles the timestamp prefix of migration IDs.
func WithMigrationTimestamps(enabled bool) Option {
	return func(c *Config) error {
		c.MigrationTimestamps = enabled
		return nil
	}
}

// WithPrimaryKey sets the primary key column and its logical type.
// Supported types are the integer types, string and uuid.
func WithPrimaryKey(name, typ string) Option {
	return func(c *Config) error {
		if strings.TrimSpace(name) == "" {
			return NewConfigError("PrimaryKey", nil, "primary key name cannot be empty")
		}
		info := field.NewTypeInfo(typ)
		switch info.Type {
		case field.TypeInt8, field.TypeInt16, field.TypeInt32, field.TypeInt64,
			field.TypeString, field.TypeUUID:
		default:
			return NewConfigError("PrimaryKeyType", typ, "unsupported primary key type; use an integer type, string or uuid")
		}
		c.PrimaryKey = strings.TrimSpace(name)
		c.PrimaryKeyType = info
		return nil
	}
}

// WithModelDefaults sets the default model flags.
func WithModelDefaults(timestamps, softDeletes, tokenize bool) Option {
	return func(c *Config) error {
		c.Timestamps = timestamps
		c.SoftDeletes = softDeletes
		c.Tokenize = tokenize
		return nil
	}
}

// WithTestScaffolds toggles companion _test.go files.
func WithTestScaffolds(enabled bool) Option {
	return func(c *Config) error {
		c.TestScaffolds = enabled
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithClock sets the clock migration versions are read from.
func WithClock(now func() time.Time) Option {
	return func(c *Config) error {
		if now == nil {
			return NewConfigError("Now", nil, "clock cannot be nil")
		}
		c.Now = now
		return nil
	}
}

// WithLogger sets the logger receiving generation events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithWorkers bounds parallel rendering.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
