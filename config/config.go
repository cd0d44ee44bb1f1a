// Package config loads the tide.yaml project file and turns it into code
// generation options.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"

	"github.com/tideorm/tide/compiler/gen"
	"github.com/tideorm/tide/dialect"
)

// FileName is the default name of the project file.
const FileName = "tide.yaml"

// ErrNoConfig is returned by Load when the project file does not exist.
var ErrNoConfig = errors.New("tide: config file not found; run 'tide init' to create one")

// Config is the content of tide.yaml.
type Config struct {
	Project Project `yaml:"project"`
	// Module is the Go module path of the project. When empty it is read
	// from the go.mod file next to the project file.
	Module    string    `yaml:"module,omitempty"`
	Database  Database  `yaml:"database"`
	Paths     gen.Dirs  `yaml:"paths"`
	Migration Migration `yaml:"migration"`
	Seeder    Seeder    `yaml:"seeder"`
	Model     Model     `yaml:"model"`
	Generate  Generate  `yaml:"generate"`
}

// Project describes the application.
type Project struct {
	Name string `yaml:"name"`
	// Environment is development, production or test.
	Environment string `yaml:"environment"`
}

// Database holds the connection settings. String settings expand ${VAR}
// and $VAR references to environment variables; unset variables are kept
// as written.
type Database struct {
	Driver     string `yaml:"driver"`
	Host       string `yaml:"host"`
	Port       int    `yaml:"port,omitempty"`
	Database   string `yaml:"database,omitempty"`
	Username   string `yaml:"username,omitempty"`
	Password   string `yaml:"password,omitempty"`
	URL        string `yaml:"url,omitempty"`
	SQLitePath string `yaml:"sqlite_path,omitempty"`
	PoolSize   int    `yaml:"pool_size"`
	// Timeout is the connection timeout in seconds.
	Timeout int `yaml:"timeout"`
}

// Migration configures migration generation.
type Migration struct {
	Table      string `yaml:"table"`
	Timestamps bool   `yaml:"timestamps"`
}

// Seeder configures seeder generation.
type Seeder struct {
	// Default is the root seeder created by init.
	Default string `yaml:"default_seeder"`
}

// Model holds the defaults of generated models.
type Model struct {
	Timestamps     bool   `yaml:"timestamps"`
	SoftDeletes    bool   `yaml:"soft_deletes"`
	Tokenize       bool   `yaml:"tokenize"`
	PrimaryKey     string `yaml:"primary_key"`
	PrimaryKeyType string `yaml:"primary_key_type"`
}

// Generate configures the generator output.
type Generate struct {
	TestScaffolds bool `yaml:"test_scaffolds"`
}

// Default returns the default configuration.
func Default() *Config {
	env := os.Getenv("TIDE_ENV")
	if env == "" {
		env = "development"
	}
	return &Config{
		Project: Project{Name: "tide-project", Environment: env},
		Database: Database{
			Driver:   "postgres",
			Host:     "localhost",
			PoolSize: 5,
			Timeout:  30,
		},
		Paths:     gen.DefaultDirs(),
		Migration: Migration{Table: "_tide_migrations", Timestamps: true},
		Seeder:    Seeder{Default: "DatabaseSeeder"},
		Model: Model{
			Timestamps:     true,
			PrimaryKey:     "id",
			PrimaryKeyType: "i64",
		},
		Generate: Generate{TestScaffolds: true},
	}
}

// Parse decodes a project file over the defaults.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("tide: parse config: %w", err)
	}
	c.Database.expand()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the project file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoConfig, path)
	}
	if err != nil {
		return nil, fmt.Errorf("tide: read config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadOrDefault is like Load but returns the defaults when the file does
// not exist.
func LoadOrDefault(path string) (*Config, error) {
	c, err := Load(path)
	if errors.Is(err, ErrNoConfig) {
		return Default(), nil
	}
	return c, err
}

// Validate checks the settings that cannot be checked by the generator
// options.
func (c *Config) Validate() error {
	if _, err := dialect.Parse(c.Database.Driver); err != nil {
		return err
	}
	if c.Database.PoolSize < 0 || c.Database.Timeout < 0 {
		return errors.New("tide: pool_size and timeout cannot be negative")
	}
	return nil
}

// IsProduction reports if the project runs in production.
func (c *Config) IsProduction() bool {
	return c.Project.Environment == "production"
}

// Options returns the generator options the file describes.
func (c *Config) Options() []gen.Option {
	opts := []gen.Option{
		gen.WithDriverName(c.Database.Driver),
		gen.WithDirs(c.Paths),
		gen.WithMigrationTable(c.Migration.Table),
		gen.WithMigrationTimestamps(c.Migration.Timestamps),
		gen.WithPrimaryKey(c.Model.PrimaryKey, c.Model.PrimaryKeyType),
		gen.WithModelDefaults(c.Model.Timestamps, c.Model.SoftDeletes, c.Model.Tokenize),
		gen.WithTestScaffolds(c.Generate.TestScaffolds),
	}
	if c.Module != "" {
		opts = append(opts, gen.WithModule(c.Module))
	}
	return opts
}

// GenConfig builds the generator configuration of the project rooted at
// root. The module path is read from root/go.mod unless the file sets
// one. Extra options are applied last.
func (c *Config) GenConfig(root string, extra ...gen.Option) (*gen.Config, error) {
	opts := append([]gen.Option{gen.WithRoot(root)}, c.Options()...)
	if c.Module == "" {
		module, err := ModulePath(root)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gen.WithModule(module))
	}
	return gen.NewConfig(append(opts, extra...)...)
}

// ModulePath returns the module path declared in root/go.mod.
func ModulePath(root string) (string, error) {
	path := filepath.Join(root, "go.mod")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("tide: read module path: %w", err)
	}
	module := modfile.ModulePath(data)
	if module == "" {
		return "", fmt.Errorf("tide: no module directive in %s", path)
	}
	return module, nil
}

// ConnectionURL returns the database URL. An explicit url wins; otherwise
// the URL is built from the individual settings of the driver.
func (d Database) ConnectionURL() (string, error) {
	if d.URL != "" {
		return d.URL, nil
	}
	drv, err := dialect.Parse(d.Driver)
	if err != nil {
		return "", err
	}
	or := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	port := func(def int) string {
		if d.Port == 0 {
			return strconv.Itoa(def)
		}
		return strconv.Itoa(d.Port)
	}
	userinfo := func(def string) string {
		if d.Password == "" {
			return or(d.Username, def)
		}
		return or(d.Username, def) + ":" + d.Password
	}
	switch drv {
	case dialect.SQLite:
		return "sqlite://" + or(d.SQLitePath, "database.db"), nil
	case dialect.Postgres:
		return fmt.Sprintf("postgres://%s@%s:%s/%s", userinfo("postgres"), d.Host, port(5432), or(d.Database, "tide")), nil
	case dialect.MySQL:
		return fmt.Sprintf("mysql://%s@%s:%s/%s", userinfo("root"), d.Host, port(3306), or(d.Database, "tide")), nil
	default:
		panic(fmt.Sprintf("config: unknown driver %v", drv))
	}
}

var envRef = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Z_][A-Z0-9_]*)`)

// expandEnv replaces environment references in s. Unset variables are
// left as written.
func expandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		m := envRef.FindStringSubmatch(ref)
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return ref
	})
}

func (d *Database) expand() {
	for _, s := range []*string{&d.Host, &d.Database, &d.Username, &d.Password, &d.URL, &d.SQLitePath} {
		*s = expandEnv(*s)
	}
}
