// Package load reads YAML schema files describing several entities and
// turns them into generation requests.
//
//	root: ..
//	entities:
//	  - name: User
//	    fields: [name:string, email:string:unique]
//	    relations: [posts:has_many:Post]
//	    migration: true
//	    factory: true
//	    handler: resource
//	migrations:
//	  - name: add_phone_to_users
//	    table: users
//	    fields: [phone:string:nullable]
package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tideorm/tide/compiler/gen"
	"github.com/tideorm/tide/schema"
	"github.com/tideorm/tide/schema/field"
)

// Handler modes of an entity.
const (
	HandlerNone     = ""
	HandlerBasic    = "basic"
	HandlerModel    = "model"
	HandlerResource = "resource"
)

// Document is a schema file.
type Document struct {
	// Root is the project directory. Relative roots are resolved against
	// the directory of the file by File.
	Root       string      `yaml:"root,omitempty"`
	Entities   []Entity    `yaml:"entities"`
	Migrations []Migration `yaml:"migrations,omitempty"`
}

// Entity describes one model and its companion artifacts.
type Entity struct {
	Name      string   `yaml:"name"`
	Table     string   `yaml:"table,omitempty"`
	Fields    []string `yaml:"fields,omitempty"`
	Relations []string `yaml:"relations,omitempty"`

	Translatable []string `yaml:"translatable,omitempty"`
	Files        []string `yaml:"files,omitempty"`
	MultiFiles   []string `yaml:"multi_files,omitempty"`
	Indexes      []string `yaml:"indexes,omitempty"`
	Unique       []string `yaml:"unique,omitempty"`
	Nullable     []string `yaml:"nullable,omitempty"`

	// Unset flags take the configured model defaults.
	SoftDeletes *bool `yaml:"soft_deletes,omitempty"`
	Timestamps  *bool `yaml:"timestamps,omitempty"`
	Tokenize    *bool `yaml:"tokenize,omitempty"`

	Migration bool `yaml:"migration,omitempty"`
	Seeder    bool `yaml:"seeder,omitempty"`
	// SeedCount is the number of records the seeder inserts.
	SeedCount int    `yaml:"seed_count,omitempty"`
	Factory   bool   `yaml:"factory,omitempty"`
	Handler   string `yaml:"handler,omitempty"`
}

// Migration describes a standalone migration. Create names a table to
// create, Table one to alter; with neither the migration is empty.
type Migration struct {
	Name   string   `yaml:"name"`
	Create string   `yaml:"create,omitempty"`
	Table  string   `yaml:"table,omitempty"`
	Fields []string `yaml:"fields,omitempty"`
}

// File reads and parses the schema file at path.
func File(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tide: read schema file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Root != "" && !filepath.IsAbs(doc.Root) {
		doc.Root = filepath.Join(filepath.Dir(path), doc.Root)
	}
	return doc, nil
}

// Parse decodes a schema document. Unknown keys are errors.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	doc := &Document{}
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("tide: parse schema file: %w", err)
	}
	if len(doc.Entities) == 0 && len(doc.Migrations) == 0 {
		return nil, errors.New("tide: schema file declares no entities or migrations")
	}
	seen := make(map[string]bool)
	for i, e := range doc.Entities {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("tide: entity %d has no name", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("tide: entity %s declared twice", name)
		}
		seen[name] = true
		switch e.Handler {
		case HandlerNone, HandlerBasic, HandlerModel, HandlerResource:
		default:
			return nil, fmt.Errorf("tide: entity %s: unknown handler %q; use basic, model or resource", name, e.Handler)
		}
	}
	return doc, nil
}

// Input returns the schema input of the entity, with unset flags taken
// from c.
func (e *Entity) Input(c *gen.Config) schema.Input {
	flag := func(v *bool, def bool) bool {
		if v == nil {
			return def
		}
		return *v
	}
	join := func(s []string) string { return strings.Join(s, ",") }
	return schema.Input{
		Name:          e.Name,
		Table:         e.Table,
		Fields:        join(e.Fields),
		Relations:     join(e.Relations),
		Translatable:  join(e.Translatable),
		Files:         join(e.Files),
		MultiFiles:    join(e.MultiFiles),
		Indexes:       join(e.Indexes),
		UniqueIndexes: join(e.Unique),
		Nullable:      join(e.Nullable),
		SoftDeletes:   flag(e.SoftDeletes, c.SoftDeletes),
		Timestamps:    flag(e.Timestamps, c.Timestamps),
		Tokenize:      flag(e.Tokenize, c.Tokenize),
	}
}

// Requests resolves the document into generation requests: per entity the
// model, then its migration, seeder, factory and handler, followed by the
// standalone migrations. Malformed field and relation tokens are dropped
// and returned as warnings.
func (d *Document) Requests(c *gen.Config) ([]gen.Request, []error, error) {
	var (
		reqs     []gen.Request
		warnings []error
	)
	for i := range d.Entities {
		e := &d.Entities[i]
		desc, warns := schema.Parse(e.Input(c))
		for _, w := range warns {
			warnings = append(warnings, fmt.Errorf("%s: %w", desc.Name, w))
		}
		t, err := gen.NewType(c, desc)
		if err != nil {
			return nil, warnings, err
		}
		reqs = append(reqs, t)
		if e.Migration {
			reqs = append(reqs, t.CreateMigration())
		}
		if e.Seeder {
			s, err := gen.NewSeeder(t.Name, t.Name, e.SeedCount)
			if err != nil {
				return nil, warnings, err
			}
			reqs = append(reqs, s)
		}
		if e.Factory {
			f, err := gen.NewFactory(t.Name, t.Name)
			if err != nil {
				return nil, warnings, err
			}
			reqs = append(reqs, f)
		}
		if e.Handler != HandlerNone {
			model := t.Name
			if e.Handler == HandlerBasic {
				model = ""
			}
			h, err := gen.NewHandler(t.Name, model, e.Handler == HandlerResource, t.Tokenize)
			if err != nil {
				return nil, warnings, err
			}
			reqs = append(reqs, h)
		}
	}
	for _, m := range d.Migrations {
		fields, warns := field.ParseList(strings.Join(m.Fields, ","))
		for _, w := range warns {
			warnings = append(warnings, fmt.Errorf("%s: %w", m.Name, w))
		}
		mode, table := gen.MigrationEmpty, ""
		switch {
		case m.Create != "":
			mode, table = gen.MigrationCreate, m.Create
		case m.Table != "":
			mode, table = gen.MigrationAlter, m.Table
		}
		req, err := gen.NewMigration(c, m.Name, mode, table, fields)
		if err != nil {
			return nil, warnings, err
		}
		reqs = append(reqs, req)
	}
	return reqs, warnings, nil
}
