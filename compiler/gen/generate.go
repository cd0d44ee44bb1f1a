package gen

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"

	"github.com/tideorm/tide/dialect"
	"github.com/tideorm/tide/naming"
)

// Runtime import paths used by emitted code.
const (
	tidePkg = "github.com/tideorm/tide"
	fakePkg = "github.com/tideorm/tide/fake"
)

// Generator renders requests into artifacts with a dialect and commits them.
type Generator struct {
	config *Config
	writer *Writer

	// Requires at least MinimalDialect.
	dialect MinimalDialect

	// Optional interface implementations detected at runtime.
	tests TestScaffolder
}

// NewGenerator creates a generator over the given config.
// You must call WithDialect() to set a dialect before rendering.
//
// Example:
//
//	import "github.com/tideorm/tide/compiler/gen/sql"
//
//	g := gen.NewGenerator(cfg)
//	g.WithDialect(sql.NewDialect(g))
//	results, err := g.Generate(ctx, requests...)
func NewGenerator(c *Config) *Generator {
	return &Generator{
		config: c,
		writer: NewWriter(c.logger()),
	}
}

// WithDialect sets the dialect generator. Additional capabilities are
// detected via TestScaffolder.
func (g *Generator) WithDialect(d MinimalDialect) *Generator {
	if d != nil {
		g.dialect = d
		if ts, ok := d.(TestScaffolder); ok {
			g.tests = ts
		}
	}
	return g
}

// Writer returns the writer artifacts are committed with.
func (g *Generator) Writer() *Writer {
	return g.writer
}

// Render renders one request. It never touches the filesystem.
func (g *Generator) Render(req Request) (*Artifact, error) {
	if g.dialect == nil {
		return nil, NewConfigError("Dialect", nil, "no dialect set: call WithDialect() before rendering")
	}
	if req == nil || !req.Kind().Valid() {
		return nil, NewGenerationError(0, "", "invalid request", nil)
	}
	kind, name := req.Kind(), req.ArtifactName()
	if name == "" {
		return nil, NewGenerationError(kind, "", "artifact name is required", ErrMissingName)
	}
	if importsModels(req) && g.config.Module == "" {
		return nil, NewConfigError("Module", nil, "module path is required to import "+g.config.RelDir(KindModel))
	}
	var main, test *jen.File
	entry := &RegistryEntry{Index: g.config.IndexPath(kind)}
	switch r := req.(type) {
	case *Type:
		main = g.dialect.GenModel(r)
		entry.Module = r.Label()
		entry.Export = exportLine(kind, r.Label(), r.Name)
		if g.tests != nil {
			test = g.tests.GenModelTest(r)
		}
	case *Migration:
		main = g.dialect.GenMigration(r)
		entry.Module = r.ID()
		entry.Export = exportLine(kind, r.ID(), r.TypeName())
		if g.tests != nil {
			test = g.tests.GenMigrationTest(r)
		}
	case *Seeder:
		main = g.dialect.GenSeeder(r)
		entry.Module = naming.Snake(r.Name)
		entry.Export = exportLine(kind, entry.Module, r.Name)
		if g.tests != nil {
			test = g.tests.GenSeederTest(r)
		}
	case *Factory:
		main = g.dialect.GenFactory(r)
		entry.Module = naming.Snake(r.Name)
		if g.tests != nil {
			test = g.tests.GenFactoryTest(r)
		}
	case *Handler:
		main = g.dialect.GenHandler(r)
		entry.Module = naming.Snake(r.Name)
		if g.tests != nil {
			test = g.tests.GenHandlerTest(r)
		}
	default:
		return nil, NewGenerationError(kind, name, fmt.Sprintf("unsupported request type %T", req), nil)
	}
	a := &Artifact{Kind: kind, Name: name, Path: g.config.ArtifactPath(kind, name), Entry: entry}
	var err error
	if a.Content, err = render(main); err != nil {
		return nil, NewGenerationError(kind, name, "render", err)
	}
	if test != nil && g.config.TestScaffolds {
		a.TestPath = strings.TrimSuffix(a.Path, ".go") + "_test.go"
		if a.TestContent, err = render(test); err != nil {
			return nil, NewGenerationError(kind, name, "render tests", err)
		}
	}
	if entry.Header, err = render(g.dialect.GenIndex(kind)); err != nil {
		return nil, NewGenerationError(kind, name, "render index", err)
	}
	g.config.logger().Debug("artifact rendered", "kind", kind, "name", name, "path", a.Path)
	return a, nil
}

// IndexEntry returns the entry creating the index file of kind k with its
// header. The entry registers no module; pass it to EnsureIndex.
func (g *Generator) IndexEntry(k Kind) (*RegistryEntry, error) {
	if g.dialect == nil {
		return nil, NewConfigError("Dialect", nil, "no dialect set: call WithDialect() before rendering")
	}
	if !k.Valid() {
		return nil, NewGenerationError(k, "", "invalid kind", nil)
	}
	header, err := render(g.dialect.GenIndex(k))
	if err != nil {
		return nil, NewGenerationError(k, IndexFile, "render index", err)
	}
	return &RegistryEntry{Index: g.config.IndexPath(k), Header: header}, nil
}

// Plan renders every request in parallel and returns the artifacts in
// request order.
func (g *Generator) Plan(ctx context.Context, reqs ...Request) ([]*Artifact, error) {
	sequence(reqs)
	artifacts := make([]*Artifact, len(reqs))
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(max(g.config.Workers, 1))
	for i, req := range reqs {
		errg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			a, err := g.Render(req)
			if err != nil {
				return err
			}
			artifacts[i] = a
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// sequence gives the versioned migrations of a batch strictly increasing
// versions in request order. Migrations created within the same second
// would otherwise be applied in name order.
func sequence(reqs []Request) {
	var last time.Time
	for _, req := range reqs {
		m, ok := req.(*Migration)
		if !ok || m.Version == "" {
			continue
		}
		v, err := time.Parse(VersionLayout, m.Version)
		if err != nil {
			continue
		}
		if !last.IsZero() && !v.After(last) {
			v = last.Add(time.Second)
			m.Version = v.Format(VersionLayout)
		}
		last = v
	}
}

// Generate renders every request and commits the artifacts one by one in
// request order. It stops at the first failure; artifacts committed before
// it stay on disk.
func (g *Generator) Generate(ctx context.Context, reqs ...Request) ([]*Result, error) {
	artifacts, err := g.Plan(ctx, reqs...)
	if err != nil {
		return nil, err
	}
	results := make([]*Result, 0, len(artifacts))
	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := g.writer.Commit(a)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// =============================================================================
// GeneratorHelper interface implementation
// =============================================================================

// NewFile creates a new Jennifer file with the standard header comment.
func (g *Generator) NewFile(pkg string) *jen.File {
	f := jen.NewFile(pkg)
	if g.config.Header != "" {
		f.HeaderComment(g.config.Header)
	}
	return f
}

// GoType returns the Jennifer code for a field's Go type.
func (g *Generator) GoType(f *Field) jen.Code {
	return goType(f.Type, f.Nullable)
}

// BaseType returns the Jennifer code for a field's base type (without pointer).
func (g *Generator) BaseType(f *Field) jen.Code {
	return baseType(f.Type)
}

// IDType returns the Jennifer code for the primary key type.
func (g *Generator) IDType() jen.Code {
	return baseType(g.config.PrimaryKeyType)
}

// TidePkg returns the import path of the tide runtime package.
func (g *Generator) TidePkg() string {
	return tidePkg
}

// FakePkg returns the import path of the fake-value package.
func (g *Generator) FakePkg() string {
	return fakePkg
}

// PkgName returns the package name of an artifact kind.
func (g *Generator) PkgName(k Kind) string {
	return g.config.PkgName(k)
}

// PkgPath returns the import path of an artifact kind.
func (g *Generator) PkgPath(k Kind) string {
	return g.config.PkgPath(k)
}

// Driver returns the SQL dialect of migrations.
func (g *Generator) Driver() dialect.Driver {
	return g.config.Driver
}

// Config returns the generation config.
func (g *Generator) Config() *Config {
	return g.config
}

// Verify Generator implements GeneratorHelper at compile time.
var _ GeneratorHelper = (*Generator)(nil)

// render renders a Jennifer file into memory.
func render(f *jen.File) ([]byte, error) {
	if f == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// exportLine returns the init line registering value under token in the
// typed registry of kind k, or an empty string for kinds without one.
//
//	func init() { Models.Add("user", User{}) }
func exportLine(k Kind, token, typeName string) string {
	v := k.RegistryVar()
	if v == "" {
		return ""
	}
	return fmt.Sprintf("func init() { %s.Add(%q, %s{}) }", v, token, typeName)
}

// importsModels reports if the artifact of req imports the models package.
func importsModels(req Request) bool {
	switch r := req.(type) {
	case *Seeder:
		return r.Model != ""
	case *Factory:
		return true
	case *Handler:
		return r.Model != ""
	default:
		return false
	}
}
