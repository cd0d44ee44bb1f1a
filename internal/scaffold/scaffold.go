// Package scaffold runs generation for one project directory. It is the
// layer shared by the command line and the MCP server.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tideorm/tide/compiler/gen"
	"github.com/tideorm/tide/compiler/gen/sql"
	"github.com/tideorm/tide/compiler/load"
	"github.com/tideorm/tide/config"
	"github.com/tideorm/tide/dialect"
)

// ErrConfigExists is returned by Init when the project file is present.
var ErrConfigExists = errors.New("tide: config file already exists")

// Project is a directory holding a tide.yaml file, or using the defaults
// when it has none.
type Project struct {
	Root   string
	Config *config.Config

	logger *slog.Logger
	// opts are applied after the options of the project file.
	opts []gen.Option
}

// Open loads the project rooted at root. An empty cfgPath means
// root/tide.yaml; a missing file falls back to the defaults.
func Open(root, cfgPath string, logger *slog.Logger, opts ...gen.Option) (*Project, error) {
	if root == "" {
		root = "."
	}
	if cfgPath == "" {
		cfgPath = filepath.Join(root, config.FileName)
	}
	c, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Project{Root: root, Config: c, logger: logger, opts: opts}, nil
}

// GenConfig returns the generator configuration of the project.
func (p *Project) GenConfig() (*gen.Config, error) {
	return p.Config.GenConfig(p.Root, p.options()...)
}

func (p *Project) options() []gen.Option {
	return append([]gen.Option{gen.WithLogger(p.logger)}, p.opts...)
}

// Outcome is what one generation command produced. Dry runs fill
// Artifacts and leave Results empty.
type Outcome struct {
	Artifacts []*gen.Artifact
	Results   []*gen.Result
	Warnings  []error
}

// Paths returns the files written, or planned on a dry run, in order.
func (o *Outcome) Paths() []string {
	var paths []string
	for _, a := range o.Artifacts {
		paths = append(paths, a.Path)
		if a.HasTests() {
			paths = append(paths, a.TestPath)
		}
	}
	for _, r := range o.Results {
		paths = append(paths, r.Path)
		if r.TestPath != "" {
			paths = append(paths, r.TestPath)
		}
	}
	return paths
}

// Run renders reqs and commits them unless dryRun is set.
func (p *Project) Run(ctx context.Context, c *gen.Config, dryRun bool, reqs ...gen.Request) (*Outcome, error) {
	g := sql.NewGenerator(c)
	out := &Outcome{}
	if dryRun {
		artifacts, err := g.Plan(ctx, reqs...)
		if err != nil {
			return nil, err
		}
		out.Artifacts = artifacts
		return out, nil
	}
	results, err := g.Generate(ctx, reqs...)
	out.Results = results
	return out, err
}

// Document generates every request of a schema document.
func (p *Project) Document(ctx context.Context, doc *load.Document, dryRun bool) (*Outcome, error) {
	c, err := p.GenConfig()
	if err != nil {
		return nil, err
	}
	reqs, warnings, err := doc.Requests(c)
	if err != nil {
		return &Outcome{Warnings: warnings}, err
	}
	out, err := p.Run(ctx, c, dryRun, reqs...)
	if out == nil {
		out = &Outcome{}
	}
	out.Warnings = warnings
	return out, err
}

// Model generates one model and the companions the entity asks for.
func (p *Project) Model(ctx context.Context, e load.Entity, dryRun bool) (*Outcome, error) {
	if strings.TrimSpace(e.Name) == "" {
		return nil, gen.NewGenerationError(gen.KindModel, "", "model name is required", gen.ErrMissingName)
	}
	return p.Document(ctx, &load.Document{Entities: []load.Entity{e}}, dryRun)
}

// Migration generates one standalone migration.
func (p *Project) Migration(ctx context.Context, m load.Migration, dryRun bool) (*Outcome, error) {
	return p.Document(ctx, &load.Document{Migrations: []load.Migration{m}}, dryRun)
}

// Seeder generates one seeder. An empty model makes a basic seeder.
func (p *Project) Seeder(ctx context.Context, name, model string, count int, dryRun bool) (*Outcome, error) {
	s, err := gen.NewSeeder(name, model, count)
	if err != nil {
		return nil, err
	}
	return p.single(ctx, s, dryRun)
}

// Factory generates one factory.
func (p *Project) Factory(ctx context.Context, name, model string, dryRun bool) (*Outcome, error) {
	f, err := gen.NewFactory(name, model)
	if err != nil {
		return nil, err
	}
	return p.single(ctx, f, dryRun)
}

// Handler generates one handler.
func (p *Project) Handler(ctx context.Context, name, model string, resource, tokenize, dryRun bool) (*Outcome, error) {
	h, err := gen.NewHandler(name, model, resource, tokenize)
	if err != nil {
		return nil, err
	}
	return p.single(ctx, h, dryRun)
}

func (p *Project) single(ctx context.Context, req gen.Request, dryRun bool) (*Outcome, error) {
	c, err := p.GenConfig()
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, c, dryRun, req)
}

// Models returns the modules registered in the models index, in file
// order. A missing index lists nothing.
func (p *Project) Models() ([]string, error) {
	c, err := gen.NewConfig(append([]gen.Option{gen.WithRoot(p.Root), gen.WithDirs(p.Config.Paths)}, p.opts...)...)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(c.IndexPath(gen.KindModel))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, gen.NewIOError("read", c.IndexPath(gen.KindModel), err)
	}
	return gen.Modules(src), nil
}

// InitResult reports what Init created.
type InitResult struct {
	ConfigPath string
	// Indexes are the index files created, in kind order.
	Indexes []string
	Seeder  *gen.Result
}

// Init writes a project file for driver into root, creates every artifact
// directory with its index file and generates the default seeder. It
// fails with ErrConfigExists when root already holds a project file.
func Init(ctx context.Context, root, driver string, logger *slog.Logger, opts ...gen.Option) (*InitResult, error) {
	if root == "" {
		root = "."
	}
	if _, err := dialect.Parse(driver); err != nil {
		return nil, err
	}
	path := filepath.Join(root, config.FileName)
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	content := config.DefaultContent(driver)
	cfg, err := config.Parse([]byte(content))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, gen.NewIOError("mkdir", root, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, gen.NewIOError("write", path, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	base := append([]gen.Option{gen.WithRoot(root)}, cfg.Options()...)
	if module, err := config.ModulePath(root); err == nil {
		base = append(base, gen.WithModule(module))
	}
	base = append(base, gen.WithLogger(logger))
	c, err := gen.NewConfig(append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	g := sql.NewGenerator(c)
	res := &InitResult{ConfigPath: path}
	for _, k := range gen.Kinds() {
		entry, err := g.IndexEntry(k)
		if err != nil {
			return res, err
		}
		created, err := gen.EnsureIndex(entry)
		if err != nil {
			return res, err
		}
		if created {
			res.Indexes = append(res.Indexes, entry.Index)
		}
	}
	s, err := gen.NewSeeder(cfg.Seeder.Default, "", 0)
	if err != nil {
		return res, err
	}
	results, err := g.Generate(ctx, s)
	if err != nil {
		return res, err
	}
	res.Seeder = results[0]
	return res, nil
}
