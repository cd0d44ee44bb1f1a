package sql

import (
	"context"

	"github.com/dave/jennifer/jen"

	"github.com/tideorm/tide/compiler/gen"
)

// Dialect emits tide artifacts for SQL databases.
type Dialect struct {
	helper gen.GeneratorHelper
}

// NewDialect creates a SQL dialect over the generator helper.
func NewDialect(helper gen.GeneratorHelper) *Dialect {
	return &Dialect{helper: helper}
}

// Compile-time checks.
var (
	_ gen.MinimalDialect = (*Dialect)(nil)
	_ gen.TestScaffolder = (*Dialect)(nil)
)

// Name returns the dialect name.
func (*Dialect) Name() string {
	return "sql"
}

// NewGenerator returns a generator wired with the SQL dialect.
func NewGenerator(c *gen.Config) *gen.Generator {
	g := gen.NewGenerator(c)
	g.WithDialect(NewDialect(g))
	return g
}

// Generate is a convenience function that renders and commits requests
// with the SQL dialect.
//
// Example:
//
//	import "github.com/tideorm/tide/compiler/gen/sql"
//	results, err := sql.Generate(ctx, cfg, user, user.CreateMigration())
func Generate(ctx context.Context, c *gen.Config, reqs ...gen.Request) ([]*gen.Result, error) {
	if c == nil {
		return nil, gen.NewConfigError("Config", nil, "missing config")
	}
	return NewGenerator(c).Generate(ctx, reqs...)
}

// tide returns a qualified identifier of the runtime package.
func (d *Dialect) tide(name string) *jen.Statement {
	return jen.Qual(d.helper.TidePkg(), name)
}

// model returns a qualified identifier of the models package.
func (d *Dialect) model(name string) *jen.Statement {
	return jen.Qual(d.helper.PkgPath(gen.KindModel), name)
}

// ctxParam is the "ctx context.Context" parameter.
func ctxParam() *jen.Statement {
	return jen.Id("ctx").Qual("context", "Context")
}

// dbParam is the "db tide.Executor" parameter.
func (d *Dialect) dbParam() *jen.Statement {
	return jen.Id("db").Add(d.tide("Executor"))
}
