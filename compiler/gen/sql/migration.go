package sql

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/tideorm/tide/compiler/gen"
)

// GenMigration generates a migration type with Name, Up and Down methods.
// Empty migrations hold placeholders and execute nothing.
func (d *Dialect) GenMigration(m *gen.Migration) *jen.File {
	f := d.helper.NewFile(d.helper.PkgName(gen.KindMigration))
	name := m.TypeName()
	up, down := Plan(d.helper.Driver(), m)

	switch m.Mode {
	case gen.MigrationCreate:
		f.Commentf("%s creates the %s table.", name, m.Table)
	case gen.MigrationAlter:
		f.Commentf("%s alters the %s table.", name, m.Table)
	default:
		f.Commentf("%s is the %s migration.", name, m.Name)
	}
	f.Type().Id(name).Struct()

	f.Line()
	f.Comment("Name returns the migration ID.")
	f.Func().Params(jen.Id(name)).Id("Name").Params().String().Block(
		jen.Return(jen.Lit(m.ID())),
	)

	f.Line()
	f.Comment("Up applies the migration.")
	f.Func().Params(jen.Id(name)).Id("Up").Params(ctxParam(), d.dbParam()).Error().Block(
		d.execBody(up, "Write the statements that apply this migration.")...,
	)

	f.Line()
	f.Comment("Down reverts the migration.")
	f.Func().Params(jen.Id(name)).Id("Down").Params(ctxParam(), d.dbParam()).Error().Block(
		d.execBody(down, "Write the statements that revert Up.")...,
	)
	return f
}

// execBody returns a body executing stmts in order, or a placeholder
// returning nil when there are none.
func (d *Dialect) execBody(stmts []string, placeholder string) []jen.Code {
	if len(stmts) == 0 {
		return []jen.Code{
			jen.Comment(placeholder),
			jen.Comment(`_, err := db.ExecContext(ctx, "...")`),
			jen.Return(jen.Nil()),
		}
	}
	args := []jen.Code{jen.Id("ctx"), jen.Id("db")}
	for _, s := range stmts {
		args = append(args, sqlLit(s))
	}
	return []jen.Code{jen.Return(d.tide("Exec").Call(args...))}
}

// sqlLit returns a statement as a raw string literal, or a quoted one when
// it contains a backtick.
func sqlLit(s string) *jen.Statement {
	if strings.Contains(s, "`") {
		return jen.Lit(s)
	}
	return jen.Op("`" + s + "`")
}
