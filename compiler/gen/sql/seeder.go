package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/tideorm/tide/compiler/gen"
	"github.com/tideorm/tide/naming"
)

// GenSeeder generates a seeder. A model-backed seeder inserts Count
// placeholder records and accepts a builder through RunWithFactory; a
// basic seeder has an empty Run.
func (d *Dialect) GenSeeder(s *gen.Seeder) *jen.File {
	f := d.helper.NewFile(d.helper.PkgName(gen.KindSeeder))
	if s.Model == "" {
		f.Commentf("%s seeds application data.", s.Name)
		f.Type().Id(s.Name).Struct()
		f.Line()
		f.Comment("Run inserts the seed data.")
		f.Func().Params(jen.Id(s.Name)).Id("Run").Params(ctxParam(), d.dbParam()).Error().Block(
			jen.Comment("Insert records or call other seeders here."),
			jen.Qual("log/slog", "InfoContext").Call(jen.Id("ctx"), jen.Lit("seeded"), jen.Lit("seeder"), jen.Lit(s.Name)),
			jen.Return(jen.Nil()),
		)
		return f
	}

	count := s.Name + "Count"
	label := naming.Snake(s.Model)
	f.Commentf("%s seeds the %s table.", s.Name, naming.Plural(label))
	f.Type().Id(s.Name).Struct()

	f.Line()
	f.Commentf("%s is the number of records Run inserts.", count)
	f.Const().Id(count).Op("=").Lit(s.Count)

	f.Line()
	f.Commentf("Run inserts %s placeholder records.", count)
	f.Func().Params(jen.Id(s.Name)).Id("Run").Params(ctxParam(), d.dbParam()).Error().Block(
		jen.For(jen.Id("i").Op(":=").Range().Id(count)).Block(
			jen.Comment("Set the fields of each record."),
			jen.Var().Id("record").Add(d.model(s.Model)),
			d.insertRecord(label),
		),
		jen.Qual("log/slog", "InfoContext").Call(jen.Id("ctx"), jen.Lit("seeded"), jen.Lit("seeder"), jen.Lit(s.Name), jen.Lit("count"), jen.Id(count)),
		jen.Return(jen.Nil()),
	)

	f.Line()
	f.Comment("RunWithFactory inserts n records built by build.")
	f.Func().Params(jen.Id(s.Name)).Id("RunWithFactory").Params(
		ctxParam(), d.dbParam(), jen.Id("n").Int(),
		jen.Id("build").Func().Params(jen.Id("i").Int()).Add(d.model(s.Model)),
	).Error().Block(
		jen.For(jen.Id("i").Op(":=").Range().Id("n")).Block(
			jen.Id("record").Op(":=").Id("build").Call(jen.Id("i")),
			d.insertRecord(label),
		),
		jen.Qual("log/slog", "InfoContext").Call(jen.Id("ctx"), jen.Lit("seeded"), jen.Lit("seeder"), jen.Lit(s.Name), jen.Lit("count"), jen.Id("n")),
		jen.Return(jen.Nil()),
	)
	return f
}

// insertRecord inserts the "record" variable, wrapping errors with the
// loop index.
func (d *Dialect) insertRecord(label string) jen.Code {
	return jen.If(
		jen.Err().Op(":=").Add(d.tide("Insert")).Call(jen.Id("ctx"), jen.Id("db"), jen.Op("&").Id("record")),
		jen.Err().Op("!=").Nil(),
	).Block(
		jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit("seed "+label+" %d: %w"), jen.Id("i"), jen.Err())),
	)
}
