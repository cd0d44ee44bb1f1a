package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/tideorm/tide/compiler/gen"
	"github.com/tideorm/tide/naming"
)

// GenFactory generates a factory building placeholder records of a model,
// with and without saving, and fake-value helpers for the definition.
func (d *Dialect) GenFactory(fc *gen.Factory) *jen.File {
	f := d.helper.NewFile(d.helper.PkgName(gen.KindFactory))
	model := func() *jen.Statement { return d.model(fc.Model) }
	recv := func() *jen.Statement { return jen.Id("f").Id(fc.Name) }
	label := naming.Snake(fc.Model)
	fake := func(name string) *jen.Statement { return jen.Qual(d.helper.FakePkg(), name) }

	f.Commentf("%s builds %s records for tests and seeding.", fc.Name, fc.Model)
	f.Type().Id(fc.Name).Struct()

	f.Line()
	f.Commentf("Definition returns a %s with default values.", fc.Model)
	f.Func().Params(jen.Id(fc.Name)).Id("Definition").Params().Add(model()).Block(
		jen.Comment("Set default field values, for example:"),
		jen.Comment(""),
		jen.Comment("\tName:  fake.Name(),"),
		jen.Comment("\tEmail: fake.Email(\""+label+"\"),"),
		jen.Return(model().Values()),
	)

	f.Line()
	f.Commentf("Make returns a %s without saving it.", fc.Model)
	f.Func().Params(recv()).Id("Make").Params().Add(model()).Block(
		jen.Return(jen.Id("f").Dot("Definition").Call()),
	)

	f.Line()
	f.Commentf("MakeMany returns n %s records without saving them.", fc.Model)
	f.Func().Params(recv()).Id("MakeMany").Params(jen.Id("n").Int()).Index().Add(model()).Block(
		jen.Id("records").Op(":=").Make(jen.Index().Add(model()), jen.Id("n")),
		jen.For(jen.Id("i").Op(":=").Range().Id("records")).Block(
			jen.Id("records").Index(jen.Id("i")).Op("=").Id("f").Dot("Definition").Call(),
		),
		jen.Return(jen.Id("records")),
	)

	f.Line()
	f.Commentf("With returns a %s modified by modify, without saving it.", fc.Model)
	f.Func().Params(recv()).Id("With").Params(jen.Id("modify").Func().Params(jen.Op("*").Add(model()))).Add(model()).Block(
		jen.Id("record").Op(":=").Id("f").Dot("Definition").Call(),
		jen.Id("modify").Call(jen.Op("&").Id("record")),
		jen.Return(jen.Id("record")),
	)

	f.Line()
	f.Commentf("Create saves and returns a %s.", fc.Model)
	f.Func().Params(recv()).Id("Create").Params(ctxParam(), d.dbParam()).Params(jen.Op("*").Add(model()), jen.Error()).Block(
		jen.Return(jen.Id("f").Dot("CreateWith").Call(jen.Id("ctx"), jen.Id("db"), jen.Func().Params(jen.Op("*").Add(model())).Block())),
	)

	f.Line()
	f.Commentf("CreateMany saves and returns n %s records.", fc.Model)
	f.Func().Params(recv()).Id("CreateMany").Params(ctxParam(), d.dbParam(), jen.Id("n").Int()).Params(jen.Index().Add(model()), jen.Error()).Block(
		jen.Id("records").Op(":=").Id("f").Dot("MakeMany").Call(jen.Id("n")),
		jen.For(jen.Id("i").Op(":=").Range().Id("records")).Block(
			jen.If(
				jen.Err().Op(":=").Add(d.tide("Insert")).Call(jen.Id("ctx"), jen.Id("db"), jen.Op("&").Id("records").Index(jen.Id("i"))),
				jen.Err().Op("!=").Nil(),
			).Block(
				jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(jen.Lit("create "+label+" %d: %w"), jen.Id("i"), jen.Err())),
			),
		),
		jen.Return(jen.Id("records"), jen.Nil()),
	)

	f.Line()
	f.Commentf("CreateWith saves and returns a %s modified by modify.", fc.Model)
	f.Func().Params(recv()).Id("CreateWith").Params(ctxParam(), d.dbParam(), jen.Id("modify").Func().Params(jen.Op("*").Add(model()))).Params(jen.Op("*").Add(model()), jen.Error()).Block(
		jen.Id("record").Op(":=").Id("f").Dot("With").Call(jen.Id("modify")),
		jen.If(
			jen.Err().Op(":=").Add(d.tide("Insert")).Call(jen.Id("ctx"), jen.Id("db"), jen.Op("&").Id("record")),
			jen.Err().Op("!=").Nil(),
		).Block(
			jen.Return(jen.Nil(), jen.Err()),
		),
		jen.Return(jen.Op("&").Id("record"), jen.Nil()),
	)

	f.Line()
	f.Comment("FakeName returns a random first name.")
	f.Func().Params(jen.Id(fc.Name)).Id("FakeName").Params().String().Block(
		jen.Return(fake("Name").Call()),
	)
	f.Line()
	f.Comment("FakeEmail returns a unique example.com address.")
	f.Func().Params(jen.Id(fc.Name)).Id("FakeEmail").Params().String().Block(
		jen.Return(fake("Email").Call(jen.Lit(label))),
	)
	f.Line()
	f.Comment("FakeNumber returns a random number in [lo, hi].")
	f.Func().Params(jen.Id(fc.Name)).Id("FakeNumber").Params(jen.List(jen.Id("lo"), jen.Id("hi")).Int()).Int().Block(
		jen.Return(fake("Number").Call(jen.Id("lo"), jen.Id("hi"))),
	)
	f.Line()
	f.Comment("FakeBool returns a random boolean.")
	f.Func().Params(jen.Id(fc.Name)).Id("FakeBool").Params().Bool().Block(
		jen.Return(fake("Bool").Call()),
	)
	f.Line()
	f.Comment("FakeLorem returns the first words of lorem ipsum.")
	f.Func().Params(jen.Id(fc.Name)).Id("FakeLorem").Params(jen.Id("words").Int()).String().Block(
		jen.Return(fake("Lorem").Call(jen.Id("words"))),
	)
	return f
}
