package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/tideorm/tide/compiler/gen"
	"github.com/tideorm/tide/schema/field"
)

// Companion tests use the standard testing package only, so the generated
// project needs no extra test dependency.

func testParam() *jen.Statement {
	return jen.Id("t").Op("*").Qual("testing", "T")
}

// expectEq emits a check that got equals want.
func expectEq(label string, got, want jen.Code) jen.Code {
	return jen.If(
		jen.Id("got").Op(":=").Add(got),
		jen.Id("got").Op("!=").Add(want),
	).Block(
		jen.Id("t").Dot("Errorf").Call(jen.Lit(label+" = %v, want %v"), jen.Id("got"), want),
	)
}

// expectNoErr emits a fatal check on err.
func expectNoErr(label string) jen.Code {
	return jen.If(jen.Err().Op("!=").Nil()).Block(
		jen.Id("t").Dot("Fatalf").Call(jen.Lit(label+": %v"), jen.Err()),
	)
}

// GenModelTest checks the table and primary key of the model.
func (d *Dialect) GenModelTest(t *gen.Type) *jen.File {
	f := d.helper.NewFile(d.helper.PkgName(gen.KindModel))
	f.Func().Id("Test"+t.Name+"TableName").Params(testParam()).Block(
		expectEq("TableName()", jen.Parens(jen.Id(t.Name).Values()).Dot("TableName").Call(), jen.Lit(t.Table)),
	)
	f.Line()
	f.Func().Id("Test"+t.Name+"ModelOptions").Params(testParam()).Block(
		jen.Id("opts").Op(":=").Parens(jen.Id(t.Name).Values()).Dot("ModelOptions").Call(),
		expectEq("PrimaryKey", jen.Id("opts").Dot("PrimaryKey"), jen.Lit(t.ID.Name)),
		expectEq("SoftDelete", jen.Id("opts").Dot("SoftDelete"), jen.Lit(t.SoftDeletes)),
	)
	return f
}

// GenMigrationTest checks the migration ID.
func (d *Dialect) GenMigrationTest(m *gen.Migration) *jen.File {
	f := d.helper.NewFile(d.helper.PkgName(gen.KindMigration))
	f.Func().Id("Test"+m.TypeName()+"Name").Params(testParam()).Block(
		expectEq("Name()", jen.Parens(jen.Id(m.TypeName()).Values()).Dot("Name").Call(), jen.Lit(m.ID())),
	)
	return f
}

// GenSeederTest runs seeders that touch no database.
func (d *Dialect) GenSeederTest(s *gen.Seeder) *jen.File {
	f := d.helper.NewFile(d.helper.PkgName(gen.KindSeeder))
	ctx := jen.Qual("context", "Background").Call()
	if s.Model == "" {
		f.Func().Id("Test"+s.Name+"Run").Params(testParam()).Block(
			jen.Err().Op(":=").Parens(jen.Id(s.Name).Values()).Dot("Run").Call(ctx, jen.Nil()),
			expectNoErr("Run"),
		)
		return f
	}
	count := s.Name + "Count"
	f.Func().Id("Test"+count).Params(testParam()).Block(
		jen.If(jen.Id(count).Op("<=").Lit(0)).Block(
			jen.Id("t").Dot("Errorf").Call(jen.Lit(count+" = %d, want a positive count"), jen.Id(count)),
		),
	)
	f.Line()
	f.Func().Id("Test"+s.Name+"RunWithFactoryEmpty").Params(testParam()).Block(
		jen.Id("build").Op(":=").Func().Params(jen.Int()).Add(d.model(s.Model)).Block(
			jen.Return(d.model(s.Model).Values()),
		),
		jen.Err().Op(":=").Parens(jen.Id(s.Name).Values()).Dot("RunWithFactory").Call(ctx, jen.Nil(), jen.Lit(0), jen.Id("build")),
		expectNoErr("RunWithFactory"),
	)
	return f
}

// GenFactoryTest covers the factory methods that do not save.
func (d *Dialect) GenFactoryTest(fc *gen.Factory) *jen.File {
	f := d.helper.NewFile(d.helper.PkgName(gen.KindFactory))
	factory := jen.Id(fc.Name).Values()
	f.Func().Id("Test"+fc.Name+"Make").Params(testParam()).Block(
		jen.Id("_").Op("=").Parens(factory.Clone()).Dot("Make").Call(),
	)
	f.Line()
	f.Func().Id("Test"+fc.Name+"MakeMany").Params(testParam()).Block(
		expectEq("len(MakeMany(3))", jen.Len(jen.Parens(factory.Clone()).Dot("MakeMany").Call(jen.Lit(3))), jen.Lit(3)),
	)
	f.Line()
	f.Func().Id("Test"+fc.Name+"With").Params(testParam()).Block(
		jen.Id("called").Op(":=").False(),
		jen.Parens(factory.Clone()).Dot("With").Call(jen.Func().Params(jen.Op("*").Add(d.model(fc.Model))).Block(
			jen.Id("called").Op("=").True(),
		)),
		jen.If(jen.Op("!").Id("called")).Block(
			jen.Id("t").Dot("Error").Call(jen.Lit("With did not call modify")),
		),
	)
	return f
}

// GenHandlerTest exercises the routes of resource handlers and the Handle
// method of basic ones. Model-backed handlers get no scaffold.
func (d *Dialect) GenHandlerTest(h *gen.Handler) *jen.File {
	httptest := func(name string) *jen.Statement { return jen.Qual("net/http/httptest", name) }
	http := func(name string) *jen.Statement { return jen.Qual("net/http", name) }
	f := d.helper.NewFile(d.helper.PkgName(gen.KindHandler))
	switch h.Mode {
	case gen.HandlerBasic:
		f.Func().Id("Test"+h.Name+"Handle").Params(testParam()).Block(
			jen.Id("w").Op(":=").Add(httptest("NewRecorder")).Call(),
			jen.Parens(jen.Op("&").Id(h.Name).Values()).Dot("Handle").Call(
				jen.Id("w"),
				httptest("NewRequest").Call(http("MethodGet"), jen.Lit("/"), jen.Nil()),
			),
			expectEq("status", jen.Id("w").Dot("Code"), http("StatusOK")),
		)
		return f
	case gen.HandlerResource:
		routes := []jen.Code{
			jen.Id("mux").Op(":=").Add(http("NewServeMux")).Call(),
			jen.Parens(jen.Op("&").Id(h.Name).Values()).Dot("Routes").Call(jen.Id("mux"), jen.Lit("/items")),
		}
		if d.helper.Config().PrimaryKeyType.Type != field.TypeString {
			routes = append(routes,
				jen.Id("w").Op(":=").Add(httptest("NewRecorder")).Call(),
				jen.Id("mux").Dot("ServeHTTP").Call(
					jen.Id("w"),
					httptest("NewRequest").Call(http("MethodGet"), jen.Lit("/items/not-a-key"), jen.Nil()),
				),
				expectEq("status", jen.Id("w").Dot("Code"), http("StatusBadRequest")),
			)
		}
		f.Func().Id("Test"+h.Name+"Routes").Params(testParam()).Block(routes...)
		return f
	default:
		return nil
	}
}
