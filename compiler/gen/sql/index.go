package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/tideorm/tide/compiler/gen"
)

// GenIndex generates the index file of a kind before its first module is
// registered. Models, migrations and seeders declare a typed registry the
// registered modules add themselves to from init functions.
func (d *Dialect) GenIndex(k gen.Kind) *jen.File {
	pkg := d.helper.PkgName(k)
	f := d.helper.NewFile(pkg)
	switch k {
	case gen.KindModel:
		f.PackageComment("Package " + pkg + " holds the models of the application.")
	case gen.KindMigration:
		f.PackageComment("Package " + pkg + " holds the schema migrations, applied in ID order.")
	case gen.KindSeeder:
		f.PackageComment("Package " + pkg + " holds the data seeders.")
	case gen.KindFactory:
		f.PackageComment("Package " + pkg + " builds model records for tests and seeding.")
	case gen.KindHandler:
		f.PackageComment("Package " + pkg + " holds the request handlers.")
	}
	if k == gen.KindMigration {
		f.Comment("MigrationTable is the table recording applied migrations.")
		f.Const().Id("MigrationTable").Op("=").Lit(d.helper.Config().MigrationTable)
		f.Line()
	}
	if v := k.RegistryVar(); v != "" {
		f.Commentf("%s lists every registered %s.", v, k)
		f.Var().Id(v).Op("=").Add(d.tide("NewRegistry")).Types(d.tide(k.RegistryElem())).Call()
	}
	return f
}
