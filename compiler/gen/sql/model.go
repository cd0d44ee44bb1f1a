package sql

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/tideorm/tide/compiler/gen"
	"github.com/tideorm/tide/naming"
	"github.com/tideorm/tide/schema/edge"
	"github.com/tideorm/tide/schema/field"
)

// GenModel generates the model struct, its table and option methods, one
// finder per unique field and one loader per relation.
func (d *Dialect) GenModel(t *gen.Type) *jen.File {
	f := d.helper.NewFile(d.helper.PkgName(gen.KindModel))
	f.Commentf("%s is the model of the %s table.", t.Name, t.Table)
	f.Type().Id(t.Name).StructFunc(func(g *jen.Group) {
		g.Id(t.ID.StructField).Add(d.helper.BaseType(t.ID)).Tag(map[string]string{
			"db":   t.ID.Name,
			"json": t.ID.Name,
			"tide": primaryKeyTag(t.ID.Type),
		})
		for _, fld := range t.Columns() {
			g.Id(fld.StructField).Add(d.helper.GoType(fld)).Tag(fieldTags(fld))
		}
		for _, e := range t.Edges {
			g.Id(e.StructField).Add(d.tide(holderType(e.Kind)).Types(jen.Id(e.Entity))).Tag(map[string]string{
				"db":   "-",
				"json": naming.Snake(e.Name) + ",omitzero",
				"tide": e.Kind.String() + "=" + e.Entity + ",foreign_key=" + e.ForeignKey,
			})
		}
		if t.HasFiles() {
			g.Comment("Files stores the attachments as JSON.")
			g.Id("Files").Qual("encoding/json", "RawMessage").Tag(map[string]string{"db": gen.ColumnFiles, "json": gen.ColumnFiles + ",omitempty"})
		}
		if t.Timestamps {
			g.Id("CreatedAt").Qual("time", "Time").Tag(map[string]string{"db": gen.ColumnCreatedAt, "json": gen.ColumnCreatedAt})
			g.Id("UpdatedAt").Qual("time", "Time").Tag(map[string]string{"db": gen.ColumnUpdatedAt, "json": gen.ColumnUpdatedAt})
		}
		if t.SoftDeletes {
			g.Id("DeletedAt").Op("*").Qual("time", "Time").Tag(map[string]string{"db": gen.ColumnDeletedAt, "json": gen.ColumnDeletedAt + ",omitempty"})
		}
	})

	f.Line()
	f.Comment("TableName returns the table of the model.")
	f.Func().Params(jen.Id(t.Name)).Id("TableName").Params().String().Block(
		jen.Return(jen.Lit(t.Table)),
	)

	f.Line()
	f.Comment("ModelOptions returns the struct-level attributes of the model.")
	f.Func().Params(jen.Id(t.Name)).Id("ModelOptions").Params().Add(d.tide("Options")).Block(
		jen.Return(d.tide("Options").Values(modelOptions(t))),
	)

	for _, fld := range t.UniqueFields() {
		name := t.FinderName(fld)
		f.Line()
		f.Commentf("%s returns the %s with the given %s.", name, naming.Snake(t.Name), fld.Name)
		f.Func().Id(name).Params(ctxParam(), d.dbParam(), jen.Id("value").Add(d.helper.BaseType(fld))).
			Params(jen.Op("*").Id(t.Name), jen.Error()).Block(
			jen.Return(d.tide("FindBy").Types(jen.Id(t.Name)).Call(jen.Id("ctx"), jen.Id("db"), jen.Lit(fld.Name), jen.Id("value"))),
		)
	}

	recv := t.Receiver()
	for _, e := range t.Edges {
		name := "Load" + e.StructField
		f.Line()
		f.Commentf("%s loads the %s relation.", name, e.Name)
		fn := f.Func().Params(jen.Id(recv).Op("*").Id(t.Name)).Id(name).Params(ctxParam(), d.dbParam())
		load := jen.Id(recv).Dot(e.StructField).Dot("Load")
		switch e.Kind {
		case edge.BelongsTo:
			fn.Params(jen.Op("*").Id(e.Entity), jen.Error()).Block(
				jen.Return(load.Call(jen.Id("ctx"), jen.Id("db"), jen.Id(recv).Dot(e.Field.StructField))),
			)
		case edge.HasOne:
			fn.Params(jen.Op("*").Id(e.Entity), jen.Error()).Block(
				jen.Return(load.Call(jen.Id("ctx"), jen.Id("db"), jen.Lit(e.ForeignKey), jen.Id(recv).Dot(t.ID.StructField))),
			)
		default:
			fn.Params(jen.Index().Id(e.Entity), jen.Error()).Block(
				jen.Return(load.Call(jen.Id("ctx"), jen.Id("db"), jen.Lit(e.ForeignKey), jen.Id(recv).Dot(t.ID.StructField))),
			)
		}
	}
	return f
}

// holderType returns the runtime relation holder of an edge kind.
func holderType(k edge.Kind) string {
	switch k {
	case edge.BelongsTo:
		return "BelongsTo"
	case edge.HasOne:
		return "HasOne"
	default:
		return "HasMany"
	}
}

// primaryKeyTag returns the tide tag of the primary key.
func primaryKeyTag(t field.TypeInfo) string {
	switch t.Type {
	case field.TypeInt8, field.TypeInt16, field.TypeInt32, field.TypeInt64:
		return "primary_key,auto_increment"
	default:
		return "primary_key"
	}
}

// fieldTags returns the struct tags of a column.
func fieldTags(f *gen.Field) map[string]string {
	tags := map[string]string{"db": f.Name, "json": f.Name}
	if f.Nullable {
		tags["json"] += ",omitempty"
	}
	var attrs []string
	if f.Unique {
		attrs = append(attrs, "unique")
	}
	if f.Indexed {
		attrs = append(attrs, "index")
	}
	if f.Default != nil {
		attrs = append(attrs, "default="+*f.Default)
	}
	if len(attrs) > 0 {
		tags["tide"] = strings.Join(attrs, ",")
	}
	return tags
}

// modelOptions returns the non-zero fields of the tide.Options literal.
func modelOptions(t *gen.Type) jen.Dict {
	opts := jen.Dict{jen.Id("PrimaryKey"): jen.Lit(t.ID.Name)}
	flag := func(name string, v bool) {
		if v {
			opts[jen.Id(name)] = jen.True()
		}
	}
	list := func(name string, v []string) {
		if len(v) > 0 {
			opts[jen.Id(name)] = jen.Index().String().ValuesFunc(func(g *jen.Group) {
				for _, s := range v {
					g.Lit(s)
				}
			})
		}
	}
	flag("Timestamps", t.Timestamps)
	flag("SoftDelete", t.SoftDeletes)
	flag("Tokenize", t.Tokenize)
	list("Translatable", t.Translatable)
	list("HasOneFiles", t.Files)
	list("HasManyFiles", t.MultiFiles)
	list("Indexes", t.Indexes)
	list("UniqueIndexes", t.UniqueIndexes)
	return opts
}
