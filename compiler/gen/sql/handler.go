package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/tideorm/tide/compiler/gen"
	"github.com/tideorm/tide/naming"
	"github.com/tideorm/tide/schema/field"
)

// GenHandler generates a request handler in one of three modes: a single
// Handle method, model-backed CRUD methods, or an HTTP resource.
func (d *Dialect) GenHandler(h *gen.Handler) *jen.File {
	f := d.helper.NewFile(d.helper.PkgName(gen.KindHandler))
	switch h.Mode {
	case gen.HandlerResource:
		d.resourceHandler(f, h)
	case gen.HandlerModel:
		d.modelHandler(f, h)
	default:
		f.Commentf("%s handles requests.", h.Name)
		f.Type().Id(h.Name).Struct()
		f.Line()
		f.Comment("Handle serves the request.")
		f.Func().Params(jen.Id("h").Op("*").Id(h.Name)).Id("Handle").Params(httpParams()...).Block(
			jen.Add(d.tide("WriteJSON")).Call(jen.Id("w"), jen.Qual("net/http", "StatusOK"), jen.Map(jen.String()).String().Values(jen.Dict{
				jen.Lit("message"): jen.Lit(h.Name),
			})),
		)
	}
	return f
}

// modelHandler passes CRUD calls through to the model.
func (d *Dialect) modelHandler(f *jen.File, h *gen.Handler) {
	model := func() *jen.Statement { return d.model(h.Model) }
	recv := func() *jen.Statement { return jen.Id("h").Op("*").Id(h.Name) }
	db := func() *jen.Statement { return jen.Id("h").Dot("DB") }

	f.Commentf("%s exposes CRUD operations of %s.", h.Name, h.Model)
	f.Type().Id(h.Name).Struct(
		jen.Id("DB").Add(d.tide("Executor")),
	)

	f.Line()
	f.Commentf("All returns every %s.", h.Model)
	f.Func().Params(recv()).Id("All").Params(ctxParam()).Params(jen.Index().Add(model()), jen.Error()).Block(
		jen.Return(d.tide("All").Types(model()).Call(jen.Id("ctx"), db())),
	)
	f.Line()
	f.Commentf("Find returns the %s with the given key.", h.Model)
	f.Func().Params(recv()).Id("Find").Params(ctxParam(), jen.Id("id").Add(d.helper.IDType())).Params(jen.Op("*").Add(model()), jen.Error()).Block(
		jen.Return(d.tide("Find").Types(model()).Call(jen.Id("ctx"), db(), jen.Id("id"))),
	)
	f.Line()
	f.Comment("Create inserts record.")
	f.Func().Params(recv()).Id("Create").Params(ctxParam(), jen.Id("record").Op("*").Add(model())).Error().Block(
		jen.Return(d.tide("Insert").Call(jen.Id("ctx"), db(), jen.Id("record"))),
	)
	f.Line()
	f.Comment("Update saves record.")
	f.Func().Params(recv()).Id("Update").Params(ctxParam(), jen.Id("record").Op("*").Add(model())).Error().Block(
		jen.Return(d.tide("Update").Call(jen.Id("ctx"), db(), jen.Id("record"))),
	)
	f.Line()
	f.Commentf("Delete removes the %s with the given key.", h.Model)
	f.Func().Params(recv()).Id("Delete").Params(ctxParam(), jen.Id("id").Add(d.helper.IDType())).Error().Block(
		jen.Return(d.tide("DeleteByID").Types(model()).Call(jen.Id("ctx"), db(), jen.Id("id"))),
	)
}

// resourceHandler serves CRUD over net/http.
func (d *Dialect) resourceHandler(f *jen.File, h *gen.Handler) {
	model := func() *jen.Statement { return d.model(h.Model) }
	recv := func() *jen.Statement { return jen.Id("h").Op("*").Id(h.Name) }
	db := func() *jen.Statement { return jen.Id("h").Dot("DB") }
	ctx := func() *jen.Statement { return jen.Id("r").Dot("Context").Call() }
	status := func(name string) *jen.Statement { return jen.Qual("net/http", name) }
	fail := func() *jen.Statement {
		return jen.If(jen.Err().Op("!=").Nil()).Block(
			d.tide("WriteError").Call(jen.Id("w"), jen.Err()),
			jen.Return(),
		)
	}
	label := naming.Snake(h.Model)
	request, response := h.Model+"Request", h.Model+"Response"
	newResponse := "new" + response
	pk := naming.Pascal(d.helper.Config().PrimaryKey)

	f.Commentf("%s is the request body of %s.", request, h.Name)
	f.Type().Id(request).Struct(model())
	f.Line()
	f.Commentf("%s is the response body of %s.", response, h.Name)
	f.Type().Id(response).StructFunc(func(g *jen.Group) {
		g.Add(model())
		if h.Tokenize {
			g.Id("Token").String().Tag(map[string]string{"json": "token"})
		}
	})
	f.Line()
	f.Func().Id(newResponse).Params(jen.Id("record").Add(model())).Id(response).BlockFunc(func(g *jen.Group) {
		values := jen.Dict{jen.Id(h.Model): jen.Id("record")}
		if h.Tokenize {
			values[jen.Id("Token")] = d.tide("EncodeToken").Types(model()).Call(jen.Id("record").Dot(pk))
		}
		g.Return(jen.Id(response).Values(values))
	})

	f.Line()
	f.Commentf("%s serves %s records over HTTP.", h.Name, h.Model)
	f.Type().Id(h.Name).Struct(
		jen.Id("DB").Add(d.tide("Executor")),
	)

	f.Line()
	f.Comment("Routes registers the handler on mux under prefix.")
	f.Func().Params(recv()).Id("Routes").Params(jen.Id("mux").Op("*").Qual("net/http", "ServeMux"), jen.Id("prefix").String()).BlockFunc(func(g *jen.Group) {
		route := func(method, suffix, fn string) {
			pattern := jen.Lit(method + " ").Op("+").Id("prefix")
			if suffix != "" {
				pattern.Op("+").Lit(suffix)
			}
			g.Id("mux").Dot("HandleFunc").Call(pattern, jen.Id("h").Dot(fn))
		}
		route("GET", "", "Index")
		route("GET", "/paginated", "IndexPaginated")
		route("GET", "/{id}", "Show")
		if h.Tokenize {
			route("GET", "/token/{token}", "ShowByToken")
		}
		route("POST", "", "Create")
		route("PUT", "/{id}", "Update")
		route("DELETE", "/{id}", "Destroy")
		route("DELETE", "", "DestroyMany")
	})

	f.Line()
	f.Commentf("Index lists every %s.", h.Model)
	f.Func().Params(recv()).Id("Index").Params(httpParams()...).Block(
		jen.List(jen.Id("records"), jen.Err()).Op(":=").Add(d.tide("All")).Types(model()).Call(ctx(), db()),
		fail(),
		jen.Id("body").Op(":=").Make(jen.Index().Id(response), jen.Len(jen.Id("records"))),
		jen.For(jen.List(jen.Id("i"), jen.Id("record")).Op(":=").Range().Id("records")).Block(
			jen.Id("body").Index(jen.Id("i")).Op("=").Id(newResponse).Call(jen.Id("record")),
		),
		d.tide("WriteJSON").Call(jen.Id("w"), status("StatusOK"), jen.Id("body")),
	)

	f.Line()
	f.Commentf("IndexPaginated lists one page of %s records, selected by the page and per_page query parameters.", label)
	f.Func().Params(recv()).Id("IndexPaginated").Params(httpParams()...).Block(
		jen.Id("page").Op(":=").Add(d.tide("QueryInt")).Call(jen.Id("r"), jen.Lit("page"), jen.Lit(1)),
		jen.Id("perPage").Op(":=").Add(d.tide("QueryInt")).Call(jen.Id("r"), jen.Lit("per_page"), d.tide("DefaultPerPage")),
		jen.List(jen.Id("result"), jen.Err()).Op(":=").Add(d.tide("Paginate")).Types(model()).Call(ctx(), db(), jen.Id("page"), jen.Id("perPage")),
		fail(),
		d.tide("WriteJSON").Call(jen.Id("w"), status("StatusOK"), jen.Id("result")),
	)

	f.Line()
	f.Commentf("Show returns one %s.", label)
	f.Func().Params(recv()).Id("Show").Params(httpParams()...).Block(
		d.parseID(),
		fail(),
		jen.List(jen.Id("record"), jen.Err()).Op(":=").Add(d.tide("Find")).Types(model()).Call(ctx(), db(), jen.Id("id")),
		fail(),
		d.tide("WriteJSON").Call(jen.Id("w"), status("StatusOK"), jen.Id(newResponse).Call(jen.Op("*").Id("record"))),
	)

	if h.Tokenize {
		f.Line()
		f.Commentf("ShowByToken returns one %s by its public token.", label)
		f.Func().Params(recv()).Id("ShowByToken").Params(httpParams()...).Block(
			jen.List(jen.Id("record"), jen.Err()).Op(":=").Add(d.tide("FindByToken")).Types(model()).Call(ctx(), db(), jen.Id("r").Dot("PathValue").Call(jen.Lit("token"))),
			fail(),
			d.tide("WriteJSON").Call(jen.Id("w"), status("StatusOK"), jen.Id(newResponse).Call(jen.Op("*").Id("record"))),
		)
	}

	f.Line()
	f.Commentf("Create inserts a %s from the request body.", label)
	f.Func().Params(recv()).Id("Create").Params(httpParams()...).Block(
		jen.Var().Id("req").Id(request),
		jen.If(jen.Err().Op(":=").Add(d.tide("DecodeJSON")).Call(jen.Id("r"), jen.Op("&").Id("req")), jen.Err().Op("!=").Nil()).Block(
			d.tide("WriteError").Call(jen.Id("w"), jen.Err()),
			jen.Return(),
		),
		jen.Id("record").Op(":=").Id("req").Dot(h.Model),
		jen.If(jen.Err().Op(":=").Add(d.tide("Insert")).Call(ctx(), db(), jen.Op("&").Id("record")), jen.Err().Op("!=").Nil()).Block(
			d.tide("WriteError").Call(jen.Id("w"), jen.Err()),
			jen.Return(),
		),
		d.tide("WriteJSON").Call(jen.Id("w"), status("StatusCreated"), jen.Id(newResponse).Call(jen.Id("record"))),
	)

	f.Line()
	f.Commentf("Update replaces a %s with the request body.", label)
	f.Func().Params(recv()).Id("Update").Params(httpParams()...).Block(
		d.parseID(),
		fail(),
		jen.Var().Id("req").Id(request),
		jen.If(jen.Err().Op(":=").Add(d.tide("DecodeJSON")).Call(jen.Id("r"), jen.Op("&").Id("req")), jen.Err().Op("!=").Nil()).Block(
			d.tide("WriteError").Call(jen.Id("w"), jen.Err()),
			jen.Return(),
		),
		jen.Id("record").Op(":=").Id("req").Dot(h.Model),
		jen.Id("record").Dot(pk).Op("=").Id("id"),
		jen.If(jen.Err().Op(":=").Add(d.tide("Update")).Call(ctx(), db(), jen.Op("&").Id("record")), jen.Err().Op("!=").Nil()).Block(
			d.tide("WriteError").Call(jen.Id("w"), jen.Err()),
			jen.Return(),
		),
		d.tide("WriteJSON").Call(jen.Id("w"), status("StatusOK"), jen.Id(newResponse).Call(jen.Id("record"))),
	)

	f.Line()
	f.Commentf("Destroy deletes one %s.", label)
	f.Func().Params(recv()).Id("Destroy").Params(httpParams()...).Block(
		d.parseID(),
		fail(),
		jen.If(jen.Err().Op(":=").Add(d.tide("DeleteByID")).Types(model()).Call(ctx(), db(), jen.Id("id")), jen.Err().Op("!=").Nil()).Block(
			d.tide("WriteError").Call(jen.Id("w"), jen.Err()),
			jen.Return(),
		),
		jen.Id("w").Dot("WriteHeader").Call(status("StatusNoContent")),
	)

	f.Line()
	f.Commentf("DestroyMany deletes the %s records listed in the ids of the request body.", label)
	f.Func().Params(recv()).Id("DestroyMany").Params(httpParams()...).Block(
		jen.Var().Id("req").Struct(
			jen.Id("IDs").Index().Add(d.helper.IDType()).Tag(map[string]string{"json": "ids"}),
		),
		jen.If(jen.Err().Op(":=").Add(d.tide("DecodeJSON")).Call(jen.Id("r"), jen.Op("&").Id("req")), jen.Err().Op("!=").Nil()).Block(
			d.tide("WriteError").Call(jen.Id("w"), jen.Err()),
			jen.Return(),
		),
		jen.List(jen.Id("n"), jen.Err()).Op(":=").Add(d.tide("DeleteIn")).Types(model()).Call(ctx(), db(), jen.Id("req").Dot("IDs")),
		fail(),
		d.tide("WriteJSON").Call(jen.Id("w"), status("StatusOK"), jen.Map(jen.String()).Int64().Values(jen.Dict{
			jen.Lit("deleted"): jen.Id("n"),
		})),
	)
}

// parseID declares id and err from the "id" path value.
func (d *Dialect) parseID() *jen.Statement {
	value := jen.Id("r").Dot("PathValue").Call(jen.Lit("id"))
	if d.helper.Config().PrimaryKeyType.Type == field.TypeUUID {
		return jen.List(jen.Id("id"), jen.Err()).Op(":=").Add(d.tide("ParseUUID")).Call(value)
	}
	return jen.List(jen.Id("id"), jen.Err()).Op(":=").Add(d.tide("ParseID")).Types(d.helper.IDType()).Call(value)
}

// httpParams are the parameters of an http.HandlerFunc.
func httpParams() []jen.Code {
	return []jen.Code{
		jen.Id("w").Qual("net/http", "ResponseWriter"),
		jen.Id("r").Op("*").Qual("net/http", "Request"),
	}
}
