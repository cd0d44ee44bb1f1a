package gen

import (
	"path"

	"github.com/dave/jennifer/jen"

	"github.com/tideorm/tide/schema/field"
)

// goTypeName is the Go spelling of a logical type.
type goTypeName struct {
	pkg  string // import path, empty for builtins
	name string
}

// goTypes maps each logical type to its Go type.
var goTypes = [...]goTypeName{
	field.TypeString:   {"", "string"},
	field.TypeText:     {"", "string"},
	field.TypeInt8:     {"", "int8"},
	field.TypeInt16:    {"", "int16"},
	field.TypeInt32:    {"", "int32"},
	field.TypeInt64:    {"", "int64"},
	field.TypeFloat32:  {"", "float32"},
	field.TypeFloat64:  {"", "float64"},
	field.TypeBool:     {"", "bool"},
	field.TypeDateTime: {"time", "Time"},
	field.TypeDate:     {"time", "Time"},
	field.TypeTime:     {"time", "Time"},
	field.TypeUUID:     {"github.com/google/uuid", "UUID"},
	field.TypeJSON:     {"encoding/json", "RawMessage"},
	field.TypeJSONB:    {"encoding/json", "RawMessage"},
	field.TypeDecimal:  {"github.com/shopspring/decimal", "Decimal"},
	field.TypeBytes:    {"", "[]byte"},
}

func lookupGoType(t field.TypeInfo) goTypeName {
	if t.Type == field.TypeOther || int(t.Type) >= len(goTypes) {
		return goTypeName{name: t.Ident}
	}
	return goTypes[t.Type]
}

// String returns the type as written in source, with the package name as
// qualifier.
func (n goTypeName) String() string {
	if n.pkg == "" {
		return n.name
	}
	return path.Base(n.pkg) + "." + n.name
}

// code returns the Jennifer code of the type.
func (n goTypeName) code() *jen.Statement {
	if n.pkg == "" {
		return jen.Id(n.name)
	}
	return jen.Qual(n.pkg, n.name)
}

// pointer returns the Jennifer code of a pointer to the type. Builtins use
// Id("*type") to avoid whitespace issues in struct field definitions.
func (n goTypeName) pointer() *jen.Statement {
	if n.pkg == "" {
		return jen.Id("*" + n.name)
	}
	return jen.Op("*").Qual(n.pkg, n.name)
}

// TargetType returns the Go type a logical type renders as. Nullable types
// are wrapped in exactly one pointer.
func TargetType(t field.TypeInfo, nullable bool) string {
	n := lookupGoType(t)
	if nullable {
		return "*" + n.String()
	}
	return n.String()
}

// goType returns the Jennifer code for a field's Go type.
func goType(t field.TypeInfo, nullable bool) *jen.Statement {
	n := lookupGoType(t)
	if nullable {
		return n.pointer()
	}
	return n.code()
}

// baseType returns the Jennifer code for a field's base type (without pointer).
func baseType(t field.TypeInfo) *jen.Statement {
	return lookupGoType(t).code()
}
