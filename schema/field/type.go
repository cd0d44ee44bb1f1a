package field

import (
	"strings"

	"golang.org/x/text/cases"
)

// A Type represents a logical field type.
type Type uint8

// List of logical field types. TypeOther marks a passthrough token that
// names an extension type the mapping tables do not know.
const (
	TypeOther Type = iota
	TypeString
	TypeText
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeBool
	TypeDateTime
	TypeDate
	TypeTime
	TypeUUID
	TypeJSON
	TypeJSONB
	TypeDecimal
	TypeBytes
	endTypes
)

var typeNames = [...]string{
	TypeOther:    "other",
	TypeString:   "string",
	TypeText:     "text",
	TypeInt8:     "int8",
	TypeInt16:    "int16",
	TypeInt32:    "int32",
	TypeInt64:    "int64",
	TypeFloat32:  "float32",
	TypeFloat64:  "float64",
	TypeBool:     "bool",
	TypeDateTime: "datetime",
	TypeDate:     "date",
	TypeTime:     "time",
	TypeUUID:     "uuid",
	TypeJSON:     "json",
	TypeJSONB:    "jsonb",
	TypeDecimal:  "decimal",
	TypeBytes:    "bytes",
}

// aliases maps every accepted spelling to its logical type.
var aliases = map[string]Type{
	"string":    TypeString,
	"varchar":   TypeString,
	"text":      TypeText,
	"i8":        TypeInt8,
	"int8":      TypeInt8,
	"tinyint":   TypeInt8,
	"i16":       TypeInt16,
	"int16":     TypeInt16,
	"smallint":  TypeInt16,
	"i32":       TypeInt32,
	"int32":     TypeInt32,
	"int":       TypeInt32,
	"integer":   TypeInt32,
	"i64":       TypeInt64,
	"int64":     TypeInt64,
	"bigint":    TypeInt64,
	"f32":       TypeFloat32,
	"float32":   TypeFloat32,
	"float":     TypeFloat32,
	"f64":       TypeFloat64,
	"float64":   TypeFloat64,
	"double":    TypeFloat64,
	"bool":      TypeBool,
	"boolean":   TypeBool,
	"datetime":  TypeDateTime,
	"timestamp": TypeDateTime,
	"date":      TypeDate,
	"time":      TypeTime,
	"uuid":      TypeUUID,
	"json":      TypeJSON,
	"jsonb":     TypeJSONB,
	"decimal":   TypeDecimal,
	"bytes":     TypeBytes,
	"blob":      TypeBytes,
	"binary":    TypeBytes,
}

// String returns the canonical name of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return "invalid"
}

// Valid reports if the given type is known.
func (t Type) Valid() bool {
	return t < endTypes
}

// Numeric reports if the given type is an integer or float type.
func (t Type) Numeric() bool {
	return t >= TypeInt8 && t <= TypeFloat64
}

// Temporal reports if the given type carries a date or time.
func (t Type) Temporal() bool {
	return t == TypeDateTime || t == TypeDate || t == TypeTime
}

// Types returns every known logical type except TypeOther, in declaration
// order.
func Types() []Type {
	ts := make([]Type, 0, endTypes-1)
	for t := TypeString; t < endTypes; t++ {
		ts = append(ts, t)
	}
	return ts
}

// LookupType resolves a type token (case-insensitive) to its logical
// type. Unknown tokens resolve to TypeOther.
func LookupType(token string) Type {
	if t, ok := aliases[fold(strings.TrimSpace(token))]; ok {
		return t
	}
	return TypeOther
}

// TypeInfo pairs a resolved type with the token it was written as.
type TypeInfo struct {
	Type  Type
	Ident string
}

// NewTypeInfo resolves token into a TypeInfo.
func NewTypeInfo(token string) TypeInfo {
	token = strings.TrimSpace(token)
	return TypeInfo{Type: LookupType(token), Ident: token}
}

// String returns the canonical type name, or the original token for
// passthrough types.
func (t TypeInfo) String() string {
	if t.Type == TypeOther {
		return t.Ident
	}
	return t.Type.String()
}

// fold returns the caseless form of s used for keyword matching.
func fold(s string) string {
	return cases.Fold().String(s)
}
