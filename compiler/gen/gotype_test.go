package gen

import (
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"

	"github.com/tideorm/tide/schema/field"
)

func TestTargetType(t *testing.T) {
	tests := []struct {
		token    string
		nullable bool
		want     string
	}{
		{"string", false, "string"},
		{"text", true, "*string"},
		{"i8", false, "int8"},
		{"i16", false, "int16"},
		{"i32", true, "*int32"},
		{"i64", false, "int64"},
		{"f32", false, "float32"},
		{"f64", true, "*float64"},
		{"bool", false, "bool"},
		{"datetime", false, "time.Time"},
		{"date", true, "*time.Time"},
		{"time", false, "time.Time"},
		{"uuid", false, "uuid.UUID"},
		{"json", false, "json.RawMessage"},
		{"jsonb", true, "*json.RawMessage"},
		{"decimal", false, "decimal.Decimal"},
		{"bytes", false, "[]byte"},
		{"Money", false, "Money"},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, TargetType(field.NewTypeInfo(tt.token), tt.nullable))
		})
	}
}

func TestTargetType_EveryType(t *testing.T) {
	for _, typ := range field.Types() {
		got := TargetType(field.TypeInfo{Type: typ, Ident: typ.String()}, false)
		assert.NotEmpty(t, got, typ.String())
	}
}

func TestGoTypeCode(t *testing.T) {
	render := func(c jen.Code) string {
		return jen.Var().Id("v").Add(c).GoString()
	}
	assert.Equal(t, "var v *int32", render(goType(field.NewTypeInfo("i32"), true)))
	assert.Equal(t, "var v int32", render(baseType(field.NewTypeInfo("i32"))))
	assert.Equal(t, "var v *decimal.Decimal", render(goType(field.NewTypeInfo("decimal"), true)))
	assert.Equal(t, "var v uuid.UUID", render(goType(field.NewTypeInfo("uuid"), false)))
}
