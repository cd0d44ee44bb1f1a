package gen

import (
	"fmt"
	"slices"

	"github.com/tideorm/tide/naming"
	"github.com/tideorm/tide/schema"
	"github.com/tideorm/tide/schema/edge"
	"github.com/tideorm/tide/schema/field"
)

// Implicit columns appended by model flags.
const (
	ColumnFiles     = "files"
	ColumnCreatedAt = "created_at"
	ColumnUpdatedAt = "updated_at"
	ColumnDeletedAt = "deleted_at"
)

type (
	// Type represents one model resolved against the configuration: the
	// primary key, declared columns, foreign keys and relations as they
	// are emitted.
	Type struct {
		config *Config
		// Name is the Go type name (PascalCase).
		Name string
		// Table is the SQL table name.
		Table string
		// ID is the primary key column.
		ID *Field
		// Fields are the declared columns, in declaration order.
		Fields []*Field
		// ForeignKeys are the BelongsTo key columns that were not declared
		// as fields.
		ForeignKeys []*Field
		// Edges are the relations, in declaration order.
		Edges []*Edge

		Translatable  []string
		Files         []string
		MultiFiles    []string
		Indexes       []string
		UniqueIndexes []string

		SoftDeletes bool
		Timestamps  bool
		Tokenize    bool
	}

	// Field is a column of a model or migration.
	Field struct {
		// Name is the column name.
		Name string
		// StructField is the Go struct field name.
		StructField string
		Type        field.TypeInfo
		Nullable    bool
		Unique      bool
		Indexed     bool
		Default     *string
	}

	// Edge is a relation of a model.
	Edge struct {
		// Name is the relation name as declared.
		Name string
		// StructField is the Go struct field holding the relation.
		StructField string
		Kind        edge.Kind
		// Entity is the related Go type name.
		Entity string
		// ForeignKey is the key column, explicit or derived.
		ForeignKey string
		// Field is the key column on the owner for BelongsTo relations.
		Field *Field
	}
)

// NewField creates a column from a parsed field descriptor.
func NewField(d *field.Descriptor) *Field {
	return &Field{
		Name:        d.Name,
		StructField: naming.Pascal(d.Name),
		Type:        d.Info,
		Nullable:    d.Nullable,
		Unique:      d.Unique,
		Indexed:     d.Indexed,
		Default:     d.Default,
	}
}

// NewFields creates columns from parsed field descriptors.
func NewFields(ds []*field.Descriptor) []*Field {
	fields := make([]*Field, len(ds))
	for i, d := range ds {
		fields[i] = NewField(d)
	}
	return fields
}

// HasDefault reports if the column has a default value.
func (f *Field) HasDefault() bool {
	return f.Default != nil
}

// GoType returns the Go spelling of the field type.
func (f *Field) GoType() string {
	return TargetType(f.Type, f.Nullable)
}

// NewType resolves a schema against the configuration. It fails with a
// *SchemaError wrapping ErrMissingName for an unnamed schema, and with a
// *SchemaError for columns or Go identifiers that collide.
func NewType(c *Config, d *schema.Descriptor) (*Type, error) {
	if d == nil || d.Name == "" {
		return nil, NewSchemaError("", "", "entity name is required", ErrMissingName)
	}
	t := &Type{
		config:       c,
		Name:         d.Name,
		Table:        d.TableName(),
		ID:           &Field{Name: c.PrimaryKey, StructField: naming.Pascal(c.PrimaryKey), Type: c.PrimaryKeyType},
		Translatable: d.Translatable,
		Files:        d.Files,
		MultiFiles:   d.MultiFiles,
		SoftDeletes:  d.SoftDeletes,
		Timestamps:   d.Timestamps,
		Tokenize:     d.Tokenize,
	}
	for _, fd := range d.Fields {
		f := NewField(fd)
		f.Nullable = d.IsNullable(fd)
		f.Unique = d.IsUnique(fd)
		f.Indexed = d.IsIndexed(fd)
		t.Fields = append(t.Fields, f)
		if f.Indexed {
			t.Indexes = appendUnique(t.Indexes, f.Name)
		}
		if f.Unique {
			t.UniqueIndexes = appendUnique(t.UniqueIndexes, f.Name)
		}
	}
	for _, name := range d.Indexes {
		t.Indexes = appendUnique(t.Indexes, name)
	}
	for _, name := range d.UniqueIndexes {
		t.UniqueIndexes = appendUnique(t.UniqueIndexes, name)
	}
	if err := t.resolveEdges(d.Edges); err != nil {
		return nil, err
	}
	if err := t.check(); err != nil {
		return nil, err
	}
	return t, nil
}

// resolveEdges derives the foreign key of every relation. A BelongsTo key
// that matches a declared field uses that field as the key column; one
// that does not adds an implicit key column. A HasOne or HasMany key lives
// on the related table and must not shadow a declared field.
func (t *Type) resolveEdges(edges []*edge.Descriptor) error {
	for _, ed := range edges {
		e := &Edge{
			Name:        ed.Name,
			StructField: naming.Pascal(ed.Name),
			Kind:        ed.Kind,
			Entity:      ed.Entity,
			ForeignKey:  ed.ForeignKeyFor(t.Name),
		}
		declared := t.Field(e.ForeignKey)
		switch {
		case e.Kind == edge.BelongsTo && declared != nil:
			e.Field = declared
		case e.Kind == edge.BelongsTo:
			if fk := t.foreignKey(e.ForeignKey); fk != nil {
				e.Field = fk
				break
			}
			e.Field = &Field{Name: e.ForeignKey, StructField: naming.Pascal(e.ForeignKey), Type: t.ID.Type}
			t.ForeignKeys = append(t.ForeignKeys, e.Field)
		case declared != nil:
			return NewSchemaError(t.Name, e.Name, fmt.Sprintf("foreign key %q of %s relation collides with a declared field", e.ForeignKey, e.Kind), nil)
		}
		t.Edges = append(t.Edges, e)
	}
	return nil
}

// check rejects reserved column names and Go identifier collisions.
func (t *Type) check() error {
	reserved := map[string]bool{t.ID.Name: true}
	if t.HasFiles() {
		reserved[ColumnFiles] = true
	}
	if t.Timestamps {
		reserved[ColumnCreatedAt] = true
		reserved[ColumnUpdatedAt] = true
	}
	if t.SoftDeletes {
		reserved[ColumnDeletedAt] = true
	}
	idents := make(map[string]string)
	add := func(ident, owner string) error {
		if prev, ok := idents[ident]; ok {
			return NewSchemaError(t.Name, owner, fmt.Sprintf("Go identifier %s is also used by %s", ident, prev), nil)
		}
		idents[ident] = owner
		return nil
	}
	if err := add(t.ID.StructField, t.ID.Name); err != nil {
		return err
	}
	for _, f := range t.Columns() {
		if f != t.ID && reserved[f.Name] {
			return NewSchemaError(t.Name, f.Name, fmt.Sprintf("column %q is reserved", f.Name), nil)
		}
		if err := add(f.StructField, f.Name); err != nil {
			return err
		}
	}
	for _, e := range t.Edges {
		if err := add(e.StructField, e.Name); err != nil {
			return err
		}
	}
	for _, col := range []string{ColumnFiles, ColumnCreatedAt, ColumnUpdatedAt, ColumnDeletedAt} {
		if reserved[col] {
			if err := add(naming.Pascal(col), col); err != nil {
				return err
			}
		}
	}
	return nil
}

// Kind implements Request.
func (*Type) Kind() Kind { return KindModel }

// ArtifactName implements Request.
func (t *Type) ArtifactName() string { return t.Name }

// Receiver returns the receiver name of the type's methods.
func (t *Type) Receiver() string {
	return naming.Receiver(t.Name)
}

// Label returns the snake_case name of the type, used as its registry token.
func (t *Type) Label() string {
	return naming.Snake(t.Name)
}

// HasFiles reports if the model stores attachments.
func (t *Type) HasFiles() bool {
	return len(t.Files) > 0 || len(t.MultiFiles) > 0
}

// Field returns the declared field with the given column name, or nil.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (t *Type) foreignKey(name string) *Field {
	for _, f := range t.ForeignKeys {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Columns returns the declared fields followed by the implicit foreign
// key columns.
func (t *Type) Columns() []*Field {
	return append(slices.Clone(t.Fields), t.ForeignKeys...)
}

// UniqueFields returns the declared fields marked unique, in declaration
// order.
func (t *Type) UniqueFields() []*Field {
	var fields []*Field
	for _, f := range t.Fields {
		if f.Unique {
			fields = append(fields, f)
		}
	}
	return fields
}

// FinderName returns the name of the finder of a unique field.
//
//	User, email => FindUserByEmail
func (t *Type) FinderName(f *Field) string {
	return "Find" + t.Name + "By" + f.StructField
}

// CreateMigration returns the create-table migration of the model. Its
// columns match the struct the model generator emits.
func (t *Type) CreateMigration() *Migration {
	columns := t.Columns()
	if t.HasFiles() {
		columns = append(columns, &Field{
			Name:        ColumnFiles,
			StructField: "Files",
			Type:        field.NewTypeInfo("jsonb"),
			Nullable:    true,
		})
	}
	m := newMigration(t.config, "create_"+t.Table+"_table", MigrationCreate, t.Table, columns, t.Timestamps, t.SoftDeletes)
	for _, name := range t.Indexes {
		if f := t.Field(name); f == nil || !f.Unique {
			m.Indexes = appendUnique(m.Indexes, name)
		}
	}
	return m
}

func appendUnique(names []string, name string) []string {
	if slices.Contains(names, name) {
		return names
	}
	return append(names, name)
}
