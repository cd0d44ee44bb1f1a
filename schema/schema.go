package schema

import (
	"errors"
	"strings"

	"github.com/tideorm/tide/naming"
	"github.com/tideorm/tide/schema/edge"
	"github.com/tideorm/tide/schema/field"
)

// ErrUnknownName is returned, wrapped in *NameError, for a name set entry
// that matches no column of the entity.
var ErrUnknownName = errors.New("tide: unknown field")

// NameError reports a name set entry that was dropped.
type NameError struct {
	// Set is the name set, such as "indexes" or "nullable".
	Set  string
	Name string
}

// Error implements the error interface.
func (e *NameError) Error() string {
	var b strings.Builder
	b.WriteString(ErrUnknownName.Error())
	b.WriteString(` "`)
	b.WriteString(e.Name)
	b.WriteString(`" in `)
	b.WriteString(e.Set)
	return b.String()
}

// Unwrap returns ErrUnknownName.
func (e *NameError) Unwrap() error {
	return ErrUnknownName
}

// Descriptor is the aggregate handed to the model generator: one entity
// with its columns, relations, name overrides and flags.
type Descriptor struct {
	Name   string
	Table  string
	Fields []*field.Descriptor
	Edges  []*edge.Descriptor

	Translatable  []string
	Files         []string
	MultiFiles    []string
	Indexes       []string
	UniqueIndexes []string
	NullableNames []string

	SoftDeletes bool
	Timestamps  bool
	Tokenize    bool
}

// TableName returns the override or the default plural snake_case table.
func (d *Descriptor) TableName() string {
	if d.Table != "" {
		return d.Table
	}
	return naming.Plural(naming.Snake(d.Name))
}

// HasFiles reports if the entity stores any attachments.
func (d *Descriptor) HasFiles() bool {
	return len(d.Files) > 0 || len(d.MultiFiles) > 0
}

// IsNullable reports if the named field is nullable inline or through the
// nullable name set.
func (d *Descriptor) IsNullable(f *field.Descriptor) bool {
	return f.Nullable || contains(d.NullableNames, f.Name)
}

// IsUnique reports if the named field is unique inline or through the
// unique index set.
func (d *Descriptor) IsUnique(f *field.Descriptor) bool {
	return f.Unique || contains(d.UniqueIndexes, f.Name)
}

// IsIndexed reports if the named field is indexed inline or through the
// index set.
func (d *Descriptor) IsIndexed(f *field.Descriptor) bool {
	return f.Indexed || contains(d.Indexes, f.Name)
}

// Field returns the field with the given name, or nil.
func (d *Descriptor) Field(name string) *field.Descriptor {
	for _, f := range d.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Input carries the raw strings a schema is built from, as they arrive
// from command-line flags or a schema file.
type Input struct {
	Name          string
	Table         string
	Fields        string
	Relations     string
	Translatable  string
	Files         string
	MultiFiles    string
	Indexes       string
	UniqueIndexes string
	Nullable      string
	SoftDeletes   bool
	Timestamps    bool
	Tokenize      bool
}

// Parse builds a Descriptor from raw input. Malformed field and relation
// tokens are dropped and returned as warnings.
func Parse(in Input) (*Descriptor, []error) {
	d := &Descriptor{
		Name:          naming.Pascal(strings.TrimSpace(in.Name)),
		Table:         strings.TrimSpace(in.Table),
		Translatable:  SplitList(in.Translatable),
		Files:         SplitList(in.Files),
		MultiFiles:    SplitList(in.MultiFiles),
		Indexes:       SplitList(in.Indexes),
		UniqueIndexes: SplitList(in.UniqueIndexes),
		NullableNames: SplitList(in.Nullable),
		SoftDeletes:   in.SoftDeletes,
		Timestamps:    in.Timestamps,
		Tokenize:      in.Tokenize,
	}
	fields, fieldWarnings := field.ParseList(in.Fields)
	edges, edgeWarnings := edge.ParseList(in.Relations)
	d.Fields, d.Edges = fields, edges
	warnings := append(fieldWarnings, edgeWarnings...)
	return d, append(warnings, d.prune()...)
}

// columns returns the names a name set may refer to: declared fields,
// implicit belongs-to keys and the timestamp columns of the flags.
func (d *Descriptor) columns() map[string]bool {
	cols := make(map[string]bool)
	for _, f := range d.Fields {
		cols[f.Name] = true
	}
	for _, e := range d.Edges {
		if e.Kind == edge.BelongsTo {
			cols[e.ForeignKeyFor(d.Name)] = true
		}
	}
	if d.Timestamps {
		cols["created_at"], cols["updated_at"] = true, true
	}
	if d.SoftDeletes {
		cols["deleted_at"] = true
	}
	return cols
}

// prune drops the entries of the column name sets that match no column and
// returns a *NameError for each. Attachment names are keys of the files
// column and are kept as given.
func (d *Descriptor) prune() []error {
	cols := d.columns()
	var warnings []error
	keep := func(set string, names []string) []string {
		var kept []string
		for _, n := range names {
			if cols[n] {
				kept = append(kept, n)
				continue
			}
			warnings = append(warnings, &NameError{Set: set, Name: n})
		}
		return kept
	}
	d.Translatable = keep("translatable", d.Translatable)
	d.Indexes = keep("indexes", d.Indexes)
	d.UniqueIndexes = keep("unique", d.UniqueIndexes)
	d.NullableNames = keep("nullable", d.NullableNames)
	return warnings
}

// SplitList splits a comma-separated name list, trimming blanks.
func SplitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
