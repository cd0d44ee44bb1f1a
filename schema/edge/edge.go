package edge

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tideorm/tide/naming"
)

// Sentinel errors returned by Parse, wrapped in *ParseError.
var (
	// ErrMalformed indicates a token with fewer than three parts.
	ErrMalformed = errors.New("tide: malformed relation definition")
	// ErrUnknownKind indicates a relation kind outside the known set.
	ErrUnknownKind = errors.New("tide: unknown relation type")
)

// A Kind is the direction of a relation.
type Kind uint8

// Relation kinds.
const (
	BelongsTo Kind = iota + 1
	HasOne
	HasMany
)

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	switch k {
	case BelongsTo:
		return "belongs_to"
	case HasOne:
		return "has_one"
	case HasMany:
		return "has_many"
	default:
		return "invalid"
	}
}

// Unique reports if the relation holds at most one entity.
func (k Kind) Unique() bool {
	return k == BelongsTo || k == HasOne
}

// Inverse reports if the foreign key lives on the related table.
func (k Kind) Inverse() bool {
	return k == HasOne || k == HasMany
}

var kinds = map[string]Kind{
	"belongs_to": BelongsTo,
	"belongsto":  BelongsTo,
	"has_one":    HasOne,
	"hasone":     HasOne,
	"has_many":   HasMany,
	"hasmany":    HasMany,
}

// A Descriptor describes one association of an entity.
type Descriptor struct {
	// Name of the struct field holding the relation.
	Name   string
	Kind   Kind
	Entity string
	// ForeignKey is the explicit key column, empty when derived.
	ForeignKey string
}

// ForeignKeyFor returns the foreign key column of the relation owned by the
// given entity. An explicit key wins. BelongsTo derives it from the related
// entity, HasOne and HasMany from the owner.
//
//	author:belongs_to:User  => user_id
//	posts:has_many:Post     => <owner>_id
func (d *Descriptor) ForeignKeyFor(owner string) string {
	switch {
	case d.ForeignKey != "":
		return d.ForeignKey
	case d.Kind == BelongsTo:
		return naming.Snake(d.Entity) + "_id"
	default:
		return naming.Snake(owner) + "_id"
	}
}

// ParseError is returned when a relation token cannot be parsed.
type ParseError struct {
	Token string
	Kind  string
	Err   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if e.Kind != "" {
		b.WriteString(" ")
		b.WriteString(e.Kind)
	}
	b.WriteString(` in "`)
	b.WriteString(e.Token)
	b.WriteString(`"`)
	return b.String()
}

// Unwrap returns the sentinel error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse parses a single relation token of the form:
//
//	name:kind:Entity[:foreign_key]
func Parse(token string) (*Descriptor, error) {
	parts := strings.Split(token, ":")
	if len(parts) < 3 {
		return nil, &ParseError{Token: token, Err: ErrMalformed}
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if parts[0] == "" || parts[2] == "" {
		return nil, &ParseError{Token: token, Err: ErrMalformed}
	}
	kind, ok := kinds[cases.Fold().String(parts[1])]
	if !ok {
		return nil, &ParseError{Token: token, Kind: parts[1], Err: ErrUnknownKind}
	}
	d := &Descriptor{
		Name:   parts[0],
		Kind:   kind,
		Entity: naming.Pascal(parts[2]),
	}
	if len(parts) > 3 {
		d.ForeignKey = parts[3]
	}
	return d, nil
}

// ParseList parses a comma-separated list of relation tokens. Failing tokens
// are dropped and returned as warnings next to the accepted relations.
func ParseList(list string) ([]*Descriptor, []error) {
	var (
		edges    []*Descriptor
		warnings []error
	)
	for _, token := range strings.Split(list, ",") {
		if strings.TrimSpace(token) == "" {
			continue
		}
		d, err := Parse(token)
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		edges = append(edges, d)
	}
	return edges, warnings
}
