package field

import (
	"errors"
	"strings"
)

// Sentinel errors returned by Parse, wrapped in *ParseError.
var (
	// ErrMalformed indicates a token without a name and a type.
	ErrMalformed = errors.New("tide: malformed field definition")
	// ErrUnknownModifier indicates a modifier outside the known set.
	ErrUnknownModifier = errors.New("tide: unknown field modifier")
)

// A Descriptor describes one column of an entity.
type Descriptor struct {
	Name     string
	Info     TypeInfo
	Nullable bool
	Unique   bool
	Indexed  bool
	// Default holds the literal default value as written, if any.
	Default *string
}

// HasDefault reports if the field declares a default value.
func (d *Descriptor) HasDefault() bool {
	return d.Default != nil
}

// ParseError is returned when a field token cannot be parsed.
type ParseError struct {
	Token    string
	Modifier string
	Err      error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if e.Modifier != "" {
		b.WriteString(" ")
		b.WriteString(e.Modifier)
	}
	b.WriteString(" in ")
	b.WriteString(`"` + e.Token + `"`)
	return b.String()
}

// Unwrap returns the sentinel error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse parses a single field token of the form:
//
//	name:type[:modifier]*
//
// Modifiers are case-insensitive: nullable (null), unique (uniq),
// indexed (index, idx) and default=<value>. The value of a default keeps
// its original case.
func Parse(token string) (*Descriptor, error) {
	parts := strings.Split(token, ":")
	if len(parts) < 2 {
		return nil, &ParseError{Token: token, Err: ErrMalformed}
	}
	d := &Descriptor{
		Name: strings.TrimSpace(parts[0]),
		Info: NewTypeInfo(parts[1]),
	}
	if d.Name == "" || d.Info.Ident == "" {
		return nil, &ParseError{Token: token, Err: ErrMalformed}
	}
	for _, p := range parts[2:] {
		mod := strings.TrimSpace(p)
		switch key := fold(mod); {
		case key == "nullable" || key == "null":
			d.Nullable = true
		case key == "unique" || key == "uniq":
			d.Unique = true
		case key == "indexed" || key == "index" || key == "idx":
			d.Indexed = true
		case hasDefaultPrefix(mod):
			v := mod[len(defaultPrefix):]
			d.Default = &v
		default:
			return nil, &ParseError{Token: token, Modifier: mod, Err: ErrUnknownModifier}
		}
	}
	return d, nil
}

const defaultPrefix = "default="

func hasDefaultPrefix(mod string) bool {
	return len(mod) >= len(defaultPrefix) && strings.EqualFold(mod[:len(defaultPrefix)], defaultPrefix)
}

// ParseList parses a comma-separated list of field tokens. Tokens that fail
// to parse are dropped and reported as warnings, so one typo never removes
// the other fields. Blank tokens are skipped and a repeated field name keeps
// its first declaration.
func ParseList(list string) ([]*Descriptor, []error) {
	var (
		fields   []*Descriptor
		warnings []error
		seen     = make(map[string]struct{})
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
		if _, ok := seen[d.Name]; ok {
			warnings = append(warnings, &DuplicateError{Name: d.Name})
			continue
		}
		seen[d.Name] = struct{}{}
		fields = append(fields, d)
	}
	return fields, warnings
}

// DuplicateError reports a field name declared more than once in a list.
type DuplicateError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicateError) Error() string {
	return "tide: duplicate field " + `"` + e.Name + `"`
}
