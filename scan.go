package tide

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// timeLayouts are the textual forms accepted for time columns, tried in
// order. The first is time.Time.String, which drivers such as
// modernc.org/sqlite write for TEXT columns.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999 -0700 MST",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
	"15:04:05.999999999",
}

// parseTime parses a time stored as text.
func parseTime(s string) (time.Time, error) {
	// Drop the monotonic clock reading of time.Time.String.
	if i := strings.Index(s, " m="); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("tide: cannot parse %q as time", s)
}

var scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()

// needsConversion reports if values of t are scanned through fieldScanner.
// That covers time.Time, which TEXT columns return as strings, and byte
// slices such as json.RawMessage, which may come back as strings or NULL.
func needsConversion(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if reflect.PointerTo(t).Implements(scannerType) {
		return false
	}
	return t == timeType || t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
}

// fieldScanner scans a column into an addressable model field.
type fieldScanner struct {
	v reflect.Value
}

// Scan implements sql.Scanner.
func (s fieldScanner) Scan(src any) error {
	v := s.v
	if src == nil {
		v.Set(reflect.Zero(v.Type()))
		return nil
	}
	if v.Kind() == reflect.Pointer {
		elem := reflect.New(v.Type().Elem())
		if err := (fieldScanner{v: elem.Elem()}).Scan(src); err != nil {
			return err
		}
		v.Set(elem)
		return nil
	}
	if v.Type() == timeType {
		var t time.Time
		switch x := src.(type) {
		case time.Time:
			t = x
		case string:
			p, err := parseTime(x)
			if err != nil {
				return err
			}
			t = p
		case []byte:
			p, err := parseTime(string(x))
			if err != nil {
				return err
			}
			t = p
		default:
			return fmt.Errorf("tide: cannot scan %T into %s", src, v.Type())
		}
		v.Set(reflect.ValueOf(t))
		return nil
	}
	var b []byte
	switch x := src.(type) {
	case string:
		b = []byte(x)
	case []byte:
		// Drivers may reuse the buffer on the next row.
		b = append([]byte(nil), x...)
	default:
		return fmt.Errorf("tide: cannot scan %T into %s", src, v.Type())
	}
	v.Set(reflect.ValueOf(b).Convert(v.Type()))
	return nil
}

// dest returns the scan target of column c in record v.
func (c *column) dest(v reflect.Value) any {
	f := v.FieldByIndex(c.index)
	if needsConversion(c.typ) {
		return fieldScanner{v: f}
	}
	return f.Addr().Interface()
}

// selectRows runs query and scans every row into a new record of T.
// Columns that are not part of T are discarded.
func selectRows[T Model](ctx context.Context, db Executor, m *meta, query string, args ...any) ([]T, error) {
	rows, err := db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	records := []T{}
	for rows.Next() {
		var record T
		v := reflect.ValueOf(&record).Elem()
		dests := make([]any, len(names))
		for i, name := range names {
			if c, ok := m.byName[name]; ok {
				dests[i] = c.dest(v)
			} else {
				dests[i] = new(any)
			}
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
