package tide

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Well-known columns.
const (
	ColumnCreatedAt = "created_at"
	ColumnUpdatedAt = "updated_at"
	ColumnDeletedAt = "deleted_at"
)

var (
	metas    sync.Map // reflect.Type => *meta
	timeType = reflect.TypeOf(time.Time{})
	uuidType = reflect.TypeOf(uuid.UUID{})
	// now is replaced in tests.
	now = func() time.Time { return time.Now().UTC() }
)

// meta holds the table layout of a model type.
type meta struct {
	table   string
	opts    Options
	columns []*column
	byName  map[string]*column
	pk      *column
	// autoIncrement is set when the database assigns the primary key.
	autoIncrement bool
}

type column struct {
	name  string
	index []int
	typ   reflect.Type
	// attrs are the comma-separated values of the tide tag.
	attrs []string
}

func (c *column) has(attr string) bool {
	for _, a := range c.attrs {
		if a == attr {
			return true
		}
	}
	return false
}

// metaOf returns the cached metadata of T.
func metaOf[T Model]() (*meta, error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if m, ok := metas.Load(typ); ok {
		return m.(*meta), nil
	}
	var zero T
	m, err := newMeta(typ, zero)
	if err != nil {
		return nil, err
	}
	actual, _ := metas.LoadOrStore(typ, m)
	return actual.(*meta), nil
}

func newMeta(typ reflect.Type, model Model) (*meta, error) {
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("tide: model %s is not a struct", typ)
	}
	m := &meta{table: model.TableName(), byName: make(map[string]*column)}
	if o, ok := model.(ModelOptioner); ok {
		m.opts = o.ModelOptions()
	}
	if m.opts.PrimaryKey == "" {
		m.opts.PrimaryKey = "id"
	}
	m.walk(typ, nil)
	m.pk = m.byName[m.opts.PrimaryKey]
	if m.pk == nil {
		return nil, fmt.Errorf("%w: %s has no %q column", ErrNoPrimaryKey, typ, m.opts.PrimaryKey)
	}
	if len(m.pk.attrs) > 0 {
		m.autoIncrement = m.pk.has("auto_increment")
	} else {
		m.autoIncrement = isInt(m.pk.typ.Kind())
	}
	return m, nil
}

// walk collects the columns of typ, descending into untagged embedded
// structs. Fields tagged db:"-" and unexported fields are skipped.
func (m *meta) walk(typ reflect.Type, index []int) {
	for i := range typ.NumField() {
		sf := typ.Field(i)
		if !sf.IsExported() && !sf.Anonymous {
			continue
		}
		tag, hasTag := sf.Tag.Lookup("db")
		if tag == "-" {
			continue
		}
		path := append(append([]int(nil), index...), i)
		if sf.Anonymous && !hasTag && sf.Type.Kind() == reflect.Struct {
			m.walk(sf.Type, path)
			continue
		}
		if !sf.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = strings.ToLower(sf.Name)
		}
		if _, dup := m.byName[name]; dup {
			continue
		}
		c := &column{name: name, index: path, typ: sf.Type}
		if attrs := sf.Tag.Get("tide"); attrs != "" {
			c.attrs = strings.Split(attrs, ",")
		}
		m.columns = append(m.columns, c)
		m.byName[name] = c
	}
}

// column validates a column name coming from the caller.
func (m *meta) column(name string) (*column, error) {
	c, ok := m.byName[name]
	if !ok {
		return nil, NewValidationError("column", fmt.Errorf("%s has no column %q", m.table, name))
	}
	return c, nil
}

// selectList returns the comma-separated column list.
func (m *meta) selectList(q quoter) string {
	names := make([]string, len(m.columns))
	for i, c := range m.columns {
		names[i] = q(c.name)
	}
	return strings.Join(names, ", ")
}

// softDelete reports if rows are marked deleted instead of removed.
func (m *meta) softDelete() bool {
	if !m.opts.SoftDelete {
		return false
	}
	_, ok := m.byName[ColumnDeletedAt]
	return ok
}

// alive returns the condition excluding soft-deleted rows, or an empty
// string.
func (m *meta) alive(q quoter) string {
	if m.softDelete() {
		return q(ColumnDeletedAt) + " IS NULL"
	}
	return ""
}

// touch sets the timestamp columns of v. created is set on inserts only.
func (m *meta) touch(v reflect.Value, insert bool) {
	if !m.opts.Timestamps {
		return
	}
	t := reflect.ValueOf(now())
	set := func(name string) {
		if c, ok := m.byName[name]; ok && c.typ == timeType {
			v.FieldByIndex(c.index).Set(t)
		}
	}
	if insert {
		set(ColumnCreatedAt)
	}
	set(ColumnUpdatedAt)
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
