package tide

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Page sizes of Paginate.
const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// Page is one page of records.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PerPage  int   `json:"per_page"`
	Total    int64 `json:"total"`
	LastPage int   `json:"last_page"`
}

// quoter quotes identifiers for the driver behind an Executor.
type quoter func(string) string

func quoterOf(db Executor) quoter {
	if strings.HasPrefix(db.DriverName(), "mysql") {
		return func(s string) string { return "`" + strings.ReplaceAll(s, "`", "``") + "`" }
	}
	return func(s string) string { return `"` + strings.ReplaceAll(s, `"`, `""`) + `"` }
}

// selectFrom builds a SELECT of every column of m with the given
// conditions, joined by AND.
func selectFrom(q quoter, m *meta, conds ...string) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(m.selectList(q))
	b.WriteString(" FROM ")
	b.WriteString(q(m.table))
	where(&b, q, m, conds...)
	return b.String()
}

func where(b *strings.Builder, q quoter, m *meta, conds ...string) {
	if alive := m.alive(q); alive != "" {
		conds = append(conds, alive)
	}
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
}

// All returns every record of T ordered by primary key.
func All[T Model](ctx context.Context, db Executor) ([]T, error) {
	m, err := metaOf[T]()
	if err != nil {
		return nil, err
	}
	q := quoterOf(db)
	query := selectFrom(q, m) + " ORDER BY " + q(m.pk.name)
	records, err := selectRows[T](ctx, db, m, db.Rebind(query))
	if err != nil {
		return nil, NewQueryError(m.table, "select", err)
	}
	return records, nil
}

// Find returns the record of T with the given primary key.
func Find[T Model](ctx context.Context, db Executor, id any) (*T, error) {
	m, err := metaOf[T]()
	if err != nil {
		return nil, err
	}
	return get[T](ctx, db, m, m.pk, id)
}

// FindBy returns the first record of T whose column equals value.
func FindBy[T Model](ctx context.Context, db Executor, column string, value any) (*T, error) {
	m, err := metaOf[T]()
	if err != nil {
		return nil, err
	}
	c, err := m.column(column)
	if err != nil {
		return nil, err
	}
	return get[T](ctx, db, m, c, value)
}

func get[T Model](ctx context.Context, db Executor, m *meta, c *column, value any) (*T, error) {
	q := quoterOf(db)
	query := selectFrom(q, m, q(c.name)+" = ?") + " LIMIT 1"
	records, err := selectRows[T](ctx, db, m, db.Rebind(query), value)
	switch {
	case err != nil:
		return nil, NewQueryError(m.table, "find", err)
	case len(records) == 0:
		return nil, NewNotFoundError(m.table, value)
	}
	return &records[0], nil
}

// Where returns the records of T whose column equals value, ordered by
// primary key.
func Where[T Model](ctx context.Context, db Executor, column string, value any) ([]T, error) {
	m, err := metaOf[T]()
	if err != nil {
		return nil, err
	}
	c, err := m.column(column)
	if err != nil {
		return nil, err
	}
	q := quoterOf(db)
	query := selectFrom(q, m, q(c.name)+" = ?") + " ORDER BY " + q(m.pk.name)
	records, err := selectRows[T](ctx, db, m, db.Rebind(query), value)
	if err != nil {
		return nil, NewQueryError(m.table, "select", err)
	}
	return records, nil
}

// Count returns the number of records of T.
func Count[T Model](ctx context.Context, db Executor) (int64, error) {
	m, err := metaOf[T]()
	if err != nil {
		return 0, err
	}
	q := quoterOf(db)
	var b strings.Builder
	b.WriteString("SELECT COUNT(*) FROM ")
	b.WriteString(q(m.table))
	where(&b, q, m)
	var n int64
	if err := sqlx.GetContext(ctx, db, &n, db.Rebind(b.String())); err != nil {
		return 0, NewQueryError(m.table, "count", err)
	}
	return n, nil
}

// Paginate returns one page of records ordered by primary key. Pages are
// 1-based; out-of-range arguments fall back to the first page and
// DefaultPerPage, and perPage is capped at MaxPerPage.
func Paginate[T Model](ctx context.Context, db Executor, page, perPage int) (*Page[T], error) {
	m, err := metaOf[T]()
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	perPage = min(perPage, MaxPerPage)
	total, err := Count[T](ctx, db)
	if err != nil {
		return nil, err
	}
	p := &Page[T]{Items: []T{}, Page: page, PerPage: perPage, Total: total, LastPage: 1}
	if total > 0 {
		p.LastPage = int((total + int64(perPage) - 1) / int64(perPage))
	}
	q := quoterOf(db)
	query := selectFrom(q, m) + " ORDER BY " + q(m.pk.name) + " LIMIT ? OFFSET ?"
	items, err := selectRows[T](ctx, db, m, db.Rebind(query), perPage, (page-1)*perPage)
	if err != nil {
		return nil, NewQueryError(m.table, "paginate", err)
	}
	p.Items = items
	return p, nil
}

// Insert saves a new record. Timestamps are set when the model keeps them,
// zero UUID keys are generated, and database-assigned keys are written
// back to record.
func Insert[T Model](ctx context.Context, db Executor, record *T) error {
	m, err := metaOf[T]()
	if err != nil {
		return err
	}
	v := reflect.ValueOf(record).Elem()
	m.touch(v, true)
	if key := v.FieldByIndex(m.pk.index); m.pk.typ == uuidType && key.IsZero() {
		key.Set(reflect.ValueOf(uuid.New()))
	}
	q := quoterOf(db)
	var (
		names []string
		args  []any
	)
	for _, c := range m.columns {
		if c == m.pk && m.autoIncrement {
			continue
		}
		names = append(names, q(c.name))
		args = append(args, arg(v.FieldByIndex(c.index)))
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", q(m.table), strings.Join(names, ", "), placeholders(len(names)))
	if !m.autoIncrement {
		if _, err := db.ExecContext(ctx, db.Rebind(query), args...); err != nil {
			return NewQueryError(m.table, "insert", err)
		}
		return nil
	}
	key := v.FieldByIndex(m.pk.index)
	if sqlx.BindType(db.DriverName()) == sqlx.DOLLAR {
		query += " RETURNING " + q(m.pk.name)
		if err := db.QueryRowxContext(ctx, db.Rebind(query), args...).Scan(key.Addr().Interface()); err != nil {
			return NewQueryError(m.table, "insert", err)
		}
		return nil
	}
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return NewQueryError(m.table, "insert", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return NewQueryError(m.table, "insert", err)
	}
	setInt(key, id)
	return nil
}

// Update saves every column of an existing record except its key and
// created_at. It returns a NotFoundError when no row has the key. A zero
// created_at on record is read back from the row.
func Update[T Model](ctx context.Context, db Executor, record *T) error {
	m, err := metaOf[T]()
	if err != nil {
		return err
	}
	v := reflect.ValueOf(record).Elem()
	m.touch(v, false)
	q := quoterOf(db)
	var (
		sets []string
		args []any
	)
	for _, c := range m.columns {
		if c == m.pk || c.name == ColumnCreatedAt {
			continue
		}
		sets = append(sets, q(c.name)+" = ?")
		args = append(args, arg(v.FieldByIndex(c.index)))
	}
	id := v.FieldByIndex(m.pk.index).Interface()
	var b strings.Builder
	fmt.Fprintf(&b, "UPDATE %s SET %s", q(m.table), strings.Join(sets, ", "))
	where(&b, q, m, q(m.pk.name)+" = ?")
	res, err := db.ExecContext(ctx, db.Rebind(b.String()), append(args, id)...)
	if err != nil {
		return NewQueryError(m.table, "update", err)
	}
	if err := expectRows(res, m, id); err != nil {
		return err
	}
	c, ok := m.byName[ColumnCreatedAt]
	if !ok || !v.FieldByIndex(c.index).IsZero() {
		return nil
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", q(c.name), q(m.table), q(m.pk.name))
	if err := db.QueryRowxContext(ctx, db.Rebind(query), id).Scan(c.dest(v)); err != nil {
		return NewQueryError(m.table, "update", err)
	}
	return nil
}

// Delete removes record, or marks it deleted for soft-deleting models.
func Delete[T Model](ctx context.Context, db Executor, record *T) error {
	m, err := metaOf[T]()
	if err != nil {
		return err
	}
	v := reflect.ValueOf(record).Elem()
	if err := DeleteByID[T](ctx, db, v.FieldByIndex(m.pk.index).Interface()); err != nil {
		return err
	}
	if m.softDelete() {
		if c := m.byName[ColumnDeletedAt]; c.typ == reflect.PointerTo(timeType) {
			t := now()
			v.FieldByIndex(c.index).Set(reflect.ValueOf(&t))
		}
	}
	return nil
}

// deleteStmt starts the statement removing rows of m, or marking them
// deleted for soft-deleting models.
func deleteStmt(b *strings.Builder, q quoter, m *meta) []any {
	if m.softDelete() {
		fmt.Fprintf(b, "UPDATE %s SET %s = ?", q(m.table), q(ColumnDeletedAt))
		return []any{now()}
	}
	fmt.Fprintf(b, "DELETE FROM %s", q(m.table))
	return nil
}

// DeleteByID removes the record with the given key, or marks it deleted
// for soft-deleting models. It returns a NotFoundError when no live row
// has the key.
func DeleteByID[T Model](ctx context.Context, db Executor, id any) error {
	m, err := metaOf[T]()
	if err != nil {
		return err
	}
	q := quoterOf(db)
	var b strings.Builder
	args := deleteStmt(&b, q, m)
	where(&b, q, m, q(m.pk.name)+" = ?")
	res, err := db.ExecContext(ctx, db.Rebind(b.String()), append(args, id)...)
	if err != nil {
		return NewQueryError(m.table, "delete", err)
	}
	return expectRows(res, m, id)
}

// DeleteIn removes the records with the given keys and returns how many
// were affected. Soft-deleting models mark the rows instead.
func DeleteIn[T Model, K any](ctx context.Context, db Executor, ids []K) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	m, err := metaOf[T]()
	if err != nil {
		return 0, err
	}
	q := quoterOf(db)
	var b strings.Builder
	args := deleteStmt(&b, q, m)
	where(&b, q, m, q(m.pk.name)+" IN (?)")
	query, args, err := sqlx.In(b.String(), append(args, ids)...)
	if err != nil {
		return 0, NewQueryError(m.table, "delete", err)
	}
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return 0, NewQueryError(m.table, "delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, NewQueryError(m.table, "delete", err)
	}
	return n, nil
}

// Exec runs raw statements in order and stops at the first failure.
func Exec(ctx context.Context, db Executor, stmts ...string) error {
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("tide: exec %q: %w", firstLine(s), err)
		}
	}
	return nil
}

func expectRows(res sql.Result, m *meta, id any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return NewQueryError(m.table, "rows affected", err)
	}
	if n == 0 {
		return NewNotFoundError(m.table, id)
	}
	return nil
}

// arg returns field f as a statement argument. Nil slices are sent as
// NULL rather than as empty values.
func arg(f reflect.Value) any {
	if f.Kind() == reflect.Slice && f.IsNil() {
		return nil
	}
	return f.Interface()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func setInt(v reflect.Value, n int64) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v.SetUint(uint64(n))
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
