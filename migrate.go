package tide

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"

	"github.com/jmoiron/sqlx"
)

// DefaultMigrationTable records applied migrations.
const DefaultMigrationTable = "migrations"

// txBeginner is implemented by executors that open transactions, such as
// *sqlx.DB. Migrations run in one transaction each when available.
type txBeginner interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// MigrationStatus reports whether a migration is applied.
type MigrationStatus struct {
	Name    string
	Applied bool
	// Batch is the run that applied the migration, 0 when pending.
	Batch int
}

// Migrator applies and reverts migrations in name order.
type Migrator struct {
	db         Executor
	table      string
	logger     *slog.Logger
	migrations []Migration
}

// MigratorOption configures a Migrator.
type MigratorOption func(*Migrator)

// WithMigrationTable sets the table recording applied migrations.
func WithMigrationTable(name string) MigratorOption {
	return func(m *Migrator) {
		if name != "" {
			m.table = name
		}
	}
}

// WithMigrationLogger sets the logger of the migrator.
func WithMigrationLogger(l *slog.Logger) MigratorOption {
	return func(m *Migrator) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMigrator returns a migrator over the given migrations. Duplicate
// names are rejected.
//
//	m, err := tide.NewMigrator(db, migrations.Migrations.All(),
//	    tide.WithMigrationTable(migrations.MigrationTable))
//	applied, err := m.Up(ctx)
func NewMigrator(db Executor, migrations []Migration, opts ...MigratorOption) (*Migrator, error) {
	m := &Migrator{
		db:         db,
		table:      DefaultMigrationTable,
		logger:     slog.Default(),
		migrations: append([]Migration(nil), migrations...),
	}
	for _, opt := range opts {
		opt(m)
	}
	sort.Slice(m.migrations, func(i, j int) bool {
		return m.migrations[i].Name() < m.migrations[j].Name()
	})
	for i := 1; i < len(m.migrations); i++ {
		if m.migrations[i].Name() == m.migrations[i-1].Name() {
			return nil, fmt.Errorf("tide: duplicate migration %q", m.migrations[i].Name())
		}
	}
	return m, nil
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (name VARCHAR(255) NOT NULL PRIMARY KEY, batch INTEGER NOT NULL)", m.table)
	if _, err := m.db.ExecContext(ctx, stmt); err != nil {
		return NewQueryError(m.table, "create", err)
	}
	return nil
}

// applied returns the batch of every applied migration.
func (m *Migrator) applied(ctx context.Context) (map[string]int, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}
	var rows []struct {
		Name  string `db:"name"`
		Batch int    `db:"batch"`
	}
	if err := sqlx.SelectContext(ctx, m.db, &rows, "SELECT name, batch FROM "+m.table); err != nil {
		return nil, NewQueryError(m.table, "select", err)
	}
	batches := make(map[string]int, len(rows))
	for _, r := range rows {
		batches[r.Name] = r.Batch
	}
	return batches, nil
}

// Status returns the state of every known migration in name order.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	batches, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}
	status := make([]MigrationStatus, len(m.migrations))
	for i, mg := range m.migrations {
		b, ok := batches[mg.Name()]
		status[i] = MigrationStatus{Name: mg.Name(), Applied: ok, Batch: b}
	}
	return status, nil
}

// Up applies every pending migration as one new batch and returns the
// names applied. It stops at the first failure.
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	batches, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}
	batch := 1
	for _, b := range batches {
		batch = max(batch, b+1)
	}
	var done []string
	for _, mg := range m.migrations {
		if _, ok := batches[mg.Name()]; ok {
			continue
		}
		record := m.db.Rebind("INSERT INTO " + m.table + " (name, batch) VALUES (?, ?)")
		err := m.run(ctx, func(db Executor) error {
			if err := mg.Up(ctx, db); err != nil {
				return err
			}
			_, err := db.ExecContext(ctx, record, mg.Name(), batch)
			return err
		})
		if err != nil {
			return done, &MigrationError{Name: mg.Name(), Op: "up", Err: err}
		}
		m.logger.InfoContext(ctx, "migration applied", "name", mg.Name(), "batch", batch)
		done = append(done, mg.Name())
	}
	return done, nil
}

// Rollback reverts the migrations of the last batch in reverse order and
// returns the names reverted.
func (m *Migrator) Rollback(ctx context.Context) ([]string, error) {
	batches, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}
	last := 0
	for _, b := range batches {
		last = max(last, b)
	}
	var done []string
	for i := len(m.migrations) - 1; i >= 0 && last > 0; i-- {
		mg := m.migrations[i]
		if batches[mg.Name()] != last {
			continue
		}
		forget := m.db.Rebind("DELETE FROM " + m.table + " WHERE name = ?")
		err := m.run(ctx, func(db Executor) error {
			if err := mg.Down(ctx, db); err != nil {
				return err
			}
			_, err := db.ExecContext(ctx, forget, mg.Name())
			return err
		})
		if err != nil {
			return done, &MigrationError{Name: mg.Name(), Op: "down", Err: err}
		}
		m.logger.InfoContext(ctx, "migration reverted", "name", mg.Name(), "batch", last)
		done = append(done, mg.Name())
	}
	return done, nil
}

// run calls fn in a transaction when the executor can open one.
func (m *Migrator) run(ctx context.Context, fn func(Executor) error) error {
	b, ok := m.db.(txBeginner)
	if !ok {
		return fn(m.db)
	}
	tx, err := b.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return fmt.Errorf("%w: rolling back: %v", err, rerr)
		}
		return err
	}
	return tx.Commit()
}

// Seed runs seeders in order and stops at the first failure.
func Seed(ctx context.Context, db Executor, seeders ...Seeder) error {
	for i, s := range seeders {
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("tide: seeder %d (%T): %w", i, s, err)
		}
	}
	return nil
}
