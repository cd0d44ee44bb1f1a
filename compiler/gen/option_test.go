package gen

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tideorm/tide/dialect"
	"github.com/tideorm/tide/schema/field"
)

func TestWithHeader(t *testing.T) {
	t.Run("sets header", func(t *testing.T) {
		c := &Config{}
		err := WithHeader("Custom header")(c)

		require.NoError(t, err)
		assert.Equal(t, "Custom header", c.Header)
	})

	t.Run("empty header is allowed", func(t *testing.T) {
		c := &Config{Header: "existing"}
		err := WithHeader("")(c)

		require.NoError(t, err)
		assert.Equal(t, "", c.Header)
	})
}

func TestWithPrimaryKey(t *testing.T) {
	tests := []struct {
		name     string
		typ      string
		expected field.Type
		wantErr  bool
	}{
		{"i32", "i32", field.TypeInt32, false},
		{"bigint", "bigint", field.TypeInt64, false},
		{"string", "string", field.TypeString, false},
		{"uuid", "uuid", field.TypeUUID, false},
		{"float", "f64", 0, true},
		{"unknown", "geometry", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithPrimaryKey("id", tt.typ)(c)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "id", c.PrimaryKey)
			assert.Equal(t, tt.expected, c.PrimaryKeyType.Type)
		})
	}

	t.Run("empty name", func(t *testing.T) {
		err := WithPrimaryKey(" ", "i64")(&Config{})
		assert.True(t, IsConfigError(err))
	})
}

func TestWithDriver(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithDriver(dialect.MySQL)(c))
	assert.Equal(t, dialect.MySQL, c.Driver)

	require.NoError(t, WithDriverName("sqlite3")(c))
	assert.Equal(t, dialect.SQLite, c.Driver)

	assert.True(t, IsConfigError(WithDriver(dialect.Driver(0))(c)))
	assert.True(t, IsConfigError(WithDriverName("oracle")(c)))
	assert.Equal(t, dialect.SQLite, c.Driver)
}

func TestWithDirs(t *testing.T) {
	c := MustNewConfig(WithDirs(Dirs{Models: "app/models"}))
	assert.Equal(t, "app/models", c.Dirs.Models)
	assert.Equal(t, DefaultDirs().Migrations, c.Dirs.Migrations)
}

func TestWithModelDefaults(t *testing.T) {
	c := MustNewConfig(WithModelDefaults(false, true, true))
	assert.False(t, c.Timestamps)
	assert.True(t, c.SoftDeletes)
	assert.True(t, c.Tokenize)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	c := MustNewConfig(WithLogger(l))
	assert.Same(t, l, c.Logger)
	assert.True(t, IsConfigError(WithLogger(nil)(c)))
}

func TestEmptyValuesRejected(t *testing.T) {
	for name, opt := range map[string]Option{
		"root":            WithRoot(""),
		"module":          WithModule(""),
		"migration table": WithMigrationTable(""),
		"clock":           WithClock(nil),
		"workers":         WithWorkers(-1),
	} {
		t.Run(name, func(t *testing.T) {
			assert.True(t, IsConfigError(opt(&Config{})))
		})
	}
}

func TestApply(t *testing.T) {
	c := &Config{}
	err := c.Apply(WithModule("example.com/app"), WithWorkers(0), WithMigrationTable("migrations"))
	require.Error(t, err)
	assert.Equal(t, "example.com/app", c.Module)
	assert.Empty(t, c.MigrationTable, "Apply stops at the first error")
}

func TestApplyAll(t *testing.T) {
	c := &Config{}
	err := c.ApplyAll(
		WithWorkers(0),
		WithClock(func() time.Time { return time.Time{} }),
		WithRoot(""),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Workers")
	assert.Contains(t, err.Error(), "Root")
	assert.NotNil(t, c.Now, "valid options are still applied")
}
