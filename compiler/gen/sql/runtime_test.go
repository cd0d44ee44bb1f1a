package sql

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/tideorm/tide"
	"github.com/tideorm/tide/compiler/gen"
	"github.com/tideorm/tide/dialect"
	"github.com/tideorm/tide/schema"
)

// event mirrors the model generated for eventInput.
type event struct {
	ID        int64           `db:"id" json:"id" tide:"primary_key,auto_increment"`
	Title     string          `db:"title" json:"title"`
	When      *time.Time      `db:"when" json:"when,omitempty"`
	Files     json.RawMessage `db:"files" json:"files,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time      `db:"deleted_at" json:"deleted_at,omitempty"`
}

func (event) TableName() string { return "events" }

func (event) ModelOptions() tide.Options {
	return tide.Options{PrimaryKey: "id", Timestamps: true, SoftDelete: true, HasOneFiles: []string{"cover"}}
}

var eventInput = schema.Input{
	Name:        "Event",
	Fields:      "title:string,when:datetime",
	Nullable:    "when",
	Files:       "cover",
	Timestamps:  true,
	SoftDeletes: true,
}

func TestGeneratedSchema_SQLite(t *testing.T) {
	g := newTestGenerator(t, gen.WithDriver(dialect.SQLite))
	typ := newTestType(t, g, eventInput)

	code := string(render(t, g, typ).Content)
	for _, re := range []string{
		`When\s+\*time\.Time\s+` + "`" + `db:"when"`,
		`Files\s+json\.RawMessage\s+` + "`" + `db:"files"`,
		`DeletedAt\s+\*time\.Time\s+` + "`" + `db:"deleted_at"`,
	} {
		assert.Regexp(t, re, code)
	}

	up, _ := CreateTable(dialect.SQLite, typ.CreateMigration())
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()
	require.NoError(t, tide.Exec(ctx, db, up...))

	when := time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC)
	withFiles := event{Title: "launch", When: &when, Files: json.RawMessage(`{"cover":"c.png"}`)}
	require.NoError(t, tide.Insert(ctx, db, &withFiles))
	bare := event{Title: "draft"}
	require.NoError(t, tide.Insert(ctx, db, &bare))

	got, err := tide.Find[event](ctx, db, withFiles.ID)
	require.NoError(t, err)
	require.NotNil(t, got.When)
	assert.True(t, when.Equal(*got.When))
	assert.JSONEq(t, `{"cover":"c.png"}`, string(got.Files))
	assert.False(t, got.CreatedAt.IsZero())
	assert.Nil(t, got.DeletedAt)

	got, err = tide.Find[event](ctx, db, bare.ID)
	require.NoError(t, err)
	assert.Nil(t, got.When)
	assert.Nil(t, got.Files)

	edit := event{ID: bare.ID, Title: "published"}
	require.NoError(t, tide.Update(ctx, db, &edit))
	assert.True(t, bare.CreatedAt.Equal(edit.CreatedAt))
	got, err = tide.Find[event](ctx, db, bare.ID)
	require.NoError(t, err)
	assert.Equal(t, "published", got.Title)

	require.NoError(t, tide.Delete(ctx, db, &edit))
	_, err = tide.Find[event](ctx, db, bare.ID)
	assert.True(t, tide.IsNotFound(err))
	all, err := tide.All[event](ctx, db)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
