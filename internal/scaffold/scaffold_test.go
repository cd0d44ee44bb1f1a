package scaffold

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tideorm/tide/compiler/gen"
	"github.com/tideorm/tide/compiler/load"
	"github.com/tideorm/tide/config"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func clock() gen.Option {
	return gen.WithClock(func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) })
}

// newProject returns a project in a fresh module directory.
func newProject(t *testing.T) *Project {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/shop\n\ngo 1.24\n"), 0o644))
	p, err := Open(root, "", quiet, clock())
	require.NoError(t, err)
	return p
}

func TestOpen(t *testing.T) {
	root := t.TempDir()
	p, err := Open(root, "", quiet)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Paths, p.Config.Paths)

	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte("paths:\n  models: app/models\n"), 0o644))
	p, err = Open(root, "", quiet)
	require.NoError(t, err)
	assert.Equal(t, "app/models", p.Config.Paths.Models)

	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte("database: ["), 0o644))
	_, err = Open(root, "", quiet)
	require.Error(t, err)
}

func TestProject_Model(t *testing.T) {
	p := newProject(t)
	ctx := context.Background()

	out, err := p.Model(ctx, load.Entity{
		Name:      "User",
		Fields:    []string{"name:string", "email:string:unique", "bogus"},
		Migration: true,
		Factory:   true,
	}, false)
	require.NoError(t, err)
	require.Len(t, out.Warnings, 1)
	require.Len(t, out.Results, 3)
	assert.Equal(t, "User", out.Results[0].Name)
	assert.Equal(t, "20240102030405_create_users_table", out.Results[1].Name)
	assert.Equal(t, "UserFactory", out.Results[2].Name)
	for _, path := range out.Paths() {
		assert.FileExists(t, path)
	}

	models, err := p.Models()
	require.NoError(t, err)
	assert.Equal(t, []string{"user"}, models)

	_, err = p.Model(ctx, load.Entity{Name: " "}, false)
	assert.ErrorIs(t, err, gen.ErrMissingName)
}

func TestProject_ModelDryRun(t *testing.T) {
	p := newProject(t)
	out, err := p.Model(context.Background(), load.Entity{Name: "Post", Fields: []string{"title:string"}}, true)
	require.NoError(t, err)
	require.Len(t, out.Artifacts, 1)
	assert.Empty(t, out.Results)
	assert.Contains(t, string(out.Artifacts[0].Content), "type Post struct")
	assert.NoFileExists(t, out.Artifacts[0].Path)

	models, err := p.Models()
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestProject_Companions(t *testing.T) {
	p := newProject(t)
	ctx := context.Background()

	out, err := p.Migration(ctx, load.Migration{Name: "add_phone_to_users", Table: "users", Fields: []string{"phone:string"}}, false)
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "20240102030405_add_phone_to_users", out.Results[0].Name)

	out, err = p.Seeder(ctx, "User", "User", 5, false)
	require.NoError(t, err)
	assert.Equal(t, "UserSeeder", out.Results[0].Name)

	out, err = p.Factory(ctx, "User", "", false)
	require.NoError(t, err)
	assert.Equal(t, "UserFactory", out.Results[0].Name)

	out, err = p.Handler(ctx, "User", "User", true, true, false)
	require.NoError(t, err)
	assert.Equal(t, "UserHandler", out.Results[0].Name)
	src, err := os.ReadFile(out.Results[0].Path)
	require.NoError(t, err)
	assert.Contains(t, string(src), "ShowByToken")

	_, err = p.Handler(ctx, "Status", "", true, false, false)
	assert.ErrorIs(t, err, gen.ErrMissingModel)
	_, err = p.Seeder(ctx, "", "", 0, false)
	assert.ErrorIs(t, err, gen.ErrMissingName)
}

func TestProject_NoModule(t *testing.T) {
	p, err := Open(t.TempDir(), "", quiet)
	require.NoError(t, err)
	_, err = p.Factory(context.Background(), "User", "", false)
	require.Error(t, err)
}

func TestInit(t *testing.T) {
	root := filepath.Join(t.TempDir(), "app")
	res, err := Init(context.Background(), root, "sqlite", quiet, clock())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, config.FileName), res.ConfigPath)
	assert.Len(t, res.Indexes, len(gen.Kinds()))
	require.NotNil(t, res.Seeder)
	assert.Equal(t, "DatabaseSeeder", res.Seeder.Name)
	assert.FileExists(t, res.Seeder.Path)

	c, err := config.Load(res.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", c.Database.Driver)

	src, err := os.ReadFile(filepath.Join(root, "internal", "seeders", gen.IndexFile))
	require.NoError(t, err)
	assert.Equal(t, []string{"database_seeder"}, gen.Modules(src))

	_, err = Init(context.Background(), root, "sqlite", quiet)
	assert.ErrorIs(t, err, ErrConfigExists)
}

func TestInit_UnknownDriver(t *testing.T) {
	root := t.TempDir()
	_, err := Init(context.Background(), root, "oracle", quiet)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(root, config.FileName))
}
