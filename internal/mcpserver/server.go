// Package mcpserver exposes the generators as Model Context Protocol tools.
package mcpserver

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tideorm/tide/compiler/gen"
	"github.com/tideorm/tide/internal/scaffold"
)

// Config configures the server.
type Config struct {
	// Dir is the project directory every tool works on.
	Dir string
	// ConfigPath is the project file, Dir/tide.yaml when empty.
	ConfigPath string
	Version    string
	Logger     *slog.Logger
	// Options are applied after the options of the project file.
	Options []gen.Option
}

func (c Config) open() (*scaffold.Project, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return scaffold.Open(c.Dir, c.ConfigPath, logger, c.Options...)
}

// NewServer returns a server with every tool registered.
func NewServer(c Config) *server.MCPServer {
	version := c.Version
	if version == "" {
		version = "devel"
	}
	s := server.NewMCPServer(
		"tide",
		version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)
	RegisterTools(s, c)
	return s
}

// ServeStdio serves the tools on stdin and stdout until stdin closes.
func ServeStdio(c Config) error {
	return server.ServeStdio(NewServer(c))
}

// RegisterTools adds the generation tools to s.
func RegisterTools(s *server.MCPServer, c Config) {
	dryRun := mcp.WithBoolean("dry_run",
		mcp.Description("Render the files without writing them"),
	)

	modelTool := mcp.NewTool("make_model",
		mcp.WithDescription("Generate a model, optionally with its migration, seeder and factory"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Model name, for example User"),
		),
		mcp.WithString("fields",
			mcp.Description("Comma-separated name:type[:modifier...] tokens, for example name:string,email:string:unique"),
		),
		mcp.WithString("relations",
			mcp.Description("Comma-separated name:kind:Entity[:foreign_key] tokens; kind is belongs_to, has_one or has_many"),
		),
		mcp.WithString("table", mcp.Description("Table name (default plural snake_case of the name)")),
		mcp.WithString("translatable", mcp.Description("Comma-separated translatable fields")),
		mcp.WithString("files", mcp.Description("Comma-separated single-file attachments")),
		mcp.WithString("multi_files", mcp.Description("Comma-separated multi-file attachments")),
		mcp.WithString("indexes", mcp.Description("Comma-separated indexed fields")),
		mcp.WithString("unique", mcp.Description("Comma-separated unique fields")),
		mcp.WithString("nullable", mcp.Description("Comma-separated nullable fields")),
		mcp.WithBoolean("soft_deletes", mcp.Description("Soft-delete records (default from config)")),
		mcp.WithBoolean("timestamps", mcp.Description("Maintain created_at and updated_at (default from config)")),
		mcp.WithBoolean("tokenize", mcp.Description("Expose public tokens (default from config)")),
		mcp.WithBoolean("migration", mcp.Description("Also generate the create-table migration")),
		mcp.WithBoolean("seeder", mcp.Description("Also generate a seeder")),
		mcp.WithBoolean("factory", mcp.Description("Also generate a factory")),
		dryRun,
	)

	migrationTool := mcp.NewTool("make_migration",
		mcp.WithDescription("Generate a migration creating or altering a table, or an empty one"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Migration name, for example add_phone_to_users"),
		),
		mcp.WithString("create", mcp.Description("Table to create")),
		mcp.WithString("table", mcp.Description("Table to alter")),
		mcp.WithString("fields", mcp.Description("Comma-separated field tokens")),
		dryRun,
	)

	seederTool := mcp.NewTool("make_seeder",
		mcp.WithDescription("Generate a seeder"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Seeder name")),
		mcp.WithString("model", mcp.Description("Seeded model, none for a basic seeder")),
		mcp.WithNumber("count", mcp.Description("Number of records (default: 10)")),
		dryRun,
	)

	factoryTool := mcp.NewTool("make_factory",
		mcp.WithDescription("Generate a test-data factory"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Factory name")),
		mcp.WithString("model", mcp.Description("Built model (default the name without Factory)")),
		dryRun,
	)

	handlerTool := mcp.NewTool("make_handler",
		mcp.WithDescription("Generate a request handler"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Handler name")),
		mcp.WithString("model", mcp.Description("Handled model")),
		mcp.WithBoolean("resource", mcp.Description("Serve full CRUD over HTTP")),
		mcp.WithBoolean("tokenize", mcp.Description("Add a show-by-token route")),
		dryRun,
	)

	columnTool := mcp.NewTool("column_type",
		mcp.WithDescription("Look up the Go and SQL types of a logical field type"),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Logical type token, for example string, i64, decimal or uuid"),
		),
		mcp.WithString("driver",
			mcp.Description("Database driver; every driver when empty"),
			mcp.Enum("postgres", "mysql", "sqlite"),
		),
		mcp.WithBoolean("nullable", mcp.Description("Nullable column")),
	)

	listTool := mcp.NewTool("list_models",
		mcp.WithDescription("List the models registered in the project"),
	)

	s.AddTool(modelTool, MakeModelHandler(c))
	s.AddTool(migrationTool, MakeMigrationHandler(c))
	s.AddTool(seederTool, MakeSeederHandler(c))
	s.AddTool(factoryTool, MakeFactoryHandler(c))
	s.AddTool(handlerTool, MakeHandlerHandler(c))
	s.AddTool(columnTool, ColumnTypeHandler())
	s.AddTool(listTool, ListModelsHandler(c))
}
