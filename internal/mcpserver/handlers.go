package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tideorm/tide/compiler/gen"
	"github.com/tideorm/tide/compiler/load"
	"github.com/tideorm/tide/dialect"
	"github.com/tideorm/tide/internal/scaffold"
	"github.com/tideorm/tide/schema"
	"github.com/tideorm/tide/schema/field"
)

// Outcome is the result of a generation tool.
type Outcome struct {
	DryRun   bool     `json:"dry_run"`
	Files    []string `json:"files"`
	Warnings []string `json:"warnings,omitempty"`
	// Sources holds the rendered files of a dry run by path.
	Sources map[string]string `json:"sources,omitempty"`
}

func newOutcome(out *scaffold.Outcome, dryRun bool) Outcome {
	o := Outcome{DryRun: dryRun, Files: out.Paths()}
	if o.Files == nil {
		o.Files = []string{}
	}
	for _, w := range out.Warnings {
		o.Warnings = append(o.Warnings, w.Error())
	}
	if dryRun {
		o.Sources = make(map[string]string)
		for _, a := range out.Artifacts {
			o.Sources[a.Path] = string(a.Content)
			if a.HasTests() {
				o.Sources[a.TestPath] = string(a.TestContent)
			}
		}
	}
	return o
}

// jsonResult marshals v into a text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// optBool returns the boolean argument key, or nil when it is absent.
func optBool(request mcp.CallToolRequest, key string) *bool {
	v, ok := request.GetArguments()[key].(bool)
	if !ok {
		return nil
	}
	return &v
}

// generation adapts a generation call into a tool handler.
func generation(c Config, run func(context.Context, mcp.CallToolRequest, *scaffold.Project, bool) (*scaffold.Outcome, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, err := request.RequireString("name"); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Missing name parameter: %v", err)), nil
		}
		p, err := c.open()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Open project failed: %v", err)), nil
		}
		dryRun := request.GetBool("dry_run", false)
		out, err := run(ctx, request, p, dryRun)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Generation failed: %v", err)), nil
		}
		return jsonResult(newOutcome(out, dryRun))
	}
}

// MakeModelHandler creates a handler for the make_model tool.
func MakeModelHandler(c Config) server.ToolHandlerFunc {
	return generation(c, func(ctx context.Context, r mcp.CallToolRequest, p *scaffold.Project, dryRun bool) (*scaffold.Outcome, error) {
		list := func(key string) []string { return schema.SplitList(r.GetString(key, "")) }
		return p.Model(ctx, load.Entity{
			Name:         r.GetString("name", ""),
			Table:        r.GetString("table", ""),
			Fields:       list("fields"),
			Relations:    list("relations"),
			Translatable: list("translatable"),
			Files:        list("files"),
			MultiFiles:   list("multi_files"),
			Indexes:      list("indexes"),
			Unique:       list("unique"),
			Nullable:     list("nullable"),
			SoftDeletes:  optBool(r, "soft_deletes"),
			Timestamps:   optBool(r, "timestamps"),
			Tokenize:     optBool(r, "tokenize"),
			Migration:    r.GetBool("migration", false),
			Seeder:       r.GetBool("seeder", false),
			Factory:      r.GetBool("factory", false),
		}, dryRun)
	})
}

// MakeMigrationHandler creates a handler for the make_migration tool.
func MakeMigrationHandler(c Config) server.ToolHandlerFunc {
	return generation(c, func(ctx context.Context, r mcp.CallToolRequest, p *scaffold.Project, dryRun bool) (*scaffold.Outcome, error) {
		m := load.Migration{
			Name:   r.GetString("name", ""),
			Create: r.GetString("create", ""),
			Table:  r.GetString("table", ""),
			Fields: schema.SplitList(r.GetString("fields", "")),
		}
		if m.Create != "" && m.Table != "" {
			return nil, errors.New("create and table are mutually exclusive")
		}
		return p.Migration(ctx, m, dryRun)
	})
}

// MakeSeederHandler creates a handler for the make_seeder tool.
func MakeSeederHandler(c Config) server.ToolHandlerFunc {
	return generation(c, func(ctx context.Context, r mcp.CallToolRequest, p *scaffold.Project, dryRun bool) (*scaffold.Outcome, error) {
		return p.Seeder(ctx, r.GetString("name", ""), r.GetString("model", ""), r.GetInt("count", 0), dryRun)
	})
}

// MakeFactoryHandler creates a handler for the make_factory tool.
func MakeFactoryHandler(c Config) server.ToolHandlerFunc {
	return generation(c, func(ctx context.Context, r mcp.CallToolRequest, p *scaffold.Project, dryRun bool) (*scaffold.Outcome, error) {
		return p.Factory(ctx, r.GetString("name", ""), r.GetString("model", ""), dryRun)
	})
}

// MakeHandlerHandler creates a handler for the make_handler tool.
func MakeHandlerHandler(c Config) server.ToolHandlerFunc {
	return generation(c, func(ctx context.Context, r mcp.CallToolRequest, p *scaffold.Project, dryRun bool) (*scaffold.Outcome, error) {
		return p.Handler(ctx, r.GetString("name", ""), r.GetString("model", ""),
			r.GetBool("resource", false), r.GetBool("tokenize", false), dryRun)
	})
}

// ColumnType is the result of the column_type tool.
type ColumnType struct {
	Type        string `json:"type"`
	GoType      string `json:"go_type"`
	Passthrough bool   `json:"passthrough,omitempty"`
	// Columns maps each driver to its column type.
	Columns map[string]string `json:"columns"`
}

// ColumnTypeHandler creates a handler for the column_type tool.
func ColumnTypeHandler() server.ToolHandlerFunc {
	return func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		token, err := request.RequireString("type")
		if err == nil && strings.TrimSpace(token) == "" {
			err = errors.New("type is blank")
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Missing type parameter: %v", err)), nil
		}
		drivers := dialect.Drivers()
		if name := request.GetString("driver", ""); name != "" {
			d, err := dialect.Parse(name)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			drivers = []dialect.Driver{d}
		}
		info := field.NewTypeInfo(token)
		res := ColumnType{
			Type:        info.String(),
			GoType:      gen.TargetType(info, request.GetBool("nullable", false)),
			Passthrough: info.Type == field.TypeOther,
			Columns:     make(map[string]string, len(drivers)),
		}
		for _, d := range drivers {
			res.Columns[d.String()] = d.ColumnType(info)
		}
		return jsonResult(res)
	}
}

// ListModelsHandler creates a handler for the list_models tool.
func ListModelsHandler(c Config) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p, err := c.open()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Open project failed: %v", err)), nil
		}
		models, err := p.Models()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("List models failed: %v", err)), nil
		}
		if models == nil {
			models = []string{}
		}
		return jsonResult(map[string]any{"models": models})
	}
}
