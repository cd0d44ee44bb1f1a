// Package cli holds the tide commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tideorm/tide/internal/scaffold"
)

// Options are the flags shared by every command.
type Options struct {
	// Dir is the project directory.
	Dir string
	// Config is the project file, root/tide.yaml when empty.
	Config  string
	Verbose bool
}

// NewRootCmd returns the tide command with every subcommand attached.
func NewRootCmd(version string) *cobra.Command {
	o := &Options{}
	root := &cobra.Command{
		Use:     "tide",
		Short:   "tide - scaffolding for tide models, migrations and handlers",
		Version: version,
		Long: `tide generates the Go source of a tide application: models with their
relations, migrations, seeders, factories and HTTP handlers. Generated
files are registered in the mod.go index of their directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&o.Dir, "dir", "C", ".", "project directory")
	root.PersistentFlags().StringVar(&o.Config, "config", "", "config file (default <dir>/tide.yaml)")
	root.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false, "log generation events")

	root.AddCommand(InitCmd(o))
	root.AddCommand(MakeCmd(o))
	root.AddCommand(GenerateCmd(o))
	root.AddCommand(ModelsCmd(o))
	root.AddCommand(ConfigCmd(o))
	root.AddCommand(MCPCmd(o))
	return root
}

// logger returns the logger of a command: text on stderr, warnings only
// unless --verbose is set.
func (o *Options) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func (o *Options) project(cmd *cobra.Command) (*scaffold.Project, error) {
	return scaffold.Open(o.Dir, o.Config, o.logger(cmd))
}

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	planMark = color.New(color.FgCyan).Sprint("•")
	warnMark = color.New(color.FgYellow).Sprint("!")
)

// report prints the outcome of a generation command.
func report(w io.Writer, root string, out *scaffold.Outcome) {
	if out == nil {
		return
	}
	for _, warn := range out.Warnings {
		fmt.Fprintf(w, "%s %s\n", warnMark, color.New(color.FgYellow).Sprint(warn))
	}
	for _, a := range out.Artifacts {
		fmt.Fprintf(w, "%s would write %s %s (%s)\n", planMark, a.Kind, a.Name, rel(root, a.Path))
		if a.HasTests() {
			fmt.Fprintf(w, "  and %s\n", rel(root, a.TestPath))
		}
	}
	for _, r := range out.Results {
		fmt.Fprintf(w, "%s %s %s created at %s\n", okMark, r.Kind, r.Name, rel(root, r.Path))
		if r.TestPath != "" {
			fmt.Fprintf(w, "  test scaffold %s\n", rel(root, r.TestPath))
		}
		if !r.Registered {
			fmt.Fprintf(w, "  already registered\n")
		}
	}
}

// rel returns path relative to root when possible.
func rel(root, path string) string {
	if r, err := filepath.Rel(root, path); err == nil {
		return r
	}
	return path
}
