package cli

import (
	"fmt"
	"io"
	"net/url"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tideorm/tide/config"
)

// ConfigCmd returns the config command.
func ConfigCmd(o *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the project configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration with the password masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := o.project(cmd)
			if err != nil {
				return err
			}
			return showConfig(cmd.OutOrStdout(), p.Config)
		},
	})
	return cmd
}

func showConfig(w io.Writer, c *config.Config) error {
	dsn, err := c.Database.ConnectionURL()
	if err != nil {
		return err
	}
	env := c.Project.Environment
	if c.IsProduction() {
		env = color.New(color.FgRed, color.Bold).Sprint(env)
	}
	fmt.Fprintf(w, "project:     %s\n", c.Project.Name)
	fmt.Fprintf(w, "environment: %s\n", env)
	fmt.Fprintf(w, "driver:      %s\n", c.Database.Driver)
	fmt.Fprintf(w, "database:    %s\n", maskURL(dsn))
	fmt.Fprintf(w, "models:      %s\n", c.Paths.Models)
	fmt.Fprintf(w, "migrations:  %s\n", c.Paths.Migrations)
	fmt.Fprintf(w, "migration table: %s (timestamps %t)\n", c.Migration.Table, c.Migration.Timestamps)
	return nil
}

// maskURL hides the password of a connection URL.
func maskURL(s string) string {
	u, err := url.Parse(s)
	if err != nil {
		return "<invalid url>"
	}
	return u.Redacted()
}
