package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ModelsCmd returns the models command.
func ModelsCmd(o *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the registered models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := o.project(cmd)
			if err != nil {
				return err
			}
			models, err := p.Models()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(models) == 0 {
				fmt.Fprintln(w, color.New(color.FgYellow).Sprint("no models registered"))
				return nil
			}
			fmt.Fprintf(w, "%d models in %s:\n", len(models), p.Config.Paths.Models)
			for _, m := range models {
				fmt.Fprintf(w, "  %s\n", m)
			}
			return nil
		},
	}
}
