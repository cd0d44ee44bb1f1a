package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tideorm/tide/internal/scaffold"
)

// InitCmd returns the init command.
func InitCmd(o *Options) *cobra.Command {
	var driver string
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a tide project",
		Long: `Write tide.yaml into the project directory, create the artifact
directories with their mod.go index files and generate the default seeder.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := o.Dir
			if len(args) == 1 {
				root = args[0]
			}
			res, err := scaffold.Init(cmd.Context(), root, driver, o.logger(cmd))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s config written to %s\n", okMark, res.ConfigPath)
			for _, index := range res.Indexes {
				fmt.Fprintf(w, "%s index created at %s\n", okMark, rel(root, index))
			}
			if res.Seeder != nil {
				fmt.Fprintf(w, "%s seeder %s created at %s\n", okMark, res.Seeder.Name, rel(root, res.Seeder.Path))
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Next steps:")
			fmt.Fprintln(w, "  tide make model User --fields name:string,email:string:unique --migration")
			fmt.Fprintln(w, "  tide models")
			return nil
		},
	}
	cmd.Flags().StringVarP(&driver, "database", "d", "postgres", "database driver: postgres, mysql or sqlite")
	return cmd
}
