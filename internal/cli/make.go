package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tideorm/tide/compiler/load"
	"github.com/tideorm/tide/internal/scaffold"
	"github.com/tideorm/tide/schema"
)

// MakeCmd returns the make command and its artifact subcommands.
func MakeCmd(o *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "make",
		Short: "Generate one artifact",
	}
	cmd.AddCommand(makeModelCmd(o))
	cmd.AddCommand(makeMigrationCmd(o))
	cmd.AddCommand(makeSeederCmd(o))
	cmd.AddCommand(makeFactoryCmd(o))
	cmd.AddCommand(makeHandlerCmd(o))
	return cmd
}

// generate opens the project, runs fn and reports its outcome.
func (o *Options) generate(cmd *cobra.Command, fn func(*scaffold.Project) (*scaffold.Outcome, error)) error {
	p, err := o.project(cmd)
	if err != nil {
		return err
	}
	out, err := fn(p)
	report(cmd.OutOrStdout(), p.Root, out)
	return err
}

func makeModelCmd(o *Options) *cobra.Command {
	var (
		e       load.Entity
		lists   = make(map[string]*string)
		flags   = make(map[string]*bool)
		dryRun  bool
		listOf  = []string{"fields", "relations", "translatable", "files", "multi-files", "indexes", "unique", "nullable"}
		flagsOf = []string{"soft-deletes", "timestamps", "tokenize"}
	)
	cmd := &cobra.Command{
		Use:   "model <Name>",
		Short: "Generate a model",
		Long: `Generate a model from field and relation tokens.

Fields are name:type[:modifier...] tokens, relations are
name:kind:Entity[:foreign_key] tokens with kind one of belongs_to,
has_one and has_many.`,
		Example: `  tide make model User --fields name:string,email:string:unique --relations posts:has_many:Post --migration`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e.Name = args[0]
			e.Fields = schema.SplitList(*lists["fields"])
			e.Relations = schema.SplitList(*lists["relations"])
			e.Translatable = schema.SplitList(*lists["translatable"])
			e.Files = schema.SplitList(*lists["files"])
			e.MultiFiles = schema.SplitList(*lists["multi-files"])
			e.Indexes = schema.SplitList(*lists["indexes"])
			e.Unique = schema.SplitList(*lists["unique"])
			e.Nullable = schema.SplitList(*lists["nullable"])
			// Unset flags keep the project defaults.
			set := func(name string) *bool {
				if !cmd.Flags().Changed(name) {
					return nil
				}
				return flags[name]
			}
			e.SoftDeletes, e.Timestamps, e.Tokenize = set("soft-deletes"), set("timestamps"), set("tokenize")
			return o.generate(cmd, func(p *scaffold.Project) (*scaffold.Outcome, error) {
				return p.Model(cmd.Context(), e, dryRun)
			})
		},
	}
	f := cmd.Flags()
	for _, name := range listOf {
		lists[name] = f.String(name, "", "comma-separated "+name)
	}
	for _, name := range flagsOf {
		flags[name] = f.Bool(name, false, "enable "+name+" (default from config)")
	}
	f.StringVar(&e.Table, "table", "", "table name (default plural snake_case of the name)")
	f.BoolVar(&e.Migration, "migration", false, "also generate the create-table migration")
	f.BoolVar(&e.Seeder, "seeder", false, "also generate a seeder")
	f.BoolVar(&e.Factory, "factory", false, "also generate a factory")
	f.BoolVar(&dryRun, "dry-run", false, "print the files without writing them")
	return cmd
}

func makeMigrationCmd(o *Options) *cobra.Command {
	var (
		m      load.Migration
		fields string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "migration <name>",
		Short: "Generate a migration",
		Long: `Generate a migration. --create makes a create-table migration, --table
one adding the fields to an existing table; with neither the migration
is empty.`,
		Example: `  tide make migration add_phone_to_users --table users --fields phone:string:nullable`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if m.Create != "" && m.Table != "" {
				return errors.New("tide: --create and --table are mutually exclusive")
			}
			m.Name = args[0]
			m.Fields = schema.SplitList(fields)
			return o.generate(cmd, func(p *scaffold.Project) (*scaffold.Outcome, error) {
				return p.Migration(cmd.Context(), m, dryRun)
			})
		},
	}
	cmd.Flags().StringVar(&m.Create, "create", "", "table to create")
	cmd.Flags().StringVar(&m.Table, "table", "", "table to alter")
	cmd.Flags().StringVar(&fields, "fields", "", "comma-separated field tokens")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the files without writing them")
	return cmd
}

func makeSeederCmd(o *Options) *cobra.Command {
	var (
		model  string
		count  int
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "seeder <Name>",
		Short: "Generate a seeder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.generate(cmd, func(p *scaffold.Project) (*scaffold.Outcome, error) {
				return p.Seeder(cmd.Context(), args[0], model, count, dryRun)
			})
		},
	}
	cmd.Flags().StringVarP(&model, "model", "m", "", "seeded model, none for a basic seeder")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of records (default 10)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the files without writing them")
	return cmd
}

func makeFactoryCmd(o *Options) *cobra.Command {
	var (
		model  string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "factory <Name>",
		Short: "Generate a factory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.generate(cmd, func(p *scaffold.Project) (*scaffold.Outcome, error) {
				return p.Factory(cmd.Context(), args[0], model, dryRun)
			})
		},
	}
	cmd.Flags().StringVarP(&model, "model", "m", "", "built model (default the name without Factory)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the files without writing them")
	return cmd
}

func makeHandlerCmd(o *Options) *cobra.Command {
	var (
		model              string
		resource, tokenize bool
		dryRun             bool
	)
	cmd := &cobra.Command{
		Use:   "handler <Name>",
		Short: "Generate a handler",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.generate(cmd, func(p *scaffold.Project) (*scaffold.Outcome, error) {
				return p.Handler(cmd.Context(), args[0], model, resource, tokenize, dryRun)
			})
		},
	}
	cmd.Flags().StringVarP(&model, "model", "m", "", "handled model")
	cmd.Flags().BoolVarP(&resource, "resource", "r", false, "serve full CRUD over HTTP")
	cmd.Flags().BoolVar(&tokenize, "tokenize", false, "add a show-by-token route")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the files without writing them")
	return cmd
}
