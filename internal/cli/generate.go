package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/tideorm/tide/compiler/load"
	"github.com/tideorm/tide/internal/scaffold"
)

// GenerateCmd returns the generate command.
func GenerateCmd(o *Options) *cobra.Command {
	var (
		file   string
		watch  bool
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate every artifact of a schema file",
		Long: `Generate the models, migrations, seeders, factories and handlers a
YAML schema file describes. The root key of the file overrides --dir.
With --watch the file is generated again each time it changes.`,
		Example: `  tide generate -f schema.yaml --watch`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				return errors.New("tide: --file is required")
			}
			run := func() error { return o.generateFile(cmd, file, dryRun) }
			if !watch {
				return run()
			}
			return watchFile(cmd.Context(), cmd.OutOrStdout(), file, run)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "schema file")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "generate again when the file changes")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the files without writing them")
	return cmd
}

func (o *Options) generateFile(cmd *cobra.Command, file string, dryRun bool) error {
	doc, err := load.File(file)
	if err != nil {
		return err
	}
	root := o.Dir
	if doc.Root != "" {
		root = doc.Root
	}
	p, err := scaffold.Open(root, o.Config, o.logger(cmd))
	if err != nil {
		return err
	}
	out, err := p.Document(cmd.Context(), doc, dryRun)
	report(cmd.OutOrStdout(), p.Root, out)
	return err
}

// watchFile calls run once and again on every write to path until ctx is
// done. Failures of run are printed and do not stop the watch. The parent
// directory is watched, so editors replacing the file are seen too.
func watchFile(ctx context.Context, w io.Writer, path string, run func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("tide: watch %s: %w", path, err)
	}
	defer watcher.Close()
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("tide: watch %s: %w", path, err)
	}
	runOnce := func() {
		if err := run(); err != nil {
			fmt.Fprintf(w, "%s %v\n", warnMark, err)
		}
	}
	runOnce()
	fmt.Fprintf(w, "watching %s\n", path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			fmt.Fprintf(w, "%s changed\n", path)
			runOnce()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w, "%s watch: %v\n", warnMark, err)
		}
	}
}
