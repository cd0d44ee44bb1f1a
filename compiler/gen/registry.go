package gen

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"
)

// Register adds the module of entry to its index file. The index is read
// as empty when absent. A module that already has a directive line is a
// no-op and the file is left untouched. The updated index is gofmt-ed; if
// it does not parse it is written as is and a warning is logged.
func Register(logger *slog.Logger, entry *RegistryEntry) (bool, error) {
	if logger == nil {
		logger = slog.Default()
	}
	src, err := os.ReadFile(entry.Index)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, NewIOError("read", entry.Index, err)
	}
	if Registered(src, entry.Module) {
		logger.Debug("module already registered", "index", entry.Index, "module", entry.Module)
		return false, nil
	}
	var b bytes.Buffer
	b.Write(src)
	if len(src) > 0 && !bytes.HasSuffix(src, []byte("\n")) {
		b.WriteByte('\n')
	}
	if len(src) > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(entry.Directive())
	b.WriteByte('\n')
	if entry.Export != "" {
		b.WriteString(entry.Export)
		b.WriteByte('\n')
	}
	out, err := imports.Process(entry.Index, b.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		logger.Warn("index file does not parse, writing unformatted", "index", entry.Index, "error", err)
		out = b.Bytes()
	}
	if err := writeFile(entry.Index, out); err != nil {
		return false, err
	}
	return true, nil
}

// Registered reports if src holds the directive line of module.
func Registered(src []byte, module string) bool {
	want := Directive(module)
	s := bufio.NewScanner(bytes.NewReader(src))
	for s.Scan() {
		if strings.TrimSpace(s.Text()) == want {
			return true
		}
	}
	return false
}

// Modules returns the tokens of every directive line in src, in file order.
func Modules(src []byte) []string {
	var mods []string
	s := bufio.NewScanner(bytes.NewReader(src))
	for s.Scan() {
		if line := strings.TrimSpace(s.Text()); strings.HasPrefix(line, directivePrefix) {
			mods = append(mods, strings.TrimSpace(strings.TrimPrefix(line, directivePrefix)))
		}
	}
	return mods
}

// EnsureIndex creates the index file of entry with its header when the
// file does not exist yet. It reports whether the file was created.
func EnsureIndex(entry *RegistryEntry) (bool, error) {
	if entry.Header == nil {
		return false, nil
	}
	switch _, err := os.Stat(entry.Index); {
	case err == nil:
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, NewIOError("stat", entry.Index, err)
	}
	if err := writeFile(entry.Index, entry.Header); err != nil {
		return false, err
	}
	return true, nil
}

// writeFile writes data to path, creating its directory first.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return NewIOError("mkdir", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return NewIOError("write", path, err)
	}
	return nil
}
