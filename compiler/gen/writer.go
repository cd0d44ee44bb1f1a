package gen

import (
	"log/slog"
	"strings"
)

// A Step is one stage of committing an artifact.
type Step uint8

// Commit steps, in execution order.
const (
	StepArtifact Step = iota + 1
	StepTests
	StepIndex
	StepRegister
)

// String returns the step name.
func (s Step) String() string {
	switch s {
	case StepArtifact:
		return "write artifact"
	case StepTests:
		return "write tests"
	case StepIndex:
		return "create index"
	case StepRegister:
		return "register"
	default:
		return "unknown step"
	}
}

// CommitError reports the step a commit failed at. Steps before it were
// applied and are not rolled back.
type CommitError struct {
	Step Step
	Path string
	Err  error
}

// Error implements the error interface.
func (e *CommitError) Error() string {
	var b strings.Builder
	b.WriteString("tide: commit failed at ")
	b.WriteString(e.Step.String())
	if e.Path != "" {
		b.WriteString(" (")
		b.WriteString(e.Path)
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

// Unwrap returns the underlying error.
func (e *CommitError) Unwrap() error {
	return e.Err
}

// Partial reports if the artifact file was written before the failure.
func (e *CommitError) Partial() bool {
	return e.Step > StepArtifact
}

// Result reports what a commit wrote.
type Result struct {
	Kind     Kind
	Name     string
	Path     string
	TestPath string
	// IndexCreated is set when the index file did not exist before.
	IndexCreated bool
	// Registered is false when the module was already in the index.
	Registered bool
}

// Writer commits artifacts to the filesystem. A commit writes the artifact
// and its test scaffold, creates the index file when needed and registers
// the module. Existing artifact files are overwritten.
type Writer struct {
	logger *slog.Logger
}

// NewWriter creates a Writer logging to logger, or slog.Default when nil.
func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

// Commit writes a and registers it. On failure it returns a *CommitError
// naming the failed step; when the registry step failed, Register retries
// just that step.
func (w *Writer) Commit(a *Artifact) (*Result, error) {
	res := &Result{Kind: a.Kind, Name: a.Name, Path: a.Path}
	if err := writeFile(a.Path, a.Content); err != nil {
		return nil, &CommitError{Step: StepArtifact, Path: a.Path, Err: err}
	}
	if a.HasTests() {
		if err := writeFile(a.TestPath, a.TestContent); err != nil {
			return res, &CommitError{Step: StepTests, Path: a.TestPath, Err: err}
		}
		res.TestPath = a.TestPath
	}
	if a.Entry != nil {
		created, err := EnsureIndex(a.Entry)
		if err != nil {
			return res, &CommitError{Step: StepIndex, Path: a.Entry.Index, Err: err}
		}
		res.IndexCreated = created
		registered, err := Register(w.logger, a.Entry)
		if err != nil {
			return res, &CommitError{Step: StepRegister, Path: a.Entry.Index, Err: err}
		}
		res.Registered = registered
	}
	w.logger.Info("artifact written", "kind", a.Kind, "name", a.Name, "path", a.Path)
	return res, nil
}

// Register runs only the registry step of a commit.
func (w *Writer) Register(entry *RegistryEntry) (bool, error) {
	if _, err := EnsureIndex(entry); err != nil {
		return false, &CommitError{Step: StepIndex, Path: entry.Index, Err: err}
	}
	ok, err := Register(w.logger, entry)
	if err != nil {
		return false, &CommitError{Step: StepRegister, Path: entry.Index, Err: err}
	}
	return ok, nil
}
