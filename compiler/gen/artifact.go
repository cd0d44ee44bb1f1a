package gen

// Artifact is one rendered source file, ready to commit.
type Artifact struct {
	Kind Kind
	// Name is the canonical artifact name.
	Name string
	// Path is the target file.
	Path    string
	Content []byte
	// TestPath and TestContent hold the companion test scaffold, if any.
	TestPath    string
	TestContent []byte
	// Entry registers the artifact in its index file.
	Entry *RegistryEntry
}

// HasTests reports if the artifact carries a test scaffold.
func (a *Artifact) HasTests() bool {
	return a.TestPath != "" && a.TestContent != nil
}

// RegistryEntry is the instruction to add one module to an index file.
type RegistryEntry struct {
	// Index is the index file path.
	Index string
	// Module is the token of the directive line.
	Module string
	// Export is the line appended after the directive, empty for none.
	Export string
	// Header is the content the index is created with when absent.
	Header []byte
}

// Directive returns the line that marks the module as registered.
func (e *RegistryEntry) Directive() string {
	return Directive(e.Module)
}

// Directive returns the index line declaring module.
//
//	user => //tide:module user
func Directive(module string) string {
	return directivePrefix + module
}

const directivePrefix = "//tide:module "
