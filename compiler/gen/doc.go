// Package gen turns schema descriptors into generated Go source files.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	raw strings (flags, schema files)
//	        ↓
//	   schema.Parse → schema.Descriptor
//	        ↓
//	   NewType / NewMigration / NewSeeder / NewFactory / NewHandler
//	        ↓
//	   Generator.Render (dialect emitters) → Artifact
//	        ↓
//	   Writer.Commit (file write, then registry update)
//
// # Key Types
//
//   - Config: project root, module path, directories, driver and defaults
//   - Type: a model resolved against the config, with fields and edges
//   - Migration, Seeder, Factory, Handler: the other artifact requests
//   - Artifact: rendered content, target path and registry entry
//   - Writer: the two-step commit
//
// # Interface Hierarchy
//
//	MinimalDialect
//	├── Name() string
//	├── ModelGenerator, MigrationGenerator, SeederGenerator
//	├── FactoryGenerator, HandlerGenerator
//	└── IndexGenerator
//
//	TestScaffolder (optional, detected by type assertion)
//
// # Registry
//
// Each artifact directory holds a mod.go index. A module is registered by
// a directive line followed by an optional export line:
//
//	//tide:module user
//	func init() { Models.Add("user", User{}) }
//
// Registration is idempotent: a module whose directive is present is not
// appended again.
//
// # Error Handling
//
//   - SchemaError: schema definition errors
//   - ConfigError: configuration errors
//   - GenerationError: request precondition and render errors
//   - IOError: filesystem errors, with the offending path
//   - CommitError: the commit step that failed
//
// Example error handling:
//
//	results, err := g.Generate(ctx, reqs...)
//	var commitErr *gen.CommitError
//	if errors.As(err, &commitErr) && commitErr.Step == gen.StepRegister {
//		// The artifact is on disk; retry the registry update only.
//	}
package gen
