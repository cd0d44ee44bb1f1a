package gen

import "fmt"

// A Kind identifies one family of generated artifacts. Every kind has its
// own directory and registry file.
type Kind uint8

// Artifact kinds.
const (
	KindModel Kind = iota + 1
	KindMigration
	KindSeeder
	KindFactory
	KindHandler
)

// Kinds returns every artifact kind.
func Kinds() []Kind {
	return []Kind{KindModel, KindMigration, KindSeeder, KindFactory, KindHandler}
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindModel:
		return "model"
	case KindMigration:
		return "migration"
	case KindSeeder:
		return "seeder"
	case KindFactory:
		return "factory"
	case KindHandler:
		return "handler"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Valid reports if k is a known kind.
func (k Kind) Valid() bool {
	return k >= KindModel && k <= KindHandler
}

// RegistryVar returns the name of the typed registry variable declared in
// the index file of k, or an empty string for kinds whose index only lists
// module directives.
func (k Kind) RegistryVar() string {
	switch k {
	case KindModel:
		return "Models"
	case KindMigration:
		return "Migrations"
	case KindSeeder:
		return "Seeders"
	default:
		return ""
	}
}

// RegistryElem returns the runtime interface stored in the registry of k.
func (k Kind) RegistryElem() string {
	switch k {
	case KindModel:
		return "Model"
	case KindMigration:
		return "Migration"
	case KindSeeder:
		return "Seeder"
	default:
		return ""
	}
}
