package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	names := map[Kind]string{
		KindModel:     "model",
		KindMigration: "migration",
		KindSeeder:    "seeder",
		KindFactory:   "factory",
		KindHandler:   "handler",
	}
	assert.Len(t, Kinds(), len(names))
	for _, k := range Kinds() {
		assert.True(t, k.Valid())
		assert.Equal(t, names[k], k.String())
	}
	assert.False(t, Kind(0).Valid())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestKind_Registry(t *testing.T) {
	assert.Equal(t, "Models", KindModel.RegistryVar())
	assert.Equal(t, "Model", KindModel.RegistryElem())
	assert.Equal(t, "Migrations", KindMigration.RegistryVar())
	assert.Equal(t, "Seeder", KindSeeder.RegistryElem())
	assert.Empty(t, KindFactory.RegistryVar())
	assert.Empty(t, KindHandler.RegistryElem())
}
