package db

import (
	"context"
	"testing"

	"github.com/getAlby/royaltyhub.go/lib/royalty"
	"github.com/getAlby/royaltyhub.go/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendFor(t *testing.T) {
	for dsn, expected := range map[string]Backend{
		"memory://":                              BackendMemory,
		"postgres://user@localhost/royaltyhub":   BackendPostgres,
		"postgresql://user@localhost/royaltyhub": BackendPostgres,
		"unix:///var/run/postgresql":             BackendPostgres,
	} {
		backend, err := BackendFor(dsn)
		require.NoError(t, err, dsn)
		assert.Equal(t, expected, backend, dsn)
	}

	_, err := BackendFor("sqlite://royaltyhub.db")
	assert.Error(t, err)
}

func TestOpenStoreMemory(t *testing.T) {
	store, closeStore, err := OpenStore(context.Background(), &service.Config{DatabaseUri: "memory://"}, WithMigrations())
	require.NoError(t, err)
	assert.IsType(t, &royalty.MemoryStore{}, store)
	assert.NoError(t, closeStore())
}

func TestOpenStoreRejectsUnknownScheme(t *testing.T) {
	store, closeStore, err := OpenStore(context.Background(), &service.Config{DatabaseUri: "mysql://localhost/royaltyhub"})
	assert.Error(t, err)
	assert.Nil(t, store)
	assert.Nil(t, closeStore)
}

func TestOpenRefusesMemoryStore(t *testing.T) {
	_, err := Open(&service.Config{DatabaseUri: "memory://"})
	assert.Error(t, err)
}
