package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_create_polls.up.sql", "0002_create_suggestions.up.sql"}, names)
}

func TestMigrationFilePath(t *testing.T) {
	name, err := migrationFilePath("create_suggestions.down")
	require.NoError(t, err)
	assert.Equal(t, "0002_create_suggestions.down.sql", name)

	_, err = migrationFilePath("drop_everything")
	assert.Error(t, err)
}
