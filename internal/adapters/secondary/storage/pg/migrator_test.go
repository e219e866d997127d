package pg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMigrationName(t *testing.T) {
	version, name, err := parseMigrationName("0001_init.sql")
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	assert.Equal(t, "init", name)

	_, _, err = parseMigrationName("init.sql")
	require.Error(t, err)

	_, _, err = parseMigrationName("abc_init.sql")
	require.Error(t, err)
}

func TestLoadMigrationsSorted(t *testing.T) {
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Version, migrations[i].Version)
	}
	assert.Contains(t, migrations[0].Content, "CREATE TABLE IF NOT EXISTS users")
}
