package migrations

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailable(t *testing.T) {
	migs, err := Available()
	require.NoError(t, err)
	require.NotEmpty(t, migs)

	assert.Equal(t, uint(1), migs[0].Version)
	assert.Equal(t, "create_smartmeal_tables", migs[0].Name)

	for i := 1; i < len(migs); i++ {
		assert.Less(t, migs[i-1].Version, migs[i].Version)
	}
}

func TestEmbeddedMigrationsHaveDownFiles(t *testing.T) {
	migs, err := Available()
	require.NoError(t, err)

	entries, err := sqlFiles.ReadDir("sql")
	require.NoError(t, err)
	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		names[e.Name()] = true
	}

	for _, m := range migs {
		down := fmt.Sprintf("%06d_%s.down.sql", m.Version, m.Name)
		assert.True(t, names[down], "missing %s", down)
	}
}
