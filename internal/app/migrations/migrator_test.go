package migrations

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionsAreOrdered(t *testing.T) {
	m := NewMigrator(nil, zerolog.Nop())
	names, err := m.Versions()
	require.NoError(t, err)
	assert.Equal(t, []string{"001_users.sql", "002_students.sql"}, names)
}
