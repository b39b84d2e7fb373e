package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_EmbedsGooseFiles(t *testing.T) {
	files, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	require.Len(t, files, 2)

	for _, f := range files {
		b, err := fs.ReadFile(Migrations, f)
		require.NoError(t, err)
		s := string(b)
		assert.True(t, strings.Contains(s, "-- +goose Up"), f)
		assert.True(t, strings.Contains(s, "-- +goose Down"), f)
	}
}
