package varfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloud-storage/tools/pkg/environment/application/model"
)

func writeVarFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeVarFile(t, `
# postgres
POSTGRES_USER=app
POSTGRES_PORT = 5433

REDIS_HOST=localhost
`)

	variables, err := NewLoader().Load(path)

	require.NoError(t, err)
	assert.Equal(t, model.VariableSet{
		"POSTGRES_USER": "app",
		"POSTGRES_PORT": "5433",
		"REDIS_HOST":    "localhost",
	}, variables)
}

func TestLoad_LaterAssignmentWins(t *testing.T) {
	path := writeVarFile(t, "PORT=5432\nPORT=5433\n")

	variables, err := NewLoader().Load(path)

	require.NoError(t, err)
	assert.Equal(t, model.VariableSet{"PORT": "5433"}, variables)
}

func TestLoad_MalformedLine(t *testing.T) {
	path := writeVarFile(t, "POSTGRES_USER\n")

	_, err := NewLoader().Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed line")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.env"))

	require.Error(t, err)
}
