package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIngestCommand(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "notas.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("aluno,nota\nAna,9\nBia,7\n"), 0o600))
	pngPath := filepath.Join(dir, "foto.png")
	require.NoError(t, os.WriteFile(pngPath, []byte("png"), 0o600))

	stdout, stderr, err := runCommand(t, "ingest", csvPath, pngPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "**Análise do arquivo CSV: notas.csv**")
	assert.Contains(t, stdout, "- Linhas de dados: 2")
	assert.Contains(t, stderr, "Tipo de arquivo não suportado: foto.png")
}

func TestSessionsListCommand(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "cli.db"))

	stdout, _, err := runCommand(t, "sessions", "list", "--surface", "tutor", "--owner", "ana")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ACTIVE")

	_, _, err = runCommand(t, "sessions", "list", "--surface", "admin")
	require.Error(t, err)
}

func TestGradeCommandRequiresTwoFiles(t *testing.T) {
	_, _, err := runCommand(t, "grade", "only-one.pdf")
	require.Error(t, err)
}
