package synth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	arts := []Artifact{
		{Name: "a_main.py", Content: "print('a')\n"},
		{Name: "requirements.txt", Content: "pandas\n"},
	}

	paths, err := WriteArtifacts(dir, arts, true)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	data, err := os.ReadFile(filepath.Join(dir, "a_main.py"))
	require.NoError(t, err)
	assert.Equal(t, "print('a')\n", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWriteArtifactsOverwrite(t *testing.T) {
	dir := t.TempDir()
	arts := []Artifact{{Name: "x.py", Content: "v1"}}

	_, err := WriteArtifacts(dir, arts, true)
	require.NoError(t, err)

	arts[0].Content = "v2"
	_, err = WriteArtifacts(dir, arts, true)
	require.NoError(t, err)
	data, _ := os.ReadFile(filepath.Join(dir, "x.py"))
	assert.Equal(t, "v2", string(data))

	_, err = WriteArtifacts(dir, arts, false)
	assert.Error(t, err)
}
