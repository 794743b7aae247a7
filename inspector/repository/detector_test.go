package repository_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/rsbundle/inspector/repository"
)

func TestDetector_DetectProject(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"Cargo.toml":      "[package]\nname = \"contest\"\n",
		"src/util/mod.rs": "",
		"src/main.rs":     "fn main() {}",
		"other/plain.txt": "",
	})
	resolvedRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)

	project, err := repository.New().DetectProject(filepath.Join(resolvedRoot, "src", "util", "mod.rs"))
	require.NoError(t, err)
	assert.Equal(t, "rust", project.Type)
	assert.Equal(t, "contest", project.Name)
	assert.Equal(t, resolvedRoot, project.RootPath)
	assert.Equal(t, "src/util/mod.rs", project.RelativePath)

	_, err = repository.New().DetectProject(filepath.Join(resolvedRoot, "missing.rs"))
	assert.Error(t, err)
}

func TestDetector_DetectProject_Workspace(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"Cargo.toml":         "[workspace]\nmembers = [\"solver\"]\n",
		"solver/Cargo.toml":  "[package]\nname = \"solver\"\n",
		"solver/src/main.rs": "fn main() {}",
		"notes/readme.txt":   "",
	})
	resolvedRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)

	project, err := repository.New().DetectProject(filepath.Join(resolvedRoot, "solver", "src", "main.rs"))
	require.NoError(t, err)
	assert.Equal(t, repository.ProjectTypeRust, project.Type)
	assert.Equal(t, "solver", project.Name)
	assert.Equal(t, filepath.Join(resolvedRoot, "solver"), project.RootPath)

	project, err = repository.New().DetectProject(filepath.Join(resolvedRoot, "notes"))
	require.NoError(t, err)
	assert.Equal(t, repository.ProjectTypeUnknown, project.Type)
}
