package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/rsbundle/inspector/repository"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		location := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}
}

func TestParseManifest(t *testing.T) {
	manifest, err := repository.ParseManifest([]byte(`
[package]
name = "my-lib"
edition = "2021"
default-run = "solve"
autobins = false

[lib]
name = "mylib"
path = "src/mylib.rs"

[[bin]]
name = "solve"
path = "src/bin/solve.rs"
`))
	require.NoError(t, err)
	assert.Equal(t, "my-lib", manifest.Package.Name)
	assert.Equal(t, "2021", manifest.Package.Edition)
	assert.Equal(t, "solve", manifest.Package.DefaultRun)
	if assert.NotNil(t, manifest.Package.Autobins) {
		assert.False(t, *manifest.Package.Autobins)
	}
	if assert.NotNil(t, manifest.Lib) {
		assert.Equal(t, "mylib", manifest.Lib.Name)
	}
	assert.EqualValues(t, []repository.TargetSection{{Name: "solve", Path: "src/bin/solve.rs"}}, manifest.Bin)

	_, err = repository.ParseManifest([]byte("[package"))
	assert.Error(t, err)
}

func TestSelectTargets(t *testing.T) {
	tests := []struct {
		description string
		files       map[string]string
		binary      string
		wantBinary  string
		wantLibrary string
		wantErr     error
	}{
		{
			description: "single main binary",
			files: map[string]string{
				"Cargo.toml":  "[package]\nname = \"my-lib\"\nedition = \"2018\"\n",
				"src/main.rs": "fn main() {}",
				"src/lib.rs":  "",
			},
			wantBinary:  "my-lib",
			wantLibrary: "my_lib",
		},
		{
			description: "explicit binary among auto-discovered",
			files: map[string]string{
				"Cargo.toml":         "[package]\nname = \"contest\"\n",
				"src/main.rs":        "fn main() {}",
				"src/bin/a.rs":       "fn main() {}",
				"src/bin/b/main.rs":  "fn main() {}",
				"src/lib.rs":         "",
				"src/bin/notes.txt":  "",
				"src/bin/c/other.rs": "",
			},
			binary:      "b",
			wantBinary:  "b",
			wantLibrary: "contest",
		},
		{
			description: "default run",
			files: map[string]string{
				"Cargo.toml":   "[package]\nname = \"contest\"\ndefault-run = \"a\"\n",
				"src/main.rs":  "fn main() {}",
				"src/bin/a.rs": "fn main() {}",
				"src/lib.rs":   "",
			},
			wantBinary:  "a",
			wantLibrary: "contest",
		},
		{
			description: "ambiguous",
			files: map[string]string{
				"Cargo.toml":   "[package]\nname = \"contest\"\n",
				"src/main.rs":  "fn main() {}",
				"src/bin/a.rs": "fn main() {}",
				"src/lib.rs":   "",
			},
			wantErr: repository.ErrAmbiguousBinary,
		},
		{
			description: "unknown binary",
			files: map[string]string{
				"Cargo.toml":  "[package]\nname = \"contest\"\n",
				"src/main.rs": "fn main() {}",
				"src/lib.rs":  "",
			},
			binary:  "missing",
			wantErr: repository.ErrBinaryNotFound,
		},
		{
			description: "no binary",
			files: map[string]string{
				"Cargo.toml": "[package]\nname = \"contest\"\n",
				"src/lib.rs": "",
			},
			wantErr: repository.ErrNoBinary,
		},
		{
			description: "no library",
			files: map[string]string{
				"Cargo.toml":  "[package]\nname = \"contest\"\n",
				"src/main.rs": "fn main() {}",
			},
			wantErr: repository.ErrNoLibrary,
		},
		{
			description: "custom library",
			files: map[string]string{
				"Cargo.toml":   "[package]\nname = \"contest\"\nautobins = false\n[lib]\nname = \"algo-kit\"\npath = \"lib/root.rs\"\n[[bin]]\nname = \"run\"\npath = \"app/run.rs\"\n",
				"app/run.rs":   "fn main() {}",
				"lib/root.rs":  "",
				"src/bin/x.rs": "fn main() {}",
				"src/main.rs":  "fn main() {}",
			},
			wantBinary:  "run",
			wantLibrary: "algo_kit",
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			root := t.TempDir()
			writeFiles(t, root, tc.files)
			selection, err := repository.SelectTargets(context.Background(), afs.New(), root, tc.binary)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantBinary, selection.Binary.Name)
			assert.Equal(t, tc.wantLibrary, selection.Library.Name)
			assert.True(t, filepath.IsAbs(selection.Binary.SrcPath))
		})
	}
}
