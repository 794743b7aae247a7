package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"Cargo.toml":  "[package]\nname = \"my_lib\"\nedition = \"2021\"\n",
		"src/lib.rs":  "pub mod util;\npub mod extra;\n",
		"src/util.rs": "pub fn helper() {}\n",
		"src/main.rs": "extern crate my_lib;\nuse my_lib::util::helper;\nfn main() {\n    helper();\n}\n",
	}
	for name, content := range files {
		location := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}
	return root
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd(t *testing.T) {
	root := writeProject(t)
	expect := "pub mod util {\npub fn helper() {}\n}\nuse util::helper;\nfn main() {\n    helper();\n}\n"

	t.Run("stdout", func(t *testing.T) {
		stdout, _, err := execute(t, root, "--no-format", "--remove-unused-mod")
		require.NoError(t, err)
		assert.Equal(t, expect, stdout)
	})

	t.Run("output file", func(t *testing.T) {
		location := filepath.Join(t.TempDir(), "bundle.rs")
		stdout, _, err := execute(t, root, "--no-format", "--remove-unused-mod", "-o", location)
		require.NoError(t, err)
		assert.Empty(t, stdout)
		data, err := os.ReadFile(location)
		require.NoError(t, err)
		assert.Equal(t, expect, string(data))
	})

	t.Run("verbose logs checksum", func(t *testing.T) {
		_, stderr, err := execute(t, root, "--no-format", "--remove-unused-mod", "-v")
		require.NoError(t, err)
		assert.Contains(t, stderr, "checksum")
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("RSBUNDLE_NO_FORMAT", "true")
		t.Setenv("RSBUNDLE_REMOVE_UNUSED_MOD", "true")
		stdout, _, err := execute(t, root)
		require.NoError(t, err)
		assert.Equal(t, expect, stdout)
	})

	t.Run("config file", func(t *testing.T) {
		config := filepath.Join(t.TempDir(), "rsbundle.yaml")
		require.NoError(t, os.WriteFile(config, []byte("no-format: true\nremove-unused-mod: true\n"), 0o644))
		stdout, _, err := execute(t, root, "--config", config)
		require.NoError(t, err)
		assert.Equal(t, expect, stdout)
	})

	t.Run("missing module", func(t *testing.T) {
		_, _, err := execute(t, root, "--no-format")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "extra")
	})

	t.Run("unknown binary", func(t *testing.T) {
		_, _, err := execute(t, root, "--no-format", "-b", "other")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "other")
	})
}
