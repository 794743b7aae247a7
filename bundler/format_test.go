package bundler

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoFormat(t *testing.T) {
	src := []byte("fn main(){}\n")
	actual, err := NoFormat.Format(context.Background(), src, "2021")
	require.NoError(t, err)
	assert.Equal(t, src, actual)
}

func TestRustfmt_Format(t *testing.T) {
	t.Run("missing binary", func(t *testing.T) {
		formatter := &Rustfmt{Path: filepath.Join(t.TempDir(), "rustfmt")}
		_, err := formatter.Format(context.Background(), []byte("fn main(){}"), "")
		require.Error(t, err)
		var formatErr *FormatError
		assert.False(t, errors.As(err, &formatErr))
	})

	t.Run("non zero exit", func(t *testing.T) {
		binary, err := exec.LookPath("false")
		if err != nil {
			t.Skip("false is not available")
		}
		formatter := &Rustfmt{Path: binary}
		_, err = formatter.Format(context.Background(), []byte("fn main(){}"), "2021")
		var formatErr *FormatError
		require.True(t, errors.As(err, &formatErr))
		assert.Equal(t, 1, formatErr.Code)
	})

	t.Run("rustfmt", func(t *testing.T) {
		if _, err := exec.LookPath("rustfmt"); err != nil {
			t.Skip("rustfmt is not installed")
		}
		actual, err := (&Rustfmt{}).Format(context.Background(), []byte("fn main(){let x=1;}"), "2021")
		require.NoError(t, err)
		assert.Equal(t, "fn main() {\n    let x = 1;\n}\n", string(actual))

		_, err = (&Rustfmt{}).Format(context.Background(), []byte("fn main( {"), "2021")
		var formatErr *FormatError
		require.True(t, errors.As(err, &formatErr))
		assert.NotEmpty(t, formatErr.Stderr)
	})
}
