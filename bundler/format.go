package bundler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Formatter formats merged Rust source
type Formatter interface {
	Format(ctx context.Context, src []byte, edition string) ([]byte, error)
}

// Rustfmt formats source with the rustfmt binary
type Rustfmt struct {
	Path string   // binary location, defaults to rustfmt on PATH
	Args []string // extra arguments
}

// Format pipes src through rustfmt
func (r *Rustfmt) Format(ctx context.Context, src []byte, edition string) ([]byte, error) {
	binary := r.Path
	if binary == "" {
		binary = "rustfmt"
	}
	args := []string{"--config", "newline_style=Unix"}
	if edition != "" {
		args = append(args, "--edition", edition)
	}
	args = append(args, r.Args...)

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdin = bytes.NewReader(src)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &FormatError{Code: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return nil, fmt.Errorf("failed to run %s: %w", binary, err)
	}
	return stdout.Bytes(), nil
}

type noFormat struct{}

func (noFormat) Format(_ context.Context, src []byte, _ string) ([]byte, error) {
	return src, nil
}

// NoFormat returns the printer output unchanged
var NoFormat Formatter = noFormat{}
