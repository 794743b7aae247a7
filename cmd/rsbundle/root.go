// Package main implements the rsbundle command: it merges a Cargo binary and its library into one Rust source file.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viant/afs"
	"github.com/viant/rsbundle/bundler"
)

// Version is the semantic version (set via -ldflags)
var Version = "dev"

const envPrefix = "RSBUNDLE"

const (
	flagBin          = "bin"
	flagRemoveUnused = "remove-unused-mod"
	flagOutput       = "output"
	flagNoFormat     = "no-format"
	flagRustfmt      = "rustfmt"
	flagEdition      = "edition"
	flagVerbose      = "verbose"
	flagConfig       = "config"
)

// newRootCmd creates the root command reading settings from flags, RSBUNDLE_* variables and an optional config file
func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "rsbundle [project-path]",
		Short: "Bundle a Cargo binary and its library into a single source file",
		Long: `rsbundle merges the binary crate of a Cargo package with the package library:
the library replaces its extern crate marker, module files are inlined and
imports are rewritten, producing one self-contained Rust file.

Examples:
  rsbundle                      Bundle the package in the current directory
  rsbundle ./solver -b solve    Bundle the 'solve' binary
  rsbundle --remove-unused-mod  Drop library modules the binary never imports`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			projectPath := "."
			if len(args) > 0 {
				projectPath = args[0]
			}
			return run(cmd, v, projectPath)
		},
	}

	flags := cmd.Flags()
	flags.StringP(flagBin, "b", "", "binary target to bundle (default-run or the only binary when empty)")
	flags.Bool(flagRemoveUnused, false, "remove library modules not imported by the binary")
	flags.StringP(flagOutput, "o", "", "output file (default is stdout)")
	flags.Bool(flagNoFormat, false, "skip rustfmt")
	flags.String(flagRustfmt, "rustfmt", "rustfmt binary location")
	flags.String(flagEdition, "", "Rust edition passed to rustfmt (default is the manifest edition)")
	flags.BoolP(flagVerbose, "v", false, "enable verbose output")
	flags.String(flagConfig, "", "config file (yaml, toml or json)")
	return cmd
}

// initConfig binds flags and environment variables and loads the config file if one was given
func initConfig(v *viper.Viper, cmd *cobra.Command) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	if cfgFile := v.GetString(flagConfig); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	}
	return nil
}

func run(cmd *cobra.Command, v *viper.Viper, projectPath string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "rsbundle",
		Level:  log.WarnLevel,
	})
	if v.GetBool(flagVerbose) {
		logger.SetLevel(log.DebugLevel)
	}

	fs := afs.New()
	options := []bundler.Option{
		bundler.WithFS(fs),
		bundler.WithLogger(logger),
		bundler.WithRemoveUnusedModules(v.GetBool(flagRemoveUnused)),
		bundler.WithEdition(v.GetString(flagEdition)),
	}
	if v.GetBool(flagNoFormat) {
		options = append(options, bundler.WithFormatter(bundler.NoFormat))
	} else {
		options = append(options, bundler.WithFormatter(&bundler.Rustfmt{Path: v.GetString(flagRustfmt)}))
	}

	output, err := bundler.New(options...).Run(ctx, projectPath, v.GetString(flagBin))
	if err != nil {
		return err
	}
	logger.Info("bundled", "bin", output.Binary, "crate", output.Crate, "files", len(output.Files), "checksum", fmt.Sprintf("%016x", output.Checksum))

	location := v.GetString(flagOutput)
	if location == "" {
		_, err = cmd.OutOrStdout().Write([]byte(output.Code))
		return err
	}
	if err = fs.Upload(ctx, location, 0o644, bytes.NewReader([]byte(output.Code))); err != nil {
		return fmt.Errorf("failed to write %s: %w", location, err)
	}
	return nil
}

// Execute runs the root command and exits with status 1 on failure
func Execute() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
