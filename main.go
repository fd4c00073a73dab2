// Package main implements a CLI tool to rewrite the coroutines-core version
// in the readme and the Maven build descriptor.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	relbump "github.com/zarbosoft/relbump/pkg"
)

// usageError marks errors caused by how the command was invoked.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

type options struct {
	configPath string
	dir        string
	artifact   string
	strict     bool
	dry        bool
	quiet      bool
	verbose    bool
}

const longHelp = `Rewrites the coroutines-core version in readme.md and coroutines-core/pom.xml
(relative to the working directory) and prints the rewritten text of each file.

Every Maven dependency block naming the artifact gets its <version> tag replaced,
and in readme.md every coroutines-core-N.N.N.jar reference is renamed. Each file
is written to a temporary file and renamed over the original.

Targets and the artifact can be changed with a relbump.toml file in the working
directory or with --config.`

const examples = `  relbump 2.5.0
  relbump --dry 2.5.0
  relbump -C ../coroutines --strict 2.5.0
  relbump --config release/relbump.toml 2.5.0`

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "relbump [options] <version>",
		Short:         "Rewrite the released artifact version in docs and build files",
		Long:          longHelp,
		Example:       examples,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError{errors.New("<version> positional argument is required")}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0], stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate("relbump CLI version {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Path to a relbump.toml config file (default: ./relbump.toml if present)")
	flags.StringVarP(&opts.dir, "dir", "C", "", "Directory that target paths are relative to")
	flags.StringVar(&opts.artifact, "artifact", "", "Artifact whose version is rewritten (default: coroutines-core)")
	flags.BoolVar(&opts.strict, "strict", false, "Require the version to be exactly N.N.N")
	flags.BoolVar(&opts.dry, "dry", false, "Print the rewritten files without modifying them")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Do not print the rewritten files")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	return cmd
}

func run(cmd *cobra.Command, opts options, version string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(opts.configPath, opts.dir)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("artifact") {
		cfg.Artifact = opts.artifact
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = opts.strict
	}
	cfg.Dir = opts.dir
	cfg.Out = stdout
	if opts.quiet {
		cfg.Out = io.Discard
	}
	logger := relbump.NewLogger(stderr, opts.verbose)
	cfg.Logger = logger

	var meta relbump.VersionMeta
	if opts.dry {
		meta, err = relbump.DryRun(cfg, version)
	} else {
		meta, err = relbump.Run(cfg, version)
	}
	if err != nil {
		return err
	}

	msg := "Version bump successful!"
	if opts.dry {
		msg = "Dry run complete, no files were modified."
	}
	logger.Info().
		Str("old", meta.OldVersion).
		Str("new", meta.NewVersion).
		Strs("updated", meta.UpdatedFiles).
		Strs("unchanged", meta.UnchangedFiles).
		Msg(msg)
	return nil
}

// loadConfig reads the explicit config path, falls back to relbump.toml in
// dir, and otherwise uses the built-in targets.
func loadConfig(path, dir string) (relbump.Config, error) {
	if path != "" {
		return relbump.LoadConfig(path)
	}
	candidate := filepath.Join(dir, relbump.ConfigFileName)
	if _, err := os.Stat(candidate); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return relbump.DefaultConfig(), nil
		}
		return relbump.Config{}, fmt.Errorf("load config: %w", err)
	}
	return relbump.LoadConfig(candidate)
}

// exitCode is 2 for bad invocations and invalid versions, 1 for everything else.
func exitCode(err error) int {
	var ue usageError
	if errors.As(err, &ue) || errors.Is(err, relbump.ErrInvalidVersion) {
		return 2
	}
	return 1
}

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprint(os.Stderr, root.UsageString())
		}
		os.Exit(exitCode(err))
	}
}
