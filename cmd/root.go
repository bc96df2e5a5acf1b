// Package cmd implements the zigdeps command-line interface.
//
// A single root command scans a directory for build.zig.zon manifests,
// reports whether every pinned dependency is at its latest revision and
// optionally updates the pins through `zig fetch --save`.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ajxudir/zigdeps/pkg/config"
	"github.com/ajxudir/zigdeps/pkg/errors"
	"github.com/ajxudir/zigdeps/pkg/oracle"
	"github.com/ajxudir/zigdeps/pkg/output"
	"github.com/ajxudir/zigdeps/pkg/preflight"
	"github.com/ajxudir/zigdeps/pkg/reconcile"
	"github.com/ajxudir/zigdeps/pkg/verbose"
	"github.com/ajxudir/zigdeps/pkg/walker"
	"github.com/spf13/cobra"
)

var exitFunc = os.Exit

// rootOptions holds the flag values of one command invocation.
type rootOptions struct {
	verbose        bool
	version        bool
	configPath     string
	recursive      bool
	update         bool
	continueOnFail bool
	exclude        []string
	format         string
	zig            string
	timeout        int
	minZigVersion  string
}

// newRootCmd builds the root command with fresh flag state.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "zigdeps [root]",
		Short: "Check and update build.zig.zon dependencies",
		Long: `Scan a directory for build.zig.zon manifests and report, for every declared
dependency URL, whether the pinned revision is the latest one. With --update
the pins of out of date dependencies are rewritten with zig fetch --save.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.verbose, "verbose", false, "Enable verbose debug output")
	flags.BoolVarP(&opts.version, "version", "V", false, "Show version information")
	flags.StringVar(&opts.configPath, "config", "", "Path to a config file (default: <root>/.zigdeps.yml)")
	flags.BoolVarP(&opts.recursive, "recursive", "r", false, "Also scan subdirectories")
	flags.BoolVarP(&opts.update, "update", "u", false, "Update out of date dependencies")
	flags.BoolVar(&opts.continueOnFail, "continue-on-fail", false, "Report failed dependencies and keep going")
	flags.StringArrayVar(&opts.exclude, "exclude", nil, "Skip paths matching a glob relative to root (repeatable)")
	flags.StringVar(&opts.format, "format", "", "Output format: text, table, json")
	flags.StringVar(&opts.zig, "zig", "", "zig executable (default: $ZIGDEPS_ZIG or zig)")
	flags.IntVar(&opts.timeout, "timeout", 0, "Timeout in seconds for each zig invocation (0 disables)")
	flags.StringVar(&opts.minZigVersion, "min-zig-version", "", "Fail unless zig version is at least this")

	return cmd
}

// Execute runs the root command and exits with appropriate code:
//   - 0: Success
//   - 1: Partial failure (some dependencies failed, with --continue-on-fail)
//   - 2: Complete failure
//   - 3: Configuration or validation error
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", errors.EnhanceErrorWithHint(err))
		exitFunc(errors.GetExitCode(err))
	}
}

// ExecuteTest runs the root command with args for testing (returns error
// instead of exiting). Output goes to the process stdout and stderr.
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest(args ...string) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

// runRoot validates the root, loads configuration and drives the
// collect, preflight, reconcile and render stages.
func runRoot(cmd *cobra.Command, args []string, opts *rootOptions) (err error) {
	out := cmd.OutOrStdout()

	if opts.version {
		printVersionOutput(out)
		return nil
	}
	if opts.verbose {
		verbose.Enable()
		defer func() {
			logExitCode(err)
			verbose.Disable()
		}()
	}

	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return errors.NewConfigError("root", root, "is not a directory.")
	}

	cfg, err := config.Load(opts.configPath, root)
	if err != nil {
		return err
	}
	applyFlags(cmd, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return errors.NewConfigError("format", cfg.Format, err.Error())
	}

	groups, err := walker.Collect(root, walker.Options{
		Recursive:    cfg.Recursive,
		ManifestName: cfg.Manifest,
		Exclude:      cfg.Exclude,
	})
	if err != nil {
		return err
	}
	if groups.Empty() {
		fmt.Fprintf(out, "no %s file found (or no URLs in it). did you run the command from the wrong directory?\n", cfg.Manifest)
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	zig := oracle.NewZig(cfg.Oracle.Command, cfg.Oracle.Timeout())
	if err := preflight.Run(ctx, zig, cfg.Oracle.MinVersion); err != nil {
		return err
	}

	var stream io.Writer = io.Discard
	if output.IsStreaming(format) {
		stream = out
	}
	rec := reconcile.New(zig, stream, reconcile.Options{
		Update:         cfg.Update,
		ContinueOnFail: cfg.ContinueOnFail,
	})
	// Results gathered before an abort are still rendered: earlier
	// declarations may already have been saved.
	results, runErr := rec.Run(ctx, groups)
	if err := output.Render(out, format, root, results); err != nil && runErr == nil {
		return fmt.Errorf("rendering %s output: %w", format, err)
	}
	return runErr
}

// logExitCode records the exit code a run maps to.
func logExitCode(err error) {
	code := errors.GetExitCode(err)
	if partialErr, ok := errors.IsPartialSuccess(err); ok {
		verbose.Infof("Exit code %d: partial success - %d succeeded, %d failed", code, partialErr.Succeeded, partialErr.Failed)
		return
	}
	if err != nil {
		verbose.Infof("Exit code %d: %v", code, err)
		return
	}
	verbose.Infof("Exit code %d", code)
}

// applyFlags copies explicitly set flags over the loaded configuration.
func applyFlags(cmd *cobra.Command, opts *rootOptions, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("recursive") {
		cfg.Recursive = opts.recursive
	}
	if flags.Changed("update") {
		cfg.Update = opts.update
	}
	if flags.Changed("continue-on-fail") {
		cfg.ContinueOnFail = opts.continueOnFail
	}
	if flags.Changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, opts.exclude...)
	}
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("zig") {
		cfg.Oracle.Command = opts.zig
	}
	if flags.Changed("timeout") {
		cfg.Oracle.TimeoutSeconds = opts.timeout
	}
	if flags.Changed("min-zig-version") {
		cfg.Oracle.MinVersion = opts.minZigVersion
	}
}
