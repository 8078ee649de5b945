// Command cdx converts, validates, merges, stores and signs CycloneDX
// BOMs.
//
// Exit codes: 0 on success, 1 when an operation fails or a document is
// invalid, 2 on usage errors.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// exitError carries the process exit code. A nil err means the failure
// was already reported.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, args...)}
}

// env is shared by every subcommand.
type env struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	log    *logrus.Logger
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	e := &env{in: in, out: out, errOut: errOut, log: logrus.New()}
	e.log.SetOutput(errOut)
	e.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	root := newRootCommand(e)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", ee.err)
		}
		return ee.code
	}
	// Anything not produced by a RunE is cobra rejecting the command line.
	fmt.Fprintf(errOut, "Error: %v\n", err)
	return 2
}

func newRootCommand(e *env) *cobra.Command {
	var logLevel string
	cmd := &cobra.Command{
		Use:           "cdx [command]",
		Short:         "CycloneDX BOM tool",
		Long:          "Convert, validate, merge, diff, store and sign CycloneDX BOMs in XML, JSON and Protocol Buffers.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return usageErrorf("--log-level: %v", err)
			}
			e.log.SetLevel(lvl)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return &exitError{code: 2}
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: 2, err: err}
	})
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: panic, fatal, error, warn, info, debug or trace")

	cmd.AddCommand(
		newConvertCommand(e),
		newValidateCommand(e),
		newMergeCommand(e),
		newDiffCommand(e),
		newVersionsCommand(e),
		newSpdxCommand(e),
		newCIDCommand(e),
		newStoreCommand(e),
		newHashCommand(e),
		newKeyCommand(e),
		newSignCommand(e),
		newVerifyCommand(e),
	)
	return cmd
}

// runE adapts an operation so that its errors exit with status 1.
func runE(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err == nil {
			return nil
		}
		var ee *exitError
		if errors.As(err, &ee) {
			return err
		}
		return &exitError{code: 1, err: err}
	}
}

// argsRange accepts between lo and hi positional arguments; a negative hi
// means no upper bound.
func argsRange(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < lo || (hi >= 0 && len(args) > hi) {
			return usageErrorf("usage: %s", cmd.UseLine())
		}
		return nil
	}
}

// readInput reads path, or standard input for "" and "-".
func (e *env) readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(e.in)
	}
	return os.ReadFile(path)
}

// writeOutput writes to path, or standard output for "" and "-".
func (e *env) writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := e.out.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
