package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"xdao.co/sbom/model"
)

type ValidateOptions struct {
	Format          string
	SpecVersion     string
	CheckReferences bool
	Jobs            int
}

func newValidateCommand(e *env) *cobra.Command {
	opts := &ValidateOptions{}
	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Validate BOMs against the CycloneDX schemas",
		Long: `Validate checks each file (standard input when none is given) against the
schema of its declared specification version. Files are validated
concurrently; the command fails if any file is invalid.`,
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd, e, args)
		}),
	}
	cmd.Flags().StringVar(&opts.Format, "input-format", "", "Input format (xml or json); detected when empty")
	cmd.Flags().StringVar(&opts.SpecVersion, "input-version", "", "Validate against this version instead of the declared one")
	cmd.Flags().BoolVar(&opts.CheckReferences, "check-references", false, "Also report duplicate and dangling bom-refs")
	cmd.Flags().IntVar(&opts.Jobs, "jobs", runtime.NumCPU(), "Maximum files validated at once")
	return cmd
}

func (o *ValidateOptions) Run(cmd *cobra.Command, e *env, paths []string) error {
	if o.Jobs < 1 {
		return usageErrorf("--jobs must be at least 1")
	}
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	results := make([]*model.ValidateResponse, len(paths))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(o.Jobs)
	for i, path := range paths {
		g.Go(func() error {
			data, err := e.readInput(path)
			if err != nil {
				return err
			}
			resp, err := model.Validate(ctx, model.ValidateRequest{
				Input:           model.BlobRef{Bytes: data},
				Format:          o.Format,
				SpecVersion:     o.SpecVersion,
				CheckReferences: o.CheckReferences,
			}, model.Options{})
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	invalid := 0
	for i, r := range results {
		name := paths[i]
		if name == "-" {
			name = "<stdin>"
		}
		if r.Valid {
			fmt.Fprintf(e.out, "%s: valid (%s %s)\n", name, r.Format, r.SpecVersion)
			continue
		}
		invalid++
		fmt.Fprintf(e.out, "%s: invalid (%s %s)\n", name, r.Format, r.SpecVersion)
		for _, m := range r.Messages {
			fmt.Fprintf(e.out, "  %s\n", m)
		}
		for _, m := range r.ReferenceProblems {
			fmt.Fprintf(e.out, "  %s\n", m)
		}
	}
	e.log.WithField("files", len(paths)).WithField("invalid", invalid).Debug("validation finished")
	if invalid > 0 {
		return &exitError{code: 1}
	}
	return nil
}
