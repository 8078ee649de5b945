package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"xdao.co/sbom/model"
)

type DiffOptions struct {
	Format      string
	OnlyChanges bool
}

func newDiffCommand(e *env) *cobra.Command {
	opts := &DiffOptions{}
	cmd := &cobra.Command{
		Use:   "diff from-file to-file",
		Short: "Report component versions added, removed or kept between two BOMs",
		Args:  argsRange(2, 2),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd, e, args[0], args[1])
		}),
	}
	cmd.Flags().StringVar(&opts.Format, "output-format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&opts.OnlyChanges, "only-changes", false, "Omit components whose versions did not change")
	return cmd
}

func (o *DiffOptions) Run(cmd *cobra.Command, e *env, fromPath, toPath string) error {
	if o.Format != "text" && o.Format != "json" {
		return usageErrorf("--output-format must be text or json")
	}
	from, err := e.readInput(fromPath)
	if err != nil {
		return err
	}
	to, err := e.readInput(toPath)
	if err != nil {
		return err
	}
	resp, err := model.Diff(cmd.Context(), model.DiffRequest{
		From: model.BlobRef{Bytes: from},
		To:   model.BlobRef{Bytes: to},
	}, model.Options{})
	if err != nil {
		return err
	}
	if o.OnlyChanges {
		for k, d := range resp.Components {
			if len(d.Added) == 0 && len(d.Removed) == 0 {
				delete(resp.Components, k)
			}
		}
	}

	if o.Format == "json" {
		enc := json.NewEncoder(e.out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	keys := make([]string, 0, len(resp.Components))
	for k := range resp.Components {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		d := resp.Components[k]
		fmt.Fprintln(e.out, k)
		for _, c := range d.Removed {
			fmt.Fprintf(e.out, "  - %s\n", c.Version)
		}
		for _, c := range d.Added {
			fmt.Fprintf(e.out, "  + %s\n", c.Version)
		}
		for _, c := range d.Unchanged {
			fmt.Fprintf(e.out, "    %s\n", c.Version)
		}
	}
	return nil
}
