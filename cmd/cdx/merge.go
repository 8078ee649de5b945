package main

import (
	"github.com/spf13/cobra"

	"xdao.co/sbom/model"
)

type MergeOptions struct {
	Hierarchical bool
	Subject      model.Subject
	Output       outputOptions
}

func newMergeCommand(e *env) *cobra.Command {
	opts := &MergeOptions{}
	cmd := &cobra.Command{
		Use:   "merge file...",
		Short: "Merge BOMs into one",
		Long: `Merge combines the input BOMs. A flat merge concatenates their
components, services and dependencies. A hierarchical merge keeps each
input as a subtree under its metadata component and needs --name.`,
		Args: argsRange(1, -1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd, e, args)
		}),
	}
	cmd.Flags().BoolVar(&opts.Hierarchical, "hierarchical", false, "Keep each input as a subtree of its metadata component")
	cmd.Flags().StringVar(&opts.Subject.Group, "group", "", "Group of the merged BOM's subject component")
	cmd.Flags().StringVar(&opts.Subject.Name, "name", "", "Name of the merged BOM's subject component")
	cmd.Flags().StringVar(&opts.Subject.Version, "version", "", "Version of the merged BOM's subject component")
	cmd.Flags().StringVar(&opts.Subject.BomRef, "bom-ref", "", "bom-ref of the subject component")
	opts.Output.register(cmd)
	return cmd
}

func (o *MergeOptions) Run(cmd *cobra.Command, e *env, paths []string) error {
	if o.Hierarchical && o.Subject.Name == "" {
		return usageErrorf("--hierarchical requires --name")
	}
	req := model.MergeRequest{Hierarchical: o.Hierarchical, Output: o.Output.model()}
	if o.Subject != (model.Subject{}) {
		s := o.Subject
		req.Subject = &s
	}
	for _, p := range paths {
		data, err := e.readInput(p)
		if err != nil {
			return err
		}
		req.Inputs = append(req.Inputs, model.BlobRef{Bytes: data})
	}
	resp, err := model.Merge(cmd.Context(), req, model.Options{})
	if err != nil {
		return err
	}
	e.log.WithField("inputs", len(paths)).WithField("cid", resp.Output.CID).Info("merged")
	return e.writeOutput(o.Output.Path, resp.Output.Bytes)
}
