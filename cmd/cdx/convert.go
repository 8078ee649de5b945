package main

import (
	"github.com/spf13/cobra"

	"xdao.co/sbom/model"
	"xdao.co/sbom/specversion"
)

// outputOptions are the flags shared by every command that writes a BOM.
type outputOptions struct {
	Format      string
	SpecVersion string
	Indent      bool
	Path        string
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Format, "output-format", "json", "Output format: xml, json or protobuf")
	cmd.Flags().StringVar(&o.SpecVersion, "output-version", specversion.Latest.String(), "Output specification version")
	cmd.Flags().BoolVar(&o.Indent, "indent", true, "Indent XML and JSON output")
	cmd.Flags().StringVarP(&o.Path, "output-file", "o", "", "Write to this file instead of standard output")
}

func (o *outputOptions) model() model.Output {
	return model.Output{Format: o.Format, SpecVersion: o.SpecVersion, Indent: o.Indent}
}

type ConvertOptions struct {
	Output outputOptions
}

func newConvertCommand(e *env) *cobra.Command {
	opts := &ConvertOptions{}
	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a BOM between formats and specification versions",
		Long: `Convert reads a BOM in any supported format and version (standard input
when no file is given), migrates it to --output-version and encodes it in
--output-format. Fields the target version cannot hold are dropped.`,
		Args: argsRange(0, 1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			return opts.Run(cmd, e, firstArg(args))
		}),
	}
	opts.Output.register(cmd)
	return cmd
}

func (o *ConvertOptions) Run(cmd *cobra.Command, e *env, path string) error {
	data, err := e.readInput(path)
	if err != nil {
		return err
	}
	resp, err := model.Convert(cmd.Context(), model.ConvertRequest{
		Input:  model.BlobRef{Bytes: data},
		Output: o.Output.model(),
	}, model.Options{})
	if err != nil {
		return err
	}
	e.log.WithFields(map[string]any{
		"from": resp.InputFormat + "/" + resp.InputSpecVersion,
		"to":   resp.Output.Format + "/" + resp.Output.SpecVersion,
		"cid":  resp.Output.CID,
	}).Debug("converted")
	return e.writeOutput(o.Output.Path, resp.Output.Bytes)
}
