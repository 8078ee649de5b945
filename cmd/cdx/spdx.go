package main

import (
	"bytes"

	"github.com/spf13/cobra"

	"xdao.co/sbom/codec"
	"xdao.co/sbom/convert"
	"xdao.co/sbom/spdx"
	"xdao.co/sbom/spdx/interop"
	"xdao.co/sbom/specversion"
)

func newSpdxCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spdx [command]",
		Short: "Convert between CycloneDX and SPDX 2.3 JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return &exitError{code: 2}
		},
	}
	cmd.AddCommand(newSpdxToCommand(e), newSpdxFromCommand(e))
	return cmd
}

func newSpdxToCommand(e *env) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "to [file]",
		Short: "Convert a CycloneDX BOM to an SPDX 2.3 JSON document",
		Args:  argsRange(0, 1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			data, err := e.readInput(firstArg(args))
			if err != nil {
				return err
			}
			doc, _, err := codec.DecodeAny(data)
			if err != nil {
				return err
			}
			latest, err := convert.ToLatest(doc)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := spdx.Write(&buf, interop.ToSpdx(latest)); err != nil {
				return err
			}
			return e.writeOutput(outPath, buf.Bytes())
		}),
	}
	cmd.Flags().StringVarP(&outPath, "output-file", "o", "", "Write to this file instead of standard output")
	return cmd
}

func newSpdxFromCommand(e *env) *cobra.Command {
	var out outputOptions
	cmd := &cobra.Command{
		Use:   "from [file]",
		Short: "Convert an SPDX 2.3 JSON document to a CycloneDX BOM",
		Args:  argsRange(0, 1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			f, err := specversion.ParseFormat(out.Format)
			if err != nil {
				return usageErrorf("--output-format: %v", err)
			}
			v, err := specversion.ParseVersion(out.SpecVersion)
			if err != nil {
				return usageErrorf("--output-version: %v", err)
			}
			data, err := e.readInput(firstArg(args))
			if err != nil {
				return err
			}
			sd, err := spdx.Read(bytes.NewReader(data))
			if err != nil {
				return err
			}
			target, err := convert.Convert(interop.FromSpdx(sd), v)
			if err != nil {
				return err
			}
			enc, err := codec.Marshal(target, f, codec.WithIndent(out.Indent))
			if err != nil {
				return err
			}
			return e.writeOutput(out.Path, enc)
		}),
	}
	out.register(cmd)
	return cmd
}
