package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xdao.co/sbom/cidutil"
	"xdao.co/sbom/codec"
	"xdao.co/sbom/specversion"
)

func newCIDCommand(e *env) *cobra.Command {
	var reencode string
	var indent bool
	cmd := &cobra.Command{
		Use:   "cid [file]",
		Short: "Print the content identifier of a BOM",
		Long: `Cid prints the CIDv1 (raw, sha2-256) of the file's exact bytes. With
--reencode the BOM is decoded and encoded again in the given format first,
so documents that differ only in layout share an identifier.`,
		Args: argsRange(0, 1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			data, err := e.readInput(firstArg(args))
			if err != nil {
				return err
			}
			if reencode == "" {
				id, err := cidutil.Sum(data)
				if err != nil {
					return err
				}
				fmt.Fprintln(e.out, id)
				return nil
			}
			f, err := specversion.ParseFormat(reencode)
			if err != nil {
				return usageErrorf("--reencode: %v", err)
			}
			doc, _, err := codec.DecodeAny(data)
			if err != nil {
				return err
			}
			id, _, err := cidutil.BomCID(doc, f, codec.WithIndent(indent))
			if err != nil {
				return err
			}
			fmt.Fprintln(e.out, id)
			return nil
		}),
	}
	cmd.Flags().StringVar(&reencode, "reencode", "", "Re-encode as xml, json or protobuf before hashing")
	cmd.Flags().BoolVar(&indent, "indent", false, "Indent the re-encoded document")
	return cmd
}
