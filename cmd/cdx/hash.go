package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	v16 "xdao.co/sbom/bom/v16"
	"xdao.co/sbom/bomutil"
)

func newHashCommand(e *env) *cobra.Command {
	var algs []string
	cmd := &cobra.Command{
		Use:   "hash [file]",
		Short: "Compute CycloneDX hashes of a file",
		Long: `Hash prints one line per algorithm. Algorithm names are the CycloneDX
ones: MD5, SHA-1, SHA-256, SHA-384, SHA-512, SHA3-256, SHA3-384, SHA3-512,
BLAKE2b-256, BLAKE2b-384, BLAKE2b-512 and BLAKE3.`,
		Args: argsRange(0, 1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			list := make([]v16.HashAlgorithm, 0, len(algs))
			for _, a := range algs {
				alg := v16.HashAlgorithm(a)
				if !alg.IsDefined() {
					return usageErrorf("unknown hash algorithm %q", a)
				}
				list = append(list, alg)
			}
			data, err := e.readInput(firstArg(args))
			if err != nil {
				return err
			}
			hashes, err := bomutil.ComputeHashes(bytes.NewReader(data), list...)
			if err != nil {
				return err
			}
			for _, h := range hashes {
				fmt.Fprintf(e.out, "%s  %s\n", h.Alg, h.Content)
			}
			return nil
		}),
	}
	cmd.Flags().StringSliceVar(&algs, "alg", []string{string(v16.HashSHA256)}, "Hash algorithm (repeatable)")
	return cmd
}
