package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"xdao.co/sbom/keys"
)

// signerOptions select a signing seed and algorithm.
type signerOptions struct {
	KeyDir    string
	SeedHex   string
	Signer    string
	Role      string
	KeyFile   string
	Algorithm string
}

func (o *signerOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.KeyDir, "key-dir", "", "Key store directory (default ~/.xdao/sbom/keys)")
	cmd.Flags().StringVar(&o.SeedHex, "seed-hex", "", "Signing seed as 64 hex chars")
	cmd.Flags().StringVar(&o.Signer, "signer", "", "Stored key identifier")
	cmd.Flags().StringVar(&o.Role, "signer-role", "", "With --signer, use this derived role key")
	cmd.Flags().StringVar(&o.KeyFile, "key-file", "", "Seed file written by 'cdx key init' or 'cdx key derive'")
	cmd.Flags().StringVar(&o.Algorithm, "alg", string(keys.Ed25519), "Signature algorithm: ed25519 or dilithium3")
}

func (o *signerOptions) signer() (keys.Signer, error) {
	n := 0
	for _, s := range []string{o.SeedHex, o.Signer, o.KeyFile} {
		if s != "" {
			n++
		}
	}
	if n != 1 {
		return nil, usageErrorf("exactly one of --seed-hex, --signer or --key-file is required")
	}
	alg, err := keys.ParseAlgorithm(o.Algorithm)
	if err != nil {
		return nil, usageErrorf("--alg: %v", err)
	}
	ks, err := keys.Open(o.KeyDir)
	if err != nil {
		return nil, err
	}
	seed, err := ks.LoadSeed(o.SeedHex, o.Signer, o.Role, o.KeyFile)
	if err != nil {
		return nil, err
	}
	return keys.NewSigner(alg, seed)
}

func newKeyCommand(e *env) *cobra.Command {
	var dir, alg string
	cmd := &cobra.Command{
		Use:   "key [command]",
		Short: "Manage signing keys in the local key store",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return &exitError{code: 2}
		},
	}
	cmd.PersistentFlags().StringVar(&dir, "key-dir", "", "Key store directory (default ~/.xdao/sbom/keys)")
	cmd.PersistentFlags().StringVar(&alg, "alg", string(keys.Ed25519), "Algorithm of the printed public keys: ed25519 or dilithium3")

	store := func() (*keys.KeyStore, keys.Algorithm, error) {
		a, err := keys.ParseAlgorithm(alg)
		if err != nil {
			return nil, "", usageErrorf("--alg: %v", err)
		}
		ks, err := keys.Open(dir)
		return ks, a, err
	}

	var seedHex string
	var force bool
	initCmd := &cobra.Command{
		Use:   "init name",
		Short: "Create a root key and print its public key",
		Args:  argsRange(1, 1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			ks, a, err := store()
			if err != nil {
				return err
			}
			var seed []byte
			if seedHex != "" {
				seed, err = keys.ParseSeedHex(seedHex)
			} else {
				seed, err = keys.NewSeed(nil)
			}
			if err != nil {
				return err
			}
			pub, path, err := ks.InitializeRootKey(args[0], seed, a, force)
			if err != nil {
				return err
			}
			e.log.WithField("file", path).Info("root key written")
			fmt.Fprintln(e.out, pub)
			return nil
		}),
	}
	initCmd.Flags().StringVar(&seedHex, "seed-hex", "", "Use this seed instead of a random one")
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing key")

	var deriveForce bool
	deriveCmd := &cobra.Command{
		Use:   "derive name role",
		Short: "Derive a role key from a root key and print its public key",
		Args:  argsRange(2, 2),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			ks, a, err := store()
			if err != nil {
				return err
			}
			pub, path, err := ks.DeriveRole(args[0], args[1], a, deriveForce)
			if err != nil {
				return err
			}
			e.log.WithField("file", path).Info("role key written")
			fmt.Fprintln(e.out, pub)
			return nil
		}),
	}
	deriveCmd.Flags().BoolVar(&deriveForce, "force", false, "Overwrite an existing role key")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored keys as JSON",
		Args:  argsRange(0, 0),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			ks, _, err := store()
			if err != nil {
				return err
			}
			list, err := ks.ListKeys()
			if err != nil {
				return err
			}
			if list == nil {
				list = []keys.KeyEntry{}
			}
			enc := json.NewEncoder(e.out)
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		}),
	}

	var exportRole string
	exportCmd := &cobra.Command{
		Use:   "export name",
		Short: "Print the public key of a stored key",
		Args:  argsRange(1, 1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			ks, a, err := store()
			if err != nil {
				return err
			}
			pub, err := ks.PublicKey(args[0], exportRole, a)
			if err != nil {
				return err
			}
			fmt.Fprintln(e.out, pub)
			return nil
		}),
	}
	exportCmd.Flags().StringVar(&exportRole, "role", "", "Export this derived role key instead of the root key")

	cmd.AddCommand(initCmd, deriveCmd, listCmd, exportCmd)
	return cmd
}

func newSignCommand(e *env) *cobra.Command {
	var so signerOptions
	var hashAlg, outPath string
	cmd := &cobra.Command{
		Use:   "sign [file]",
		Short: "Write a detached signature over a BOM's CID",
		Long: `Sign computes the CID of the file's exact bytes and signs it. The
signature is written as JSON and verifies only against the same bytes.`,
		Args: argsRange(0, 1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			signer, err := so.signer()
			if err != nil {
				return err
			}
			data, err := e.readInput(firstArg(args))
			if err != nil {
				return err
			}
			sig, err := keys.SignBOM(data, hashAlg, signer)
			if err != nil {
				return err
			}
			e.log.WithField("subject", sig.Subject).WithField("key", sig.PublicKey).Info("signed")
			out, err := json.MarshalIndent(sig, "", "  ")
			if err != nil {
				return err
			}
			return e.writeOutput(outPath, append(out, '\n'))
		}),
	}
	so.register(cmd)
	cmd.Flags().StringVar(&hashAlg, "hash", keys.DefaultHash, "Digest: sha256, sha512, sha3-256 or sha3-512")
	cmd.Flags().StringVarP(&outPath, "output-file", "o", "", "Write the signature to this file instead of standard output")
	return cmd
}

func newVerifyCommand(e *env) *cobra.Command {
	var sigPath string
	var trusted []string
	cmd := &cobra.Command{
		Use:   "verify [file]",
		Short: "Check a detached signature against a BOM",
		Args:  argsRange(0, 1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			if sigPath == "" {
				return usageErrorf("missing --signature")
			}
			raw, err := os.ReadFile(sigPath)
			if err != nil {
				return err
			}
			var sig keys.Signature
			if err := json.Unmarshal(raw, &sig); err != nil {
				return fmt.Errorf("signature: %w", err)
			}
			data, err := e.readInput(firstArg(args))
			if err != nil {
				return err
			}
			if err := keys.Verify(data, sig, trusted...); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "OK %s %s\n", sig.Subject, sig.PublicKey)
			return nil
		}),
	}
	cmd.Flags().StringVar(&sigPath, "signature", "", "Signature file written by 'cdx sign'")
	cmd.Flags().StringArrayVar(&trusted, "trust", nil, "Accept only this public key (repeatable)")
	return cmd
}
