package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/ipfs/go-cid"
	"github.com/spf13/cobra"

	"xdao.co/sbom/cidutil"
	"xdao.co/sbom/codec"
	"xdao.co/sbom/convert"
	"xdao.co/sbom/specversion"
	"xdao.co/sbom/storage"
	"xdao.co/sbom/storage/bundle"
	"xdao.co/sbom/storage/casconfig"
	"xdao.co/sbom/storage/casregistry"
	"xdao.co/sbom/storage/localfs"

	_ "xdao.co/sbom/storage/grpccas"
)

// StoreOptions select the CAS and the sidecar index the store
// subcommands work on.
type StoreOptions struct {
	Backend   string
	Config    string
	Preferred string
	Index     string
}

func newStoreCommand(e *env) *cobra.Command {
	opts := &StoreOptions{}
	cmd := &cobra.Command{
		Use:   "store [command]",
		Short: "Keep BOMs in a content-addressed store",
		Long: `Store puts encoded BOMs into a CAS backend under their CID and reads
them back. A sidecar index remembers the format, specification version and
serial number of every stored document. For the localfs backend it lives
in index.json inside the store directory unless --index says otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return &exitError{code: 2}
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.Backend, "backend", "localfs", "CAS backend: "+strings.Join(casregistry.Names(casregistry.UsageCLI), ", "))
	pf.StringVar(&opts.Config, "cas-config", "", "CAS config file (JSON or YAML); replaces --backend")
	pf.StringVar(&opts.Preferred, "preferred-backend", "", "With --cas-config, the backend (name or id) that takes writes")
	pf.StringVar(&opts.Index, "index", "", "Index file")
	gofs := flag.NewFlagSet("store", flag.ContinueOnError)
	casregistry.RegisterFlags(gofs, casregistry.UsageCLI)
	pf.AddGoFlagSet(gofs)

	cmd.AddCommand(
		newStorePutCommand(e, opts),
		newStoreGetCommand(e, opts),
		newStoreListCommand(e, opts),
		newStoreExportCommand(e, opts),
		newStoreImportCommand(e, opts),
	)
	return cmd
}

type openStore struct {
	*storage.TypedStore
	index string
	close func() error
}

func (o *StoreOptions) open() (*openStore, error) {
	var (
		cas     storage.CAS
		closeFn func() error
		err     error
	)
	if o.Config != "" {
		cfg, lerr := casconfig.LoadFile(o.Config)
		if lerr != nil {
			return nil, lerr
		}
		cas, closeFn, err = cfg.Open(casregistry.UsageCLI, o.Preferred)
	} else {
		cas, closeFn, err = casregistry.Open(o.Backend, casregistry.UsageCLI)
	}
	if err != nil {
		return nil, err
	}
	if closeFn == nil {
		closeFn = func() error { return nil }
	}
	s := &openStore{TypedStore: storage.NewTypedStore(cas), index: o.Index, close: closeFn}
	if s.index == "" {
		if l, ok := cas.(*localfs.CAS); ok {
			s.index = filepath.Join(l.Root(), "index.json")
		}
	}
	if s.index == "" {
		return s, nil
	}
	f, err := os.Open(s.index)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		_ = closeFn()
		return nil, err
	}
	defer f.Close()
	if err := s.LoadIndex(f); err != nil {
		_ = closeFn()
		return nil, err
	}
	return s, nil
}

// save rewrites the index file through a temporary file in the same
// directory.
func (s *openStore) save() error {
	if s.index == "" {
		return nil
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.index), ".index-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := s.SaveIndex(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.index)
}

func printEntries(e *env, entries []storage.Entry) error {
	tw := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CID\tFORMAT\tSPEC\tSERIAL\tVERSION\tSIZE")
	for _, en := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\n", en.CID, en.Format, en.SpecVersion, en.SerialNumber, en.Version, en.Size)
	}
	return tw.Flush()
}

func newStorePutCommand(e *env, opts *StoreOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "put [file...]",
		Short: "Store BOMs and print their CIDs",
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.close()
			for _, p := range args {
				data, err := e.readInput(p)
				if err != nil {
					return err
				}
				en, err := s.PutBytes(cmd.Context(), data)
				if err != nil {
					return fmt.Errorf("%s: %w", p, err)
				}
				e.log.WithFields(map[string]any{"file": p, "format": en.Format, "spec": en.SpecVersion}).Info("stored")
				fmt.Fprintln(e.out, en.CID)
			}
			return s.save()
		}),
	}
}

func newStoreGetCommand(e *env, opts *StoreOptions) *cobra.Command {
	var format, version, outPath string
	cmd := &cobra.Command{
		Use:   "get cid",
		Short: "Write a stored BOM, optionally converted",
		Args:  argsRange(1, 1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			id, err := cidutil.Parse(args[0])
			if err != nil {
				return usageErrorf("%v", err)
			}
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.close()
			if format == "" && version == "" {
				data, err := s.CAS.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				return e.writeOutput(outPath, data)
			}
			data, err := getConverted(cmd, s.TypedStore, id, format, version)
			if err != nil {
				return err
			}
			if err := e.writeOutput(outPath, data); err != nil {
				return err
			}
			return s.save()
		}),
	}
	cmd.Flags().StringVar(&format, "output-format", "", "Convert to this format (default: as stored)")
	cmd.Flags().StringVar(&version, "output-version", "", "Convert to this specification version (default: as stored)")
	cmd.Flags().StringVarP(&outPath, "output-file", "o", "", "Write to this file instead of standard output")
	return cmd
}

func getConverted(cmd *cobra.Command, s *storage.TypedStore, id cid.Cid, format, version string) ([]byte, error) {
	doc, en, err := s.GetDocument(cmd.Context(), id)
	if err != nil {
		return nil, err
	}
	if format == "" {
		format = en.Format
	}
	if version == "" {
		version = en.SpecVersion
	}
	f, err := specversion.ParseFormat(format)
	if err != nil {
		return nil, usageErrorf("--output-format: %v", err)
	}
	v, err := specversion.ParseVersion(version)
	if err != nil {
		return nil, usageErrorf("--output-version: %v", err)
	}
	target, err := convert.Convert(doc, v)
	if err != nil {
		return nil, err
	}
	return codec.Marshal(target, f)
}

func newStoreListCommand(e *env, opts *StoreOptions) *cobra.Command {
	var serial string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List indexed BOMs",
		Args:  argsRange(0, 0),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.close()
			if serial != "" {
				return printEntries(e, s.BySerial(serial))
			}
			return printEntries(e, s.Entries())
		}),
	}
	cmd.Flags().StringVar(&serial, "serial", "", "Only versions of the BOM with this serial number")
	return cmd
}

func newStoreExportCommand(e *env, opts *StoreOptions) *cobra.Command {
	var outPath string
	var labels []string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every indexed BOM to a tar bundle",
		Args:  argsRange(0, 0),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			named := make(map[string]cid.Cid, len(labels))
			for _, l := range labels {
				name, value, ok := strings.Cut(l, "=")
				if !ok || name == "" {
					return usageErrorf("--label must be name=cid, got %q", l)
				}
				id, err := cidutil.Parse(value)
				if err != nil {
					return usageErrorf("--label %s: %v", name, err)
				}
				named[name] = id
			}
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.close()
			w := e.out
			if outPath != "" && outPath != "-" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := bundle.ExportStore(cmd.Context(), w, s.TypedStore, named); err != nil {
				return err
			}
			e.log.WithField("documents", len(s.Entries())).Info("exported")
			return nil
		}),
	}
	cmd.Flags().StringVarP(&outPath, "output-file", "o", "", "Write the bundle to this file instead of standard output")
	cmd.Flags().StringArrayVar(&labels, "label", nil, "Label a CID in the bundle index as name=cid (repeatable)")
	return cmd
}

func newStoreImportCommand(e *env, opts *StoreOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import [bundle]",
		Short: "Read a tar bundle into the store",
		Args:  argsRange(0, 1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.close()
			r := e.in
			if p := firstArg(args); p != "" && p != "-" {
				f, err := os.Open(p)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			entries, err := bundle.ImportStore(cmd.Context(), r, s.TypedStore)
			if err != nil {
				return err
			}
			if err := printEntries(e, entries); err != nil {
				return err
			}
			return s.save()
		}),
	}
}
