package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"xdao.co/sbom/specversion"
)

func newVersionsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List specification versions and the formats each supports",
		Args:  argsRange(0, 0),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "VERSION\tFORMATS\tMEDIA TYPES")
			for _, v := range specversion.Versions() {
				var formats, types []string
				for _, f := range []specversion.Format{specversion.XML, specversion.JSON, specversion.Protobuf} {
					if specversion.Supports(f, v) != nil {
						continue
					}
					mt, err := specversion.VersionedMediaType(f, v)
					if err != nil {
						return err
					}
					formats = append(formats, f.String())
					types = append(types, mt)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", v, strings.Join(formats, ","), strings.Join(types, ", "))
			}
			return tw.Flush()
		}),
	}
}
