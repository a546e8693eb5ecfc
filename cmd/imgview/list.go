package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	apppkg "github.com/kk-code-lab/imgview/internal/app"
	"github.com/kk-code-lab/imgview/internal/textutil"
	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [path]",
		Short: "Print the catalog in viewing order",
		Example: `
imgview list ~/scans
imgview list --locale de ~/scans/page-07.png
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			cat := apppkg.NewCatalog(cfg)
			if err := cat.Load(pathArg(args)); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cat.Empty() {
				_, _ = fmt.Fprintf(out, "no images in %s\n", cat.Dir())
				return nil
			}

			focused := color.New(color.FgCyan, color.Bold).SprintFunc()
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("#", "NAME", "SIZE")
			for _, e := range cat.Entries() {
				marker := fmt.Sprintf("%d", e.Index+1)
				name := textutil.Name(e.Name)
				if e.Index == cat.Focus() {
					marker = focused("> " + marker)
					name = focused(name)
				}
				tbl.AddRow(marker, name, humanize.Bytes(uint64(max(e.Size, 0))))
			}
			_, err = fmt.Fprintln(out, tbl)
			return err
		},
	}
}
