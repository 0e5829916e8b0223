package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ryhazerus/nsapi"
)

func newUsageCommand(root *rootOptions) *cobra.Command {
	var reset []string
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show how many requests were sent per kind in the current window",
		Long: `usage reads the usage ledger. Counts are kept for diagnostics only;
with the memory driver they cover the current invocation alone, so use the
sqlite or redis driver to follow usage across runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.run(cmd, func(ctx context.Context, a *app) error {
				for _, name := range reset {
					k, err := parseKind(name)
					if err != nil {
						return err
					}
					if err := a.gate.ResetUsage(ctx, k); err != nil {
						return err
					}
				}

				usage, err := a.gate.Usage(ctx)
				if err != nil {
					return err
				}
				renderUsage(cmd, usage)
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&reset, "reset", nil, "clear the counters of these kinds first (nation, region, world, wa)")
	return cmd
}

func renderUsage(cmd *cobra.Command, usage []nsapi.KindUsage) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Kind", "Window", "Since", "Sent"})

	var total int64
	for _, u := range usage {
		t.AppendRow(table.Row{
			u.Kind.String(),
			u.Window.String(),
			u.BucketStart.Format("2006-01-02 15:04 MST"),
			humanize.Comma(u.Sent),
		})
		total += u.Sent
	}
	t.AppendFooter(table.Row{"", "", "Total", humanize.Comma(total)})
	t.Render()
}

func parseKind(s string) (nsapi.Kind, error) {
	for _, k := range nsapi.Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q (want nation, region, world or wa)", s)
}
