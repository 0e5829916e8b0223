package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryhazerus/nsapi"
)

type queryOptions struct {
	shards []string
	params map[string]string
}

func (q *queryOptions) bind(cmd *cobra.Command, defaults []string) {
	cmd.Flags().StringSliceVar(&q.shards, "shards", defaults, "shards to request")
	cmd.Flags().StringToStringVar(&q.params, "param", nil, "shard parameter, e.g. --param scale=65")
}

func (q *queryOptions) apply(r nsapi.Request) nsapi.Request {
	r.Shards = nil
	for _, s := range q.shards {
		if s = strings.TrimSpace(s); s != "" {
			r.Shards = append(r.Shards, strings.ToLower(s))
		}
	}
	for k, v := range q.params {
		r = r.WithParam(k, v)
	}
	return r
}

func newNationCommand(root *rootOptions) *cobra.Command {
	q := &queryOptions{}
	cmd := &cobra.Command{
		Use:   "nation <name>...",
		Short: "Show nations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.run(cmd, func(ctx context.Context, a *app) error {
				for _, name := range args {
					var n nsapi.Nation
					if err := a.client.Do(ctx, q.apply(nsapi.NationRequest(name)), &n); err != nil {
						return err
					}
					render(cmd.OutOrStdout(), n.Name, nationRows(&n))
				}
				return nil
			})
		},
	}
	q.bind(cmd, []string{"name", "fullname", "region", "population", "category", "wa"})
	return cmd
}

func newRegionCommand(root *rootOptions) *cobra.Command {
	q := &queryOptions{}
	cmd := &cobra.Command{
		Use:   "region <name>...",
		Short: "Show regions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.run(cmd, func(ctx context.Context, a *app) error {
				for _, name := range args {
					var r nsapi.Region
					if err := a.client.Do(ctx, q.apply(nsapi.RegionRequest(name)), &r); err != nil {
						return err
					}
					render(cmd.OutOrStdout(), r.Name, regionRows(&r))
				}
				return nil
			})
		},
	}
	q.bind(cmd, []string{"name", "numnations", "delegate", "founder"})
	return cmd
}

func newWorldCommand(root *rootOptions) *cobra.Command {
	q := &queryOptions{}
	cmd := &cobra.Command{
		Use:   "world",
		Short: "Show world-wide statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.run(cmd, func(ctx context.Context, a *app) error {
				var w nsapi.World
				if err := a.client.Do(ctx, q.apply(nsapi.WorldRequest()), &w); err != nil {
					return err
				}
				render(cmd.OutOrStdout(), "World", worldRows(&w))
				return nil
			})
		},
	}
	q.bind(cmd, []string{"numnations", "numregions", "featuredregion"})
	return cmd
}

func newWACommand(root *rootOptions) *cobra.Command {
	q := &queryOptions{}
	cmd := &cobra.Command{
		Use:   "wa <1|2>",
		Short: "Show a World Assembly council (1 General Assembly, 2 Security Council)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("council must be 1 or 2, got %q", args[0])
			}
			return root.run(cmd, func(ctx context.Context, a *app) error {
				var wa nsapi.WA
				if err := a.client.Do(ctx, q.apply(nsapi.WARequest(nsapi.Council(n))), &wa); err != nil {
					return err
				}
				render(cmd.OutOrStdout(), councilName(wa.Council), waRows(&wa))
				return nil
			})
		},
	}
	q.bind(cmd, []string{"numnations", "numdelegates", "resolution"})
	return cmd
}
