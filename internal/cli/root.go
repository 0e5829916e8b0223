// Package cli implements the nsapi command.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ryhazerus/nsapi"
	"github.com/ryhazerus/nsapi/internal/config"
)

type rootOptions struct {
	configPath  string
	verbose     bool
	userAgent   string
	usageDriver string
	usageDSN    string
}

// NewRootCommand builds the nsapi command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "nsapi",
		Short: "Query the NationStates public API within its rate limit",
		Long: `nsapi queries nations, regions, the world and the World Assembly.

Every request goes through one gate that honours the RateLimit-Remaining,
RateLimit-Reset and Retry-After headers. Settings come from nsapi.yaml,
NSAPI_* environment variables and the flags below.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default ./nsapi.yaml or $XDG_CONFIG_HOME/nsapi/nsapi.yaml)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&opts.userAgent, "user-agent", "", "identify yourself to the API, e.g. \"MyBot/1.0 (me@example.com)\"")
	pf.StringVar(&opts.usageDriver, "usage-driver", "", "usage ledger backend: memory, sqlite or redis")
	pf.StringVar(&opts.usageDSN, "usage-dsn", "", "sqlite file or redis:// URL for the usage ledger")

	root.AddCommand(
		newNationCommand(opts),
		newRegionCommand(opts),
		newWorldCommand(opts),
		newWACommand(opts),
		newUsageCommand(opts),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, error) {
	overrides := map[string]any{}
	flags := cmd.Flags()
	if flags.Changed("user-agent") {
		overrides["user_agent"] = o.userAgent
	}
	if flags.Changed("usage-driver") {
		overrides["usage.driver"] = o.usageDriver
	}
	if flags.Changed("usage-dsn") {
		overrides["usage.dsn"] = o.usageDSN
	}
	return config.Load(o.configPath, overrides)
}

// run opens the app for the duration of fn and turns throttling into a
// message that says when to come back.
func (o *rootOptions) run(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	cfg, err := o.load(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg, o.verbose)
	if err != nil {
		return err
	}
	defer a.Close()

	return explain(fn(ctx, a), a.gate)
}

func explain(err error, g *nsapi.Gate) error {
	if err == nil {
		return nil
	}
	var limited *nsapi.RateLimitedError
	if errors.As(err, &limited) {
		return fmt.Errorf("rate limited, retry %s", humanize.Time(limited.Until))
	}
	if errors.Is(err, nsapi.ErrRateLimited) {
		if until, ok := g.SendNotBefore(); ok {
			return fmt.Errorf("rate limited, retry %s", humanize.Time(until))
		}
		return errors.New("rate limited by the API")
	}
	if errors.Is(err, nsapi.ErrNotFound) {
		return fmt.Errorf("not found: %w", err)
	}
	return err
}
