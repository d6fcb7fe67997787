package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	app "github.com/okian/stagetally/internal/app"
	"github.com/okian/stagetally/internal/config"
	"github.com/okian/stagetally/pkg/logger"
)

const dateLayout = "2006-01-02"

// ErrMissingSelection is returned when --group or --member is not set.
var ErrMissingSelection = errors.New("--group and --member are required")

type rootOptions struct {
	group   string
	member  string
	order   string
	today   string
	asJSON  bool
	verbose bool
}

func newRootCommand(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print appearance statistics for one member",
		Long: `report loads the roster and performance files named by the stagetally
configuration (STAGETALLY_CONFIG / STAGETALLY_* environment variables) and
prints the member's totals, milestones, tallies and rankings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.group == "" || opts.member == "" {
				return ErrMissingSelection
			}
			svc, err := opts.service(cmd.Context())
			if err != nil {
				return err
			}
			order, err := app.ParseOrder(opts.order)
			if err != nil {
				return err
			}
			rep, err := svc.Report(cmd.Context(), app.Selection{Group: opts.group, Member: opts.member, Order: order})
			if err != nil {
				return err
			}
			if opts.asJSON {
				return writeJSON(out, rep)
			}
			renderReport(out, rep)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.today, "today", "", "override the current date (YYYY-MM-DD)")
	cmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of tables")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log loader activity")
	cmd.Flags().StringVarP(&opts.group, "group", "g", "", "group name (alumnae groups resolve to their base group)")
	cmd.Flags().StringVarP(&opts.member, "member", "m", "", "member name")
	cmd.Flags().StringVarP(&opts.order, "order", "o", "desc", "history order: asc or desc")

	cmd.AddCommand(newGroupsCommand(out, opts))
	return cmd
}

func newGroupsCommand(out io.Writer, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List roster groups and their members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.service(cmd.Context())
			if err != nil {
				return err
			}
			groups := svc.Groups(cmd.Context())
			if opts.asJSON {
				return writeJSON(out, groups)
			}
			renderGroups(out, groups)
			return nil
		},
	}
}

// service loads configuration and the dataset once for a command run.
func (o *rootOptions) service(ctx context.Context) (*app.Service, error) {
	if err := logger.Init(logger.WithOutput(os.Stderr)); err != nil {
		return nil, err
	}
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	_ = logger.SetLevelString(level)

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	cfg.Watch = false

	var extra []app.Option
	if o.today != "" {
		loc, err := cfg.Location()
		if err != nil {
			return nil, err
		}
		day, err := time.ParseInLocation(dateLayout, o.today, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid --today: %w", err)
		}
		extra = append(extra, app.WithClock(func() time.Time { return day }))
	}

	svc, err := app.NewFromConfig(cfg, extra...)
	if err != nil {
		return nil, err
	}
	if _, err := svc.Reload(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
