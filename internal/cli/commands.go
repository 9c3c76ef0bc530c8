package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/boardpulse/internal/service"
	"github.com/spf13/cobra"
)

func newQueryCommand(e *env) *cobra.Command {
	var minDays, maxDays, limit int
	cmd := &cobra.Command{
		Use:     "query <YYYYMMDD>",
		Short:   "List the limit-up stocks of a session, longest streak first",
		Example: "  boardpulse query 20240105 --min-days 2",
		Args:    cobra.ExactArgs(1),
	}
	cmd.Flags().IntVar(&minDays, "min-days", 1, "minimum consecutive limit-up days")
	cmd.Flags().IntVar(&maxDays, "max-days", 0, "maximum consecutive limit-up days (unbounded when omitted)")
	cmd.Flags().IntVar(&limit, "limit", e.svc.DisplayLimit, "rows to display")

	cmd.RunE = instrument("query", func(cmd *cobra.Command, args []string) error {
		opts := service.QueryOptions{MinDays: minDays}
		if cmd.Flags().Changed("max-days") {
			opts.MaxDays = &maxDays
		}
		res, err := e.svc.Query.QueryLimitUp(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}
		renderQuery(cmd.OutOrStdout(), args[0], res, limit)
		return nil
	})
	return cmd
}

func newSearchCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search <code|name>",
		Short:   "Find a stock on the latest session and show its ladder history",
		Example: "  boardpulse search 000001",
		Args:    cobra.MinimumNArgs(1),
	}
	cmd.RunE = instrument("search", func(cmd *cobra.Command, args []string) error {
		keyword := strings.Join(args, " ")
		res, err := e.svc.Search.Search(cmd.Context(), keyword)
		if err != nil {
			return err
		}
		if res == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "no limit-up stock matching %q on the latest session\n", keyword)
			return nil
		}
		renderSearch(cmd.OutOrStdout(), res)
		return nil
	})
	return cmd
}

func newStatsCommand(e *env) *cobra.Command {
	var opts service.StatsOptions
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize limit-up records in a date window",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&opts.StartDate, "start-date", "", "first session, YYYYMMDD (inclusive)")
	cmd.Flags().StringVar(&opts.EndDate, "end-date", "", "last session, YYYYMMDD (inclusive)")

	cmd.RunE = instrument("stats", func(cmd *cobra.Command, _ []string) error {
		report, err := e.svc.Stats.Stats(cmd.Context(), opts)
		if err != nil {
			return err
		}
		renderStats(cmd.OutOrStdout(), report)
		return nil
	})
	return cmd
}

func newTrendCommand(e *env) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show streak buckets for the most recent sessions",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().IntVar(&days, "days", e.svc.TrendDays, "number of sessions")

	cmd.RunE = instrument("trend", func(cmd *cobra.Command, _ []string) error {
		buckets, err := e.svc.Trend.Trend(cmd.Context(), days)
		if err != nil {
			return err
		}
		renderTrend(cmd.OutOrStdout(), buckets)
		return nil
	})
	return cmd
}

func newExportCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export <YYYYMMDD> <output>",
		Short:   "Export a session's limit-up stocks (.csv, .xlsx or .json)",
		Example: "  boardpulse export 20240105 ladder_20240105.csv",
		Args:    cobra.ExactArgs(2),
	}
	cmd.RunE = instrument("export", func(cmd *cobra.Command, args []string) error {
		n, err := e.svc.Export.Export(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "no data for %s, nothing written\n", args[0])
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d records to %s\n", n, args[1])
		return nil
	})
	return cmd
}

func newDatesCommand(e *env) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "dates",
		Short: "List sessions with limit-up records, newest first",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().IntVar(&limit, "limit", e.svc.DisplayLimit, "sessions to list (0 for all)")

	cmd.RunE = instrument("dates", func(cmd *cobra.Command, _ []string) error {
		all, err := e.svc.Sessions.Dates(cmd.Context(), 0)
		if err != nil {
			return err
		}
		nearest, err := e.svc.Sessions.Nearest(cmd.Context(), time.Now())
		if err != nil {
			return err
		}
		renderDates(cmd.OutOrStdout(), all, nearest, limit)
		return nil
	})
	return cmd
}

func newInteractiveCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sh := &shell{env: e, in: cmd.InOrStdin(), out: cmd.OutOrStdout()}
			return sh.run(cmd.Context())
		},
	}
}
