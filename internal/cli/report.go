package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/osm-qa/osmchactl/internal/config"
	"github.com/osm-qa/osmchactl/internal/osmcha"
	"github.com/osm-qa/osmchactl/internal/report"
)

// dateLayout is the calendar date format accepted by --from-date/--to-date.
const dateLayout = "2006-01-02"

// newReportCommand creates "report", which prints one discussion summary
// block per configured user active in the date window.
func newReportCommand(opts *Options) *cobra.Command {
	var (
		fromDate string
		toDate   string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report changeset discussion state for the configured users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			var envIn reportEnv
			if err := parseEnv(&envIn); err != nil {
				return fmt.Errorf("parse OSMCHACTL_* environment: %w", err)
			}
			if fromDate == "" {
				fromDate = envIn.FromDate
			}
			if toDate == "" {
				toDate = envIn.ToDate
			}

			if fromDate == "" {
				return fmt.Errorf("--from-date is required")
			}
			if toDate == "" {
				return fmt.Errorf("--to-date is required")
			}

			from, err := time.Parse(dateLayout, fromDate)
			if err != nil {
				return fmt.Errorf("invalid --from-date %q, expected YYYY-MM-DD", fromDate)
			}
			to, err := time.Parse(dateLayout, toDate)
			if err != nil {
				return fmt.Errorf("invalid --to-date %q, expected YYYY-MM-DD", toDate)
			}
			if to.Before(from) {
				return fmt.Errorf("--to-date %s is before --from-date %s", toDate, fromDate)
			}

			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			if envIn.MaxPages > 0 {
				cfg.MaxPages = envIn.MaxPages
			}
			if envIn.Concurrency > 0 {
				cfg.Concurrency = envIn.Concurrency
			}

			token, err := cfg.ResolveToken()
			if err != nil {
				return err
			}

			timeout, err := cfg.Timeout()
			if err != nil {
				return err
			}

			client, err := osmcha.NewClient(logger, cfg.BaseURL, token, osmcha.Options{
				PageSize: cfg.PageSize,
				MaxPages: cfg.MaxPages,
				Timeout:  timeout,
			})
			if err != nil {
				return err
			}

			logger.Info("building changeset discussion report",
				"users", len(cfg.Users),
				"from", fromDate,
				"to", toDate,
			)

			builder := report.New(logger, client, os.Stdout, cfg.Concurrency)
			return builder.Run(cmd.Context(), cfg.Users, fromDate, toDate)
		},
	}

	cmd.Flags().StringVar(&fromDate, "from-date", "", "Start of the changeset date window, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&toDate, "to-date", "", "End of the changeset date window, YYYY-MM-DD (required)")

	return cmd
}
