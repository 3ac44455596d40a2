package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/timesheet-console/internal/report"
	"github.com/username/timesheet-console/internal/timesheet"
	"github.com/username/timesheet-console/pkg/dateutil"
)

// parseRange resolves the --from/--to flags, defaulting to the current month
func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	today := dateutil.Today()
	from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.Local)
	to := today

	if fromStr != "" {
		parsed, err := dateutil.ParseDateKey(fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date: %w", err)
		}
		from = parsed
	}
	if toStr != "" {
		parsed, err := dateutil.ParseDateKey(toStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date: %w", err)
		}
		to = parsed
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to %s is before --from %s",
			dateutil.DateKey(to), dateutil.DateKey(from))
	}

	return from, to, nil
}

func timesheetCmd() *cobra.Command {
	var fromStr, toStr, employeeID string

	cmd := &cobra.Command{
		Use:   "timesheet",
		Short: "View timesheet entries with totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, _, err := newAPIClient(cfg)
			if err != nil {
				return err
			}

			from, to, err := parseRange(fromStr, toStr)
			if err != nil {
				return err
			}

			entries, err := client.FetchTimesheets(from, to)
			if err != nil {
				return err
			}

			summarizer := timesheet.NewSummarizer(logger)
			if employeeID != "" {
				entries = summarizer.FilterEmployee(entries, employeeID)
			}
			summary := summarizer.Summarize(entries, from, to)

			fmt.Printf("\n📊 Timesheet %s to %s\n", dateutil.DateKey(from), dateutil.DateKey(to))
			fmt.Println("═══════════════════════════════════════════════════════")
			fmt.Println("  Date         | Entries | Hours   | Pay")
			fmt.Println("---------------+---------+---------+-----------")
			for _, day := range summary.Daily {
				fmt.Printf("  %s |   %3d   | %6s | %9.2f\n",
					day.Date, day.EntryCount, timesheet.FormatHours(day.Hours), day.Pay)
			}
			fmt.Println("---------------+---------+---------+-----------")
			fmt.Printf("  Total        |   %3d   | %6s | %9.2f\n",
				summary.EntryCount, timesheet.FormatHours(summary.TotalHours), summary.TotalPay)

			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "Range start (YYYY-MM-DD, default: start of month)")
	cmd.Flags().StringVar(&toStr, "to", "", "Range end (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&employeeID, "employee", "", "Filter by employee id")

	return cmd
}

func reportCmd() *cobra.Command {
	var fromStr, toStr, output string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export a period report as an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, _, err := newAPIClient(cfg)
			if err != nil {
				return err
			}

			from, to, err := parseRange(fromStr, toStr)
			if err != nil {
				return err
			}

			entries, err := client.FetchTimesheets(from, to)
			if err != nil {
				return err
			}
			holidays, err := client.FetchHolidays()
			if err != nil {
				return err
			}

			summary := timesheet.NewSummarizer(logger).Summarize(entries, from, to)

			if output == "" {
				output = fmt.Sprintf("timesheet-%s-%s.xlsx",
					dateutil.DateKey(from), dateutil.DateKey(to))
			}

			writer := report.NewExcelWriter(cfg.Report.GetOutputDir(), cfg.Report.Company, logger)
			path, err := writer.WritePeriodReport(summary, holidays, output)
			if err != nil {
				return err
			}

			fmt.Printf("✅ Report written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "Range start (YYYY-MM-DD, default: start of month)")
	cmd.Flags().StringVar(&toStr, "to", "", "Range end (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output filename")

	return cmd
}
