package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/timesheet-console/internal/api"
	"github.com/username/timesheet-console/internal/holiday"
	"github.com/username/timesheet-console/pkg/dateutil"
	"go.uber.org/zap"
)

func holidaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Holiday calendar management",
	}

	cmd.AddCommand(holidaysShowCmd())
	cmd.AddCommand(holidaysAddCmd())
	cmd.AddCommand(holidaysEditCmd())
	cmd.AddCommand(holidaysDeleteCmd())
	cmd.AddCommand(holidaysWeeklyCmd())
	cmd.AddCommand(holidaysImportCmd())

	return cmd
}

// newHolidayStack wires client, store and reconciler for a subcommand
func newHolidayStack() (*holiday.Store, *holiday.Reconciler, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	client, _, err := newAPIClient(cfg)
	if err != nil {
		return nil, nil, err
	}

	notifier := consoleNotifier{}
	store := holiday.NewStore(client, notifier, logger)
	reconciler := holiday.NewReconciler(client, store, notifier, logger)
	return store, reconciler, nil
}

func holidaysShowCmd() *cobra.Command {
	var month, year, offset int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the holiday calendar for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := newHolidayStack()
			if err != nil {
				return err
			}

			today := dateutil.Today()
			baseMonth, baseYear := today.Month(), today.Year()
			if month != 0 {
				baseMonth, baseYear = time.Month(month), year
			}

			nav := holiday.NewNavigator(baseMonth, baseYear)
			for i := 0; i < offset; i++ {
				nav.Next()
			}
			for i := 0; i > offset; i-- {
				nav.Prev()
			}

			if err := store.Refresh(); err != nil {
				// Non-fatal: an empty calendar still renders
				logger.Warn("Rendering with empty store", zap.Error(err))
			}

			m, y := nav.Current()
			printMonth(m, y, store, nil, today)
			return nil
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "Month 1-12 (default: current)")
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "Year")
	cmd.Flags().IntVar(&offset, "offset", 0, "Months to navigate from the base month (negative for past)")

	return cmd
}

// printMonth renders the cell grid as a text calendar
func printMonth(month time.Month, year int, store *holiday.Store, selected map[string]bool, today time.Time) {
	cells := holiday.RenderMonth(month, year, store.All(), selected, today)

	fmt.Printf("\n%s %d\n", month, year)
	fmt.Println("═══════════════════════════════════════════════════════")
	fmt.Println("  Sun   Mon   Tue   Wed   Thu   Fri   Sat")

	var notes []string
	for i, cell := range cells {
		if i > 0 && i%7 == 0 {
			fmt.Println()
		}
		fmt.Print(formatCell(cell))

		if len(cell.Badges) > 0 || cell.Overflow > 0 {
			labels := make([]string, 0, len(cell.Badges))
			for _, b := range cell.Badges {
				labels = append(labels, b.Label)
			}
			note := fmt.Sprintf("%s: %s", cell.Date, strings.Join(labels, ", "))
			if overflow := cell.OverflowLabel(); overflow != "" {
				note += " " + overflow
			}
			notes = append(notes, note)
		}
	}
	fmt.Println()

	if len(notes) > 0 {
		fmt.Println("\nHolidays:")
		for _, note := range notes {
			fmt.Println("  " + note)
		}
	}
}

func formatCell(cell holiday.Cell) string {
	if cell.Day == 0 {
		return "      "
	}

	marker := " "
	switch {
	case cell.IsToday:
		marker = "*"
	case cell.IsSelected:
		marker = "+"
	case len(cell.Badges) > 0:
		marker = "•"
	}
	return fmt.Sprintf("  %2d%s  ", cell.Day, marker)
}

func holidaysAddCmd() *cobra.Command {
	var date, holidayType, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a single holiday",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reconciler, err := newHolidayStack()
			if err != nil {
				return err
			}

			form := reconciler.OpenCreateForm(date)
			form.Type = holidayType
			form.Description = description

			return reconciler.Submit()
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Holiday date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&holidayType, "type", api.HolidayTypeGovernment, "Holiday type: government or weekly")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	cmd.MarkFlagRequired("date")

	return cmd
}

func holidaysEditCmd() *cobra.Command {
	var date, holidayType, description string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a holiday by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, reconciler, err := newHolidayStack()
			if err != nil {
				return err
			}

			if err := store.Refresh(); err != nil {
				return err
			}

			record, ok := store.ByID(args[0])
			if !ok {
				return fmt.Errorf("holiday %s not found", args[0])
			}

			form := reconciler.OpenEditForm(*record)
			if date != "" {
				form.Date = date
			}
			if holidayType != "" {
				form.Type = holidayType
			}
			if cmd.Flags().Changed("description") {
				form.Description = description
			}

			return reconciler.Submit()
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "New date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&holidayType, "type", "", "New type")
	cmd.Flags().StringVar(&description, "description", "", "New description")

	return cmd
}

func holidaysDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a holiday by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reconciler, err := newHolidayStack()
			if err != nil {
				return err
			}

			if !yes && !confirm(fmt.Sprintf("Delete holiday %s?", args[0])) {
				fmt.Println("Aborted")
				return nil
			}

			return reconciler.Delete(args[0])
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func holidaysWeeklyCmd() *cobra.Command {
	var month, year int
	var description string

	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Mark every Friday of a month as a weekly holiday",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reconciler, err := newHolidayStack()
			if err != nil {
				return err
			}

			targetMonth := time.Month(month)
			if month == 0 {
				today := dateutil.Today()
				targetMonth = today.Month()
				year = today.Year()
			}

			form := reconciler.OpenCreateForm("")
			form.SetType(api.HolidayTypeWeekly, targetMonth, year)
			form.Description = description

			fmt.Printf("Marking %d Fridays in %s %d\n", len(form.SelectedFridays), targetMonth, year)
			return reconciler.Submit()
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "Month 1-12 (default: current)")
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "Year")
	cmd.Flags().StringVar(&description, "description", "", "Description applied to every record")

	return cmd
}

func holidaysImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Bulk import holidays from a text file",
		Long:  "Each line: YYYY-MM-DD type [description]. Lines starting with '#' are ignored.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, _, err := newAPIClient(cfg)
			if err != nil {
				return err
			}

			importer := holiday.NewImporter(client, logger)
			result, err := importer.ImportFile(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("✅ Imported %d holidays (%d lines skipped, %d failed)\n",
				result.Created, result.Skipped, result.Failed)
			return nil
		},
	}
}
