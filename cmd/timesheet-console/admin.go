package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/username/timesheet-console/internal/api"
)

func employeesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "employees",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := adminClient()
			if err != nil {
				return err
			}

			employees, err := client.FetchEmployees()
			if err != nil {
				return err
			}

			fmt.Println("  ID       | Name                 | Designation     | Email")
			fmt.Println("-----------+----------------------+-----------------+---------------------------")
			for _, e := range employees {
				fmt.Printf("  %-8s | %-20s | %-15s | %s\n", e.ID, e.Name, e.Designation, e.Email)
			}
			return nil
		},
	}
}

func projectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := adminClient()
			if err != nil {
				return err
			}

			projects, err := client.FetchProjects()
			if err != nil {
				return err
			}

			for _, p := range projects {
				status := "active"
				if !p.Active {
					status = "archived"
				}
				fmt.Printf("  %-8s %-30s %-20s %s\n", p.ID, p.Name, p.Client, status)
			}
			return nil
		},
	}
}

func designationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "designations",
		Short: "List configured designations",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := adminClient()
			if err != nil {
				return err
			}

			designations, err := client.FetchDesignations()
			if err != nil {
				return err
			}

			for _, d := range designations {
				fmt.Printf("  %-8s %s\n", d.ID, d.Title)
			}
			return nil
		},
	}
}

func vacationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vacations",
		Short: "Vacation requests",
	}

	cmd.AddCommand(vacationsListCmd())
	cmd.AddCommand(vacationsRequestCmd())

	return cmd
}

func vacationsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List vacation requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := adminClient()
			if err != nil {
				return err
			}

			vacations, err := client.FetchVacations()
			if err != nil {
				return err
			}

			fmt.Println("  ID       | Employee             | From       | To         | Status")
			fmt.Println("-----------+----------------------+------------+------------+----------")
			for _, v := range vacations {
				fmt.Printf("  %-8s | %-20s | %s | %s | %s\n",
					v.ID, v.Employee, v.FromDate, v.ToDate, v.Status)
			}
			return nil
		},
	}
}

func vacationsRequestCmd() *cobra.Command {
	var from, to, reason string

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Submit a vacation request",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := adminClient()
			if err != nil {
				return err
			}

			created, err := client.CreateVacation(api.VacationRequest{
				FromDate: from,
				ToDate:   to,
				Reason:   reason,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✅ Vacation request %s submitted (%s to %s)\n",
				created.ID, created.FromDate, created.ToDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&reason, "reason", "", "Optional reason")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")

	return cmd
}

// adminClient is the shared bootstrap for the listing commands
func adminClient() (*api.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	client, _, err := newAPIClient(cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}
