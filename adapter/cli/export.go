package cli

import (
	"fmt"
	"os"

	"github.com/fiesc/examsched/adapter/export"
	schedQueries "github.com/fiesc/examsched/internal/scheduling/application/queries"
	schedDomain "github.com/fiesc/examsched/internal/scheduling/domain"
	"github.com/spf13/cobra"
)

var (
	exportOutput   string
	exportGroup    string
	exportStatuses []string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the exam schedule to a spreadsheet",
	Long: `Export assignments to an Excel workbook for printing and posting.
Confirmed assignments only, unless --status says otherwise.

Examples:
  examsched export -o schedule.xlsx
  examsched export -o se31.xlsx --filter-group SE-31
  examsched export -o pending.xlsx --status PROPOSED --status ALTERNATE`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.ListAssignmentsHandler == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Export requires database connection.")
			return nil
		}

		statuses := exportStatuses
		if len(statuses) == 0 {
			statuses = []string{string(schedDomain.StatusConfirmed)}
		}

		assignments, err := app.ListAssignmentsHandler.Handle(cmd.Context(), schedQueries.ListAssignmentsQuery{
			StudentGroup: exportGroup,
			Statuses:     statuses,
		})
		if err != nil {
			return err
		}

		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
		defer f.Close()

		if err := export.NewExcelWriter().Write(f, assignments); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d assignments to %s\n", len(assignments), exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "schedule.xlsx", "output file path")
	exportCmd.Flags().StringVar(&exportGroup, "filter-group", "", "only one student group")
	exportCmd.Flags().StringArrayVar(&exportStatuses, "status", nil, "statuses to include (repeatable, default CONFIRMED)")
	rootCmd.AddCommand(exportCmd)
}
