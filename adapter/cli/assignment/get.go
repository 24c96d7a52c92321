package assignment

import (
	"fmt"

	"github.com/fiesc/examsched/adapter/cli"
	schedQueries "github.com/fiesc/examsched/internal/scheduling/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get [assignment-id]",
	Short: "Show one assignment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetAssignmentHandler == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Assignment lookup requires database connection.")
			return nil
		}

		assignmentID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid assignment ID: %w", err)
		}

		assignment, err := app.GetAssignmentHandler.Handle(cmd.Context(), schedQueries.GetAssignmentQuery{
			AssignmentID: assignmentID,
		})
		if err != nil {
			return err
		}

		printAssignment(cmd, *assignment)
		return nil
	},
}
