package assignment

import (
	"fmt"

	"github.com/fiesc/examsched/adapter/cli"
	schedCommands "github.com/fiesc/examsched/internal/scheduling/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var cancelVersion int

var cancelCmd = &cobra.Command{
	Use:   "cancel [assignment-id]",
	Short: "Cancel an assignment",
	Long: `Cancel an assignment that has not been confirmed yet. Only the
secretariat and administrators may cancel.

Examples:
  examsched assignment cancel abc123`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CancelHandler == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Assignment commands require database connection.")
			return nil
		}

		actorID, role, _, err := app.Identity()
		if err != nil {
			return err
		}

		assignmentID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid assignment ID: %w", err)
		}

		command := schedCommands.CancelAssignmentCommand{
			ActorID:      actorID,
			ActorRole:    role,
			AssignmentID: assignmentID,
			Version:      cancelVersion,
		}

		updated, err := app.CancelHandler.Handle(cmd.Context(), command)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Assignment cancelled (version %d).\n", updated.Version())
		return nil
	},
}

func init() {
	cancelCmd.Flags().IntVar(&cancelVersion, "version", 0, "expected assignment version")
}
