package assignment

import (
	"fmt"

	"github.com/fiesc/examsched/adapter/cli"
	schedCommands "github.com/fiesc/examsched/internal/scheduling/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var confirmVersion int

var confirmCmd = &cobra.Command{
	Use:   "confirm [assignment-id]",
	Short: "Confirm an accepted assignment",
	Long: `Confirm an accepted assignment after checking the room and both
examiners for booking conflicts. Requires a room to be assigned.

Examples:
  examsched assignment confirm abc123
  examsched assignment confirm abc123 --version 4`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ConfirmHandler == nil {
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

		command := schedCommands.ConfirmAssignmentCommand{
			ActorID:      actorID,
			ActorRole:    role,
			AssignmentID: assignmentID,
			Version:      confirmVersion,
		}

		updated, err := app.ConfirmHandler.Handle(cmd.Context(), command)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Assignment confirmed (version %d).\n", updated.Version())
		return nil
	},
}

func init() {
	confirmCmd.Flags().IntVar(&confirmVersion, "version", 0, "expected assignment version")
}
