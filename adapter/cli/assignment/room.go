package assignment

import (
	"fmt"

	"github.com/fiesc/examsched/adapter/cli"
	schedCommands "github.com/fiesc/examsched/internal/scheduling/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var roomVersion int

var roomCmd = &cobra.Command{
	Use:   "room [assignment-id] [room-id]",
	Short: "Assign a room",
	Long: `Assign or change the room of an unconfirmed assignment.

Examples:
  examsched assignment room abc123 def456`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AssignRoomHandler == nil {
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
		roomID, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid room ID: %w", err)
		}

		command := schedCommands.AssignRoomCommand{
			ActorID:      actorID,
			ActorRole:    role,
			AssignmentID: assignmentID,
			RoomID:       roomID,
			Version:      roomVersion,
		}

		updated, err := app.AssignRoomHandler.Handle(cmd.Context(), command)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Room assigned (version %d).\n", updated.Version())
		return nil
	},
}

func init() {
	roomCmd.Flags().IntVar(&roomVersion, "version", 0, "expected assignment version")
}
