package directory

import (
	"context"
	"fmt"

	"github.com/fiesc/examsched/adapter/cli"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var addTeacherCmd = &cobra.Command{
	Use:   "add-teacher [name]",
	Short: "Register a teacher",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return register(cmd, "teacher", args[0], func(ctx context.Context, id uuid.UUID) error {
			return cli.GetApp().LocalDirectory.RegisterTeacher(ctx, id, args[0])
		})
	},
}

var addRoomCmd = &cobra.Command{
	Use:   "add-room [name]",
	Short: "Register a room",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return register(cmd, "room", args[0], func(ctx context.Context, id uuid.UUID) error {
			return cli.GetApp().LocalDirectory.RegisterRoom(ctx, id, args[0])
		})
	},
}

var addDisciplineCmd = &cobra.Command{
	Use:   "add-discipline [name]",
	Short: "Register a discipline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return register(cmd, "discipline", args[0], func(ctx context.Context, id uuid.UUID) error {
			return cli.GetApp().LocalDirectory.RegisterDiscipline(ctx, id, args[0])
		})
	},
}

var addGroupLeader string

var addGroupCmd = &cobra.Command{
	Use:   "add-group [name]",
	Short: "Register a student group",
	Long: `Register a student group and its leader. The leader is the only
person who may propose exam dates for the group.

Examples:
  examsched directory add-group SE-31 --leader <person-id>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.LocalDirectory == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Directory commands are only available in local mode.")
			return nil
		}

		leaderID, err := uuid.Parse(addGroupLeader)
		if err != nil {
			return fmt.Errorf("invalid leader ID: %w", err)
		}

		if err := app.LocalDirectory.RegisterGroup(cmd.Context(), args[0], leaderID); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Registered group %s with leader %s\n", args[0], leaderID)
		return nil
	},
}

func register(cmd *cobra.Command, kind, name string, save func(context.Context, uuid.UUID) error) error {
	app := cli.GetApp()
	if app == nil || app.LocalDirectory == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Directory commands are only available in local mode.")
		return nil
	}

	id := uuid.New()
	if err := save(cmd.Context(), id); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s %q: %s\n", kind, name, id)
	return nil
}

func init() {
	addGroupCmd.Flags().StringVar(&addGroupLeader, "leader", "", "group leader person ID (required)")
	_ = addGroupCmd.MarkFlagRequired("leader")
}
