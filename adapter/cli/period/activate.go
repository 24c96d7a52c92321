package period

import (
	"fmt"

	"github.com/fiesc/examsched/adapter/cli"
	schedCommands "github.com/fiesc/examsched/internal/scheduling/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var activateCmd = &cobra.Command{
	Use:   "activate [period-id]",
	Short: "Activate an exam period",
	Long: `Activate an exam period. Any other active period is deactivated so
at most one period accepts proposals at a time.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setActive(cmd, args[0], true, "Period activated.")
	},
}

var deactivateCmd = &cobra.Command{
	Use:   "deactivate [period-id]",
	Short: "Deactivate an exam period",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setActive(cmd, args[0], false, "Period deactivated.")
	},
}

func setActive(cmd *cobra.Command, rawID string, active bool, done string) error {
	app := cli.GetApp()
	if app == nil || app.SetPeriodActiveHandler == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Period commands require database connection.")
		return nil
	}

	actorID, role, _, err := app.Identity()
	if err != nil {
		return err
	}

	periodID, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid period ID: %w", err)
	}

	command := schedCommands.SetPeriodActiveCommand{
		ActorID:   actorID,
		ActorRole: role,
		PeriodID:  periodID,
		Active:    active,
	}

	if err := app.SetPeriodActiveHandler.Handle(cmd.Context(), command); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), done)
	return nil
}
