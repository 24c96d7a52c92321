package period

import (
	"fmt"
	"time"

	"github.com/fiesc/examsched/adapter/cli"
	schedCommands "github.com/fiesc/examsched/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
)

var (
	createStart string
	createEnd   string
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create an exam period",
	Long: `Create an exam period. New periods start inactive; activate one
with: examsched period activate.

Examples:
  examsched period create "Summer 2026" --start 2026-06-01 --end 2026-06-30`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreatePeriodHandler == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Period commands require database connection.")
			return nil
		}

		actorID, role, _, err := app.Identity()
		if err != nil {
			return err
		}

		start, err := parseDay(createStart)
		if err != nil {
			return err
		}
		end, err := parseDay(createEnd)
		if err != nil {
			return err
		}

		command := schedCommands.CreatePeriodCommand{
			ActorID:   actorID,
			ActorRole: role,
			Name:      args[0],
			StartDate: start,
			EndDate:   end,
		}

		result, err := app.CreatePeriodHandler.Handle(cmd.Context(), command)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created period: %s\n", result.PeriodID)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createStart, "start", "", "first day (YYYY-MM-DD, required)")
	createCmd.Flags().StringVar(&createEnd, "end", "", "last day (YYYY-MM-DD, required)")
	_ = createCmd.MarkFlagRequired("start")
	_ = createCmd.MarkFlagRequired("end")
}

func parseDay(value string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return day, nil
}
