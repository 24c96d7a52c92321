package assignment

import (
	"fmt"
	"time"

	"github.com/fiesc/examsched/adapter/cli"
	schedCommands "github.com/fiesc/examsched/internal/scheduling/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	proposeDate     string
	proposeHour     int
	proposeDuration int
	proposeVersion  int
)

var proposeCmd = &cobra.Command{
	Use:   "propose [assignment-id]",
	Short: "Propose an exam date",
	Long: `Propose a date and start hour for a drafted assignment. Only the
leader of the assignment's student group may propose, and the date must
fall inside the active exam period.

Examples:
  examsched assignment propose abc123 --date 2026-06-15 --hour 10
  examsched assignment propose abc123 --date 2026-06-15 --hour 10 --duration 180`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ProposeDateHandler == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Assignment commands require database connection.")
			return nil
		}

		actorID, role, group, err := app.Identity()
		if err != nil {
			return err
		}

		assignmentID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid assignment ID: %w", err)
		}

		date, err := parseDay(proposeDate)
		if err != nil {
			return err
		}

		command := schedCommands.ProposeDateCommand{
			ActorID:      actorID,
			ActorRole:    role,
			ActorGroup:   group,
			AssignmentID: assignmentID,
			Date:         date,
			Hour:         proposeHour,
			DurationMins: proposeDuration,
			Version:      proposeVersion,
		}

		updated, err := app.ProposeDateHandler.Handle(cmd.Context(), command)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Date proposed. Status: %s (version %d)\n", updated.Status(), updated.Version())
		return nil
	},
}

func init() {
	proposeCmd.Flags().StringVar(&proposeDate, "date", "", "exam date (YYYY-MM-DD, required)")
	proposeCmd.Flags().IntVar(&proposeHour, "hour", 0, "start hour (required)")
	proposeCmd.Flags().IntVar(&proposeDuration, "duration", 0, "duration in minutes (default from configuration)")
	proposeCmd.Flags().IntVar(&proposeVersion, "version", 0, "expected assignment version")
	_ = proposeCmd.MarkFlagRequired("date")
	_ = proposeCmd.MarkFlagRequired("hour")
}

func parseDay(value string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return day, nil
}
