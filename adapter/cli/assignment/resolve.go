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
	resolveResolution string
	resolveDate       string
	resolveHour       int
	resolveDuration   int
	resolveVersion    int
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [assignment-id]",
	Short: "Resolve an alternate proposal",
	Long: `Resolve a teacher's alternate date as the group leader. Accept the
alternate, or counter with a fresh proposal.

Examples:
  examsched assignment resolve abc123 --resolution ACCEPT
  examsched assignment resolve abc123 --resolution REPROPOSE --date 2026-06-20 --hour 9`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ResolveAlternateHandler == nil {
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

		var date time.Time
		if resolveDate != "" {
			date, err = parseDay(resolveDate)
			if err != nil {
				return err
			}
		}

		command := schedCommands.ResolveAlternateCommand{
			ActorID:      actorID,
			ActorRole:    role,
			ActorGroup:   group,
			AssignmentID: assignmentID,
			Resolution:   resolveResolution,
			Date:         date,
			Hour:         resolveHour,
			DurationMins: resolveDuration,
			Version:      resolveVersion,
		}

		updated, err := app.ResolveAlternateHandler.Handle(cmd.Context(), command)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Alternate resolved: %s. Status: %s (version %d)\n", resolveResolution, updated.Status(), updated.Version())
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveResolution, "resolution", "", "resolution (ACCEPT, REPROPOSE, required)")
	resolveCmd.Flags().StringVar(&resolveDate, "date", "", "new proposed date (YYYY-MM-DD, with --resolution REPROPOSE)")
	resolveCmd.Flags().IntVar(&resolveHour, "hour", 0, "new start hour (with --resolution REPROPOSE)")
	resolveCmd.Flags().IntVar(&resolveDuration, "duration", 0, "duration in minutes (default from configuration)")
	resolveCmd.Flags().IntVar(&resolveVersion, "version", 0, "expected assignment version")
	_ = resolveCmd.MarkFlagRequired("resolution")
}
