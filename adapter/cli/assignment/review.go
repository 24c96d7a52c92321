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
	reviewDecision string
	reviewAltDate  string
	reviewAltHour  int
	reviewVersion  int
)

var reviewCmd = &cobra.Command{
	Use:   "review [assignment-id]",
	Short: "Review a proposed date",
	Long: `Review a proposed exam date as one of the bound examiners. Accept
the proposal, reject it, cancel the assignment, or counter with an
alternate date.

Examples:
  examsched assignment review abc123 --decision ACCEPT
  examsched assignment review abc123 --decision REJECT
  examsched assignment review abc123 --decision ALTERNATE --alt-date 2026-06-18 --alt-hour 14`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ReviewProposalHandler == nil {
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

		var altDate *time.Time
		if reviewAltDate != "" {
			day, err := parseDay(reviewAltDate)
			if err != nil {
				return err
			}
			altDate = &day
		}

		command := schedCommands.ReviewProposalCommand{
			ActorID:       actorID,
			ActorRole:     role,
			AssignmentID:  assignmentID,
			Decision:      reviewDecision,
			AlternateDate: altDate,
			AlternateHour: reviewAltHour,
			Version:       reviewVersion,
		}

		updated, err := app.ReviewProposalHandler.Handle(cmd.Context(), command)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Proposal reviewed: %s. Status: %s (version %d)\n", reviewDecision, updated.Status(), updated.Version())
		return nil
	},
}

func init() {
	reviewCmd.Flags().StringVar(&reviewDecision, "decision", "", "decision (ACCEPT, REJECT, ALTERNATE, CANCEL, required)")
	reviewCmd.Flags().StringVar(&reviewAltDate, "alt-date", "", "alternate date (YYYY-MM-DD, with --decision ALTERNATE)")
	reviewCmd.Flags().IntVar(&reviewAltHour, "alt-hour", 0, "alternate start hour (with --decision ALTERNATE)")
	reviewCmd.Flags().IntVar(&reviewVersion, "version", 0, "expected assignment version")
	_ = reviewCmd.MarkFlagRequired("decision")
}
