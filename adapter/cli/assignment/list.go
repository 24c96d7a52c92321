package assignment

import (
	"fmt"

	"github.com/fiesc/examsched/adapter/cli"
	schedQueries "github.com/fiesc/examsched/internal/scheduling/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	listGroup      string
	listTeacher    string
	listDiscipline string
	listStatuses   []string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List exam assignments",
	Long: `List exam assignments, optionally filtered by group, teacher,
discipline, or status.

Examples:
  examsched assignment list
  examsched assignment list --filter-group SE-31
  examsched assignment list --status PROPOSED --status ALTERNATE`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListAssignmentsHandler == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Assignment listing requires database connection.")
			return nil
		}

		teacherID := uuid.Nil
		if listTeacher != "" {
			parsed, err := uuid.Parse(listTeacher)
			if err != nil {
				return fmt.Errorf("invalid teacher ID: %w", err)
			}
			teacherID = parsed
		}
		disciplineID := uuid.Nil
		if listDiscipline != "" {
			parsed, err := uuid.Parse(listDiscipline)
			if err != nil {
				return fmt.Errorf("invalid discipline ID: %w", err)
			}
			disciplineID = parsed
		}

		query := schedQueries.ListAssignmentsQuery{
			StudentGroup: listGroup,
			TeacherID:    teacherID,
			DisciplineID: disciplineID,
			Statuses:     listStatuses,
		}

		assignments, err := app.ListAssignmentsHandler.Handle(cmd.Context(), query)
		if err != nil {
			return err
		}

		if len(assignments) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No assignments found.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Assignments (%d):\n", len(assignments))
		for _, a := range assignments {
			printAssignment(cmd, a)
		}

		return nil
	},
}

func printAssignment(cmd *cobra.Command, a schedQueries.AssignmentDTO) {
	date := "-"
	if a.ProposedDate != nil {
		date = fmt.Sprintf("%s %02d:00 (%d mins)", a.ProposedDate.Format("2006-01-02"), a.ProposedHour, a.DurationMins)
	}
	room := "-"
	if a.RoomID != uuid.Nil {
		room = a.RoomID.String()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "  %s [%s]\n", a.ID, a.Status)
	fmt.Fprintf(cmd.OutOrStdout(), "    Group: %s\n", a.StudentGroup)
	fmt.Fprintf(cmd.OutOrStdout(), "    Discipline: %s (%s)\n", a.DisciplineID, a.ExamType)
	fmt.Fprintf(cmd.OutOrStdout(), "    Examiners: %s, %s\n", a.MainTeacherID, a.SecondTeacherID)
	fmt.Fprintf(cmd.OutOrStdout(), "    Date: %s\n", date)
	if a.AlternateDate != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "    Alternate: %s %02d:00\n", a.AlternateDate.Format("2006-01-02"), a.AlternateHour)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "    Room: %s\n", room)
	fmt.Fprintf(cmd.OutOrStdout(), "    Version: %d\n", a.Version)
}

func init() {
	listCmd.Flags().StringVar(&listGroup, "filter-group", "", "filter by student group")
	listCmd.Flags().StringVar(&listTeacher, "teacher", "", "filter by examiner ID")
	listCmd.Flags().StringVar(&listDiscipline, "discipline", "", "filter by discipline ID")
	listCmd.Flags().StringArrayVar(&listStatuses, "status", nil, "filter by status (repeatable)")
}
