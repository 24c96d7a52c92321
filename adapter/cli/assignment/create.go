package assignment

import (
	"fmt"

	"github.com/fiesc/examsched/adapter/cli"
	schedCommands "github.com/fiesc/examsched/internal/scheduling/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	createDiscipline    string
	createGroup         string
	createExamType      string
	createMainTeacher   string
	createSecondTeacher string
	createRoom          string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Draft an exam assignment",
	Long: `Draft an exam assignment for a discipline and student group.

Examples:
  examsched assignment create --discipline <id> --group SE-31 --main-teacher <id> --second-teacher <id>
  examsched assignment create --discipline <id> --group SE-31 --type PROJECT --main-teacher <id> --second-teacher <id> --room <id>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateAssignmentHandler == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Assignment commands require database connection.")
			return nil
		}

		actorID, role, _, err := app.Identity()
		if err != nil {
			return err
		}

		disciplineID, err := uuid.Parse(createDiscipline)
		if err != nil {
			return fmt.Errorf("invalid discipline ID: %w", err)
		}
		mainTeacherID, err := uuid.Parse(createMainTeacher)
		if err != nil {
			return fmt.Errorf("invalid main teacher ID: %w", err)
		}
		secondTeacherID, err := uuid.Parse(createSecondTeacher)
		if err != nil {
			return fmt.Errorf("invalid second teacher ID: %w", err)
		}
		roomID := uuid.Nil
		if createRoom != "" {
			roomID, err = uuid.Parse(createRoom)
			if err != nil {
				return fmt.Errorf("invalid room ID: %w", err)
			}
		}

		command := schedCommands.CreateAssignmentCommand{
			ActorID:         actorID,
			ActorRole:       role,
			DisciplineID:    disciplineID,
			StudentGroup:    createGroup,
			ExamType:        createExamType,
			MainTeacherID:   mainTeacherID,
			SecondTeacherID: secondTeacherID,
			RoomID:          roomID,
		}

		result, err := app.CreateAssignmentHandler.Handle(cmd.Context(), command)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Drafted assignment: %s\n", result.AssignmentID)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createDiscipline, "discipline", "", "discipline ID (required)")
	createCmd.Flags().StringVar(&createGroup, "group", "", "student group name (required)")
	createCmd.Flags().StringVar(&createExamType, "type", "EXAM", "exam type (EXAM, PROJECT)")
	createCmd.Flags().StringVar(&createMainTeacher, "main-teacher", "", "main examiner ID (required)")
	createCmd.Flags().StringVar(&createSecondTeacher, "second-teacher", "", "second examiner ID (required)")
	createCmd.Flags().StringVar(&createRoom, "room", "", "room ID")
	_ = createCmd.MarkFlagRequired("discipline")
	_ = createCmd.MarkFlagRequired("group")
	_ = createCmd.MarkFlagRequired("main-teacher")
	_ = createCmd.MarkFlagRequired("second-teacher")
}
