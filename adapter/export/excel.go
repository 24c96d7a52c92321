// Package export renders the confirmed exam schedule as a spreadsheet
// for distribution to students and staff.
package export

import (
	"fmt"
	"io"

	"github.com/fiesc/examsched/internal/scheduling/application/queries"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Exam schedule"

var headers = []any{
	"Date", "Hour", "Duration (min)", "Discipline", "Group", "Type",
	"Main examiner", "Second examiner", "Room", "Status",
}

// ExcelWriter renders assignment listings into an xlsx workbook.
type ExcelWriter struct{}

// NewExcelWriter creates an ExcelWriter.
func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{}
}

// Write renders the assignments into w. Rows keep the order of the
// input slice.
func (e *ExcelWriter) Write(w io.Writer, assignments []queries.AssignmentDTO) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, a := range assignments {
		date := ""
		if a.ProposedDate != nil {
			date = a.ProposedDate.Format("2006-01-02")
		}
		row := []any{
			date,
			fmt.Sprintf("%02d:00", a.ProposedHour),
			a.DurationMins,
			a.DisciplineID.String(),
			a.StudentGroup,
			a.ExamType,
			a.MainTeacherID.String(),
			a.SecondTeacherID.String(),
			a.RoomID.String(),
			a.Status,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
