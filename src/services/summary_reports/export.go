package summary_reports

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"Backend-Attendance/src/models"
)

const rosterSheet = "Attendance"

var rosterHeader = []interface{}{"Student No.", "Name", "Course", "Year Level", "Status", "Marked At"}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// ExportFileName e.g. "general-assembly-2024-09-02.xlsx"
func ExportFileName(e models.Event) string {
	name := strings.Trim(unsafeFileChars.ReplaceAllString(strings.ToLower(e.Title), "-"), "-")
	if name == "" {
		name = "event"
	}
	return fmt.Sprintf("%s-%s.xlsx", name, e.StartDate)
}

// WriteRosterXLSX writes the roster as a single sheet workbook, one row per eligible
// student, followed by the tracker.
func (s *Service) WriteRosterXLSX(w io.Writer, roster models.EventRoster) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), rosterSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(rosterSheet, "A1", &rosterHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	loc := s.classifier.Location()
	row := 2
	for _, entry := range roster.Entries {
		status, markedAt := "not marked", ""
		if entry.Status != "" {
			status = string(entry.Status)
		}
		if entry.MarkedAt != nil {
			markedAt = entry.MarkedAt.In(loc).Format("2006-01-02 15:04")
		}
		values := []interface{}{
			entry.Student.StudentNumber,
			entry.Student.Name,
			entry.Student.Course,
			entry.Student.YearLevel,
			status,
			markedAt,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(rosterSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		row++
	}

	cell, err := excelize.CoordinatesToCellName(1, row+1)
	if err != nil {
		return err
	}
	footer := []interface{}{"Tracker (%)", roster.Tracker}
	if err := f.SetSheetRow(rosterSheet, cell, &footer); err != nil {
		return fmt.Errorf("failed to write tracker: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ExportEventRoster writes the event's roster workbook to w and returns its file name.
func (s *Service) ExportEventRoster(ctx context.Context, eventID string, w io.Writer) (string, error) {
	roster, err := s.EventRoster(ctx, eventID)
	if err != nil {
		return "", err
	}
	if err := s.WriteRosterXLSX(w, roster); err != nil {
		return "", err
	}
	return ExportFileName(roster.Event), nil
}
