package timetable

import (
	"context"
	"fmt"
	"io"

	"unisched/models"
	"unisched/services/access"
	"unisched/utils"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Timetable"

var exportColumns = []string{"Date", "Time", "Course Code", "Course", "Faculty", "Location"}

func (s *DefaultTimetableService) Export(ctx context.Context, actor models.Identity, courseID string, w io.Writer) error {
	if err := access.Authorize(actor, access.OpTimetableExport); err != nil {
		return err
	}
	entries, err := s.Repo.List(ctx, courseID)
	if err != nil {
		return utils.Wrap(utils.KindInternal, "failed to load timetable", err)
	}

	courseIDs := make([]string, 0, len(entries))
	facultyIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		courseIDs = append(courseIDs, e.CourseID)
		facultyIDs = append(facultyIDs, e.FacultyID)
	}
	courses, err := s.Courses.GetByIDs(ctx, courseIDs)
	if err != nil {
		return utils.Wrap(utils.KindInternal, "failed to load courses", err)
	}
	faculty, err := s.Users.GetByIDs(ctx, facultyIDs)
	if err != nil {
		return utils.Wrap(utils.KindInternal, "failed to load faculty", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return utils.Wrap(utils.KindInternal, "failed to build workbook", err)
	}
	if err := writeRow(f, 1, toRow(exportColumns)); err != nil {
		return utils.Wrap(utils.KindInternal, "failed to build workbook", err)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		end, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
		_ = f.SetCellStyle(exportSheet, "A1", end, style)
	}

	for i, e := range entries {
		c := courses[e.CourseID]
		row := []interface{}{
			e.Date.Format("2006-01-02"),
			e.Time,
			c.Code,
			c.Name,
			faculty[e.FacultyID].Username,
			e.Location,
		}
		if err := writeRow(f, i+2, row); err != nil {
			return utils.Wrap(utils.KindInternal, "failed to build workbook", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, rowNum int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func toRow(cols []string) []interface{} {
	out := make([]interface{}, len(cols))
	for i, c := range cols {
		out[i] = c
	}
	return out
}
