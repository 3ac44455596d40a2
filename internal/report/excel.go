package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/username/timesheet-console/internal/api"
	"github.com/username/timesheet-console/internal/timesheet"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	timesheetSheet = "Timesheet"
	holidaySheet   = "Holidays"
)

// ExcelWriter exports console data as Excel workbooks
type ExcelWriter struct {
	outputDir string
	company   string
	logger    *zap.Logger
}

// NewExcelWriter creates a new Excel report writer
func NewExcelWriter(outputDir, company string, logger *zap.Logger) *ExcelWriter {
	return &ExcelWriter{
		outputDir: outputDir,
		company:   company,
		logger:    logger,
	}
}

// WritePeriodReport writes a workbook with the timesheet summary and
// the holiday calendar, returning the written file path
func (w *ExcelWriter) WritePeriodReport(summary *timesheet.PeriodSummary, holidays []api.Holiday, filename string) (string, error) {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if err := w.writeTimesheetSheet(file, summary); err != nil {
		return "", err
	}
	if err := w.writeHolidaySheet(file, holidays); err != nil {
		return "", err
	}

	// Drop the default sheet so the workbook opens on the timesheet
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	path := filepath.Join(w.outputDir, filename)
	if err := file.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}

	w.logger.Info("Report written",
		zap.String("path", path),
		zap.Int("days", len(summary.Daily)),
		zap.Int("holidays", len(holidays)))

	return path, nil
}

func (w *ExcelWriter) writeTimesheetSheet(file *excelize.File, summary *timesheet.PeriodSummary) error {
	if _, err := file.NewSheet(timesheetSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	rows := [][]interface{}{
		{w.company},
		{fmt.Sprintf("Timesheet %s to %s",
			summary.From.Format("2006-01-02"), summary.To.Format("2006-01-02"))},
		{},
		{"Date", "Entries", "Hours", "Pay"},
	}
	for _, day := range summary.Daily {
		rows = append(rows, []interface{}{day.Date, day.EntryCount, day.Hours, day.Pay})
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Total", summary.EntryCount, summary.TotalHours, summary.TotalPay})

	return w.writeRows(file, timesheetSheet, rows)
}

func (w *ExcelWriter) writeHolidaySheet(file *excelize.File, holidays []api.Holiday) error {
	if _, err := file.NewSheet(holidaySheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Date", "Type", "Description"},
	}
	for _, h := range holidays {
		rows = append(rows, []interface{}{h.Date, h.Type, h.Description})
	}

	return w.writeRows(file, holidaySheet, rows)
}

func (w *ExcelWriter) writeRows(file *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	return nil
}
