package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dicksarp09/AI-powered-mobile-app/internal/repository"
)

const sheet = "Tasks"

// Service produces XLSX workbooks of persisted tasks.
type Service struct {
	tasks  repository.TaskRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(tasks repository.TaskRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{tasks: tasks, logger: logger, now: time.Now}
}

// ExportTasksXLSX returns an XLSX workbook (as bytes) of tasks created in the date window.
// If only from is provided -> from..today (inclusive).
// If only to is provided   -> beginning..to (inclusive).
// If neither is provided   -> all tasks.
func (s *Service) ExportTasksXLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	start := time.Now()
	fromDate, toDate := s.window(from, to)

	rows, err := s.tasks.ListAll(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}

	headers := []string{"Created", "Job ID", "#", "Title", "Due", "Priority"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(sheet, "A1", "F1", style)
	}

	for i, r := range rows {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.CreatedAt.Format("2006-01-02 15:04"))
		write(2, r.JobID)
		write(3, r.Position+1)
		write(4, truncate(r.Task.Title, 200))
		due := ""
		if r.Task.DueTime != nil {
			due = *r.Task.DueTime
		}
		write(5, due)
		write(6, string(r.Task.Priority))
	}

	_ = f.SetColWidth(sheet, "A", "A", 18)
	_ = f.SetColWidth(sheet, "B", "B", 38)
	_ = f.SetColWidth(sheet, "C", "C", 5)
	_ = f.SetColWidth(sheet, "D", "D", 60)
	_ = f.SetColWidth(sheet, "E", "E", 22)
	_ = f.SetColWidth(sheet, "F", "F", 10)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// window turns date bounds into an inclusive UTC timestamp range.
func (s *Service) window(from, to *time.Time) (*time.Time, *time.Time) {
	var fromDate, toDate *time.Time
	if from != nil {
		f := dayStart(*from)
		fromDate = &f
	}
	if to != nil {
		t := dayStart(*to).Add(24*time.Hour - time.Nanosecond)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		t := dayStart(s.now()).Add(24*time.Hour - time.Nanosecond)
		toDate = &t
	}
	return fromDate, toDate
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
