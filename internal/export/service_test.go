package export

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dicksarp09/AI-powered-mobile-app/constants"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/entity"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/repository"
)

type fakeTasks struct {
	repository.TaskRepository
	rows     []*entity.StoredTask
	err      error
	from, to *time.Time
}

func (f *fakeTasks) ListAll(_ context.Context, from, to *time.Time) ([]*entity.StoredTask, error) {
	f.from, f.to = from, to
	return f.rows, f.err
}

func TestExportTasksXLSX(t *testing.T) {
	due := "tomorrow 3pm"
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	repo := &fakeTasks{rows: []*entity.StoredTask{
		{ID: 1, JobID: "job-1", Position: 0, CreatedAt: created, Task: entity.Task{Title: "Call John", DueTime: &due, Priority: constants.PriorityHigh}},
		{ID: 2, JobID: "job-1", Position: 1, CreatedAt: created, Task: entity.Task{Title: "Buy milk", Priority: constants.PriorityMedium}},
	}}

	out, err := NewService(repo, nil).ExportTasksXLSX(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Nil(t, repo.from)
	require.Nil(t, repo.to)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, []string{sheet}, f.GetSheetList())

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"Created", "Job ID", "#", "Title", "Due", "Priority"}, rows[0])
	require.Equal(t, []string{"2026-03-01 09:30", "job-1", "1", "Call John", "tomorrow 3pm", "high"}, rows[1])
	require.Equal(t, "Buy milk", rows[2][3])
	require.Equal(t, "medium", rows[2][5])
}

func TestExportWindow(t *testing.T) {
	svc := NewService(&fakeTasks{}, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC) }

	from := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	f, to := svc.window(&from, nil)
	require.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *f)
	require.Equal(t, time.Date(2026, 3, 10, 23, 59, 59, 999999999, time.UTC), *to)

	end := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	f, to = svc.window(nil, &end)
	require.Nil(t, f)
	require.Equal(t, time.Date(2026, 3, 5, 23, 59, 59, 999999999, time.UTC), *to)
}

func TestExportQueryError(t *testing.T) {
	_, err := NewService(&fakeTasks{err: errors.New("boom")}, nil).ExportTasksXLSX(context.Background(), nil, nil)
	require.ErrorContains(t, err, "query tasks")
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", truncate("abc", 5))
	require.Equal(t, "ab…", truncate("abcdef", 3))
}
