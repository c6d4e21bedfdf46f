package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/dicksarp09/AI-powered-mobile-app/constants"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/common"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/entity"
)

// SaveResultRequest wraps parameters for persisting one extraction.
type SaveResultRequest struct {
	JobID         string
	Transcript    string
	ExtractedJSON []byte // wire shape of entity.ExtractionResult
	Metadata      map[string]any
}

type TaskRepository interface {
	SaveResult(ctx context.Context, req SaveResultRequest) error
	ListByJob(ctx context.Context, jobID string) ([]*entity.StoredTask, error)
	ListAll(ctx context.Context, from, to *time.Time) ([]*entity.StoredTask, error)
}

type taskRepository struct {
	db     *DB
	logger *slog.Logger
	now    func() time.Time
}

func NewTaskRepository(db *DB, logger *slog.Logger) TaskRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &taskRepository{db: db, logger: logger, now: time.Now}
}

// SaveResult upserts the extraction row and replaces the job's tasks in one transaction.
func (r *taskRepository) SaveResult(ctx context.Context, req SaveResultRequest) (err error) {
	if req.JobID == "" {
		return fmt.Errorf("%w: empty job id", common.ErrInvalidInput)
	}
	var res entity.ExtractionResult
	if err := json.Unmarshal(req.ExtractedJSON, &res); err != nil {
		return fmt.Errorf("%w: extracted json: %v", common.ErrInvalidInput, err)
	}
	meta, err := json.Marshal(req.Metadata)
	if err != nil {
		return fmt.Errorf("%w: metadata: %v", common.ErrInvalidInput, err)
	}

	tx, err := r.db.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", common.ErrDatabase, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := r.now().UTC()
	b := r.db.builder()
	q, args := b.Insert(tableExtractions).
		Columns("job_id", "transcript", "extracted_json", "metadata", "validated", "created_at").
		Values(req.JobID, req.Transcript, string(req.ExtractedJSON), string(meta), res.Validated, now).
		OnConflict(entsql.ConflictColumns("job_id"), entsql.ResolveWithNewValues()).
		Query()
	if err = tx.Exec(ctx, q, args, nil); err != nil {
		r.logger.Error("failed to save extraction", "job_id", req.JobID, "error", err)
		return fmt.Errorf("%w: save extraction: %v", common.ErrDatabase, err)
	}

	q, args = b.Delete(tableTasks).Where(entsql.EQ("job_id", req.JobID)).Query()
	if err = tx.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("%w: clear tasks: %v", common.ErrDatabase, err)
	}

	if len(res.Tasks) > 0 {
		ins := b.Insert(tableTasks).Columns(taskColumns[1:]...)
		for i, t := range res.Tasks {
			var due any
			if t.DueTime != nil {
				due = *t.DueTime
			}
			ins = ins.Values(req.JobID, i, t.Title, due, string(t.Priority), now)
		}
		q, args = ins.Query()
		if err = tx.Exec(ctx, q, args, nil); err != nil {
			r.logger.Error("failed to save tasks", "job_id", req.JobID, "count", len(res.Tasks), "error", err)
			return fmt.Errorf("%w: save tasks: %v", common.ErrDatabase, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", common.ErrDatabase, err)
	}
	r.logger.Info("storage.saved", "job_id", req.JobID, "tasks", len(res.Tasks), "validated", res.Validated)
	return nil
}

func (r *taskRepository) ListByJob(ctx context.Context, jobID string) ([]*entity.StoredTask, error) {
	b := r.db.builder()
	q, args := b.Select(taskColumns...).
		From(b.Table(tableTasks)).
		Where(entsql.EQ("job_id", jobID)).
		OrderBy(entsql.Asc("position")).
		Query()
	return r.query(ctx, r.db.drv, q, args)
}

// ListAll returns tasks created within [from, to], oldest first. Nil bounds are open.
func (r *taskRepository) ListAll(ctx context.Context, from, to *time.Time) ([]*entity.StoredTask, error) {
	b := r.db.builder()
	sel := b.Select(taskColumns...).From(b.Table(tableTasks))
	var preds []*entsql.Predicate
	if from != nil {
		preds = append(preds, entsql.GTE("created_at", from.UTC()))
	}
	if to != nil {
		preds = append(preds, entsql.LTE("created_at", to.UTC()))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	q, args := sel.OrderBy(entsql.Asc("created_at"), entsql.Asc("job_id"), entsql.Asc("position")).Query()
	return r.query(ctx, r.db.drv, q, args)
}

func (r *taskRepository) query(ctx context.Context, conn dialect.ExecQuerier, q string, args []any) ([]*entity.StoredTask, error) {
	var rows entsql.Rows
	if err := conn.Query(ctx, q, args, &rows); err != nil {
		r.logger.Error("failed to list tasks", "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.StoredTask
	for rows.Next() {
		var (
			st       entity.StoredTask
			due      sql.NullString
			priority string
		)
		if err := rows.Scan(&st.ID, &st.JobID, &st.Position, &st.Task.Title, &due, &priority, &st.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if due.Valid {
			st.Task.DueTime = &due.String
		}
		st.Task.Priority = constants.Priority(priority)
		st.CreatedAt = st.CreatedAt.UTC()
		out = append(out, &st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	return out, nil
}
