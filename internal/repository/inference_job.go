package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/dicksarp09/AI-powered-mobile-app/constants"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/common"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/entity"
)

type InferenceJobRepository interface {
	JobRecorder
	GetByID(ctx context.Context, jobID string) (*entity.InferenceJob, error)
	List(ctx context.Context, limit int) ([]*entity.InferenceJob, error)
}

type inferenceJobRepo struct {
	db  *DB
	log *slog.Logger
}

func NewInferenceJobRepository(db *DB, log *slog.Logger) InferenceJobRepository {
	if log == nil {
		log = slog.Default()
	}
	return &inferenceJobRepo{db: db, log: log}
}

// Start inserts the job row; a second Start for the same id overwrites it.
func (r *inferenceJobRepo) Start(ctx context.Context, job *entity.InferenceJob) error {
	models, err := json.Marshal(job.ModelsUsed)
	if err != nil {
		return fmt.Errorf("encode models: %w", err)
	}
	q, args := r.db.builder().Insert(tableJobs).
		Columns(jobColumns...).
		Values(
			job.JobID, job.InputRef, string(job.RequestedMode), string(job.ActualMode), string(job.Status),
			job.StartTime.UTC(), nil, string(models), job.BatteryAtStart, nil,
			job.MaxTokens, false, nil, nil,
		).
		OnConflict(entsql.ConflictColumns("job_id"), entsql.ResolveWithNewValues()).
		Query()
	if err := r.db.drv.Exec(ctx, q, args, nil); err != nil {
		r.log.Error("inference_job start failed", "job_id", job.JobID, "err", err)
		return fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	r.log.Debug("inference_job started", "job_id", job.JobID, "input_ref", job.InputRef, "mode", job.ActualMode)
	return nil
}

// Finish writes the terminal state of the job.
func (r *inferenceJobRepo) Finish(ctx context.Context, job *entity.InferenceJob) error {
	models, err := json.Marshal(job.ModelsUsed)
	if err != nil {
		return fmt.Errorf("encode models: %w", err)
	}
	var result any
	if job.Result != nil {
		b, err := json.Marshal(job.Result)
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		result = string(b)
	}
	var endTime, batteryEnd, errMsg any
	if job.EndTime != nil {
		endTime = job.EndTime.UTC()
	}
	if job.BatteryAtEnd != nil {
		batteryEnd = *job.BatteryAtEnd
	}
	if job.Error != nil {
		errMsg = *job.Error
	}
	q, args := r.db.builder().Update(tableJobs).
		Set("actual_mode", string(job.ActualMode)).
		Set("status", string(job.Status)).
		Set("end_time", endTime).
		Set("models_used", string(models)).
		Set("battery_at_end", batteryEnd).
		Set("max_tokens", job.MaxTokens).
		Set("success", job.Success).
		Set("error", errMsg).
		Set("result", result).
		Where(entsql.EQ("job_id", job.JobID)).
		Query()
	var res sql.Result
	if err := r.db.drv.Exec(ctx, q, args, &res); err != nil {
		r.log.Error("inference_job finish failed", "job_id", job.JobID, "err", err)
		return fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("inference job %s: %w", job.JobID, common.ErrNotFound)
	}
	if job.Success {
		r.log.Info("inference_job finished", "job_id", job.JobID, "status", job.Status)
	} else {
		r.log.Warn("inference_job finished (FAILED)", "job_id", job.JobID, "error", errMsg)
	}
	return nil
}

func (r *inferenceJobRepo) GetByID(ctx context.Context, jobID string) (*entity.InferenceJob, error) {
	b := r.db.builder()
	q, args := b.Select(jobColumns...).
		From(b.Table(tableJobs)).
		Where(entsql.EQ("job_id", jobID)).
		Query()
	jobs, err := r.query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("inference job %s: %w", jobID, common.ErrNotFound)
	}
	return jobs[0], nil
}

// List returns the most recent jobs first.
func (r *inferenceJobRepo) List(ctx context.Context, limit int) ([]*entity.InferenceJob, error) {
	b := r.db.builder()
	sel := b.Select(jobColumns...).
		From(b.Table(tableJobs)).
		OrderBy(entsql.Desc("start_time"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	q, args := sel.Query()
	return r.query(ctx, q, args)
}

func (r *inferenceJobRepo) query(ctx context.Context, q string, args []any) ([]*entity.InferenceJob, error) {
	var rows entsql.Rows
	if err := r.db.drv.Query(ctx, q, args, &rows); err != nil {
		r.log.Error("inference_job query failed", "err", err)
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.InferenceJob
	for rows.Next() {
		job, err := scanJob(&rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}
	return out, nil
}

func scanJob(rows *entsql.Rows) (*entity.InferenceJob, error) {
	var (
		job                              entity.InferenceJob
		requested, actual, status, model string
		start                            time.Time
		end                              sql.NullTime
		batteryEnd                       sql.NullInt64
		errMsg, result                   sql.NullString
	)
	if err := rows.Scan(
		&job.JobID, &job.InputRef, &requested, &actual, &status,
		&start, &end, &model, &job.BatteryAtStart, &batteryEnd,
		&job.MaxTokens, &job.Success, &errMsg, &result,
	); err != nil {
		return nil, fmt.Errorf("scan inference job: %w", err)
	}
	job.RequestedMode = constants.Mode(requested)
	job.ActualMode = constants.Mode(actual)
	job.Status = constants.JobStatus(status)
	job.StartTime = start.UTC()
	if end.Valid {
		t := end.Time.UTC()
		job.EndTime = &t
	}
	if batteryEnd.Valid {
		v := int(batteryEnd.Int64)
		job.BatteryAtEnd = &v
	}
	if errMsg.Valid {
		job.Error = &errMsg.String
	}
	if err := json.Unmarshal([]byte(model), &job.ModelsUsed); err != nil {
		return nil, fmt.Errorf("decode models: %w", err)
	}
	if result.Valid && result.String != "" {
		var res entity.ExtractionResult
		if err := json.Unmarshal([]byte(result.String), &res); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
		job.Result = &res
	}
	return &job, nil
}

// IsNotFound reports whether err is a missing-row error.
func IsNotFound(err error) bool { return errors.Is(err, common.ErrNotFound) }
