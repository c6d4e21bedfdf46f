package repository

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableJobs        = "inference_jobs"
	tableExtractions = "extractions"
	tableTasks       = "tasks"
)

var (
	jobColumns = []string{
		"job_id", "input_ref", "requested_mode", "actual_mode", "status",
		"start_time", "end_time", "models_used", "battery_at_start", "battery_at_end",
		"max_tokens", "success", "error", "result",
	}
	taskColumns = []string{"id", "job_id", "position", "title", "due_time", "priority", "created_at"}
)

// Tables describes the schema created by Migrate.
func Tables() []*schema.Table {
	jobs := schema.NewTable(tableJobs).
		AddPrimary(&schema.Column{Name: "job_id", Type: field.TypeString, Size: 64}).
		AddColumn(&schema.Column{Name: "input_ref", Type: field.TypeString, Size: 1024}).
		AddColumn(&schema.Column{Name: "requested_mode", Type: field.TypeString, Size: 16}).
		AddColumn(&schema.Column{Name: "actual_mode", Type: field.TypeString, Size: 16}).
		AddColumn(&schema.Column{Name: "status", Type: field.TypeString, Size: 16}).
		AddColumn(&schema.Column{Name: "start_time", Type: field.TypeTime}).
		AddColumn(&schema.Column{Name: "end_time", Type: field.TypeTime, Nullable: true}).
		AddColumn(&schema.Column{Name: "models_used", Type: field.TypeString, Size: 2048}).
		AddColumn(&schema.Column{Name: "battery_at_start", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "battery_at_end", Type: field.TypeInt, Nullable: true}).
		AddColumn(&schema.Column{Name: "max_tokens", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "success", Type: field.TypeBool}).
		AddColumn(&schema.Column{Name: "error", Type: field.TypeString, Size: 4096, Nullable: true}).
		AddColumn(&schema.Column{Name: "result", Type: field.TypeString, Size: 1 << 20, Nullable: true})
	jobs.AddIndex("inferencejob_start_time", false, []string{"start_time"})
	jobs.AddIndex("inferencejob_input_ref", false, []string{"input_ref"})

	extractions := schema.NewTable(tableExtractions).
		AddPrimary(&schema.Column{Name: "job_id", Type: field.TypeString, Size: 64}).
		AddColumn(&schema.Column{Name: "transcript", Type: field.TypeString, Size: 1 << 16}).
		AddColumn(&schema.Column{Name: "extracted_json", Type: field.TypeString, Size: 1 << 20}).
		AddColumn(&schema.Column{Name: "metadata", Type: field.TypeString, Size: 1 << 16}).
		AddColumn(&schema.Column{Name: "validated", Type: field.TypeBool}).
		AddColumn(&schema.Column{Name: "created_at", Type: field.TypeTime})

	tasks := schema.NewTable(tableTasks).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt64, Increment: true}).
		AddColumn(&schema.Column{Name: "job_id", Type: field.TypeString, Size: 64}).
		AddColumn(&schema.Column{Name: "position", Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: "title", Type: field.TypeString, Size: 1024}).
		AddColumn(&schema.Column{Name: "due_time", Type: field.TypeString, Size: 256, Nullable: true}).
		AddColumn(&schema.Column{Name: "priority", Type: field.TypeString, Size: 16}).
		AddColumn(&schema.Column{Name: "created_at", Type: field.TypeTime})
	tasks.AddIndex("task_job_id_position", true, []string{"job_id", "position"})
	tasks.AddIndex("task_created_at", false, []string{"created_at"})

	return []*schema.Table{jobs, extractions, tasks}
}

// Migrate creates missing tables and indexes. Existing columns are never dropped.
func (db *DB) Migrate(ctx context.Context) error {
	m, err := schema.NewMigrate(db.drv)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	if err := m.Create(ctx, Tables()...); err != nil {
		db.logger.Error("schema migration failed", "error", err)
		return fmt.Errorf("migrate: %w", err)
	}
	db.logger.Info("schema migration complete", "tables", len(Tables()))
	return nil
}
