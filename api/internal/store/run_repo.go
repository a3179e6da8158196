package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"essay-feedback/api/internal/feedback"
)

// Schema creates the run log table.
const Schema = `
create table if not exists feedback_runs (
  id           bigserial primary key,
  text_page_id text        not null,
  row_page_id  text        not null,
  engine       text        not null,
  model        text        not null,
  degraded     boolean     not null default false,
  write_status integer     not null,
  write_ok     boolean     not null,
  created_at   timestamptz not null default now()
)`

type RunRepo struct{ DB *sql.DB }

func NewRunRepo(db *sql.DB) *RunRepo { return &RunRepo{DB: db} }

// Open connects through the pgx database/sql driver and checks the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

func (r *RunRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, Schema)
	return err
}

// Record inserts one run. A zero CreatedAt falls back to the database clock.
func (r *RunRepo) Record(ctx context.Context, run feedback.Run) error {
	const q = `
insert into feedback_runs(text_page_id, row_page_id, engine, model, degraded, write_status, write_ok, created_at)
values ($1,$2,$3,$4,$5,$6,$7,coalesce($8, now()))`
	var created sql.NullTime
	if !run.CreatedAt.IsZero() {
		created = sql.NullTime{Time: run.CreatedAt, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, q,
		run.TextPageID, run.RowPageID, run.Engine, run.Model,
		run.Degraded, run.WriteStatus, run.WriteOK, created)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent returns the newest runs for a row, newest first.
func (r *RunRepo) Recent(ctx context.Context, rowPageID string, limit int) ([]feedback.Run, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `select text_page_id, row_page_id, engine, model, degraded, write_status, write_ok, created_at
	           from feedback_runs
	           where row_page_id=$1
	           order by created_at desc, id desc
	           limit $2`
	rows, err := r.DB.QueryContext(ctx, q, rowPageID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []feedback.Run
	for rows.Next() {
		var run feedback.Run
		if err := rows.Scan(&run.TextPageID, &run.RowPageID, &run.Engine, &run.Model,
			&run.Degraded, &run.WriteStatus, &run.WriteOK, &run.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
