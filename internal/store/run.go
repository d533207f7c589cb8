package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type runRepo struct {
	db *sql.DB
}

func (r *runRepo) StartRun(ctx context.Context, input RunInput) (*Run, error) {
	run := &Run{
		ID:         uuid.NewString(),
		StartedAt:  time.Now().UTC().Truncate(time.Millisecond),
		RunInput:   input,
		RunSummary: RunSummary{Status: RunStatusRunning},
	}

	_, err := r.db.ExecContext(ctx, `INSERT INTO runs
		(id, started_at, status, input_path, output_path, provider, model, items)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UnixMilli(), run.Status, input.InputPath, input.OutputPath,
		input.Provider, input.Model, input.Items,
	)
	if err != nil {
		return nil, fmt.Errorf("save run: %w", err)
	}
	return run, nil
}

func (r *runRepo) FinishRun(ctx context.Context, id string, s RunSummary) error {
	res, err := r.db.ExecContext(ctx, `UPDATE runs SET finished_at = ?, status = ?, generated = ?,
		generation_failed = ?, images_succeeded = ?, images_failed = ?, images_skipped = ?
		WHERE id = ?`,
		time.Now().UnixMilli(), s.Status, s.Generated, s.GenerationFailed,
		s.ImagesSucceeded, s.ImagesFailed, s.ImagesSkipped, id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("finish run: run %s not found", id)
	}
	return nil
}

const runColumns = `id, started_at, finished_at, status, input_path, output_path, provider, model,
	items, generated, generation_failed, images_succeeded, images_failed, images_skipped`

func (r *runRepo) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY started_at DESC, rowid DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *run)
	}
	return out, rows.Err()
}

func (r *runRepo) GetRun(ctx context.Context, id string) (*Run, error) {
	run, err := scanRun(r.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return run, err
}

func scanRun(s scanner) (*Run, error) {
	var run Run
	var started, finished int64
	err := s.Scan(&run.ID, &started, &finished, &run.Status, &run.InputPath, &run.OutputPath,
		&run.Provider, &run.Model, &run.Items, &run.Generated, &run.GenerationFailed,
		&run.ImagesSucceeded, &run.ImagesFailed, &run.ImagesSkipped)
	if err != nil {
		return nil, err
	}
	run.StartedAt = time.UnixMilli(started).UTC()
	if finished > 0 {
		run.FinishedAt = time.UnixMilli(finished).UTC()
	}
	return &run, nil
}
