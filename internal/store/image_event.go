package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendImageResult(ctx context.Context, data ImageEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO image_events
		(sequence, timestamp, run_id, position, prompt, path, attempts, success, bytes, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UnixMilli(), data.RunID, data.Position, data.Prompt, data.Path,
		data.Attempts, data.Success, data.Bytes, data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save image event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryImageEvents(ctx context.Context, opts QueryOpts) ([]ImageEvent, error) {
	query, args := buildQuery(`SELECT id, sequence, timestamp, run_id, position, prompt, path,
		attempts, success, bytes, error_message FROM image_events`, opts, "position ASC, sequence ASC")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query image events: %w", err)
	}
	defer rows.Close()

	var out []ImageEvent
	for rows.Next() {
		var e ImageEvent
		var ts int64
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.RunID, &e.Position, &e.Prompt, &e.Path,
			&e.Attempts, &e.Success, &e.Bytes, &e.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan image event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
