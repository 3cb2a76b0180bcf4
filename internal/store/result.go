package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const resultsTable = "quiz_results"

// Result is one submitted quiz in the history table.
type Result struct {
	ID          int64
	SessionID   string
	Email       string
	Total       int
	Correct     int
	Incorrect   int
	Unattempted int
	Score       int
	Grade       string
	TimeSpent   int
	Source      string
	SubmittedAt time.Time
}

// ResultRepo records submitted quizzes.
type ResultRepo interface {
	// Append stores a result. A second result for the same session is ignored.
	Append(ctx context.Context, r Result) error

	// Recent returns up to limit results, newest first. limit <= 0 returns all.
	Recent(ctx context.Context, limit int) ([]Result, error)
}

type resultRepo struct {
	drv *entsql.Driver
}

var resultColumns = []string{
	"id", "session_id", "email", "total", "correct", "incorrect",
	"unattempted", "score", "grade", "time_spent", "source", "submitted_at",
}

func (r *resultRepo) Append(ctx context.Context, res Result) error {
	if res.SubmittedAt.IsZero() {
		res.SubmittedAt = time.Now()
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(resultsTable).
		Columns(resultColumns[1:]...).
		Values(
			res.SessionID, res.Email, res.Total, res.Correct, res.Incorrect,
			res.Unattempted, res.Score, res.Grade, res.TimeSpent, res.Source,
			res.SubmittedAt.Unix(),
		).
		OnConflict(
			entsql.ConflictColumns("session_id"),
			entsql.DoNothing(),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("append result: %w", err)
	}
	return nil
}

func (r *resultRepo) Recent(ctx context.Context, limit int) ([]Result, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(resultColumns...).
		From(entsql.Table(resultsTable)).
		OrderBy(entsql.Desc("submitted_at"), entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			res Result
			ts  int64
		)
		if err := rows.Scan(
			&res.ID, &res.SessionID, &res.Email, &res.Total, &res.Correct,
			&res.Incorrect, &res.Unattempted, &res.Score, &res.Grade,
			&res.TimeSpent, &res.Source, &ts,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		res.SubmittedAt = time.Unix(ts, 0)
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}
