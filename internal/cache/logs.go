package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Snape93/nutrition-sub006/internal/model"
	"github.com/google/uuid"
)

func logTable(kind model.LogKind) (string, error) {
	switch kind {
	case model.LogFood:
		return "food_logs", nil
	case model.LogExercise:
		return "exercise_logs", nil
	case model.LogWeight:
		return "weight_logs", nil
	case model.LogWater:
		return "water_logs", nil
	default:
		return "", fmt.Errorf("unknown log kind %q", kind)
	}
}

// InsertLog appends one entry to the table for its kind. A missing ClientID
// gets a generated uuid so the entry has a stable identity before the
// remote sync assigns a server id.
func (s *Store) InsertLog(ctx context.Context, e model.LogEntry) (int64, error) {
	table, err := logTable(e.Kind)
	if err != nil {
		return 0, err
	}
	if e.UserID == "" {
		return 0, fmt.Errorf("log user id is required")
	}
	if e.ClientID == "" {
		e.ClientID = uuid.NewString()
	}
	if e.LoggedAt.IsZero() {
		e.LoggedAt = time.Now()
	}
	loggedAt := e.LoggedAt.Format(time.RFC3339)

	var columns string
	var args []any
	switch e.Kind {
	case model.LogFood:
		columns = `(client_id, user_id, name, calories, protein_g, carbs_g, fat_g, logged_at)`
		args = []any{e.ClientID, e.UserID, e.Name, e.Calories, e.ProteinG, e.CarbsG, e.FatG, loggedAt}
	case model.LogExercise:
		columns = `(client_id, user_id, name, duration_min, calories, logged_at)`
		args = []any{e.ClientID, e.UserID, e.Name, e.DurationMin, e.Calories, loggedAt}
	case model.LogWeight:
		columns = `(client_id, user_id, weight_kg, logged_at)`
		args = []any{e.ClientID, e.UserID, e.WeightKg, loggedAt}
	case model.LogWater:
		columns = `(client_id, user_id, amount_ml, logged_at)`
		args = []any{e.ClientID, e.UserID, e.AmountMl, loggedAt}
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(args)), ", ")

	res, err := s.db.ExecContext(ctx, `INSERT INTO `+table+columns+` VALUES(`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("insert %s log: %w", e.Kind, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve %s log id: %w", e.Kind, err)
	}
	return id, nil
}

// QueryLogs returns the user's entries of one kind with logged_at in
// [start, end], ordered ascending. An empty result is an empty slice,
// never an error.
func (s *Store) QueryLogs(ctx context.Context, kind model.LogKind, userID string, start, end time.Time) ([]model.LogEntry, error) {
	table, err := logTable(kind)
	if err != nil {
		return nil, err
	}

	var columns string
	switch kind {
	case model.LogFood:
		columns = `id, client_id, user_id, name, calories, protein_g, carbs_g, fat_g, logged_at`
	case model.LogExercise:
		columns = `id, client_id, user_id, name, duration_min, calories, logged_at`
	case model.LogWeight:
		columns = `id, client_id, user_id, weight_kg, logged_at`
	case model.LogWater:
		columns = `id, client_id, user_id, amount_ml, logged_at`
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+columns+` FROM `+table+` WHERE user_id = ? AND logged_at >= ? AND logged_at <= ? ORDER BY logged_at ASC`,
		userID, start.Format(time.RFC3339), end.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("query %s logs: %w", kind, err)
	}
	defer rows.Close()

	entries := make([]model.LogEntry, 0)
	for rows.Next() {
		e := model.LogEntry{Kind: kind}
		var loggedRaw string
		switch kind {
		case model.LogFood:
			err = rows.Scan(&e.ID, &e.ClientID, &e.UserID, &e.Name, &e.Calories, &e.ProteinG, &e.CarbsG, &e.FatG, &loggedRaw)
		case model.LogExercise:
			err = rows.Scan(&e.ID, &e.ClientID, &e.UserID, &e.Name, &e.DurationMin, &e.Calories, &loggedRaw)
		case model.LogWeight:
			err = rows.Scan(&e.ID, &e.ClientID, &e.UserID, &e.WeightKg, &loggedRaw)
		case model.LogWater:
			err = rows.Scan(&e.ID, &e.ClientID, &e.UserID, &e.AmountMl, &loggedRaw)
		}
		if err != nil {
			return nil, fmt.Errorf("scan %s log: %w", kind, err)
		}
		logged, perr := time.Parse(time.RFC3339, loggedRaw)
		if perr != nil {
			return nil, fmt.Errorf("parse logged_at: %w", perr)
		}
		e.LoggedAt = logged
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s logs: %w", kind, err)
	}
	return entries, nil
}

// DeleteLog removes one entry by id. Logs are immutable once written; an
// explicit id-based delete is the only mutation allowed.
func (s *Store) DeleteLog(ctx context.Context, kind model.LogKind, id int64) error {
	table, err := logTable(kind)
	if err != nil {
		return err
	}
	if id <= 0 {
		return fmt.Errorf("log id must be > 0")
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete %s log %d: %w", kind, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s log %d not found", kind, id)
	}
	return nil
}
