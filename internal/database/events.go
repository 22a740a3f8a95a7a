package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/models"
)

// CreateEvent inserts an event with its participants in one transaction.
func (db *DB) CreateEvent(ctx context.Context, e *models.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var end sql.NullString
	if e.End != "" {
		end = sql.NullString{String: e.End, Valid: true}
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO events (id, title, date, start_time, end_time)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Date, e.Start, end,
	); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	for _, personID := range e.ParticipantIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO event_participants (event_id, person_id) VALUES (?, ?)`,
			e.ID, personID,
		); err != nil {
			return fmt.Errorf("add participant %s: %w", personID, err)
		}
	}

	return tx.Commit()
}

// DeleteEvent removes an event and its participant rows.
func (db *DB) DeleteEvent(ctx context.Context, id string) error {
	if _, err := db.ExecContext(ctx,
		"DELETE FROM event_participants WHERE event_id = ?", id); err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListEventsInRange returns every event with a date inside the
// inclusive [from, to] range, participants attached.
func (db *DB) ListEventsInRange(ctx context.Context, from, to string) ([]models.Event, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, title, date, start_time, end_time
		FROM events
		WHERE date >= ? AND date <= ?
		ORDER BY date, start_time`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		var end sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &e.Date, &e.Start, &end); err != nil {
			return nil, err
		}
		if end.Valid {
			e.End = end.String
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range events {
		participants, err := db.eventParticipants(ctx, events[i].ID)
		if err != nil {
			return nil, err
		}
		events[i].ParticipantIDs = participants
	}
	return events, nil
}

func (db *DB) eventParticipants(ctx context.Context, eventID string) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT person_id FROM event_participants
		WHERE event_id = ? ORDER BY person_id`,
		eventID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
