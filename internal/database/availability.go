package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/models"
)

// CreateAvailability inserts a manual availability entry.
func (db *DB) CreateAvailability(ctx context.Context, e *models.AvailabilityEntry) error {
	if !e.Type.Valid() {
		return fmt.Errorf("invalid availability type %q", e.Type)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO availability_entries (id, person_id, date, start_time, end_time, type)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.PersonID, e.Date, e.Start, e.End, string(e.Type),
	)
	if err != nil {
		return fmt.Errorf("create availability: %w", err)
	}
	return nil
}

// DeleteAvailability removes one entry by id.
func (db *DB) DeleteAvailability(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx,
		"DELETE FROM availability_entries WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAvailabilityInRange returns every entry with a date inside the
// inclusive [from, to] range. Dates are "YYYY-MM-DD" strings, so string
// comparison orders them chronologically.
func (db *DB) ListAvailabilityInRange(ctx context.Context, from, to string) ([]models.AvailabilityEntry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, person_id, date, start_time, end_time, type
		FROM availability_entries
		WHERE date >= ? AND date <= ?
		ORDER BY date, person_id, start_time`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AvailabilityEntry
	for rows.Next() {
		var e models.AvailabilityEntry
		var typ string
		if err := rows.Scan(&e.ID, &e.PersonID, &e.Date, &e.Start, &e.End, &typ); err != nil {
			return nil, err
		}
		e.Type = models.AvailabilityType(typ)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListAvailabilityForPerson returns one person's entries on one date.
func (db *DB) ListAvailabilityForPerson(ctx context.Context, personID, date string) ([]models.AvailabilityEntry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, person_id, date, start_time, end_time, type
		FROM availability_entries
		WHERE person_id = ? AND date = ?
		ORDER BY start_time`,
		personID, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AvailabilityEntry
	for rows.Next() {
		var e models.AvailabilityEntry
		var typ string
		if err := rows.Scan(&e.ID, &e.PersonID, &e.Date, &e.Start, &e.End, &typ); err != nil {
			return nil, err
		}
		e.Type = models.AvailabilityType(typ)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
