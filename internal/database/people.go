package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/FertVad/rehearsal-calendar-app-sub001/internal/models"
)

// CreatePerson inserts a person, generating an id when none is given.
func (db *DB) CreatePerson(ctx context.Context, p *models.Person) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := db.ExecContext(ctx,
		"INSERT INTO people (id, display_name) VALUES (?, ?)",
		p.ID, p.DisplayName,
	)
	if err != nil {
		return fmt.Errorf("create person: %w", err)
	}
	return nil
}

// GetPerson returns one person by id.
func (db *DB) GetPerson(ctx context.Context, id string) (*models.Person, error) {
	var p models.Person
	err := db.QueryRowContext(ctx,
		"SELECT id, display_name FROM people WHERE id = ?", id,
	).Scan(&p.ID, &p.DisplayName)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPeople returns all people ordered by display name.
func (db *DB) ListPeople(ctx context.Context) ([]models.Person, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT id, display_name FROM people ORDER BY display_name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.DisplayName); err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

// GetPeopleByIDs returns the people matching the given ids, in the same
// order. Unknown ids are skipped rather than failing the lookup.
func (db *DB) GetPeopleByIDs(ctx context.Context, ids []string) ([]models.Person, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	all, err := db.ListPeople(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Person, len(all))
	for _, p := range all {
		byID[p.ID] = p
	}

	people := make([]models.Person, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			people = append(people, p)
		}
	}
	return people, nil
}

// DeletePerson removes a person and their availability entries.
func (db *DB) DeletePerson(ctx context.Context, id string) error {
	if _, err := db.ExecContext(ctx,
		"DELETE FROM availability_entries WHERE person_id = ?", id); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx,
		"DELETE FROM event_participants WHERE person_id = ?", id); err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, "DELETE FROM people WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
