package store

import (
	"database/sql"
	"strings"

	"helproom/internal/logging"

	"github.com/google/uuid"
)

// Location is a named physical place where inventory is stored. Seed rows
// carry fixed slug IDs; user-added rows get random UUIDs.
type Location struct {
	ID   string
	Name string
}

// Locations returns all locations ordered by name.
func (s *Store) Locations() ([]Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name FROM locations ORDER BY name")
	if err != nil {
		return nil, storageErr("list locations", err)
	}
	defer rows.Close()

	var locations []Location
	for rows.Next() {
		var loc Location
		if err := rows.Scan(&loc.ID, &loc.Name); err != nil {
			return nil, storageErr("list locations", err)
		}
		locations = append(locations, loc)
	}
	return locations, storageErr("list locations", rows.Err())
}

// Location looks up a single location by ID.
func (s *Store) Location(id string) (Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locationByID(id)
}

func (s *Store) locationByID(id string) (Location, error) {
	var loc Location
	err := s.db.QueryRow("SELECT id, name FROM locations WHERE id = ?", id).
		Scan(&loc.ID, &loc.Name)
	if err == sql.ErrNoRows {
		return Location{}, locationNotFound(id)
	}
	if err != nil {
		return Location{}, storageErr("get location", err)
	}
	return loc, nil
}

// AddLocation creates a new location with a generated ID.
func (s *Store) AddLocation(name string) (Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Location{}, &ValidationError{Reason: "location name must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var existing int
	err := s.db.QueryRow("SELECT COUNT(*) FROM locations WHERE LOWER(name) = LOWER(?)", name).Scan(&existing)
	if err != nil {
		return Location{}, storageErr("add location", err)
	}
	if existing > 0 {
		return Location{}, &ValidationError{Reason: "a location named " + name + " already exists"}
	}

	loc := Location{ID: uuid.NewString(), Name: name}
	if _, err := s.db.Exec("INSERT INTO locations (id, name) VALUES (?, ?)", loc.ID, loc.Name); err != nil {
		return Location{}, storageErr("add location", err)
	}

	logging.Store("Added location %q (%s)", loc.Name, loc.ID)
	return loc, nil
}

// RenameLocation changes a location's display name.
func (s *Store) RenameLocation(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Reason: "location name must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE locations SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return storageErr("rename location", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return locationNotFound(id)
	}
	return nil
}

// DeleteLocation removes an empty location. Locations that still have
// items referencing them cannot be deleted.
func (s *Store) DeleteLocation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var itemCount int
	err := s.db.QueryRow("SELECT COUNT(*) FROM items WHERE location_id = ?", id).Scan(&itemCount)
	if err != nil {
		return storageErr("delete location", err)
	}
	if itemCount > 0 {
		return &InvalidOperationError{Reason: "location still has items"}
	}

	res, err := s.db.Exec("DELETE FROM locations WHERE id = ?", id)
	if err != nil {
		return storageErr("delete location", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return locationNotFound(id)
	}

	logging.Store("Deleted location %s", id)
	return nil
}
