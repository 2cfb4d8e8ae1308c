package store

import (
	"database/sql"
	"strings"

	"helproom/internal/logging"
)

// Item is a piece of tracked equipment living at exactly one location.
// LowCount is the optional low-stock threshold; nil means "warn at zero".
type Item struct {
	ID           int64
	Name         string
	Count        int
	Deployable   bool
	LowCount     *int
	LocationID   string
	LocationName string
}

// IsLowStock reports whether the item is at or below its low-stock
// threshold. Items without a threshold are low only when out of stock.
func (it Item) IsLowStock() bool {
	if it.LowCount != nil {
		return it.Count <= *it.LowCount
	}
	return it.Count == 0
}

// ItemDraft carries caller-supplied fields for AddItem and UpdateItem.
// Validation happens at the store boundary, not in the UI.
type ItemDraft struct {
	Name       string
	Count      int
	Deployable bool
	LowCount   *int
	LocationID string
}

// ItemQuery filters the item list. Zero value returns everything.
type ItemQuery struct {
	LocationID string // restrict to one location when non-empty
	Search     string // case-insensitive substring match on name
}

const itemColumns = `
	i.id, i.name, i.count, i.deployable, i.low_count,
	i.location_id, l.name AS location_name
`

func scanItem(row interface{ Scan(...interface{}) error }) (Item, error) {
	var it Item
	var deployable int
	var lowCount sql.NullInt64
	err := row.Scan(&it.ID, &it.Name, &it.Count, &deployable, &lowCount,
		&it.LocationID, &it.LocationName)
	if err != nil {
		return Item{}, err
	}
	it.Deployable = deployable != 0
	if lowCount.Valid {
		v := int(lowCount.Int64)
		it.LowCount = &v
	}
	return it, nil
}

// Items returns inventory items matching the query, ordered by name.
func (s *Store) Items(q ItemQuery) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT ` + itemColumns + `
		FROM items i
		JOIN locations l ON i.location_id = l.id
		WHERE 1=1
	`
	var params []interface{}

	if q.LocationID != "" {
		query += " AND i.location_id = ?"
		params = append(params, q.LocationID)
	}
	if q.Search != "" {
		query += " AND LOWER(i.name) LIKE LOWER(?)"
		params = append(params, "%"+q.Search+"%")
	}
	query += " ORDER BY i.name"

	rows, err := s.db.Query(query, params...)
	if err != nil {
		return nil, storageErr("list items", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, storageErr("list items", err)
		}
		items = append(items, it)
	}
	return items, storageErr("list items", rows.Err())
}

// Item looks up a single item by ID.
func (s *Store) Item(id int64) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemByID(id)
}

func (s *Store) itemByID(id int64) (Item, error) {
	row := s.db.QueryRow(`
		SELECT `+itemColumns+`
		FROM items i
		JOIN locations l ON i.location_id = l.id
		WHERE i.id = ?
	`, id)
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return Item{}, itemNotFound(id)
	}
	if err != nil {
		return Item{}, storageErr("get item", err)
	}
	return it, nil
}

func (s *Store) validateDraft(d *ItemDraft) error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return &ValidationError{Reason: "item name must not be empty"}
	}
	if d.Count < 0 {
		return &ValidationError{Reason: "count must not be negative"}
	}
	if d.LowCount != nil && *d.LowCount < 0 {
		return &ValidationError{Reason: "low-stock threshold must not be negative"}
	}
	if _, err := s.locationByID(d.LocationID); err != nil {
		if _, ok := err.(*NotFoundError); ok {
			return &ValidationError{Reason: "unknown location " + d.LocationID}
		}
		return err
	}
	return nil
}

// AddItem inserts a new item and returns it with its assigned ID.
func (s *Store) AddItem(d ItemDraft) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validateDraft(&d); err != nil {
		return Item{}, err
	}

	res, err := s.db.Exec(`
		INSERT INTO items (name, count, deployable, low_count, location_id)
		VALUES (?, ?, ?, ?, ?)
	`, d.Name, d.Count, boolToInt(d.Deployable), nullableInt(d.LowCount), d.LocationID)
	if err != nil {
		return Item{}, storageErr("add item", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Item{}, storageErr("add item", err)
	}

	logging.Store("Added item %q (id=%d, count=%d, location=%s)", d.Name, id, d.Count, d.LocationID)
	return s.itemByID(id)
}

// UpdateItem replaces an item's fields. The count passes through the same
// validation as AddItem, so an edit can never store a negative count.
func (s *Store) UpdateItem(id int64, d ItemDraft) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validateDraft(&d); err != nil {
		return Item{}, err
	}

	res, err := s.db.Exec(`
		UPDATE items
		SET name = ?, count = ?, deployable = ?, low_count = ?, location_id = ?
		WHERE id = ?
	`, d.Name, d.Count, boolToInt(d.Deployable), nullableInt(d.LowCount), d.LocationID, id)
	if err != nil {
		return Item{}, storageErr("update item", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Item{}, itemNotFound(id)
	}

	logging.StoreDebug("Updated item %d", id)
	return s.itemByID(id)
}

// DeleteItem removes an item. Deleting an already-deleted item fails with
// NotFoundError; deletion is not idempotent.
func (s *Store) DeleteItem(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return storageErr("delete item", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return itemNotFound(id)
	}

	logging.Store("Deleted item %d", id)
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
