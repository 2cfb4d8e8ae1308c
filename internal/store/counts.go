package store

import (
	"fmt"
	"sort"

	"helproom/internal/logging"
)

// Deployment is one line of a deploy batch: take Quantity units of ItemID.
type Deployment struct {
	ItemID   int64
	Quantity int
}

// SetCount stores an absolute count for an item.
func (s *Store) SetCount(id int64, count int) error {
	if count < 0 {
		return &ValidationError{Reason: "count must not be negative"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE items SET count = ? WHERE id = ?", count, id)
	if err != nil {
		return storageErr("set count", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return itemNotFound(id)
	}

	logging.StoreDebug("Set count of item %d to %d", id, count)
	return nil
}

// AdjustCount applies a delta to an item's count. A delta that would take
// the count below zero is refused outright; the stored count is unchanged.
func (s *Store) AdjustCount(id int64, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"UPDATE items SET count = count + ? WHERE id = ? AND count + ? >= 0",
		delta, id, delta,
	)
	if err != nil {
		return storageErr("adjust count", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		logging.StoreDebug("Adjusted count of item %d by %+d", id, delta)
		return nil
	}

	// Either the item is gone or the delta would go negative.
	it, err := s.itemByID(id)
	if err != nil {
		return err
	}
	return &InvalidOperationError{
		ItemID: id,
		Name:   it.Name,
		Reason: fmt.Sprintf("count %d cannot absorb %+d", it.Count, delta),
	}
}

// Deploy decrements several item counts in a single transaction,
// representing equipment consumed when provisioning a machine. The batch
// is all-or-nothing: if any line would drive a count negative, or names a
// missing or non-deployable item, nothing changes and the error says
// which item was at fault.
func (s *Store) Deploy(batch []Deployment) error {
	if len(batch) == 0 {
		return &ValidationError{Reason: "deploy batch is empty"}
	}
	for _, d := range batch {
		if d.Quantity <= 0 {
			return &ValidationError{Reason: fmt.Sprintf("quantity for item %d must be positive", d.ItemID)}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Deterministic order keeps the failure report stable when several
	// lines would fail.
	sorted := make([]Deployment, len(batch))
	copy(sorted, batch)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ItemID < sorted[j].ItemID })

	tx, err := s.db.Begin()
	if err != nil {
		return storageErr("deploy", err)
	}
	defer tx.Rollback()

	for _, d := range sorted {
		res, err := tx.Exec(
			"UPDATE items SET count = count - ? WHERE id = ? AND deployable = 1 AND count >= ?",
			d.Quantity, d.ItemID, d.Quantity,
		)
		if err != nil {
			return storageErr("deploy", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			continue
		}

		// Figure out which way this line failed. Reads go through the tx
		// so the diagnosis matches the state the update saw.
		var name string
		var count, deployable int
		row := tx.QueryRow("SELECT name, count, deployable FROM items WHERE id = ?", d.ItemID)
		if scanErr := row.Scan(&name, &count, &deployable); scanErr != nil {
			return itemNotFound(d.ItemID)
		}
		reason := fmt.Sprintf("only %d in stock, need %d", count, d.Quantity)
		if deployable == 0 {
			reason = "item is not deployable"
		}
		return &InvalidOperationError{ItemID: d.ItemID, Name: name, Reason: reason}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("deploy", err)
	}

	logging.Deploy("Deployed %d item(s)", len(batch))
	return nil
}
