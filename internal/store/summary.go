package store

import "sort"

// LocationSummary aggregates the items stored at one location.
type LocationSummary struct {
	ID         string
	Name       string
	ItemCount  int
	TotalCount int
}

// Summary returns per-location item and stock totals, including
// locations that currently hold nothing.
func (s *Store) Summary() ([]LocationSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT
			l.id,
			l.name,
			COUNT(i.id) AS item_count,
			COALESCE(SUM(i.count), 0) AS total_count
		FROM locations l
		LEFT JOIN items i ON l.id = i.location_id
		GROUP BY l.id, l.name
		ORDER BY l.name
	`)
	if err != nil {
		return nil, storageErr("summary", err)
	}
	defer rows.Close()

	var summary []LocationSummary
	for rows.Next() {
		var ls LocationSummary
		if err := rows.Scan(&ls.ID, &ls.Name, &ls.ItemCount, &ls.TotalCount); err != nil {
			return nil, storageErr("summary", err)
		}
		summary = append(summary, ls)
	}
	return summary, storageErr("summary", rows.Err())
}

// LowStock returns items at or below their low-stock threshold. Items
// without a threshold are reported only when fully out of stock.
func (s *Store) LowStock() ([]Item, error) {
	items, err := s.Items(ItemQuery{})
	if err != nil {
		return nil, err
	}

	var low []Item
	for _, it := range items {
		if it.IsLowStock() {
			low = append(low, it)
		}
	}
	return low, nil
}

// LowStockSummary aggregates low-stock items per location. Locations
// with no low-stock items are omitted.
func (s *Store) LowStockSummary() ([]LocationSummary, error) {
	low, err := s.LowStock()
	if err != nil {
		return nil, err
	}

	byLocation := make(map[string]*LocationSummary)
	var order []string
	for _, it := range low {
		ls, ok := byLocation[it.LocationID]
		if !ok {
			ls = &LocationSummary{ID: it.LocationID, Name: it.LocationName}
			byLocation[it.LocationID] = ls
			order = append(order, it.LocationID)
		}
		ls.ItemCount++
		ls.TotalCount += it.Count
	}

	summary := make([]LocationSummary, 0, len(order))
	for _, id := range order {
		summary = append(summary, *byLocation[id])
	}
	sort.Slice(summary, func(i, j int) bool { return summary[i].Name < summary[j].Name })
	return summary, nil
}

