package store

import "helproom/internal/logging"

// seedLocations are the fixed locations installed on first run.
var seedLocations = []Location{
	{ID: "helpdesk", Name: "Help Desk"},
	{ID: "storage", Name: "Storage Room"},
	{ID: "lab1", Name: "Computer Lab 1"},
	{ID: "lab2", Name: "Computer Lab 2"},
	{ID: "server", Name: "Server Room"},
}

// seedItems are the sample items installed on first run. All seeded items
// are deployable with no low-stock threshold.
var seedItems = []struct {
	Name       string
	Count      int
	LocationID string
}{
	{"Wireless Mouse", 15, "helpdesk"},
	{"USB Keyboard", 12, "helpdesk"},
	{"HDMI Cable (6ft)", 8, "helpdesk"},
	{"USB-C Charger", 10, "helpdesk"},
	{"Laptop Bag", 5, "helpdesk"},

	{"Dell Monitor 24\"", 20, "storage"},
	{"HP Monitor 27\"", 15, "storage"},
	{"Ethernet Cable (25ft)", 30, "storage"},
	{"Power Strip 6-outlet", 18, "storage"},
	{"Extension Cord", 12, "storage"},

	{"Wireless Adapter", 25, "lab1"},
	{"Webcam HD", 8, "lab1"},
	{"Headset with Microphone", 10, "lab1"},
	{"USB Hub 4-port", 6, "lab1"},

	{"VGA Cable", 14, "lab2"},
	{"DVI Cable", 10, "lab2"},
	{"Display Port Cable", 8, "lab2"},
	{"Laptop Stand", 12, "lab2"},

	{"Cat6 Ethernet Cable (3ft)", 50, "server"},
	{"Network Switch 24-port", 4, "server"},
	{"Rack Mount Kit", 6, "server"},
	{"UPS Battery Backup", 8, "server"},
	{"Server Rails", 10, "server"},
}

// SeedIfEmpty installs the sample locations and items when the store has
// never been populated. Existing data is never touched, so calling this
// on every startup is safe.
func (s *Store) SeedIfEmpty() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM locations").Scan(&existing); err != nil {
		return storageErr("seed", err)
	}
	if existing > 0 {
		logging.StoreDebug("Seed skipped: %d location(s) already present", existing)
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return storageErr("seed", err)
	}
	defer tx.Rollback()

	for _, loc := range seedLocations {
		if _, err := tx.Exec("INSERT INTO locations (id, name) VALUES (?, ?)", loc.ID, loc.Name); err != nil {
			return storageErr("seed", err)
		}
	}
	for _, it := range seedItems {
		_, err := tx.Exec(`
			INSERT INTO items (name, count, deployable, low_count, location_id)
			VALUES (?, ?, 1, NULL, ?)
		`, it.Name, it.Count, it.LocationID)
		if err != nil {
			return storageErr("seed", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("seed", err)
	}

	logging.Store("Seeded %d locations and %d items", len(seedLocations), len(seedItems))
	return nil
}
