package store

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSummaryIncludesEmptyLocations(t *testing.T) {
	s := newTestStore(t)

	occupied, err := s.AddLocation("Shelf A")
	if err != nil {
		t.Fatalf("AddLocation failed: %v", err)
	}
	empty, err := s.AddLocation("Shelf B")
	if err != nil {
		t.Fatalf("AddLocation failed: %v", err)
	}

	if _, err := s.AddItem(ItemDraft{Name: "Switch", Count: 4, LocationID: occupied.ID}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := s.AddItem(ItemDraft{Name: "Router", Count: 6, LocationID: occupied.ID}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	summary, err := s.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	want := []LocationSummary{
		{ID: occupied.ID, Name: "Shelf A", ItemCount: 2, TotalCount: 10},
		{ID: empty.ID, Name: "Shelf B", ItemCount: 0, TotalCount: 0},
	}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Errorf("Summary mismatch (-want +got):\n%s", diff)
	}
}

func TestLowStock(t *testing.T) {
	s := newTestStore(t)

	loc, err := s.AddLocation("Shelf")
	if err != nil {
		t.Fatalf("AddLocation failed: %v", err)
	}

	// Thresholded item at its threshold: low.
	if _, err := s.AddItem(ItemDraft{Name: "HDMI Cable", Count: 2, LowCount: intPtr(2), LocationID: loc.ID}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	// Thresholded item above its threshold: fine.
	if _, err := s.AddItem(ItemDraft{Name: "Power Brick", Count: 9, LowCount: intPtr(3), LocationID: loc.ID}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	// No threshold, in stock: fine.
	if _, err := s.AddItem(ItemDraft{Name: "Mouse Pad", Count: 1, LocationID: loc.ID}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	// No threshold, out of stock: low.
	if _, err := s.AddItem(ItemDraft{Name: "Stylus", Count: 0, LocationID: loc.ID}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	low, err := s.LowStock()
	if err != nil {
		t.Fatalf("LowStock failed: %v", err)
	}

	var names []string
	for _, it := range low {
		names = append(names, it.Name)
	}
	want := []string{"HDMI Cable", "Stylus"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("LowStock mismatch (-want +got):\n%s", diff)
	}
}

func TestLowStockSummaryOmitsHealthyLocations(t *testing.T) {
	s := newTestStore(t)

	lowLoc, err := s.AddLocation("Depleted Corner")
	if err != nil {
		t.Fatalf("AddLocation failed: %v", err)
	}
	okLoc, err := s.AddLocation("Full Shelf")
	if err != nil {
		t.Fatalf("AddLocation failed: %v", err)
	}

	if _, err := s.AddItem(ItemDraft{Name: "Toner", Count: 0, LocationID: lowLoc.ID}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := s.AddItem(ItemDraft{Name: "Drum Unit", Count: 1, LowCount: intPtr(5), LocationID: lowLoc.ID}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := s.AddItem(ItemDraft{Name: "Paper", Count: 500, LocationID: okLoc.ID}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	summary, err := s.LowStockSummary()
	if err != nil {
		t.Fatalf("LowStockSummary failed: %v", err)
	}

	want := []LocationSummary{
		{ID: lowLoc.ID, Name: "Depleted Corner", ItemCount: 2, TotalCount: 1},
	}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Errorf("LowStockSummary mismatch (-want +got):\n%s", diff)
	}
}
