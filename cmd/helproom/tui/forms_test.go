package tui

import (
	"strings"
	"testing"

	"helproom/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func testLocations() []store.Location {
	return []store.Location{
		{ID: "helpdesk", Name: "Help Desk"},
		{ID: "storage", Name: "Storage Room"},
	}
}

func TestItemFormDraft(t *testing.T) {
	f := newItemForm(nil, testLocations(), "storage")
	f.name.SetValue("Trackball")
	f.count.SetValue("12")
	f.lowCount.SetValue("3")

	draft, err := f.draft()
	if err != nil {
		t.Fatalf("draft failed: %v", err)
	}

	if draft.Name != "Trackball" || draft.Count != 12 {
		t.Errorf("draft = %+v", draft)
	}
	if draft.LowCount == nil || *draft.LowCount != 3 {
		t.Errorf("LowCount = %v, want 3", draft.LowCount)
	}
	if draft.LocationID != "storage" {
		t.Errorf("LocationID = %q, want default storage", draft.LocationID)
	}
}

func TestItemFormDraftParsesBlankCountAsZero(t *testing.T) {
	f := newItemForm(nil, testLocations(), "")
	f.name.SetValue("Stand")

	draft, err := f.draft()
	if err != nil {
		t.Fatalf("draft failed: %v", err)
	}
	if draft.Count != 0 {
		t.Errorf("Count = %d, want 0", draft.Count)
	}
	if draft.LowCount != nil {
		t.Errorf("Blank threshold should stay nil, got %v", draft.LowCount)
	}
}

func TestItemFormDraftRejectsNonNumericInput(t *testing.T) {
	f := newItemForm(nil, testLocations(), "")
	f.name.SetValue("Stand")
	f.count.SetValue("a few")

	if _, err := f.draft(); err == nil {
		t.Error("Non-numeric count should be rejected before reaching the store")
	}

	f.count.SetValue("4")
	f.lowCount.SetValue("some")
	if _, err := f.draft(); err == nil {
		t.Error("Non-numeric threshold should be rejected before reaching the store")
	}
}

func TestItemFormDraftWithoutLocations(t *testing.T) {
	f := newItemForm(nil, nil, "")
	f.name.SetValue("Orphan")

	if _, err := f.draft(); err == nil {
		t.Error("draft should fail when no locations exist")
	}
}

func TestItemFormPrefillsForEdit(t *testing.T) {
	low := 2
	editing := &store.Item{
		ID: 7, Name: "Webcam", Count: 4, Deployable: false,
		LowCount: &low, LocationID: "storage",
	}
	f := newItemForm(editing, testLocations(), "")

	if f.name.Value() != "Webcam" || f.count.Value() != "4" || f.lowCount.Value() != "2" {
		t.Errorf("Form not prefilled: name=%q count=%q low=%q",
			f.name.Value(), f.count.Value(), f.lowCount.Value())
	}
	if f.deployable {
		t.Error("Deployable flag should match the edited item")
	}
	if f.locations[f.locIdx].ID != "storage" {
		t.Error("Location selector should start on the item's location")
	}
	if !strings.Contains(f.title(), "Edit") {
		t.Errorf("title = %q", f.title())
	}
}

func TestItemFormFocusCycles(t *testing.T) {
	f := newItemForm(nil, testLocations(), "")

	down := tea.KeyMsg{Type: tea.KeyTab}
	for i := 0; i < fieldMax; i++ {
		if f.focus != i {
			t.Fatalf("focus = %d after %d tabs, want %d", f.focus, i, i)
		}
		f.update(down)
	}
	if f.focus != fieldName {
		t.Errorf("focus should wrap to the name field, got %d", f.focus)
	}
}

func TestItemFormTogglesAndSelectors(t *testing.T) {
	f := newItemForm(nil, testLocations(), "")

	f.setFocus(fieldDeployable)
	before := f.deployable
	f.update(tea.KeyMsg{Type: tea.KeySpace})
	if f.deployable == before {
		t.Error("Space should toggle the deployable flag")
	}

	f.setFocus(fieldLocation)
	start := f.locIdx
	f.update(tea.KeyMsg{Type: tea.KeyRight})
	if f.locIdx == start {
		t.Error("Right should cycle the location selector")
	}
	f.update(tea.KeyMsg{Type: tea.KeyLeft})
	if f.locIdx != start {
		t.Error("Left should cycle back")
	}
}

func TestDeployFormKeepsDeployableItemsOnly(t *testing.T) {
	items := []store.Item{
		{ID: 1, Name: "Mouse", Count: 5, Deployable: true},
		{ID: 2, Name: "Rack", Count: 2, Deployable: false},
		{ID: 3, Name: "Keyboard", Count: 3, Deployable: true},
	}
	f := newDeployForm(items)

	if len(f.items) != 2 {
		t.Fatalf("Deploy form lists %d items, want 2 deployable", len(f.items))
	}
	for _, it := range f.items {
		if !it.Deployable {
			t.Errorf("Non-deployable item %q offered for deploy", it.Name)
		}
	}
}

func TestDeployFormBatch(t *testing.T) {
	items := []store.Item{
		{ID: 1, Name: "Mouse", Count: 5, Deployable: true},
		{ID: 2, Name: "Keyboard", Count: 3, Deployable: true},
	}
	f := newDeployForm(items)

	// Two units of the first item, none of the second.
	f.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	f.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})

	batch := f.batch()
	if len(batch) != 1 {
		t.Fatalf("batch has %d lines, want 1", len(batch))
	}
	if batch[0].ItemID != 1 || batch[0].Quantity != 2 {
		t.Errorf("batch[0] = %+v, want item 1 qty 2", batch[0])
	}
}

func TestDeployFormQuantityFloorsAtZero(t *testing.T) {
	items := []store.Item{{ID: 1, Name: "Mouse", Count: 5, Deployable: true}}
	f := newDeployForm(items)

	f.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	if f.qty[1] != 0 {
		t.Errorf("qty = %d, want floor at 0", f.qty[1])
	}
	if len(f.batch()) != 0 {
		t.Error("Zero quantities should not appear in the batch")
	}
}
