package tui

import (
	"fmt"
	"strconv"
	"strings"

	"helproom/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Form field indexes for the item form.
const (
	fieldName = iota
	fieldCount
	fieldLowCount
	fieldLocation
	fieldDeployable
	fieldMax
)

// itemForm collects input for adding or editing an item. Text fields are
// textinputs; location is a cycling selector and deployable a toggle.
type itemForm struct {
	editing    *store.Item // nil when adding
	name       textinput.Model
	count      textinput.Model
	lowCount   textinput.Model
	locations  []store.Location
	locIdx     int
	deployable bool
	focus      int
}

func newItemForm(editing *store.Item, locations []store.Location, defaultLoc string) *itemForm {
	name := textinput.New()
	name.Placeholder = "item name"
	name.CharLimit = 64
	name.Focus()

	count := textinput.New()
	count.Placeholder = "0"
	count.CharLimit = 6

	lowCount := textinput.New()
	lowCount.Placeholder = "none"
	lowCount.CharLimit = 6

	f := &itemForm{
		editing:    editing,
		name:       name,
		count:      count,
		lowCount:   lowCount,
		locations:  locations,
		deployable: true,
	}

	for i, loc := range locations {
		if loc.ID == defaultLoc {
			f.locIdx = i
		}
	}

	if editing != nil {
		f.name.SetValue(editing.Name)
		f.count.SetValue(strconv.Itoa(editing.Count))
		if editing.LowCount != nil {
			f.lowCount.SetValue(strconv.Itoa(*editing.LowCount))
		}
		f.deployable = editing.Deployable
		for i, loc := range locations {
			if loc.ID == editing.LocationID {
				f.locIdx = i
			}
		}
	}

	return f
}

func (f *itemForm) title() string {
	if f.editing != nil {
		return "Edit Item"
	}
	return "Add Item"
}

func (f *itemForm) setFocus(idx int) {
	f.focus = idx
	f.name.Blur()
	f.count.Blur()
	f.lowCount.Blur()
	switch idx {
	case fieldName:
		f.name.Focus()
	case fieldCount:
		f.count.Focus()
	case fieldLowCount:
		f.lowCount.Focus()
	}
}

// draft converts form contents to a store draft. Numeric parsing happens
// here so typos surface as a banner message without touching the store.
func (f *itemForm) draft() (store.ItemDraft, error) {
	var d store.ItemDraft
	d.Name = strings.TrimSpace(f.name.Value())
	d.Deployable = f.deployable

	countText := strings.TrimSpace(f.count.Value())
	if countText == "" {
		countText = "0"
	}
	count, err := strconv.Atoi(countText)
	if err != nil {
		return d, fmt.Errorf("count must be a whole number")
	}
	d.Count = count

	if lowText := strings.TrimSpace(f.lowCount.Value()); lowText != "" {
		low, err := strconv.Atoi(lowText)
		if err != nil {
			return d, fmt.Errorf("low-stock threshold must be a whole number")
		}
		d.LowCount = &low
	}

	if len(f.locations) == 0 {
		return d, fmt.Errorf("no locations exist yet")
	}
	d.LocationID = f.locations[f.locIdx].ID
	return d, nil
}

// update handles a key message while the item form is active.
func (f *itemForm) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "shift+tab":
		f.setFocus((f.focus + fieldMax - 1) % fieldMax)
		return nil
	case "down", "tab":
		f.setFocus((f.focus + 1) % fieldMax)
		return nil
	}

	switch f.focus {
	case fieldLocation:
		switch msg.String() {
		case "left", "h":
			if len(f.locations) > 0 {
				f.locIdx = (f.locIdx + len(f.locations) - 1) % len(f.locations)
			}
		case "right", "l", " ":
			if len(f.locations) > 0 {
				f.locIdx = (f.locIdx + 1) % len(f.locations)
			}
		}
		return nil
	case fieldDeployable:
		if msg.String() == " " || msg.String() == "left" || msg.String() == "right" {
			f.deployable = !f.deployable
		}
		return nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldCount:
		f.count, cmd = f.count.Update(msg)
	case fieldLowCount:
		f.lowCount, cmd = f.lowCount.Update(msg)
	}
	return cmd
}

// deployForm collects quantities for a bulk deploy batch.
type deployForm struct {
	items  []store.Item // deployable items only
	qty    map[int64]int
	cursor int
}

func newDeployForm(items []store.Item) *deployForm {
	var deployable []store.Item
	for _, it := range items {
		if it.Deployable {
			deployable = append(deployable, it)
		}
	}
	return &deployForm{
		items: deployable,
		qty:   make(map[int64]int),
	}
}

func (f *deployForm) update(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "k":
		if f.cursor > 0 {
			f.cursor--
		}
	case "down", "j":
		if f.cursor < len(f.items)-1 {
			f.cursor++
		}
	case "+", "=", "right", " ":
		if f.cursor < len(f.items) {
			f.qty[f.items[f.cursor].ID]++
		}
	case "-", "left":
		if f.cursor < len(f.items) {
			id := f.items[f.cursor].ID
			if f.qty[id] > 0 {
				f.qty[id]--
			}
		}
	}
}

// batch returns the non-zero lines in a stable order.
func (f *deployForm) batch() []store.Deployment {
	var batch []store.Deployment
	for _, it := range f.items {
		if q := f.qty[it.ID]; q > 0 {
			batch = append(batch, store.Deployment{ItemID: it.ID, Quantity: q})
		}
	}
	return batch
}

// locationForm is the single-field add-location prompt.
type locationForm struct {
	name textinput.Model
}

func newLocationForm() *locationForm {
	name := textinput.New()
	name.Placeholder = "location name"
	name.CharLimit = 64
	name.Focus()
	return &locationForm{name: name}
}
