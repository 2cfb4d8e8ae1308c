package tui

import (
	"fmt"

	"helproom/internal/logging"
	"helproom/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// refreshedMsg carries a fresh read of everything the screen shows.
type refreshedMsg struct {
	items     []store.Item
	locations []store.Location
	summary   []store.LocationSummary
}

// storeErrMsg reports a failed store call. The view stays as it was.
type storeErrMsg struct {
	err error
}

// actionDoneMsg reports a successful write; a refresh follows it.
type actionDoneMsg struct {
	note string
}

// refreshCmd re-reads items (under the current filter), locations, and
// the summary. All reads happen in one command so the screen never mixes
// data from different points in time.
func (m Model) refreshCmd() tea.Cmd {
	query := store.ItemQuery{
		LocationID: m.currentLocationID(),
		Search:     m.search.Value(),
	}
	st := m.store
	lowStockOnly := m.lowStockOnly
	return func() tea.Msg {
		items, err := st.Items(query)
		if err != nil {
			return storeErrMsg{err}
		}
		locations, err := st.Locations()
		if err != nil {
			return storeErrMsg{err}
		}
		var summary []store.LocationSummary
		if lowStockOnly {
			summary, err = st.LowStockSummary()
		} else {
			summary, err = st.Summary()
		}
		if err != nil {
			return storeErrMsg{err}
		}
		logging.UIDebug("Refreshed view: %d items, %d locations", len(items), len(locations))
		return refreshedMsg{items: items, locations: locations, summary: summary}
	}
}

// adjustCountCmd bumps the selected item's count by delta.
func (m Model) adjustCountCmd(it store.Item, delta int) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		if err := st.AdjustCount(it.ID, delta); err != nil {
			return storeErrMsg{err}
		}
		return actionDoneMsg{note: fmt.Sprintf("%s: count %+d", it.Name, delta)}
	}
}

// deleteItemCmd removes an item after confirmation.
func (m Model) deleteItemCmd(it store.Item) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		if err := st.DeleteItem(it.ID); err != nil {
			return storeErrMsg{err}
		}
		return actionDoneMsg{note: fmt.Sprintf("Deleted %s", it.Name)}
	}
}

// addItemCmd inserts a new item from the form.
func (m Model) addItemCmd(draft store.ItemDraft) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		it, err := st.AddItem(draft)
		if err != nil {
			return storeErrMsg{err}
		}
		return actionDoneMsg{note: fmt.Sprintf("Added %s (count %d)", it.Name, it.Count)}
	}
}

// updateItemCmd applies an edit from the form.
func (m Model) updateItemCmd(id int64, draft store.ItemDraft) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		it, err := st.UpdateItem(id, draft)
		if err != nil {
			return storeErrMsg{err}
		}
		return actionDoneMsg{note: fmt.Sprintf("Updated %s", it.Name)}
	}
}

// deployCmd submits the deploy batch as one all-or-nothing action.
func (m Model) deployCmd(batch []store.Deployment) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		if err := st.Deploy(batch); err != nil {
			return storeErrMsg{err}
		}
		return actionDoneMsg{note: fmt.Sprintf("Deployed %d item type(s)", len(batch))}
	}
}

// addLocationCmd creates a new location from the location form.
func (m Model) addLocationCmd(name string) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		loc, err := st.AddLocation(name)
		if err != nil {
			return storeErrMsg{err}
		}
		return actionDoneMsg{note: fmt.Sprintf("Added location %s", loc.Name)}
	}
}
