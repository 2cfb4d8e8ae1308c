package tui

import (
	"fmt"
	"strconv"
	"strings"

	"helproom/internal/logging"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages for the inventory interface.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(maxInt(6, msg.Height-12))
		m.ready = true
		return m, nil

	case refreshedMsg:
		m.items = msg.items
		m.locations = msg.locations
		m.summary = msg.summary
		if m.locFilter > len(m.locations) {
			m.locFilter = 0
		}
		m.table.SetRows(m.itemRows())
		if cursor := m.table.Cursor(); cursor >= len(m.items) && len(m.items) > 0 {
			m.table.SetCursor(len(m.items) - 1)
		}
		return m, nil

	case storeErrMsg:
		// The failed action is simply reported; displayed state and the
		// database are both unchanged, and the user may retry.
		logging.UIDebug("Store error surfaced: %v", msg.err)
		m.status = statusBanner{text: msg.err.Error(), isErr: true}
		return m, nil

	case actionDoneMsg:
		m.status = statusBanner{text: msg.note}
		m.mode = browseView
		m.itemForm = nil
		m.deploy = nil
		m.locForm = nil
		m.confirm = nil
		return m, m.refreshCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case confirmView:
		return m.handleConfirmKey(msg)
	case itemFormView:
		return m.handleItemFormKey(msg)
	case deployFormView:
		return m.handleDeployKey(msg)
	case locationFormView:
		return m.handleLocationFormKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		cmd := m.confirm.confirm
		m.confirm = nil
		m.mode = browseView
		return m, cmd
	case "n", "N", "esc":
		m.confirm = nil
		m.mode = browseView
		m.status = statusBanner{text: "Cancelled"}
	}
	return m, nil
}

func (m Model) handleItemFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.itemForm = nil
		m.mode = browseView
		return m, nil
	case "enter":
		draft, err := m.itemForm.draft()
		if err != nil {
			m.status = statusBanner{text: err.Error(), isErr: true}
			return m, nil
		}
		if m.itemForm.editing != nil {
			return m, m.updateItemCmd(m.itemForm.editing.ID, draft)
		}
		return m, m.addItemCmd(draft)
	}
	return m, m.itemForm.update(msg)
}

func (m Model) handleDeployKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.deploy = nil
		m.mode = browseView
		return m, nil
	case "enter":
		batch := m.deploy.batch()
		if len(batch) == 0 {
			m.status = statusBanner{text: "Nothing selected to deploy", isErr: true}
			return m, nil
		}
		return m, m.deployCmd(batch)
	}
	m.deploy.update(msg)
	return m, nil
}

func (m Model) handleLocationFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.locForm = nil
		m.mode = browseView
		return m, nil
	case "enter":
		return m, m.addLocationCmd(m.locForm.name.Value())
	}
	var cmd tea.Cmd
	m.locForm.name, cmd = m.locForm.name.Update(msg)
	return m, cmd
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the search box has focus, most keys are text entry; each
	// keystroke narrows the table immediately.
	if m.searchFocused {
		switch msg.String() {
		case "esc":
			m.searchFocused = false
			m.search.Blur()
			m.search.SetValue("")
			return m, m.refreshCmd()
		case "enter":
			m.searchFocused = false
			m.search.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, tea.Batch(cmd, m.refreshCmd())
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		logging.UI("User quit")
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searchFocused = true
		m.search.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Location):
		m.locFilter = (m.locFilter + 1) % (len(m.locations) + 1)
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.LowStock):
		m.lowStockOnly = !m.lowStockOnly
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.Add):
		m.itemForm = newItemForm(nil, m.locations, m.currentLocationID())
		m.mode = itemFormView
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if it, ok := m.selectedItem(); ok {
			item := it
			m.itemForm = newItemForm(&item, m.locations, item.LocationID)
			m.mode = itemFormView
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.selectedItem(); ok {
			m.confirm = &confirmState{
				prompt:  fmt.Sprintf("Delete %q from %s? (y/n)", it.Name, it.LocationName),
				confirm: m.deleteItemCmd(it),
			}
			m.mode = confirmView
		}
		return m, nil

	case key.Matches(msg, m.keys.Deploy):
		m.deploy = newDeployForm(m.items)
		if len(m.deploy.items) == 0 {
			m.deploy = nil
			m.status = statusBanner{text: "No deployable items in view", isErr: true}
			return m, nil
		}
		m.mode = deployFormView
		return m, nil

	case key.Matches(msg, m.keys.AddLoc):
		m.locForm = newLocationForm()
		m.mode = locationFormView
		return m, nil

	case key.Matches(msg, m.keys.Plus):
		if it, ok := m.selectedItem(); ok {
			return m, m.adjustCountCmd(it, +1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Minus):
		if it, ok := m.selectedItem(); ok {
			return m, m.adjustCountCmd(it, -1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// itemRows converts the current item slice into table rows.
func (m Model) itemRows() []table.Row {
	rows := make([]table.Row, 0, len(m.items))
	for _, it := range m.items {
		var flags []string
		if it.Deployable {
			flags = append(flags, "deploy")
		}
		if it.IsLowStock() {
			flags = append(flags, "LOW")
		}
		rows = append(rows, table.Row{
			it.Name,
			strconv.Itoa(it.Count),
			it.LocationName,
			strings.Join(flags, " "),
		})
	}
	return rows
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
