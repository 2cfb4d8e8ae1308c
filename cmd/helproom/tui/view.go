package tui

import (
	"fmt"
	"strconv"
	"strings"

	"helproom/cmd/helproom/ui"

	"github.com/charmbracelet/lipgloss"
)

// View renders the whole interface.
func (m Model) View() string {
	if !m.ready {
		return "Loading inventory..."
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("IT Help Room Inventory"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Track and manage IT equipment across all locations"))
	b.WriteString("\n\n")

	switch m.mode {
	case itemFormView:
		b.WriteString(m.itemFormView())
	case deployFormView:
		b.WriteString(m.deployView())
	case locationFormView:
		b.WriteString(m.locationFormView())
	case confirmView:
		b.WriteString(m.browseBody())
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render(m.confirm.prompt))
	default:
		b.WriteString(m.browseBody())
	}

	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) browseBody() string {
	var left strings.Builder

	left.WriteString(m.filterLine())
	left.WriteString("\n")
	left.WriteString(m.table.View())

	return lipgloss.JoinHorizontal(lipgloss.Top,
		left.String(),
		m.styles.Sidebar.Render(m.summaryView()),
	)
}

func (m Model) filterLine() string {
	locName := "All Locations"
	if id := m.currentLocationID(); id != "" {
		for _, loc := range m.locations {
			if loc.ID == id {
				locName = loc.Name
			}
		}
	}

	search := m.search.View()
	if !m.searchFocused && m.search.Value() == "" {
		search = m.styles.Muted.Render("/ to search")
	}

	return search + "   " + m.styles.Badge.Render(locName)
}

func (m Model) summaryView() string {
	title := "Totals by Location"
	if m.lowStockOnly {
		title = "Low Stock by Location"
	}

	tbl := ui.NewSimpleTable(title, []string{"Location", "Items", "Units"})
	for _, ls := range m.summary {
		tbl.AddRow(ls.Name, strconv.Itoa(ls.ItemCount), strconv.Itoa(ls.TotalCount))
	}
	if view := tbl.View(m.styles); view != "" {
		return view
	}
	if m.lowStockOnly {
		return m.styles.Title.Render(title) + "\n" + m.styles.Muted.Render("Nothing is running low.")
	}
	return m.styles.Muted.Render("No locations yet.")
}

func (m Model) itemFormView() string {
	f := m.itemForm

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(f.title()))
	b.WriteString("\n\n")

	b.WriteString(m.formRow("Name", f.name.View(), f.focus == fieldName))
	b.WriteString(m.formRow("Count", f.count.View(), f.focus == fieldCount))
	b.WriteString(m.formRow("Low at", f.lowCount.View(), f.focus == fieldLowCount))

	locName := "(no locations)"
	if len(f.locations) > 0 {
		locName = "< " + f.locations[f.locIdx].Name + " >"
	}
	b.WriteString(m.formRow("Location", locName, f.focus == fieldLocation))

	deployable := "[ ] no"
	if f.deployable {
		deployable = "[x] yes"
	}
	b.WriteString(m.formRow("Deployable", deployable, f.focus == fieldDeployable))

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("tab/↑↓ move · space toggles · enter saves · esc cancels"))
	return m.styles.Card.Render(b.String())
}

func (m Model) formRow(label, value string, focused bool) string {
	marker := "  "
	if focused {
		marker = m.styles.Bold.Render("> ")
	}
	return marker + m.styles.FormLabel.Render(label) + value + "\n"
}

func (m Model) deployView() string {
	f := m.deploy

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Deploy a Computer"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Pick quantities to subtract; the batch applies all-or-nothing."))
	b.WriteString("\n\n")

	for i, it := range f.items {
		line := fmt.Sprintf("%-32s  stock %3d   take %2d", it.Name, it.Count, f.qty[it.ID])
		if i == f.cursor {
			line = m.styles.Selected.Render(line)
		}
		b.WriteString("  " + line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("↑↓ move · +/- adjust · enter deploys · esc cancels"))
	return m.styles.Card.Render(b.String())
}

func (m Model) locationFormView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Add Location"))
	b.WriteString("\n\n")
	b.WriteString("  " + m.locForm.name.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("enter saves · esc cancels"))
	return m.styles.Card.Render(b.String())
}

func (m Model) statusView() string {
	if m.status.text == "" {
		return ""
	}
	if m.status.isErr {
		return m.styles.Error.Render("✗ " + m.status.text)
	}
	return m.styles.Success.Render("✓ " + m.status.text)
}
