// Package tui implements the interactive terminal interface for helproom.
// The functionality is split across files:
//   - model.go: Types, New, Init (this file)
//   - update.go: Update loop and key handling
//   - commands.go: Store calls wrapped as tea.Cmd
//   - forms.go: Add/edit item, deploy, and location forms
//   - view.go: Rendering
//
// The model holds a redisplay-only copy of store data: every successful
// write triggers a full re-read, and errors leave the displayed state
// untouched.
package tui

import (
	"helproom/cmd/helproom/ui"
	"helproom/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// viewMode determines which component is focused/active.
type viewMode int

const (
	browseView viewMode = iota
	itemFormView
	deployFormView
	locationFormView
	confirmView
)

// keyMap defines the key bindings for the browse view.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Search   key.Binding
	Location key.Binding
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Deploy   key.Binding
	AddLoc   key.Binding
	LowStock key.Binding
	Plus     key.Binding
	Minus    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Location: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next location")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit item")),
		Delete:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete item")),
		Deploy:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "deploy")),
		AddLoc:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "add location")),
		LowStock: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle low stock")),
		Plus:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "count +1")),
		Minus:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "count -1")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Add, k.Deploy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Search, k.Location},
		{k.Add, k.Edit, k.Delete, k.Deploy},
		{k.Plus, k.Minus, k.AddLoc, k.LowStock},
		{k.Help, k.Quit},
	}
}

// statusBanner is the one-line feedback area below the table.
type statusBanner struct {
	text  string
	isErr bool
}

// confirmState holds a pending destructive action awaiting y/n.
type confirmState struct {
	prompt  string
	confirm tea.Cmd
}

// Model is the main model for the interactive inventory interface.
type Model struct {
	store  *store.Store
	styles ui.Styles
	keys   keyMap
	help   help.Model

	// Browse view
	table         table.Model
	search        textinput.Model
	searchFocused bool
	locFilter     int // index into locations()+1; 0 means all

	// Redisplay-only copies of store data
	items     []store.Item
	locations []store.Location
	summary   []store.LocationSummary

	lowStockOnly bool // summary sidebar shows low-stock totals

	mode     viewMode
	itemForm *itemForm
	deploy   *deployForm
	locForm  *locationForm
	confirm  *confirmState

	status statusBanner
	width  int
	height int
	ready  bool
}

// New creates the TUI model over an opened store.
func New(st *store.Store, theme ui.Theme) Model {
	styles := ui.NewStyles(theme)

	search := textinput.New()
	search.Placeholder = "type to filter items"
	search.Prompt = "/ "
	search.CharLimit = 64

	columns := []table.Column{
		{Title: "Item", Width: 32},
		{Title: "Count", Width: 7},
		{Title: "Location", Width: 18},
		{Title: "Flags", Width: 10},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		Bold(true).
		Foreground(styles.Theme.Primary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Theme.Border).
		BorderBottom(true)
	tableStyles.Selected = styles.Selected
	tbl.SetStyles(tableStyles)

	return Model{
		store:  st,
		styles: styles,
		keys:   defaultKeyMap(),
		help:   help.New(),
		table:  tbl,
		search: search,
		mode:   browseView,
	}
}

// Init triggers the initial data load.
func (m Model) Init() tea.Cmd {
	return m.refreshCmd()
}

// selectedItem returns the item under the table cursor.
func (m Model) selectedItem() (store.Item, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return store.Item{}, false
	}
	return m.items[idx], true
}

// currentLocationID returns the active location filter, "" for all.
func (m Model) currentLocationID() string {
	if m.locFilter == 0 || m.locFilter > len(m.locations) {
		return ""
	}
	return m.locations[m.locFilter-1].ID
}
