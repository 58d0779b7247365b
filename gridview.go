package gridkit

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

// unitsPerCell converts engine layout units to terminal cells. The
// engine speaks the same units as the web reference (a 50-unit resize
// floor); the terminal renders at a tenth of that.
const unitsPerCell = 10

// KeyMap defines the key bindings for GridView. Bindings follow the
// bubbles/key convention so help text comes for free.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	PrevPage     key.Binding
	NextPage     key.Binding
	PrevCol      key.Binding
	NextCol      key.Binding
	SortCol      key.Binding
	GrowCol      key.Binding
	ShrinkCol    key.Binding
	MoveColLeft  key.Binding
	MoveColRight key.Binding
	HideCol      key.Binding
	ToggleSelect key.Binding
	SelectAll    key.Binding
	ClearSel     key.Binding
	Filter       key.Binding
	Enter        key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevPage:     key.NewBinding(key.WithKeys("left", "pgup"), key.WithHelp("←", "prev page")),
		NextPage:     key.NewBinding(key.WithKeys("right", "pgdown"), key.WithHelp("→", "next page")),
		PrevCol:      key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "prev column")),
		NextCol:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "next column")),
		SortCol:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		GrowCol:      key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "widen column")),
		ShrinkCol:    key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "narrow column")),
		MoveColLeft:  key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "move column left")),
		MoveColRight: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "move column right")),
		HideCol:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hide column")),
		ToggleSelect: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select row")),
		SelectAll:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all visible")),
		ClearSel:     key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "clear selection")),
		Filter:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Enter:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open row")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Styles collects the lipgloss styles GridView renders with.
type Styles struct {
	Header     lipgloss.Style
	HeaderCur  lipgloss.Style
	Row        lipgloss.Style
	RowCursor  lipgloss.Style
	RowChecked lipgloss.Style
	Filter     lipgloss.Style
	Footer     lipgloss.Style
	ActionBar  lipgloss.Style
	Confirm    lipgloss.Style
}

// DefaultStyles returns the standard look.
func DefaultStyles() Styles {
	return Styles{
		Header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8")),
		HeaderCur:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")),
		Row:        lipgloss.NewStyle(),
		RowCursor:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")),
		RowChecked: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Filter:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Footer:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		ActionBar:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Confirm:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

// GridView is a bubbletea component over a Grid. It renders the
// materialized window with a header, checkbox column, quick-filter
// input, paginator footer and bulk-action bar, and maps key presses
// onto the engine's operations. The engine stays headless; everything
// terminal-shaped lives here.
type GridView[T any] struct {
	grid   *Grid[T]
	keys   KeyMap
	styles Styles

	width  int
	height int

	cursor    int // row index within the materialized window
	colCursor int // column index within the visible columns

	filterInput textinput.Model
	filtering   bool

	pager paginator.Model
}

// NewGridView wraps a configured grid in an interactive view.
func NewGridView[T any](grid *Grid[T]) *GridView[T] {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	p := paginator.New()
	p.Type = paginator.Arabic

	return &GridView[T]{
		grid:        grid,
		keys:        DefaultKeyMap(),
		styles:      DefaultStyles(),
		filterInput: ti,
		pager:       p,
	}
}

// Keys overrides the key bindings.
func (v *GridView[T]) Keys(k KeyMap) *GridView[T] { v.keys = k; return v }

// Styled overrides the styles.
func (v *GridView[T]) Styled(s Styles) *GridView[T] { v.styles = s; return v }

// Grid exposes the underlying engine.
func (v *GridView[T]) Grid() *Grid[T] { return v.grid }

// Init implements tea.Model.
func (v *GridView[T]) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (v *GridView[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		// a pending confirmation swallows everything except y/n/esc
		if v.grid.PendingAction() != nil {
			switch msg.String() {
			case "y", "Y":
				v.grid.ConfirmAction()
			case "n", "N", "esc":
				v.grid.CancelAction()
			}
			return v, nil
		}

		if v.filtering {
			return v.updateFilter(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *GridView[T]) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v.filtering = false
		v.filterInput.Blur()
		return v, nil
	case "esc":
		v.filtering = false
		v.filterInput.Blur()
		v.filterInput.SetValue("")
		v.grid.SetGlobalFilter("")
		v.clampCursor()
		return v, nil
	}
	var cmd tea.Cmd
	v.filterInput, cmd = v.filterInput.Update(msg)
	v.grid.SetGlobalFilter(v.filterInput.Value())
	v.clampCursor()
	return v, cmd
}

func (v *GridView[T]) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := v.keys
	switch {
	case key.Matches(msg, keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}

	case key.Matches(msg, keys.Down):
		if v.cursor < len(v.grid.Rows())-1 {
			v.cursor++
		}

	case key.Matches(msg, keys.PrevPage):
		if v.grid.CanPrevPage() {
			v.grid.PrevPage()
			v.cursor = 0
		}

	case key.Matches(msg, keys.NextPage):
		if v.grid.CanNextPage() {
			v.grid.NextPage()
			v.cursor = 0
		}

	case key.Matches(msg, keys.PrevCol):
		if v.colCursor > 0 {
			v.colCursor--
		}

	case key.Matches(msg, keys.NextCol):
		if v.colCursor < len(v.grid.VisibleColumns())-1 {
			v.colCursor++
		}

	case key.Matches(msg, keys.SortCol):
		if col, ok := v.currentColumn(); ok {
			v.grid.SortBy(col.ID)
		}

	case key.Matches(msg, keys.GrowCol):
		v.resizeCurrent(unitsPerCell)

	case key.Matches(msg, keys.ShrinkCol):
		v.resizeCurrent(-unitsPerCell)

	case key.Matches(msg, keys.MoveColLeft):
		v.moveCurrent(-1)

	case key.Matches(msg, keys.MoveColRight):
		v.moveCurrent(+1)

	case key.Matches(msg, keys.HideCol):
		if col, ok := v.currentColumn(); ok {
			v.grid.ToggleColumn(col.ID)
			v.clampColCursor()
		}

	case key.Matches(msg, keys.ToggleSelect):
		if id, ok := v.currentRowID(); ok {
			v.grid.ToggleRow(id, !v.grid.IsSelected(id))
		}

	case key.Matches(msg, keys.SelectAll):
		v.grid.SelectAll(!v.grid.AllVisibleSelected())

	case key.Matches(msg, keys.ClearSel):
		v.grid.ClearSelection()

	case key.Matches(msg, keys.Filter):
		v.filtering = true
		v.filterInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, keys.Enter):
		v.grid.RowClick(v.cursor)

	default:
		// digits trigger bulk actions by position
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			actions := v.grid.AvailableActions()
			i := int(s[0] - '1')
			if i < len(actions) {
				v.grid.InvokeAction(actions[i].ID)
			}
		}
	}
	v.clampCursor()
	return v, nil
}

// resizeCurrent runs one keyboard-driven resize gesture: start at the
// current width, move the pointer by delta, release.
func (v *GridView[T]) resizeCurrent(delta int) {
	col, ok := v.currentColumn()
	if !ok {
		return
	}
	if !v.grid.StartResize(col.ID, 0) {
		return
	}
	v.grid.ResizeTo(delta)
	v.grid.EndResize()
}

// moveCurrent reorders the current column one position left or right by
// running a drag gesture against the appropriate drop target.
func (v *GridView[T]) moveCurrent(dir int) {
	cols := v.grid.VisibleColumns()
	if len(cols) < 2 {
		return
	}
	from := v.colCursor
	if from+dir < 0 || from+dir >= len(cols) {
		return
	}
	if !v.grid.StartReorder(cols[from].ID) {
		return
	}
	switch {
	case dir < 0:
		v.grid.DropOn(cols[from-1].ID)
		v.colCursor--
	case from+2 < len(cols):
		// moving right = dropping before the column after the neighbor
		v.grid.DropOn(cols[from+2].ID)
		v.colCursor++
	default:
		// neighbor is last: move there by dropping the neighbor before us
		v.grid.CancelReorder()
		if v.grid.StartReorder(cols[from+1].ID) {
			v.grid.DropOn(cols[from].ID)
			v.colCursor++
		}
	}
}

func (v *GridView[T]) currentColumn() (Column[T], bool) {
	cols := v.grid.VisibleColumns()
	if v.colCursor < 0 || v.colCursor >= len(cols) {
		return Column[T]{}, false
	}
	return cols[v.colCursor], true
}

func (v *GridView[T]) currentRowID() (string, bool) {
	rows := v.grid.Rows()
	if v.cursor < 0 || v.cursor >= len(rows) {
		return "", false
	}
	return v.grid.getID(rows[v.cursor]), true
}

func (v *GridView[T]) clampCursor() {
	if n := len(v.grid.Rows()); v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *GridView[T]) clampColCursor() {
	if n := len(v.grid.VisibleColumns()); v.colCursor >= n {
		v.colCursor = n - 1
	}
	if v.colCursor < 0 {
		v.colCursor = 0
	}
}

// View implements tea.Model.
func (v *GridView[T]) View() string {
	var b strings.Builder

	b.WriteString(v.renderFilterLine())
	b.WriteByte('\n')
	b.WriteString(v.renderHeader())
	b.WriteByte('\n')

	rows := v.grid.Rows()
	for i := range rows {
		b.WriteString(v.renderRow(rows[i], i))
		b.WriteByte('\n')
	}

	b.WriteString(v.renderFooter())
	return b.String()
}

func (v *GridView[T]) renderFilterLine() string {
	if v.filtering {
		return v.styles.Filter.Render(v.filterInput.View())
	}
	if q := v.grid.QuickFilters().Global; q != "" {
		return v.styles.Filter.Render("filter: " + q)
	}
	return v.styles.Footer.Render("press / to filter")
}

func (v *GridView[T]) renderHeader() string {
	var cells []string

	all := "[ ]"
	if v.grid.AllVisibleSelected() {
		all = "[x]"
	}
	cells = append(cells, v.styles.Header.Render(all))

	sort := v.grid.Sort()
	for i, col := range v.grid.VisibleColumns() {
		label := col.Header
		if sort != nil && sort.Column == col.ID {
			if sort.Direction == SortAsc {
				label += " ▲"
			} else {
				label += " ▼"
			}
		}
		style := v.styles.Header
		if i == v.colCursor {
			style = v.styles.HeaderCur
		}
		cells = append(cells, style.Render(fitCell(label, colCells(col), col.Align)))
	}
	return strings.Join(cells, " ")
}

func (v *GridView[T]) renderRow(row T, index int) string {
	var cells []string

	id := v.grid.getID(row)
	check := "[ ]"
	checkStyle := v.styles.Row
	if v.grid.IsSelected(id) {
		check = "[x]"
		checkStyle = v.styles.RowChecked
	}
	cells = append(cells, checkStyle.Render(check))

	rowStyle := v.styles.Row
	if index == v.cursor {
		rowStyle = v.styles.RowCursor
	}
	for _, col := range v.grid.VisibleColumns() {
		cells = append(cells, rowStyle.Render(fitCell(displayString(col, row), colCells(col), col.Align)))
	}
	return strings.Join(cells, " ")
}

func (v *GridView[T]) renderFooter() string {
	info := v.grid.Page()
	v.pager.TotalPages = info.TotalPages
	v.pager.Page = info.CurrentPage - 1

	parts := []string{
		"page " + v.pager.View(),
		fmt.Sprintf("%d-%d of %d", minInt(info.StartIndex+1, info.TotalCount), info.EndIndex, info.TotalCount),
	}
	if n := v.grid.SelectionCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	footer := v.styles.Footer.Render(strings.Join(parts, "  ·  "))

	if pending := v.grid.PendingAction(); pending != nil {
		prompt := fmt.Sprintf("%s %d row(s)? (y/n)", pending.Label, len(v.grid.SelectedRows()))
		return footer + "\n" + v.styles.Confirm.Render(prompt)
	}

	if actions := v.grid.AvailableActions(); len(actions) > 0 {
		var bar []string
		for i, a := range actions {
			if a.Disabled {
				continue
			}
			bar = append(bar, fmt.Sprintf("[%d] %s", i+1, a.Label))
		}
		return footer + "\n" + v.styles.ActionBar.Render(strings.Join(bar, "  "))
	}
	return footer
}

// colCells converts a column's engine width to terminal cells.
func colCells[T any](c Column[T]) int {
	w := c.Width / unitsPerCell
	if w < 4 {
		w = 4
	}
	return w
}

// fitCell pads or truncates text to exactly width cells, honoring the
// column alignment. Truncation is ANSI-aware.
func fitCell(text string, width int, align Align) string {
	if runewidth.StringWidth(text) > width {
		return truncate.StringWithTail(text, uint(width), "…")
	}
	pad := width - runewidth.StringWidth(text)
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + text
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
	default:
		return text + strings.Repeat(" ", pad)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
