// Package historyui provides the Bubble Tea conversion history browser.
package historyui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/dahdit/internal/model"
	"github.com/verte-zerg/dahdit/internal/report"
	"github.com/verte-zerg/dahdit/internal/store"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Model implements the Bubble Tea history UI.
type Model struct {
	store  *store.Store
	filter model.HistoryFilter

	report report.Report
	errMsg string

	table  table.Model
	detail viewport.Model

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string

	width  int
	height int
}

// NewModel constructs a history UI model.
func NewModel(st *store.Store, filter model.HistoryFilter) *Model {
	m := &Model{
		store:  st,
		filter: filter,
		table:  newTable(),
		detail: viewport.New(0, 0),
	}
	m.filterInputs = []textinput.Model{
		newFilterInput("Op: "),
		newFilterInput("Last: "),
	}
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "/":
			return m.startFilter()
		case "g", "home":
			m.table.GotoTop()
			m.renderDetail()
			return m, nil
		case "G", "end":
			m.table.GotoBottom()
			m.renderDetail()
			return m, nil
		case "J":
			m.detail.LineDown(1)
			return m, nil
		case "K":
			m.detail.LineUp(1)
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		m.renderDetail()
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := headerStyle.Render(truncateLine(m.renderFilterSummary(), m.width))
	if m.filterMode {
		return header + "\n" + m.renderFilterForm()
	}
	parts := []string{header, m.table.View(), detailStyle.Render(m.detail.View()), m.renderFooter()}
	return strings.Join(parts, "\n")
}

func newTable() table.Model {
	t := table.New(
		table.WithColumns(tableColumns(80)),
		table.WithFocused(true),
		table.WithHeight(5),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#3A3A3A")).
		Bold(false)
	t.SetStyles(styles)
	return t
}

func tableColumns(width int) []table.Column {
	fixed := 6 + 16 + 24 + 8
	text := maxInt(10, width-fixed-10)
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "When", Width: 16},
		{Title: "Op", Width: 24},
		{Title: "Format", Width: 8},
		{Title: "Input", Width: text},
	}
}

func buildRows(conversions []model.Conversion) []table.Row {
	rows := make([]table.Row, 0, len(conversions))
	// Newest on top.
	for i := len(conversions) - 1; i >= 0; i-- {
		c := conversions[i]
		rows = append(rows, table.Row{
			strconv.FormatInt(c.ID, 10),
			c.CreatedAt.Local().Format("2006-01-02 15:04"),
			report.OpLabel(c),
			report.FormatLabel(c),
			report.OneLine(c.Input),
		})
	}
	return rows
}

func (m *Model) layoutHeights() (tableHeight, detailHeight int) {
	// header, footer, detail border
	body := m.height - 3
	if body < 2 {
		return 1, 1
	}
	tableHeight = maxInt(1, body/2)
	detailHeight = maxInt(1, body-tableHeight)
	return tableHeight, detailHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	tableHeight, detailHeight := m.layoutHeights()
	m.table.SetColumns(tableColumns(m.width))
	m.table.SetWidth(m.width)
	m.table.SetHeight(tableHeight)
	m.detail.Width = m.width
	m.detail.Height = detailHeight
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
	m.renderDetail()
}

func (m *Model) refreshReport() {
	r, err := report.BuildReport(context.Background(), m.store, m.filter)
	if err != nil {
		m.errMsg = err.Error()
		m.table.SetRows(nil)
		m.detail.SetContent("Failed to load history.")
		return
	}
	m.errMsg = ""
	m.report = r
	m.table.SetRows(buildRows(r.Conversions))
	m.table.GotoTop()
	m.renderDetail()
}

func (m *Model) selected() (model.Conversion, bool) {
	n := len(m.report.Conversions)
	idx := m.table.Cursor()
	if n == 0 || idx < 0 || idx >= n {
		return model.Conversion{}, false
	}
	return m.report.Conversions[n-1-idx], true
}

func (m *Model) renderDetail() {
	c, ok := m.selected()
	if !ok {
		m.detail.SetContent("No conversions found.")
		return
	}
	m.detail.SetContent(renderConversion(c, m.width))
	m.detail.GotoTop()
}

func renderConversion(c model.Conversion, width int) string {
	wrap := lipgloss.NewStyle()
	if width > 0 {
		wrap = wrap.Width(width)
	}
	lines := []string{
		labelStyle.Render(fmt.Sprintf("#%d %s  format %s  tokens %d  repaired %d  dropped %d",
			c.ID, report.OpLabel(c), report.FormatLabel(c), c.Tokens, c.Repaired, c.Dropped)),
	}
	if c.Source != "" {
		lines = append(lines, labelStyle.Render("source "+c.Source))
	}
	lines = append(lines,
		labelStyle.Render("input"),
		wrap.Render(c.Input),
		labelStyle.Render("output"),
		wrap.Render(c.Output),
	)
	return strings.Join(lines, "\n")
}

func (m *Model) renderFilterSummary() string {
	op := m.filter.Op
	if op == "" {
		op = "any"
	}
	last := "all"
	if m.filter.Last > 0 {
		last = strconv.Itoa(m.filter.Last)
	}
	total := 0
	dropped := 0
	for _, agg := range m.report.Ops {
		total += agg.Count
		dropped += agg.Dropped
	}
	return fmt.Sprintf("History: op=%s  last=%s  runs=%d  dropped tokens=%d", op, last, total, dropped)
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Move: up/down  Detail: J/K  Filter: /  Quit: q")
	if m.errMsg != "" {
		return help + "  " + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Filter (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.filterInputs[0].SetValue(m.filter.Op)
	if m.filter.Last > 0 {
		m.filterInputs[1].SetValue(strconv.Itoa(m.filter.Last))
	} else {
		m.filterInputs[1].SetValue("")
	}
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		return m, m.setFilterIndex((m.filterIndex + 1) % len(m.filterInputs))
	case tea.KeyShiftTab, tea.KeyUp:
		return m, m.setFilterIndex((m.filterIndex - 1 + len(m.filterInputs)) % len(m.filterInputs))
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == idx {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	filter, err := parseFilter(m.filterInputs[0].Value(), m.filterInputs[1].Value(), m.filter)
	if err != nil {
		return err
	}
	m.filter = filter
	m.refreshReport()
	return nil
}

func parseFilter(opValue, lastValue string, base model.HistoryFilter) (model.HistoryFilter, error) {
	filter := base
	op := strings.TrimSpace(strings.ToLower(opValue))
	switch op {
	case "", "any":
		filter.Op = ""
	case model.OpEncode, model.OpDecode, model.OpSwitch, model.OpRepair, model.OpValidate, model.OpGarble:
		filter.Op = op
	default:
		return base, fmt.Errorf("unknown op %q", opValue)
	}
	last := strings.TrimSpace(lastValue)
	if last == "" {
		filter.Last = 0
		return filter, nil
	}
	n, err := strconv.Atoi(last)
	if err != nil || n < 0 {
		return base, fmt.Errorf("last must be a non-negative number")
	}
	filter.Last = n
	return filter, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
