// Package tui provides the Bubble Tea live converter interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/dahdit/internal/model"
	"github.com/verte-zerg/dahdit/internal/morse"
	"github.com/verte-zerg/dahdit/internal/store"
)

type direction int

const (
	dirEncode direction = iota
	dirDecode
)

func (d direction) String() string {
	if d == dirDecode {
		return "decode"
	}
	return "encode"
}

// Model implements the Bubble Tea live converter UI.
type Model struct {
	config model.Config
	conv   *morse.Converter
	store  *store.Store

	input  textinput.Model
	output viewport.Model

	dir   direction
	mode  morse.RepairMode
	valid morse.CodeSet

	width  int
	height int

	status string
	saved  int
}

var (
	validStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	strayStyle   = invalidStyle.Copy().Underline(true)
	plainStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a live converter model. st may be nil when history is disabled.
func NewModel(cfg model.Config, conv *morse.Converter, st *store.Store) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "type text to encode"
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	input.Focus()

	m := &Model{
		config: cfg,
		conv:   conv,
		store:  st,
		input:  input,
		output: viewport.New(0, 0),
		mode:   cfg.RepairMode,
		valid:  morse.ValidCodes(conv.Format()),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.toggleDirection()
			return m, nil
		case tea.KeyCtrlR:
			m.cycleMode()
			return m, nil
		case tea.KeyEnter:
			m.save()
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.output, cmd = m.output.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.status = ""
		m.refresh()
		return m, cmd
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return m.input.View() + "\n" + m.output.View()
	}
	header := labelStyle.Render(fmt.Sprintf("dahdit %s  format %s", m.dir, m.conv.Format()))
	footer := footerStyle.Render(m.renderFooter())
	return strings.Join([]string{header, m.input.View(), "", m.output.View(), footer}, "\n")
}

func (m *Model) updateLayout() {
	m.input.Width = maxInt(10, m.width-lipgloss.Width(m.input.Prompt)-1)
	m.output.Width = m.width
	// header, input, blank line, footer
	m.output.Height = maxInt(1, m.height-4)
}

func (m *Model) toggleDirection() {
	if m.dir == dirEncode {
		m.dir = dirDecode
		m.input.Placeholder = "type morse to decode"
	} else {
		m.dir = dirEncode
		m.input.Placeholder = "type text to encode"
	}
	m.status = ""
	m.refresh()
}

func (m *Model) cycleMode() {
	modes := morse.RepairModes()
	next := 0
	for i, mode := range modes {
		if mode == m.mode {
			next = (i + 1) % len(modes)
			break
		}
	}
	m.mode = modes[next]
	m.status = ""
	m.refresh()
}

// conversion computes the record for the current input.
func (m *Model) conversion() model.Conversion {
	value := m.input.Value()
	f := m.conv.Format()
	if m.dir == dirEncode {
		out := m.conv.Encode(value)
		return model.Conversion{
			Op:     model.OpEncode,
			Format: f.String(),
			Source: "live",
			Input:  value,
			Output: out,
			Tokens: len(strings.Fields(out)),
		}
	}
	res := morse.RepairDetailed(value, m.mode, f, m.config.RepairOrder)
	return model.Conversion{
		Op:       model.OpDecode,
		Format:   f.String(),
		Mode:     m.mode.String(),
		Source:   "live",
		Input:    value,
		Output:   m.conv.Decode(res.Text),
		Tokens:   res.Kept + res.Repaired + res.Dropped,
		Repaired: res.Repaired,
		Dropped:  res.Dropped,
	}
}

func (m *Model) refresh() {
	m.output.SetContent(m.renderOutput())
}

func (m *Model) renderOutput() string {
	width := m.output.Width
	value := m.input.Value()
	if value == "" {
		return labelStyle.Render("tab: switch direction  ctrl+r: repair mode  enter: save  esc: quit")
	}
	c := m.conversion()
	if m.dir == dirEncode {
		return labelStyle.Render("morse") + "\n" + wrapStyledRunes(buildStyledTokens(c.Output, m.conv.Format(), m.valid), width)
	}
	lines := []string{
		labelStyle.Render("input"),
		wrapStyledRunes(buildStyledTokens(value, m.conv.Format(), m.valid), width),
		"",
	}
	if c.Repaired > 0 || c.Dropped > 0 {
		repaired := morse.Repair(value, m.mode, m.conv.Format(), m.config.RepairOrder)
		lines = append(lines,
			labelStyle.Render(fmt.Sprintf("repaired (%s)", m.mode)),
			wrapStyledRunes(buildStyledTokens(repaired, m.conv.Format(), m.valid), width),
			"",
		)
	}
	lines = append(lines, labelStyle.Render("text"), wrapStyledRunes(buildStyledText(c.Output, plainStyle), width))
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	segments := []string{fmt.Sprintf("Mode %s", m.mode)}
	if m.dir == dirDecode && m.input.Value() != "" {
		if invalid := morse.InvalidTokens(m.input.Value(), m.conv.Format()); len(invalid) > 0 {
			segments = append(segments, fmt.Sprintf("Invalid %d", len(invalid)))
		} else {
			segments = append(segments, "Valid")
		}
	}
	if m.store != nil {
		segments = append(segments, fmt.Sprintf("Saved %d", m.saved))
	}
	if m.status != "" {
		segments = append(segments, m.status)
	}
	return strings.Join(segments, "  ")
}

func (m *Model) save() {
	if strings.TrimSpace(m.input.Value()) == "" {
		return
	}
	c := m.conversion()
	if m.store != nil {
		c.CreatedAt = time.Now()
		if _, err := m.store.InsertConversion(context.Background(), c); err != nil {
			logErrf("failed to save conversion: %v\n", err)
			m.status = "save failed"
			return
		}
		m.saved++
		m.status = "saved"
	}
	m.input.SetValue("")
	m.refresh()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
