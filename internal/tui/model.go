// Package tui implements the interactive scenery pack editor.
//
// The editor is a bubbletea program. Every edit goes through the engine on
// the event loop goroutine, which is the only goroutine that dispatches.
// Background notifications (the file watcher) arrive as messages sent to
// the program.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/danieljhkim/scenable/internal/engine"
	"github.com/danieljhkim/scenable/internal/state"
	"github.com/danieljhkim/scenable/internal/watch"
)

// DiskChangedMsg reports that the manifest may have changed on disk.
type DiskChangedMsg struct {
	Change watch.Change
}

// Model is the bubbletea model of the editor.
type Model struct {
	ctx    context.Context
	eng    *engine.Engine
	keys   keyMap
	help   help.Model
	styles styles

	cursor int
	offset int
	width  int
	height int

	status    string
	statusErr bool

	// banner warns that the file changed on disk while there were edits.
	banner string

	confirmQuit bool
	quitting    bool
}

// New creates the editor model. The engine must already hold a loaded
// manifest.
func New(ctx context.Context, eng *engine.Engine) Model {
	return Model{
		ctx:    ctx,
		eng:    eng,
		keys:   newKeyMap(),
		help:   help.New(),
		styles: newStyles(),
		height: 24,
		width:  80,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampCursor()
		return m, nil

	case DiskChangedMsg:
		return m.handleDiskChange(), nil

	case tea.KeyMsg:
		if m.confirmQuit {
			return m.handleConfirmKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	total := m.eng.State().Entries.Len()

	switch {
	case key.Matches(msg, m.keys.quit):
		if !m.eng.State().Synchronized() {
			m.confirmQuit = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.up):
		m.cursor--
	case key.Matches(msg, m.keys.down):
		m.cursor++
	case key.Matches(msg, m.keys.pageUp):
		m.cursor -= m.listHeight()
	case key.Matches(msg, m.keys.pageDown):
		m.cursor += m.listHeight()
	case key.Matches(msg, m.keys.top):
		m.cursor = 0
	case key.Matches(msg, m.keys.bottom):
		m.cursor = total - 1

	case key.Matches(msg, m.keys.toggle):
		if total > 0 {
			_, err := m.eng.SetEnabled(m.ctx, &engine.SetEnabledRequest{
				Selectors: []string{strconv.Itoa(m.cursor + 1)},
				Mode:      engine.ModeToggle,
			})
			m.report("", err)
		}
	case key.Matches(msg, m.keys.enableAll):
		res, err := m.eng.SetAll(m.ctx, true)
		if err == nil {
			m.report(fmt.Sprintf("Enabled %d scenery packs", res.Changed), nil)
		} else {
			m.report("", err)
		}
	case key.Matches(msg, m.keys.disableAll):
		res, err := m.eng.SetAll(m.ctx, false)
		if err == nil {
			m.report(fmt.Sprintf("Disabled %d scenery packs", res.Changed), nil)
		} else {
			m.report("", err)
		}

	case key.Matches(msg, m.keys.undo):
		res, err := m.eng.Undo(m.ctx)
		if err == nil {
			m.report("Undid: "+res.Label, nil)
		} else {
			m.report("", err)
		}
	case key.Matches(msg, m.keys.redo):
		res, err := m.eng.Redo(m.ctx)
		if err == nil {
			m.report("Redid: "+res.Label, nil)
		} else {
			m.report("", err)
		}

	case key.Matches(msg, m.keys.save):
		m = m.save()
	case key.Matches(msg, m.keys.reload):
		if _, err := m.eng.Load(m.ctx, &engine.LoadRequest{}); err != nil {
			m.report("", err)
		} else {
			m.banner = ""
			m.report("Reloaded scenery_packs.ini", nil)
		}

	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.clampCursor()
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.confirm):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.save):
		m = m.save()
		if m.statusErr {
			m.confirmQuit = false
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.cancel), key.Matches(msg, m.keys.quit):
		m.confirmQuit = false
	}
	return m, nil
}

func (m Model) save() Model {
	res, err := m.eng.Save(m.ctx, &engine.SaveRequest{})
	if err != nil {
		m.report("", err)
		return m
	}
	m.banner = ""
	msg := "Saved " + res.Path
	if res.Backup != nil {
		msg += " (backup " + res.Backup.Name + ")"
	}
	m.report(msg, nil)
	return m
}

// handleDiskChange reloads when nothing would be lost and warns otherwise.
// Notifications caused by our own saves are filtered by content hash.
func (m Model) handleDiskChange() Model {
	changed, err := m.eng.DiskChanged(m.ctx)
	if err != nil {
		m.report("", err)
		return m
	}
	if !changed {
		return m
	}

	if !m.eng.State().Synchronized() {
		m.banner = "scenery_packs.ini changed on disk: R reloads and keeps your edits in undo history, s overwrites"
		return m
	}

	if _, err := m.eng.Load(m.ctx, &engine.LoadRequest{}); err != nil {
		m.report("", err)
		return m
	}
	m.banner = ""
	m.report("Reloaded after an external change", nil)
	m.clampCursor()
	return m
}

func (m *Model) report(msg string, err error) {
	switch {
	case err == nil:
		m.status, m.statusErr = msg, false
	case errors.Is(err, state.ErrNothingToUndo), errors.Is(err, state.ErrNothingToRedo):
		m.status, m.statusErr = capitalize(err.Error()), false
	default:
		m.status, m.statusErr = err.Error(), true
	}
}

// listHeight is the number of rows available for entries.
func (m Model) listHeight() int {
	// title, blank, blank, undo/redo, status, help
	reserved := 6
	if m.banner != "" {
		reserved++
	}
	if m.help.ShowAll {
		reserved += 5
	}
	return max(m.height-reserved, 1)
}

func (m *Model) clampCursor() {
	total := m.eng.State().Entries.Len()
	m.cursor = max(min(m.cursor, total-1), 0)

	rows := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(min(m.offset, total-rows), 0)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
