package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	s := m.eng.State()

	path, _ := m.eng.ManifestPath()
	marker := m.styles.clean.Render("saved")
	if !s.Synchronized() {
		marker = m.styles.dirty.Render("● modified")
	}
	enabled, disabled := s.Entries.Counts()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.title.Render("scenable"), " ",
		m.styles.path.Render(path), "  ",
		marker, "  ",
		m.styles.faint.Render(fmt.Sprintf("%d enabled, %d disabled", enabled, disabled)),
	))
	b.WriteString("\n")

	if m.banner != "" {
		b.WriteString(m.styles.banner.Render(m.banner))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	rows := m.listHeight()
	width := len(fmt.Sprint(s.Entries.Len()))
	end := min(m.offset+rows, s.Entries.Len())
	for i := m.offset; i < end; i++ {
		entry, _ := s.Entries.At(i)

		check := "[ ]"
		style := m.styles.disabled
		if entry.Enabled {
			check = "[x]"
			style = m.styles.enabled
		}
		line := fmt.Sprintf("%s %s", check, entry.Path)
		if i == m.cursor {
			line = m.styles.selected.Render(line)
		} else {
			line = style.Render(line)
		}
		b.WriteString(m.styles.index.Render(fmt.Sprintf("%*d ", width, i+1)))
		b.WriteString(line)
		b.WriteString("\n")
	}
	for i := end - m.offset; i < rows; i++ {
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.historyLine())
	b.WriteString("\n")

	switch {
	case m.confirmQuit:
		b.WriteString(m.styles.dirty.Render("Unsaved changes. Quit anyway?"))
	case m.statusErr:
		b.WriteString(m.styles.errText.Render(m.status))
	default:
		b.WriteString(m.styles.status.Render(m.status))
	}
	b.WriteString("\n")

	if m.confirmQuit {
		b.WriteString(m.help.View(confirmKeys{m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}

	return b.String()
}

// historyLine renders the labels of the next undo and redo. Labels are only
// formatted here, at display time.
func (m Model) historyLine() string {
	s := m.eng.State()

	undo := m.styles.faint.Render("undo: -")
	if label, ok := s.UndoLabel(); ok {
		undo = m.styles.history.Render("undo: " + label.String())
	}
	redo := m.styles.faint.Render("redo: -")
	if label, ok := s.RedoLabel(); ok {
		redo = m.styles.history.Render("redo: " + label.String())
	}
	return undo + "   " + redo
}
