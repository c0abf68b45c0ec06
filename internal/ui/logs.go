package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ktnyt/labmon/internal/logtail"
)

// logLinesMsg carries freshly read lines from the labmon log file.
type logLinesMsg struct {
	lines []string
	err   error
}

// readLogsCmd tails the log file and formats each line for the pane.
func readLogsCmd(path string) tea.Cmd {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	return func() tea.Msg {
		raw, err := logtail.Read(path, LogPaneLines)
		if err != nil {
			return logLinesMsg{err: err}
		}
		lines := make([]string, 0, len(raw))
		for _, line := range raw {
			lines = append(lines, logtail.Format(line))
		}
		return logLinesMsg{lines: lines}
	}
}

func newLogViewport(width int) viewport.Model {
	vp := viewport.New(width, LogPaneHeight)
	vp.MouseWheelEnabled = false
	return vp
}

// applyLogLines replaces the pane contents and pins the view to the tail.
func (m *Model) applyLogLines(msg logLinesMsg) {
	if msg.err != nil {
		m.logLines = []string{"log unavailable: " + msg.err.Error()}
	} else {
		m.logLines = msg.lines
	}
	m.logView.SetContent(strings.Join(m.logLines, "\n"))
	m.logView.GotoBottom()
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := styles.Title.Render("Log") + " " + styles.Faint.Render(truncate(m.logPath, m.width-6))
	return styles.Card.Width(max(m.width-2, 0)).Render(title + "\n" + m.logView.View())
}

