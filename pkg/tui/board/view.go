package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/cadence/pkg/draft"
	"tableflip.dev/cadence/pkg/schedule"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Bold(true).
			Underline(true)
	slotStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	placeholderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	streamingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Italic(true)
	selectedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	multiStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("219"))
	ghostStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStatusPrefix = "ERR:"
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

const helpLine = "←/→ week · j/k move · J/K extend · space hold · 1-7 drop/move to day · p plan · g generate · r regen · x delete · q quit"

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.svc.WeekLabel()))
	b.WriteString("\n\n")

	multi := make(map[string]bool, len(m.snap.MultiSelected))
	for _, id := range m.snap.MultiSelected {
		multi[id] = true
	}

	for i, day := range m.snap.Days {
		b.WriteString(dayStyle.Render(fmt.Sprintf("%d %s %s", i+1, day.Label, day.DateLabel)))
		b.WriteString("\n")
		for _, d := range day.Slots {
			b.WriteString(m.renderSlot(d, multi))
			b.WriteString("\n")
		}
		if n := m.snap.Ghosts[day.ID]; n > 0 {
			marker := ghostStyle.Render(fmt.Sprintf("  %s generating %d…", m.spin.View(), n))
			b.WriteString(marker)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpLine))
	return b.String()
}

func (m *Model) renderSlot(d *draft.Draft, multi map[string]bool) string {
	marker := " "
	style := slotStyle
	switch d.Status {
	case draft.StatusPlaceholder:
		style = placeholderStyle
	case draft.StatusStreaming:
		style = streamingStyle
	}
	if multi[d.ID] {
		marker = "+"
		style = multiStyle
	}
	if d.ID == m.snap.SelectedID {
		marker = ">"
		style = selectedStyle
	}

	line := fmt.Sprintf("%s %s %s", marker, d.Time, d.Title)
	if len(d.Platforms) > 0 {
		line = fmt.Sprintf("%s  [%s]", line, strings.Join(d.Platforms, ","))
	}
	return style.Render("  " + line)
}

func (m *Model) renderStatus() string {
	segments := make([]string, 0, 3)

	switch m.run.Status {
	case schedule.RunActive:
		line := fmt.Sprintf("%s %d/%d", m.spin.View(), m.run.Completed, m.run.Total)
		if m.run.Stage != "" {
			line = fmt.Sprintf("%s %s", line, m.run.Stage)
		}
		segments = append(segments, streamingStyle.Render(line))
	case schedule.RunError:
		segments = append(segments, errorStyle.Render("generation failed: "+m.run.Err))
	}

	if m.status != "" {
		if strings.HasPrefix(m.status, errorStatusPrefix) {
			segments = append(segments, errorStyle.Render(m.status))
		} else {
			segments = append(segments, statusStyle.Render(m.status))
		}
	}
	if len(segments) == 0 {
		return " "
	}
	return strings.Join(segments, " │ ")
}
