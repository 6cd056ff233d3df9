// Package board hosts the Bubble Tea program for the cadence week board.
package board

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/cadence/pkg/app"
	"tableflip.dev/cadence/pkg/calendar"
	"tableflip.dev/cadence/pkg/dnd"
	"tableflip.dev/cadence/pkg/schedule"
)

type generateDoneMsg struct{ err error }

// Model contains the board UI state.
type Model struct {
	svc    *app.Service
	ctx    context.Context
	cancel context.CancelFunc

	snap calendar.Snapshot
	run  schedule.Run

	spin       spinner.Model
	generating bool
	status     string

	termWidth  int
	termHeight int
}

// New builds a board over the given service.
func New(svc *app.Service) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	return &Model{
		svc:    svc,
		ctx:    ctx,
		cancel: cancel,
		snap:   svc.Store.Snapshot(),
		spin:   sp,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// waitForEvent blocks on the store's change feed and surfaces the next
// mutation as a message.
func (m *Model) waitForEvent() tea.Cmd {
	ch := m.svc.Store.Events()
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			return msg
		case <-ctx.Done():
			return nil
		}
	}
}

func (m *Model) generateCmd() tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	return func() tea.Msg {
		return generateDoneMsg{err: svc.Generate(ctx)}
	}
}

func (m *Model) regenerateCmd(id string) tea.Cmd {
	ctx := m.ctx
	svc := m.svc
	return func() tea.Msg {
		return generateDoneMsg{err: svc.Regenerate(ctx, id)}
	}
}

func (m *Model) refresh() {
	m.snap = m.svc.Store.Snapshot()
	m.run = m.svc.Scheduler.Run()
}

// Update handles messages and keybindings.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
	case spinner.TickMsg:
		if m.generating {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			cmds = append(cmds, cmd)
		}
		m.refresh()
	case generateDoneMsg:
		m.generating = false
		m.refresh()
		if msg.err != nil {
			m.status = "ERR: " + msg.err.Error()
		} else {
			m.status = "generation complete"
		}
	case calendar.DraftChangeMsg, calendar.DaysReplacedMsg,
		calendar.SelectionChangeMsg, calendar.GhostChangeMsg,
		calendar.SeedToggleMsg:
		m.refresh()
		cmds = append(cmds, m.waitForEvent())
	case tea.KeyPressMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.cancel()
		return tea.Quit
	case "esc":
		if m.svc.DnD.State() == dnd.Dragging {
			m.svc.DnD.Cancel()
			m.status = "drag cancelled"
			return nil
		}
		m.svc.Selection.Escape()
		m.refresh()
	case "left", "h":
		m.svc.StepWeek(-1)
		m.refresh()
	case "right", "l":
		m.svc.StepWeek(1)
		m.refresh()
	case "down", "j":
		m.svc.Selection.Move(1, false)
		m.refresh()
	case "up", "k":
		m.svc.Selection.Move(-1, false)
		m.refresh()
	case "J", "shift+down":
		m.svc.Selection.Move(1, true)
		m.refresh()
	case "K", "shift+up":
		m.svc.Selection.Move(-1, true)
		m.refresh()
	case "x":
		count := len(m.svc.Selection.Selected())
		m.svc.DeleteSelected()
		m.refresh()
		if count > 0 {
			m.status = fmt.Sprintf("deleted %d", count)
		}
	case "p":
		created := m.svc.Plan()
		m.refresh()
		m.status = fmt.Sprintf("placed %d", created)
	case "g":
		if m.generating {
			m.status = "generation already running"
			return nil
		}
		m.generating = true
		m.status = "generating…"
		return tea.Batch(m.generateCmd(), m.spin.Tick)
	case "r":
		ids := m.svc.Selection.Selected()
		if len(ids) != 1 {
			m.status = "select one draft to regenerate"
			return nil
		}
		m.generating = true
		m.status = "regenerating…"
		return tea.Batch(m.regenerateCmd(ids[0]), m.spin.Tick)
	case "space", " ":
		ids := m.svc.Selection.Selected()
		if len(ids) != 1 {
			m.status = "select one draft to pick up"
			return nil
		}
		if m.svc.DnD.Start(ids[0]) {
			m.status = "holding draft, press a day number to drop"
		}
	case "1", "2", "3", "4", "5", "6", "7":
		n, _ := strconv.Atoi(key)
		if n < 1 || n > len(m.snap.Days) {
			return nil
		}
		dayID := m.snap.Days[n-1].ID
		if m.svc.DnD.State() == dnd.Dragging {
			m.svc.DnD.Drop(dayID)
		} else {
			m.svc.MoveSelected(dayID)
		}
		m.refresh()
	}
	return nil
}

// Run launches the board program.
func Run(svc *app.Service) error {
	p := tea.NewProgram(New(svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
