package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"phonebook/internal/server/router"
	"phonebook/internal/server/websocket"
	"phonebook/internal/ui"
)

type tickMsg time.Time

type serveFailedMsg struct{ err error }

type status struct {
	addr    string
	backend string
	stats   *router.Stats
	hub     *websocket.Hub
	serve   <-chan error

	err       error
	startTime time.Time
	tick      int
	quitting  bool
}

func newStatus(s status) status {
	s.startTime = time.Now()
	return s
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m status) waitServe() tea.Msg {
	if err, ok := <-m.serve; ok && err != nil {
		return serveFailedMsg{err}
	}
	return nil
}

func (m status) Init() tea.Cmd {
	return tea.Batch(m.waitServe, tick())
}

func (m status) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case tickMsg:
		m.tick++
		return m, tick()

	case serveFailedMsg:
		m.err = msg.err
		return m, nil
	}
	return m, nil
}

func (m status) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	header := ui.HeaderStyle.Render(" PHONEBOOK SERVER "+version+" ") + "\n"
	subHeader := ui.SubHeaderStyle.Render("Contacts API • Change feed on /ws") + "\n"

	var content string
	if m.err != nil {
		content = fmt.Sprintf("%s\n\n%s",
			ui.StatusLabelStyle.Background(ui.ErrorCol).Foreground(lipgloss.Color("#FFFFFF")).Render(" FATAL ERROR "),
			ui.NoticeStyle.UnsetPaddingLeft().Render(m.err.Error()))
	} else {
		tag := " ONLINE "
		if m.tick%2 == 0 {
			tag = " • ONLINE "
		}
		row := func(k, v string) string {
			return ui.LabelStyle.Width(12).Render(k) + ui.ValueStyle.Render(v)
		}
		content = lipgloss.JoinVertical(lipgloss.Left,
			ui.StatusStyle(true).Render(tag),
			"",
			row("Address", m.addr),
			row("Storage", m.backend),
			row("Requests", fmt.Sprint(m.stats.Requests.Load())),
			row("Errors", fmt.Sprint(m.stats.Errors.Load())),
			row("Watchers", fmt.Sprint(m.hub.Subscribers())),
			row("Uptime", time.Since(m.startTime).Truncate(time.Second).String()),
		)
	}

	body := ui.CardStyle.Render(content)
	footer := ui.FooterStyle.Render("▸ Press 'q' to gracefully shutdown")

	return fmt.Sprintf("%s%s%s\n%s", header, subHeader, body, footer)
}
