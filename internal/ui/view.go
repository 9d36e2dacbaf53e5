package ui

import (
	"fmt"
	"strings"
)

func (m Model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	var b strings.Builder

	b.WriteString(HeaderStyle.Render(" PHONEBOOK ") + "\n")
	b.WriteString(SubHeaderStyle.Render(m.status()) + "\n")

	if m.state.Notice.Visible() {
		b.WriteString(NoticeStyle.Render(m.state.Notice.Message) + "\n")
	}

	form := fmt.Sprintf("%s %s\n%s %s\n%s %s",
		LabelStyle.Render("Search"), m.search.View(),
		LabelStyle.Render("Name"), m.name.View(),
		LabelStyle.Render("Number"), m.number.View(),
	)
	b.WriteString(CardStyle.Render(form) + "\n")

	b.WriteString(SectionTitleStyle.Render("  Numbers") + "\n")
	b.WriteString(CardStyle.Render(m.listView()) + "\n")

	if p := m.state.Pending; p != nil {
		b.WriteString("\n" + PromptStyle.Render(p.Prompt()+" [y/n]") + "\n")
	}

	b.WriteString(FooterStyle.Render("▸ Tab: focus • Enter: add • ↑/↓: select • Ctrl+D: delete • Ctrl+C: exit"))
	return b.String()
}

func (m Model) status() string {
	switch {
	case m.loadFailed:
		return StatusStyle(false).Render("● OFFLINE") + MutedStyle.Render(m.serverURL)
	case !m.state.Loaded:
		return MutedStyle.Render("Loading contacts from " + m.serverURL + "...")
	default:
		return StatusStyle(true).Render("● ONLINE") + MutedStyle.Render(m.serverURL)
	}
}

func (m Model) listView() string {
	visible := m.state.Visible()
	if len(visible) == 0 {
		return MutedStyle.Render("No contacts")
	}

	lines := make([]string, 0, len(visible))
	for i, c := range visible {
		line := fmt.Sprintf("%s %s", c.Name, c.Number)
		if i == m.cursor {
			line = SelectedStyle.Render("▸ " + line)
		} else {
			line = ValueStyle.Render("  " + line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
