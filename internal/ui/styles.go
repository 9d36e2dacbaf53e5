package ui

import "github.com/charmbracelet/lipgloss"

var (
	Primary  = lipgloss.Color("#7D56F4")
	Accent   = lipgloss.Color("#00E5FF")
	Success  = lipgloss.Color("#39FF14")
	Warning  = lipgloss.Color("#FFAD00")
	ErrorCol = lipgloss.Color("#FF3131")
	Text     = lipgloss.Color("#FFFFFF")
	Muted    = lipgloss.Color("#888888")

	HeaderStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(1, 1).
			MarginLeft(1)

	SubHeaderStyle = lipgloss.NewStyle().
			Foreground(Muted).
			PaddingLeft(2).
			MarginBottom(1)

	CardStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(Muted).
			MarginLeft(2).
			Width(64)

	StatusLabelStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Width(10)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Text)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ErrorCol).
			Bold(true).
			PaddingLeft(2).
			MarginBottom(1)

	PromptStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true).
			PaddingLeft(2)

	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				MarginTop(1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	FooterStyle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginTop(1).
			PaddingLeft(4).
			Faint(true)
)

func StatusStyle(online bool) lipgloss.Style {
	if online {
		return StatusLabelStyle.Foreground(Success)
	}
	return StatusLabelStyle.Foreground(ErrorCol)
}
