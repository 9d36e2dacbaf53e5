// Package ui is the interactive phonebook: a bubbletea program that feeds
// key presses into the phonebook reducer and runs its effects as commands.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"phonebook/internal/models"
	"phonebook/internal/phonebook"
)

type focus int

const (
	focusName focus = iota
	focusNumber
	focusSearch
	focusList
	focusCount
)

type Options struct {
	Remote    phonebook.Remote
	Logger    *zap.Logger
	Expiry    *phonebook.Expiry
	ServerURL string
}

type Model struct {
	state  phonebook.State
	runner *phonebook.Runner
	expiry *phonebook.Expiry
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	name   textinput.Model
	number textinput.Model
	search textinput.Model
	focus  focus
	cursor int

	serverURL  string
	loadFailed bool
	quitting   bool
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	return ti
}

// New returns the initial model.
func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Expiry == nil {
		opts.Expiry = phonebook.NewExpiry(phonebook.DefaultNoticeTTL)
	}
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		runner:    phonebook.NewRunner(opts.Remote, opts.Logger),
		expiry:    opts.Expiry,
		logger:    opts.Logger,
		ctx:       ctx,
		cancel:    cancel,
		name:      newInput("Name", 64),
		number:    newInput("Number", 32),
		search:    newInput("Search...", 64),
		serverURL: opts.ServerURL,
	}
	m.name.Focus()
	return m
}

// State returns the phonebook state the model renders.
func (m Model) State() phonebook.State { return m.state }

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.load())
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg { return m.runner.Load(m.ctx) }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case phonebook.Action:
		if l, ok := msg.(phonebook.Loaded); ok {
			m.loadFailed = l.Err != nil
		}
		return m.dispatch(msg)
	}

	var cmd tea.Cmd
	m, cmd = m.updateFocused(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		m.shutdown()
		return m, tea.Quit
	}

	if m.state.Pending != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			return m.dispatch(phonebook.ConfirmationResolved{Accepted: true})
		case "n", "N", "esc":
			return m.dispatch(phonebook.ConfirmationResolved{Accepted: false})
		}
		return m, nil
	}

	switch msg.String() {
	case "tab":
		return m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab":
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down":
		if m.cursor < len(m.state.Visible())-1 {
			m.cursor++
		}
		return m, nil
	case "ctrl+d", "delete":
		return m.deleteSelected()
	case "enter":
		if m.focus == focusName || m.focus == focusNumber {
			return m.dispatch(phonebook.SubmitRequested{Name: m.name.Value(), Number: m.number.Value()})
		}
		return m, nil
	case "esc":
		if m.focus == focusSearch && m.search.Value() != "" {
			m.search.SetValue("")
			return m.dispatch(phonebook.SearchChanged{Query: ""})
		}
		return m, nil
	}

	if m.focus == focusList {
		if msg.String() == "d" {
			return m.deleteSelected()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m, cmd = m.updateFocused(msg)

	var next tea.Model
	var effCmd tea.Cmd
	switch m.focus {
	case focusSearch:
		if m.search.Value() == m.state.Query {
			return m, cmd
		}
		next, effCmd = m.dispatch(phonebook.SearchChanged{Query: m.search.Value()})
	default:
		if m.name.Value() == m.state.Name && m.number.Value() == m.state.Number {
			return m, cmd
		}
		next, effCmd = m.dispatch(phonebook.FormChanged{Name: m.name.Value(), Number: m.number.Value()})
	}
	return next, batch(cmd, effCmd)
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	c, ok := m.selected()
	if !ok {
		return m, nil
	}
	return m.dispatch(phonebook.DeleteRequested{ID: c.ID})
}

func (m Model) setFocus(f focus) (tea.Model, tea.Cmd) {
	m.focus = f
	m.name.Blur()
	m.number.Blur()
	m.search.Blur()

	var cmd tea.Cmd
	switch f {
	case focusName:
		cmd = m.name.Focus()
	case focusNumber:
		cmd = m.number.Focus()
	case focusSearch:
		cmd = m.search.Focus()
	}
	return m, cmd
}

func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
	case focusNumber:
		m.number, cmd = m.number.Update(msg)
	case focusSearch:
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

// dispatch runs the reducer and turns the resulting effects into commands.
func (m Model) dispatch(a phonebook.Action) (tea.Model, tea.Cmd) {
	var effects []phonebook.Effect
	m.state, effects = phonebook.Reduce(m.state, a)

	if m.name.Value() != m.state.Name {
		m.name.SetValue(m.state.Name)
	}
	if m.number.Value() != m.state.Number {
		m.number.SetValue(m.state.Number)
	}
	if n := len(m.state.Visible()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}

	cmds := make([]tea.Cmd, 0, len(effects))
	for _, eff := range effects {
		cmds = append(cmds, m.perform(eff))
	}
	return m, batch(cmds...)
}

func (m Model) perform(eff phonebook.Effect) tea.Cmd {
	if se, ok := eff.(phonebook.ScheduleExpiry); ok {
		wait := m.expiry.Schedule(se.NoticeID)
		return func() tea.Msg {
			if a := wait(); a != nil {
				return a
			}
			return nil
		}
	}
	return func() tea.Msg {
		if a := m.runner.Run(m.ctx, eff); a != nil {
			return a
		}
		return nil
	}
}

func (m Model) shutdown() {
	m.expiry.Stop()
	m.cancel()
}

// selected returns the contact under the cursor.
func (m Model) selected() (models.Contact, bool) {
	visible := m.state.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return models.Contact{}, false
	}
	return visible[m.cursor], true
}

// batch is tea.Batch without the wrapper for zero or one command.
func batch(cmds ...tea.Cmd) tea.Cmd {
	var valid []tea.Cmd
	for _, c := range cmds {
		if c != nil {
			valid = append(valid, c)
		}
	}
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	}
	return tea.Batch(valid...)
}
