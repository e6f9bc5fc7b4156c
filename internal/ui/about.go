package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type aboutLoadedMsg struct {
	seq     uint64
	message string
	ok      bool
}

type aboutSavedMsg struct {
	message string
	ok      bool
}

// About — просмотр и замена сообщения «о сервисе».
type About struct {
	api    CatalogAPI
	styles Styles

	message string
	input   textinput.Model
	seq     uint64
	loading bool
	status  string
}

func NewAbout(api CatalogAPI, styles Styles) About {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "new about message"
	ti.CharLimit = 512
	ti.Width = 60

	return About{api: api, styles: styles, input: ti}
}

func (m About) Message() string { return m.message }

// Load запускает загрузку текущего сообщения.
func (m About) Load() (About, tea.Cmd) {
	m.seq++
	m.loading = true
	m.status = ""

	api, seq := m.api, m.seq
	return m, tea.Batch(m.input.Focus(), func() tea.Msg {
		ctx, cancel := requestCtx()
		defer cancel()

		message, ok := api.About(ctx)
		return aboutLoadedMsg{seq: seq, message: message, ok: ok}
	})
}

func (m About) Update(msg tea.Msg) (About, tea.Cmd) {
	switch msg := msg.(type) {
	case aboutLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.ok {
			m.message = msg.message
		}
		return m, nil

	case aboutSavedMsg:
		if msg.ok {
			m.message = msg.message
			m.input.Reset()
			m.status = "Saved."
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.input.Blur()
			return m, func() tea.Msg { return backMsg{} }
		case "enter":
			return m, m.save()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// save заменяет сообщение целиком. Пустой ввод не отправляется.
func (m About) save() tea.Cmd {
	message := strings.TrimSpace(m.input.Value())
	if message == "" {
		return nil
	}

	api := m.api
	return func() tea.Msg {
		ctx, cancel := requestCtx()
		defer cancel()

		saved, ok := api.SetAboutMessage(ctx, message)
		return aboutSavedMsg{message: saved, ok: ok}
	}
}

func (m About) View() string {
	s := m.styles

	var b strings.Builder
	b.WriteString(s.Title.Render("About"))
	b.WriteString("\n")
	if m.loading {
		b.WriteString(s.Muted.Render("Loading..."))
	} else {
		b.WriteString(m.message)
	}
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("enter save • esc back"))
	return b.String()
}
