package ui

import tea "github.com/charmbracelet/bubbletea"

const alertBuffer = 16

// alertMsg доставляет сообщение Alerter в цикл bubbletea.
type alertMsg string

// AlertSink реализует gqlclient.Alerter: сообщения из команд уходят в канал,
// откуда их забирает корневая модель.
type AlertSink struct {
	ch chan string
}

func NewAlertSink() *AlertSink {
	return &AlertSink{ch: make(chan string, alertBuffer)}
}

// Alert не блокирует: если буфер полон, сообщение отбрасывается.
func (s *AlertSink) Alert(message string) {
	select {
	case s.ch <- message:
	default:
	}
}

// Wait — команда, ожидающая следующее сообщение.
func (s *AlertSink) Wait() tea.Cmd {
	return func() tea.Msg {
		return alertMsg(<-s.ch)
	}
}
