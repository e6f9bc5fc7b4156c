package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenList screen = iota
	screenEdit
	screenAdd
	screenAbout
)

// Model — корневая модель: переключает экраны и показывает сообщения об ошибках.
type Model struct {
	alerts *AlertSink
	styles Styles

	screen screen
	list   ProductList
	edit   ProductEdit
	add    ProductAdd
	about  About
	alert  string

	initCmd tea.Cmd
}

// New создаёт корневую модель. Если initialID > 0, сразу открывается редактирование товара.
func New(api CatalogAPI, alerts *AlertSink, initialID int) Model {
	styles := DefaultStyles()
	m := Model{
		alerts: alerts,
		styles: styles,
		list:   NewProductList(api, styles),
		edit:   NewProductEdit(api, styles),
		add:    NewProductAdd(api, styles),
		about:  NewAbout(api, styles),
	}

	if initialID > 0 {
		m.screen = screenEdit
		m.edit, m.initCmd = m.edit.Open(initialID)
	} else {
		m.list, m.initCmd = m.list.Load()
	}

	return m
}

func (m Model) Screen() screen    { return m.screen }
func (m Model) Alert() string     { return m.alert }
func (m Model) Edit() ProductEdit { return m.edit }
func (m Model) List() ProductList { return m.list }
func (m Model) Add() ProductAdd   { return m.add }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.alerts.Wait(), m.initCmd)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case alertMsg:
		m.alert = string(msg)
		return m, m.alerts.Wait()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.String() == "q" && m.screen == screenList {
			return m, tea.Quit
		}
		m.alert = ""

	case openEditMsg:
		m.screen = screenEdit
		m.edit, cmd = m.edit.Open(msg.id)
		return m, cmd

	case openAddMsg:
		m.screen = screenAdd
		m.add, cmd = m.add.Open()
		return m, cmd

	case productAddedMsg:
		m.add, cmd = m.add.Update(msg)
		return m, cmd

	case openAboutMsg:
		m.screen = screenAbout
		m.about, cmd = m.about.Load()
		return m, cmd

	case backMsg:
		m.screen = screenList
		m.list, cmd = m.list.Load()
		return m, cmd

	case productLoadedMsg, productSavedMsg:
		m.edit, cmd = m.edit.Update(msg)
		return m, cmd

	case productListLoadedMsg, productRemovedMsg:
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case aboutLoadedMsg, aboutSavedMsg:
		m.about, cmd = m.about.Update(msg)
		return m, cmd
	}

	switch m.screen {
	case screenEdit:
		m.edit, cmd = m.edit.Update(msg)
	case screenAdd:
		m.add, cmd = m.add.Update(msg)
	case screenAbout:
		m.about, cmd = m.about.Update(msg)
	default:
		m.list, cmd = m.list.Update(msg)
	}

	return m, cmd
}

func (m Model) View() string {
	var body string
	switch m.screen {
	case screenEdit:
		body = m.edit.View()
	case screenAdd:
		body = m.add.View()
	case screenAbout:
		body = m.about.View()
	default:
		body = m.list.View()
	}

	if m.alert != "" {
		body = m.styles.Alert.Render(m.alert) + "\n\n" + body
	}

	return body + "\n"
}
