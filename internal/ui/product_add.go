package ui

import (
	"strings"

	"github.com/DRSN-tech/catalog-admin/internal/domain"
	"github.com/DRSN-tech/catalog-admin/pkg/gqlclient"
	tea "github.com/charmbracelet/bubbletea"
)

type productAddedMsg struct {
	product *gqlclient.Product
	ok      bool
}

// openAddMsg открывает форму нового товара.
type openAddMsg struct{}

// ProductAdd — форма создания товара. После успешного создания возвращает к списку.
type ProductAdd struct {
	api    CatalogAPI
	styles Styles

	fields  []field
	focus   int
	invalid InvalidFieldSet
	saving  bool
	status  string
}

func NewProductAdd(api CatalogAPI, styles Styles) ProductAdd {
	m := ProductAdd{api: api, styles: styles}
	m.reset()
	return m
}

func (m ProductAdd) Invalid() InvalidFieldSet { return m.invalid }

// Open очищает форму и ставит фокус на первое поле.
func (m ProductAdd) Open() (ProductAdd, tea.Cmd) {
	m.reset()
	return m, m.fields[m.focus].focus()
}

func (m *ProductAdd) reset() {
	fields := productFields()
	for i := range fields {
		if fields[i].name == fieldPrice {
			fields[i].setValue("0")
		}
	}

	m.fields = fields
	m.focus = 0
	m.invalid = InvalidFieldSet{}
	m.saving = false
	m.status = ""
}

func (m ProductAdd) Update(msg tea.Msg) (ProductAdd, tea.Cmd) {
	switch msg := msg.(type) {
	case productAddedMsg:
		m.saving = false
		if !msg.ok || msg.product == nil {
			return m, nil
		}
		m.reset()
		return m, func() tea.Msg { return backMsg{} }

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m ProductAdd) handleKey(msg tea.KeyMsg) (ProductAdd, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return backMsg{} }
	case "enter", "ctrl+s":
		return m.Submit()
	case "tab", "down":
		m.focus, cmd = moveFocus(m.fields, m.focus, 1)
		return m, cmd
	case "shift+tab", "up":
		m.focus, cmd = moveFocus(m.fields, m.focus, -1)
		return m, cmd
	}

	f := &m.fields[m.focus]
	changed, cmd := f.update(msg)
	if changed {
		m.invalid.Set(f.name, !f.valid())
		m.status = ""
	}

	return m, cmd
}

// Submit создаёт товар. Пока есть невалидные поля, запрос не уходит.
func (m ProductAdd) Submit() (ProductAdd, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	if !m.invalid.Empty() {
		m.status = msgFixInvalid
		return m, nil
	}

	in, err := m.input()
	if err != nil {
		m.invalid.Set(fieldPrice, true)
		return m, nil
	}

	m.saving = true
	api := m.api
	return m, func() tea.Msg {
		ctx, cancel := requestCtx()
		defer cancel()

		product, ok := api.ProductAdd(ctx, in)
		return productAddedMsg{product: product, ok: ok}
	}
}

func (m ProductAdd) input() (gqlclient.ProductInput, error) {
	var in gqlclient.ProductInput
	for _, f := range m.fields {
		value := strings.TrimSpace(f.value())
		switch f.name {
		case fieldCategory:
			in.Category = value
		case fieldProductName:
			in.ProductName = value
		case fieldPrice:
			price, err := domain.ParsePrice(value)
			if err != nil {
				return in, err
			}
			in.Price = price
		case fieldImagePath:
			in.ImagePath = value
		}
	}

	return in, nil
}

func (m ProductAdd) View() string {
	s := m.styles

	var b strings.Builder
	b.WriteString(s.Title.Render("Add Product"))
	b.WriteString("\n")

	for i, f := range m.fields {
		b.WriteString(f.view(i == m.focus, m.invalid.Has(f.name), s))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case !m.invalid.Empty():
		b.WriteString(s.Error.Render(msgFixInvalid) + "\n")
	case m.saving:
		b.WriteString(s.Muted.Render("Saving...") + "\n")
	case m.status != "":
		b.WriteString(m.status + "\n")
	}

	b.WriteString(s.Muted.Render("tab/↑↓ move • ←/→ category • enter add • esc back"))
	return b.String()
}
