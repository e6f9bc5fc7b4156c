package ui

import (
	"fmt"
	"strings"

	"github.com/DRSN-tech/catalog-admin/internal/domain"
	"github.com/DRSN-tech/catalog-admin/pkg/gqlclient"
	tea "github.com/charmbracelet/bubbletea"
)

// EditState — состояние экрана редактирования.
type EditState int

const (
	EditLoading EditState = iota
	EditNotFound
	EditEditing
)

func (s EditState) String() string {
	switch s {
	case EditLoading:
		return "loading"
	case EditNotFound:
		return "not_found"
	case EditEditing:
		return "editing"
	default:
		return "unknown"
	}
}

const msgFixInvalid = "Please correct invalid fields before submitting."

type productLoadedMsg struct {
	seq     uint64
	product *gqlclient.Product
	ok      bool
}

type productSavedMsg struct {
	seq     uint64
	product *gqlclient.Product
	ok      bool
}

// ProductEdit — экран редактирования товара.
//
// Каждая загрузка получает новый seq; ответы с устаревшим seq отбрасываются,
// поэтому медленный ответ по прошлому id не перетрёт текущий товар.
type ProductEdit struct {
	api    CatalogAPI
	styles Styles

	id      int
	state   EditState
	seq     uint64
	product *gqlclient.Product

	fields  []field
	focus   int
	invalid InvalidFieldSet
	saving  bool
	status  string
}

func NewProductEdit(api CatalogAPI, styles Styles) ProductEdit {
	return ProductEdit{
		api:     api,
		styles:  styles,
		fields:  productFields(),
		invalid: InvalidFieldSet{},
	}
}

// Open переводит экран в Loading для id и запускает загрузку.
func (m ProductEdit) Open(id int) (ProductEdit, tea.Cmd) {
	m.id = id
	m.seq++
	m.state = EditLoading
	m.product = nil
	m.saving = false
	m.status = ""

	api, seq := m.api, m.seq
	return m, func() tea.Msg {
		ctx, cancel := requestCtx()
		defer cancel()

		product, ok := api.Product(ctx, id)
		return productLoadedMsg{seq: seq, product: product, ok: ok}
	}
}

func (m ProductEdit) ID() int                     { return m.id }
func (m ProductEdit) State() EditState            { return m.state }
func (m ProductEdit) Product() *gqlclient.Product { return m.product }
func (m ProductEdit) Invalid() InvalidFieldSet    { return m.invalid }

func (m ProductEdit) Update(msg tea.Msg) (ProductEdit, tea.Cmd) {
	switch msg := msg.(type) {
	case productLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m.loaded(msg.product, msg.ok)

	case productSavedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.saving = false
		if !msg.ok || msg.product == nil {
			return m, nil
		}
		m.product = msg.product
		m.fill(*msg.product)
		m.status = "Saved."
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m ProductEdit) loaded(product *gqlclient.Product, ok bool) (ProductEdit, tea.Cmd) {
	m.invalid = InvalidFieldSet{}
	if !ok || product == nil {
		m.state = EditNotFound
		m.product = nil
		return m, nil
	}

	m.state = EditEditing
	m.product = product
	m.focus = 0
	m.fill(*product)
	return m, m.fields[m.focus].focus()
}

// fill заполняет форму значениями товара и сбрасывает отметки невалидности.
func (m *ProductEdit) fill(p gqlclient.Product) {
	fields := productFields()
	for i := range fields {
		switch fields[i].name {
		case fieldCategory:
			fields[i].setValue(p.Category)
		case fieldProductName:
			fields[i].setValue(p.ProductName)
		case fieldPrice:
			fields[i].setValue(formatPrice(p.Price))
		case fieldImagePath:
			fields[i].setValue(p.ImagePath)
		}
	}
	if m.focus < len(fields) {
		fields[m.focus].focus()
	}

	m.fields = fields
	m.invalid = InvalidFieldSet{}
}

func (m ProductEdit) handleKey(msg tea.KeyMsg) (ProductEdit, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return backMsg{} }
	case "ctrl+r":
		return m.Open(m.id)
	}

	if m.state != EditEditing {
		return m, nil
	}

	switch msg.String() {
	case "enter", "ctrl+s":
		return m.Submit()
	case "tab", "down":
		var cmd tea.Cmd
		m.focus, cmd = moveFocus(m.fields, m.focus, 1)
		return m, cmd
	case "shift+tab", "up":
		var cmd tea.Cmd
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

// Submit отправляет изменённые поля. Пока есть невалидные поля, запрос не уходит.
func (m ProductEdit) Submit() (ProductEdit, tea.Cmd) {
	if m.state != EditEditing || m.saving {
		return m, nil
	}

	if !m.invalid.Empty() {
		m.status = msgFixInvalid
		return m, nil
	}

	changes := m.changes()
	if changes.IsEmpty() {
		m.status = "Nothing to save."
		return m, nil
	}

	m.saving = true
	m.status = ""

	api, id, seq := m.api, m.id, m.seq
	return m, func() tea.Msg {
		ctx, cancel := requestCtx()
		defer cancel()

		product, ok := api.ProductUpdate(ctx, id, changes)
		return productSavedMsg{seq: seq, product: product, ok: ok}
	}
}

// changes собирает поля, отличающиеся от загруженного товара. id и created не отправляются.
func (m ProductEdit) changes() gqlclient.ProductChanges {
	var res gqlclient.ProductChanges
	if m.product == nil {
		return res
	}

	for _, f := range m.fields {
		value := strings.TrimSpace(f.value())
		switch f.name {
		case fieldCategory:
			if value != m.product.Category {
				res.Category = &value
			}
		case fieldProductName:
			if value != m.product.ProductName {
				res.ProductName = &value
			}
		case fieldPrice:
			price, err := domain.ParsePrice(value)
			if err == nil && price != m.product.Price {
				res.Price = &price
			}
		case fieldImagePath:
			if value != m.product.ImagePath {
				res.ImagePath = &value
			}
		}
	}

	return res
}

func (m ProductEdit) View() string {
	s := m.styles

	switch m.state {
	case EditLoading:
		return s.Muted.Render(fmt.Sprintf("Loading product %d...", m.id))
	case EditNotFound:
		return s.Error.Render(fmt.Sprintf("product with ID %d not found.", m.id)) + "\n\n" +
			s.Muted.Render("esc back • ctrl+r retry")
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("Editing Product: " + m.product.ProductName))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render(fmt.Sprintf("ID %d • created %s", m.product.ID, m.product.Created.Format("2006-01-02 15:04"))))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		b.WriteString(f.view(i == m.focus, m.invalid.Has(f.name), s))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case !m.invalid.Empty():
		b.WriteString(s.Error.Render(msgFixInvalid))
		b.WriteString("\n")
	case m.saving:
		b.WriteString(s.Muted.Render("Saving..."))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	b.WriteString(s.Muted.Render("tab/↑↓ move • ←/→ category • enter submit • ctrl+r reload • esc back"))
	return b.String()
}
