package ui

import (
	"fmt"
	"strings"

	"github.com/DRSN-tech/catalog-admin/pkg/gqlclient"
	tea "github.com/charmbracelet/bubbletea"
)

type productListLoadedMsg struct {
	seq      uint64
	products []gqlclient.Product
	ok       bool
}

type productRemovedMsg struct {
	id      int
	removed bool
	ok      bool
}

// openEditMsg просит корневую модель открыть редактирование товара.
type openEditMsg struct {
	id int
}

type openAboutMsg struct{}

// backMsg возвращает к списку товаров.
type backMsg struct{}

// ProductList — список товаров. Загружается при каждом входе на экран.
type ProductList struct {
	api    CatalogAPI
	styles Styles

	products []gqlclient.Product
	cursor   int
	seq      uint64
	loading  bool
	status   string
}

func NewProductList(api CatalogAPI, styles Styles) ProductList {
	return ProductList{api: api, styles: styles}
}

func (m ProductList) Products() []gqlclient.Product { return m.products }

// Load запускает загрузку списка.
func (m ProductList) Load() (ProductList, tea.Cmd) {
	m.seq++
	m.loading = true

	api, seq := m.api, m.seq
	return m, func() tea.Msg {
		ctx, cancel := requestCtx()
		defer cancel()

		products, ok := api.ProductList(ctx)
		return productListLoadedMsg{seq: seq, products: products, ok: ok}
	}
}

func (m ProductList) Update(msg tea.Msg) (ProductList, tea.Cmd) {
	switch msg := msg.(type) {
	case productListLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.ok {
			m.products = msg.products
			m.clampCursor()
		}
		return m, nil

	case productRemovedMsg:
		if !msg.ok {
			return m, nil
		}
		if !msg.removed {
			m.status = fmt.Sprintf("Product %d was already removed.", msg.id)
		} else {
			m.status = fmt.Sprintf("Product %d removed.", msg.id)
		}
		m.drop(msg.id)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m ProductList) handleKey(msg tea.KeyMsg) (ProductList, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.products)-1 {
			m.cursor++
		}
	case "r":
		m.status = ""
		return m.Load()
	case "a":
		return m, func() tea.Msg { return openAboutMsg{} }
	case "n":
		return m, func() tea.Msg { return openAddMsg{} }
	case "enter", "e":
		if p, ok := m.selected(); ok {
			id := p.ID
			return m, func() tea.Msg { return openEditMsg{id: id} }
		}
	case "d", "delete":
		if p, ok := m.selected(); ok {
			return m, m.remove(p.ID)
		}
	}

	return m, nil
}

func (m ProductList) remove(id int) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := requestCtx()
		defer cancel()

		removed, ok := api.ProductRemove(ctx, id)
		return productRemovedMsg{id: id, removed: removed, ok: ok}
	}
}

func (m ProductList) selected() (gqlclient.Product, bool) {
	if m.cursor < 0 || m.cursor >= len(m.products) {
		return gqlclient.Product{}, false
	}
	return m.products[m.cursor], true
}

func (m *ProductList) drop(id int) {
	res := make([]gqlclient.Product, 0, len(m.products))
	for _, p := range m.products {
		if p.ID != id {
			res = append(res, p)
		}
	}
	m.products = res
	m.clampCursor()
}

func (m *ProductList) clampCursor() {
	if m.cursor >= len(m.products) {
		m.cursor = len(m.products) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m ProductList) View() string {
	s := m.styles

	var b strings.Builder
	b.WriteString(s.Title.Render("Product Inventory"))
	b.WriteString("\n")

	switch {
	case m.loading && len(m.products) == 0:
		b.WriteString(s.Muted.Render("Loading products..."))
		b.WriteString("\n")
	case len(m.products) == 0:
		b.WriteString(s.Muted.Render("No products."))
		b.WriteString("\n")
	default:
		b.WriteString(fmt.Sprintf("  %-5s | %-12s | %-24s | %10s | %s\n", "ID", "Category", "Product Name", "Price", "Image"))
		b.WriteString("  " + strings.Repeat("-", 72) + "\n")
		for i, p := range m.products {
			row := fmt.Sprintf("%-5d | %-12s | %-24s | %10s | %s",
				p.ID, p.Category, truncate(p.ProductName, 24), "$"+formatPrice(p.Price), p.ImagePath)
			if i == m.cursor {
				b.WriteString(s.Selected.Render("> " + row))
			} else {
				b.WriteString("  " + row)
			}
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Muted.Render("↑↓ select • enter edit • n new • d remove • r reload • a about • q quit"))
	return b.String()
}

func truncate(s string, l int) string {
	r := []rune(s)
	if len(r) > l {
		return string(r[:l-3]) + "..."
	}
	return s
}
