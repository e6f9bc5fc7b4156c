package ui

import (
	"strconv"
	"strings"

	"github.com/DRSN-tech/catalog-admin/internal/domain"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Имена полей формы совпадают с полями GraphQL-схемы.
const (
	fieldCategory    = "category"
	fieldProductName = "product_name"
	fieldPrice       = "price"
	fieldImagePath   = "image_path"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindNumber
	kindCategory
)

// field — одно поле формы: текст, число или выбор категории.
type field struct {
	name     string
	label    string
	kind     fieldKind
	input    textinput.Model
	category domain.Category
}

func newField(name, label string, kind fieldKind) field {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = 40

	if kind == kindNumber {
		ti.CharLimit = 16
		ti.Placeholder = "0.00"
	}

	return field{name: name, label: label, kind: kind, input: ti, category: domain.DefaultCategory}
}

// productFields — поля формы редактирования в порядке отображения.
func productFields() []field {
	return []field{
		newField(fieldCategory, "Category", kindCategory),
		newField(fieldProductName, "Product Name", kindText),
		newField(fieldPrice, "Price", kindNumber),
		newField(fieldImagePath, "Image Path", kindText),
	}
}

func (f *field) setValue(value string) {
	if f.kind == kindCategory {
		if c, err := domain.ParseCategory(value); err == nil {
			f.category = c
		}
		return
	}

	f.input.SetValue(value)
	f.input.CursorEnd()
}

func (f field) value() string {
	if f.kind == kindCategory {
		return string(f.category)
	}
	return f.input.Value()
}

// valid проверяет текущее значение поля. Текстовые поля валидны всегда.
func (f field) valid() bool {
	switch f.kind {
	case kindNumber:
		_, err := domain.ParsePrice(f.input.Value())
		return err == nil
	case kindCategory:
		_, err := domain.ParseCategory(string(f.category))
		return err == nil
	default:
		return true
	}
}

func (f *field) focus() tea.Cmd {
	if f.kind == kindCategory {
		return nil
	}
	return f.input.Focus()
}

func (f *field) blur() {
	f.input.Blur()
}

// update обрабатывает клавишу. changed — изменилось ли значение.
func (f *field) update(msg tea.KeyMsg) (changed bool, cmd tea.Cmd) {
	if f.kind == kindCategory {
		switch msg.String() {
		case "left", "h":
			f.category = f.category.Next(-1)
			return true, nil
		case "right", "l", " ":
			f.category = f.category.Next(1)
			return true, nil
		}
		return false, nil
	}

	before := f.input.Value()
	f.input, cmd = f.input.Update(msg)
	return f.input.Value() != before, cmd
}

func (f field) view(focused bool, invalid bool, s Styles) string {
	var b strings.Builder

	label := s.Label.Render(f.label)
	if focused {
		label = s.Selected.Render("> ") + label
	} else {
		label = "  " + label
	}
	b.WriteString(label)

	if f.kind == kindCategory {
		b.WriteString("< " + string(f.category) + " >")
	} else {
		b.WriteString(f.input.View())
	}

	if invalid {
		b.WriteString(" " + s.Invalid.Render("invalid"))
	}

	return b.String()
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

// moveFocus переводит фокус формы на step полей по кругу и возвращает новый индекс.
func moveFocus(fields []field, focus, step int) (int, tea.Cmd) {
	fields[focus].blur()
	n := len(fields)
	focus = ((focus+step)%n + n) % n
	return focus, fields[focus].focus()
}
