package domain

import (
	"fmt"

	"github.com/DRSN-tech/catalog-admin/pkg/e"
)

// Category — категория товара из фиксированного набора
type Category string

const (
	CategoryShirts      Category = "Shirts"
	CategoryJeans       Category = "Jeans"
	CategoryJackets     Category = "Jackets"
	CategorySweaters    Category = "Sweaters"
	CategoryAccessories Category = "Accessories"

	DefaultCategory = CategoryShirts
)

var categories = []Category{
	CategoryShirts,
	CategoryJeans,
	CategoryJackets,
	CategorySweaters,
	CategoryAccessories,
}

// Categories возвращает все допустимые категории в порядке отображения.
func Categories() []Category {
	res := make([]Category, len(categories))
	copy(res, categories)
	return res
}

// ParseCategory проверяет, что строка — допустимая категория.
func ParseCategory(s string) (Category, error) {
	for _, c := range categories {
		if string(c) == s {
			return c, nil
		}
	}

	return "", e.Wrap(fmt.Sprintf("category %q", s), e.ErrInvalidCategory)
}

// Next возвращает следующую категорию по кругу. Используется в формах.
func (c Category) Next(step int) Category {
	idx := 0
	for i, cat := range categories {
		if cat == c {
			idx = i
			break
		}
	}

	n := len(categories)
	return categories[((idx+step)%n+n)%n]
}
