package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/DRSN-tech/catalog-admin/pkg/e"
	"github.com/shopspring/decimal"
)

// maxPrice — верхняя граница цены товара
var maxPrice = decimal.NewFromInt(1_000_000_000)

// Product описывает товар каталога. ID и CreatedAt назначаются хранилищем и не меняются.
type Product struct {
	ID        int64
	Category  Category
	Name      string
	Price     float64
	ImagePath string
	CreatedAt time.Time
}

func NewProduct(category Category, name string, price float64, imagePath string) *Product {
	return &Product{
		Category:  category,
		Name:      strings.TrimSpace(name),
		Price:     price,
		ImagePath: strings.TrimSpace(imagePath),
	}
}

// Validate проверяет категорию и цену товара.
func (p *Product) Validate() error {
	if _, err := ParseCategory(string(p.Category)); err != nil {
		return err
	}

	return ValidatePrice(p.Price)
}

// ProductChanges — частичное изменение товара. nil-поле означает «не менять».
// ID и CreatedAt сюда не входят намеренно: их нельзя изменить через update.
type ProductChanges struct {
	Category  *Category
	Name      *string
	Price     *float64
	ImagePath *string
}

// IsEmpty сообщает, что изменений нет.
func (c *ProductChanges) IsEmpty() bool {
	return c.Category == nil && c.Name == nil && c.Price == nil && c.ImagePath == nil
}

// Validate проверяет только заданные поля.
func (c *ProductChanges) Validate() error {
	if c.Category != nil {
		if _, err := ParseCategory(string(*c.Category)); err != nil {
			return err
		}
	}

	if c.Price != nil {
		return ValidatePrice(*c.Price)
	}

	return nil
}

// Apply возвращает копию p с применёнными изменениями.
func (c *ProductChanges) Apply(p Product) Product {
	if c.Category != nil {
		p.Category = *c.Category
	}
	if c.Name != nil {
		p.Name = strings.TrimSpace(*c.Name)
	}
	if c.Price != nil {
		p.Price = *c.Price
	}
	if c.ImagePath != nil {
		p.ImagePath = strings.TrimSpace(*c.ImagePath)
	}

	return p
}

// ValidatePrice: цена неотрицательная, не больше maxPrice и не точнее копеек.
func ValidatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return e.ErrInvalidPrice
	}

	return validateDecimalPrice(decimal.NewFromFloat(price))
}

// ParsePrice разбирает цену из строки ("599.99", "600") с теми же правилами, что ValidatePrice.
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, e.Wrap("price is empty", e.ErrInvalidPrice)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.Wrap(fmt.Sprintf("price %q", s), e.ErrInvalidPrice)
	}

	if err := validateDecimalPrice(d); err != nil {
		return 0, err
	}

	return d.InexactFloat64(), nil
}

func validateDecimalPrice(d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(maxPrice) {
		return e.Wrap(fmt.Sprintf("price %s", d.String()), e.ErrInvalidPrice)
	}

	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return e.ErrPricePrecision
	}

	return nil
}
