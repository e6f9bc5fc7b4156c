package domain

import (
	"math"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-admin/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePrice(t *testing.T) {
	tests := []struct {
		name    string
		price   float64
		wantErr error
	}{
		{name: "integer", price: 10},
		{name: "cents", price: 599.99},
		{name: "zero", price: 0},
		{name: "negative", price: -1, wantErr: e.ErrInvalidPrice},
		{name: "too precise", price: 1.001, wantErr: e.ErrPricePrecision},
		{name: "too large", price: 2e9, wantErr: e.ErrInvalidPrice},
		{name: "nan", price: math.NaN(), wantErr: e.ErrInvalidPrice},
		{name: "inf", price: math.Inf(1), wantErr: e.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrice(tt.price)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParsePrice(t *testing.T) {
	p, err := ParsePrice(" 12.50 ")
	require.NoError(t, err)
	assert.Equal(t, 12.5, p)

	_, err = ParsePrice("12,50")
	assert.ErrorIs(t, err, e.ErrInvalidPrice)

	_, err = ParsePrice("")
	assert.ErrorIs(t, err, e.ErrInvalidPrice)

	_, err = ParsePrice("0.125")
	assert.ErrorIs(t, err, e.ErrPricePrecision)
}

func TestProductChanges_ApplyKeepsIdentity(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	p := Product{ID: 5, Category: CategoryShirts, Name: "Tee", Price: 10, ImagePath: "/a.png", CreatedAt: created}

	price := 12.0
	name := "  Polo "
	changes := ProductChanges{Price: &price, Name: &name}

	got := changes.Apply(p)
	assert.Equal(t, int64(5), got.ID)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, 12.0, got.Price)
	assert.Equal(t, "Polo", got.Name)
	assert.Equal(t, "/a.png", got.ImagePath)
	assert.Equal(t, 10.0, p.Price, "original must not change")
}

func TestProductChanges_Validate(t *testing.T) {
	bad := Category("Hats")
	assert.ErrorIs(t, (&ProductChanges{Category: &bad}).Validate(), e.ErrInvalidCategory)
	assert.True(t, (&ProductChanges{}).IsEmpty())
}

func TestCategory(t *testing.T) {
	c, err := ParseCategory("Jeans")
	require.NoError(t, err)
	assert.Equal(t, CategoryJeans, c)

	_, err = ParseCategory("jeans")
	assert.ErrorIs(t, err, e.ErrInvalidCategory)

	assert.Equal(t, CategoryJeans, CategoryShirts.Next(1))
	assert.Equal(t, CategoryAccessories, CategoryShirts.Next(-1))
	assert.Len(t, Categories(), 5)
}
