package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestNewProduct(t *testing.T) {
	tests := []struct {
		name          string
		productName   string
		purchasePrice string
		shippingCost  string
		packagingCost string
		retailPrice   string
		stockLevel    int
		wantErr       bool
		wantLanded    string
	}{
		{
			name:          "valid product computes landed cost",
			productName:   "Cotton Kurta",
			purchasePrice: "450",
			shippingCost:  "50",
			packagingCost: "25",
			retailPrice:   "999",
			stockLevel:    100,
			wantLanded:    "525",
		},
		{
			name:          "zero costs are allowed",
			productName:   "Sample Item",
			purchasePrice: "0",
			shippingCost:  "0",
			packagingCost: "0",
			retailPrice:   "0",
			wantLanded:    "0",
		},
		{
			name:          "empty name rejected",
			productName:   "",
			purchasePrice: "100",
			shippingCost:  "0",
			packagingCost: "0",
			retailPrice:   "200",
			wantErr:       true,
		},
		{
			name:          "negative cost rejected",
			productName:   "Bad Item",
			purchasePrice: "-10",
			shippingCost:  "0",
			packagingCost: "0",
			retailPrice:   "200",
			wantErr:       true,
		},
		{
			name:          "negative stock rejected",
			productName:   "Bad Item",
			purchasePrice: "10",
			shippingCost:  "0",
			packagingCost: "0",
			retailPrice:   "200",
			stockLevel:    -1,
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProduct(tt.productName, d(tt.purchasePrice), d(tt.shippingCost), d(tt.packagingCost), d(tt.retailPrice), tt.stockLevel, 10)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, d(tt.wantLanded).Equal(p.LandedCost), "landed cost = %s", p.LandedCost)
			assert.True(t, strings.HasPrefix(p.SKU, "SKU-"))
			assert.NotEqual(t, "", p.ID.String())
		})
	}
}

func TestProduct_UpdateCostsRecalculatesLandedCost(t *testing.T) {
	p, err := NewProduct("Cotton Kurta", d("450"), d("50"), d("25"), d("999"), 100, 10)
	require.NoError(t, err)
	require.True(t, d("525").Equal(p.LandedCost))

	newShipping := d("80")
	err = p.UpdateCosts(nil, &newShipping, nil)
	require.NoError(t, err)
	assert.True(t, d("555").Equal(p.LandedCost))
	assert.True(t, d("450").Equal(p.PurchasePrice), "untouched components stay put")

	negative := d("-5")
	err = p.UpdateCosts(&negative, nil, nil)
	assert.Error(t, err)
}

func TestProduct_MarginPercent(t *testing.T) {
	p, err := NewProduct("Cotton Kurta", d("450"), d("50"), d("25"), d("999"), 100, 10)
	require.NoError(t, err)

	// (999 - 525) / 999 * 100
	margin := p.MarginPercent()
	assert.True(t, margin.GreaterThan(d("47.4")), "margin = %s", margin)
	assert.True(t, margin.LessThan(d("47.5")), "margin = %s", margin)

	require.NoError(t, p.UpdateRetailPrice(decimal.Zero))
	assert.True(t, p.MarginPercent().IsZero(), "zero retail yields zero margin, not a division error")
}

func TestProduct_AdjustStock(t *testing.T) {
	p, err := NewProduct("Cotton Kurta", d("450"), d("50"), d("25"), d("999"), 5, 10)
	require.NoError(t, err)

	p.AdjustStock(-2)
	assert.Equal(t, 3, p.StockLevel)

	p.AdjustStock(-10)
	assert.Equal(t, 0, p.StockLevel, "stock is clamped at zero")

	p.AdjustStock(4)
	assert.Equal(t, 4, p.StockLevel)
}

func TestProduct_IsLowStock(t *testing.T) {
	p, err := NewProduct("Cotton Kurta", d("450"), d("50"), d("25"), d("999"), 11, 10)
	require.NoError(t, err)
	assert.False(t, p.IsLowStock())

	require.NoError(t, p.SetStockLevel(10))
	assert.True(t, p.IsLowStock(), "at threshold counts as low")

	require.NoError(t, p.SetStockLevel(0))
	assert.True(t, p.IsLowStock())
}

func TestGenerateSKU(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		sku := GenerateSKU()
		assert.Len(t, sku, 13)
		assert.True(t, strings.HasPrefix(sku, "SKU-"))
		seen[sku] = true
	}
	assert.Greater(t, len(seen), 45, "codes should not collide in practice")
}
