package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-ordering-api/models"
)

func items(pairs ...[2]string) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, models.OrderItem{Name: "item", Price: p[0], Quantity: p[1]})
	}
	return out
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestComputeTotal(t *testing.T) {
	total, err := ComputeTotal(
		items([2]string{"120.50", "2"}, [2]string{"40.25", "1"}),
		dec("12.05"), dec("20"),
	)
	require.NoError(t, err)
	assert.Equal(t, "313.30", total.StringFixed(2))
}

func TestComputeTotalZeroItems(t *testing.T) {
	total, err := ComputeTotal(nil, dec("12.05"), dec("20"))
	require.NoError(t, err)
	assert.Equal(t, "32.05", total.StringFixed(2))
}

func TestComputeTotalAllZero(t *testing.T) {
	total, err := ComputeTotal(nil, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestComputeTotalExactness(t *testing.T) {
	// 0.1 * 3 is the classic float trap; decimal math must give exactly 0.30
	total, err := ComputeTotal(items([2]string{"0.1", "3"}), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "0.30", total.StringFixed(2))
}

func TestComputeTotalFractionalQuantity(t *testing.T) {
	// quantities are decimal-bearing in the stored form
	total, err := ComputeTotal(items([2]string{"10.00", "1.5"}), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "15.00", total.StringFixed(2))
}

func TestComputeTotalRejectsBadInputs(t *testing.T) {
	_, err := ComputeTotal(items([2]string{"abc", "1"}), decimal.Zero, decimal.Zero)
	assert.Error(t, err)

	_, err = ComputeTotal(items([2]string{"-5", "1"}), decimal.Zero, decimal.Zero)
	assert.Error(t, err)

	_, err = ComputeTotal(items([2]string{"5", "-1"}), decimal.Zero, decimal.Zero)
	assert.Error(t, err)

	_, err = ComputeTotal(nil, dec("-1"), decimal.Zero)
	assert.Error(t, err)

	_, err = ComputeTotal(nil, decimal.Zero, dec("-1"))
	assert.Error(t, err)
}

func TestSubtotal(t *testing.T) {
	sub, err := Subtotal(items([2]string{"2.50", "4"}, [2]string{"1.25", "2"}))
	require.NoError(t, err)
	assert.Equal(t, "12.50", sub.StringFixed(2))

	sub, err = Subtotal(nil)
	require.NoError(t, err)
	assert.True(t, sub.IsZero())
}

func TestTaxRounding(t *testing.T) {
	// 99.99 * 0.05 = 4.9995 → rounds to the smallest currency unit
	tax := Tax(dec("99.99"), 0.05)
	assert.Equal(t, "5.00", tax.StringFixed(2))

	assert.Equal(t, "0.00", Tax(decimal.Zero, 0.05).StringFixed(2))
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("3.75")
	require.NoError(t, err)
	assert.Equal(t, "3.75", d.StringFixed(2))

	_, err = ParseAmount("")
	assert.Error(t, err)

	_, err = ParseAmount("-0.01")
	assert.Error(t, err)
}
