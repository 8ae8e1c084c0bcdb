// Package billing derives order totals from stored line items. Totals are
// never trusted from client input: anything a response shows is recomputed
// here from the snapshots persisted at checkout.
package billing

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"restaurant-ordering-api/models"
)

// ParseAmount parses a stored decimal string and rejects negatives. Line item
// quantity and price snapshots are stored as strings, so every computation
// goes through here first.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "parse amount %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, errors.Errorf("amount %q is negative", s)
	}
	return d, nil
}

// Subtotal sums price*quantity over the line items.
func Subtotal(items []models.OrderItem) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, it := range items {
		price, err := ParseAmount(it.Price)
		if err != nil {
			return decimal.Zero, errors.Wrapf(err, "item %q price", it.Name)
		}
		qty, err := ParseAmount(it.Quantity)
		if err != nil {
			return decimal.Zero, errors.Wrapf(err, "item %q quantity", it.Name)
		}
		sum = sum.Add(price.Mul(qty))
	}
	return sum, nil
}

// ComputeTotal is the authoritative bill: Σ price_i·qty_i + tax + service
// charge, rounded to the smallest currency unit. A zero-item order is legal
// and totals tax + service charge.
func ComputeTotal(items []models.OrderItem, tax, serviceCharge decimal.Decimal) (decimal.Decimal, error) {
	if tax.IsNegative() {
		return decimal.Zero, errors.New("tax is negative")
	}
	if serviceCharge.IsNegative() {
		return decimal.Zero, errors.New("service charge is negative")
	}
	sub, err := Subtotal(items)
	if err != nil {
		return decimal.Zero, err
	}
	return sub.Add(tax).Add(serviceCharge).Round(2), nil
}

// Tax applies rate to the subtotal, rounded to the smallest currency unit.
func Tax(subtotal decimal.Decimal, rate float64) decimal.Decimal {
	return subtotal.Mul(decimal.NewFromFloat(rate)).Round(2)
}
