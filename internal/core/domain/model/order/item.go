package order

import (
	"errors"
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is a line of the order. Items are fixed once the order is created.
type Item struct {
	name     string
	quantity int
	price    decimal.Decimal
}

func NewItem(name string, quantity int, price decimal.Decimal) (Item, error) {
	var nameErr, quantityErr, priceErr error
	name = strings.TrimSpace(name)
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("item.name")
	}
	if quantity < 1 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("item.quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	if price.IsNegative() {
		priceErr = errs.NewValueIsInvalidErrorWithCause("item.price", fmt.Errorf("%s is negative", price))
	}
	if err := errors.Join(nameErr, quantityErr, priceErr); err != nil {
		return Item{}, err
	}
	return Item{name: name, quantity: quantity, price: price}, nil
}

func (i Item) Name() string { return i.name }
func (i Item) Quantity() int { return i.quantity }
func (i Item) Price() decimal.Decimal { return i.price }

// Subtotal is price multiplied by quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.price.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// TotalOf sums the subtotals of items.
func TotalOf(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
