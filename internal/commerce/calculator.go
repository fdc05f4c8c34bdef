// Package commerce derives every money and quantity figure shown to the
// user: line totals, subtotal, coupon discount, and the stock-bound quantity
// clamp. All functions are pure; eligibility policy (usage caps, minimum
// order values) stays on the server.
package commerce

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ariefpradana/tokokita/internal/api"
	pkgerrors "github.com/ariefpradana/tokokita/pkg/errors"
)

var oneHundred = decimal.NewFromInt(100)

// LineTotal is price times quantity for one cart line.
func LineTotal(item api.CartItem) decimal.Decimal {
	return item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Subtotal sums line totals. Order of items never changes the result.
func Subtotal(items []api.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineTotal(item))
	}
	return total
}

// AvailableStock is the availability ceiling for a cart line: the selected
// variant's stock when one is chosen, the parent product's otherwise.
func AvailableStock(item api.CartItem) int {
	if item.Variant != nil {
		return item.Variant.Stock
	}
	return item.Product.Stock
}

// ClampQuantity validates a requested quantity against the line's stock
// ceiling. It returns the quantity unchanged when it fits.
func ClampQuantity(item api.CartItem, requested int) (int, error) {
	if requested < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if available := AvailableStock(item); requested > available {
		return 0, pkgerrors.New(pkgerrors.CodeInsufficientStock,
			fmt.Sprintf("requested %d, available %d", requested, available)).
			WithDetails(map[string]int{"requested": requested, "available": available})
	}
	return requested, nil
}

// DiscountAmount is floor(subtotal * percent / 100). A nil coupon means no
// discount. The result must always be recomputed from the current subtotal,
// never cached across cart mutations.
func DiscountAmount(subtotal decimal.Decimal, coupon *api.Coupon) decimal.Decimal {
	if coupon == nil {
		return decimal.Zero
	}
	percent := decimal.NewFromInt(int64(coupon.DiscountPercent))
	return subtotal.Mul(percent).Div(oneHundred).Floor()
}

// Total is subtotal minus discount, floored at zero.
func Total(subtotal, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
