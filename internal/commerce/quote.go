package commerce

import (
	"github.com/shopspring/decimal"

	"github.com/ariefpradana/tokokita/internal/api"
)

// Quote is the checkout view of the cart: items, the applied coupon, and the
// derived figures. Every mutation recomputes the discount against the fresh
// subtotal, so a coupon never applies to a stale subtotal.
type Quote struct {
	items    []api.CartItem
	coupon   *api.Coupon
	discount decimal.Decimal
}

func NewQuote(items []api.CartItem) *Quote {
	q := &Quote{}
	q.SetItems(items)
	return q
}

// SetItems replaces the cart lines. An empty cart drops the applied coupon:
// no discount without a cart.
func (q *Quote) SetItems(items []api.CartItem) {
	q.items = items
	if len(items) == 0 {
		q.coupon = nil
	}
	q.Recalculate()
}

// ApplyCoupon records a server-validated coupon and recomputes the discount.
func (q *Quote) ApplyCoupon(coupon *api.Coupon) {
	q.coupon = coupon
	q.Recalculate()
}

// RemoveCoupon drops the coupon and its discount.
func (q *Quote) RemoveCoupon() {
	q.coupon = nil
	q.Recalculate()
}

// Recalculate rederives the discount from the current subtotal and coupon.
func (q *Quote) Recalculate() {
	q.discount = DiscountAmount(q.Subtotal(), q.coupon)
}

func (q *Quote) Items() []api.CartItem { return q.items }
func (q *Quote) Coupon() *api.Coupon   { return q.coupon }

func (q *Quote) Subtotal() decimal.Decimal { return Subtotal(q.items) }
func (q *Quote) Discount() decimal.Decimal { return q.discount }

func (q *Quote) Total() decimal.Decimal {
	return Total(q.Subtotal(), q.discount)
}
