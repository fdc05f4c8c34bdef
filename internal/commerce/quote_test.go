package commerce

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ariefpradana/tokokita/internal/api"
)

func TestQuoteRecomputesDiscountOnQuantityChange(t *testing.T) {
	items := []api.CartItem{item(50000, 2), item(30000, 1)}
	q := NewQuote(items)
	q.ApplyCoupon(&api.Coupon{Code: "HEMAT20", DiscountPercent: 20})

	if !q.Discount().Equal(decimal.NewFromInt(26000)) {
		t.Fatalf("unexpected discount: %s", q.Discount())
	}

	// Drop one line: the discount must follow the new subtotal before display.
	q.SetItems([]api.CartItem{item(50000, 2)})
	if !q.Subtotal().Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("unexpected subtotal: %s", q.Subtotal())
	}
	if !q.Discount().Equal(decimal.NewFromInt(20000)) {
		t.Fatalf("discount not recomputed: %s", q.Discount())
	}
	if !q.Total().Equal(decimal.NewFromInt(80000)) {
		t.Fatalf("unexpected total: %s", q.Total())
	}
}

func TestEmptyCartClearsCoupon(t *testing.T) {
	q := NewQuote([]api.CartItem{item(10000, 1)})
	q.ApplyCoupon(&api.Coupon{Code: "X", DiscountPercent: 50})

	q.SetItems(nil)

	if q.Coupon() != nil {
		t.Fatal("removing the last item must clear the applied coupon")
	}
	if !q.Discount().IsZero() {
		t.Fatalf("discount should be zero on an empty cart, got %s", q.Discount())
	}
	if !q.Total().IsZero() {
		t.Fatalf("total should be zero on an empty cart, got %s", q.Total())
	}
}

func TestRemoveCoupon(t *testing.T) {
	q := NewQuote([]api.CartItem{item(10000, 2)})
	q.ApplyCoupon(&api.Coupon{Code: "X", DiscountPercent: 10})
	if q.Discount().IsZero() {
		t.Fatal("expected a discount while the coupon is applied")
	}

	q.RemoveCoupon()
	if !q.Discount().IsZero() || q.Coupon() != nil {
		t.Fatal("removing the coupon must zero the discount")
	}
	if !q.Total().Equal(q.Subtotal()) {
		t.Fatal("total should equal subtotal without a coupon")
	}
}
