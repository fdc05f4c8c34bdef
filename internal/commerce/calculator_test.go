package commerce

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ariefpradana/tokokita/internal/api"
	pkgerrors "github.com/ariefpradana/tokokita/pkg/errors"
)

func item(price int64, qty int) api.CartItem {
	return api.CartItem{
		Product:  api.Product{Price: decimal.NewFromInt(price), Stock: 100},
		Quantity: qty,
	}
}

func variantItem(productStock, variantStock, qty int) api.CartItem {
	return api.CartItem{
		Product:  api.Product{Price: decimal.NewFromInt(10000), Stock: productStock},
		Variant:  &api.Variant{Stock: variantStock, IsActive: true},
		Quantity: qty,
	}
}

func TestSubtotalScenario(t *testing.T) {
	// cart = [{50000 x2}, {30000 x1}] -> 130000, 20% coupon -> 26000 -> 104000
	items := []api.CartItem{item(50000, 2), item(30000, 1)}

	subtotal := Subtotal(items)
	if !subtotal.Equal(decimal.NewFromInt(130000)) {
		t.Fatalf("unexpected subtotal: %s", subtotal)
	}

	coupon := &api.Coupon{Code: "HEMAT20", DiscountPercent: 20}
	discount := DiscountAmount(subtotal, coupon)
	if !discount.Equal(decimal.NewFromInt(26000)) {
		t.Fatalf("unexpected discount: %s", discount)
	}

	total := Total(subtotal, discount)
	if !total.Equal(decimal.NewFromInt(104000)) {
		t.Fatalf("unexpected total: %s", total)
	}
}

func TestSubtotalOrderIndependent(t *testing.T) {
	items := []api.CartItem{item(19999, 3), item(250, 7), item(100000, 1)}

	want := Subtotal(items)
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]api.CartItem, len(items))
		copy(shuffled, items)
		rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		if got := Subtotal(shuffled); !got.Equal(want) {
			t.Fatalf("subtotal changed with item order: %s vs %s", got, want)
		}
	}

	if !Subtotal(nil).IsZero() {
		t.Fatal("empty cart must have zero subtotal")
	}
}

func TestDiscountFloorAndBounds(t *testing.T) {
	subtotal := decimal.NewFromInt(999)

	// 15% of 999 = 149.85, floored to 149.
	discount := DiscountAmount(subtotal, &api.Coupon{DiscountPercent: 15})
	if !discount.Equal(decimal.NewFromInt(149)) {
		t.Fatalf("expected floored discount 149, got %s", discount)
	}

	if !DiscountAmount(subtotal, nil).IsZero() {
		t.Fatal("no coupon means no discount")
	}

	full := DiscountAmount(subtotal, &api.Coupon{DiscountPercent: 100})
	if !Total(subtotal, full).IsZero() {
		t.Fatal("a 100% coupon should zero the total, never go negative")
	}
	if Total(decimal.NewFromInt(10), decimal.NewFromInt(25)).IsNegative() {
		t.Fatal("total must be floored at zero")
	}
}

func TestAvailableStockUsesVariantCeiling(t *testing.T) {
	it := variantItem(50, 2, 2)
	if AvailableStock(it) != 2 {
		t.Fatalf("variant stock must win, got %d", AvailableStock(it))
	}

	it.Variant = nil
	if AvailableStock(it) != 50 {
		t.Fatalf("product stock applies without a variant, got %d", AvailableStock(it))
	}
}

func TestClampQuantity(t *testing.T) {
	it := variantItem(50, 2, 2)

	// Increase past variant stock is rejected, quantity untouched.
	_, err := ClampQuantity(it, 3)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if it.Quantity != 2 {
		t.Fatalf("rejection must not mutate the item, quantity now %d", it.Quantity)
	}

	if _, err := ClampQuantity(it, 0); pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for zero quantity, got %v", err)
	}

	got, err := ClampQuantity(it, 2)
	if err != nil || got != 2 {
		t.Fatalf("in-range quantity should pass: %d %v", got, err)
	}

	// Without a variant the product stock is the ceiling.
	it.Variant = nil
	if _, err := ClampQuantity(it, 50); err != nil {
		t.Fatalf("quantity at product stock should pass: %v", err)
	}
	if _, err := ClampQuantity(it, 51); err == nil {
		t.Fatal("quantity above product stock should fail")
	}
}

func TestClampQuantityErrorIsTyped(t *testing.T) {
	_, err := ClampQuantity(variantItem(5, 1, 1), 9)
	var typed *pkgerrors.Error
	if !errors.As(err, &typed) {
		t.Fatalf("expected typed error, got %T", err)
	}
	details, ok := typed.Details().(map[string]int)
	if !ok || details["available"] != 1 || details["requested"] != 9 {
		t.Fatalf("details missing: %v", typed.Details())
	}
}
