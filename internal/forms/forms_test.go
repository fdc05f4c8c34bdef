package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/ariefpradana/tokokita/pkg/errors"
)

func fieldDetails(t *testing.T, err error) map[string]string {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed validation error, got %v", err)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok, "expected field map, got %T", typed.Details())
	return details
}

func TestCheckoutFormRules(t *testing.T) {
	err := Validate(CheckoutForm{Phone: "081234567890", PostalCode: "40115"})
	details := fieldDetails(t, err)
	assert.Equal(t, "is required", details["full_name"])
	assert.Equal(t, "is required", details["address"])

	err = Validate(CheckoutForm{FullName: "A", Address: "B", Phone: "0812", PostalCode: "abcde"})
	details = fieldDetails(t, err)
	assert.NotEmpty(t, details["phone"], "short phone should fail")
	assert.Equal(t, "must contain only digits", details["postal_code"])

	err = Validate(CheckoutForm{FullName: "Arief", Address: "Jl. Sudirman 1", Phone: "081234567890", PostalCode: "40115", CouponCode: "HEMAT20"})
	assert.NoError(t, err)
}

func TestRegisterFormRules(t *testing.T) {
	err := Validate(RegisterForm{Username: "ab", Email: "not-an-email", Password: "123"})
	details := fieldDetails(t, err)
	assert.Equal(t, "must be at least 3", details["username"])
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at least 6", details["password"])
}

func TestCouponFormBounds(t *testing.T) {
	err := Validate(CouponForm{Code: "X20", DiscountPercent: 120, MaxUsage: 0})
	details := fieldDetails(t, err)
	assert.Equal(t, "must be 100 or less", details["discount_percent"])
	assert.NotEmpty(t, details["max_usage"], "max usage lower bound missing")

	err = Validate(CouponForm{Code: "HEMAT20", DiscountPercent: 20, MaxUsage: 5})
	assert.NoError(t, err)
}

func TestVariantFormColorCode(t *testing.T) {
	assert.NoError(t, Validate(VariantForm{ColorName: "Merah", ColorCode: "#ff0000", Stock: 3}))
	assert.Error(t, Validate(VariantForm{ColorName: "Merah", ColorCode: "red"}), "non-hex color code should fail")
}
