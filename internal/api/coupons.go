package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/ariefpradana/tokokita/pkg/errors"
)

type validateCouponRequest struct {
	Code     string          `json:"code"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// ValidateCoupon asks the server whether a code applies to the given
// subtotal. Eligibility is server policy; the client only consumes the
// returned discount amount. A negative verdict maps to CodeInvalidCoupon
// with the server's message, and the cart stays untouched.
func (c *Client) ValidateCoupon(ctx context.Context, code string, subtotal decimal.Decimal) (CouponValidation, error) {
	var verdict CouponValidation
	err := c.do(ctx, http.MethodPost, "/coupons/validate/", nil, validateCouponRequest{Code: code, Subtotal: subtotal}, &verdict)
	if err != nil {
		if pkgerrors.CodeOf(err) == pkgerrors.CodeValidation {
			return CouponValidation{}, pkgerrors.Wrap(pkgerrors.CodeInvalidCoupon, err, "coupon rejected")
		}
		return CouponValidation{}, err
	}
	if !verdict.Valid {
		message := verdict.Message
		if message == "" {
			message = "coupon is not valid"
		}
		return verdict, pkgerrors.New(pkgerrors.CodeInvalidCoupon, message)
	}
	return verdict, nil
}

// CouponInput is the back-office creation form.
type CouponInput struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discount_percent"`
	MaxUsage        int    `json:"max_usage"`
}

func (c *Client) ListCoupons(ctx context.Context) ([]Coupon, error) {
	var coupons []Coupon
	if _, _, err := c.getList(ctx, "/coupons/", nil, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (c *Client) CreateCoupon(ctx context.Context, input CouponInput) (Coupon, error) {
	var coupon Coupon
	err := c.do(ctx, http.MethodPost, "/coupons/", nil, input, &coupon)
	return coupon, err
}

// SetCouponActive toggles a coupon without touching its other fields.
func (c *Client) SetCouponActive(ctx context.Context, id int64, active bool) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/coupons/%d/", id), nil, map[string]bool{"active": active}, nil)
}
