package api

import (
	"context"
	"net/http"

	"github.com/ariefpradana/tokokita/pkg/pagination"
)

// CheckoutInput is the shipping form plus the optional coupon code. Stock
// decrement, coupon redemption, and payment-session creation all happen
// server-side inside this call.
type CheckoutInput struct {
	FullName   string `json:"full_name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	PostalCode string `json:"postal_code"`
	CouponCode string `json:"coupon_code,omitempty"`
}

func (c *Client) CreateOrder(ctx context.Context, input CheckoutInput) (CheckoutResult, error) {
	var result CheckoutResult
	err := c.do(ctx, http.MethodPost, "/orders/create/", nil, input, &result)
	return result, err
}

// OrderPage is one page of order history plus the overall count.
type OrderPage struct {
	Orders []Order
	Total  int
	Page   int
	Pages  int
}

func (c *Client) ListOrders(ctx context.Context, page, pageSize int) (OrderPage, error) {
	params := pagination.Params{Page: page, PageSize: pageSize}.Normalize()
	query := params.Query()

	var orders []Order
	count, paged, err := c.getList(ctx, "/orders/", query, &orders)
	if err != nil {
		return OrderPage{}, err
	}
	if !paged {
		count = len(orders)
		orders = pagination.Slice(orders, params)
	}
	return OrderPage{
		Orders: orders,
		Total:  count,
		Page:   params.Page,
		Pages:  pagination.PageCount(count, params.PageSize),
	}, nil
}
