package api

import (
	"context"
	"fmt"
	"net/http"
)

// AddToCartInput is the wire form for adding a line to the cart. VariantID
// is nil for products without color variants.
type AddToCartInput struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	VariantID *int64 `json:"variant_id,omitempty"`
}

func (c *Client) GetCart(ctx context.Context) ([]CartItem, error) {
	var items []CartItem
	if _, _, err := c.getList(ctx, "/cart/", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AddToCart(ctx context.Context, input AddToCartInput) (CartItem, error) {
	var item CartItem
	err := c.do(ctx, http.MethodPost, "/cart/", nil, input, &item)
	return item, err
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/%d/", itemID), nil, nil, nil)
}

// UpdateCartQuantity changes a line's quantity. The API has no quantity
// PATCH, so the wire form is remove then re-add, issued sequentially; the
// caller is expected to have clamped the quantity against available stock
// first. The refreshed item is returned.
func (c *Client) UpdateCartQuantity(ctx context.Context, item CartItem, newQuantity int) (CartItem, error) {
	if err := c.RemoveCartItem(ctx, item.ID); err != nil {
		return CartItem{}, err
	}
	input := AddToCartInput{ProductID: item.Product.ID, Quantity: newQuantity}
	if item.Variant != nil {
		input.VariantID = &item.Variant.ID
	}
	return c.AddToCart(ctx, input)
}
