package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/ariefpradana/tokokita/pkg/pagination"
)

// ListProductsParams are the catalog filters. Page parameters are sent to
// the server; when it answers with the full collection instead of a
// paginated envelope, the client slices locally.
type ListProductsParams struct {
	Category int64
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Page     int
	PageSize int
}

// ProductPage is one page of catalog results plus the overall count.
type ProductPage struct {
	Products []Product
	Total    int
	Page     int
	Pages    int
}

func (p ListProductsParams) query() url.Values {
	q := pagination.Params{Page: p.Page, PageSize: p.PageSize}.Query()
	if p.Category > 0 {
		q.Set("category", fmt.Sprint(p.Category))
	}
	if p.MinPrice != nil {
		q.Set("min_price", p.MinPrice.String())
	}
	if p.MaxPrice != nil {
		q.Set("max_price", p.MaxPrice.String())
	}
	return q
}

func (c *Client) ListProducts(ctx context.Context, p ListProductsParams) (ProductPage, error) {
	params := pagination.Params{Page: p.Page, PageSize: p.PageSize}.Normalize()

	var products []Product
	count, paged, err := c.getList(ctx, "/products/", p.query(), &products)
	if err != nil {
		return ProductPage{}, err
	}
	if !paged {
		count = len(products)
		products = pagination.Slice(products, params)
	}
	return ProductPage{
		Products: products,
		Total:    count,
		Page:     params.Page,
		Pages:    pagination.PageCount(count, params.PageSize),
	}, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (Product, error) {
	var product Product
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/", id), nil, nil, &product)
	return product, err
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if _, _, err := c.getList(ctx, "/categories/", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
