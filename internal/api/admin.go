package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/ariefpradana/tokokita/pkg/errors"
)

// ProductInput is the back-office create/update form.
type ProductInput struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Description string          `json:"description,omitempty"`
	Category    int64           `json:"category"`
}

// VariantInput is the per-color stock form.
type VariantInput struct {
	ColorName string `json:"color_name"`
	ColorCode string `json:"color_code,omitempty"`
	Stock     int    `json:"stock"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

func (c *Client) ListAdminProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if _, _, err := c.getList(ctx, "/admin/products/", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (Product, error) {
	var product Product
	err := c.do(ctx, http.MethodPost, "/admin/products/", nil, input, &product)
	return product, err
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, input ProductInput) (Product, error) {
	var product Product
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/products/%d/", id), nil, input, &product)
	return product, err
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/products/%d/", id), nil, nil, nil)
}

// ImageUpload pairs a filename with its contents for multipart upload.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// UploadProductImages posts one or more images under the "images" form
// field, matching the dashboard's upload form.
func (c *Client) UploadProductImages(ctx context.Context, productID int64, images []ImageUpload) error {
	if len(images) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no images to upload")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, image := range images {
		part, err := writer.CreateFormFile("images", filepath.Base(image.Filename))
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building multipart body")
		}
		if _, err := io.Copy(part, image.Reader); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reading image")
		}
	}
	if err := writer.Close(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finalizing multipart body")
	}

	endpoint := fmt.Sprintf("%s/admin/products/%d/upload-images/", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building upload request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.send(req, nil)
}

func (c *Client) DeleteProductImage(ctx context.Context, productID, imageID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/products/%d/delete-image/%d/", productID, imageID), nil, nil, nil)
}

func (c *Client) AddVariant(ctx context.Context, productID int64, input VariantInput) (Variant, error) {
	var variant Variant
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/admin/products/%d/add-variant/", productID), nil, input, &variant)
	return variant, err
}

func (c *Client) UpdateVariant(ctx context.Context, productID, variantID int64, input VariantInput) (Variant, error) {
	var variant Variant
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/admin/products/%d/update-variant/%d/", productID, variantID), nil, input, &variant)
	return variant, err
}

func (c *Client) DeleteVariant(ctx context.Context, productID, variantID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/products/%d/delete-variant/%d/", productID, variantID), nil, nil, nil)
}

func (c *Client) CreateCategory(ctx context.Context, name string) (Category, error) {
	var category Category
	err := c.do(ctx, http.MethodPost, "/categories/", nil, map[string]string{"name": name}, &category)
	return category, err
}
