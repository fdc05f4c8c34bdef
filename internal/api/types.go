package api

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Category is a product grouping managed by the back office.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryRef tolerates both serializer shapes the server uses for a
// product's category: a bare id or a nested object.
type CategoryRef struct {
	ID   int64
	Name string
}

func (c *CategoryRef) UnmarshalJSON(data []byte) error {
	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		c.ID = id
		return nil
	}
	var full Category
	if err := json.Unmarshal(data, &full); err != nil {
		return err
	}
	c.ID = full.ID
	c.Name = full.Name
	return nil
}

func (c CategoryRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ID)
}

// ProductImage is one uploaded image belonging to a product.
type ProductImage struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

// Variant is a color-specific stock-keeping unit under a product. Its stock
// count replaces the parent product's wherever the variant is selected, and
// a zero stock or inactive flag disables selection.
type Variant struct {
	ID        int64  `json:"id"`
	ColorName string `json:"color_name"`
	ColorCode string `json:"color_code,omitempty"`
	Stock     int    `json:"stock"`
	IsActive  bool   `json:"is_active"`
}

// Selectable reports whether the variant can be added to a cart.
func (v Variant) Selectable() bool {
	return v.IsActive && v.Stock > 0
}

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Description string          `json:"description,omitempty"`
	Category    CategoryRef     `json:"category"`
	Images      []ProductImage  `json:"images,omitempty"`
	Variants    []Variant       `json:"variants,omitempty"`
}

// CartItem is one line in the user's server-side cart. Variant is nil for
// products without color variants.
type CartItem struct {
	ID       int64    `json:"id"`
	Product  Product  `json:"product"`
	Variant  *Variant `json:"variant,omitempty"`
	Quantity int      `json:"quantity"`
}

type Coupon struct {
	ID              int64  `json:"id"`
	Code            string `json:"code"`
	DiscountPercent int    `json:"discount_percent"`
	MaxUsage        int    `json:"max_usage"`
	Active          bool   `json:"active"`
}

// CouponValidation is the server's verdict on a code for a given subtotal.
// Eligibility rules (usage caps, active window) are server-owned; the client
// only consumes the returned discount amount.
type CouponValidation struct {
	Valid          bool            `json:"valid"`
	Coupon         *Coupon         `json:"coupon,omitempty"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Message        string          `json:"message,omitempty"`
}

// OrderItem is a snapshot of a purchased line, priced at checkout time.
type OrderItem struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Product   string          `json:"product_name"`
	VariantID *int64          `json:"variant_id,omitempty"`
	ColorName string          `json:"color_name,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type Order struct {
	ID        int64           `json:"id"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Items     []OrderItem     `json:"items,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type Profile struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

// CheckoutResult carries the created order plus the payment-session handoff.
type CheckoutResult struct {
	Order             Order  `json:"order"`
	SnapToken         string `json:"snap_token,omitempty"`
	MidtransClientKey string `json:"midtrans_client_key,omitempty"`
}
