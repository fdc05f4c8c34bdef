package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/ariefpradana/tokokita/internal/api"
	"github.com/ariefpradana/tokokita/internal/commerce"
	pkgerrors "github.com/ariefpradana/tokokita/pkg/errors"
)

func (a *App) runCart(ctx context.Context, args []string) error {
	items, err := a.client.GetCart(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "your cart is empty")
		return nil
	}

	quote := commerce.NewQuote(items)
	a.table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ITEM\tPRODUCT\tVARIANT\tQTY\tPRICE\tLINE TOTAL")
		for _, item := range items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
				item.ID, item.Product.Name, variantLabel(item.Variant),
				item.Quantity, rupiah(item.Product.Price), rupiah(commerce.LineTotal(item)))
		}
	})
	fmt.Fprintf(a.out, "\nsubtotal: %s\n", rupiah(quote.Subtotal()))
	return nil
}

// resolveCartLine builds the stock view for a product and optional variant so
// the quantity clamp can run before any cart mutation.
func resolveCartLine(product api.Product, variantID int64) (api.CartItem, error) {
	item := api.CartItem{Product: product}
	if variantID == 0 {
		if len(product.Variants) > 0 {
			return api.CartItem{}, pkgerrors.New(pkgerrors.CodeValidation, "this product requires a variant, pass -variant")
		}
		return item, nil
	}
	for i := range product.Variants {
		if product.Variants[i].ID != variantID {
			continue
		}
		if !product.Variants[i].Selectable() {
			return api.CartItem{}, pkgerrors.New(pkgerrors.CodeInsufficientStock, "this variant is out of stock")
		}
		item.Variant = &product.Variants[i]
		return item, nil
	}
	return api.CartItem{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("variant %d not found on product %d", variantID, product.ID))
}

func (a *App) runCartAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart-add", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	productID := fs.Int64("product", 0, "product id")
	quantity := fs.Int("qty", 1, "quantity")
	variantID := fs.Int64("variant", 0, "variant id for products with colors")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *productID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "-product is required")
	}

	product, err := a.client.GetProduct(ctx, *productID)
	if err != nil {
		return err
	}
	line, err := resolveCartLine(product, *variantID)
	if err != nil {
		return err
	}
	qty, err := commerce.ClampQuantity(line, *quantity)
	if err != nil {
		return err
	}

	input := api.AddToCartInput{ProductID: product.ID, Quantity: qty}
	if line.Variant != nil {
		input.VariantID = &line.Variant.ID
	}
	item, err := a.client.AddToCart(ctx, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "added %d x %s to the cart\n", item.Quantity, product.Name)
	return nil
}

func (a *App) runCartQty(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart-qty", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	itemID := fs.Int64("item", 0, "cart item id")
	quantity := fs.Int("qty", 0, "new quantity")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *itemID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "-item is required")
	}

	items, err := a.client.GetCart(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.ID != *itemID {
			continue
		}
		qty, err := commerce.ClampQuantity(item, *quantity)
		if err != nil {
			return err
		}
		updated, err := a.client.UpdateCartQuantity(ctx, item, qty)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s is now %d in the cart\n", updated.Product.Name, updated.Quantity)
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("cart item %d not found", *itemID))
}

func (a *App) runCartRemove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart-remove", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	itemID := fs.Int64("item", 0, "cart item id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *itemID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "-item is required")
	}
	if err := a.client.RemoveCartItem(ctx, *itemID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "removed from cart")
	return nil
}
