package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/ariefpradana/tokokita/internal/api"
	pkgerrors "github.com/ariefpradana/tokokita/pkg/errors"
)

func parseID(args []string, what string) (int64, error) {
	if len(args) == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, what+" id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid %s id %q", what, args[0]))
	}
	return id, nil
}

func decimalFlag(fs *flag.FlagSet, name, usage string) *string {
	return fs.String(name, "", usage)
}

func parseDecimalFlag(name, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid %s %q", name, value))
	}
	return &parsed, nil
}

func (a *App) runProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	page := fs.Int("page", 1, "page number")
	category := fs.Int64("category", 0, "filter by category id")
	minPrice := decimalFlag(fs, "min-price", "minimum price filter")
	maxPrice := decimalFlag(fs, "max-price", "maximum price filter")
	if err := fs.Parse(args); err != nil {
		return err
	}

	params := api.ListProductsParams{
		Category: *category,
		Page:     *page,
		PageSize: a.cfg.Listing.ProductPageSize,
	}
	var err error
	if params.MinPrice, err = parseDecimalFlag("min-price", *minPrice); err != nil {
		return err
	}
	if params.MaxPrice, err = parseDecimalFlag("max-price", *maxPrice); err != nil {
		return err
	}

	result, err := a.client.ListProducts(ctx, params)
	if err != nil {
		return err
	}

	a.table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK\tCATEGORY")
		for _, p := range result.Products {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, rupiah(p.Price), stockLabel(p), p.Category.Name)
		}
	})
	fmt.Fprintf(a.out, "\npage %d of %d (%d products)\n", result.Page, result.Pages, result.Total)
	return nil
}

func (a *App) runProduct(ctx context.Context, args []string) error {
	id, err := parseID(args, "product")
	if err != nil {
		return err
	}
	product, err := a.client.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s\n", product.Name)
	fmt.Fprintf(a.out, "price:    %s\n", rupiah(product.Price))
	fmt.Fprintf(a.out, "stock:    %s\n", stockLabel(product))
	if product.Category.Name != "" {
		fmt.Fprintf(a.out, "category: %s\n", product.Category.Name)
	}
	if product.Description != "" {
		fmt.Fprintf(a.out, "\n%s\n", product.Description)
	}

	if len(product.Variants) > 0 {
		fmt.Fprintln(a.out, "\nvariants:")
		a.table(func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "  ID\tCOLOR\tSTOCK\tAVAILABLE")
			for _, v := range product.Variants {
				available := "yes"
				if !v.Selectable() {
					available = "no"
				}
				fmt.Fprintf(w, "  %d\t%s\t%d\t%s\n", v.ID, v.ColorName, v.Stock, available)
			}
		})
	}
	for _, image := range product.Images {
		fmt.Fprintf(a.out, "image: %s\n", image.Image)
	}
	return nil
}

func (a *App) runCategories(ctx context.Context, args []string) error {
	categories, err := a.client.ListCategories(ctx)
	if err != nil {
		return err
	}
	a.table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tNAME")
		for _, c := range categories {
			fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Name)
		}
	})
	return nil
}
