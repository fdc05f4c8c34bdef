package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/ariefpradana/tokokita/internal/api"
	"github.com/ariefpradana/tokokita/internal/forms"
	pkgerrors "github.com/ariefpradana/tokokita/pkg/errors"
)

// runAdmin gates the back-office subcommands behind the staff flag. The check
// is cosmetic for fast feedback; the server enforces the real permission.
func (a *App) runAdmin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.adminUsage()
		return pkgerrors.New(pkgerrors.CodeValidation, "admin subcommand is required")
	}
	if !a.client.IsAdmin(ctx) {
		return pkgerrors.New(pkgerrors.CodeAuthRequired, "admin access required")
	}

	subcommands := map[string]func(context.Context, []string) error{
		"products":        a.runAdminProducts,
		"product-create":  a.runAdminProductCreate,
		"product-update":  a.runAdminProductUpdate,
		"product-delete":  a.runAdminProductDelete,
		"upload-images":   a.runAdminUploadImages,
		"image-delete":    a.runAdminImageDelete,
		"variant-add":     a.runAdminVariantAdd,
		"variant-update":  a.runAdminVariantUpdate,
		"variant-delete":  a.runAdminVariantDelete,
		"coupons":         a.runAdminCoupons,
		"coupon-create":   a.runAdminCouponCreate,
		"coupon-toggle":   a.runAdminCouponToggle,
		"category-create": a.runAdminCategoryCreate,
	}
	run, ok := subcommands[args[0]]
	if !ok {
		a.adminUsage()
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown admin subcommand %q", args[0]))
	}
	return run(ctx, args[1:])
}

func (a *App) adminUsage() {
	fmt.Fprintln(a.errOut, "Usage: tokokita admin <subcommand> [flags]")
	fmt.Fprintln(a.errOut)
	fmt.Fprintln(a.errOut, "Subcommands: products, product-create, product-update, product-delete,")
	fmt.Fprintln(a.errOut, "  upload-images, image-delete, variant-add, variant-update, variant-delete,")
	fmt.Fprintln(a.errOut, "  coupons, coupon-create, coupon-toggle, category-create")
}

func (a *App) runAdminProducts(ctx context.Context, args []string) error {
	products, err := a.client.ListAdminProducts(ctx)
	if err != nil {
		return err
	}
	a.table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK\tVARIANTS\tIMAGES")
		for _, p := range products {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\n",
				p.ID, p.Name, rupiah(p.Price), stockLabel(p), len(p.Variants), len(p.Images))
		}
	})
	return nil
}

func productFlags(fs *flag.FlagSet) (name, price *string, stock *int, description *string, category *int64) {
	name = fs.String("name", "", "product name")
	price = fs.String("price", "", "price in rupiah")
	stock = fs.Int("stock", 0, "stock count")
	description = fs.String("desc", "", "description")
	category = fs.Int64("category", 0, "category id")
	return
}

func parseProductInput(name, price string, stock int, description string, category int64) (api.ProductInput, error) {
	form := forms.ProductForm{Name: name, Price: price, Stock: stock, Description: description, Category: category}
	if err := forms.Validate(form); err != nil {
		return api.ProductInput{}, err
	}
	parsed, err := decimal.NewFromString(price)
	if err != nil || parsed.IsNegative() {
		return api.ProductInput{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid price %q", price)).
			WithDetails(map[string]string{"price": "must be a non-negative number"})
	}
	return api.ProductInput{
		Name:        name,
		Price:       parsed,
		Stock:       stock,
		Description: description,
		Category:    category,
	}, nil
}

func (a *App) runAdminProductCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("product-create", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	name, price, stock, description, category := productFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	input, err := parseProductInput(*name, *price, *stock, *description, *category)
	if err != nil {
		return err
	}
	product, err := a.client.CreateProduct(ctx, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "product #%d %s created\n", product.ID, product.Name)
	return nil
}

func (a *App) runAdminProductUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("product-update", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	id := fs.Int64("id", 0, "product id")
	name, price, stock, description, category := productFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "-id is required")
	}

	input, err := parseProductInput(*name, *price, *stock, *description, *category)
	if err != nil {
		return err
	}
	product, err := a.client.UpdateProduct(ctx, *id, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "product #%d updated\n", product.ID)
	return nil
}

func (a *App) runAdminProductDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("product-delete", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	id := fs.Int64("id", 0, "product id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "-id is required")
	}
	if err := a.client.DeleteProduct(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "product #%d deleted\n", *id)
	return nil
}

func (a *App) runAdminUploadImages(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload-images", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	id := fs.Int64("id", 0, "product id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "-id is required")
	}
	paths := fs.Args()
	if len(paths) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "pass at least one image file")
	}

	uploads := make([]api.ImageUpload, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("cannot read %s", path))
		}
		defer f.Close()
		uploads = append(uploads, api.ImageUpload{Filename: path, Reader: f})
	}

	if err := a.client.UploadProductImages(ctx, *id, uploads); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "uploaded %d image(s) to product #%d\n", len(uploads), *id)
	return nil
}

func (a *App) runAdminImageDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("image-delete", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	productID := fs.Int64("product", 0, "product id")
	imageID := fs.Int64("image", 0, "image id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *productID <= 0 || *imageID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "-product and -image are required")
	}
	if err := a.client.DeleteProductImage(ctx, *productID, *imageID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "image deleted")
	return nil
}

func variantFlags(fs *flag.FlagSet) (color, code *string, stock *int) {
	color = fs.String("color", "", "color name")
	code = fs.String("code", "", "hex color code like #ff0000")
	stock = fs.Int("stock", 0, "stock count for this color")
	return
}

func (a *App) runAdminVariantAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("variant-add", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	productID := fs.Int64("product", 0, "product id")
	color, code, stock := variantFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *productID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "-product is required")
	}

	form := forms.VariantForm{ColorName: *color, ColorCode: *code, Stock: *stock}
	if err := forms.Validate(form); err != nil {
		return err
	}
	variant, err := a.client.AddVariant(ctx, *productID, api.VariantInput{
		ColorName: form.ColorName, ColorCode: form.ColorCode, Stock: form.Stock,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "variant #%d %s added\n", variant.ID, variant.ColorName)
	return nil
}

func (a *App) runAdminVariantUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("variant-update", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	productID := fs.Int64("product", 0, "product id")
	variantID := fs.Int64("variant", 0, "variant id")
	color, code, stock := variantFlags(fs)
	active := fs.Bool("active", true, "whether the variant is selectable")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *productID <= 0 || *variantID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "-product and -variant are required")
	}

	form := forms.VariantForm{ColorName: *color, ColorCode: *code, Stock: *stock}
	if err := forms.Validate(form); err != nil {
		return err
	}
	variant, err := a.client.UpdateVariant(ctx, *productID, *variantID, api.VariantInput{
		ColorName: form.ColorName, ColorCode: form.ColorCode, Stock: form.Stock, IsActive: active,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "variant #%d updated\n", variant.ID)
	return nil
}

func (a *App) runAdminVariantDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("variant-delete", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	productID := fs.Int64("product", 0, "product id")
	variantID := fs.Int64("variant", 0, "variant id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *productID <= 0 || *variantID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "-product and -variant are required")
	}
	if err := a.client.DeleteVariant(ctx, *productID, *variantID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "variant deleted")
	return nil
}

func (a *App) runAdminCoupons(ctx context.Context, args []string) error {
	coupons, err := a.client.ListCoupons(ctx)
	if err != nil {
		return err
	}
	a.table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tCODE\tDISCOUNT\tMAX USAGE\tACTIVE")
		for _, c := range coupons {
			active := "yes"
			if !c.Active {
				active = "no"
			}
			fmt.Fprintf(w, "%d\t%s\t%d%%\t%d\t%s\n", c.ID, c.Code, c.DiscountPercent, c.MaxUsage, active)
		}
	})
	return nil
}

func (a *App) runAdminCouponCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("coupon-create", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	code := fs.String("code", "", "coupon code")
	percent := fs.Int("percent", 0, "discount percent, 1 to 100")
	maxUsage := fs.Int("max", 0, "how many times the coupon can be used")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := forms.CouponForm{Code: *code, DiscountPercent: *percent, MaxUsage: *maxUsage}
	if err := forms.Validate(form); err != nil {
		return err
	}
	coupon, err := a.client.CreateCoupon(ctx, api.CouponInput(form))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "coupon %s created (%d%% off, %d uses)\n", coupon.Code, coupon.DiscountPercent, coupon.MaxUsage)
	return nil
}

func (a *App) runAdminCouponToggle(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("coupon-toggle", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	id := fs.Int64("id", 0, "coupon id")
	active := fs.Bool("active", true, "new active state")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "-id is required")
	}
	if err := a.client.SetCouponActive(ctx, *id, *active); err != nil {
		return err
	}
	state := "activated"
	if !*active {
		state = "deactivated"
	}
	fmt.Fprintf(a.out, "coupon #%d %s\n", *id, state)
	return nil
}

func (a *App) runAdminCategoryCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("category-create", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	name := fs.String("name", "", "category name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "-name is required")
	}
	category, err := a.client.CreateCategory(ctx, *name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "category #%d %s created\n", category.ID, category.Name)
	return nil
}
