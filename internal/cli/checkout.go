package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/ariefpradana/tokokita/internal/api"
	"github.com/ariefpradana/tokokita/internal/commerce"
	"github.com/ariefpradana/tokokita/internal/forms"
	"github.com/ariefpradana/tokokita/internal/payment"
	pkgerrors "github.com/ariefpradana/tokokita/pkg/errors"
)

func (a *App) runCheckout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	fullName := fs.String("name", "", "recipient full name")
	address := fs.String("address", "", "shipping address")
	phone := fs.String("phone", "", "contact phone number")
	postalCode := fs.String("postal", "", "5 digit postal code")
	couponCode := fs.String("coupon", "", "optional coupon code")
	wait := fs.Bool("wait", false, "wait for the payment redirect on a local port")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := forms.CheckoutForm{
		FullName:   *fullName,
		Address:    *address,
		Phone:      *phone,
		PostalCode: *postalCode,
		CouponCode: *couponCode,
	}
	if err := forms.Validate(form); err != nil {
		return err
	}

	items, err := a.client.GetCart(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "the cart is empty, nothing to check out")
	}

	quote := commerce.NewQuote(items)
	if form.CouponCode != "" {
		verdict, err := a.client.ValidateCoupon(ctx, form.CouponCode, quote.Subtotal())
		if err != nil {
			return err
		}
		quote.ApplyCoupon(verdict.Coupon)
		if !verdict.DiscountAmount.IsZero() && !verdict.DiscountAmount.Equal(quote.Discount()) {
			a.logg.Warn(a.logg.WithFields(ctx, map[string]any{
				"server": verdict.DiscountAmount.String(),
				"local":  quote.Discount().String(),
			}), "server discount differs from local calculation")
		}
	}

	a.table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "PRODUCT\tVARIANT\tQTY\tLINE TOTAL")
		for _, item := range items {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
				item.Product.Name, variantLabel(item.Variant), item.Quantity, rupiah(commerce.LineTotal(item)))
		}
	})
	fmt.Fprintf(a.out, "\nsubtotal: %s\n", rupiah(quote.Subtotal()))
	if coupon := quote.Coupon(); coupon != nil {
		fmt.Fprintf(a.out, "discount: -%s (%s, %d%%)\n", rupiah(quote.Discount()), coupon.Code, coupon.DiscountPercent)
	}
	fmt.Fprintf(a.out, "total:    %s\n\n", rupiah(quote.Total()))

	result, err := a.client.CreateOrder(ctx, api.CheckoutInput(form))
	if err != nil {
		return err
	}
	if err := a.session.SetClientKey(result.MidtransClientKey); err != nil {
		a.logg.Warn(ctx, "could not persist payment client key")
	}

	fmt.Fprintf(a.out, "order #%d created (%s)\n", result.Order.ID, result.Order.Status)
	if result.SnapToken == "" {
		return nil
	}

	clientKey := result.MidtransClientKey
	if clientKey == "" {
		if creds, err := a.session.Credentials(); err == nil {
			clientKey = creds.MidtransClientKey
		}
	}
	fmt.Fprintf(a.out, "pay here: %s\n", payment.RedirectURL(result.SnapToken, clientKey))

	if !*wait {
		return nil
	}
	return a.waitForPayment(ctx)
}

func (a *App) waitForPayment(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, a.cfg.Payment.WaitTimeout)
	defer cancel()

	listener := payment.NewListener(a.cfg.Payment.CallbackPort, a.logg)
	fmt.Fprintf(a.out, "waiting for the payment redirect on %s\n", listener.CallbackURL())

	result, err := listener.Wait(waitCtx)
	if err != nil {
		if waitCtx.Err() != nil {
			fmt.Fprintln(a.out, "no redirect arrived, check the order status later with 'tokokita orders'")
			return nil
		}
		return err
	}

	if result.Settled() {
		fmt.Fprintf(a.out, "payment %s for order %s\n", result.TransactionStatus, result.OrderID)
	} else {
		fmt.Fprintf(a.out, "payment did not complete (%s), the order stays unpaid\n", result.TransactionStatus)
	}
	return nil
}
