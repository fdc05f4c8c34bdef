package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"
)

func (a *App) runOrders(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	page := fs.Int("page", 1, "page number")
	detailed := fs.Bool("items", false, "show the lines of every order")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := a.client.ListOrders(ctx, *page, a.cfg.Listing.OrderPageSize)
	if err != nil {
		return err
	}
	if len(result.Orders) == 0 {
		fmt.Fprintln(a.out, "no orders yet")
		return nil
	}

	a.table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ORDER\tDATE\tSTATUS\tTOTAL")
		for _, order := range result.Orders {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				order.ID, order.CreatedAt.Local().Format("2006-01-02 15:04"), order.Status, rupiah(order.Total))
		}
	})

	if *detailed {
		for _, order := range result.Orders {
			if len(order.Items) == 0 {
				continue
			}
			fmt.Fprintf(a.out, "\norder #%d:\n", order.ID)
			a.table(func(w *tabwriter.Writer) {
				for _, item := range order.Items {
					label := item.Product
					if item.ColorName != "" {
						label += " (" + item.ColorName + ")"
					}
					fmt.Fprintf(w, "  %s\tx%d\t%s\n", label, item.Quantity, rupiah(item.Price))
				}
			})
		}
	}

	fmt.Fprintf(a.out, "\npage %d of %d (%d orders)\n", result.Page, result.Pages, result.Total)
	return nil
}
