package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/ariefpradana/tokokita/internal/api"
)

// rupiah formats a decimal amount the way the shop displays prices:
// "Rp 130.000" with dots as thousands separators, fractions dropped.
func rupiah(amount decimal.Decimal) string {
	whole := amount.Floor().String()
	negative := strings.HasPrefix(whole, "-")
	digits := strings.TrimPrefix(whole, "-")

	var grouped strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return "Rp " + sign + grouped.String()
}

func (a *App) table(write func(w *tabwriter.Writer)) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	write(w)
	w.Flush()
}

func variantLabel(v *api.Variant) string {
	if v == nil {
		return "-"
	}
	return v.ColorName
}

func stockLabel(p api.Product) string {
	if len(p.Variants) == 0 {
		return fmt.Sprint(p.Stock)
	}
	total := 0
	for _, v := range p.Variants {
		if v.Selectable() {
			total += v.Stock
		}
	}
	return fmt.Sprintf("%d (per variant)", total)
}
