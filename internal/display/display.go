package display

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"dopc-calculator/internal/pricing"
)

// FormatCents renders minor units as a major-unit amount with two decimals.
func FormatCents(cents int) string {
	return decimal.New(int64(cents), -2).StringFixed(2) + " €"
}

// Render writes the price breakdown as aligned label/value rows.
func Render(w io.Writer, b pricing.Breakdown) error {
	rows := []struct{ label, value string }{
		{"Cart Value", FormatCents(b.CartValue)},
		{"Delivery fee", FormatCents(b.DeliveryFee)},
		{"Delivery distance", strconv.Itoa(b.DeliveryDistance) + " m"},
		{"Small order surcharge", FormatCents(b.SmallOrderSurcharge)},
		{"Total price", FormatCents(b.TotalPrice)},
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "Price breakdown"); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", r.label, r.value); err != nil {
			return err
		}
	}
	return tw.Flush()
}
