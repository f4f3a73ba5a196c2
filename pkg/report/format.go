package report

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// formatInt renders n with thousands separators: 4729990 → "4,729,990".
func formatInt(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// trim formats v with at most prec decimals and drops trailing zeros:
// 6.0 → "6", 1.90 → "1.9".
func trim(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// money renders whole naira: "₦4,729,990".
func (o Options) money(n int64) string {
	return o.CurrencySymbol + formatInt(n)
}

// millions renders a figure already in millions: 34.5 → "₦34.5M".
func (o Options) millions(v float64) string {
	return fmt.Sprintf("%s%.1fM", o.CurrencySymbol, v)
}

// compact renders whole naira in the shortest unit: 6000000 → "₦6M",
// 1900000 → "₦1.9M", 200000 → "₦200K".
func (o Options) compact(n int64) string {
	switch {
	case n >= 1_000_000:
		return o.CurrencySymbol + trim(float64(n)/1e6, 1) + "M"
	case n >= 1_000:
		return o.CurrencySymbol + trim(float64(n)/1e3, 1) + "K"
	default:
		return o.CurrencySymbol + formatInt(n)
	}
}
