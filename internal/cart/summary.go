package cart

import "github.com/shopspring/decimal"

var (
	// TaxRate applied on top of the subtotal.
	TaxRate = decimal.RequireFromString("0.08")
	// FreeDeliveryThreshold is advertised to shoppers; delivery is currently free for every order.
	FreeDeliveryThreshold = decimal.NewFromInt(50)
)

// Summary is the checkout breakdown shown next to the cart.
type Summary struct {
	Subtotal decimal.Decimal
	Delivery decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

func Summarize(subtotal decimal.Decimal) Summary {
	tax := subtotal.Mul(TaxRate)
	delivery := decimal.Zero
	return Summary{
		Subtotal: subtotal,
		Delivery: delivery,
		Tax:      tax,
		Total:    subtotal.Add(delivery).Add(tax),
	}
}
