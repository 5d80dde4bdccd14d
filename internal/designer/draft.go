package designer

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
)

// Draft is the in-progress cake design.
type Draft struct {
	Size            string   `json:"size"`
	Layers          int      `json:"layers"`
	Shape           string   `json:"shape"`
	Flavor          string   `json:"flavor"`
	Frosting        string   `json:"frosting"`
	Filling         string   `json:"filling"`
	Decorations     []string `json:"decorations"`
	Colors          []string `json:"colors"`
	CustomText      string   `json:"customText"`
	SpecialRequests string   `json:"specialRequests"`
	Occasion        string   `json:"occasion"`
}

func newDraft() Draft {
	return Draft{
		Layers:      MinLayers,
		Shape:       defaultShape,
		Decorations: []string{},
		Colors:      []string{},
	}
}

func (d Draft) clone() Draft {
	d.Decorations = slices.Clone(d.Decorations)
	d.Colors = slices.Clone(d.Colors)
	return d
}

// Price is the size base price plus decoration and custom text surcharges.
// Layers, colors, filling, flavor, frosting, occasion and requests are free.
func Price(d Draft) decimal.Decimal {
	base, _ := SizePrice(d.Size)
	price := base.Add(DecorationSurcharge.Mul(decimal.NewFromInt(int64(len(d.Decorations)))))
	if d.CustomText != "" {
		price = price.Add(CustomTextSurcharge)
	}
	return price
}

// Customization renders the draft as the option map stored on a cart line.
func (d Draft) Customization() cart.Customization {
	return cart.Customization{
		"size":            d.Size,
		"layers":          d.Layers,
		"shape":           d.Shape,
		"flavor":          d.Flavor,
		"frosting":        d.Frosting,
		"filling":         d.Filling,
		"decorations":     slices.Clone(d.Decorations),
		"colors":          slices.Clone(d.Colors),
		"customText":      d.CustomText,
		"specialRequests": d.SpecialRequests,
		"occasion":        d.Occasion,
	}
}

// toggle adds v when absent and removes it when present, keeping insertion order.
func toggle(set []string, v string) []string {
	if i := slices.Index(set, v); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), v)
}
