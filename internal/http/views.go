package httpapi

import (
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/designer"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type lineView struct {
	ID            string             `json:"id"`
	ProductID     int                `json:"productId"`
	ProductName   string             `json:"productName"`
	ProductImage  string             `json:"productImage"`
	Quantity      int                `json:"quantity"`
	Customization cart.Customization `json:"customization"`
	UnitPrice     string             `json:"unitPrice"`
	LineTotal     string             `json:"lineTotal"`
}

type cartView struct {
	Items                 []lineView `json:"items"`
	ItemCount             int        `json:"itemCount"`
	Subtotal              string     `json:"subtotal"`
	Delivery              string     `json:"delivery"`
	Tax                   string     `json:"tax"`
	Total                 string     `json:"total"`
	FreeDeliveryThreshold string     `json:"freeDeliveryThreshold"`
}

func newCartView(s *cart.Store) cartView {
	items := s.Items()
	lines := make([]lineView, 0, len(items))
	for _, l := range items {
		lines = append(lines, lineView{
			ID:            l.ID,
			ProductID:     l.ProductID,
			ProductName:   l.ProductName,
			ProductImage:  l.ProductImage,
			Quantity:      l.Quantity,
			Customization: l.Customization,
			UnitPrice:     money(l.UnitPrice),
			LineTotal:     money(l.Subtotal()),
		})
	}

	sum := cart.Summarize(s.Total())
	return cartView{
		Items:                 lines,
		ItemCount:             s.ItemCount(),
		Subtotal:              money(sum.Subtotal),
		Delivery:              money(sum.Delivery),
		Tax:                   money(sum.Tax),
		Total:                 money(sum.Total),
		FreeDeliveryThreshold: money(cart.FreeDeliveryThreshold),
	}
}

type designerView struct {
	Step       int              `json:"step"`
	StepName   string           `json:"stepName"`
	Steps      []string         `json:"steps"`
	CanAdvance bool             `json:"canAdvance"`
	Draft      designer.Draft   `json:"draft"`
	Price      string           `json:"price"`
	Options    designer.Options `json:"options"`
}

func newDesignerView(c *designer.Configurator) designerView {
	steps := designer.Steps()
	names := make([]string, 0, len(steps))
	for _, s := range steps {
		names = append(names, s.String())
	}
	return designerView{
		Step:       int(c.Step()),
		StepName:   c.Step().String(),
		Steps:      names,
		CanAdvance: c.CanAdvance(),
		Draft:      c.Draft(),
		Price:      money(c.Price()),
		Options:    designer.DefaultOptions(),
	}
}
