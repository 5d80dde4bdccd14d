package catalog

import "github.com/shopspring/decimal"

// SizeOption is a sellable size of a product with its own price.
type SizeOption struct {
	Name   string          `json:"name"`
	Serves string          `json:"serves,omitempty"`
	Price  decimal.Decimal `json:"price"`
}

type Product struct {
	ID           int             `json:"Id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	BasePrice    decimal.Decimal `json:"basePrice"`
	Images       []string        `json:"images"`
	Customizable bool            `json:"customizable"`
	LeadTime     int             `json:"leadTime"`
	Dietary      []string        `json:"dietary"`
	Sizes        []SizeOption    `json:"sizes"`
	Flavors      []string        `json:"flavors"`
	Featured     bool            `json:"featured"`
	Popular      bool            `json:"popular"`
	Rating       float64         `json:"rating"`
}

// PrimaryImage is the first image, or "" when the product has none.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Size looks up a size option by name.
func (p Product) Size(name string) (SizeOption, bool) {
	for _, s := range p.Sizes {
		if s.Name == name {
			return s, true
		}
	}
	return SizeOption{}, false
}

func (p Product) clone() Product {
	p.Images = append([]string(nil), p.Images...)
	p.Dietary = append([]string(nil), p.Dietary...)
	p.Sizes = append([]SizeOption(nil), p.Sizes...)
	p.Flavors = append([]string(nil), p.Flavors...)
	return p
}

type GalleryItem struct {
	ID          int    `json:"Id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

type Testimonial struct {
	ID       int    `json:"Id"`
	Name     string `json:"name"`
	Text     string `json:"text"`
	Rating   int    `json:"rating"`
	Occasion string `json:"occasion"`
	Featured bool   `json:"featured"`
}
