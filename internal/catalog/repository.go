package catalog

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

// Repository is the read-only catalog the storefront browses. Returned records are
// copies; callers may not mutate the catalog through them.
type Repository interface {
	Products(ctx context.Context) ([]Product, error)
	Product(ctx context.Context, id int) (Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]Product, error)
	SearchProducts(ctx context.Context, query string) ([]Product, error)
	FeaturedProducts(ctx context.Context) ([]Product, error)
	PopularProducts(ctx context.Context) ([]Product, error)

	Gallery(ctx context.Context) ([]GalleryItem, error)
	GalleryItem(ctx context.Context, id int) (GalleryItem, error)
	GalleryByCategory(ctx context.Context, category string) ([]GalleryItem, error)

	Testimonials(ctx context.Context) ([]Testimonial, error)
	FeaturedTestimonials(ctx context.Context) ([]Testimonial, error)
}

// Filter narrows a product listing the way the category sidebar does.
// Zero values disable a criterion.
type Filter struct {
	MinPrice         *decimal.Decimal
	MaxPrice         *decimal.Decimal
	Dietary          []string
	CustomizableOnly bool
}

// ApplyFilter keeps products whose base price is within [MinPrice, MaxPrice],
// that offer any of the requested dietary options, and that are customizable when asked.
func ApplyFilter(products []Product, f Filter) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.MinPrice != nil && p.BasePrice.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.BasePrice.GreaterThan(*f.MaxPrice) {
			continue
		}
		if len(f.Dietary) > 0 && !slices.ContainsFunc(f.Dietary, func(d string) bool {
			return slices.Contains(p.Dietary, d)
		}) {
			continue
		}
		if f.CustomizableOnly && !p.Customizable {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p Product, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.Category), term)
}
