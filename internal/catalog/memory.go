package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

//go:embed mockdata/*.json
var mockFS embed.FS

// Data is the full mock catalog.
type Data struct {
	Products     []Product
	Gallery      []GalleryItem
	Testimonials []Testimonial
}

// LoadMockData decodes the embedded catalog.
func LoadMockData() (Data, error) {
	var d Data
	if err := decodeMock("mockdata/products.json", &d.Products); err != nil {
		return Data{}, err
	}
	if err := decodeMock("mockdata/gallery.json", &d.Gallery); err != nil {
		return Data{}, err
	}
	if err := decodeMock("mockdata/testimonials.json", &d.Testimonials); err != nil {
		return Data{}, err
	}
	return d, nil
}

func decodeMock(name string, v any) error {
	raw, err := mockFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// MemoryRepository serves a fixed catalog with an artificial delay on every call.
type MemoryRepository struct {
	data    Data
	latency time.Duration
}

func NewMemoryRepository(data Data, latency time.Duration) *MemoryRepository {
	return &MemoryRepository{data: data, latency: latency}
}

// NewMockRepository is a MemoryRepository over the embedded mock data.
func NewMockRepository(latency time.Duration) (*MemoryRepository, error) {
	data, err := LoadMockData()
	if err != nil {
		return nil, err
	}
	return NewMemoryRepository(data, latency), nil
}

func (r *MemoryRepository) wait(ctx context.Context) error {
	if r.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(r.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (r *MemoryRepository) products(ctx context.Context, keep func(Product) bool) ([]Product, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(r.data.Products))
	for _, p := range r.data.Products {
		if keep(p) {
			out = append(out, p.clone())
		}
	}
	return out, nil
}

func (r *MemoryRepository) Products(ctx context.Context) ([]Product, error) {
	return r.products(ctx, func(Product) bool { return true })
}

func (r *MemoryRepository) Product(ctx context.Context, id int) (Product, error) {
	if err := r.wait(ctx); err != nil {
		return Product{}, err
	}
	for _, p := range r.data.Products {
		if p.ID == id {
			return p.clone(), nil
		}
	}
	return Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
}

func (r *MemoryRepository) ProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	return r.products(ctx, func(p Product) bool { return strings.EqualFold(p.Category, category) })
}

func (r *MemoryRepository) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	return r.products(ctx, func(p Product) bool { return matchesSearch(p, query) })
}

func (r *MemoryRepository) FeaturedProducts(ctx context.Context) ([]Product, error) {
	return r.products(ctx, func(p Product) bool { return p.Featured })
}

func (r *MemoryRepository) PopularProducts(ctx context.Context) ([]Product, error) {
	return r.products(ctx, func(p Product) bool { return p.Popular })
}

func (r *MemoryRepository) Gallery(ctx context.Context) ([]GalleryItem, error) {
	return r.gallery(ctx, func(GalleryItem) bool { return true })
}

func (r *MemoryRepository) GalleryItem(ctx context.Context, id int) (GalleryItem, error) {
	if err := r.wait(ctx); err != nil {
		return GalleryItem{}, err
	}
	for _, g := range r.data.Gallery {
		if g.ID == id {
			return g, nil
		}
	}
	return GalleryItem{}, fmt.Errorf("gallery item %d: %w", id, ErrNotFound)
}

func (r *MemoryRepository) GalleryByCategory(ctx context.Context, category string) ([]GalleryItem, error) {
	return r.gallery(ctx, func(g GalleryItem) bool { return strings.EqualFold(g.Category, category) })
}

func (r *MemoryRepository) gallery(ctx context.Context, keep func(GalleryItem) bool) ([]GalleryItem, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	out := make([]GalleryItem, 0, len(r.data.Gallery))
	for _, g := range r.data.Gallery {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *MemoryRepository) Testimonials(ctx context.Context) ([]Testimonial, error) {
	return r.testimonials(ctx, func(Testimonial) bool { return true })
}

func (r *MemoryRepository) FeaturedTestimonials(ctx context.Context) ([]Testimonial, error) {
	return r.testimonials(ctx, func(t Testimonial) bool { return t.Featured })
}

func (r *MemoryRepository) testimonials(ctx context.Context, keep func(Testimonial) bool) ([]Testimonial, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	out := make([]Testimonial, 0, len(r.data.Testimonials))
	for _, t := range r.data.Testimonials {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out, nil
}
