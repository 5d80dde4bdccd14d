package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
)

// ListProducts serves GET /api/products. q searches, category narrows, and the
// remaining query parameters feed catalog.ApplyFilter.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter, err := parseFilter(q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var products []catalog.Product
	search := strings.TrimSpace(q.Get("q"))
	category := strings.TrimSpace(q.Get("category"))
	switch {
	case search != "":
		products, err = h.catalog.SearchProducts(r.Context(), search)
		if err == nil && category != "" {
			products = inCategory(products, category)
		}
	case category != "":
		products, err = h.catalog.ProductsByCategory(r.Context(), category)
	default:
		products, err = h.catalog.Products(r.Context())
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, catalog.ApplyFilter(products, filter))
}

func (h *Handler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.FeaturedProducts(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) PopularProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.PopularProducts(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, badRequest("product id must be an integer"))
		return
	}
	p, err := h.catalog.Product(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) ListGallery(w http.ResponseWriter, r *http.Request) {
	var (
		items []catalog.GalleryItem
		err   error
	)
	if category := strings.TrimSpace(r.URL.Query().Get("category")); category != "" {
		items, err = h.catalog.GalleryByCategory(r.Context(), category)
	} else {
		items, err = h.catalog.Gallery(r.Context())
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) GetGalleryItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, badRequest("gallery id must be an integer"))
		return
	}
	item, err := h.catalog.GalleryItem(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	var (
		items []catalog.Testimonial
		err   error
	)
	featured, _ := strconv.ParseBool(r.URL.Query().Get("featured"))
	if featured {
		items, err = h.catalog.FeaturedTestimonials(r.Context())
	} else {
		items, err = h.catalog.Testimonials(r.Context())
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func parseFilter(q map[string][]string) (catalog.Filter, error) {
	var f catalog.Filter
	get := func(k string) string {
		if v := q[k]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	if v := get("minPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, badRequest("minPrice must be a number")
		}
		f.MinPrice = &d
	}
	if v := get("maxPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, badRequest("maxPrice must be a number")
		}
		f.MaxPrice = &d
	}
	for _, d := range q["dietary"] {
		if d = strings.TrimSpace(d); d != "" {
			f.Dietary = append(f.Dietary, d)
		}
	}
	if v := get("customizable"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, badRequest("customizable must be a boolean")
		}
		f.CustomizableOnly = b
	}
	return f, nil
}

func inCategory(products []catalog.Product, category string) []catalog.Product {
	out := products[:0]
	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}
