package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/metrics"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/session"
)

type Deps struct {
	Logger           *zap.Logger
	Catalog          catalog.Repository
	Sessions         *session.Registry
	Metrics          *metrics.ServerMetrics
	CORSAllowOrigins []string
}

func NewRouter(d Deps) http.Handler {
	h := NewHandler(d.Logger, d.Catalog, d.Sessions)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Logging(d.Logger))
	r.Use(middleware.Recover(d.Logger))
	r.Use(middleware.CORS(d.CORSAllowOrigins))
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Get("/health", h.Health)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/featured", h.FeaturedProducts)
		r.Get("/popular", h.PopularProducts)
		r.Get("/{id}", h.GetProduct)
	})
	r.Route("/api/gallery", func(r chi.Router) {
		r.Get("/", h.ListGallery)
		r.Get("/{id}", h.GetGalleryItem)
	})
	r.Get("/api/testimonials", h.ListTestimonials)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionID)

		r.Route("/api/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddCartItem)
			r.Patch("/items/{lineId}", h.UpdateCartItem)
			r.Delete("/items/{lineId}", h.RemoveCartItem)
		})

		r.Route("/api/designer", func(r chi.Router) {
			r.Get("/", h.GetDesigner)
			r.Post("/next", h.AdvanceDesigner)
			r.Post("/back", h.RetreatDesigner)
			r.Put("/fields/{field}", h.SetDesignerField)
			r.Post("/decorations/{name}", h.ToggleDecoration)
			r.Post("/colors/{name}", h.ToggleColor)
			r.Post("/layers/increment", h.IncrementLayers)
			r.Post("/layers/decrement", h.DecrementLayers)
			r.Post("/finalize", h.FinalizeDesign)
		})
	})

	return r
}
