package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/session"
)

const sizeKey = "size"

type addItemRequest struct {
	ProductID     int                `json:"productId"`
	Quantity      *int               `json:"quantity"`
	Customization cart.Customization `json:"customization"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	var view cartView
	_ = h.withSession(r, func(s *session.Session) error {
		view = newCartView(s.Cart)
		return nil
	})
	writeJSON(w, http.StatusOK, view)
}

// AddCartItem looks the product up in the catalog and adds it to the caller's cart.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		h.writeError(w, r, badRequest("quantity must be at least 1"))
		return
	}

	p, err := h.catalog.Product(r.Context(), req.ProductID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	custom, err := priceCustomization(p, req.Customization)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var view cartView
	_ = h.withSession(r, func(s *session.Session) error {
		s.Cart.AddItem(p, custom, quantity)
		view = newCartView(s.Cart)
		return nil
	})
	writeJSON(w, http.StatusCreated, view)
}

// UpdateCartItem sets a line's quantity; zero or less removes the line.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Quantity == nil {
		h.writeError(w, r, badRequest("quantity is required"))
		return
	}

	lineID := chi.URLParam(r, "lineId")
	var view cartView
	_ = h.withSession(r, func(s *session.Session) error {
		s.Cart.UpdateQuantity(lineID, *req.Quantity)
		view = newCartView(s.Cart)
		return nil
	})
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "lineId")
	var view cartView
	_ = h.withSession(r, func(s *session.Session) error {
		s.Cart.RemoveItem(lineID)
		view = newCartView(s.Cart)
		return nil
	})
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	var view cartView
	_ = h.withSession(r, func(s *session.Session) error {
		s.Cart.Clear()
		view = newCartView(s.Cart)
		return nil
	})
	writeJSON(w, http.StatusOK, view)
}

// priceCustomization drops any client-supplied totalPrice and prices the chosen size from
// the catalog. With no size selected the line falls back to the product's base price.
func priceCustomization(p catalog.Product, c cart.Customization) (cart.Customization, error) {
	out := make(cart.Customization, len(c)+1)
	for k, v := range c {
		if k != cart.TotalPriceKey {
			out[k] = v
		}
	}

	raw, ok := out[sizeKey]
	if !ok || raw == nil || raw == "" {
		return out, nil
	}
	name, ok := raw.(string)
	if !ok {
		return nil, badRequest("size must be a string")
	}
	size, ok := p.Size(name)
	if !ok {
		return nil, badRequest(fmt.Sprintf("unknown size %q for product %d", name, p.ID))
	}
	out[cart.TotalPriceKey] = size.Price.InexactFloat64()
	return out, nil
}
