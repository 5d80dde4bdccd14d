package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/designer"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/session"
)

type setFieldRequest struct {
	Value string `json:"value"`
}

// designerAction applies fn to the caller's configurator and replies with the new state.
func (h *Handler) designerAction(fn func(c *designer.Configurator) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var view designerView
		err := h.withSession(r, func(s *session.Session) error {
			if err := fn(s.Designer); err != nil {
				return err
			}
			view = newDesignerView(s.Designer)
			return nil
		})
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func (h *Handler) GetDesigner(w http.ResponseWriter, r *http.Request) {
	h.designerAction(func(*designer.Configurator) error { return nil })(w, r)
}

func (h *Handler) AdvanceDesigner(w http.ResponseWriter, r *http.Request) {
	h.designerAction((*designer.Configurator).Advance)(w, r)
}

func (h *Handler) RetreatDesigner(w http.ResponseWriter, r *http.Request) {
	h.designerAction(func(c *designer.Configurator) error {
		c.Retreat()
		return nil
	})(w, r)
}

func (h *Handler) SetDesignerField(w http.ResponseWriter, r *http.Request) {
	var req setFieldRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	field := designer.Field(chi.URLParam(r, "field"))
	h.designerAction(func(c *designer.Configurator) error {
		return c.SetField(field, req.Value)
	})(w, r)
}

func (h *Handler) ToggleDecoration(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	h.designerAction(func(c *designer.Configurator) error {
		c.ToggleDecoration(name)
		return nil
	})(w, r)
}

func (h *Handler) ToggleColor(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	h.designerAction(func(c *designer.Configurator) error {
		c.ToggleColor(name)
		return nil
	})(w, r)
}

func (h *Handler) IncrementLayers(w http.ResponseWriter, r *http.Request) {
	h.designerAction(func(c *designer.Configurator) error {
		c.IncrementLayers()
		return nil
	})(w, r)
}

func (h *Handler) DecrementLayers(w http.ResponseWriter, r *http.Request) {
	h.designerAction(func(c *designer.Configurator) error {
		c.DecrementLayers()
		return nil
	})(w, r)
}

// FinalizeDesign turns the reviewed design into a cart line and returns the cart.
func (h *Handler) FinalizeDesign(w http.ResponseWriter, r *http.Request) {
	var view cartView
	err := h.withSession(r, func(s *session.Session) error {
		cake, err := s.Designer.Finalize()
		if err != nil {
			return err
		}
		s.Cart.AddItem(cake.Product, cake.Customization, 1)
		view = newCartView(s.Cart)
		return nil
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}
