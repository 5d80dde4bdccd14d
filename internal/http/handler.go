package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/designer"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/session"
)

type Handler struct {
	logger   *zap.Logger
	catalog  catalog.Repository
	sessions *session.Registry
}

func NewHandler(logger *zap.Logger, repo catalog.Repository, sessions *session.Registry) *Handler {
	return &Handler{logger: logger, catalog: repo, sessions: sessions}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "storefront-service"})
}

// withSession runs fn on the caller's session, keyed by the id the SessionID middleware resolved.
func (h *Handler) withSession(r *http.Request, fn func(s *session.Session) error) error {
	correlationID := middleware.GetCorrelationID(r.Context())
	return h.sessions.Do(middleware.GetSessionID(r.Context()), func(s *session.Session) error {
		s.Cart.SetCorrelationID(correlationID)
		return fn(s)
	})
}

// writeError maps domain errors onto status codes; anything unrecognised is a 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		middleware.WriteError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, designer.ErrUnknownField):
		middleware.WriteError(w, r, http.StatusBadRequest, err.Error())
	case designer.IsPrecondition(err):
		middleware.WriteError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, errBadRequest):
		middleware.WriteError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(r.Context().Err(), context.Canceled):
		// client went away; nothing useful to write
	default:
		h.logger.Error("request failed",
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("correlation_id", middleware.GetCorrelationID(r.Context())),
		)
		middleware.WriteError(w, r, http.StatusInternalServerError, "internal error")
	}
}

var errBadRequest = errors.New("bad request")

func badRequest(msg string) error {
	return fmt.Errorf("%w: %s", errBadRequest, msg)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
