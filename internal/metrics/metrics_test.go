package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
)

func TestServerMetrics_CountsCartEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg, reg)

	m.Notify(cart.Notification{Kind: cart.EventItemAdded})
	m.Notify(cart.Notification{Kind: cart.EventItemAdded})
	m.Notify(cart.Notification{Kind: cart.EventCartCleared})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CartEvents.WithLabelValues("item-added")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CartEvents.WithLabelValues("cart-cleared")))
}

func TestServerMetrics_Handler(t *testing.T) {
	m := New()
	m.SetActiveSessions(3)
	m.Requests.WithLabelValues("/api/cart", "GET", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "storefront_session_active 3"))
	assert.Contains(t, body, `storefront_http_requests_total{method="GET",route="/api/cart",status="200"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
