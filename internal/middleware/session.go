package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const HeaderSessionID = "X-Session-Id"

// SessionID reads X-Session-Id, minting one when the client sent none, and echoes it
// back so the client can keep using the same cart.
func SessionID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := strings.TrimSpace(r.Header.Get(HeaderSessionID))
		if sid == "" {
			sid = uuid.NewString()
		}

		w.Header().Set(HeaderSessionID, sid)

		ctx := context.WithValue(r.Context(), ctxSessionID, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetSessionID(ctx context.Context) string {
	if s, ok := ctx.Value(ctxSessionID).(string); ok {
		return s
	}
	return ""
}
