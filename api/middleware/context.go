package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tariffsheriff/tariffsheriff-backend/pkg/logger"
)

type contextKey string

const ctxDraftOwner contextKey = "draft_owner"

const draftOwnerHeader = "X-Draft-Owner"

// anonymousOwner is the autosave key for clients that do not identify
// themselves.
const anonymousOwner = "anonymous"

// DraftOwner resolves the autosave owner from the request header and
// threads it through the context.
func DraftOwner(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner := strings.TrimSpace(r.Header.Get(draftOwnerHeader))
			if owner == "" {
				owner = anonymousOwner
			}

			ctx := WithDraftOwner(r.Context(), owner)
			if logg != nil {
				ctx = logg.WithDraftOwner(ctx, owner)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithDraftOwner injects the draft owner into the context.
func WithDraftOwner(ctx context.Context, owner string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxDraftOwner, owner)
}

// DraftOwnerFromContext returns the draft owner, or the anonymous owner
// when none was set.
func DraftOwnerFromContext(ctx context.Context) string {
	if ctx == nil {
		return anonymousOwner
	}
	if v, ok := ctx.Value(ctxDraftOwner).(string); ok && v != "" {
		return v
	}
	return anonymousOwner
}
