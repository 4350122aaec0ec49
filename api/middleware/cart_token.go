package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/libertycherie/storefront-backend/pkg/logger"
)

// CartTokenHeader carries the shopper's opaque cart/wishlist token. It is not
// an identity; it only names a bag of state on the server.
const CartTokenHeader = "X-Cart-Token"

type cartTokenCtxKey struct{}

// CartToken reads the shopper token, minting one when the client has none,
// and echoes it back so the client can persist it.
func CartToken(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(CartTokenHeader)
			if token == "" {
				token = uuid.NewString()
			}

			w.Header().Set(CartTokenHeader, token)

			ctx := context.WithValue(r.Context(), cartTokenCtxKey{}, token)
			if logg != nil {
				ctx = logg.WithCartToken(ctx, token)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartTokenFromContext returns the shopper token set by CartToken.
func CartTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(cartTokenCtxKey{}).(string)
	return token
}
