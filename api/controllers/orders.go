package controllers

import (
	"net/http"

	"github.com/libertycherie/storefront-backend/api/responses"
	"github.com/libertycherie/storefront-backend/api/validators"
	"github.com/libertycherie/storefront-backend/internal/orders"
	pkgerrors "github.com/libertycherie/storefront-backend/pkg/errors"
	"github.com/libertycherie/storefront-backend/pkg/logger"
)

// LookupOrder serves the confirmation page after the Stripe redirect. A 404
// here usually means the webhook has not landed yet and the client retries.
func LookupOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		sessionID := validators.SanitizeString(r.URL.Query().Get("session_id"), 256)
		order, err := svc.LookupBySessionID(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
