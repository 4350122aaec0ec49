package controllers

import (
	"net/http"

	"github.com/libertycherie/storefront-backend/api/middleware"
	"github.com/libertycherie/storefront-backend/api/responses"
	"github.com/libertycherie/storefront-backend/api/validators"
	"github.com/libertycherie/storefront-backend/internal/checkout"
	pkgerrors "github.com/libertycherie/storefront-backend/pkg/errors"
	"github.com/libertycherie/storefront-backend/pkg/logger"
)

// CreateCheckoutSession opens a hosted Checkout session for the submitted
// items. No order exists yet; that happens when the webhook confirms payment.
func CreateCheckoutSession(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkout.Request
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := middleware.CartTokenFromContext(r.Context())
		session, err := svc.CreateSession(r.Context(), token, &payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, session)
	}
}
