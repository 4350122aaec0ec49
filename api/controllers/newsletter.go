package controllers

import (
	"net/http"

	"github.com/libertycherie/storefront-backend/api/responses"
	"github.com/libertycherie/storefront-backend/api/validators"
	"github.com/libertycherie/storefront-backend/internal/newsletter"
	pkgerrors "github.com/libertycherie/storefront-backend/pkg/errors"
	"github.com/libertycherie/storefront-backend/pkg/logger"
)

// SubscribeNewsletter records a signup. Re-subscribing succeeds silently.
func SubscribeNewsletter(svc newsletter.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "newsletter service unavailable"))
			return
		}

		var payload newsletter.SubscribeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Subscribe(r.Context(), &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "subscribed"})
	}
}
