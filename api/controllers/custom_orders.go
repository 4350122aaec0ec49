package controllers

import (
	"net/http"

	"github.com/libertycherie/storefront-backend/api/responses"
	"github.com/libertycherie/storefront-backend/api/validators"
	"github.com/libertycherie/storefront-backend/internal/customorders"
	pkgerrors "github.com/libertycherie/storefront-backend/pkg/errors"
	"github.com/libertycherie/storefront-backend/pkg/logger"
)

// SubmitCustomOrder records a made-to-measure inquiry.
func SubmitCustomOrder(svc customorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "custom orders service unavailable"))
			return
		}

		var payload customorders.Request
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.Submit(r.Context(), &payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}
