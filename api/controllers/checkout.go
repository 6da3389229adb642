package controllers

import (
	"net/http"

	"github.com/mlisondra/tindahan-backend/api/middleware"
	"github.com/mlisondra/tindahan-backend/api/responses"
	checkoutsvc "github.com/mlisondra/tindahan-backend/internal/checkout"
	"github.com/mlisondra/tindahan-backend/pkg/logger"
)

// Checkout converts the buyer's cart into per-seller orders.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerID := middleware.BuyerIDFromContext(r.Context())

		result, err := svc.Checkout(r.Context(), buyerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
