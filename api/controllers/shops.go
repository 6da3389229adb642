package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mlisondra/tindahan-backend/api/responses"
	"github.com/mlisondra/tindahan-backend/internal/catalog"
	pkgerrors "github.com/mlisondra/tindahan-backend/pkg/errors"
	"github.com/mlisondra/tindahan-backend/pkg/logger"
)

// ShopList returns all sellers with a storefront.
func ShopList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shops, err := svc.ListShops(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shops)
	}
}

// ShopProducts returns one seller's decoded product listing.
func ShopProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID := chi.URLParam(r, "sellerId")
		if sellerID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "seller id is required"))
			return
		}

		products, err := svc.ListProducts(r.Context(), sellerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// ShopProductDetail returns a single product from a seller's catalog.
func ShopProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID := chi.URLParam(r, "sellerId")
		productID := chi.URLParam(r, "productId")
		if sellerID == "" || productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "seller id and product id are required"))
			return
		}

		product, err := svc.GetProduct(r.Context(), sellerID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
