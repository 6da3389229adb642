package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mlisondra/tindahan-backend/api/middleware"
	"github.com/mlisondra/tindahan-backend/api/responses"
	"github.com/mlisondra/tindahan-backend/api/validators"
	cartsvc "github.com/mlisondra/tindahan-backend/internal/cart"
	"github.com/mlisondra/tindahan-backend/internal/catalog"
	pkgerrors "github.com/mlisondra/tindahan-backend/pkg/errors"
	"github.com/mlisondra/tindahan-backend/pkg/logger"
	"github.com/mlisondra/tindahan-backend/pkg/types"
)

type cartAddRequest struct {
	SellerID  string `json:"sellerId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type cartUpdateRequest struct {
	Quantity     int  `json:"quantity" validate:"min=0"`
	CurrentStock *int `json:"currentStock,omitempty"`
}

type cartView struct {
	Items      []types.CartLine `json:"items"`
	TotalPrice decimal.Decimal  `json:"totalPrice"`
	ItemCount  int              `json:"itemCount"`
}

// CartFetch returns the buyer's cart with totals.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerID := middleware.BuyerIDFromContext(r.Context())

		items, err := svc.Snapshot(r.Context(), buyerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		total, err := svc.TotalPrice(r.Context(), buyerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		count, err := svc.ItemCount(r.Context(), buyerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartView{Items: items, TotalPrice: total, ItemCount: count})
	}
}

// CartAdd resolves the product from the seller's catalog and adds it to the
// buyer's cart.
func CartAdd(svc cartsvc.Service, shops catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerID := middleware.BuyerIDFromContext(r.Context())

		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := shops.GetProduct(r.Context(), payload.SellerID, payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AddToCart(r.Context(), buyerID, *product, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CartUpdateItem sets a line's quantity; zero removes the line.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerID := middleware.BuyerIDFromContext(r.Context())
		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		var payload cartUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateQuantity(r.Context(), buyerID, productID, payload.Quantity, payload.CurrentStock)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CartRemoveItem deletes a line; removing an absent line succeeds.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerID := middleware.BuyerIDFromContext(r.Context())
		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		if err := svc.RemoveFromCart(r.Context(), buyerID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "Item removed from cart"})
	}
}

// CartClear empties the buyer's cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerID := middleware.BuyerIDFromContext(r.Context())

		if err := svc.ClearCart(r.Context(), buyerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "Cart cleared"})
	}
}
