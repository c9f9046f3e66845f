package cart

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/chainfeed/storefront-backend/api/middleware"
	"github.com/chainfeed/storefront-backend/api/responses"
	"github.com/chainfeed/storefront-backend/api/validators"
	cartsvc "github.com/chainfeed/storefront-backend/internal/cart"
	"github.com/chainfeed/storefront-backend/pkg/config"
	pkgerrors "github.com/chainfeed/storefront-backend/pkg/errors"
	"github.com/chainfeed/storefront-backend/pkg/logger"
)

// CartFetch returns the session's lines plus derived totals.
func CartFetch(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeForRequest(svc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(store))
	}
}

// CartAddItem dispatches a guarded add. A suppressed duplicate is reported
// as success with the unchanged cart.
func CartAddItem(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeForRequest(svc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.Add(r.Context(), payload.toProduct(), payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(store))
	}
}

// CartSetQuantity overwrites a line's quantity; sub-1 values and unknown
// ids leave the cart untouched.
func CartSetQuantity(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeForRequest(svc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		var payload SetQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.SetQuantity(r.Context(), productID, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(store))
	}
}

// CartRemoveItem deletes a line; an absent id is a successful no-op.
func CartRemoveItem(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeForRequest(svc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		if err := store.Remove(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(store))
	}
}

// CartClear empties the session's cart.
func CartClear(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeForRequest(svc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(store))
	}
}

// CartCheckoutURL derives the external checkout redirect. An empty cart
// yields an empty URL, which the client must treat as "cannot proceed".
func CartCheckoutURL(svc *cartsvc.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeForRequest(svc, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		origin := strings.TrimSpace(r.URL.Query().Get("origin"))
		if origin == "" {
			origin = strings.TrimSpace(r.Header.Get("Origin"))
		}
		if origin == "" && cfg != nil {
			origin = cfg.Checkout.PublicOrigin
		}

		responses.WriteSuccess(w, CheckoutURLView{CheckoutURL: store.CheckoutURL(origin)})
	}
}

func storeForRequest(svc *cartsvc.Service, r *http.Request) (*cartsvc.Store, error) {
	if svc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable")
	}
	session := middleware.SessionIDFromContext(r.Context())
	if session == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart session is required")
	}
	return svc.ForSession(r.Context(), session)
}
