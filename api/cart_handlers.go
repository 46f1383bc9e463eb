package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"watchstore/domain"
)

// getCartHandler returns the user's cart joined against the catalog. Lines
// whose product no longer exists are omitted.
// @Summary Get cart
// @Produce json
// @Success 200
// @Security ApiKeyAuth
// @Router /api/cart [get]
func (a *App) getCartHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)
	view, err := a.checkout.CartView(r.Context(), user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not load cart")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"cart":    view,
	})
}

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

// addCartItemHandler adds quantity of a product to the cart, merging into
// an existing line for the same product. Quantity defaults to 1 when the
// body omits it.
// @Summary Add cart item
// @Accept json
// @Produce json
// @Param item body addCartItemRequest true "Item"
// @Success 200
// @Security ApiKeyAuth
// @Router /api/cart/items [post]
func (a *App) addCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "productId is required")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity <= 0 {
		respondError(w, http.StatusBadRequest, "Quantity must be a positive integer")
		return
	}
	user, _ := userFrom(r)
	// the product must exist at add time; it may still be deleted later
	p, err := a.catalog.Get(r.Context(), req.ProductID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if p.Stock < quantity {
		respondError(w, http.StatusBadRequest, "Insufficient stock")
		return
	}
	if _, err := a.carts.AddLine(r.Context(), user.ID, req.ProductID, quantity); err != nil {
		respondError(w, http.StatusInternalServerError, "Could not update cart")
		return
	}
	a.respondCartView(w, r, user.ID)
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// updateCartItemHandler sets a line's quantity; zero or negative removes
// the line.
// @Summary Update cart item
// @Accept json
// @Produce json
// @Param productId path string true "Product ID"
// @Param item body updateCartItemRequest true "New quantity"
// @Success 200
// @Security ApiKeyAuth
// @Router /api/cart/items/{productId} [put]
func (a *App) updateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var req updateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, _ := userFrom(r)
	productID := mux.Vars(r)["productId"]
	// new quantities must fit the current stock; dangling lines whose
	// product was deleted can still be shrunk or removed
	if req.Quantity > 0 {
		if p, err := a.catalog.Get(r.Context(), productID); err == nil && p.Stock < req.Quantity {
			respondError(w, http.StatusBadRequest, "Insufficient stock")
			return
		}
	}
	if _, err := a.carts.UpdateLine(r.Context(), user.ID, productID, req.Quantity); err != nil {
		if domain.IsLineNotFoundError(err) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not update cart")
		return
	}
	a.respondCartView(w, r, user.ID)
}

// removeCartItemHandler deletes a line from the cart; removing an absent
// line is a no-op.
// @Summary Remove cart item
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200
// @Security ApiKeyAuth
// @Router /api/cart/items/{productId} [delete]
func (a *App) removeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)
	productID := mux.Vars(r)["productId"]
	if _, err := a.carts.RemoveLine(r.Context(), user.ID, productID); err != nil {
		respondError(w, http.StatusInternalServerError, "Could not update cart")
		return
	}
	a.respondCartView(w, r, user.ID)
}

// clearCartHandler empties the cart.
// @Summary Clear cart
// @Produce json
// @Success 200
// @Security ApiKeyAuth
// @Router /api/cart [delete]
func (a *App) clearCartHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)
	if err := a.carts.Clear(r.Context(), user.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "Could not clear cart")
		return
	}
	a.respondCartView(w, r, user.ID)
}

func (a *App) respondCartView(w http.ResponseWriter, r *http.Request, userID int64) {
	view, err := a.checkout.CartView(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not load cart")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"cart":    view,
	})
}
