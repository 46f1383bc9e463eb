package api

import (
	"encoding/json"
	"net/http"

	"watchstore/domain"
)

type checkoutRequest struct {
	ShippingAddress string `json:"shippingAddress"`
	PaymentMethod   string `json:"paymentMethod"`
}

// checkoutHandler converts the user's cart into an order.
// @Summary Checkout
// @Accept json
// @Produce json
// @Param checkout body checkoutRequest true "Shipping and payment"
// @Success 201 {object} domain.Order
// @Failure 400
// @Security ApiKeyAuth
// @Router /api/orders/checkout [post]
func (a *App) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, _ := userFrom(r)
	order, err := a.checkout.Checkout(r.Context(), user.ID, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		outcome := "error"
		switch {
		case domain.IsEmptyCartError(err):
			outcome = "empty_cart"
			respondError(w, http.StatusBadRequest, err.Error())
		case domain.IsProductNotFoundError(err):
			outcome = "product_not_found"
			respondError(w, http.StatusBadRequest, err.Error())
		case domain.IsInsufficientStockError(err):
			outcome = "insufficient_stock"
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Checkout failed")
		}
		if a.metrics != nil {
			a.metrics.Checkouts.WithLabelValues(outcome).Inc()
		}
		return
	}
	if a.metrics != nil {
		a.metrics.Checkouts.WithLabelValues("success").Inc()
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"order":   order,
	})
}

// listMyOrdersHandler returns the user's orders.
// @Summary List my orders
// @Produce json
// @Success 200
// @Security ApiKeyAuth
// @Router /api/orders [get]
func (a *App) listMyOrdersHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)
	orders, err := a.orders.ListByUser(r.Context(), user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not list orders")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"orders":  orders,
	})
}

// getOrderHandler returns one of the user's orders. An order belonging to
// another user looks absent.
// @Summary Get order
// @Produce json
// @Param id path int true "Order ID"
// @Success 200
// @Security ApiKeyAuth
// @Router /api/orders/{id} [get]
func (a *App) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	user, _ := userFrom(r)
	order, err := a.orders.Get(r.Context(), id, user.ID)
	if err != nil {
		if domain.IsOrderNotFoundError(err) {
			respondError(w, http.StatusNotFound, "Order not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not load order")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"order":   order,
	})
}

// listAllOrdersHandler returns every order. Admin only.
// @Summary List all orders
// @Produce json
// @Success 200
// @Security ApiKeyAuth
// @Router /api/admin/orders [get]
func (a *App) listAllOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := a.orders.ListAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not list orders")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"orders":  orders,
		"total":   len(orders),
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// updateOrderStatusHandler sets an order's status. Admin only. Any valid
// status may follow any other.
// @Summary Update order status
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param status body updateStatusRequest true "New status"
// @Success 200 {object} domain.Order
// @Failure 400
// @Failure 404
// @Security ApiKeyAuth
// @Router /api/admin/orders/{id}/status [put]
func (a *App) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	order, err := a.orders.UpdateStatus(r.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		switch {
		case domain.IsInvalidStatusError(err):
			respondError(w, http.StatusBadRequest, err.Error())
		case domain.IsOrderNotFoundError(err):
			respondError(w, http.StatusNotFound, "Order not found")
		default:
			respondError(w, http.StatusInternalServerError, "Could not update order")
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"order":   order,
	})
}
