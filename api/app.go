// Package api wires the storefront's HTTP surface: routing, auth
// middleware, and the JSON handlers over the domain stores.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	"watchstore/auth"
	"watchstore/checkout"
	"watchstore/domain"
	"watchstore/metrics"
)

// App holds the services and stores the handlers operate on.
type App struct {
	auth     *auth.Service
	checkout *checkout.Service
	catalog  domain.CatalogStore
	orders   domain.OrderStore
	carts    domain.CartStore
	users    domain.UserStore
	metrics  *metrics.ServerMetrics
}

// NewApp constructs the HTTP application.
func NewApp(
	authSvc *auth.Service,
	checkoutSvc *checkout.Service,
	catalog domain.CatalogStore,
	carts domain.CartStore,
	orders domain.OrderStore,
	users domain.UserStore,
	m *metrics.ServerMetrics,
) *App {
	return &App{
		auth:     authSvc,
		checkout: checkoutSvc,
		catalog:  catalog,
		carts:    carts,
		orders:   orders,
		users:    users,
		metrics:  m,
	}
}

// SetupRoutes registers every endpoint on the router.
func (a *App) SetupRoutes(r *mux.Router) {
	r.Use(a.metricsMiddleware)

	r.HandleFunc("/api/health", a.healthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	r.HandleFunc("/api/auth/register", a.registerHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", a.loginHandler).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(a.authMiddleware)
	authed.HandleFunc("/api/auth/me", a.meHandler).Methods(http.MethodGet)
	authed.HandleFunc("/api/auth/permissions", a.permissionsHandler).Methods(http.MethodGet)
	authed.HandleFunc("/api/auth/logout", a.logoutHandler).Methods(http.MethodPost)

	r.HandleFunc("/api/products", a.listProductsHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/products/{id}", a.getProductHandler).Methods(http.MethodGet)

	authed.HandleFunc("/api/cart", a.getCartHandler).Methods(http.MethodGet)
	authed.HandleFunc("/api/cart", a.clearCartHandler).Methods(http.MethodDelete)
	authed.HandleFunc("/api/cart/items", a.addCartItemHandler).Methods(http.MethodPost)
	authed.HandleFunc("/api/cart/items/{productId}", a.updateCartItemHandler).Methods(http.MethodPut)
	authed.HandleFunc("/api/cart/items/{productId}", a.removeCartItemHandler).Methods(http.MethodDelete)

	authed.HandleFunc("/api/orders/checkout", a.checkoutHandler).Methods(http.MethodPost)
	authed.HandleFunc("/api/orders", a.listMyOrdersHandler).Methods(http.MethodGet)
	authed.HandleFunc("/api/orders/{id}", a.getOrderHandler).Methods(http.MethodGet)

	admin := r.NewRoute().Subrouter()
	admin.Use(a.authMiddleware, a.requireRole(domain.RoleAdmin))
	admin.HandleFunc("/api/users", a.listUsersHandler).Methods(http.MethodGet)
	admin.HandleFunc("/api/admin/users/{id}/role", a.updateUserRoleHandler).Methods(http.MethodPut)
	admin.HandleFunc("/api/admin/users/{id}", a.deleteUserHandler).Methods(http.MethodDelete)
	admin.HandleFunc("/api/products", a.createProductHandler).Methods(http.MethodPost)
	admin.HandleFunc("/api/products/{id}", a.updateProductHandler).Methods(http.MethodPut)
	admin.HandleFunc("/api/products/{id}", a.deleteProductHandler).Methods(http.MethodDelete)
	admin.HandleFunc("/api/admin/orders", a.listAllOrdersHandler).Methods(http.MethodGet)
	admin.HandleFunc("/api/admin/orders/{id}/status", a.updateOrderStatusHandler).Methods(http.MethodPut)
}

// healthHandler reports liveness.
// @Summary Health check
// @Produce json
// @Success 200
// @Router /api/health [get]
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Watch Store API is running!",
	})
}
