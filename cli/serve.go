package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	stdouttrace "go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"watchstore/api"
	"watchstore/auth"
	"watchstore/checkout"
	"watchstore/metrics"
	"watchstore/store"
)

func runServe() error {
	ctx := context.Background()

	exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return err
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))
	otel.SetTracerProvider(tp)
	defer tp.Shutdown(context.Background())

	catalog := store.NewInMemoryCatalog()
	carts := store.NewInMemoryCarts()
	users := store.NewInMemoryUsers()

	orders, err := store.NewOrderStore(viper.GetString("order-store"), viper.GetString("database-url"))
	if err != nil {
		return err
	}
	if pg, ok := orders.(*store.PGOrders); ok {
		defer pg.Close()
	}

	sessions, err := auth.NewSessionStore(viper.GetString("session-store"), viper.GetString("redis-addr"))
	if err != nil {
		return err
	}

	authSvc := auth.NewService(users, sessions)
	checkoutSvc := checkout.NewService(catalog, carts, orders)

	if viper.GetBool("seed") {
		if err := authSvc.SeedUsers(ctx); err != nil {
			return err
		}
		if err := seedCatalog(ctx, catalog); err != nil {
			return err
		}
	}

	app := api.NewApp(authSvc, checkoutSvc, catalog, carts, orders, users, metrics.New())
	router := mux.NewRouter()
	app.SetupRoutes(router)

	server := &http.Server{
		Addr:         viper.GetString("addr"),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", server.Addr,
			"order_store", viper.GetString("order-store"),
			"session_store", viper.GetString("session-store"))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server exited")
	return nil
}
