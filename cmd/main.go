package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "maison/internal/http"
	"maison/internal/repository"
	"maison/internal/service"

	_ "maison/docs"
)

func main() {
	catalogPath := getenv("CATALOG_FILE", "data/products.json")
	cartPath := getenv("CART_FILE", "cart.json")
	addr := getenv("ADDR", ":9091")

	catalog, err := repository.NewJSONCatalog(catalogPath)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}
	cartRepo := repository.NewFileCartStore(cartPath)

	cartSvc, err := service.NewCartService(context.Background(), cartRepo)
	if err != nil {
		log.Fatalf("load cart: %v", err)
	}
	catalogSvc := service.NewCatalogService(catalog)
	pricingSvc := service.NewPricingService(catalog, service.DefaultCoupons)
	checkoutSvc := service.NewCheckoutService(cartSvc, pricingSvc)

	srv := httpapi.NewServer(catalogSvc, cartSvc, pricingSvc, checkoutSvc)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("HTTP server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
