package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"quickbuy/internal/config"
	"quickbuy/internal/handlers"
	"quickbuy/internal/middleware"
	"quickbuy/internal/models"
	"quickbuy/internal/services"
	"quickbuy/internal/store"
)

func SetupRouter(database *sqlx.DB, cfg config.Config, logger zerolog.Logger) *mux.Router {
	userStore := store.NewUserStore(database)
	productStore := store.NewProductStore(database)

	authService := services.NewAuthService(cfg.JWTSecret, logger)
	userService := services.NewUserService(userStore, logger)
	productService := services.NewProductService(productStore, logger)

	debug := !cfg.IsProduction()
	authHandler := handlers.NewAuthHandler(userService, authService, logger, debug)
	adminHandler := handlers.NewAdminHandler(userService, logger, debug)
	productHandler := handlers.NewProductHandler(productService, logger, debug)

	authenticate := middleware.Authenticate(authService, logger)
	productOwnership := middleware.RequireOwnershipOrAdmin(productStore.OwnerID, logger)

	r := mux.NewRouter()

	rateLimiter := middleware.NewRateLimiter(rate.Limit(10), 20)

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(rateLimiter.Middleware())

	api := r.PathPrefix("/api/v1").Subrouter()

	auth := api.PathPrefix("/auth").Subrouter()
	auth.Use(middleware.RequireJSON())
	auth.HandleFunc("/register", authHandler.Register).Methods("POST")
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")

	protectedAuth := auth.PathPrefix("").Subrouter()
	protectedAuth.Use(authenticate)
	protectedAuth.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	protectedAuth.HandleFunc("/profile", authHandler.Profile).Methods("GET")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authenticate)
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.HandleFunc("/users", adminHandler.GetUsers).Methods("GET")
	admin.HandleFunc("/users/{id}", adminHandler.DeleteUser).Methods("DELETE")

	products := api.PathPrefix("/products").Subrouter()
	products.HandleFunc("", productHandler.GetProducts).Methods("GET")
	products.HandleFunc("/{id}", productHandler.GetProduct).Methods("GET")

	createProduct := authenticate(middleware.RequireRole(models.RoleSeller)(http.HandlerFunc(productHandler.CreateProduct)))
	products.Handle("", createProduct).Methods("POST")

	products.Handle("/{id}", authenticate(productOwnership(http.HandlerFunc(productHandler.UpdateProduct)))).Methods("PUT")
	products.Handle("/{id}", authenticate(productOwnership(http.HandlerFunc(productHandler.DeleteProduct)))).Methods("DELETE")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}
