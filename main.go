// RecipeShare backend entry point. Loads configuration, connects to
// PostgreSQL, runs migrations, wires the feature modules and starts the HTTP
// server with graceful shutdown.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/user/recipeshare-go/apperror"
	"github.com/user/recipeshare-go/auth"
	"github.com/user/recipeshare-go/config"
	"github.com/user/recipeshare-go/db"
	"github.com/user/recipeshare-go/recipes"
	"github.com/user/recipeshare-go/users"
)

func main() {
	// .env is a development convenience; in production the variables are set
	// directly.
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg(".env file not loaded")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if lvl, err := zerolog.ParseLevel(cfg.Server.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create database pool")
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Services and handlers, dependencies injected by hand.
	tokenService := auth.NewTokenService(*cfg.Auth, auth.NewPGRevocationStore(pool))
	authService := auth.NewAuthService(auth.NewPGUserStore(pool), tokenService)
	authHandlers := auth.NewHandlers(authService)

	recipeStore := recipes.NewPGStore(pool)
	recipeHandlers := recipes.NewHandlers(recipes.NewRecipeService(recipeStore))

	userService := users.NewUserService(users.NewPGProfileStore(pool), recipeStore)
	userHandlers := users.NewUserHandlers(userService)

	// The one auth guard shared by every protected route.
	guard := auth.RequireAuth(tokenService)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		auth.WriteError(w, r, apperror.NewNotFoundError("not found", nil))
	})

	r.Get("/api/ping", func(w http.ResponseWriter, _ *http.Request) {
		auth.WriteJSON(w, http.StatusOK, auth.MessageResponse{Message: "Hello from RecipeShare API!"})
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", authHandlers.HandleSignup())
		r.Post("/login", authHandlers.HandleLogin())
		r.Post("/demo-login", authHandlers.HandleDemoLogin())

		r.Group(func(r chi.Router) {
			r.Use(guard)
			r.Get("/me", authHandlers.HandleMe())
			r.Post("/logout", authHandlers.HandleLogout())
		})
	})

	r.Route("/api/recipes", func(r chi.Router) {
		recipeHandlers.RegisterRoutes(r, guard)
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(guard)
		userHandlers.RegisterRoutes(r)
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped gracefully")
}
