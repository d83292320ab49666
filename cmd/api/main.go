package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/recipeshare/recipeshare-go/internal/config"
	"github.com/recipeshare/recipeshare-go/internal/handler"
	"github.com/recipeshare/recipeshare-go/internal/middleware"
	"github.com/recipeshare/recipeshare-go/internal/repository"
	"github.com/recipeshare/recipeshare-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repository.ApplySchema(ctx, db); err != nil {
		cancel()
		slog.Error("schema setup failed", "error", err)
		os.Exit(1)
	}
	cancel()

	userRepo := repository.NewUserRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	recipeService := service.NewRecipeService(recipeRepo, commentRepo)
	commentService := service.NewCommentService(commentRepo, recipeRepo)
	userService := service.NewUserService(userRepo, recipeRepo, commentRepo)
	uploadService := service.NewUploadService(cfg.UploadsDir)

	authHandler := handler.NewAuthHandler(authService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	commentHandler := handler.NewCommentHandler(commentService)
	userHandler := handler.NewUserHandler(userService)
	uploadHandler := handler.NewUploadHandler(uploadService, cfg.MaxUploadBytes)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/search", recipeHandler.HandleSearch)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/register", authHandler.HandleRegister)
		r.Post("/api/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Get("/api/profile", authHandler.HandleProfile)

		r.Get("/api/recipes", recipeHandler.HandleList)
		r.Post("/api/recipes", recipeHandler.HandleCreate)
		r.Get("/api/recipes/{id}", recipeHandler.HandleGet)
		r.Put("/api/recipes/{id}", recipeHandler.HandleUpdate)
		r.Delete("/api/recipes/{id}", recipeHandler.HandleDelete)

		r.Post("/api/comments/{recipeID}", commentHandler.HandleCreate)
		r.Delete("/api/comments/{commentID}", commentHandler.HandleDelete)

		r.Get("/api/users", userHandler.HandleList)
		r.Get("/api/users/{id}", userHandler.HandleGet)
		r.Put("/api/users/{id}", userHandler.HandleUpdate)
		r.Delete("/api/users/{id}", userHandler.HandleDelete)

		r.Post("/api/upload", uploadHandler.HandleUpload)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
