// @title           VidTube Account API
// @version         1.0
// @host            localhost
// @schemes         http https
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"net/http"

	"vidtube/internal/api"
	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/upload"
	"vidtube/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "vidtube/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dbpool, err := pgxpool.New(context.Background(), cfg.DB.Source)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(context.Background()); err != nil {
		log.Fatalf("Failed to ping the database: %v", err)
	}
	log.Println("Connected to the database")

	uploader, err := upload.NewLocalUploader(cfg.Storage.Path, cfg.Storage.PublicBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}
	log.Printf("Media will be hosted from: %s", cfg.Storage.Path)

	wsHub := websocket.NewHub()
	go wsHub.Run()

	store := database.NewStore(dbpool, wsHub)
	server := api.NewServer(cfg, store, uploader, wsHub)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(api.MetricsMiddleware)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("https://localhost/swagger/doc.json"),
	))

	r.Get("/ws", server.ServeWsHandler)

	r.Get("/health", server.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	fileServer := http.FileServer(http.Dir(uploader.Dir()))
	r.Handle("/media/*", http.StripPrefix("/media/", fileServer))

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Post("/register", server.RegisterHandler)
		r.Post("/login", server.LoginHandler)
		r.Post("/refresh-token", server.RefreshTokenHandler)

		r.Group(func(r chi.Router) {
			r.Use(server.AuthMiddleware)
			r.Post("/logout", server.LogoutHandler)
			r.Post("/change-password", server.ChangePasswordHandler)
			r.Get("/me", server.GetCurrentUserHandler)
			r.Patch("/me", server.UpdateAccountDetailsHandler)
			r.Patch("/me/avatar", server.UpdateUserAvatarHandler)
			r.Patch("/me/cover-image", server.UpdateUserCoverImageHandler)
			r.Get("/c/{username}", server.GetChannelProfileHandler)
			r.Get("/history", server.GetWatchHistoryHandler)
			r.Post("/history/{videoId}", server.RecordWatchHandler)
			r.Get("/events", server.GetEventsHandler)
		})
	})

	log.Printf("Starting server on %s", cfg.AppHost)
	if err := http.ListenAndServe(cfg.AppHost, r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
