package api

import (
	"net/http"

	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/upload"
	"vidtube/internal/websocket"
)

type Server struct {
	config   *config.Config
	store    *database.PostgresStore
	uploader upload.Uploader
	wsHub    *websocket.Hub
}

func NewServer(cfg *config.Config, store *database.PostgresStore, uploader upload.Uploader, wsHub *websocket.Hub) *Server {
	return &Server{
		config:   cfg,
		store:    store,
		uploader: uploader,
		wsHub:    wsHub,
	}
}

// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  Response
// @Failure      503  {object}  Response
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"}, "service healthy")
}
