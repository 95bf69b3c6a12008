package api

import (
	"log"
	"net/http"

	"vidtube/internal/auth"
	"vidtube/internal/websocket"
)

// ServeWsHandler streams the caller's account-activity events. The access
// token comes in as a query parameter since browsers cannot set headers on
// websocket upgrades. Failures before the upgrade still speak the JSON
// envelope; after the upgrade the connection belongs to the pumps.
func (s *Server) ServeWsHandler(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		respondError(w, http.StatusUnauthorized, "missing access token")
		return
	}

	claims, err := auth.VerifyJWT(tokenString, s.config.JWT.AccessSecret)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid or expired access token")
		return
	}

	conn, err := websocket.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade writes its own HTTP error before returning.
		log.Printf("WS upgrade failed for user %d: %v", claims.UserID, err)
		return
	}

	client := websocket.NewClient(s.wsHub, conn, claims.UserID)
	s.wsHub.Register <- client

	go client.ReadPump()
	go client.WritePump()
}
