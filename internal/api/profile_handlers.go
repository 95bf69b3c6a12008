package api

import (
	"errors"
	"net/http"
	"strings"

	"vidtube/internal/database"

	"github.com/go-chi/chi/v5"
)

// @Summary      Get a channel profile
// @Description  Public aggregate view of a user's channel: subscriber counts and whether the caller already subscribes.
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Channel username"
// @Success      200  {object}  Response{data=models.ChannelProfile}
// @Failure      400  {object}  Response
// @Failure      401  {object}  Response
// @Failure      404  {object}  Response
// @Failure      500  {object}  Response
// @Router       /users/c/{username} [get]
func (s *Server) GetChannelProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	username := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "username")))
	if username == "" {
		respondError(w, http.StatusBadRequest, "username is required")
		return
	}

	profile, err := s.store.GetChannelProfile(r.Context(), username, claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch channel profile")
		return
	}
	if profile == nil {
		respondError(w, http.StatusNotFound, "channel does not exist")
		return
	}

	respondJSON(w, http.StatusOK, profile, "channel profile fetched successfully")
}

// @Summary      Get watch history
// @Description  The caller's watch history, most recent first, each video enriched with a reduced owner projection.
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=[]models.WatchedVideo}
// @Failure      401  {object}  Response
// @Failure      500  {object}  Response
// @Router       /users/history [get]
func (s *Server) GetWatchHistoryHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	history, err := s.store.GetWatchHistory(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch watch history")
		return
	}

	respondJSON(w, http.StatusOK, history, "watch history fetched successfully")
}

// @Summary      Record a watched video
// @Description  Adds the video to the caller's watch history. Re-watching moves it to the top.
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        videoId  path      string  true  "Video ID"
// @Success      200  {object}  Response
// @Failure      401  {object}  Response
// @Failure      404  {object}  Response
// @Failure      500  {object}  Response
// @Router       /users/history/{videoId} [post]
func (s *Server) RecordWatchHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	videoID := chi.URLParam(r, "videoId")

	err := s.store.AddToWatchHistory(r.Context(), claims.UserID, videoID)
	if err != nil {
		if errors.Is(err, database.ErrVideoNotFound) {
			respondError(w, http.StatusNotFound, "video does not exist")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to record watch")
		return
	}

	respondJSON(w, http.StatusOK, nil, "watch recorded")
}
