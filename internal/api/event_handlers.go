package api

import (
	"net/http"
	"strconv"
)

// @Summary      Get account activity events
// @Description  Lists account events recorded after the given event ID. Used by clients to catch up after a disconnect.
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        since  query     int  false  "ID of the last event received. Omit or use 0 to get all events."
// @Success      200  {object}  Response{data=[]database.Event}
// @Failure      400  {object}  Response
// @Failure      401  {object}  Response
// @Failure      500  {object}  Response
// @Router       /users/events [get]
func (s *Server) GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	sinceStr := r.URL.Query().Get("since")
	if sinceStr == "" {
		sinceStr = "0"
	}

	sinceID, err := strconv.ParseInt(sinceStr, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid 'since' parameter, must be a number")
		return
	}

	events, err := s.store.GetEventsSince(r.Context(), claims.UserID, sinceID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve events")
		return
	}

	respondJSON(w, http.StatusOK, events, "events fetched successfully")
}
