package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vidtube/internal/auth"
	"vidtube/internal/database"
	"vidtube/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func channelProfileRequest(t *testing.T, claims *auth.AppClaims, username string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/v1/users/c/"+username, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("username", username)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	req = req.WithContext(withClaims(req.Context(), claims))

	rr := httptest.NewRecorder()
	http.HandlerFunc(testServer.GetChannelProfileHandler).ServeHTTP(rr, req)
	return rr
}

func TestAPI_ChannelProfile(t *testing.T) {
	channel, _ := newAPIUser(t, "api_channel")
	_, viewerClaims := newAPIUser(t, "api_channel_viewer")
	_, strangerClaims := newAPIUser(t, "api_channel_stranger")

	_, err := testServer.store.CreateSubscription(context.Background(), viewerClaims.UserID, channel.ID)
	require.NoError(t, err)

	rr := channelProfileRequest(t, viewerClaims, channel.Username)
	require.Equal(t, http.StatusOK, rr.Code)

	var profile models.ChannelProfile
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &profile))
	require.Equal(t, channel.Username, profile.Username)
	require.Equal(t, int64(1), profile.SubscribersCount)
	require.True(t, profile.IsSubscribed)

	rr = channelProfileRequest(t, strangerClaims, channel.Username)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &profile))
	require.False(t, profile.IsSubscribed)

	// Lookup is case-insensitive on the channel name.
	rr = channelProfileRequest(t, viewerClaims, "API_CHANNEL")
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestAPI_ChannelProfile_NotFound(t *testing.T) {
	_, claims := newAPIUser(t, "api_profile_seeker")

	rr := channelProfileRequest(t, claims, "no_such_channel")
	require.Equal(t, http.StatusNotFound, rr.Code)
	env := decodeEnvelope(t, rr)
	require.False(t, env.Success)
	require.Equal(t, "channel does not exist", env.Message)
}

func TestAPI_WatchHistory(t *testing.T) {
	viewer, viewerClaims := newAPIUser(t, "api_history_viewer")
	owner, _ := newAPIUser(t, "api_history_owner")

	video1, err := testServer.store.CreateVideo(context.Background(), database.CreateVideoParams{
		OwnerID:  owner.ID,
		Title:    "Watched First",
		VideoURL: "http://localhost:8080/media/v1.mp4",
	})
	require.NoError(t, err)
	video2, err := testServer.store.CreateVideo(context.Background(), database.CreateVideoParams{
		OwnerID:  owner.ID,
		Title:    "Watched Second",
		VideoURL: "http://localhost:8080/media/v2.mp4",
	})
	require.NoError(t, err)

	_, err = testServer.store.GetPool().Exec(context.Background(),
		`INSERT INTO watch_history (user_id, video_id, watched_at) VALUES ($1, $2, $3)`,
		viewer.ID, video1.ID, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = testServer.store.GetPool().Exec(context.Background(),
		`INSERT INTO watch_history (user_id, video_id, watched_at) VALUES ($1, $2, $3)`,
		viewer.ID, video2.ID, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/v1/users/history", nil)
	req = req.WithContext(withClaims(req.Context(), viewerClaims))
	rr := httptest.NewRecorder()
	http.HandlerFunc(testServer.GetWatchHistoryHandler).ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var history []models.WatchedVideo
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &history))
	require.Len(t, history, 2)
	require.Equal(t, video2.ID, history[0].ID)
	require.Equal(t, video1.ID, history[1].ID)
	require.Equal(t, owner.Username, history[0].Owner.Username)
	require.Equal(t, owner.AvatarURL, history[0].Owner.AvatarURL)
}

func TestAPI_RecordWatch(t *testing.T) {
	_, viewerClaims := newAPIUser(t, "api_record_viewer")
	owner, _ := newAPIUser(t, "api_record_owner")

	video, err := testServer.store.CreateVideo(context.Background(), database.CreateVideoParams{
		OwnerID:  owner.ID,
		Title:    "Recordable",
		VideoURL: "http://localhost:8080/media/r.mp4",
	})
	require.NoError(t, err)

	recordWatch := func(videoID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/v1/users/history/"+videoID, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("videoId", videoID)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		req = req.WithContext(withClaims(req.Context(), viewerClaims))
		rr := httptest.NewRecorder()
		http.HandlerFunc(testServer.RecordWatchHandler).ServeHTTP(rr, req)
		return rr
	}

	rr := recordWatch(video.ID)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = recordWatch("missing_video_000000")
	require.Equal(t, http.StatusNotFound, rr.Code)
}
