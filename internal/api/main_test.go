package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http/httptest"
	"os"
	"testing"

	"vidtube/internal/auth"
	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/models"
	"vidtube/internal/upload"
	"vidtube/internal/websocket"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testServer *Server
var testUser *models.User
var testUserToken string
var testUserClaims *auth.AppClaims

const testUserPassword = "password"

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:14-alpine",
		postgres.WithDatabase("test_api_db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		log.Fatalf("Could not start postgres: %s", err)
	}
	defer pgContainer.Terminate(ctx)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("Could not get connection string: %s", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}

	schema, err := os.ReadFile("../../db/init.sql")
	if err != nil {
		log.Fatalf("Could not read schema file: %s", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		log.Fatalf("Could not apply schema: %s", err)
	}

	tempDir, err := os.MkdirTemp("", "api-media-test")
	if err != nil {
		log.Fatalf("Could not create temp dir: %s", err)
	}
	defer os.RemoveAll(tempDir)

	uploader, err := upload.NewLocalUploader(tempDir, "http://localhost:8080")
	if err != nil {
		log.Fatalf("Could not create local uploader: %s", err)
	}

	wsHub := websocket.NewHub()
	go wsHub.Run()

	store := database.NewStore(pool, wsHub)
	cfg := &config.Config{JWT: config.JWTConfig{
		AccessSecret:     "api_test_access_secret",
		RefreshSecret:    "api_test_refresh_secret",
		AccessTTLMinutes: 15,
		RefreshTTLHours:  240,
	}}
	testServer = NewServer(cfg, store, uploader, wsHub)

	hashedPassword, _ := auth.HashPassword(testUserPassword)
	testUser, err = store.CreateUser(ctx, database.CreateUserParams{
		Username:     "api_test_user",
		Email:        "api_test_user@example.com",
		FullName:     "API Test User",
		PasswordHash: hashedPassword,
		AvatarURL:    "http://localhost:8080/media/api_test_user.png",
	})
	if err != nil {
		log.Fatalf("Could not create test user: %s", err)
	}

	testUserToken, err = auth.GenerateJWT(testUser, cfg.JWT.AccessSecret, cfg.JWT.AccessTTL())
	if err != nil {
		log.Fatalf("Could not generate token: %s", err)
	}

	testUserClaims, err = auth.VerifyJWT(testUserToken, cfg.JWT.AccessSecret)
	if err != nil {
		log.Fatalf("Could not verify token: %s", err)
	}

	os.Exit(m.Run())
}

// newAPIUser creates an isolated user plus claims for tests that mutate state.
func newAPIUser(t *testing.T, name string) (*models.User, *auth.AppClaims) {
	t.Helper()

	hashedPassword, err := auth.HashPassword(testUserPassword)
	require.NoError(t, err)

	user, err := testServer.store.CreateUser(context.Background(), database.CreateUserParams{
		Username:     name,
		Email:        name + "@example.com",
		FullName:     "Test " + name,
		PasswordHash: hashedPassword,
		AvatarURL:    "http://localhost:8080/media/" + name + ".png",
	})
	require.NoError(t, err)

	return user, &auth.AppClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
	}
}

func withClaims(ctx context.Context, claims *auth.AppClaims) context.Context {
	return context.WithValue(ctx, userContextKey, claims)
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, rr.Code, env.StatusCode)
	return env
}
