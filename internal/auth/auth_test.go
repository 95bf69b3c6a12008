package auth

import (
	"testing"
	"time"

	"vidtube/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	password := "mySecretPassword123"
	hash, err := HashPassword(password)

	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, password, hash)
}

func TestCheckPasswordHash(t *testing.T) {
	password := "mySecretPassword123"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	match := CheckPasswordHash(password, hash)
	require.True(t, match, "Password should match the hash")

	wrongPassword := "wrongPassword"
	match = CheckPasswordHash(wrongPassword, hash)
	require.False(t, match, "Wrong password should not match the hash")
}

func TestCheckPasswordHashFailsClosed(t *testing.T) {
	require.False(t, CheckPasswordHash("anything", ""))
	require.False(t, CheckPasswordHash("anything", "not-a-bcrypt-hash"))
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	secret := "my_super_secret_key_for_testing"
	user := &models.User{
		ID:       123,
		Username: "testuser",
		Email:    "testuser@example.com",
		FullName: "Test User",
	}

	tokenString, err := GenerateJWT(user, secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := VerifyJWT(tokenString, secret)
	require.NoError(t, err)
	require.NotNil(t, claims)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, user.Username, claims.Username)
	require.Equal(t, user.Email, claims.Email)
	require.Equal(t, user.FullName, claims.FullName)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)

	_, err = VerifyJWT(tokenString, "wrong_secret")
	require.Error(t, err)
	require.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}

func TestVerifyJWTExpired(t *testing.T) {
	secret := "my_super_secret_key_for_testing"
	user := &models.User{ID: 123, Username: "testuser"}

	tokenString, err := GenerateJWT(user, secret, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyJWT(tokenString, secret)
	require.Error(t, err)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestAccessAndRefreshSecretsAreIndependent(t *testing.T) {
	user := &models.User{ID: 7, Username: "rotator"}

	accessToken, err := GenerateJWT(user, "access_secret", 15*time.Minute)
	require.NoError(t, err)
	refreshToken, err := GenerateJWT(user, "refresh_secret", 240*time.Hour)
	require.NoError(t, err)

	_, err = VerifyJWT(accessToken, "refresh_secret")
	require.ErrorIs(t, err, jwt.ErrSignatureInvalid)

	claims, err := VerifyJWT(refreshToken, "refresh_secret")
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
}
