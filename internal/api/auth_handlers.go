package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"vidtube/internal/auth"
	"vidtube/internal/database"
	"vidtube/internal/models"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

type LoginRequest struct {
	Username string `json:"username" example:"ada"`
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"password123"`
}

type LoginResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func setTokenCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
	})
}

func clearTokenCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
	})
}

// issueTokenPair signs a fresh access/refresh pair for the user. Persisting
// the refresh token is left to the caller, which knows whether this is a
// plain overwrite (login) or a compare-and-swap rotation (refresh).
func (s *Server) issueTokenPair(user *models.User) (accessToken, refreshToken string, err error) {
	accessToken, err = auth.GenerateJWT(user, s.config.JWT.AccessSecret, s.config.JWT.AccessTTL())
	if err != nil {
		return "", "", err
	}
	refreshToken, err = auth.GenerateJWT(user, s.config.JWT.RefreshSecret, s.config.JWT.RefreshTTL())
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// @Summary      Register a new user
// @Description  Creates an account from a multipart form. The avatar file is required, the cover image is optional.
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Param        fullName    formData  string  true   "Full name"
// @Param        email       formData  string  true   "Email address"
// @Param        username    formData  string  true   "Username"
// @Param        password    formData  string  true   "Password"
// @Param        avatar      formData  file    true   "Avatar image"
// @Param        coverImage  formData  file    false  "Cover image"
// @Success      201  {object}  Response{data=models.User}
// @Failure      400  {object}  Response
// @Failure      409  {object}  Response
// @Failure      500  {object}  Response
// @Router       /users/register [post]
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	fullName := strings.TrimSpace(r.FormValue("fullName"))
	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	username := strings.ToLower(strings.TrimSpace(r.FormValue("username")))
	password := r.FormValue("password")

	if fullName == "" || email == "" || username == "" || strings.TrimSpace(password) == "" {
		respondError(w, http.StatusBadRequest, "all fields are required")
		return
	}

	existing, err := s.store.GetUserByUsernameOrEmail(r.Context(), username, email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to check for existing user")
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "user with the username or email already exists")
		return
	}

	_, avatarHeader, err := r.FormFile("avatar")
	if err != nil {
		respondError(w, http.StatusBadRequest, "avatar file is required")
		return
	}

	avatarPath, err := spoolUpload(avatarHeader)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to process avatar file")
		return
	}
	avatarURL, err := s.uploader.Upload(r.Context(), avatarPath)
	if err != nil {
		respondError(w, http.StatusBadRequest, "avatar upload failed")
		return
	}

	var coverImageURL *string
	if _, coverHeader, err := r.FormFile("coverImage"); err == nil {
		coverPath, err := spoolUpload(coverHeader)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to process cover image file")
			return
		}
		url, err := s.uploader.Upload(r.Context(), coverPath)
		if err != nil {
			respondError(w, http.StatusBadRequest, "cover image upload failed")
			return
		}
		coverImageURL = &url
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user, err := s.store.CreateUser(r.Context(), database.CreateUserParams{
		Username:      username,
		Email:         email,
		FullName:      fullName,
		PasswordHash:  passwordHash,
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicateUser) {
			respondError(w, http.StatusConflict, "user with the username or email already exists")
			return
		}
		log.Printf("ERROR: Failed to create user %q: %v", username, err)
		respondError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	createdUser, err := s.store.GetUserByID(r.Context(), user.ID)
	if err != nil || createdUser == nil {
		respondError(w, http.StatusInternalServerError, "something went wrong while registering the user")
		return
	}

	if err := s.store.LogEvent(r.Context(), createdUser.ID, "user_registered", map[string]string{"username": username}); err != nil {
		log.Printf("WARN: Failed to log registration event for user %d: %v", createdUser.ID, err)
	}

	respondJSON(w, http.StatusCreated, createdUser, "user registered successfully")
}

// @Summary      Log a user in
// @Description  Authenticates by username or email and returns the user with an access/refresh token pair. Tokens are also set as httpOnly cookies.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest  body      LoginRequest  true  "Login credentials"
// @Success      200  {object}  Response{data=LoginResponse}
// @Failure      400  {object}  Response
// @Failure      401  {object}  Response
// @Failure      404  {object}  Response
// @Failure      500  {object}  Response
// @Router       /users/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" && email == "" {
		respondError(w, http.StatusBadRequest, "username or email required")
		return
	}

	user, err := s.store.GetUserByUsernameOrEmail(r.Context(), username, email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "user does not exist")
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "invalid user credentials")
		return
	}

	accessToken, refreshToken, err := s.issueTokenPair(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate tokens")
		return
	}

	// Token slot and journal entry commit together.
	if err := s.store.RecordLogin(r.Context(), user.ID, refreshToken, map[string]string{"client_ip": r.RemoteAddr}); err != nil {
		log.Printf("ERROR: Failed to persist login session for user %d: %v", user.ID, err)
		respondError(w, http.StatusInternalServerError, "failed to process login session")
		return
	}

	setTokenCookie(w, accessTokenCookie, accessToken, s.config.JWT.AccessTTL())
	setTokenCookie(w, refreshTokenCookie, refreshToken, s.config.JWT.RefreshTTL())

	respondJSON(w, http.StatusOK, LoginResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, "user logged in successfully")
}

// @Summary      Log the current user out
// @Description  Clears the stored refresh token and both session cookies. Logging out twice is not an error.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response
// @Failure      401  {object}  Response
// @Failure      500  {object}  Response
// @Router       /users/logout [post]
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	if err := s.store.ClearRefreshToken(r.Context(), claims.UserID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to log out")
		return
	}

	if err := s.store.LogEvent(r.Context(), claims.UserID, "user_logged_out", nil); err != nil {
		log.Printf("WARN: Failed to log logout event for user %d: %v", claims.UserID, err)
	}

	clearTokenCookie(w, accessTokenCookie)
	clearTokenCookie(w, refreshTokenCookie)

	respondJSON(w, http.StatusOK, nil, "user logged out")
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// @Summary      Refresh the token pair
// @Description  Exchanges a valid refresh token (cookie or body) for a new access/refresh pair. The stored token rotates; reusing an old one fails.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        refreshTokenRequest  body      RefreshTokenRequest  false  "Refresh token, if not sent as a cookie"
// @Success      200  {object}  Response{data=TokenResponse}
// @Failure      401  {object}  Response
// @Failure      500  {object}  Response
// @Router       /users/refresh-token [post]
func (s *Server) RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	incomingToken := ""
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
		incomingToken = cookie.Value
	}
	if incomingToken == "" {
		var req RefreshTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			incomingToken = req.RefreshToken
		}
	}
	if incomingToken == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized request")
		return
	}

	claims, err := auth.VerifyJWT(incomingToken, s.config.JWT.RefreshSecret)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid or expired refresh token: "+err.Error())
		return
	}

	user, err := s.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	newAccessToken, newRefreshToken, err := s.issueTokenPair(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate tokens")
		return
	}

	// Single-slot rotation: only the currently stored token may be exchanged.
	rotated, err := s.store.RotateSession(r.Context(), user.ID, incomingToken, newRefreshToken)
	if err != nil {
		log.Printf("ERROR: Refresh token rotation failed for user %d: %v", user.ID, err)
		respondError(w, http.StatusInternalServerError, "failed to refresh token")
		return
	}
	if !rotated {
		respondError(w, http.StatusUnauthorized, "refresh token is expired or used")
		return
	}

	setTokenCookie(w, accessTokenCookie, newAccessToken, s.config.JWT.AccessTTL())
	setTokenCookie(w, refreshTokenCookie, newRefreshToken, s.config.JWT.RefreshTTL())

	respondJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	}, "access token refreshed")
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// @Summary      Change the current user's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        changePasswordRequest  body      ChangePasswordRequest  true  "Old and new password"
// @Success      200  {object}  Response
// @Failure      400  {object}  Response
// @Failure      401  {object}  Response
// @Failure      500  {object}  Response
// @Router       /users/change-password [post]
func (s *Server) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.NewPassword) == "" {
		respondError(w, http.StatusBadRequest, "new password is required")
		return
	}

	user, err := s.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil || user == nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve user")
		return
	}

	if !auth.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		respondError(w, http.StatusBadRequest, "invalid old password")
		return
	}

	// Explicit rehash on change; untouched saves elsewhere never rehash.
	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	if err := s.store.UpdateUserPassword(r.Context(), user.ID, newHash); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update password")
		return
	}

	if err := s.store.LogEvent(r.Context(), user.ID, "password_changed", nil); err != nil {
		log.Printf("WARN: Failed to log password change event for user %d: %v", user.ID, err)
	}

	respondJSON(w, http.StatusOK, nil, "password changed successfully")
}
