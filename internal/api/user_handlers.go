package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"vidtube/internal/database"
	"vidtube/internal/models"
)

// @Summary      Get current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=models.User}
// @Failure      401  {object}  Response
// @Failure      500  {object}  Response
// @Router       /users/me [get]
func (s *Server) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	user, err := s.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil || user == nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve user")
		return
	}

	respondJSON(w, http.StatusOK, user, "current user fetched successfully")
}

type UpdateAccountRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// @Summary      Update account details
// @Description  Updates the full name and email of the current user. Both fields are required.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        updateAccountRequest  body      UpdateAccountRequest  true  "New account details"
// @Success      200  {object}  Response{data=models.User}
// @Failure      400  {object}  Response
// @Failure      401  {object}  Response
// @Failure      409  {object}  Response
// @Failure      500  {object}  Response
// @Router       /users/me [patch]
func (s *Server) UpdateAccountDetailsHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if fullName == "" || email == "" {
		respondError(w, http.StatusBadRequest, "all fields are required")
		return
	}

	user, err := s.store.UpdateAccountDetails(r.Context(), claims.UserID, fullName, email)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateUser) {
			respondError(w, http.StatusConflict, "email already in use")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to update account details")
		return
	}
	if user == nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve updated user")
		return
	}

	if err := s.store.LogEvent(r.Context(), user.ID, "account_updated", map[string]string{"email": email}); err != nil {
		log.Printf("WARN: Failed to log account update event for user %d: %v", user.ID, err)
	}

	respondJSON(w, http.StatusOK, user, "account details updated successfully")
}

// @Summary      Update avatar
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar  formData  file  true  "New avatar image"
// @Success      200  {object}  Response{data=models.User}
// @Failure      400  {object}  Response
// @Failure      401  {object}  Response
// @Failure      500  {object}  Response
// @Router       /users/me/avatar [patch]
func (s *Server) UpdateUserAvatarHandler(w http.ResponseWriter, r *http.Request) {
	s.updateUserImage(w, r, "avatar", "avatar_updated", s.store.UpdateUserAvatar)
}

// @Summary      Update cover image
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        coverImage  formData  file  true  "New cover image"
// @Success      200  {object}  Response{data=models.User}
// @Failure      400  {object}  Response
// @Failure      401  {object}  Response
// @Failure      500  {object}  Response
// @Router       /users/me/cover-image [patch]
func (s *Server) UpdateUserCoverImageHandler(w http.ResponseWriter, r *http.Request) {
	s.updateUserImage(w, r, "coverImage", "cover_image_updated", s.store.UpdateUserCoverImage)
}

func (s *Server) updateUserImage(
	w http.ResponseWriter,
	r *http.Request,
	field, eventType string,
	update func(ctx context.Context, userID int64, url string) (*models.User, error),
) {
	claims := GetUserFromContext(r.Context())

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	_, fileHeader, err := r.FormFile(field)
	if err != nil {
		respondError(w, http.StatusBadRequest, field+" file is missing")
		return
	}

	tmpPath, err := spoolUpload(fileHeader)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to process "+field+" file")
		return
	}

	url, err := s.uploader.Upload(r.Context(), tmpPath)
	if err != nil {
		respondError(w, http.StatusBadRequest, "error while uploading "+field)
		return
	}

	user, err := update(r.Context(), claims.UserID, url)
	if err != nil || user == nil {
		respondError(w, http.StatusInternalServerError, "failed to update "+field)
		return
	}

	if err := s.store.LogEvent(r.Context(), user.ID, eventType, map[string]string{"url": url}); err != nil {
		log.Printf("WARN: Failed to log %s event for user %d: %v", eventType, user.ID, err)
	}

	respondJSON(w, http.StatusOK, user, field+" updated successfully")
}
