package server

import (
	"fmt"
	"net/http"

	"gitlab.com/aungkhant/divvy/internal/models"
	"gitlab.com/aungkhant/divvy/internal/service"
)

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	user, token, err := s.auth.Register(r.Context(), req.Username, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: toUserView(user)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	user, token, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: toUserView(user)})
}

type profileResponse struct {
	User                 userView `json:"user"`
	Bio                  string   `json:"bio"`
	TelegramChatID       int64    `json:"telegram_chat_id"`
	TelegramNotification bool     `json:"telegram_notification"`
	EmailNotification    bool     `json:"email_notification"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := actingUser(r.Context())

	user, err := s.auth.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	profile, err := s.auth.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		User:                 toUserView(user),
		Bio:                  profile.Bio,
		TelegramChatID:       profile.TelegramChatID,
		TelegramNotification: profile.TelegramNotification,
		EmailNotification:    profile.EmailNotification,
	})
}

type updateProfileRequest struct {
	Bio                  string `json:"bio"`
	TelegramChatID       int64  `json:"telegram_chat_id"`
	TelegramNotification bool   `json:"telegram_notification"`
	EmailNotification    bool   `json:"email_notification"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := actingUser(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.TelegramNotification && req.TelegramChatID == 0 {
		writeError(w, fmt.Errorf("telegram chat id is required to enable notifications: %w", service.ErrInvalidInput))
		return
	}

	profile := &models.Profile{
		UserID:               userID,
		Bio:                  req.Bio,
		TelegramChatID:       req.TelegramChatID,
		TelegramNotification: req.TelegramNotification,
		EmailNotification:    req.EmailNotification,
	}
	if err := s.auth.UpdateProfile(r.Context(), profile); err != nil {
		writeError(w, err)
		return
	}

	user, err := s.auth.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{
		User:                 toUserView(user),
		Bio:                  profile.Bio,
		TelegramChatID:       profile.TelegramChatID,
		TelegramNotification: profile.TelegramNotification,
		EmailNotification:    profile.EmailNotification,
	})
}
