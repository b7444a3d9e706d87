package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"

	"github.com/pixelfeed/service/internal/middleware"
	"github.com/pixelfeed/service/internal/response"
)

// Handler holds HTTP handlers for user profile endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new user Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type updateEmailRequest struct {
	Email string `json:"email" example:"ada@example.com"`
}

// GetMe godoc
//
//	@Summary		Get current user
//	@Description	Returns the profile of the currently authenticated user.
//	@Tags			users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	response.Envelope{data=User}
//	@Failure		401	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/users/me [get]
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		response.Unauthorized(w, r, "unauthorized")
		return
	}

	u, err := h.svc.GetByID(r.Context(), userID)
	if err != nil {
		if h.svc.IsNotFound(err) {
			response.NotFound(w, r, "user not found")
			return
		}
		response.InternalError(w, r)
		return
	}

	response.OK(w, u)
}

// UpdateEmail godoc
//
//	@Summary		Update email
//	@Description	Changes the authenticated user's email address. The current token keeps its old email claim; log in again to refresh it.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		updateEmailRequest	true	"New email"
//	@Success		200		{object}	response.Envelope{data=User}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		404		{object}	response.Envelope
//	@Failure		409		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/users/me [patch]
func (h *Handler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		response.Unauthorized(w, r, "unauthorized")
		return
	}

	var req updateEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		response.BadRequest(w, r, "invalid email address")
		return
	}

	// Same address the token was issued for: nothing to write.
	if tokenEmail, _ := r.Context().Value(middleware.UserEmailKey).(string); tokenEmail == req.Email {
		u, err := h.svc.GetByID(r.Context(), userID)
		if err != nil {
			if h.svc.IsNotFound(err) {
				response.NotFound(w, r, "user not found")
				return
			}
			response.InternalError(w, r)
			return
		}
		response.OK(w, u)
		return
	}

	u, err := h.svc.UpdateEmail(r.Context(), userID, req.Email)
	switch {
	case errors.Is(err, ErrAlreadyExists):
		response.Conflict(w, r, "email already registered")
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, r, "user not found")
	case err != nil:
		response.InternalError(w, r)
	default:
		response.OK(w, u)
	}
}
