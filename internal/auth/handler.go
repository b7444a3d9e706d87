package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"

	"github.com/pixelfeed/service/internal/response"
)

// Handler holds HTTP handlers for auth endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new auth Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type credentialsRequest struct {
	Email    string `json:"email"    example:"ada@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

type tokenData struct {
	Token string `json:"token" example:"eyJhbGci..."`
	ID    string `json:"id"    example:"e7eedc79-0707-4fe4-8734-526b7ef13a7b"`
	Email string `json:"email" example:"ada@example.com"`
}

// Register godoc
//
//	@Summary		Register
//	@Description	Create a new account with email and password. Returns a JWT token.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		credentialsRequest	true	"Email and password"
//	@Success		201		{object}	response.Envelope{data=tokenData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		409		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	token, u, err := h.svc.Register(r.Context(), req.Email, req.Password)
	if errors.Is(err, ErrEmailTaken) {
		response.Conflict(w, r, "email already registered")
		return
	}
	if err != nil {
		response.InternalError(w, r)
		return
	}

	response.Created(w, tokenData{Token: token, ID: u.ID, Email: u.Email})
}

// Login godoc
//
//	@Summary		Login
//	@Description	Verify email and password. Returns a JWT token.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		credentialsRequest	true	"Email and password"
//	@Success		200		{object}	response.Envelope{data=tokenData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	token, u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		response.Unauthorized(w, r, "invalid email or password")
		return
	}
	if err != nil {
		response.InternalError(w, r)
		return
	}

	response.OK(w, tokenData{Token: token, ID: u.ID, Email: u.Email})
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body")
		return req, false
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		response.BadRequest(w, r, "invalid email address")
		return req, false
	}
	if len(req.Password) < 8 {
		response.BadRequest(w, r, "password must be at least 8 characters")
		return req, false
	}
	return req, true
}
