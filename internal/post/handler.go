package post

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pixelfeed/service/internal/middleware"
	"github.com/pixelfeed/service/internal/response"
)

// Handler holds HTTP handlers for post endpoints.
type Handler struct {
	svc            *Service
	maxUploadBytes int64
}

// NewHandler creates a new post Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{svc: svc, maxUploadBytes: maxUploadBytes}
}

type feedData struct {
	Posts []View `json:"posts"`
}

type deleteData struct {
	Deleted bool `json:"deleted" example:"true"`
}

// Upload godoc
//
//	@Summary		Upload a post
//	@Description	Upload an image or video with an optional caption. The file is staged locally, stored remotely, and recorded as a post owned by the caller.
//	@Tags			posts
//	@Accept			mpfd
//	@Produce		json
//	@Security		BearerAuth
//	@Param			file	formData	file	true	"Media file"
//	@Param			caption	formData	string	false	"Caption"
//	@Success		200		{object}	response.Envelope{data=Post}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		response.Unauthorized(w, r, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, r, "file field is required")
		return
	}
	defer file.Close()

	caption := r.FormValue("caption")
	contentType := header.Header.Get("Content-Type")

	p, err := h.svc.Upload(r.Context(), userID, file, header.Filename, contentType, caption)
	if err != nil {
		response.InternalError(w, r)
		return
	}

	response.OK(w, p)
}

// Feed godoc
//
//	@Summary		Get the feed
//	@Description	Returns all posts, newest first, each annotated with the uploader's email and an ownership flag for the caller.
//	@Tags			posts
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	response.Envelope{data=feedData}
//	@Failure		401	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/fyp [get]
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		response.Unauthorized(w, r, "unauthorized")
		return
	}

	views, err := h.svc.Feed(r.Context(), userID)
	if err != nil {
		response.InternalError(w, r)
		return
	}

	response.OK(w, feedData{Posts: views})
}

// Delete godoc
//
//	@Summary		Delete a post
//	@Description	Deletes a post. Only the owner may delete it.
//	@Tags			posts
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Post ID"
//	@Success		200	{object}	response.Envelope{data=deleteData}
//	@Failure		401	{object}	response.Envelope
//	@Failure		403	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/posts/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		response.Unauthorized(w, r, "unauthorized")
		return
	}

	postID := chi.URLParam(r, "id")

	err := h.svc.Delete(r.Context(), userID, postID)
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, r, "post not found")
	case errors.Is(err, ErrForbidden):
		response.Forbidden(w, r, "only the owner may delete a post")
	case err != nil:
		response.InternalError(w, r)
	default:
		response.OK(w, deleteData{Deleted: true})
	}
}
