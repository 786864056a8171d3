package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"edu-backoffice/internal/model"
	"edu-backoffice/internal/service"
	"edu-backoffice/pkg/apierror"
)

type BlogHandler struct {
	service *service.BlogService
}

func NewBlogHandler(service *service.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.PostListResponse{Success: true, Posts: posts})
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug, err := slugParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	post, err := h.service.Get(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.PostResponse{Success: true, Post: post})
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.CreatePostRequest
	if err := decodeJSON(r, &payload, "Missing required fields"); err != nil {
		writeError(w, err)
		return
	}

	slug, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.PostCreatedResponse{
		Success: true,
		Message: "Blog post created successfully",
		Slug:    slug,
	})
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	slug, err := slugParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdatePostRequest
	if err := decodeJSON(r, &payload, "Invalid update body"); err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Update(r.Context(), slug, payload); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Success: true, Message: "Blog post updated successfully"})
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slug, err := slugParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), slug); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Success: true, Message: "Blog post deleted successfully"})
}

// slugParam decodes the {slug} segment. chi matches on the escaped path, so
// "..%2Fsecret" arrives here still encoded.
func slugParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "slug")
	slug, err := url.PathUnescape(raw)
	if err != nil {
		return "", apierror.BadRequest("Invalid slug", raw)
	}
	return slug, nil
}
