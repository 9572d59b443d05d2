package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"cocial-api/internal/domain"
	"cocial-api/internal/service"
	apperrors "cocial-api/pkg/errors"
	"cocial-api/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// MessageHandler handles CRUD over message resources
type MessageHandler struct {
	messages *service.MessageService
	log      *logger.Logger
}

func NewMessageHandler(messages *service.MessageService, log *logger.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, log: log}
}

// RegisterRoutes mounts the message routes on the given router
func (h *MessageHandler) RegisterRoutes(r chi.Router) {
	r.Route("/v1/message", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /v1/message
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messages.List(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// Get handles GET /v1/message/{id}
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.messageID(w, r)
	if !ok {
		return
	}

	m, err := h.messages.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Create handles POST /v1/message
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	m, err := h.messages.Create(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Update handles PUT /v1/message/{id}
func (h *MessageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.messageID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	m, err := h.messages.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Delete handles DELETE /v1/message/{id}
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.messageID(w, r)
	if !ok {
		return
	}

	if err := h.messages.Delete(r.Context(), id); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *MessageHandler) messageID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, h.log, apperrors.NewValidationError("Invalid message id", nil))
		return 0, false
	}
	return id, true
}

func (h *MessageHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (*domain.MessageRequest, bool) {
	var req domain.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, apperrors.NewValidationError("Invalid request body", nil))
		return nil, false
	}
	return &req, true
}
