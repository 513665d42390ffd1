package template

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/lslops/checklist-management/internal/transport"
)

type ServiceAPI interface {
	GetAll() ([]*Template, error)
	GetByID(id int64) (*Template, error)
	Create(dto *CreateTemplateDTO) (*Template, error)
	Update(id int64, dto *UpdateTemplateDTO) (*Template, error)
	Deactivate(id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Service.GetAll()
	if err != nil {
		h.Logger.Error("GetTemplates: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get templates")
		return
	}
	h.WriteJSON(w, http.StatusOK, TemplatesResponse{Templates: templates})
}

func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid template ID")
		return
	}

	t, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var dto CreateTemplateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Create(&dto)
	if err != nil {
		if ve, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, ve.Error())
			return
		}
		h.Logger.Error("CreateTemplate: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid template ID")
		return
	}

	var dto UpdateTemplateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Update(id, &dto)
	if err != nil {
		if ve, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, ve.Error())
			return
		}
		h.Logger.Error("UpdateTemplate: service error", "error", err, "template_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) DeactivateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid template ID")
		return
	}

	if err := h.Service.Deactivate(id); err != nil {
		h.Logger.Error("DeactivateTemplate: service error", "error", err, "template_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
