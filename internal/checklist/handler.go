package checklist

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/lslops/checklist-management/internal/auth"
	"github.com/lslops/checklist-management/internal/transport"
)

type ServiceAPI interface {
	GetByID(id int64) (*Instance, error)
	GetAll(limit, offset int) ([]*Instance, error)
	GetPending() ([]*Instance, error)
	Create(dto *CreateChecklistDTO, createdBy int64) (*Instance, error)
	FillAnswers(id int64, dto *FillAnswersDTO) (*Instance, error)
	Sign(id int64, dto *SignDTO) (*SignResponse, error)
	Complete(ctx context.Context, id int64) (*Instance, error)
	Validate(ctx context.Context, id, validatorID int64, dto *ValidateDTO) (*Instance, error)
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

func (h *Handler) GetChecklists(w http.ResponseWriter, r *http.Request) {
	limit := 20
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	checklists, err := h.Service.GetAll(limit, offset)
	if err != nil {
		h.Logger.Error("GetChecklists: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get checklists")
		return
	}

	h.WriteJSON(w, http.StatusOK, ChecklistsResponse{
		Checklists: checklists,
		Limit:      limit,
		Offset:     offset,
	})
}

// GetPendingChecklists lists the instances waiting on a validator verdict.
func (h *Handler) GetPendingChecklists(w http.ResponseWriter, r *http.Request) {
	checklists, err := h.Service.GetPending()
	if err != nil {
		h.Logger.Error("GetPendingChecklists: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get pending checklists")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"checklists": checklists,
	})
}

func (h *Handler) GetChecklist(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid checklist ID")
		return
	}

	inst, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, inst)
}

func (h *Handler) CreateChecklist(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("CreateChecklist: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateChecklistDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inst, err := h.Service.Create(&dto, user.ID)
	if err != nil {
		if ve, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, ve.Error())
			return
		}
		h.Logger.Error("CreateChecklist: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateChecklist: checklist created",
		"checklist_id", inst.ID,
		"external_id", inst.ExternalID,
		"user_id", user.ID)
	h.WriteJSON(w, http.StatusCreated, inst)
}

func (h *Handler) FillAnswers(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid checklist ID")
		return
	}

	var dto FillAnswersDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inst, err := h.Service.FillAnswers(id, &dto)
	if err != nil {
		if ve, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, ve.Error())
			return
		}
		h.Logger.Error("FillAnswers: service error", "error", err, "checklist_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, inst)
}

func (h *Handler) SignChecklist(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid checklist ID")
		return
	}

	var dto SignDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Sign(id, &dto)
	if err != nil {
		if ve, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, ve.Error())
			return
		}
		h.Logger.Error("SignChecklist: service error", "error", err, "checklist_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) CompleteChecklist(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid checklist ID")
		return
	}

	inst, err := h.Service.Complete(r.Context(), id)
	if err != nil {
		h.Logger.Error("CompleteChecklist: service error", "error", err, "checklist_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CompleteChecklist: checklist completed",
		"checklist_id", inst.ID,
		"status", inst.Status)
	h.WriteJSON(w, http.StatusOK, inst)
}

func (h *Handler) ValidateChecklist(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("ValidateChecklist: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid checklist ID")
		return
	}

	var dto ValidateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inst, err := h.Service.Validate(r.Context(), id, user.ID, &dto)
	if err != nil {
		if ve, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, ve.Error())
			return
		}
		h.Logger.Error("ValidateChecklist: service error", "error", err, "checklist_id", id, "validator_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("ValidateChecklist: verdict recorded",
		"checklist_id", inst.ID,
		"validator_id", user.ID,
		"status", inst.Status)
	h.WriteJSON(w, http.StatusOK, inst)
}
