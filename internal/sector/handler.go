package sector

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/lslops/checklist-management/internal/transport"
)

type ServiceAPI interface {
	GetAll() ([]*Sector, error)
	GetByID(id int64) (*Sector, error)
	Create(dto *CreateSectorDTO) (*Sector, error)
	Update(id int64, dto *UpdateSectorDTO) (*Sector, error)
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

func (h *Handler) GetSectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.Service.GetAll()
	if err != nil {
		h.Logger.Error("GetSectors: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get sectors")
		return
	}
	h.WriteJSON(w, http.StatusOK, SectorsResponse{Sectors: sectors})
}

func (h *Handler) GetSector(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid sector ID")
		return
	}

	sec, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, sec)
}

func (h *Handler) CreateSector(w http.ResponseWriter, r *http.Request) {
	var dto CreateSectorDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sec, err := h.Service.Create(&dto)
	if err != nil {
		if ve, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, ve.Error())
			return
		}
		h.Logger.Error("CreateSector: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, sec)
}

func (h *Handler) UpdateSector(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid sector ID")
		return
	}

	var dto UpdateSectorDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sec, err := h.Service.Update(id, &dto)
	if err != nil {
		if ve, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, ve.Error())
			return
		}
		h.Logger.Error("UpdateSector: service error", "error", err, "sector_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sec)
}

func (h *Handler) DeactivateSector(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid sector ID")
		return
	}

	if err := h.Service.Deactivate(id); err != nil {
		h.Logger.Error("DeactivateSector: service error", "error", err, "sector_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
