package equipment

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/lslops/checklist-management/internal/transport"
)

type ServiceAPI interface {
	GetAll() ([]*Equipment, error)
	GetByID(id int64) (*Equipment, error)
	GetByQRIdentifier(qr string) (*Equipment, error)
	Create(dto *CreateEquipmentDTO) (*Equipment, error)
	Update(id int64, dto *UpdateEquipmentDTO) (*Equipment, error)
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

func (h *Handler) GetEquipments(w http.ResponseWriter, r *http.Request) {
	equipments, err := h.Service.GetAll()
	if err != nil {
		h.Logger.Error("GetEquipments: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get equipments")
		return
	}
	h.WriteJSON(w, http.StatusOK, EquipmentsResponse{Equipments: equipments})
}

func (h *Handler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid equipment ID")
		return
	}

	eq, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, eq)
}

// GetEquipmentByQR resolves a QR code scan to the unit it identifies.
func (h *Handler) GetEquipmentByQR(w http.ResponseWriter, r *http.Request) {
	qr := chi.URLParam(r, "qr")
	if qr == "" {
		h.WriteError(w, http.StatusBadRequest, "missing QR identifier")
		return
	}

	eq, err := h.Service.GetByQRIdentifier(qr)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, eq)
}

func (h *Handler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	var dto CreateEquipmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	eq, err := h.Service.Create(&dto)
	if err != nil {
		if ve, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, ve.Error())
			return
		}
		h.Logger.Error("CreateEquipment: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, eq)
}

func (h *Handler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid equipment ID")
		return
	}

	var dto UpdateEquipmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	eq, err := h.Service.Update(id, &dto)
	if err != nil {
		if ve, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, ve.Error())
			return
		}
		h.Logger.Error("UpdateEquipment: service error", "error", err, "equipment_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, eq)
}

func (h *Handler) DeactivateEquipment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid equipment ID")
		return
	}

	if err := h.Service.Deactivate(id); err != nil {
		h.Logger.Error("DeactivateEquipment: service error", "error", err, "equipment_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
