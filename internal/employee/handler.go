package employee

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/lslops/checklist-management/internal/auth"
	"github.com/lslops/checklist-management/internal/transport"
)

type ServiceAPI interface {
	GetAll() ([]*Employee, error)
	GetByID(id int64) (*Employee, error)
	Create(dto *CreateEmployeeDTO, createdBy int64) (*Employee, error)
	Update(id int64, dto *UpdateEmployeeDTO) (*Employee, error)
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

func (h *Handler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.GetAll()
	if err != nil {
		h.Logger.Error("GetEmployees: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get employees")
		return
	}
	h.WriteJSON(w, http.StatusOK, EmployeesResponse{Employees: employees})
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	e, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.Create(&dto, user.ID)
	if err != nil {
		if ve, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, ve.Error())
			return
		}
		h.Logger.Error("CreateEmployee: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	var dto UpdateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.Update(id, &dto)
	if err != nil {
		if ve, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, ve.Error())
			return
		}
		h.Logger.Error("UpdateEmployee: service error", "error", err, "employee_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, e)
}
