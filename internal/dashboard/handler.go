package dashboard

import (
	"context"
	"net/http"

	"github.com/lslops/checklist-management/internal/transport"
)

type ServiceAPI interface {
	GetSummary(ctx context.Context) (*Summary, error)
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

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.GetSummary(r.Context())
	if err != nil {
		h.Logger.Error("GetSummary: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to build dashboard summary")
		return
	}
	h.WriteJSON(w, http.StatusOK, summary)
}
