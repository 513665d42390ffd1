package report

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/lslops/checklist-management/internal/transport"
)

type ServiceAPI interface {
	GetReport(f Filter) ([]Header, error)
	ExportInstancePDF(id int64) ([]byte, string, error)
	ExportInstanceExcel(id int64) ([]byte, string, error)
	ExportFilteredExcel(f Filter) ([]byte, string, error)
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

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	f := filterFromQuery(r)

	summaries, err := h.Service.GetReport(f)
	if err != nil {
		h.Logger.Error("GetReport: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"checklists": summaries,
		"count":      len(summaries),
	})
}

func (h *Handler) ExportChecklistPDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid checklist ID")
		return
	}

	doc, filename, err := h.Service.ExportInstancePDF(id)
	if err != nil {
		h.Logger.Error("ExportChecklistPDF: service error", "error", err, "checklist_id", id)
		h.HandleServiceError(w, err)
		return
	}

	writeAttachment(w, doc, filename, "application/pdf")
}

func (h *Handler) ExportChecklistExcel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid checklist ID")
		return
	}

	doc, filename, err := h.Service.ExportInstanceExcel(id)
	if err != nil {
		h.Logger.Error("ExportChecklistExcel: service error", "error", err, "checklist_id", id)
		h.HandleServiceError(w, err)
		return
	}

	writeAttachment(w, doc, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

func (h *Handler) ExportReportExcel(w http.ResponseWriter, r *http.Request) {
	f := filterFromQuery(r)

	doc, filename, err := h.Service.ExportFilteredExcel(f)
	if err != nil {
		h.Logger.Error("ExportReportExcel: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	writeAttachment(w, doc, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

func writeAttachment(w http.ResponseWriter, data []byte, filename, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func filterFromQuery(r *http.Request) Filter {
	var f Filter
	q := r.URL.Query()

	if v := q.Get("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.From = &t
		}
	}
	if v := q.Get("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.To = &t
		}
	}
	if v := q.Get("sector_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.SectorID = &id
		}
	}
	if v := q.Get("template_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.TemplateID = &id
		}
	}
	f.Status = q.Get("status")

	return f
}
