package rest

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/lslops/checklist-management/internal/auth"
	"github.com/lslops/checklist-management/internal/checklist"
	"github.com/lslops/checklist-management/internal/dashboard"
	"github.com/lslops/checklist-management/internal/employee"
	"github.com/lslops/checklist-management/internal/equipment"
	"github.com/lslops/checklist-management/internal/report"
	"github.com/lslops/checklist-management/internal/sector"
	"github.com/lslops/checklist-management/internal/template"
	"github.com/lslops/checklist-management/internal/transport/middleware"
	"github.com/lslops/checklist-management/internal/transport/swagger"
	"github.com/lslops/checklist-management/internal/user"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth      *auth.Handler
	Users     *user.Handler
	Sectors   *sector.Handler
	Employees *employee.Handler
	Equipment *equipment.Handler
	Templates *template.Handler
	Checklist *checklist.Handler
	Reports   *report.Handler
	Dashboard *dashboard.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, gate *auth.RoleGate, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec and Swagger UI at root, outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Everything else requires an authenticated user.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", currentUserHandler)
			pr.With(gate.RequireAdmin()).Post("/auth/register", h.Users.CreateUser)

			// Reference data writes are admin-only; reads stay open to any
			// authenticated role so pickers and kiosk screens can populate.
			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/", h.Users.GetUsers)
				ur.Get("/{id}", h.Users.GetUser)
				ur.Group(func(ar chi.Router) {
					ar.Use(gate.RequireAdmin())
					ar.Post("/", h.Users.CreateUser)
					ar.Put("/{id}", h.Users.UpdateUser)
					ar.Delete("/{id}", h.Users.DeactivateUser)
				})
			})

			pr.Route("/sectors", func(sr chi.Router) {
				sr.Get("/", h.Sectors.GetSectors)
				sr.Get("/{id}", h.Sectors.GetSector)
				sr.Group(func(ar chi.Router) {
					ar.Use(gate.RequireAdmin())
					ar.Post("/", h.Sectors.CreateSector)
					ar.Put("/{id}", h.Sectors.UpdateSector)
					ar.Delete("/{id}", h.Sectors.DeactivateSector)
				})
			})

			pr.Route("/employees", func(er chi.Router) {
				er.Get("/", h.Employees.GetEmployees)
				er.Get("/{id}", h.Employees.GetEmployee)
				er.Group(func(ar chi.Router) {
					ar.Use(gate.RequireAdmin())
					ar.Post("/", h.Employees.CreateEmployee)
					ar.Put("/{id}", h.Employees.UpdateEmployee)
				})
			})

			pr.Route("/equipments", func(er chi.Router) {
				er.Get("/", h.Equipment.GetEquipments)
				er.Get("/{id}", h.Equipment.GetEquipment)
				er.Get("/qr/{qr}", h.Equipment.GetEquipmentByQR)
				er.Group(func(ar chi.Router) {
					ar.Use(gate.RequireAdmin())
					ar.Post("/", h.Equipment.CreateEquipment)
					ar.Put("/{id}", h.Equipment.UpdateEquipment)
					ar.Delete("/{id}", h.Equipment.DeactivateEquipment)
				})
			})

			pr.Route("/templates", func(tr chi.Router) {
				tr.Get("/", h.Templates.GetTemplates)
				tr.Get("/{id}", h.Templates.GetTemplate)
				tr.Group(func(ar chi.Router) {
					ar.Use(gate.RequireAdmin())
					ar.Post("/", h.Templates.CreateTemplate)
					ar.Put("/{id}", h.Templates.UpdateTemplate)
					ar.Delete("/{id}", h.Templates.DeactivateTemplate)
				})
			})

			pr.Route("/checklists", func(cr chi.Router) {
				cr.Get("/", h.Checklist.GetChecklists)
				cr.Get("/{id}", h.Checklist.GetChecklist)
				cr.Get("/{id}/export.pdf", h.Reports.ExportChecklistPDF)
				cr.Get("/{id}/export.xlsx", h.Reports.ExportChecklistExcel)

				cr.Group(func(fr chi.Router) {
					fr.Use(gate.RequireFill())
					fr.Post("/", h.Checklist.CreateChecklist)
					fr.Put("/{id}/answers", h.Checklist.FillAnswers)
					fr.Put("/{id}/sign", h.Checklist.SignChecklist)
					fr.Post("/{id}/complete", h.Checklist.CompleteChecklist)
				})

				cr.Group(func(vr chi.Router) {
					vr.Use(gate.RequireValidate())
					vr.Get("/pending", h.Checklist.GetPendingChecklists)
					vr.Put("/{id}/validate", h.Checklist.ValidateChecklist)
				})
			})

			pr.Group(func(rr chi.Router) {
				rr.Use(gate.RequireReports())
				rr.Get("/reports/checklists", h.Reports.GetReport)
				rr.Get("/reports/checklists/export", h.Reports.ExportReportExcel)
				rr.Get("/dashboard/summary", h.Dashboard.GetSummary)
			})
		})
	})
}

// currentUserHandler echoes the authenticated user loaded by the middleware.
func currentUserHandler(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok || u == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u)
}
