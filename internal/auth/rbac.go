package auth

import (
	"log/slog"
	"net/http"

	"github.com/lslops/checklist-management/internal/user"
)

// RoleGate enforces the fixed role→action rules of the checklist workflow.
// Unauthenticated requests get 401, authenticated but under-privileged ones
// get a hard 403.
type RoleGate struct {
	logger *slog.Logger
}

func NewRoleGate(logger *slog.Logger) *RoleGate {
	return &RoleGate{logger: logger}
}

func (g *RoleGate) Require(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok || u == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !u.HasAnyRole(roles...) {
				g.logger.WarnContext(r.Context(), "access denied: insufficient role",
					"user_id", u.ID,
					"role", u.Role,
					"required_roles", roles)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates reference-data writes.
func (g *RoleGate) RequireAdmin() func(http.Handler) http.Handler {
	return g.Require(user.RoleAdmin)
}

// RequireFill gates checklist creation and filling.
func (g *RoleGate) RequireFill() func(http.Handler) http.Handler {
	return g.Require(user.RoleAdmin, user.RoleCoordinator, user.RoleLeader, user.RoleEvaluator)
}

// RequireValidate gates the approval pipeline.
func (g *RoleGate) RequireValidate() func(http.Handler) http.Handler {
	return g.Require(user.RoleAdmin, user.RoleCoordinator, user.RoleManager)
}

// RequireReports gates report and dashboard reads.
func (g *RoleGate) RequireReports() func(http.Handler) http.Handler {
	return g.Require(user.RoleAdmin, user.RoleCoordinator, user.RoleManager, user.RoleLeader, user.RoleEvaluator)
}
