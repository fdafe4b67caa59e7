package rest

import (
	"errors"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
	"listings-service/internal/core/port/usecases_port"
	"net/http"
)

type DashboardHandlers struct {
	getDashboardStatsUC usecases_port.GetDashboardStatsUseCasePort
}

func NewDashboardHandlers(getDashboardStatsUC usecases_port.GetDashboardStatsUseCasePort) *DashboardHandlers {
	return &DashboardHandlers{getDashboardStatsUC: getDashboardStatsUC}
}

// GetDashboardStats - обработчик для GET /api/v1/dashboard/stats.
// Состав счетчиков определяется ролью из токена, клиент роль не передает.
func (h *DashboardHandlers) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetDashboardStats"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	stats, err := h.getDashboardStatsUC.Execute(r.Context(), claims)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			WriteJSONError(w, http.StatusForbidden, "Dashboard is not available for this role")
			return
		}
		logger.Error("GetDashboardStats use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to assemble dashboard stats")
		return
	}

	logger.Info("Successfully assembled dashboard stats", port.Fields{"role": stats.Role})
	RespondWithJSON(w, http.StatusOK, stats)
}
