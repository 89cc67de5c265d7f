package statistics_handler

import (
	"net/http"

	"github.com/quizmasterhq/quizmaster/internal/domain/stats/service"
	httpError "github.com/quizmasterhq/quizmaster/pkg/http"
)

// Handler возвращает сводную статистику платформы: счетчики сущностей,
// средние баллы по предметам и самые проходимые квизы
type Handler struct {
	statsService *service.StatsService
}

// NewHandler создает новый экземпляр обработчика
func NewHandler(statsService *service.StatsService) *Handler {
	return &Handler{statsService: statsService}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	overview, err := h.statsService.Overview(r.Context())
	if err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to get statistics")
		return
	}
	httpError.JSONResponse(w, http.StatusOK, overview)
}
