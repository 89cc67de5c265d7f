package user_statistics_handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/quizmasterhq/quizmaster/internal/app/middleware"
	"github.com/quizmasterhq/quizmaster/internal/domain/stats/service"
	userService "github.com/quizmasterhq/quizmaster/internal/domain/users/service"
	httpError "github.com/quizmasterhq/quizmaster/pkg/http"
)

// Handler возвращает статистику успеваемости одного пользователя.
// Администратор указывает пользователя в пути, обычный пользователь получает
// только свою статистику.
type Handler struct {
	statsService *service.StatsService
}

// NewHandler создает новый экземпляр обработчика
func NewHandler(statsService *service.StatsService) *Handler {
	return &Handler{statsService: statsService}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims := middleware.CurrentUser(r)

	userID := claims.UserID
	if raw := r.PathValue("id"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid user ID")
			return
		}
		userID = parsed
	}

	performance, err := h.statsService.UserPerformance(r.Context(), userID)
	if err != nil {
		if errors.Is(err, userService.ErrUserNotFound) {
			httpError.ErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to get user statistics")
		return
	}
	httpError.JSONResponse(w, http.StatusOK, performance)
}
