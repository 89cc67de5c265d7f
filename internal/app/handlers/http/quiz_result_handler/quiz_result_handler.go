package quiz_result_handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/quizmasterhq/quizmaster/internal/app/middleware"
	"github.com/quizmasterhq/quizmaster/internal/domain/attempts/service"
	httpError "github.com/quizmasterhq/quizmaster/pkg/http"
)

// Handler возвращает итог попытки с разбором ответов. Результат доступен
// владельцу попытки и администраторам.
type Handler struct {
	attemptService *service.AttemptService
}

// NewHandler создает новый экземпляр обработчика
func NewHandler(attemptService *service.AttemptService) *Handler {
	return &Handler{attemptService: attemptService}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	attemptID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid attempt ID")
		return
	}
	claims := middleware.CurrentUser(r)

	result, err := h.attemptService.Result(r.Context(), claims.UserID, claims.IsAdmin, attemptID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttemptNotFound):
			httpError.ErrorResponse(w, http.StatusNotFound, "Attempt not found")
		case errors.Is(err, service.ErrAttemptForbidden):
			httpError.ErrorResponse(w, http.StatusForbidden, "Attempt belongs to another user")
		default:
			httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to get result")
		}
		return
	}
	httpError.JSONResponse(w, http.StatusOK, result)
}
