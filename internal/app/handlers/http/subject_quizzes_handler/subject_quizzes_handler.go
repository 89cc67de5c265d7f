package subject_quizzes_handler

import (
	"net/http"
	"strconv"

	"github.com/quizmasterhq/quizmaster/internal/app/middleware"
	"github.com/quizmasterhq/quizmaster/internal/domain/attempts/service"
	httpError "github.com/quizmasterhq/quizmaster/pkg/http"
)

// Handler возвращает квизы предмета вместе с информацией о доступности
// для текущего пользователя
type Handler struct {
	attemptService *service.AttemptService
}

// NewHandler создает новый экземпляр обработчика
func NewHandler(attemptService *service.AttemptService) *Handler {
	return &Handler{attemptService: attemptService}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subjectID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid subject ID")
		return
	}
	claims := middleware.CurrentUser(r)

	access, err := h.attemptService.ListQuizAccess(r.Context(), claims.UserID, subjectID)
	if err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to list quizzes")
		return
	}
	httpError.JSONResponse(w, http.StatusOK, access)
}
