package attempt_quiz_handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/quizmasterhq/quizmaster/internal/app/middleware"
	"github.com/quizmasterhq/quizmaster/internal/domain/attempts/service"
	httpError "github.com/quizmasterhq/quizmaster/pkg/http"
)

// Handler начинает новую попытку прохождения квиза или возобновляет
// незавершенную
type Handler struct {
	attemptService *service.AttemptService
}

// NewHandler создает новый экземпляр обработчика
func NewHandler(attemptService *service.AttemptService) *Handler {
	return &Handler{attemptService: attemptService}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	quizID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}
	claims := middleware.CurrentUser(r)

	state, err := h.attemptService.StartOrResume(r.Context(), claims.UserID, quizID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuizNotFound):
			httpError.ErrorResponse(w, http.StatusNotFound, "Quiz not found")
		case errors.Is(err, service.ErrQuizLocked),
			errors.Is(err, service.ErrDeadlinePassed),
			errors.Is(err, service.ErrAttemptsExhausted):
			httpError.ErrorResponse(w, http.StatusForbidden, err.Error())
		default:
			httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to start attempt")
		}
		return
	}
	httpError.JSONResponse(w, http.StatusOK, state)
}
