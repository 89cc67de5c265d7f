package submit_answer_handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/quizmasterhq/quizmaster/internal/app/middleware"
	"github.com/quizmasterhq/quizmaster/internal/domain/attempts/service"
	httpError "github.com/quizmasterhq/quizmaster/pkg/http"
)

// SubmitAnswerRequest структура для данных ответа на вопрос
type SubmitAnswerRequest struct {
	QuestionID     int `json:"question_id"`
	SelectedOption int `json:"selected_option"`
}

// Handler принимает ответ на текущий вопрос попытки и возвращает
// обновленное состояние попытки
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
	var request SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	claims := middleware.CurrentUser(r)

	state, err := h.attemptService.SubmitAnswer(r.Context(), claims.UserID, attemptID, request.QuestionID, request.SelectedOption)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttemptNotFound):
			httpError.ErrorResponse(w, http.StatusNotFound, "Attempt not found")
		case errors.Is(err, service.ErrAttemptForbidden):
			httpError.ErrorResponse(w, http.StatusForbidden, "Attempt belongs to another user")
		case errors.Is(err, service.ErrQuizLocked),
			errors.Is(err, service.ErrDeadlinePassed),
			errors.Is(err, service.ErrAttemptsExhausted):
			httpError.ErrorResponse(w, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrAttemptCompleted),
			errors.Is(err, service.ErrTimeExpired):
			httpError.ErrorResponse(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidOption),
			errors.Is(err, service.ErrQuestionNotCurrent):
			httpError.ErrorResponse(w, http.StatusBadRequest, err.Error())
		default:
			httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit answer")
		}
		return
	}
	httpError.JSONResponse(w, http.StatusOK, state)
}
