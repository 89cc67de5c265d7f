package questions_handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/quizmasterhq/quizmaster/internal/domain/model"
	"github.com/quizmasterhq/quizmaster/internal/domain/quizzes/service"
	httpError "github.com/quizmasterhq/quizmaster/pkg/http"
)

// QuestionRequest структура для данных создания и обновления вопроса
type QuestionRequest struct {
	Text          string `json:"text"`
	Marks         int    `json:"marks"`
	Option1       string `json:"option1"`
	Option2       string `json:"option2"`
	Option3       string `json:"option3"`
	Option4       string `json:"option4"`
	CorrectOption int    `json:"correct_option"`
}

func writeQuestionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrQuizNotFound):
		httpError.ErrorResponse(w, http.StatusNotFound, "Quiz not found")
	case errors.Is(err, service.ErrQuestionNotFound):
		httpError.ErrorResponse(w, http.StatusNotFound, "Question not found")
	case errors.Is(err, service.ErrInvalidCorrectOption), errors.Is(err, service.ErrEmptyOption):
		httpError.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to process question")
	}
}

// CreateHandler добавляет вопрос в квиз
type CreateHandler struct {
	quizService *service.QuizService
}

// NewCreateHandler создает новый экземпляр обработчика
func NewCreateHandler(quizService *service.QuizService) *CreateHandler {
	return &CreateHandler{quizService: quizService}
}

func (h *CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	quizID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}
	var request QuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	question, err := h.quizService.CreateQuestion(r.Context(), model.Question{
		QuizID:        quizID,
		Text:          request.Text,
		Marks:         request.Marks,
		Option1:       request.Option1,
		Option2:       request.Option2,
		Option3:       request.Option3,
		Option4:       request.Option4,
		CorrectOption: request.CorrectOption,
	})
	if err != nil {
		writeQuestionError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusCreated, question)
}

// UpdateHandler обновляет вопрос
type UpdateHandler struct {
	quizService *service.QuizService
}

// NewUpdateHandler создает новый экземпляр обработчика
func NewUpdateHandler(quizService *service.QuizService) *UpdateHandler {
	return &UpdateHandler{quizService: quizService}
}

func (h *UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	questionID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid question ID")
		return
	}
	var request QuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = h.quizService.UpdateQuestion(r.Context(), model.Question{
		ID:            questionID,
		Text:          request.Text,
		Marks:         request.Marks,
		Option1:       request.Option1,
		Option2:       request.Option2,
		Option3:       request.Option3,
		Option4:       request.Option4,
		CorrectOption: request.CorrectOption,
	})
	if err != nil {
		writeQuestionError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, map[string]string{"message": "Question updated"})
}

// DeleteHandler удаляет вопрос
type DeleteHandler struct {
	quizService *service.QuizService
}

// NewDeleteHandler создает новый экземпляр обработчика
func NewDeleteHandler(quizService *service.QuizService) *DeleteHandler {
	return &DeleteHandler{quizService: quizService}
}

func (h *DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	questionID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid question ID")
		return
	}

	if err := h.quizService.DeleteQuestion(r.Context(), questionID); err != nil {
		writeQuestionError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, map[string]string{"message": "Question deleted"})
}
