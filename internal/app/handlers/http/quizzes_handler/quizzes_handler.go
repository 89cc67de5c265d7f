package quizzes_handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/quizmasterhq/quizmaster/internal/domain/model"
	"github.com/quizmasterhq/quizmaster/internal/domain/quizzes/service"
	httpError "github.com/quizmasterhq/quizmaster/pkg/http"
)

// QuizRequest структура для данных создания и обновления квиза
type QuizRequest struct {
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	ChapterID          *int       `json:"chapter_id,omitempty"`
	SequenceNumber     int        `json:"sequence_number"`
	TimeLimit          int        `json:"time_limit"`
	MaxAttempts        int        `json:"max_attempts"`
	PassingScore       float64    `json:"passing_score"`
	Deadline           *time.Time `json:"deadline,omitempty"`
	PrerequisiteQuizID *int       `json:"prerequisite_quiz_id,omitempty"`
}

func writeQuizError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrQuizNotFound):
		httpError.ErrorResponse(w, http.StatusNotFound, "Quiz not found")
	case errors.Is(err, service.ErrSubjectNotFound):
		httpError.ErrorResponse(w, http.StatusNotFound, "Subject not found")
	case errors.Is(err, service.ErrChapterMismatch),
		errors.Is(err, service.ErrInvalidTimeLimit),
		errors.Is(err, service.ErrInvalidMaxAttempts),
		errors.Is(err, service.ErrInvalidPassingScore),
		errors.Is(err, service.ErrPrerequisiteNotFound),
		errors.Is(err, service.ErrPrerequisiteSubject),
		errors.Is(err, service.ErrPrerequisiteCycle):
		httpError.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to process quiz")
	}
}

// CreateHandler создает квиз внутри предмета
type CreateHandler struct {
	quizService *service.QuizService
}

// NewCreateHandler создает новый экземпляр обработчика
func NewCreateHandler(quizService *service.QuizService) *CreateHandler {
	return &CreateHandler{quizService: quizService}
}

func (h *CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subjectID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid subject ID")
		return
	}
	var request QuizRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	quiz, err := h.quizService.CreateQuiz(r.Context(), model.Quiz{
		SubjectID:          subjectID,
		ChapterID:          request.ChapterID,
		Name:               request.Name,
		Description:        request.Description,
		SequenceNumber:     request.SequenceNumber,
		TimeLimit:          request.TimeLimit,
		MaxAttempts:        request.MaxAttempts,
		PassingScore:       request.PassingScore,
		Deadline:           request.Deadline,
		PrerequisiteQuizID: request.PrerequisiteQuizID,
	})
	if err != nil {
		writeQuizError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusCreated, quiz)
}

// GetHandler отдает квиз вместе с его вопросами (для администратора)
type GetHandler struct {
	quizService *service.QuizService
}

// NewGetHandler создает новый экземпляр обработчика
func NewGetHandler(quizService *service.QuizService) *GetHandler {
	return &GetHandler{quizService: quizService}
}

func (h *GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	quizID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}

	quiz, err := h.quizService.GetQuiz(r.Context(), quizID)
	if err != nil {
		writeQuizError(w, err)
		return
	}
	questions, err := h.quizService.ListQuizQuestions(r.Context(), quizID)
	if err != nil {
		writeQuizError(w, err)
		return
	}

	httpError.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"quiz":      quiz,
		"questions": questions,
	})
}

// UpdateHandler обновляет квиз
type UpdateHandler struct {
	quizService *service.QuizService
}

// NewUpdateHandler создает новый экземпляр обработчика
func NewUpdateHandler(quizService *service.QuizService) *UpdateHandler {
	return &UpdateHandler{quizService: quizService}
}

func (h *UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	quizID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}
	var request QuizRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = h.quizService.UpdateQuiz(r.Context(), model.Quiz{
		ID:                 quizID,
		ChapterID:          request.ChapterID,
		Name:               request.Name,
		Description:        request.Description,
		SequenceNumber:     request.SequenceNumber,
		TimeLimit:          request.TimeLimit,
		MaxAttempts:        request.MaxAttempts,
		PassingScore:       request.PassingScore,
		Deadline:           request.Deadline,
		PrerequisiteQuizID: request.PrerequisiteQuizID,
	})
	if err != nil {
		writeQuizError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, map[string]string{"message": "Quiz updated"})
}

// DeleteHandler удаляет квиз с вопросами, попытками и ответами
type DeleteHandler struct {
	quizService *service.QuizService
}

// NewDeleteHandler создает новый экземпляр обработчика
func NewDeleteHandler(quizService *service.QuizService) *DeleteHandler {
	return &DeleteHandler{quizService: quizService}
}

func (h *DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	quizID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}

	if err := h.quizService.DeleteQuiz(r.Context(), quizID); err != nil {
		writeQuizError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, map[string]string{"message": "Quiz deleted"})
}
