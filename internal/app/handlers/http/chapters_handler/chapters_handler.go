package chapters_handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/quizmasterhq/quizmaster/internal/domain/subjects/service"
	httpError "github.com/quizmasterhq/quizmaster/pkg/http"
)

// ChapterRequest структура для данных создания и обновления главы
type ChapterRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		httpError.ErrorResponse(w, http.StatusNotFound, "Subject not found")
	case errors.Is(err, service.ErrChapterNotFound):
		httpError.ErrorResponse(w, http.StatusNotFound, "Chapter not found")
	case errors.Is(err, service.ErrEmptyName):
		httpError.ErrorResponse(w, http.StatusBadRequest, "Name must not be empty")
	default:
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to process chapter")
	}
}

// CreateHandler создает главу внутри предмета
type CreateHandler struct {
	subjectService *service.SubjectService
}

// NewCreateHandler создает новый экземпляр обработчика
func NewCreateHandler(subjectService *service.SubjectService) *CreateHandler {
	return &CreateHandler{subjectService: subjectService}
}

func (h *CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subjectID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid subject ID")
		return
	}
	var request ChapterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	chapter, err := h.subjectService.CreateChapter(r.Context(), subjectID, request.Name, request.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusCreated, chapter)
}

// UpdateHandler обновляет главу
type UpdateHandler struct {
	subjectService *service.SubjectService
}

// NewUpdateHandler создает новый экземпляр обработчика
func NewUpdateHandler(subjectService *service.SubjectService) *UpdateHandler {
	return &UpdateHandler{subjectService: subjectService}
}

func (h *UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	chapterID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid chapter ID")
		return
	}
	var request ChapterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.subjectService.UpdateChapter(r.Context(), chapterID, request.Name, request.Description); err != nil {
		writeServiceError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, map[string]string{"message": "Chapter updated"})
}

// DeleteHandler удаляет главу вместе с ее квизами
type DeleteHandler struct {
	subjectService *service.SubjectService
}

// NewDeleteHandler создает новый экземпляр обработчика
func NewDeleteHandler(subjectService *service.SubjectService) *DeleteHandler {
	return &DeleteHandler{subjectService: subjectService}
}

func (h *DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	chapterID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid chapter ID")
		return
	}

	if err := h.subjectService.DeleteChapter(r.Context(), chapterID); err != nil {
		writeServiceError(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, map[string]string{"message": "Chapter deleted"})
}
