package subjects_handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/quizmasterhq/quizmaster/internal/domain/subjects/service"
	httpError "github.com/quizmasterhq/quizmaster/pkg/http"
)

// SubjectRequest структура для данных создания и обновления предмета
type SubjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListHandler отдает предметы с опциональным поиском по имени (?q=)
type ListHandler struct {
	subjectService *service.SubjectService
}

// NewListHandler создает новый экземпляр обработчика
func NewListHandler(subjectService *service.SubjectService) *ListHandler {
	return &ListHandler{subjectService: subjectService}
}

func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.subjectService.ListSubjects(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to list subjects")
		return
	}
	httpError.JSONResponse(w, http.StatusOK, subjects)
}

// GetHandler отдает предмет вместе с его главами
type GetHandler struct {
	subjectService *service.SubjectService
}

// NewGetHandler создает новый экземпляр обработчика
func NewGetHandler(subjectService *service.SubjectService) *GetHandler {
	return &GetHandler{subjectService: subjectService}
}

func (h *GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subjectID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid subject ID")
		return
	}

	subject, err := h.subjectService.GetSubject(r.Context(), subjectID)
	if err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			httpError.ErrorResponse(w, http.StatusNotFound, "Subject not found")
			return
		}
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to get subject")
		return
	}
	chapters, err := h.subjectService.ListChapters(r.Context(), subjectID)
	if err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to list chapters")
		return
	}

	httpError.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"subject":  subject,
		"chapters": chapters,
	})
}

// CreateHandler создает предмет
type CreateHandler struct {
	subjectService *service.SubjectService
}

// NewCreateHandler создает новый экземпляр обработчика
func NewCreateHandler(subjectService *service.SubjectService) *CreateHandler {
	return &CreateHandler{subjectService: subjectService}
}

func (h *CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var request SubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	subject, err := h.subjectService.CreateSubject(r.Context(), request.Name, request.Description)
	if err != nil {
		if errors.Is(err, service.ErrEmptyName) {
			httpError.ErrorResponse(w, http.StatusBadRequest, "Name must not be empty")
			return
		}
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to create subject")
		return
	}
	httpError.JSONResponse(w, http.StatusCreated, subject)
}

// UpdateHandler обновляет предмет
type UpdateHandler struct {
	subjectService *service.SubjectService
}

// NewUpdateHandler создает новый экземпляр обработчика
func NewUpdateHandler(subjectService *service.SubjectService) *UpdateHandler {
	return &UpdateHandler{subjectService: subjectService}
}

func (h *UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subjectID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid subject ID")
		return
	}
	var request SubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = h.subjectService.UpdateSubject(r.Context(), subjectID, request.Name, request.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubjectNotFound):
			httpError.ErrorResponse(w, http.StatusNotFound, "Subject not found")
		case errors.Is(err, service.ErrEmptyName):
			httpError.ErrorResponse(w, http.StatusBadRequest, "Name must not be empty")
		default:
			httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to update subject")
		}
		return
	}
	httpError.JSONResponse(w, http.StatusOK, map[string]string{"message": "Subject updated"})
}

// DeleteHandler удаляет предмет каскадно
type DeleteHandler struct {
	subjectService *service.SubjectService
}

// NewDeleteHandler создает новый экземпляр обработчика
func NewDeleteHandler(subjectService *service.SubjectService) *DeleteHandler {
	return &DeleteHandler{subjectService: subjectService}
}

func (h *DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subjectID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid subject ID")
		return
	}

	if err := h.subjectService.DeleteSubject(r.Context(), subjectID); err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			httpError.ErrorResponse(w, http.StatusNotFound, "Subject not found")
			return
		}
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete subject")
		return
	}
	httpError.JSONResponse(w, http.StatusOK, map[string]string{"message": "Subject deleted"})
}
