package users_handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/quizmasterhq/quizmaster/internal/app/middleware"
	"github.com/quizmasterhq/quizmaster/internal/domain/users/service"
	httpError "github.com/quizmasterhq/quizmaster/pkg/http"
)

// ListHandler возвращает всех зарегистрированных учеников
type ListHandler struct {
	userService *service.UserService
}

// NewListHandler создает новый экземпляр обработчика
func NewListHandler(userService *service.UserService) *ListHandler {
	return &ListHandler{userService: userService}
}

func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	learners, err := h.userService.ListLearners(r.Context())
	if err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to list users")
		return
	}
	httpError.JSONResponse(w, http.StatusOK, learners)
}

// DeleteHandler удаляет пользователя вместе с его попытками и ответами.
// Удалить собственную учетную запись нельзя.
type DeleteHandler struct {
	userService *service.UserService
}

// NewDeleteHandler создает новый экземпляр обработчика
func NewDeleteHandler(userService *service.UserService) *DeleteHandler {
	return &DeleteHandler{userService: userService}
}

func (h *DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	claims := middleware.CurrentUser(r)

	if err := h.userService.DeleteUser(r.Context(), claims.UserID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			httpError.ErrorResponse(w, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrSelfDelete):
			httpError.ErrorResponse(w, http.StatusConflict, "Cannot delete own account")
		default:
			httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete user")
		}
		return
	}
	httpError.JSONResponse(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
