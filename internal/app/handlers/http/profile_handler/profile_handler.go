package profile_handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quizmasterhq/quizmaster/internal/app/middleware"
	"github.com/quizmasterhq/quizmaster/internal/domain/users/service"
	httpError "github.com/quizmasterhq/quizmaster/pkg/http"
)

// UpdateProfileRequest структура для данных обновления профиля
type UpdateProfileRequest struct {
	Username  string  `json:"username"`
	Age       *int    `json:"age,omitempty"`
	Interests *string `json:"interests,omitempty"`
}

// GetHandler возвращает профиль текущего пользователя
type GetHandler struct {
	userService *service.UserService
}

// NewGetHandler создает новый экземпляр обработчика
func NewGetHandler(userService *service.UserService) *GetHandler {
	return &GetHandler{userService: userService}
}

func (h *GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims := middleware.CurrentUser(r)

	user, err := h.userService.GetUser(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpError.ErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}
	httpError.JSONResponse(w, http.StatusOK, user)
}

// UpdateHandler обновляет профиль текущего пользователя
type UpdateHandler struct {
	userService *service.UserService
}

// NewUpdateHandler создает новый экземпляр обработчика
func NewUpdateHandler(userService *service.UserService) *UpdateHandler {
	return &UpdateHandler{userService: userService}
}

func (h *UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var request UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	claims := middleware.CurrentUser(r)

	err := h.userService.UpdateProfile(r.Context(), claims.UserID, request.Username, request.Age, request.Interests)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			httpError.ErrorResponse(w, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrUsernameTaken):
			httpError.ErrorResponse(w, http.StatusConflict, "Username already taken")
		default:
			httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}
	httpError.JSONResponse(w, http.StatusOK, map[string]string{"message": "Profile updated"})
}
