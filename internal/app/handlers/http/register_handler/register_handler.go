package register_handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quizmasterhq/quizmaster/internal/domain/users/service"
	httpError "github.com/quizmasterhq/quizmaster/pkg/http"
)

// RegisterRequest структура для данных запроса
type RegisterRequest struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	Age       *int    `json:"age,omitempty"`
	Interests *string `json:"interests,omitempty"`
}

// RegisterHandler обработчик регистрации ученика
type RegisterHandler struct {
	userService *service.UserService
}

// NewRegisterHandler создает новый экземпляр обработчика
func NewRegisterHandler(userService *service.UserService) *RegisterHandler {
	return &RegisterHandler{userService: userService}
}

// ServeHTTP метод для обработки запроса
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var request RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if request.Username == "" || request.Password == "" {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.userService.Register(r.Context(), request.Username, request.Password, request.Age, request.Interests)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			httpError.ErrorResponse(w, http.StatusConflict, "Username is already taken")
			return
		}
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	httpError.JSONResponse(w, http.StatusCreated, user)
}
