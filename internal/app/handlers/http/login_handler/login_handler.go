package login_handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/quizmasterhq/quizmaster/internal/domain/users/service"
	"github.com/quizmasterhq/quizmaster/internal/infra/auth"
	httpError "github.com/quizmasterhq/quizmaster/pkg/http"
)

// LoginRequest структура для данных запроса
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse структура для ответа с токеном сессии
type LoginResponse struct {
	Token   string `json:"token"`
	UserID  int    `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}

// LoginHandler обработчик входа по паре логин-пароль
type LoginHandler struct {
	userService *service.UserService
	jwtSecret   string
	tokenTTL    time.Duration
}

// NewLoginHandler создает новый экземпляр обработчика
func NewLoginHandler(userService *service.UserService, jwtSecret string, tokenTTL time.Duration) *LoginHandler {
	return &LoginHandler{
		userService: userService,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
	}
}

// ServeHTTP метод для обработки запроса
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var request LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.Authenticate(r.Context(), request.Username, request.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpError.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to authenticate")
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, h.tokenTTL, user)
	if err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	httpError.JSONResponse(w, http.StatusOK, LoginResponse{
		Token:   token,
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
	})
}
