package attempt_report_handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/quizmasterhq/quizmaster/internal/app/middleware"
	"github.com/quizmasterhq/quizmaster/internal/domain/attempts/service"
	userService "github.com/quizmasterhq/quizmaster/internal/domain/users/service"
	"github.com/quizmasterhq/quizmaster/internal/infra/report"
	httpError "github.com/quizmasterhq/quizmaster/pkg/http"
)

// Handler отдает итог попытки в виде PDF-отчета
type Handler struct {
	attemptService *service.AttemptService
	userService    *userService.UserService
	generator      *report.Generator
}

// NewHandler создает новый экземпляр обработчика
func NewHandler(attemptService *service.AttemptService, userService *userService.UserService, generator *report.Generator) *Handler {
	return &Handler{
		attemptService: attemptService,
		userService:    userService,
		generator:      generator,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	attemptID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid attempt ID")
		return
	}
	claims := middleware.CurrentUser(r)

	result, err := h.attemptService.Result(r.Context(), claims.UserID, claims.IsAdmin, attemptID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttemptNotFound):
			httpError.ErrorResponse(w, http.StatusNotFound, "Attempt not found")
		case errors.Is(err, service.ErrAttemptForbidden):
			httpError.ErrorResponse(w, http.StatusForbidden, "Attempt belongs to another user")
		default:
			httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to get result")
		}
		return
	}

	username := claims.Username
	if result.UserID != claims.UserID {
		owner, err := h.userService.GetUser(r.Context(), result.UserID)
		if err != nil {
			httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to get attempt owner")
			return
		}
		username = owner.Username
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=attempt_%d.pdf", result.AttemptID))
	if err := h.generator.WritePDF(w, username, result); err != nil {
		log.Printf("failed to write attempt report: %v", err)
	}
}
