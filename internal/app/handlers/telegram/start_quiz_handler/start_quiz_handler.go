package start_quiz_handler

import (
	"context"
	"fmt"
	"strconv"

	"gopkg.in/telebot.v4"

	"github.com/quizmasterhq/quizmaster/internal/app/handlers/telegram/quizview"
	attemptsService "github.com/quizmasterhq/quizmaster/internal/domain/attempts/service"
	usersService "github.com/quizmasterhq/quizmaster/internal/domain/users/service"
)

// StartQuizHandler структура для обработки нажатия кнопки квиза:
// начинает новую попытку или продолжает незавершенную
type StartQuizHandler struct {
	userService    *usersService.UserService
	attemptService *attemptsService.AttemptService
}

// NewStartQuizHandler возвращает структуру обработчика
func NewStartQuizHandler(userService *usersService.UserService, attemptService *attemptsService.AttemptService) *StartQuizHandler {
	return &StartQuizHandler{
		userService:    userService,
		attemptService: attemptService,
	}
}

// Handle обрабатывает callback от кнопки квиза
func (h *StartQuizHandler) Handle(c telebot.Context) error {
	ctx := context.Background()

	args := c.Args()
	if len(args) < 1 {
		return fmt.Errorf("invalid callback data: %s", c.Callback().Data)
	}
	quizID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid quiz ID: %w", err)
	}

	user, err := h.userService.EnsureTelegramUser(ctx, c.Sender().ID, c.Sender().Username)
	if err != nil {
		return c.Send(fmt.Sprintf("Failed to process user: %v", err))
	}

	state, err := h.attemptService.StartOrResume(ctx, user.ID, quizID)
	if err != nil {
		if message, ok := quizview.DenialText(err); ok {
			return c.Send(message)
		}
		return fmt.Errorf("failed to start attempt: %w", err)
	}

	if state.Expired {
		return c.Send("Время прошлой попытки истекло, она завершена.")
	}
	if state.Finished {
		result, err := h.attemptService.Result(ctx, user.ID, false, state.AttemptID)
		if err != nil {
			return fmt.Errorf("failed to get result: %w", err)
		}
		return c.Send(quizview.ResultText(result), &telebot.SendOptions{
			ParseMode: telebot.ModeMarkdown,
		})
	}

	text, markup := quizview.QuestionMessage(state)
	return c.Send(text, &telebot.SendOptions{
		ParseMode:   telebot.ModeMarkdown,
		ReplyMarkup: markup,
	})
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *StartQuizHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
