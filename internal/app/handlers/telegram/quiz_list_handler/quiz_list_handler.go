package quiz_list_handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/quizmasterhq/quizmaster/internal/app/handlers/telegram/quizview"
	attemptsService "github.com/quizmasterhq/quizmaster/internal/domain/attempts/service"
	usersService "github.com/quizmasterhq/quizmaster/internal/domain/users/service"
)

// QuizListHandler структура для показа квизов выбранного предмета
// вместе с доступностью каждого из них
type QuizListHandler struct {
	userService    *usersService.UserService
	attemptService *attemptsService.AttemptService
}

// NewQuizListHandler возвращает структуру обработчика
func NewQuizListHandler(userService *usersService.UserService, attemptService *attemptsService.AttemptService) *QuizListHandler {
	return &QuizListHandler{
		userService:    userService,
		attemptService: attemptService,
	}
}

// Handle обрабатывает callback от кнопки предмета
func (h *QuizListHandler) Handle(c telebot.Context) error {
	ctx := context.Background()

	args := c.Args()
	if len(args) < 1 {
		return fmt.Errorf("invalid callback data: %s", c.Callback().Data)
	}
	subjectID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid subject ID: %w", err)
	}

	user, err := h.userService.EnsureTelegramUser(ctx, c.Sender().ID, c.Sender().Username)
	if err != nil {
		return c.Send(fmt.Sprintf("Failed to process user: %v", err))
	}

	access, err := h.attemptService.ListQuizAccess(ctx, user.ID, subjectID)
	if err != nil {
		return c.Send(fmt.Sprintf("Failed to list quizzes: %v", err))
	}
	if len(access) == 0 {
		return c.Send("В этом предмете пока нет квизов.")
	}

	var messageBuilder strings.Builder
	messageBuilder.WriteString("Квизы предмета:\n\n")
	markup := &telebot.ReplyMarkup{}
	rows := make([]telebot.Row, 0, len(access))
	for _, a := range access {
		messageBuilder.WriteString(quizview.AccessLine(a) + "\n")
		if a.CanAttempt {
			btn := markup.Data("▶️ "+a.Quiz.Name, "quiz", strconv.Itoa(a.Quiz.ID))
			rows = append(rows, markup.Row(btn))
		}
	}
	markup.Inline(rows...)

	return c.Send(messageBuilder.String(), &telebot.SendOptions{
		ReplyMarkup: markup,
	})
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *QuizListHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
