package start_handler

import (
	"context"
	"fmt"

	"gopkg.in/telebot.v4"

	usersService "github.com/quizmasterhq/quizmaster/internal/domain/users/service"
)

// StartHandler структура для обработки команды /start
type StartHandler struct {
	userService *usersService.UserService
}

// NewStartHandler возвращает структуру обработчика
func NewStartHandler(userService *usersService.UserService) *StartHandler {
	return &StartHandler{userService: userService}
}

// Handle метод, который будет использоваться для обработки команды /start
func (h *StartHandler) Handle(c telebot.Context) error {
	ctx := context.Background()

	user, err := h.userService.EnsureTelegramUser(ctx, c.Sender().ID, c.Sender().Username)
	if err != nil {
		return c.Send(fmt.Sprintf("Failed to process user: %v", err))
	}

	markup := &telebot.ReplyMarkup{}
	subjectsBtn := markup.Data("📚 Выбрать предмет", "subjects")
	markup.Inline(markup.Row(subjectsBtn))

	welcome := fmt.Sprintf(
		"Привет, %s! 👋\n\nЗдесь можно проходить квизы по предметам и следить за своими результатами. Начните с выбора предмета.",
		user.Username,
	)
	return c.Send(welcome, &telebot.SendOptions{
		ParseMode:   telebot.ModeMarkdown,
		ReplyMarkup: markup,
	})
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *StartHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
