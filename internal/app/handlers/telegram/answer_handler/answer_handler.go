package answer_handler

import (
	"context"
	"fmt"
	"strconv"

	"gopkg.in/telebot.v4"

	"github.com/quizmasterhq/quizmaster/internal/app/handlers/telegram/quizview"
	attemptsService "github.com/quizmasterhq/quizmaster/internal/domain/attempts/service"
	usersService "github.com/quizmasterhq/quizmaster/internal/domain/users/service"
)

// AnswerHandler структура для обработки нажатия кнопки варианта ответа
type AnswerHandler struct {
	bot            *telebot.Bot
	userService    *usersService.UserService
	attemptService *attemptsService.AttemptService
}

// NewAnswerHandler возвращает структуру обработчика
func NewAnswerHandler(
	bot *telebot.Bot,
	userService *usersService.UserService,
	attemptService *attemptsService.AttemptService,
) *AnswerHandler {
	return &AnswerHandler{
		bot:            bot,
		userService:    userService,
		attemptService: attemptService,
	}
}

// Handle разбирает callback кнопки ответа, записывает ответ и отправляет
// следующий вопрос либо итог квиза
func (h *AnswerHandler) Handle(c telebot.Context) error {
	ctx := context.Background()

	// В callback лежат попытка, вопрос и номер варианта
	args := c.Args()
	if len(args) < 3 {
		return fmt.Errorf("invalid callback data: %s", c.Callback().Data)
	}
	attemptID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid attempt ID: %w", err)
	}
	questionID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid question ID: %w", err)
	}
	selectedOption, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid option: %w", err)
	}

	user, err := h.userService.EnsureTelegramUser(ctx, c.Sender().ID, c.Sender().Username)
	if err != nil {
		return c.Send(fmt.Sprintf("Failed to process user: %v", err))
	}

	state, err := h.attemptService.SubmitAnswer(ctx, user.ID, attemptID, questionID, selectedOption)
	if err != nil {
		if message, ok := quizview.DenialText(err); ok {
			return c.Send(message)
		}
		return fmt.Errorf("failed to submit answer: %w", err)
	}

	// Убираем сообщение с отвеченным вопросом, чтобы не дать ответить дважды
	if err := h.bot.Delete(c.Message()); err != nil {
		return fmt.Errorf("failed to delete previous question: %w", err)
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
func (h *AnswerHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
