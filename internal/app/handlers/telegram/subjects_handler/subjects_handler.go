package subjects_handler

import (
	"context"
	"fmt"
	"strconv"

	"gopkg.in/telebot.v4"

	subjectsService "github.com/quizmasterhq/quizmaster/internal/domain/subjects/service"
)

// SubjectsHandler структура для показа списка предметов
type SubjectsHandler struct {
	subjectService *subjectsService.SubjectService
}

// NewSubjectsHandler возвращает структуру обработчика
func NewSubjectsHandler(subjectService *subjectsService.SubjectService) *SubjectsHandler {
	return &SubjectsHandler{subjectService: subjectService}
}

// Handle отправляет инлайн-клавиатуру со всеми предметами
func (h *SubjectsHandler) Handle(c telebot.Context) error {
	ctx := context.Background()

	subjects, err := h.subjectService.ListSubjects(ctx, "")
	if err != nil {
		return c.Send(fmt.Sprintf("Failed to list subjects: %v", err))
	}
	if len(subjects) == 0 {
		return c.Send("Предметов пока нет, загляните позже.")
	}

	markup := &telebot.ReplyMarkup{}
	rows := make([]telebot.Row, 0, len(subjects))
	for _, subject := range subjects {
		btn := markup.Data(subject.Name, "subject", strconv.Itoa(subject.ID))
		rows = append(rows, markup.Row(btn))
	}
	markup.Inline(rows...)

	return c.Send("Выберите предмет:", &telebot.SendOptions{
		ReplyMarkup: markup,
	})
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *SubjectsHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
