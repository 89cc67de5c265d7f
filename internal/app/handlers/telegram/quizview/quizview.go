package quizview

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/quizmasterhq/quizmaster/internal/domain/attempts/service"
	"github.com/quizmasterhq/quizmaster/internal/domain/dto"
)

// QuestionMessage собирает текст вопроса и инлайн-клавиатуру с вариантами
// ответа. В callback каждой кнопки кладутся попытка, вопрос и номер варианта.
func QuestionMessage(state *dto.AttemptState) (string, *telebot.ReplyMarkup) {
	var messageBuilder strings.Builder
	messageBuilder.WriteString(fmt.Sprintf("📝 *%s*\n", state.QuizName))
	messageBuilder.WriteString(fmt.Sprintf("❓ Вопрос %d из %d\n", state.QuestionNumber, state.TotalQuestions))
	messageBuilder.WriteString(fmt.Sprintf("⏳ Осталось: %s\n\n", formatDuration(state.RemainingSeconds)))
	messageBuilder.WriteString(state.Question.Text)

	markup := &telebot.ReplyMarkup{}
	rows := make([]telebot.Row, 0, len(state.Question.Options))
	for i, option := range state.Question.Options {
		btn := markup.Data(
			fmt.Sprintf("%d. %s", i+1, option),
			"answer",
			strconv.Itoa(state.AttemptID),
			strconv.Itoa(state.Question.ID),
			strconv.Itoa(i+1),
		)
		rows = append(rows, markup.Row(btn))
	}
	markup.Inline(rows...)

	return messageBuilder.String(), markup
}

// ResultText собирает итог попытки для отправки в чат
func ResultText(result *dto.QuizResult) string {
	correct := 0
	for _, a := range result.Answers {
		if a.IsCorrect {
			correct++
		}
	}

	var messageBuilder strings.Builder
	messageBuilder.WriteString(fmt.Sprintf("🏁 Квиз *%s* завершен!\n\n", result.QuizName))
	messageBuilder.WriteString(fmt.Sprintf("Результат: *%.1f%%*\n", result.Score))
	messageBuilder.WriteString(fmt.Sprintf("Правильных ответов: %d из %d\n", correct, len(result.Answers)))
	return messageBuilder.String()
}

// AccessLine собирает строку списка квизов с пометкой о доступности
func AccessLine(access dto.QuizAccess) string {
	switch {
	case !access.Unlocked:
		return fmt.Sprintf("🔒 %s (нужно пройти предыдущий квиз)", access.Quiz.Name)
	case access.PastDeadline:
		return fmt.Sprintf("⌛ %s (срок сдачи прошел)", access.Quiz.Name)
	case access.AttemptsRemaining == 0:
		return fmt.Sprintf("🚫 %s (попытки закончились)", access.Quiz.Name)
	default:
		return fmt.Sprintf("✅ %s (попыток осталось: %d)", access.Quiz.Name, access.AttemptsRemaining)
	}
}

// DenialText переводит ошибку доступа в сообщение для пользователя.
// Для внутренних ошибок возвращает false.
func DenialText(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrQuizNotFound):
		return "Квиз не найден.", true
	case errors.Is(err, service.ErrQuizLocked):
		return "Квиз пока закрыт: сначала пройдите предыдущий квиз.", true
	case errors.Is(err, service.ErrDeadlinePassed):
		return "Срок сдачи квиза уже прошел.", true
	case errors.Is(err, service.ErrAttemptsExhausted):
		return "Попытки по этому квизу закончились.", true
	case errors.Is(err, service.ErrTimeExpired):
		return "Время попытки истекло. Результат можно посмотреть в списке квизов.", true
	case errors.Is(err, service.ErrAttemptCompleted):
		return "Эта попытка уже завершена.", true
	case errors.Is(err, service.ErrQuestionNotCurrent):
		return "Этот вопрос уже неактуален, отвечайте на последний присланный.", true
	}
	return "", false
}

func formatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
