package dto

import "github.com/quizmasterhq/quizmaster/internal/domain/model"

// QuizAccess представляет квиз вместе с рассчитанными для пользователя
// правами доступа. Рассчитывается заново на каждый запрос.
type QuizAccess struct {
	Quiz              model.Quiz `json:"quiz"`
	Unlocked          bool       `json:"unlocked"`
	AttemptsRemaining int        `json:"attempts_remaining"`
	PastDeadline      bool       `json:"past_deadline"`
	CanAttempt        bool       `json:"can_attempt"`
}
