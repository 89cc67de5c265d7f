package service

import (
	"time"

	"github.com/quizmasterhq/quizmaster/internal/domain/model"
)

// Чистые предикаты доступа к квизу. Работают только с уже загруженными
// данными, ничего не кэшируют: состояние попыток может измениться между
// запросами в рамках одной сессии.

// IsUnlocked проверяет, открыт ли квиз для пользователя. Квиз без
// пререквизита открыт всегда. Иначе достаточно хотя бы одной завершенной
// попытки по пререквизиту с баллом не ниже его проходного.
func IsUnlocked(quiz model.Quiz, prerequisite *model.Quiz, prereqAttempts []model.QuizAttempt) bool {
	if quiz.PrerequisiteQuizID == nil {
		return true
	}
	if prerequisite == nil {
		// Пререквизит указан, но не найден: квиз остается закрытым
		return false
	}
	for _, a := range prereqAttempts {
		if a.Completed && a.Score != nil && *a.Score >= prerequisite.PassingScore {
			return true
		}
	}
	return false
}

// AttemptsRemaining возвращает число оставшихся попыток. Незавершенные
// попытки в лимит не засчитываются.
func AttemptsRemaining(quiz model.Quiz, completedCount int) int {
	remaining := quiz.MaxAttempts - completedCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsPastDeadline проверяет, прошел ли дедлайн квиза
func IsPastDeadline(quiz model.Quiz, now time.Time) bool {
	if quiz.Deadline == nil {
		return false
	}
	return now.After(*quiz.Deadline)
}

// CheckAccess проверяет все условия доступа и возвращает конкретную причину
// отказа: ErrQuizLocked, ErrDeadlinePassed или ErrAttemptsExhausted.
func CheckAccess(quiz model.Quiz, prerequisite *model.Quiz, prereqAttempts []model.QuizAttempt, completedCount int, now time.Time) error {
	if !IsUnlocked(quiz, prerequisite, prereqAttempts) {
		return ErrQuizLocked
	}
	if IsPastDeadline(quiz, now) {
		return ErrDeadlinePassed
	}
	if AttemptsRemaining(quiz, completedCount) <= 0 {
		return ErrAttemptsExhausted
	}
	return nil
}
