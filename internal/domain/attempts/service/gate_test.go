package service

import (
	"errors"
	"testing"
	"time"

	"github.com/quizmasterhq/quizmaster/internal/domain/model"
)

func intPtr(v int) *int              { return &v }
func floatPtr(v float64) *float64    { return &v }
func timePtr(v time.Time) *time.Time { return &v }

// TestIsUnlocked_NoPrerequisite квиз без пререквизита всегда открыт.
func TestIsUnlocked_NoPrerequisite(t *testing.T) {
	quiz := model.Quiz{ID: 1}
	if !IsUnlocked(quiz, nil, nil) {
		t.Error("Квиз без пререквизита должен быть открыт")
	}
}

// TestIsUnlocked_MissingPrerequisite пререквизит указан, но не найден:
// квиз остается закрытым.
func TestIsUnlocked_MissingPrerequisite(t *testing.T) {
	quiz := model.Quiz{ID: 2, PrerequisiteQuizID: intPtr(1)}
	if IsUnlocked(quiz, nil, nil) {
		t.Error("Квиз с отсутствующим пререквизитом должен быть закрыт")
	}
}

// TestIsUnlocked_PassingScore квиз открывается только после попытки
// с баллом не ниже проходного балла пререквизита.
func TestIsUnlocked_PassingScore(t *testing.T) {
	prereq := &model.Quiz{ID: 1, PassingScore: 70}
	quiz := model.Quiz{ID: 2, PrerequisiteQuizID: intPtr(1)}

	failed := []model.QuizAttempt{
		{Completed: true, Score: floatPtr(60)},
	}
	if IsUnlocked(quiz, prereq, failed) {
		t.Error("Попытка с баллом 60 при проходном 70 не должна открывать квиз")
	}

	passed := append(failed, model.QuizAttempt{Completed: true, Score: floatPtr(80)})
	if !IsUnlocked(quiz, prereq, passed) {
		t.Error("Попытка с баллом 80 при проходном 70 должна открывать квиз")
	}
}

// TestIsUnlocked_IgnoresIncomplete незавершенные попытки и попытки без балла
// не открывают квиз.
func TestIsUnlocked_IgnoresIncomplete(t *testing.T) {
	prereq := &model.Quiz{ID: 1, PassingScore: 50}
	quiz := model.Quiz{ID: 2, PrerequisiteQuizID: intPtr(1)}

	attempts := []model.QuizAttempt{
		{Completed: false, Score: floatPtr(90)},
		{Completed: true, Score: nil},
	}
	if IsUnlocked(quiz, prereq, attempts) {
		t.Error("Незавершенные попытки и попытки без балла не должны открывать квиз")
	}
}

// TestAttemptsRemaining счетчик оставшихся попыток не уходит в минус.
func TestAttemptsRemaining(t *testing.T) {
	quiz := model.Quiz{MaxAttempts: 2}

	cases := []struct {
		completed int
		want      int
	}{
		{0, 2},
		{1, 1},
		{2, 0},
		{5, 0},
	}
	for _, tc := range cases {
		if got := AttemptsRemaining(quiz, tc.completed); got != tc.want {
			t.Errorf("AttemptsRemaining(%d завершенных): получено %d, ожидалось %d", tc.completed, got, tc.want)
		}
	}
}

// TestIsPastDeadline дедлайн сравнивается строго: ровно в момент дедлайна
// квиз еще доступен.
func TestIsPastDeadline(t *testing.T) {
	now := time.Now()

	if IsPastDeadline(model.Quiz{}, now) {
		t.Error("Квиз без дедлайна не может быть просрочен")
	}

	quiz := model.Quiz{Deadline: timePtr(now)}
	if IsPastDeadline(quiz, now) {
		t.Error("Ровно в момент дедлайна квиз еще доступен")
	}
	if !IsPastDeadline(quiz, now.Add(time.Second)) {
		t.Error("Через секунду после дедлайна квиз должен быть недоступен")
	}
}

// TestCheckAccess_Order причины отказа проверяются в порядке:
// закрыт, дедлайн, попытки.
func TestCheckAccess_Order(t *testing.T) {
	now := time.Now()
	past := timePtr(now.Add(-time.Hour))

	locked := model.Quiz{PrerequisiteQuizID: intPtr(1), Deadline: past, MaxAttempts: 0}
	if err := CheckAccess(locked, nil, nil, 0, now); !errors.Is(err, ErrQuizLocked) {
		t.Errorf("Ожидалась ErrQuizLocked, получено %v", err)
	}

	expired := model.Quiz{Deadline: past, MaxAttempts: 0}
	if err := CheckAccess(expired, nil, nil, 0, now); !errors.Is(err, ErrDeadlinePassed) {
		t.Errorf("Ожидалась ErrDeadlinePassed, получено %v", err)
	}

	exhausted := model.Quiz{MaxAttempts: 1}
	if err := CheckAccess(exhausted, nil, nil, 1, now); !errors.Is(err, ErrAttemptsExhausted) {
		t.Errorf("Ожидалась ErrAttemptsExhausted, получено %v", err)
	}

	open := model.Quiz{MaxAttempts: 1}
	if err := CheckAccess(open, nil, nil, 0, now); err != nil {
		t.Errorf("Доступ к открытому квизу не должен возвращать ошибку, получено %v", err)
	}
}
