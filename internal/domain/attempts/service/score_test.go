package service

import (
	"testing"

	"github.com/quizmasterhq/quizmaster/internal/domain/model"
)

// TestScore балл считается как процент правильных ответов от числа
// записанных ответов. Вес вопросов на балл не влияет.
func TestScore(t *testing.T) {
	cases := []struct {
		name    string
		correct int
		wrong   int
		want    float64
	}{
		{"пустая попытка", 0, 0, 0.0},
		{"все правильные", 4, 0, 100.0},
		{"все неправильные", 0, 4, 0.0},
		{"три из четырех", 3, 1, 75.0},
		{"один из трех", 1, 2, 100.0 / 3.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var answers []model.UserAnswer
			for i := 0; i < tc.correct; i++ {
				answers = append(answers, model.UserAnswer{IsCorrect: true})
			}
			for i := 0; i < tc.wrong; i++ {
				answers = append(answers, model.UserAnswer{IsCorrect: false})
			}

			if got := Score(answers); got != tc.want {
				t.Errorf("Score: получено %v, ожидалось %v", got, tc.want)
			}
		})
	}
}
