package service

import "github.com/quizmasterhq/quizmaster/internal/domain/model"

// Score вычисляет результат попытки как процент правильных ответов среди
// записанных. Вес вопроса (marks) намеренно не учитывается. Для попытки без
// ответов результат равен 0.0.
func Score(answers []model.UserAnswer) float64 {
	if len(answers) == 0 {
		return 0.0
	}
	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
	}
	return 100 * float64(correct) / float64(len(answers))
}
