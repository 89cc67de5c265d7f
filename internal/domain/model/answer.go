package model

import "time"

// UserAnswer представляет ответ пользователя на вопрос в рамках попытки.
// IsCorrect вычисляется в момент записи ответа.
type UserAnswer struct {
	ID             int       `json:"id"`
	AttemptID      int       `json:"attempt_id"`
	QuestionID     int       `json:"question_id"`
	SelectedOption int       `json:"selected_option"`
	IsCorrect      bool      `json:"is_correct"`
	AnsweredAt     time.Time `json:"answered_at"`
}
