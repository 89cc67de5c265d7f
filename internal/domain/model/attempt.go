package model

import "time"

// QuizAttempt представляет одно прохождение квиза пользователем.
// Score равен nil, пока попытка не завершена; после записи не меняется.
type QuizAttempt struct {
	ID          int        `json:"id"`
	UserID      int        `json:"user_id"`
	QuizID      int        `json:"quiz_id"`
	Score       *float64   `json:"score,omitempty"`
	Completed   bool       `json:"completed"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
