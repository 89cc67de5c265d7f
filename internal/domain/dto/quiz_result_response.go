package dto

import "time"

// AnswerReview представляет разбор одного ответа в результате попытки
type AnswerReview struct {
	QuestionID     int    `json:"question_id"`
	QuestionText   string `json:"question_text"`
	SelectedOption int    `json:"selected_option"`
	CorrectOption  int    `json:"correct_option"`
	IsCorrect      bool   `json:"is_correct"`
}

// QuizResult представляет итог попытки: балл и повопросный разбор
type QuizResult struct {
	AttemptID   int            `json:"attempt_id"`
	UserID      int            `json:"user_id"`
	QuizID      int            `json:"quiz_id"`
	QuizName    string         `json:"quiz_name"`
	Score       float64        `json:"score"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Answers     []AnswerReview `json:"answers"`
}
