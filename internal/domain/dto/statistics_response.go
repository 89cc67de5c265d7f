package dto

import "time"

// SubjectScore представляет средний балл по предмету
type SubjectScore struct {
	SubjectName  string  `json:"subject_name"`
	AverageScore float64 `json:"average_score"`
}

// PopularQuiz представляет квиз в топе по числу попыток
type PopularQuiz struct {
	QuizName     string  `json:"quiz_name"`
	AttemptCount int     `json:"attempt_count"`
	AverageScore float64 `json:"average_score"`
}

// AttemptSummary представляет завершенную попытку в истории пользователя
type AttemptSummary struct {
	QuizName    string     `json:"quiz_name"`
	SubjectName string     `json:"subject_name"`
	Score       float64    `json:"score"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// StatisticsResponse представляет сводную статистику для дашборда администратора
type StatisticsResponse struct {
	UserCount      int            `json:"user_count"`
	SubjectCount   int            `json:"subject_count"`
	QuizCount      int            `json:"quiz_count"`
	QuestionCount  int            `json:"question_count"`
	SubjectScores  []SubjectScore `json:"subject_scores"`
	PopularQuizzes []PopularQuiz  `json:"popular_quizzes"`
}

// UserStatisticsResponse представляет успеваемость конкретного пользователя
type UserStatisticsResponse struct {
	UserID        int              `json:"user_id"`
	Username      string           `json:"username"`
	SubjectScores []SubjectScore   `json:"subject_scores"`
	Attempts      []AttemptSummary `json:"attempts"`
}
