package service

import (
	"context"
	"time"

	"github.com/quizmasterhq/quizmaster/internal/domain/model"
)

// Store описывает доступ к хранилищу, необходимый машине состояний попытки.
// Методы Get* возвращают nil, nil, если запись не найдена.
type Store interface {
	GetQuizByID(ctx context.Context, quizID int) (*model.Quiz, error)
	GetQuizzesBySubject(ctx context.Context, subjectID int) ([]model.Quiz, error)
	GetQuizQuestions(ctx context.Context, quizID int) ([]model.Question, error)
	GetIncompleteAttempt(ctx context.Context, userID, quizID int) (*model.QuizAttempt, error)
	GetAttemptByID(ctx context.Context, attemptID int) (*model.QuizAttempt, error)
	GetCompletedAttempts(ctx context.Context, userID, quizID int) ([]model.QuizAttempt, error)
	CountCompletedAttempts(ctx context.Context, userID, quizID int) (int, error)
	CreateAttempt(ctx context.Context, userID, quizID int, startedAt time.Time) (*model.QuizAttempt, error)
	FinishAttempt(ctx context.Context, attemptID int, completedAt time.Time, score *float64) error
	GetAnswers(ctx context.Context, attemptID int) ([]model.UserAnswer, error)
	SaveAnswer(ctx context.Context, attemptID, questionID, selectedOption int, isCorrect bool, answeredAt time.Time) error
}
