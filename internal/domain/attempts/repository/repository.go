package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizmasterhq/quizmaster/internal/domain/model"
)

// AttemptRepository репозиторий для работы с попытками и ответами
type AttemptRepository struct {
	db *pgxpool.Pool
}

// NewAttemptRepository создает новый экземпляр AttemptRepository
func NewAttemptRepository(db *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{db: db}
}

const quizColumns = `id, subject_id, chapter_id, name, description, sequence_number,
	       time_limit, max_attempts, passing_score, deadline, prerequisite_quiz_id, created_at`

func scanQuiz(row pgx.Row) (*model.Quiz, error) {
	var quiz model.Quiz
	err := row.Scan(
		&quiz.ID, &quiz.SubjectID, &quiz.ChapterID, &quiz.Name, &quiz.Description,
		&quiz.SequenceNumber, &quiz.TimeLimit, &quiz.MaxAttempts, &quiz.PassingScore,
		&quiz.Deadline, &quiz.PrerequisiteQuizID, &quiz.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// GetQuizByID получает квиз по ID, nil если квиза нет
func (r *AttemptRepository) GetQuizByID(ctx context.Context, quizID int) (*model.Quiz, error) {
	query := fmt.Sprintf("SELECT %s FROM quizzes WHERE id = $1", quizColumns)
	quiz, err := scanQuiz(r.db.QueryRow(ctx, query, quizID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID: %w", err)
	}
	return quiz, nil
}

// GetQuizzesBySubject получает квизы предмета в порядке (sequence_number, id)
func (r *AttemptRepository) GetQuizzesBySubject(ctx context.Context, subjectID int) ([]model.Quiz, error) {
	query := fmt.Sprintf("SELECT %s FROM quizzes WHERE subject_id = $1 ORDER BY sequence_number, id", quizColumns)
	rows, err := r.db.Query(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subject quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		quizzes = append(quizzes, *quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return quizzes, nil
}

// GetQuizQuestions получает вопросы квиза в порядке их создания
func (r *AttemptRepository) GetQuizQuestions(ctx context.Context, quizID int) ([]model.Question, error) {
	query := `
		SELECT id, quiz_id, text, marks, option1, option2, option3, option4, correct_option, created_at
		FROM questions
		WHERE quiz_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Text, &q.Marks, &q.Option1, &q.Option2,
			&q.Option3, &q.Option4, &q.CorrectOption, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return questions, nil
}

// GetIncompleteAttempt получает незавершенную попытку пользователя по квизу,
// nil если такой нет
func (r *AttemptRepository) GetIncompleteAttempt(ctx context.Context, userID, quizID int) (*model.QuizAttempt, error) {
	query := `
		SELECT id, user_id, quiz_id, score, completed, started_at, completed_at
		FROM quiz_attempts
		WHERE user_id = $1 AND quiz_id = $2 AND completed = FALSE
	`
	var attempt model.QuizAttempt
	err := r.db.QueryRow(ctx, query, userID, quizID).Scan(
		&attempt.ID, &attempt.UserID, &attempt.QuizID, &attempt.Score,
		&attempt.Completed, &attempt.StartedAt, &attempt.CompletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incomplete attempt: %w", err)
	}
	return &attempt, nil
}

// GetAttemptByID получает попытку по ID, nil если попытки нет
func (r *AttemptRepository) GetAttemptByID(ctx context.Context, attemptID int) (*model.QuizAttempt, error) {
	query := `
		SELECT id, user_id, quiz_id, score, completed, started_at, completed_at
		FROM quiz_attempts
		WHERE id = $1
	`
	var attempt model.QuizAttempt
	err := r.db.QueryRow(ctx, query, attemptID).Scan(
		&attempt.ID, &attempt.UserID, &attempt.QuizID, &attempt.Score,
		&attempt.Completed, &attempt.StartedAt, &attempt.CompletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attempt by ID: %w", err)
	}
	return &attempt, nil
}

// GetCompletedAttempts получает завершенные попытки пользователя по квизу
func (r *AttemptRepository) GetCompletedAttempts(ctx context.Context, userID, quizID int) ([]model.QuizAttempt, error) {
	query := `
		SELECT id, user_id, quiz_id, score, completed, started_at, completed_at
		FROM quiz_attempts
		WHERE user_id = $1 AND quiz_id = $2 AND completed = TRUE
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, userID, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed attempts: %w", err)
	}
	defer rows.Close()

	var attempts []model.QuizAttempt
	for rows.Next() {
		var a model.QuizAttempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuizID, &a.Score, &a.Completed,
			&a.StartedAt, &a.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return attempts, nil
}

// CountCompletedAttempts возвращает число завершенных попыток пользователя по квизу
func (r *AttemptRepository) CountCompletedAttempts(ctx context.Context, userID, quizID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM quiz_attempts WHERE user_id = $1 AND quiz_id = $2 AND completed = TRUE",
		userID, quizID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed attempts: %w", err)
	}
	return count, nil
}

// CreateAttempt создает новую незавершенную попытку
func (r *AttemptRepository) CreateAttempt(ctx context.Context, userID, quizID int, startedAt time.Time) (*model.QuizAttempt, error) {
	var attemptID int
	err := r.db.QueryRow(ctx, `
		INSERT INTO quiz_attempts (user_id, quiz_id, completed, started_at)
		VALUES ($1, $2, FALSE, $3)
		RETURNING id
	`, userID, quizID, startedAt).Scan(&attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}
	return &model.QuizAttempt{
		ID:        attemptID,
		UserID:    userID,
		QuizID:    quizID,
		StartedAt: startedAt,
	}, nil
}

// FinishAttempt завершает попытку. Score может быть nil: попытка, закрытая по
// таймауту, получает балл лениво при первом просмотре результата.
func (r *AttemptRepository) FinishAttempt(ctx context.Context, attemptID int, completedAt time.Time, score *float64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE quiz_attempts
		SET completed = TRUE, completed_at = COALESCE(completed_at, $2), score = COALESCE(score, $3)
		WHERE id = $1
	`, attemptID, completedAt, score)
	if err != nil {
		return fmt.Errorf("failed to finish attempt: %w", err)
	}
	return nil
}

// GetAnswers получает ответы попытки в порядке их записи
func (r *AttemptRepository) GetAnswers(ctx context.Context, attemptID int) ([]model.UserAnswer, error) {
	query := `
		SELECT id, attempt_id, question_id, selected_option, is_correct, answered_at
		FROM user_answers
		WHERE attempt_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	var answers []model.UserAnswer
	for rows.Next() {
		var a model.UserAnswer
		if err := rows.Scan(&a.ID, &a.AttemptID, &a.QuestionID, &a.SelectedOption,
			&a.IsCorrect, &a.AnsweredAt); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return answers, nil
}

// SaveAnswer записывает ответ на вопрос. Уникальность пары
// (attempt_id, question_id) дополнительно гарантируется ограничением в схеме.
func (r *AttemptRepository) SaveAnswer(ctx context.Context, attemptID, questionID, selectedOption int, isCorrect bool, answeredAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_answers (attempt_id, question_id, selected_option, is_correct, answered_at)
		VALUES ($1, $2, $3, $4, $5)
	`, attemptID, questionID, selectedOption, isCorrect, answeredAt)
	if err != nil {
		return fmt.Errorf("failed to save answer: %w", err)
	}
	return nil
}
