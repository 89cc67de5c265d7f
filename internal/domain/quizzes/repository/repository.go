package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizmasterhq/quizmaster/internal/domain/model"
)

// QuizRepository репозиторий для администрирования квизов и вопросов
type QuizRepository struct {
	db *pgxpool.Pool
}

// NewQuizRepository создает новый экземпляр QuizRepository
func NewQuizRepository(db *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{db: db}
}

// SubjectExists проверяет существование предмета
func (r *QuizRepository) SubjectExists(ctx context.Context, subjectID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM subjects WHERE id = $1)", subjectID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check subject existence: %w", err)
	}
	return exists, nil
}

// ChapterBelongsToSubject проверяет, что глава принадлежит предмету
func (r *QuizRepository) ChapterBelongsToSubject(ctx context.Context, chapterID, subjectID int) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM chapters WHERE id = $1 AND subject_id = $2)",
		chapterID, subjectID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("failed to check chapter: %w", err)
	}
	return ok, nil
}

// GetQuizByID получает квиз по ID, nil если квиза нет
func (r *QuizRepository) GetQuizByID(ctx context.Context, quizID int) (*model.Quiz, error) {
	query := `
		SELECT id, subject_id, chapter_id, name, description, sequence_number,
		       time_limit, max_attempts, passing_score, deadline, prerequisite_quiz_id, created_at
		FROM quizzes
		WHERE id = $1
	`
	var quiz model.Quiz
	err := r.db.QueryRow(ctx, query, quizID).Scan(
		&quiz.ID, &quiz.SubjectID, &quiz.ChapterID, &quiz.Name, &quiz.Description,
		&quiz.SequenceNumber, &quiz.TimeLimit, &quiz.MaxAttempts, &quiz.PassingScore,
		&quiz.Deadline, &quiz.PrerequisiteQuizID, &quiz.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID: %w", err)
	}
	return &quiz, nil
}

// GetQuizzesBySubject получает квизы предмета в порядке (sequence_number, id)
func (r *QuizRepository) GetQuizzesBySubject(ctx context.Context, subjectID int) ([]model.Quiz, error) {
	query := `
		SELECT id, subject_id, chapter_id, name, description, sequence_number,
		       time_limit, max_attempts, passing_score, deadline, prerequisite_quiz_id, created_at
		FROM quizzes
		WHERE subject_id = $1
		ORDER BY sequence_number, id
	`
	rows, err := r.db.Query(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		var quiz model.Quiz
		if err := rows.Scan(&quiz.ID, &quiz.SubjectID, &quiz.ChapterID, &quiz.Name, &quiz.Description,
			&quiz.SequenceNumber, &quiz.TimeLimit, &quiz.MaxAttempts, &quiz.PassingScore,
			&quiz.Deadline, &quiz.PrerequisiteQuizID, &quiz.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return quizzes, nil
}

// CreateQuiz создает квиз и возвращает его ID
func (r *QuizRepository) CreateQuiz(ctx context.Context, quiz model.Quiz) (int, error) {
	var quizID int
	err := r.db.QueryRow(ctx, `
		INSERT INTO quizzes (subject_id, chapter_id, name, description, sequence_number,
		                     time_limit, max_attempts, passing_score, deadline, prerequisite_quiz_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, quiz.SubjectID, quiz.ChapterID, quiz.Name, quiz.Description, quiz.SequenceNumber,
		quiz.TimeLimit, quiz.MaxAttempts, quiz.PassingScore, quiz.Deadline, quiz.PrerequisiteQuizID).Scan(&quizID)
	if err != nil {
		return 0, fmt.Errorf("failed to create quiz: %w", err)
	}
	return quizID, nil
}

// UpdateQuiz обновляет квиз
func (r *QuizRepository) UpdateQuiz(ctx context.Context, quiz model.Quiz) error {
	_, err := r.db.Exec(ctx, `
		UPDATE quizzes
		SET chapter_id = $2, name = $3, description = $4, sequence_number = $5,
		    time_limit = $6, max_attempts = $7, passing_score = $8, deadline = $9,
		    prerequisite_quiz_id = $10
		WHERE id = $1
	`, quiz.ID, quiz.ChapterID, quiz.Name, quiz.Description, quiz.SequenceNumber,
		quiz.TimeLimit, quiz.MaxAttempts, quiz.PassingScore, quiz.Deadline, quiz.PrerequisiteQuizID)
	if err != nil {
		return fmt.Errorf("failed to update quiz: %w", err)
	}
	return nil
}

// DeleteQuiz удаляет квиз вместе с вопросами, попытками и ответами в одной
// транзакции. Ссылки на квиз как на пререквизит обнуляются.
func (r *QuizRepository) DeleteQuiz(ctx context.Context, quizID int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := deleteQuizCascade(ctx, tx, quizID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// deleteQuizCascade удаляет квиз и все зависимые записи внутри транзакции.
// Используется также при каскадном удалении предмета и главы.
func deleteQuizCascade(ctx context.Context, tx pgx.Tx, quizID int) error {
	if _, err := tx.Exec(ctx, `
		DELETE FROM user_answers
		WHERE attempt_id IN (SELECT id FROM quiz_attempts WHERE quiz_id = $1)
	`, quizID); err != nil {
		return fmt.Errorf("failed to delete answers: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM quiz_attempts WHERE quiz_id = $1", quizID); err != nil {
		return fmt.Errorf("failed to delete attempts: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM questions WHERE quiz_id = $1", quizID); err != nil {
		return fmt.Errorf("failed to delete questions: %w", err)
	}
	if _, err := tx.Exec(ctx, "UPDATE quizzes SET prerequisite_quiz_id = NULL WHERE prerequisite_quiz_id = $1", quizID); err != nil {
		return fmt.Errorf("failed to clear prerequisite references: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM quizzes WHERE id = $1", quizID); err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}
	return nil
}

// DeleteQuizzesCascade удаляет переданные квизы со всеми зависимостями.
// Вызывается из каскадного удаления предмета и главы.
func DeleteQuizzesCascade(ctx context.Context, tx pgx.Tx, quizIDs []int) error {
	for _, quizID := range quizIDs {
		if err := deleteQuizCascade(ctx, tx, quizID); err != nil {
			return err
		}
	}
	return nil
}

// GetQuestionByID получает вопрос по ID, nil если вопроса нет
func (r *QuizRepository) GetQuestionByID(ctx context.Context, questionID int) (*model.Question, error) {
	query := `
		SELECT id, quiz_id, text, marks, option1, option2, option3, option4, correct_option, created_at
		FROM questions
		WHERE id = $1
	`
	var q model.Question
	err := r.db.QueryRow(ctx, query, questionID).Scan(
		&q.ID, &q.QuizID, &q.Text, &q.Marks, &q.Option1, &q.Option2,
		&q.Option3, &q.Option4, &q.CorrectOption, &q.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID: %w", err)
	}
	return &q, nil
}

// GetQuizQuestions получает вопросы квиза в порядке создания
func (r *QuizRepository) GetQuizQuestions(ctx context.Context, quizID int) ([]model.Question, error) {
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

// CreateQuestion создает вопрос и возвращает его ID
func (r *QuizRepository) CreateQuestion(ctx context.Context, question model.Question) (int, error) {
	var questionID int
	err := r.db.QueryRow(ctx, `
		INSERT INTO questions (quiz_id, text, marks, option1, option2, option3, option4, correct_option)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, question.QuizID, question.Text, question.Marks, question.Option1, question.Option2,
		question.Option3, question.Option4, question.CorrectOption).Scan(&questionID)
	if err != nil {
		return 0, fmt.Errorf("failed to create question: %w", err)
	}
	return questionID, nil
}

// UpdateQuestion обновляет вопрос
func (r *QuizRepository) UpdateQuestion(ctx context.Context, question model.Question) error {
	_, err := r.db.Exec(ctx, `
		UPDATE questions
		SET text = $2, marks = $3, option1 = $4, option2 = $5, option3 = $6, option4 = $7, correct_option = $8
		WHERE id = $1
	`, question.ID, question.Text, question.Marks, question.Option1, question.Option2,
		question.Option3, question.Option4, question.CorrectOption)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	return nil
}

// DeleteQuestion удаляет вопрос вместе с ответами на него
func (r *QuizRepository) DeleteQuestion(ctx context.Context, questionID int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM user_answers WHERE question_id = $1", questionID); err != nil {
		return fmt.Errorf("failed to delete answers: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM questions WHERE id = $1", questionID); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
