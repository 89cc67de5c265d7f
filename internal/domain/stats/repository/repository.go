package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizmasterhq/quizmaster/internal/domain/dto"
)

// StatsRepository репозиторий для агрегатных запросов статистики
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository создает новый экземпляр StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetCounts возвращает базовые счетчики: ученики, предметы, квизы, вопросы
func (r *StatsRepository) GetCounts(ctx context.Context) (users, subjects, quizzes, questions int, err error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE is_admin = FALSE),
			(SELECT COUNT(*) FROM subjects),
			(SELECT COUNT(*) FROM quizzes),
			(SELECT COUNT(*) FROM questions)
	`
	if err = r.db.QueryRow(ctx, query).Scan(&users, &subjects, &quizzes, &questions); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to get counts: %w", err)
	}
	return users, subjects, quizzes, questions, nil
}

// GetSubjectAverages возвращает средний балл завершенных попыток по предметам.
// Если userID больше нуля, учитываются только попытки этого пользователя.
func (r *StatsRepository) GetSubjectAverages(ctx context.Context, userID int) ([]dto.SubjectScore, error) {
	query := `
		SELECT s.name, COALESCE(AVG(a.score), 0)
		FROM subjects s
		JOIN quizzes q ON q.subject_id = s.id
		JOIN quiz_attempts a ON a.quiz_id = q.id
		WHERE a.completed = TRUE AND a.score IS NOT NULL
		  AND ($1 = 0 OR a.user_id = $1)
		GROUP BY s.name
		ORDER BY s.name
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subject averages: %w", err)
	}
	defer rows.Close()

	var stats []dto.SubjectScore
	for rows.Next() {
		var s dto.SubjectScore
		if err := rows.Scan(&s.SubjectName, &s.AverageScore); err != nil {
			return nil, fmt.Errorf("failed to scan subject average: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return stats, nil
}

// GetPopularQuizzes возвращает топ квизов по числу попыток
func (r *StatsRepository) GetPopularQuizzes(ctx context.Context, limit int) ([]dto.PopularQuiz, error) {
	query := `
		SELECT q.name, COUNT(a.id), COALESCE(AVG(a.score), 0)
		FROM quizzes q
		JOIN quiz_attempts a ON a.quiz_id = q.id
		GROUP BY q.name
		ORDER BY COUNT(a.id) DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query popular quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []dto.PopularQuiz
	for rows.Next() {
		var q dto.PopularQuiz
		if err := rows.Scan(&q.QuizName, &q.AttemptCount, &q.AverageScore); err != nil {
			return nil, fmt.Errorf("failed to scan popular quiz: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return quizzes, nil
}

// GetUserAttempts возвращает завершенные попытки пользователя,
// последние первыми
func (r *StatsRepository) GetUserAttempts(ctx context.Context, userID int) ([]dto.AttemptSummary, error) {
	query := `
		SELECT q.name, s.name, COALESCE(a.score, 0), a.completed_at
		FROM quiz_attempts a
		JOIN quizzes q ON a.quiz_id = q.id
		JOIN subjects s ON q.subject_id = s.id
		WHERE a.user_id = $1 AND a.completed = TRUE AND a.completed_at IS NOT NULL
		ORDER BY a.completed_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user attempts: %w", err)
	}
	defer rows.Close()

	var attempts []dto.AttemptSummary
	for rows.Next() {
		var a dto.AttemptSummary
		if err := rows.Scan(&a.QuizName, &a.SubjectName, &a.Score, &a.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attempt summary: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return attempts, nil
}
