package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizmasterhq/quizmaster/internal/domain/model"
	quizzesRepo "github.com/quizmasterhq/quizmaster/internal/domain/quizzes/repository"
)

// SubjectRepository репозиторий для работы с предметами и главами
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository создает новый экземпляр SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// ListSubjects получает предметы, опционально фильтруя по подстроке имени
func (r *SubjectRepository) ListSubjects(ctx context.Context, search string) ([]model.Subject, error) {
	query := "SELECT id, name, description, created_at FROM subjects ORDER BY id"
	args := []interface{}{}
	if search != "" {
		query = "SELECT id, name, description, created_at FROM subjects WHERE name ILIKE $1 ORDER BY id"
		args = append(args, "%"+search+"%")
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query subjects: %w", err)
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return subjects, nil
}

// GetSubjectByID получает предмет по ID, nil если предмета нет
func (r *SubjectRepository) GetSubjectByID(ctx context.Context, subjectID int) (*model.Subject, error) {
	var s model.Subject
	err := r.db.QueryRow(ctx, "SELECT id, name, description, created_at FROM subjects WHERE id = $1", subjectID).
		Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subject by ID: %w", err)
	}
	return &s, nil
}

// CreateSubject создает предмет и возвращает его ID
func (r *SubjectRepository) CreateSubject(ctx context.Context, name, description string) (int, error) {
	var subjectID int
	err := r.db.QueryRow(ctx,
		"INSERT INTO subjects (name, description) VALUES ($1, $2) RETURNING id",
		name, description).Scan(&subjectID)
	if err != nil {
		return 0, fmt.Errorf("failed to create subject: %w", err)
	}
	return subjectID, nil
}

// UpdateSubject обновляет предмет
func (r *SubjectRepository) UpdateSubject(ctx context.Context, subjectID int, name, description string) error {
	_, err := r.db.Exec(ctx,
		"UPDATE subjects SET name = $2, description = $3 WHERE id = $1",
		subjectID, name, description)
	if err != nil {
		return fmt.Errorf("failed to update subject: %w", err)
	}
	return nil
}

// DeleteSubject удаляет предмет каскадно: все его квизы с вопросами,
// попытками и ответами, затем главы и сам предмет, в одной транзакции
func (r *SubjectRepository) DeleteSubject(ctx context.Context, subjectID int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	quizIDs, err := collectQuizIDs(ctx, tx, "SELECT id FROM quizzes WHERE subject_id = $1", subjectID)
	if err != nil {
		return err
	}
	if err := quizzesRepo.DeleteQuizzesCascade(ctx, tx, quizIDs); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM chapters WHERE subject_id = $1", subjectID); err != nil {
		return fmt.Errorf("failed to delete chapters: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM subjects WHERE id = $1", subjectID); err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListChapters получает главы предмета
func (r *SubjectRepository) ListChapters(ctx context.Context, subjectID int) ([]model.Chapter, error) {
	rows, err := r.db.Query(ctx,
		"SELECT id, subject_id, name, description, created_at FROM chapters WHERE subject_id = $1 ORDER BY id",
		subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chapters: %w", err)
	}
	defer rows.Close()

	var chapters []model.Chapter
	for rows.Next() {
		var c model.Chapter
		if err := rows.Scan(&c.ID, &c.SubjectID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chapter: %w", err)
		}
		chapters = append(chapters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return chapters, nil
}

// GetChapterByID получает главу по ID, nil если главы нет
func (r *SubjectRepository) GetChapterByID(ctx context.Context, chapterID int) (*model.Chapter, error) {
	var c model.Chapter
	err := r.db.QueryRow(ctx,
		"SELECT id, subject_id, name, description, created_at FROM chapters WHERE id = $1", chapterID).
		Scan(&c.ID, &c.SubjectID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chapter by ID: %w", err)
	}
	return &c, nil
}

// CreateChapter создает главу и возвращает ее ID
func (r *SubjectRepository) CreateChapter(ctx context.Context, subjectID int, name, description string) (int, error) {
	var chapterID int
	err := r.db.QueryRow(ctx,
		"INSERT INTO chapters (subject_id, name, description) VALUES ($1, $2, $3) RETURNING id",
		subjectID, name, description).Scan(&chapterID)
	if err != nil {
		return 0, fmt.Errorf("failed to create chapter: %w", err)
	}
	return chapterID, nil
}

// UpdateChapter обновляет главу
func (r *SubjectRepository) UpdateChapter(ctx context.Context, chapterID int, name, description string) error {
	_, err := r.db.Exec(ctx,
		"UPDATE chapters SET name = $2, description = $3 WHERE id = $1",
		chapterID, name, description)
	if err != nil {
		return fmt.Errorf("failed to update chapter: %w", err)
	}
	return nil
}

// DeleteChapter удаляет главу вместе с ее квизами и их зависимостями
func (r *SubjectRepository) DeleteChapter(ctx context.Context, chapterID int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	quizIDs, err := collectQuizIDs(ctx, tx, "SELECT id FROM quizzes WHERE chapter_id = $1", chapterID)
	if err != nil {
		return err
	}
	if err := quizzesRepo.DeleteQuizzesCascade(ctx, tx, quizIDs); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM chapters WHERE id = $1", chapterID); err != nil {
		return fmt.Errorf("failed to delete chapter: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// collectQuizIDs собирает ID квизов по запросу внутри транзакции
func collectQuizIDs(ctx context.Context, tx pgx.Tx, query string, arg interface{}) ([]int, error) {
	rows, err := tx.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz IDs: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan quiz ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return ids, nil
}
