package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizmasterhq/quizmaster/internal/domain/model"
)

// UserRepository репозиторий для работы с пользователями
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository создает новый экземпляр UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, username, password_hash, is_admin, age, interests, telegram_id, created_at"

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin,
		&user.Age, &user.Interests, &user.TelegramID, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID получает пользователя по ID, nil если пользователя нет
func (r *UserRepository) GetUserByID(ctx context.Context, userID int) (*model.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns), userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// GetUserByUsername получает пользователя по имени, nil если пользователя нет
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM users WHERE username = $1", userColumns), username))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// GetUserByTelegramID получает пользователя по Telegram ID, nil если привязки нет
func (r *UserRepository) GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM users WHERE telegram_id = $1", userColumns), telegramID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by telegram ID: %w", err)
	}
	return user, nil
}

// CreateUser создает пользователя и возвращает его ID
func (r *UserRepository) CreateUser(ctx context.Context, user model.User) (int, error) {
	var userID int
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, is_admin, age, interests, telegram_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, user.Username, user.PasswordHash, user.IsAdmin, user.Age, user.Interests, user.TelegramID).Scan(&userID)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return userID, nil
}

// UpdateProfile обновляет имя, возраст и интересы пользователя
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int, username string, age *int, interests *string) error {
	_, err := r.db.Exec(ctx,
		"UPDATE users SET username = $2, age = $3, interests = $4 WHERE id = $1",
		userID, username, age, interests)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// LinkTelegram привязывает Telegram ID к пользователю
func (r *UserRepository) LinkTelegram(ctx context.Context, userID int, telegramID int64) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET telegram_id = $2 WHERE id = $1", userID, telegramID)
	if err != nil {
		return fmt.Errorf("failed to link telegram: %w", err)
	}
	return nil
}

// ListLearners получает всех пользователей без прав администратора
func (r *UserRepository) ListLearners(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx,
		fmt.Sprintf("SELECT %s FROM users WHERE is_admin = FALSE ORDER BY id", userColumns))
	if err != nil {
		return nil, fmt.Errorf("failed to query learners: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return users, nil
}

// DeleteUser удаляет пользователя вместе с его попытками и ответами
// в одной транзакции
func (r *UserRepository) DeleteUser(ctx context.Context, userID int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM user_answers
		WHERE attempt_id IN (SELECT id FROM quiz_attempts WHERE user_id = $1)
	`, userID); err != nil {
		return fmt.Errorf("failed to delete answers: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM quiz_attempts WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("failed to delete attempts: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM users WHERE id = $1", userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
