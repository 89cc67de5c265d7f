package app

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizmasterhq/quizmaster/internal/infra/config"
)

// Схема создается при старте, если таблиц еще нет. Каскадных внешних ключей
// нет намеренно: связанные записи удаляются явными транзакциями в
// репозиториях.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL DEFAULT '',
    is_admin BOOLEAN NOT NULL DEFAULT FALSE,
    age INT,
    interests TEXT,
    telegram_id BIGINT UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS subjects (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS chapters (
    id SERIAL PRIMARY KEY,
    subject_id INT NOT NULL REFERENCES subjects (id),
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS quizzes (
    id SERIAL PRIMARY KEY,
    subject_id INT NOT NULL REFERENCES subjects (id),
    chapter_id INT REFERENCES chapters (id),
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    sequence_number INT NOT NULL DEFAULT 0,
    time_limit INT NOT NULL,
    max_attempts INT NOT NULL DEFAULT 1,
    passing_score DOUBLE PRECISION NOT NULL DEFAULT 0,
    deadline TIMESTAMPTZ,
    prerequisite_quiz_id INT REFERENCES quizzes (id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS questions (
    id SERIAL PRIMARY KEY,
    quiz_id INT NOT NULL REFERENCES quizzes (id),
    text TEXT NOT NULL,
    marks INT NOT NULL DEFAULT 1,
    option1 TEXT NOT NULL,
    option2 TEXT NOT NULL,
    option3 TEXT NOT NULL,
    option4 TEXT NOT NULL,
    correct_option INT NOT NULL CHECK (correct_option BETWEEN 1 AND 4),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS quiz_attempts (
    id SERIAL PRIMARY KEY,
    user_id INT NOT NULL REFERENCES users (id),
    quiz_id INT NOT NULL REFERENCES quizzes (id),
    score DOUBLE PRECISION,
    completed BOOLEAN NOT NULL DEFAULT FALSE,
    started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    completed_at TIMESTAMPTZ
);

-- У пары (пользователь, квиз) может быть только одна незавершенная попытка
CREATE UNIQUE INDEX IF NOT EXISTS quiz_attempts_active_idx
    ON quiz_attempts (user_id, quiz_id) WHERE NOT completed;

CREATE TABLE IF NOT EXISTS user_answers (
    id SERIAL PRIMARY KEY,
    attempt_id INT NOT NULL REFERENCES quiz_attempts (id),
    question_id INT NOT NULL REFERENCES questions (id),
    selected_option INT NOT NULL CHECK (selected_option BETWEEN 1 AND 4),
    is_correct BOOLEAN NOT NULL,
    answered_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (attempt_id, question_id)
);
`

// InitDatabase устанавливает подключение к базе данных
func InitDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	const op = "app.InitDatabase"

	connConfig, err := pgxpool.ParseConfig(fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse database config: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(context.Background(), connConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create database pool: %w", op, err)
	}

	if err := db.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	if _, err := db.Exec(context.Background(), schema); err != nil {
		return nil, fmt.Errorf("%s: failed to bootstrap schema: %w", op, err)
	}

	log.Println("Database connected successfully!")
	return db, nil
}
