package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadConfig загрузка конфигурации из yaml-файла.
func TestLoadConfig(t *testing.T) {
	raw := `
server:
  host: "127.0.0.1"
  port: "9090"
database:
  host: "db"
  port: "5432"
  user: "quiz"
  password: "secret"
  dbname: "quizmaster"
auth:
  jwt_secret: "test-secret"
  token_ttl_minutes: 60
telegram_bot:
  enabled: true
  token: "bot-token"
`
	path := filepath.Join(t.TempDir(), "values.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("Не удалось записать файл конфигурации: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig вернул ошибку: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Ожидался порт 9090, получено %q", cfg.Server.Port)
	}
	if cfg.Database.Name != "quizmaster" {
		t.Errorf("Ожидалась база quizmaster, получено %q", cfg.Database.Name)
	}
	if cfg.Auth.TokenTTLMinutes != 60 {
		t.Errorf("Ожидался TTL 60 минут, получено %d", cfg.Auth.TokenTTLMinutes)
	}
	if !cfg.TelegramBot.Enabled {
		t.Error("Бот должен быть включен")
	}
}

// TestLoadConfig_DefaultTTL не указанный TTL токена получает значение
// по умолчанию.
func TestLoadConfig_DefaultTTL(t *testing.T) {
	raw := `
auth:
  jwt_secret: "test-secret"
`
	path := filepath.Join(t.TempDir(), "values.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("Не удалось записать файл конфигурации: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig вернул ошибку: %v", err)
	}
	if cfg.Auth.TokenTTLMinutes != 720 {
		t.Errorf("Ожидался TTL по умолчанию 720 минут, получено %d", cfg.Auth.TokenTTLMinutes)
	}
}

// TestLoadConfig_MissingFile отсутствующий файл возвращает ошибку.
func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Ожидалась ошибка для отсутствующего файла")
	}
}
