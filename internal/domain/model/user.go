package model

import "time"

// User представляет пользователя: администратора (квиз-мастера) или ученика.
// TelegramID заполняется при привязке аккаунта к Telegram-боту.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	Age          *int      `json:"age,omitempty"`
	Interests    *string   `json:"interests,omitempty"`
	TelegramID   *int64    `json:"telegram_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
