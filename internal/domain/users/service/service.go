package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/quizmasterhq/quizmaster/internal/domain/model"
	"github.com/quizmasterhq/quizmaster/internal/domain/users/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSelfDelete         = errors.New("cannot delete your own account")
)

// UserService для регистрации, аутентификации и управления пользователями
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService создает новый экземпляр UserService
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register регистрирует ученика. Пароль хранится только в виде bcrypt-хэша.
func (s *UserService) Register(ctx context.Context, username, password string, age *int, interests *string) (*model.User, error) {
	existing, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.userRepo.CreateUser(ctx, model.User{
		Username:     username,
		PasswordHash: string(hash),
		Age:          age,
		Interests:    interests,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return s.GetUser(ctx, userID)
}

// Authenticate проверяет пару логин-пароль и возвращает пользователя.
// Пустой хэш означает аккаунт, созданный через Telegram без пароля:
// вход по паролю для него закрыт.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser получает пользователя по ID
func (s *UserService) GetUser(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile обновляет профиль пользователя
func (s *UserService) UpdateProfile(ctx context.Context, userID int, username string, age *int, interests *string) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if username != user.Username {
		existing, err := s.userRepo.GetUserByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if existing != nil {
			return ErrUsernameTaken
		}
	}
	if err := s.userRepo.UpdateProfile(ctx, userID, username, age, interests); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// ListLearners получает всех пользователей без прав администратора
func (s *UserService) ListLearners(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.ListLearners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list learners: %w", err)
	}
	return users, nil
}

// DeleteUser удаляет пользователя со всеми его попытками. Удаление
// собственного аккаунта администратора запрещено.
func (s *UserService) DeleteUser(ctx context.Context, currentUserID, userID int) error {
	if currentUserID == userID {
		return ErrSelfDelete
	}
	if _, err := s.GetUser(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// EnsureTelegramUser находит пользователя по Telegram ID или создает нового
// ученика с именем из Telegram. Аккаунт без пароля не может входить через
// веб-портал, пока пароль не будет установлен.
func (s *UserService) EnsureTelegramUser(ctx context.Context, telegramID int64, telegramUsername string) (*model.User, error) {
	user, err := s.userRepo.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by telegram ID: %w", err)
	}
	if user != nil {
		return user, nil
	}

	// Если веб-аккаунт с таким именем уже есть, привязываем Telegram к нему
	username := fmt.Sprintf("tg_%d", telegramID)
	if telegramUsername != "" {
		existing, err := s.userRepo.GetUserByUsername(ctx, telegramUsername)
		if err != nil {
			return nil, fmt.Errorf("failed to get user by username: %w", err)
		}
		if existing != nil && existing.TelegramID == nil && !existing.IsAdmin {
			if err := s.userRepo.LinkTelegram(ctx, existing.ID, telegramID); err != nil {
				return nil, err
			}
			existing.TelegramID = &telegramID
			return existing, nil
		}
		if existing == nil {
			username = telegramUsername
		}
	}
	userID, err := s.userRepo.CreateUser(ctx, model.User{
		Username:   username,
		TelegramID: &telegramID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram user: %w", err)
	}
	return s.GetUser(ctx, userID)
}
