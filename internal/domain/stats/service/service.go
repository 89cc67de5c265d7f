package service

import (
	"context"
	"fmt"

	"github.com/quizmasterhq/quizmaster/internal/domain/dto"
	"github.com/quizmasterhq/quizmaster/internal/domain/stats/repository"
	usersService "github.com/quizmasterhq/quizmaster/internal/domain/users/service"
)

// Сколько квизов показывать в топе по числу попыток
const popularQuizzesLimit = 10

// StatsService собирает статистику для дашборда администратора
// и страниц успеваемости
type StatsService struct {
	statsRepo   *repository.StatsRepository
	userService *usersService.UserService
}

// NewStatsService создает новый экземпляр StatsService
func NewStatsService(statsRepo *repository.StatsRepository, userService *usersService.UserService) *StatsService {
	return &StatsService{statsRepo: statsRepo, userService: userService}
}

// Overview возвращает сводную статистику: счетчики, средние по предметам
// и топ квизов по попыткам
func (s *StatsService) Overview(ctx context.Context) (*dto.StatisticsResponse, error) {
	users, subjects, quizzes, questions, err := s.statsRepo.GetCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get counts: %w", err)
	}
	subjectScores, err := s.statsRepo.GetSubjectAverages(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get subject averages: %w", err)
	}
	popular, err := s.statsRepo.GetPopularQuizzes(ctx, popularQuizzesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get popular quizzes: %w", err)
	}

	return &dto.StatisticsResponse{
		UserCount:      users,
		SubjectCount:   subjects,
		QuizCount:      quizzes,
		QuestionCount:  questions,
		SubjectScores:  subjectScores,
		PopularQuizzes: popular,
	}, nil
}

// UserPerformance возвращает успеваемость пользователя: средние по предметам
// и историю завершенных попыток
func (s *StatsService) UserPerformance(ctx context.Context, userID int) (*dto.UserStatisticsResponse, error) {
	user, err := s.userService.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	subjectScores, err := s.statsRepo.GetSubjectAverages(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subject averages: %w", err)
	}
	attempts, err := s.statsRepo.GetUserAttempts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user attempts: %w", err)
	}

	return &dto.UserStatisticsResponse{
		UserID:        user.ID,
		Username:      user.Username,
		SubjectScores: subjectScores,
		Attempts:      attempts,
	}, nil
}
