package service

import (
	"context"
	"fmt"
	"time"

	"github.com/quizmasterhq/quizmaster/internal/domain/dto"
	"github.com/quizmasterhq/quizmaster/internal/domain/model"
)

// AttemptService реализует машину состояний попытки: запуск и продолжение,
// запись ответов, ленивую проверку времени и подсчет результата.
// Каждый запрос обрабатывается независимо, состояние попытки живет только в
// хранилище, серверных таймеров нет.
type AttemptService struct {
	store Store
}

// NewAttemptService создает новый экземпляр AttemptService
func NewAttemptService(store Store) *AttemptService {
	return &AttemptService{store: store}
}

// checkAccess загружает данные пререквизита и завершенные попытки
// и прогоняет gate-проверки для пары (пользователь, квиз)
func (s *AttemptService) checkAccess(ctx context.Context, userID int, quiz model.Quiz, now time.Time) error {
	var prerequisite *model.Quiz
	var prereqAttempts []model.QuizAttempt

	if quiz.PrerequisiteQuizID != nil {
		prereq, err := s.store.GetQuizByID(ctx, *quiz.PrerequisiteQuizID)
		if err != nil {
			return fmt.Errorf("failed to get prerequisite quiz: %w", err)
		}
		prerequisite = prereq
		if prereq != nil {
			prereqAttempts, err = s.store.GetCompletedAttempts(ctx, userID, prereq.ID)
			if err != nil {
				return fmt.Errorf("failed to get prerequisite attempts: %w", err)
			}
		}
	}

	completedCount, err := s.store.CountCompletedAttempts(ctx, userID, quiz.ID)
	if err != nil {
		return fmt.Errorf("failed to count completed attempts: %w", err)
	}

	return CheckAccess(quiz, prerequisite, prereqAttempts, completedCount, now)
}

// StartOrResume начинает новую попытку или продолжает незавершенную.
// Сначала проверяется доступ, затем — не истекло ли время попытки, после чего
// отдается первый неотвеченный вопрос. Если неотвеченных вопросов не
// осталось, попытка завершается и фиксируется результат.
func (s *AttemptService) StartOrResume(ctx context.Context, userID, quizID int) (*dto.AttemptState, error) {
	now := time.Now()

	quiz, err := s.store.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz == nil {
		return nil, ErrQuizNotFound
	}

	if err := s.checkAccess(ctx, userID, *quiz, now); err != nil {
		return nil, err
	}

	attempt, err := s.store.GetIncompleteAttempt(ctx, userID, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get incomplete attempt: %w", err)
	}

	if attempt != nil {
		// Ленивая проверка времени: попытка могла истечь между запросами.
		// Результат при этом не считается, он будет вычислен при первом
		// просмотре результата.
		elapsed := now.Sub(attempt.StartedAt)
		if elapsed.Seconds() > float64(quiz.TimeLimit*60) {
			if err := s.store.FinishAttempt(ctx, attempt.ID, now, nil); err != nil {
				return nil, fmt.Errorf("failed to finish expired attempt: %w", err)
			}
			return &dto.AttemptState{
				AttemptID: attempt.ID,
				QuizID:    quiz.ID,
				QuizName:  quiz.Name,
				Finished:  true,
				Expired:   true,
			}, nil
		}
	} else {
		attempt, err = s.store.CreateAttempt(ctx, userID, quizID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to create attempt: %w", err)
		}
	}

	return s.attemptState(ctx, attempt, quiz, now)
}

// attemptState отдает первый неотвеченный вопрос попытки. Если неотвеченных
// вопросов не осталось, попытка завершается и фиксируется результат.
func (s *AttemptService) attemptState(ctx context.Context, attempt *model.QuizAttempt, quiz *model.Quiz, now time.Time) (*dto.AttemptState, error) {
	questions, err := s.store.GetQuizQuestions(ctx, quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz questions: %w", err)
	}
	answers, err := s.store.GetAnswers(ctx, attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get answers: %w", err)
	}

	current := nextQuestion(questions, answers)
	if current == nil {
		// Все вопросы отвечены: завершаем попытку и фиксируем результат
		score := Score(answers)
		if err := s.store.FinishAttempt(ctx, attempt.ID, now, &score); err != nil {
			return nil, fmt.Errorf("failed to finish attempt: %w", err)
		}
		return &dto.AttemptState{
			AttemptID:      attempt.ID,
			QuizID:         quiz.ID,
			QuizName:       quiz.Name,
			Finished:       true,
			TotalQuestions: len(questions),
		}, nil
	}

	remaining := quiz.TimeLimit*60 - int(now.Sub(attempt.StartedAt).Seconds())
	if remaining < 0 {
		remaining = 0
	}

	return &dto.AttemptState{
		AttemptID: attempt.ID,
		QuizID:    quiz.ID,
		QuizName:  quiz.Name,
		Question: &dto.QuestionView{
			ID:      current.ID,
			Text:    current.Text,
			Marks:   current.Marks,
			Options: current.Options(),
		},
		QuestionNumber:   len(answers) + 1,
		TotalQuestions:   len(questions),
		RemainingSeconds: remaining,
	}, nil
}

// SubmitAnswer записывает ответ на вопрос, который сейчас отдается попытке,
// и возвращает обновленное состояние попытки. Ответ на уже завершенную
// попытку, на чужой вопрос или с вариантом вне 1-4 отклоняется. Если время
// попытки истекло, попытка завершается без записи ответа и возвращается
// ErrTimeExpired.
func (s *AttemptService) SubmitAnswer(ctx context.Context, userID, attemptID, questionID, selectedOption int) (*dto.AttemptState, error) {
	now := time.Now()

	attempt, err := s.store.GetAttemptByID(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	if attempt == nil {
		return nil, ErrAttemptNotFound
	}
	if attempt.UserID != userID {
		return nil, ErrAttemptForbidden
	}
	if attempt.Completed {
		return nil, ErrAttemptCompleted
	}
	if selectedOption < 1 || selectedOption > 4 {
		return nil, ErrInvalidOption
	}

	quiz, err := s.store.GetQuizByID(ctx, attempt.QuizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz == nil {
		return nil, ErrQuizNotFound
	}

	if err := s.checkAccess(ctx, userID, *quiz, now); err != nil {
		return nil, err
	}

	elapsed := now.Sub(attempt.StartedAt)
	if elapsed.Seconds() > float64(quiz.TimeLimit*60) {
		if err := s.store.FinishAttempt(ctx, attempt.ID, now, nil); err != nil {
			return nil, fmt.Errorf("failed to finish expired attempt: %w", err)
		}
		return nil, ErrTimeExpired
	}

	questions, err := s.store.GetQuizQuestions(ctx, quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz questions: %w", err)
	}
	answers, err := s.store.GetAnswers(ctx, attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get answers: %w", err)
	}

	current := nextQuestion(questions, answers)
	if current == nil || current.ID != questionID {
		return nil, ErrQuestionNotCurrent
	}

	isCorrect := selectedOption == current.CorrectOption
	if err := s.store.SaveAnswer(ctx, attempt.ID, questionID, selectedOption, isCorrect, now); err != nil {
		return nil, fmt.Errorf("failed to save answer: %w", err)
	}
	return s.attemptState(ctx, attempt, quiz, now)
}

// Result возвращает итог попытки с повопросным разбором. Для попытки,
// завершенной по таймауту без балла, результат досчитывается здесь и после
// этого не пересчитывается.
func (s *AttemptService) Result(ctx context.Context, userID int, isAdmin bool, attemptID int) (*dto.QuizResult, error) {
	now := time.Now()

	attempt, err := s.store.GetAttemptByID(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	if attempt == nil {
		return nil, ErrAttemptNotFound
	}
	if attempt.UserID != userID && !isAdmin {
		return nil, ErrAttemptForbidden
	}

	quiz, err := s.store.GetQuizByID(ctx, attempt.QuizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz == nil {
		return nil, ErrQuizNotFound
	}

	answers, err := s.store.GetAnswers(ctx, attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get answers: %w", err)
	}

	score := 0.0
	if attempt.Score != nil {
		score = *attempt.Score
	} else {
		score = Score(answers)
		if err := s.store.FinishAttempt(ctx, attempt.ID, now, &score); err != nil {
			return nil, fmt.Errorf("failed to store lazy score: %w", err)
		}
		if attempt.CompletedAt == nil {
			attempt.CompletedAt = &now
		}
	}

	questions, err := s.store.GetQuizQuestions(ctx, quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz questions: %w", err)
	}
	questionByID := make(map[int]model.Question, len(questions))
	for _, q := range questions {
		questionByID[q.ID] = q
	}

	reviews := make([]dto.AnswerReview, 0, len(answers))
	for _, a := range answers {
		q := questionByID[a.QuestionID]
		reviews = append(reviews, dto.AnswerReview{
			QuestionID:     a.QuestionID,
			QuestionText:   q.Text,
			SelectedOption: a.SelectedOption,
			CorrectOption:  q.CorrectOption,
			IsCorrect:      a.IsCorrect,
		})
	}

	return &dto.QuizResult{
		AttemptID:   attempt.ID,
		UserID:      attempt.UserID,
		QuizID:      quiz.ID,
		QuizName:    quiz.Name,
		Score:       score,
		StartedAt:   attempt.StartedAt,
		CompletedAt: attempt.CompletedAt,
		Answers:     reviews,
	}, nil
}

// ListQuizAccess возвращает квизы предмета в порядке (sequence_number, id)
// вместе с правами доступа пользователя к каждому из них
func (s *AttemptService) ListQuizAccess(ctx context.Context, userID, subjectID int) ([]dto.QuizAccess, error) {
	now := time.Now()

	quizzes, err := s.store.GetQuizzesBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subject quizzes: %w", err)
	}

	access := make([]dto.QuizAccess, 0, len(quizzes))
	for _, quiz := range quizzes {
		var prerequisite *model.Quiz
		var prereqAttempts []model.QuizAttempt
		if quiz.PrerequisiteQuizID != nil {
			prerequisite, err = s.store.GetQuizByID(ctx, *quiz.PrerequisiteQuizID)
			if err != nil {
				return nil, fmt.Errorf("failed to get prerequisite quiz: %w", err)
			}
			if prerequisite != nil {
				prereqAttempts, err = s.store.GetCompletedAttempts(ctx, userID, prerequisite.ID)
				if err != nil {
					return nil, fmt.Errorf("failed to get prerequisite attempts: %w", err)
				}
			}
		}
		completedCount, err := s.store.CountCompletedAttempts(ctx, userID, quiz.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count completed attempts: %w", err)
		}

		unlocked := IsUnlocked(quiz, prerequisite, prereqAttempts)
		remaining := AttemptsRemaining(quiz, completedCount)
		pastDeadline := IsPastDeadline(quiz, now)

		access = append(access, dto.QuizAccess{
			Quiz:              quiz,
			Unlocked:          unlocked,
			AttemptsRemaining: remaining,
			PastDeadline:      pastDeadline,
			CanAttempt:        unlocked && remaining > 0 && !pastDeadline,
		})
	}
	return access, nil
}

// nextQuestion возвращает первый вопрос квиза, на который в попытке еще нет
// ответа. Указатель на текущий вопрос нигде не хранится и каждый раз
// выводится заново из списка записанных ответов.
func nextQuestion(questions []model.Question, answers []model.UserAnswer) *model.Question {
	answered := make(map[int]bool, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = true
	}
	for i := range questions {
		if !answered[questions[i].ID] {
			return &questions[i]
		}
	}
	return nil
}
