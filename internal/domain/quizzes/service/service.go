package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quizmasterhq/quizmaster/internal/domain/model"
)

// Ошибки валидации квизов и вопросов
var (
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrChapterMismatch      = errors.New("chapter does not belong to the subject")
	ErrInvalidTimeLimit     = errors.New("time limit must be positive")
	ErrInvalidMaxAttempts   = errors.New("max attempts must be at least 1")
	ErrInvalidPassingScore  = errors.New("passing score must be between 0 and 100")
	ErrInvalidCorrectOption = errors.New("correct option must be between 1 and 4")
	ErrEmptyOption          = errors.New("all four options must be filled in")
	ErrPrerequisiteNotFound = errors.New("prerequisite quiz not found")
	ErrPrerequisiteSubject  = errors.New("prerequisite quiz belongs to another subject")
	ErrPrerequisiteCycle    = errors.New("prerequisite chain forms a cycle")
)

// Store описывает доступ к хранилищу квизов и вопросов.
// Методы Get* возвращают nil, nil, если запись не найдена.
type Store interface {
	SubjectExists(ctx context.Context, subjectID int) (bool, error)
	ChapterBelongsToSubject(ctx context.Context, chapterID, subjectID int) (bool, error)
	GetQuizByID(ctx context.Context, quizID int) (*model.Quiz, error)
	GetQuizzesBySubject(ctx context.Context, subjectID int) ([]model.Quiz, error)
	CreateQuiz(ctx context.Context, quiz model.Quiz) (int, error)
	UpdateQuiz(ctx context.Context, quiz model.Quiz) error
	DeleteQuiz(ctx context.Context, quizID int) error
	GetQuestionByID(ctx context.Context, questionID int) (*model.Question, error)
	GetQuizQuestions(ctx context.Context, quizID int) ([]model.Question, error)
	CreateQuestion(ctx context.Context, question model.Question) (int, error)
	UpdateQuestion(ctx context.Context, question model.Question) error
	DeleteQuestion(ctx context.Context, questionID int) error
}

// QuizService для администрирования квизов и вопросов
type QuizService struct {
	store Store
}

// NewQuizService создает новый экземпляр QuizService
func NewQuizService(store Store) *QuizService {
	return &QuizService{store: store}
}

// validateQuiz проверяет поля квиза и его пререквизит.
// quizID равен 0 при создании нового квиза.
func (s *QuizService) validateQuiz(ctx context.Context, quizID int, quiz model.Quiz) error {
	if quiz.TimeLimit <= 0 {
		return ErrInvalidTimeLimit
	}
	if quiz.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}
	if quiz.PassingScore < 0 || quiz.PassingScore > 100 {
		return ErrInvalidPassingScore
	}

	exists, err := s.store.SubjectExists(ctx, quiz.SubjectID)
	if err != nil {
		return fmt.Errorf("failed to check subject: %w", err)
	}
	if !exists {
		return ErrSubjectNotFound
	}

	if quiz.ChapterID != nil {
		ok, err := s.store.ChapterBelongsToSubject(ctx, *quiz.ChapterID, quiz.SubjectID)
		if err != nil {
			return fmt.Errorf("failed to check chapter: %w", err)
		}
		if !ok {
			return ErrChapterMismatch
		}
	}

	if quiz.PrerequisiteQuizID != nil {
		if err := s.validatePrerequisite(ctx, quizID, quiz.SubjectID, *quiz.PrerequisiteQuizID); err != nil {
			return err
		}
	}
	return nil
}

// validatePrerequisite проверяет, что пререквизит существует, принадлежит
// тому же предмету и не образует цикла. Цепочка пререквизитов обходится от
// предлагаемого пререквизита вверх; попадание на сам квиз означает цикл.
func (s *QuizService) validatePrerequisite(ctx context.Context, quizID, subjectID, prereqID int) error {
	if prereqID == quizID {
		return ErrPrerequisiteCycle
	}

	prereq, err := s.store.GetQuizByID(ctx, prereqID)
	if err != nil {
		return fmt.Errorf("failed to get prerequisite quiz: %w", err)
	}
	if prereq == nil {
		return ErrPrerequisiteNotFound
	}
	if prereq.SubjectID != subjectID {
		return ErrPrerequisiteSubject
	}

	visited := map[int]bool{prereqID: true}
	current := prereq
	for current.PrerequisiteQuizID != nil {
		next := *current.PrerequisiteQuizID
		if next == quizID || visited[next] {
			return ErrPrerequisiteCycle
		}
		visited[next] = true
		current, err = s.store.GetQuizByID(ctx, next)
		if err != nil {
			return fmt.Errorf("failed to walk prerequisite chain: %w", err)
		}
		if current == nil {
			// Оборванная цепочка не является циклом
			return nil
		}
	}
	return nil
}

// CreateQuiz создает квиз после валидации полей и пререквизита
func (s *QuizService) CreateQuiz(ctx context.Context, quiz model.Quiz) (*model.Quiz, error) {
	if err := s.validateQuiz(ctx, 0, quiz); err != nil {
		return nil, err
	}
	quiz.CreatedAt = time.Now()
	id, err := s.store.CreateQuiz(ctx, quiz)
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}
	quiz.ID = id
	return &quiz, nil
}

// UpdateQuiz обновляет квиз после той же валидации, что и при создании
func (s *QuizService) UpdateQuiz(ctx context.Context, quiz model.Quiz) error {
	existing, err := s.store.GetQuizByID(ctx, quiz.ID)
	if err != nil {
		return fmt.Errorf("failed to get quiz: %w", err)
	}
	if existing == nil {
		return ErrQuizNotFound
	}
	quiz.SubjectID = existing.SubjectID
	if err := s.validateQuiz(ctx, quiz.ID, quiz); err != nil {
		return err
	}
	if err := s.store.UpdateQuiz(ctx, quiz); err != nil {
		return fmt.Errorf("failed to update quiz: %w", err)
	}
	return nil
}

// GetQuiz получает квиз по ID
func (s *QuizService) GetQuiz(ctx context.Context, quizID int) (*model.Quiz, error) {
	quiz, err := s.store.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz == nil {
		return nil, ErrQuizNotFound
	}
	return quiz, nil
}

// ListSubjectQuizzes получает квизы предмета в порядке (sequence_number, id)
func (s *QuizService) ListSubjectQuizzes(ctx context.Context, subjectID int) ([]model.Quiz, error) {
	quizzes, err := s.store.GetQuizzesBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return quizzes, nil
}

// DeleteQuiz удаляет квиз вместе с вопросами, попытками и ответами
func (s *QuizService) DeleteQuiz(ctx context.Context, quizID int) error {
	quiz, err := s.store.GetQuizByID(ctx, quizID)
	if err != nil {
		return fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz == nil {
		return ErrQuizNotFound
	}
	if err := s.store.DeleteQuiz(ctx, quizID); err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}
	return nil
}

// validateQuestion проверяет поля вопроса
func validateQuestion(question model.Question) error {
	if question.CorrectOption < 1 || question.CorrectOption > 4 {
		return ErrInvalidCorrectOption
	}
	for _, option := range question.Options() {
		if option == "" {
			return ErrEmptyOption
		}
	}
	return nil
}

// CreateQuestion добавляет вопрос в квиз
func (s *QuizService) CreateQuestion(ctx context.Context, question model.Question) (*model.Question, error) {
	quiz, err := s.store.GetQuizByID(ctx, question.QuizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz == nil {
		return nil, ErrQuizNotFound
	}
	if err := validateQuestion(question); err != nil {
		return nil, err
	}
	if question.Marks <= 0 {
		question.Marks = 1
	}
	question.CreatedAt = time.Now()
	id, err := s.store.CreateQuestion(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	question.ID = id
	return &question, nil
}

// UpdateQuestion обновляет вопрос
func (s *QuizService) UpdateQuestion(ctx context.Context, question model.Question) error {
	existing, err := s.store.GetQuestionByID(ctx, question.ID)
	if err != nil {
		return fmt.Errorf("failed to get question: %w", err)
	}
	if existing == nil {
		return ErrQuestionNotFound
	}
	if err := validateQuestion(question); err != nil {
		return err
	}
	question.QuizID = existing.QuizID
	if err := s.store.UpdateQuestion(ctx, question); err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	return nil
}

// ListQuizQuestions получает вопросы квиза в порядке создания
func (s *QuizService) ListQuizQuestions(ctx context.Context, quizID int) ([]model.Question, error) {
	questions, err := s.store.GetQuizQuestions(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// DeleteQuestion удаляет вопрос
func (s *QuizService) DeleteQuestion(ctx context.Context, questionID int) error {
	existing, err := s.store.GetQuestionByID(ctx, questionID)
	if err != nil {
		return fmt.Errorf("failed to get question: %w", err)
	}
	if existing == nil {
		return ErrQuestionNotFound
	}
	if err := s.store.DeleteQuestion(ctx, questionID); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return nil
}
