package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/quizmasterhq/quizmaster/internal/domain/model"
	"github.com/quizmasterhq/quizmaster/internal/domain/subjects/repository"
)

var (
	ErrSubjectNotFound = errors.New("subject not found")
	ErrChapterNotFound = errors.New("chapter not found")
	ErrEmptyName       = errors.New("name must not be empty")
)

// SubjectService для администрирования предметов и глав
type SubjectService struct {
	subjectRepo *repository.SubjectRepository
}

// NewSubjectService создает новый экземпляр SubjectService
func NewSubjectService(subjectRepo *repository.SubjectRepository) *SubjectService {
	return &SubjectService{subjectRepo: subjectRepo}
}

// ListSubjects получает предметы, опционально фильтруя по подстроке имени
func (s *SubjectService) ListSubjects(ctx context.Context, search string) ([]model.Subject, error) {
	subjects, err := s.subjectRepo.ListSubjects(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

// GetSubject получает предмет по ID
func (s *SubjectService) GetSubject(ctx context.Context, subjectID int) (*model.Subject, error) {
	subject, err := s.subjectRepo.GetSubjectByID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	if subject == nil {
		return nil, ErrSubjectNotFound
	}
	return subject, nil
}

// CreateSubject создает предмет
func (s *SubjectService) CreateSubject(ctx context.Context, name, description string) (*model.Subject, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	subjectID, err := s.subjectRepo.CreateSubject(ctx, name, description)
	if err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}
	return s.GetSubject(ctx, subjectID)
}

// UpdateSubject обновляет предмет
func (s *SubjectService) UpdateSubject(ctx context.Context, subjectID int, name, description string) error {
	if name == "" {
		return ErrEmptyName
	}
	if _, err := s.GetSubject(ctx, subjectID); err != nil {
		return err
	}
	if err := s.subjectRepo.UpdateSubject(ctx, subjectID, name, description); err != nil {
		return fmt.Errorf("failed to update subject: %w", err)
	}
	return nil
}

// DeleteSubject удаляет предмет со всеми главами, квизами и попытками
func (s *SubjectService) DeleteSubject(ctx context.Context, subjectID int) error {
	if _, err := s.GetSubject(ctx, subjectID); err != nil {
		return err
	}
	if err := s.subjectRepo.DeleteSubject(ctx, subjectID); err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}
	return nil
}

// ListChapters получает главы предмета
func (s *SubjectService) ListChapters(ctx context.Context, subjectID int) ([]model.Chapter, error) {
	if _, err := s.GetSubject(ctx, subjectID); err != nil {
		return nil, err
	}
	chapters, err := s.subjectRepo.ListChapters(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	return chapters, nil
}

// GetChapter получает главу по ID
func (s *SubjectService) GetChapter(ctx context.Context, chapterID int) (*model.Chapter, error) {
	chapter, err := s.subjectRepo.GetChapterByID(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}
	if chapter == nil {
		return nil, ErrChapterNotFound
	}
	return chapter, nil
}

// CreateChapter создает главу внутри предмета
func (s *SubjectService) CreateChapter(ctx context.Context, subjectID int, name, description string) (*model.Chapter, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, err := s.GetSubject(ctx, subjectID); err != nil {
		return nil, err
	}
	chapterID, err := s.subjectRepo.CreateChapter(ctx, subjectID, name, description)
	if err != nil {
		return nil, fmt.Errorf("failed to create chapter: %w", err)
	}
	return s.GetChapter(ctx, chapterID)
}

// UpdateChapter обновляет главу
func (s *SubjectService) UpdateChapter(ctx context.Context, chapterID int, name, description string) error {
	if name == "" {
		return ErrEmptyName
	}
	if _, err := s.GetChapter(ctx, chapterID); err != nil {
		return err
	}
	if err := s.subjectRepo.UpdateChapter(ctx, chapterID, name, description); err != nil {
		return fmt.Errorf("failed to update chapter: %w", err)
	}
	return nil
}

// DeleteChapter удаляет главу вместе с ее квизами
func (s *SubjectService) DeleteChapter(ctx context.Context, chapterID int) error {
	if _, err := s.GetChapter(ctx, chapterID); err != nil {
		return err
	}
	if err := s.subjectRepo.DeleteChapter(ctx, chapterID); err != nil {
		return fmt.Errorf("failed to delete chapter: %w", err)
	}
	return nil
}
