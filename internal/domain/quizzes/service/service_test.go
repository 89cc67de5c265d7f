package service

import (
	"context"
	"errors"
	"testing"

	"github.com/quizmasterhq/quizmaster/internal/domain/model"
)

// fakeStore хранит квизы и вопросы в памяти. Методы Get* возвращают
// nil, nil для отсутствующих записей.
type fakeStore struct {
	subjects     map[int]bool
	chapters     map[int]int
	quizzes      map[int]model.Quiz
	questions    map[int]model.Question
	nextQuizID   int
	nextQuestion int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		subjects:     map[int]bool{1: true, 2: true},
		chapters:     make(map[int]int),
		quizzes:      make(map[int]model.Quiz),
		questions:    make(map[int]model.Question),
		nextQuizID:   1,
		nextQuestion: 1,
	}
}

func (f *fakeStore) SubjectExists(_ context.Context, subjectID int) (bool, error) {
	return f.subjects[subjectID], nil
}

func (f *fakeStore) ChapterBelongsToSubject(_ context.Context, chapterID, subjectID int) (bool, error) {
	return f.chapters[chapterID] == subjectID, nil
}

func (f *fakeStore) GetQuizByID(_ context.Context, quizID int) (*model.Quiz, error) {
	quiz, ok := f.quizzes[quizID]
	if !ok {
		return nil, nil
	}
	return &quiz, nil
}

func (f *fakeStore) GetQuizzesBySubject(_ context.Context, subjectID int) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	for _, quiz := range f.quizzes {
		if quiz.SubjectID == subjectID {
			quizzes = append(quizzes, quiz)
		}
	}
	return quizzes, nil
}

func (f *fakeStore) CreateQuiz(_ context.Context, quiz model.Quiz) (int, error) {
	quiz.ID = f.nextQuizID
	f.quizzes[quiz.ID] = quiz
	f.nextQuizID++
	return quiz.ID, nil
}

func (f *fakeStore) UpdateQuiz(_ context.Context, quiz model.Quiz) error {
	f.quizzes[quiz.ID] = quiz
	return nil
}

func (f *fakeStore) DeleteQuiz(_ context.Context, quizID int) error {
	delete(f.quizzes, quizID)
	return nil
}

func (f *fakeStore) GetQuestionByID(_ context.Context, questionID int) (*model.Question, error) {
	question, ok := f.questions[questionID]
	if !ok {
		return nil, nil
	}
	return &question, nil
}

func (f *fakeStore) GetQuizQuestions(_ context.Context, quizID int) ([]model.Question, error) {
	var questions []model.Question
	for _, q := range f.questions {
		if q.QuizID == quizID {
			questions = append(questions, q)
		}
	}
	return questions, nil
}

func (f *fakeStore) CreateQuestion(_ context.Context, question model.Question) (int, error) {
	question.ID = f.nextQuestion
	f.questions[question.ID] = question
	f.nextQuestion++
	return question.ID, nil
}

func (f *fakeStore) UpdateQuestion(_ context.Context, question model.Question) error {
	f.questions[question.ID] = question
	return nil
}

func (f *fakeStore) DeleteQuestion(_ context.Context, questionID int) error {
	delete(f.questions, questionID)
	return nil
}

func validQuiz(subjectID int) model.Quiz {
	return model.Quiz{
		SubjectID:   subjectID,
		Name:        "Квиз",
		TimeLimit:   10,
		MaxAttempts: 2,
	}
}

// TestCreateQuiz_Validation проверки полей квиза при создании.
func TestCreateQuiz_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewQuizService(newFakeStore())

	cases := []struct {
		name   string
		mutate func(*model.Quiz)
		want   error
	}{
		{"нулевой лимит времени", func(q *model.Quiz) { q.TimeLimit = 0 }, ErrInvalidTimeLimit},
		{"нулевой лимит попыток", func(q *model.Quiz) { q.MaxAttempts = 0 }, ErrInvalidMaxAttempts},
		{"проходной балл выше 100", func(q *model.Quiz) { q.PassingScore = 101 }, ErrInvalidPassingScore},
		{"отрицательный проходной балл", func(q *model.Quiz) { q.PassingScore = -1 }, ErrInvalidPassingScore},
		{"несуществующий предмет", func(q *model.Quiz) { q.SubjectID = 99 }, ErrSubjectNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quiz := validQuiz(1)
			tc.mutate(&quiz)
			if _, err := svc.CreateQuiz(ctx, quiz); !errors.Is(err, tc.want) {
				t.Errorf("Ожидалась %v, получено %v", tc.want, err)
			}
		})
	}
}

// TestCreateQuiz_ChapterMismatch глава должна принадлежать предмету квиза.
func TestCreateQuiz_ChapterMismatch(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.chapters[5] = 2
	svc := NewQuizService(store)

	quiz := validQuiz(1)
	chapterID := 5
	quiz.ChapterID = &chapterID
	if _, err := svc.CreateQuiz(ctx, quiz); !errors.Is(err, ErrChapterMismatch) {
		t.Errorf("Ожидалась ErrChapterMismatch, получено %v", err)
	}

	quiz.SubjectID = 2
	if _, err := svc.CreateQuiz(ctx, quiz); err != nil {
		t.Errorf("Глава своего предмета не должна давать ошибку, получено %v", err)
	}
}

// TestPrerequisite_SameSubject пререквизит из другого предмета отклоняется.
func TestPrerequisite_SameSubject(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewQuizService(store)

	other, err := svc.CreateQuiz(ctx, validQuiz(2))
	if err != nil {
		t.Fatalf("CreateQuiz вернул ошибку: %v", err)
	}

	quiz := validQuiz(1)
	quiz.PrerequisiteQuizID = &other.ID
	if _, err := svc.CreateQuiz(ctx, quiz); !errors.Is(err, ErrPrerequisiteSubject) {
		t.Errorf("Ожидалась ErrPrerequisiteSubject, получено %v", err)
	}

	missing := 99
	quiz.PrerequisiteQuizID = &missing
	if _, err := svc.CreateQuiz(ctx, quiz); !errors.Is(err, ErrPrerequisiteNotFound) {
		t.Errorf("Ожидалась ErrPrerequisiteNotFound, получено %v", err)
	}
}

// TestPrerequisite_Cycle цепочка пререквизитов не может замыкаться
// на сам квиз.
func TestPrerequisite_Cycle(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewQuizService(store)

	first, err := svc.CreateQuiz(ctx, validQuiz(1))
	if err != nil {
		t.Fatalf("CreateQuiz вернул ошибку: %v", err)
	}
	secondQuiz := validQuiz(1)
	secondQuiz.PrerequisiteQuizID = &first.ID
	second, err := svc.CreateQuiz(ctx, secondQuiz)
	if err != nil {
		t.Fatalf("CreateQuiz вернул ошибку: %v", err)
	}

	// Самоссылка
	update := *first
	update.PrerequisiteQuizID = &first.ID
	if err := svc.UpdateQuiz(ctx, update); !errors.Is(err, ErrPrerequisiteCycle) {
		t.Errorf("Ожидалась ErrPrerequisiteCycle для самоссылки, получено %v", err)
	}

	// first -> second -> first
	update = *first
	update.PrerequisiteQuizID = &second.ID
	if err := svc.UpdateQuiz(ctx, update); !errors.Is(err, ErrPrerequisiteCycle) {
		t.Errorf("Ожидалась ErrPrerequisiteCycle для цикла из двух квизов, получено %v", err)
	}
}

// TestUpdateQuiz_KeepsSubject предмет квиза не меняется при обновлении.
func TestUpdateQuiz_KeepsSubject(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewQuizService(store)

	quiz, err := svc.CreateQuiz(ctx, validQuiz(1))
	if err != nil {
		t.Fatalf("CreateQuiz вернул ошибку: %v", err)
	}

	update := *quiz
	update.SubjectID = 2
	update.Name = "Новое имя"
	if err := svc.UpdateQuiz(ctx, update); err != nil {
		t.Fatalf("UpdateQuiz вернул ошибку: %v", err)
	}

	stored := store.quizzes[quiz.ID]
	if stored.SubjectID != 1 {
		t.Errorf("Предмет квиза не должен меняться, получено %d", stored.SubjectID)
	}
	if stored.Name != "Новое имя" {
		t.Errorf("Имя квиза должно обновиться, получено %q", stored.Name)
	}
}

// TestCreateQuestion_Validation проверки вопроса и вес по умолчанию.
func TestCreateQuestion_Validation(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewQuizService(store)

	quiz, err := svc.CreateQuiz(ctx, validQuiz(1))
	if err != nil {
		t.Fatalf("CreateQuiz вернул ошибку: %v", err)
	}

	question := model.Question{
		QuizID:        quiz.ID,
		Text:          "Вопрос",
		Option1:       "а",
		Option2:       "б",
		Option3:       "в",
		Option4:       "г",
		CorrectOption: 1,
	}

	bad := question
	bad.CorrectOption = 0
	if _, err := svc.CreateQuestion(ctx, bad); !errors.Is(err, ErrInvalidCorrectOption) {
		t.Errorf("Ожидалась ErrInvalidCorrectOption, получено %v", err)
	}

	bad = question
	bad.Option3 = ""
	if _, err := svc.CreateQuestion(ctx, bad); !errors.Is(err, ErrEmptyOption) {
		t.Errorf("Ожидалась ErrEmptyOption, получено %v", err)
	}

	bad = question
	bad.QuizID = 99
	if _, err := svc.CreateQuestion(ctx, bad); !errors.Is(err, ErrQuizNotFound) {
		t.Errorf("Ожидалась ErrQuizNotFound, получено %v", err)
	}

	created, err := svc.CreateQuestion(ctx, question)
	if err != nil {
		t.Fatalf("CreateQuestion вернул ошибку: %v", err)
	}
	if created.Marks != 1 {
		t.Errorf("Вес вопроса по умолчанию должен быть 1, получено %d", created.Marks)
	}
}

// TestUpdateQuestion_KeepsQuiz вопрос нельзя перенести в другой квиз.
func TestUpdateQuestion_KeepsQuiz(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewQuizService(store)

	quiz, err := svc.CreateQuiz(ctx, validQuiz(1))
	if err != nil {
		t.Fatalf("CreateQuiz вернул ошибку: %v", err)
	}
	question, err := svc.CreateQuestion(ctx, model.Question{
		QuizID:        quiz.ID,
		Text:          "Вопрос",
		Option1:       "а",
		Option2:       "б",
		Option3:       "в",
		Option4:       "г",
		CorrectOption: 1,
	})
	if err != nil {
		t.Fatalf("CreateQuestion вернул ошибку: %v", err)
	}

	update := *question
	update.QuizID = 77
	update.Text = "Новый текст"
	if err := svc.UpdateQuestion(ctx, update); err != nil {
		t.Fatalf("UpdateQuestion вернул ошибку: %v", err)
	}

	stored := store.questions[question.ID]
	if stored.QuizID != quiz.ID {
		t.Errorf("Квиз вопроса не должен меняться, получено %d", stored.QuizID)
	}
	if stored.Text != "Новый текст" {
		t.Errorf("Текст вопроса должен обновиться, получено %q", stored.Text)
	}
}
