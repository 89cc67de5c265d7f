package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quizmasterhq/quizmaster/internal/domain/model"
)

// fakeStore хранит все в памяти и повторяет контракт хранилища:
// методы Get* возвращают nil, nil для отсутствующих записей, а
// FinishAttempt не перезаписывает уже выставленный балл.
type fakeStore struct {
	quizzes       map[int]model.Quiz
	questions     map[int][]model.Question
	attempts      map[int]*model.QuizAttempt
	answers       map[int][]model.UserAnswer
	nextAttemptID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		quizzes:       make(map[int]model.Quiz),
		questions:     make(map[int][]model.Question),
		attempts:      make(map[int]*model.QuizAttempt),
		answers:       make(map[int][]model.UserAnswer),
		nextAttemptID: 1,
	}
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

func (f *fakeStore) GetQuizQuestions(_ context.Context, quizID int) ([]model.Question, error) {
	return f.questions[quizID], nil
}

func (f *fakeStore) GetIncompleteAttempt(_ context.Context, userID, quizID int) (*model.QuizAttempt, error) {
	for _, a := range f.attempts {
		if a.UserID == userID && a.QuizID == quizID && !a.Completed {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetAttemptByID(_ context.Context, attemptID int) (*model.QuizAttempt, error) {
	a, ok := f.attempts[attemptID]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (f *fakeStore) GetCompletedAttempts(_ context.Context, userID, quizID int) ([]model.QuizAttempt, error) {
	var completed []model.QuizAttempt
	for _, a := range f.attempts {
		if a.UserID == userID && a.QuizID == quizID && a.Completed {
			completed = append(completed, *a)
		}
	}
	return completed, nil
}

func (f *fakeStore) CountCompletedAttempts(ctx context.Context, userID, quizID int) (int, error) {
	completed, _ := f.GetCompletedAttempts(ctx, userID, quizID)
	return len(completed), nil
}

func (f *fakeStore) CreateAttempt(_ context.Context, userID, quizID int, startedAt time.Time) (*model.QuizAttempt, error) {
	attempt := &model.QuizAttempt{
		ID:        f.nextAttemptID,
		UserID:    userID,
		QuizID:    quizID,
		StartedAt: startedAt,
	}
	f.attempts[attempt.ID] = attempt
	f.nextAttemptID++
	copied := *attempt
	return &copied, nil
}

func (f *fakeStore) FinishAttempt(_ context.Context, attemptID int, completedAt time.Time, score *float64) error {
	a, ok := f.attempts[attemptID]
	if !ok {
		return errors.New("attempt not found")
	}
	a.Completed = true
	if a.CompletedAt == nil {
		a.CompletedAt = &completedAt
	}
	if a.Score == nil && score != nil {
		copied := *score
		a.Score = &copied
	}
	return nil
}

func (f *fakeStore) GetAnswers(_ context.Context, attemptID int) ([]model.UserAnswer, error) {
	return f.answers[attemptID], nil
}

func (f *fakeStore) SaveAnswer(_ context.Context, attemptID, questionID, selectedOption int, isCorrect bool, answeredAt time.Time) error {
	f.answers[attemptID] = append(f.answers[attemptID], model.UserAnswer{
		AttemptID:      attemptID,
		QuestionID:     questionID,
		SelectedOption: selectedOption,
		IsCorrect:      isCorrect,
		AnsweredAt:     answeredAt,
	})
	return nil
}

// addQuiz добавляет квиз с четырьмя вопросами, у каждого правильный
// вариант 1.
func addQuiz(store *fakeStore, quizID int) {
	store.quizzes[quizID] = model.Quiz{
		ID:          quizID,
		SubjectID:   1,
		Name:        "Квиз",
		TimeLimit:   10,
		MaxAttempts: 2,
	}
	for i := 1; i <= 4; i++ {
		store.questions[quizID] = append(store.questions[quizID], model.Question{
			ID:            quizID*100 + i,
			QuizID:        quizID,
			Text:          "Вопрос",
			Option1:       "а",
			Option2:       "б",
			Option3:       "в",
			Option4:       "г",
			CorrectOption: 1,
		})
	}
}

// TestAttempt_FullRun полный проход попытки: три правильных ответа из
// четырех дают балл 75.0.
func TestAttempt_FullRun(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	addQuiz(store, 1)
	svc := NewAttemptService(store)

	state, err := svc.StartOrResume(ctx, 10, 1)
	if err != nil {
		t.Fatalf("StartOrResume вернул ошибку: %v", err)
	}
	if state.Finished || state.Question == nil {
		t.Fatal("Новая попытка должна отдавать первый вопрос")
	}
	if state.QuestionNumber != 1 || state.TotalQuestions != 4 {
		t.Errorf("Ожидался вопрос 1 из 4, получено %d из %d", state.QuestionNumber, state.TotalQuestions)
	}

	// Три правильных ответа и один неправильный
	options := []int{1, 1, 2, 1}
	for i, option := range options {
		state, err = svc.SubmitAnswer(ctx, 10, state.AttemptID, state.Question.ID, option)
		if err != nil {
			t.Fatalf("SubmitAnswer на вопросе %d вернул ошибку: %v", i+1, err)
		}
	}

	if !state.Finished {
		t.Fatal("После ответа на последний вопрос попытка должна завершиться")
	}

	result, err := svc.Result(ctx, 10, false, state.AttemptID)
	if err != nil {
		t.Fatalf("Result вернул ошибку: %v", err)
	}
	if result.Score != 75.0 {
		t.Errorf("Ожидался балл 75.0, получено %v", result.Score)
	}
	if len(result.Answers) != 4 {
		t.Errorf("Ожидалось 4 ответа в разборе, получено %d", len(result.Answers))
	}
}

// TestAttempt_Resume незавершенная попытка возобновляется со следующего
// неотвеченного вопроса, новая не создается.
func TestAttempt_Resume(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	addQuiz(store, 1)
	svc := NewAttemptService(store)

	first, err := svc.StartOrResume(ctx, 10, 1)
	if err != nil {
		t.Fatalf("StartOrResume вернул ошибку: %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, 10, first.AttemptID, first.Question.ID, 1); err != nil {
		t.Fatalf("SubmitAnswer вернул ошибку: %v", err)
	}

	resumed, err := svc.StartOrResume(ctx, 10, 1)
	if err != nil {
		t.Fatalf("Повторный StartOrResume вернул ошибку: %v", err)
	}
	if resumed.AttemptID != first.AttemptID {
		t.Errorf("Ожидалось возобновление попытки %d, получена попытка %d", first.AttemptID, resumed.AttemptID)
	}
	if resumed.QuestionNumber != 2 {
		t.Errorf("Ожидался вопрос 2, получен вопрос %d", resumed.QuestionNumber)
	}
}

// TestAttempt_Exhausted после исчерпания лимита попыток запуск
// отклоняется с ErrAttemptsExhausted.
func TestAttempt_Exhausted(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	addQuiz(store, 1)
	svc := NewAttemptService(store)

	for i := 0; i < 2; i++ {
		state, err := svc.StartOrResume(ctx, 10, 1)
		if err != nil {
			t.Fatalf("StartOrResume вернул ошибку: %v", err)
		}
		for !state.Finished {
			state, err = svc.SubmitAnswer(ctx, 10, state.AttemptID, state.Question.ID, 1)
			if err != nil {
				t.Fatalf("SubmitAnswer вернул ошибку: %v", err)
			}
		}
	}

	if _, err := svc.StartOrResume(ctx, 10, 1); !errors.Is(err, ErrAttemptsExhausted) {
		t.Errorf("Ожидалась ErrAttemptsExhausted, получено %v", err)
	}
}

// TestAttempt_DeadlinePassed квиз с прошедшим дедлайном недоступен.
func TestAttempt_DeadlinePassed(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	addQuiz(store, 1)
	quiz := store.quizzes[1]
	past := time.Now().Add(-time.Hour)
	quiz.Deadline = &past
	store.quizzes[1] = quiz
	svc := NewAttemptService(store)

	if _, err := svc.StartOrResume(ctx, 10, 1); !errors.Is(err, ErrDeadlinePassed) {
		t.Errorf("Ожидалась ErrDeadlinePassed, получено %v", err)
	}
}

// TestAttempt_Expiry попытка старше лимита времени завершается при
// следующем обращении без балла, балл досчитывается при просмотре
// результата и дальше не меняется.
func TestAttempt_Expiry(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	addQuiz(store, 1)
	svc := NewAttemptService(store)

	state, err := svc.StartOrResume(ctx, 10, 1)
	if err != nil {
		t.Fatalf("StartOrResume вернул ошибку: %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, 10, state.AttemptID, state.Question.ID, 1); err != nil {
		t.Fatalf("SubmitAnswer вернул ошибку: %v", err)
	}

	// Сдвигаем начало попытки на 11 минут назад при лимите в 10 минут
	store.attempts[state.AttemptID].StartedAt = time.Now().Add(-11 * time.Minute)

	expired, err := svc.StartOrResume(ctx, 10, 1)
	if err != nil {
		t.Fatalf("StartOrResume по истекшей попытке вернул ошибку: %v", err)
	}
	if !expired.Expired || !expired.Finished {
		t.Fatal("Истекшая попытка должна завершиться с пометкой Expired")
	}
	if store.attempts[state.AttemptID].Score != nil {
		t.Fatal("Балл не должен считаться в момент завершения по таймауту")
	}

	result, err := svc.Result(ctx, 10, false, state.AttemptID)
	if err != nil {
		t.Fatalf("Result вернул ошибку: %v", err)
	}
	if result.Score != 100.0 {
		t.Errorf("Ожидался балл 100.0 за единственный правильный ответ, получено %v", result.Score)
	}
	if store.attempts[state.AttemptID].Score == nil || *store.attempts[state.AttemptID].Score != 100.0 {
		t.Error("Балл должен зафиксироваться в хранилище при первом просмотре результата")
	}
}

// TestAttempt_ExpiredSubmit ответ по истекшей попытке не записывается,
// попытка завершается.
func TestAttempt_ExpiredSubmit(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	addQuiz(store, 1)
	svc := NewAttemptService(store)

	state, err := svc.StartOrResume(ctx, 10, 1)
	if err != nil {
		t.Fatalf("StartOrResume вернул ошибку: %v", err)
	}
	store.attempts[state.AttemptID].StartedAt = time.Now().Add(-11 * time.Minute)

	if _, err := svc.SubmitAnswer(ctx, 10, state.AttemptID, state.Question.ID, 1); !errors.Is(err, ErrTimeExpired) {
		t.Fatalf("Ожидалась ErrTimeExpired, получено %v", err)
	}
	if len(store.answers[state.AttemptID]) != 0 {
		t.Error("Ответ по истекшей попытке не должен записываться")
	}
	if !store.attempts[state.AttemptID].Completed {
		t.Error("Истекшая попытка должна быть завершена")
	}
}

// TestAttempt_PrerequisiteUnlock квиз с пререквизитом открывается только
// после попытки с проходным баллом: 60 при проходном 70 не открывает,
// повторная попытка с 80 открывает.
func TestAttempt_PrerequisiteUnlock(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	addQuiz(store, 1)
	addQuiz(store, 2)

	first := store.quizzes[1]
	first.PassingScore = 70
	first.MaxAttempts = 3
	store.quizzes[1] = first

	second := store.quizzes[2]
	prereqID := 1
	second.PrerequisiteQuizID = &prereqID
	store.quizzes[2] = second

	svc := NewAttemptService(store)

	runAttempt := func(options []int) {
		t.Helper()
		state, err := svc.StartOrResume(ctx, 10, 1)
		if err != nil {
			t.Fatalf("StartOrResume вернул ошибку: %v", err)
		}
		for _, option := range options {
			state, err = svc.SubmitAnswer(ctx, 10, state.AttemptID, state.Question.ID, option)
			if err != nil {
				t.Fatalf("SubmitAnswer вернул ошибку: %v", err)
			}
		}
	}

	// Первая попытка пререквизита: 2 из 4, балл 50
	runAttempt([]int{1, 1, 2, 2})
	if _, err := svc.StartOrResume(ctx, 10, 2); !errors.Is(err, ErrQuizLocked) {
		t.Fatalf("Ожидалась ErrQuizLocked при балле ниже проходного, получено %v", err)
	}

	// Вторая попытка: 4 из 4, балл 100
	runAttempt([]int{1, 1, 1, 1})
	state, err := svc.StartOrResume(ctx, 10, 2)
	if err != nil {
		t.Fatalf("Квиз должен открыться после проходной попытки, получено %v", err)
	}
	if state.Question == nil {
		t.Error("Открытый квиз должен отдавать первый вопрос")
	}
}

// TestSubmitAnswer_Guards проверки владения попыткой, номера варианта
// и актуальности вопроса.
func TestSubmitAnswer_Guards(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	addQuiz(store, 1)
	svc := NewAttemptService(store)

	state, err := svc.StartOrResume(ctx, 10, 1)
	if err != nil {
		t.Fatalf("StartOrResume вернул ошибку: %v", err)
	}

	if _, err := svc.SubmitAnswer(ctx, 99, state.AttemptID, state.Question.ID, 1); !errors.Is(err, ErrAttemptForbidden) {
		t.Errorf("Ожидалась ErrAttemptForbidden для чужой попытки, получено %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, 10, state.AttemptID, state.Question.ID, 5); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("Ожидалась ErrInvalidOption для варианта 5, получено %v", err)
	}
	if _, err := svc.SubmitAnswer(ctx, 10, 777, state.Question.ID, 1); !errors.Is(err, ErrAttemptNotFound) {
		t.Errorf("Ожидалась ErrAttemptNotFound, получено %v", err)
	}

	firstQuestion := state.Question.ID
	if _, err := svc.SubmitAnswer(ctx, 10, state.AttemptID, firstQuestion, 1); err != nil {
		t.Fatalf("SubmitAnswer вернул ошибку: %v", err)
	}

	// Повторный ответ на тот же вопрос отклоняется
	if _, err := svc.SubmitAnswer(ctx, 10, state.AttemptID, firstQuestion, 2); !errors.Is(err, ErrQuestionNotCurrent) {
		t.Errorf("Ожидалась ErrQuestionNotCurrent при повторном ответе, получено %v", err)
	}
	if len(store.answers[state.AttemptID]) != 1 {
		t.Errorf("Ожидался один записанный ответ, получено %d", len(store.answers[state.AttemptID]))
	}
}

// TestResult_Access результат виден владельцу и администратору,
// но не другому пользователю.
func TestResult_Access(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	addQuiz(store, 1)
	svc := NewAttemptService(store)

	state, err := svc.StartOrResume(ctx, 10, 1)
	if err != nil {
		t.Fatalf("StartOrResume вернул ошибку: %v", err)
	}
	for !state.Finished {
		state, err = svc.SubmitAnswer(ctx, 10, state.AttemptID, state.Question.ID, 1)
		if err != nil {
			t.Fatalf("SubmitAnswer вернул ошибку: %v", err)
		}
	}

	if _, err := svc.Result(ctx, 10, false, state.AttemptID); err != nil {
		t.Errorf("Владелец должен видеть результат, получено %v", err)
	}
	if _, err := svc.Result(ctx, 99, true, state.AttemptID); err != nil {
		t.Errorf("Администратор должен видеть результат, получено %v", err)
	}
	if _, err := svc.Result(ctx, 99, false, state.AttemptID); !errors.Is(err, ErrAttemptForbidden) {
		t.Errorf("Ожидалась ErrAttemptForbidden для чужого результата, получено %v", err)
	}
}
