package service

import "errors"

// Ошибки доступа к квизу. Каждая причина отказа отдается отдельно,
// чтобы обработчик мог показать конкретное сообщение.
var (
	ErrQuizLocked         = errors.New("quiz is locked: prerequisite not passed")
	ErrDeadlinePassed     = errors.New("quiz deadline has passed")
	ErrAttemptsExhausted  = errors.New("no attempts remaining for quiz")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrAttemptNotFound    = errors.New("attempt not found")
	ErrAttemptForbidden   = errors.New("attempt belongs to another user")
	ErrAttemptCompleted   = errors.New("attempt is already completed")
	ErrAttemptNotFinished = errors.New("attempt is not finished yet")
	ErrTimeExpired        = errors.New("time for the attempt has expired")
	ErrInvalidOption      = errors.New("selected option must be between 1 and 4")
	ErrQuestionNotCurrent = errors.New("question is not the one currently served")
)
