package dto

// QuestionView представляет вопрос, отдаваемый ученику: без правильного ответа
type QuestionView struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Marks   int      `json:"marks"`
	Options []string `json:"options"`
}

// AttemptState представляет текущее состояние попытки после start-or-resume.
// Если Finished == true, вопрос не отдается и нужно переходить к результату.
type AttemptState struct {
	AttemptID        int           `json:"attempt_id"`
	QuizID           int           `json:"quiz_id"`
	QuizName         string        `json:"quiz_name"`
	Finished         bool          `json:"finished"`
	Expired          bool          `json:"expired"`
	Question         *QuestionView `json:"question,omitempty"`
	QuestionNumber   int           `json:"question_number,omitempty"`
	TotalQuestions   int           `json:"total_questions"`
	RemainingSeconds int           `json:"remaining_seconds"`
}
