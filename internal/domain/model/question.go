package model

import "time"

// Question представляет вопрос квиза с четырьмя вариантами ответа.
// CorrectOption принимает значения 1-4. Marks используется только для
// отображения веса вопроса и не участвует в подсчете результата.
type Question struct {
	ID            int       `json:"id"`
	QuizID        int       `json:"quiz_id"`
	Text          string    `json:"text"`
	Marks         int       `json:"marks"`
	Option1       string    `json:"option1"`
	Option2       string    `json:"option2"`
	Option3       string    `json:"option3"`
	Option4       string    `json:"option4"`
	CorrectOption int       `json:"correct_option"`
	CreatedAt     time.Time `json:"created_at"`
}

// Options возвращает варианты ответа в порядке их номеров
func (q Question) Options() []string {
	return []string{q.Option1, q.Option2, q.Option3, q.Option4}
}
