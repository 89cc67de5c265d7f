package model

import "time"

// Quiz представляет квиз внутри предмета. SequenceNumber задает порядок квизов
// в предмете, PrerequisiteQuizID ссылается на квиз того же предмета, который
// нужно сдать на проходной балл, чтобы этот квиз открылся.
type Quiz struct {
	ID                 int        `json:"id"`
	SubjectID          int        `json:"subject_id"`
	ChapterID          *int       `json:"chapter_id,omitempty"`
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	SequenceNumber     int        `json:"sequence_number"`
	TimeLimit          int        `json:"time_limit"` // в минутах
	MaxAttempts        int        `json:"max_attempts"`
	PassingScore       float64    `json:"passing_score"` // 0-100
	Deadline           *time.Time `json:"deadline,omitempty"`
	PrerequisiteQuizID *int       `json:"prerequisite_quiz_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}
