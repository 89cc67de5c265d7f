package model

import "time"

// Chapter представляет главу предмета, объединяющую квизы
type Chapter struct {
	ID          int       `json:"id"`
	SubjectID   int       `json:"subject_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
