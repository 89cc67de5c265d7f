package model

import "time"

// Subject представляет предмет, в рамках которого создаются главы и квизы
type Subject struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
