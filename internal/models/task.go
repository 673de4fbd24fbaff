package models

import "time"

type Task struct {
	ID        string
	UserID    string
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
