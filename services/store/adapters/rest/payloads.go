package rest

import "time"

type RegisterIn struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

type LoginIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateTaskIn struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Category    string     `json:"category,omitempty"`
}

type PatchTaskIn struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"` // zero time clears the due date
	Category    *string    `json:"category,omitempty"` // empty string untags
}
