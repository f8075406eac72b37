package core

import "time"

type Category string

const (
	CategoryNone     Category = ""
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryLearning Category = "learning"
	CategoryOther    Category = "other"
)

func IsValidCategory(c Category) bool {
	switch c {
	case CategoryNone, CategoryWork, CategoryPersonal, CategoryLearning, CategoryOther:
		return true
	default:
		return false
	}
}

type Task struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Category    Category   `json:"category,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type NewTask struct {
	OwnerID     string
	Title       string
	Description string
	DueDate     *time.Time
	Category    Category
}

// TaskPatch is a partial update. Nil fields are left untouched. A set but
// zero DueDate clears the due date; a set but empty Category untags the task.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	DueDate     *time.Time
	Category    *Category
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		p.DueDate == nil && p.Category == nil
}

// ReminderPayload is attached to a scheduled one-shot trigger. TaskID is the
// correlation tag enforcing the at-most-one-reminder-per-task rule.
type ReminderPayload struct {
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// PendingReminder is a registered trigger that has not fired yet.
type PendingReminder struct {
	Handle  string          `json:"handle"`
	At      time.Time       `json:"at"`
	Payload ReminderPayload `json:"payload"`
}
