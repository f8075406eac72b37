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

type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	DisplayName  string    `db:"display_name" json:"display_name,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Task struct {
	ID          string     `db:"id" json:"id"`
	OwnerID     string     `db:"owner_id" json:"owner_id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Completed   bool       `db:"completed" json:"completed"`
	DueDate     *time.Time `db:"due_date" json:"due_date,omitempty"`
	Category    Category   `db:"category" json:"category,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
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
