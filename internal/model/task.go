package model

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task exists both in the standalone /tasks collection and embedded in a
// Person's tasks array. Nothing keeps the two in sync server-side; the
// attach workflow in the controller package writes both.
type Task struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Deadline    string       `json:"deadline,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority,omitempty"`
	Type        PersonType   `json:"type,omitempty"`
}

// ValidStatus reports whether s is one of the three wire statuses.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ValidPriority accepts the three wire priorities and empty (unset).
func ValidPriority(p TaskPriority) bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
