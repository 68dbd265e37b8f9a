package repository

import (
	"encoding/json"

	"github.com/azizbekh/staffdesk/internal/model"
)

// applyPersonFields merges a PATCH body into a person. Unknown keys are
// ignored; values arrive as decoded JSON, so numbers are float64 and the
// tasks array is re-marshalled through the Task type.
func applyPersonFields(p *model.Person, fields map[string]any) {
	for key, value := range fields {
		switch key {
		case "name":
			if s, ok := value.(string); ok {
				p.Name = s
			}
		case "last_name":
			if s, ok := value.(string); ok {
				p.LastName = s
			}
		case "email":
			if s, ok := value.(string); ok {
				p.Email = s
			}
		case "isActive":
			if b, ok := value.(bool); ok {
				p.IsActive = b
			}
		case "tasks":
			if tasks, ok := decodeTasks(value); ok {
				p.Tasks = tasks
			}
		}
	}
}

func applyTaskFields(t *model.Task, fields map[string]any) {
	for key, value := range fields {
		switch key {
		case "name":
			if s, ok := value.(string); ok {
				t.Name = s
			}
		case "description":
			if s, ok := value.(string); ok {
				t.Description = s
			}
		case "deadline":
			if s, ok := value.(string); ok {
				t.Deadline = s
			}
		case "status":
			if s, ok := value.(string); ok {
				t.Status = model.TaskStatus(s)
			}
		case "priority":
			if s, ok := value.(string); ok {
				t.Priority = model.TaskPriority(s)
			}
		case "type":
			if s, ok := value.(string); ok {
				t.Type = model.PersonType(s)
			}
		}
	}
}

func decodeTasks(value any) ([]model.Task, bool) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, false
	}
	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, false
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, true
}
