package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/azizbekh/staffdesk/internal/model"
)

type formField struct {
	Label string
	Value string
}

const (
	personFieldName = iota
	personFieldLastName
	personFieldEmail
)

const (
	taskFieldName = iota
	taskFieldDescription
	taskFieldDeadline
	taskFieldStatus
	taskFieldPriority
)

func buildPersonFormFields(p *model.Person) []formField {
	fields := []formField{
		{Label: "Name"},
		{Label: "Last name"},
		{Label: "Email"},
	}
	if p == nil {
		return fields
	}
	fields[personFieldName].Value = p.Name
	fields[personFieldLastName].Value = p.LastName
	fields[personFieldEmail].Value = p.Email
	return fields
}

// parsePersonForm validates the required fields and returns the PATCH
// payload for edits; the create path builds a full Person from it.
func parsePersonForm(fields []formField) (map[string]any, error) {
	name := strings.TrimSpace(fields[personFieldName].Value)
	lastName := strings.TrimSpace(fields[personFieldLastName].Value)
	email := strings.TrimSpace(fields[personFieldEmail].Value)

	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if lastName == "" {
		return nil, fmt.Errorf("last name is required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	return map[string]any{
		"name":      name,
		"last_name": lastName,
		"email":     email,
	}, nil
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

func buildTaskFormFields(task *model.Task) []formField {
	fields := []formField{
		{Label: "Name"},
		{Label: "Description"},
		{Label: "Deadline (YYYY-MM-DD)"},
		{Label: "Status (space/←→)"},
		{Label: "Priority (space/←→)"},
	}
	if task == nil {
		fields[taskFieldStatus].Value = string(model.StatusPending)
		return fields
	}
	fields[taskFieldName].Value = task.Name
	fields[taskFieldDescription].Value = task.Description
	fields[taskFieldDeadline].Value = task.Deadline
	fields[taskFieldStatus].Value = string(task.Status)
	fields[taskFieldPriority].Value = string(task.Priority)
	return fields
}

func parseTaskForm(fields []formField) (model.Task, error) {
	name := strings.TrimSpace(fields[taskFieldName].Value)
	if name == "" {
		return model.Task{}, fmt.Errorf("name is required")
	}

	deadline := strings.TrimSpace(fields[taskFieldDeadline].Value)
	if deadline != "" {
		if _, err := time.Parse("2006-01-02", deadline); err != nil {
			return model.Task{}, fmt.Errorf("invalid deadline")
		}
	}

	status := model.TaskStatus(strings.TrimSpace(fields[taskFieldStatus].Value))
	if status == "" {
		status = model.StatusPending
	}
	if !model.ValidStatus(status) {
		return model.Task{}, fmt.Errorf("invalid status")
	}

	priority := model.TaskPriority(strings.TrimSpace(fields[taskFieldPriority].Value))
	if !model.ValidPriority(priority) {
		return model.Task{}, fmt.Errorf("invalid priority")
	}

	return model.Task{
		Name:        name,
		Description: strings.TrimSpace(fields[taskFieldDescription].Value),
		Deadline:    deadline,
		Status:      status,
		Priority:    priority,
	}, nil
}

var statusOrder = []string{
	string(model.StatusPending),
	string(model.StatusInProgress),
	string(model.StatusCompleted),
}

var priorityOrder = []string{
	"",
	string(model.PriorityLow),
	string(model.PriorityMedium),
	string(model.PriorityHigh),
}

func cycleOption(order []string, current string, delta int) string {
	index := 0
	for i, value := range order {
		if value == current {
			index = i
			break
		}
	}
	index = (index + delta + len(order)) % len(order)
	return order[index]
}

func isStatusField(label string) bool {
	return strings.HasPrefix(label, "Status")
}

func isPriorityField(label string) bool {
	return strings.HasPrefix(label, "Priority")
}
