package model

// PersonType distinguishes the two staff collections. The backend keeps
// managers and employees in separate collections that share one shape.
type PersonType string

const (
	TypeManager  PersonType = "manager"
	TypeEmployee PersonType = "employee"
)

// Person is a manager or employee record as the backend returns it.
// IsActive is flipped by block/unblock; Tasks holds the tasks attached
// to this person (the backend keeps no other link).
type Person struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	LastName string     `json:"last_name"`
	Email    string     `json:"email"`
	Type     PersonType `json:"type"`
	IsActive bool       `json:"isActive"`
	Tasks    []Task     `json:"tasks"`
}

// FullName is the display name used by search filters (case-insensitive
// substring match runs over this value).
func (p Person) FullName() string {
	return p.Name + " " + p.LastName
}

// CollectionFor maps a person type to its backend collection path.
func CollectionFor(t PersonType) string {
	if t == TypeManager {
		return "managers"
	}
	return "employees"
}
