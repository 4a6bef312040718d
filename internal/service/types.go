package service

// Document field names shared by every backend.
const (
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldStatus      = "status"
)

// Task represents a single task record.
type Task struct {
	ID          string // store-assigned, empty until persisted
	Category    string
	Description string
	Status      bool // true = open, false = closed
}

// Filter holds optional equality constraints for Query.
// A nil field places no constraint on that field.
type Filter struct {
	Category *string
	Status   *bool
}

// Matches reports whether t satisfies every constraint in f.
func (f Filter) Matches(t Task) bool {
	if f.Category != nil && t.Category != *f.Category {
		return false
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	return true
}

// Fields maps document field names to their new values for SetFields.
type Fields map[string]any

// StatusFilter returns a Filter constraining only the status field.
func StatusFilter(open bool) Filter {
	return Filter{Status: &open}
}
