package domain

type Project struct {
	ID    string
	Name  string
	Color string
	// TaskCount is derived from the task collection, never stored remotely
	// as authoritative.
	TaskCount int
}

// Reserved projects ship pre-created and cannot be deleted.
const (
	ProjectPersonal = "personal"
	ProjectWork     = "work"
)

func IsReservedProject(id string) bool {
	return id == ProjectPersonal || id == ProjectWork
}
