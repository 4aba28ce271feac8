package planfix

import (
	"strings"
	"time"
)

// Domain models produced by the client. Values are owned by the response that
// produced them and are never mutated in place; update operations submit a new
// state and return the server's echo.

// Priority is the task priority level.
type Priority string

const (
	PriorityLow     Priority = "LOW"
	PriorityNormal  Priority = "NORMAL"
	PriorityHigh    Priority = "HIGH"
	PriorityUrgent  Priority = "URGENT"
	PriorityUnknown Priority = "UNKNOWN"
)

// ParsePriority maps a wire priority string to a known level. Unrecognized
// and absent values map to PriorityUnknown so forward-compatible payloads
// degrade instead of failing.
func ParsePriority(s string) Priority {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return PriorityLow
	case "NORMAL":
		return PriorityNormal
	case "HIGH":
		return PriorityHigh
	case "URGENT":
		return PriorityUrgent
	default:
		return PriorityUnknown
	}
}

// StatusKind buckets account-specific status names into stable values.
type StatusKind string

const (
	StatusActive    StatusKind = "active"
	StatusCompleted StatusKind = "completed"
	StatusOverdue   StatusKind = "overdue"
	StatusDraft     StatusKind = "draft"
	StatusUnknown   StatusKind = "unknown"
)

// TaskStatus preserves the account's raw status alongside the stable kind.
type TaskStatus struct {
	ID   int
	Name string
	Kind StatusKind
}

// statusKindFromName buckets a status name. Planfix accounts rename statuses
// freely, so matching is loose and everything else is StatusUnknown.
func statusKindFromName(name string) StatusKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "active", "new", "in progress", "in work":
		return StatusActive
	case "completed", "done", "finished":
		return StatusCompleted
	case "overdue", "expired":
		return StatusOverdue
	case "draft":
		return StatusDraft
	default:
		return StatusUnknown
	}
}

// Task is a Planfix task.
type Task struct {
	ID           int
	Name         string
	Description  string
	Status       TaskStatus
	Priority     Priority
	AssigneeID   string
	AssigneeName string
	ProjectID    int
	ProjectName  string
	CreatedAt    time.Time
	DueAt        time.Time
}

// Project is a Planfix project.
type Project struct {
	ID          int
	Name        string
	Description string
	OwnerName   string
	TaskCount   int
}

// Contact is a Planfix contact or company.
type Contact struct {
	ID        int
	Name      string
	Midname   string
	Lastname  string
	Email     string
	Phone     string
	Company   string
	Position  string
	IsCompany bool
	CreatedAt time.Time
}

// FullName joins the contact's name parts.
func (c Contact) FullName() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{c.Name, c.Midname, c.Lastname} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

// Employee is a Planfix account user.
type Employee struct {
	ID       string
	Name     string
	Email    string
	Position string
}

// Comment is a comment attached to a task or project.
type Comment struct {
	ID         int
	TaskID     int
	ProjectID  int
	AuthorID   string
	AuthorName string
	Body       string
	CreatedAt  time.Time
}

// ReportKind classifies analytics reports.
type ReportKind string

const (
	ReportKindTime      ReportKind = "time"
	ReportKindFinancial ReportKind = "financial"
	ReportKindTask      ReportKind = "task"
	ReportKindUnknown   ReportKind = "unknown"
)

// ParseReportKind maps a wire report kind to a known value.
func ParseReportKind(s string) ReportKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "time":
		return ReportKindTime
	case "financial":
		return ReportKindFinancial
	case "task":
		return ReportKindTask
	default:
		return ReportKindUnknown
	}
}

// ReportRow is one generated report row as plain data.
type ReportRow map[string]any

// Report is a saved or generated analytics report.
type Report struct {
	ID          int
	Name        string
	Description string
	Kind        ReportKind
	PeriodStart time.Time
	PeriodEnd   time.Time
	Rows        []ReportRow
}

// File is a file attached to a task or project.
type File struct {
	ID          int
	TaskID      int
	ProjectID   int
	Name        string
	Size        int64
	DownloadURL string
}

// Process is a business process definition.
type Process struct {
	ID          int
	Name        string
	Description string
	Status      string
	CreatedAt   time.Time
}
