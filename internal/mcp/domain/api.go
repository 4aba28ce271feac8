package domain

import (
	"context"

	"planfixmcp/internal/planfix"
)

// Handlers depend on the narrow capability they use rather than on the full
// API client, so tests can fake one capability at a time. *planfix.Client
// satisfies every interface below.

// TaskAPI covers task reads and writes.
type TaskAPI interface {
	SearchTasks(ctx context.Context, filter planfix.TaskFilter) ([]planfix.Task, error)
	GetTask(ctx context.Context, id int) (planfix.Task, error)
	CreateTask(ctx context.Context, in planfix.TaskCreate) (planfix.Task, error)
	UpdateTaskStatus(ctx context.Context, id, statusID int, idempotencyKey string) (planfix.Task, error)
}

// CollaborationAPI covers comments and file attachments.
type CollaborationAPI interface {
	ListComments(ctx context.Context, filter planfix.CommentFilter) ([]planfix.Comment, error)
	AddComment(ctx context.Context, in planfix.CommentCreate) (planfix.Comment, error)
	ListFiles(ctx context.Context, filter planfix.FileFilter) ([]planfix.File, error)
}

// ContactAPI covers the contact book.
type ContactAPI interface {
	GetContactDetails(ctx context.Context, id int) (planfix.Contact, error)
	ListContacts(ctx context.Context, limit, offset int, isCompany bool) ([]planfix.Contact, error)
	AddContact(ctx context.Context, in planfix.ContactCreate) (planfix.Contact, error)
}

// ProjectAPI covers projects.
type ProjectAPI interface {
	GetProject(ctx context.Context, id int) (planfix.Project, error)
	ListProjects(ctx context.Context, limit, offset int) ([]planfix.Project, error)
	CreateProject(ctx context.Context, in planfix.ProjectCreate) (planfix.Project, error)
}

// DirectoryAPI covers account users and process definitions.
type DirectoryAPI interface {
	GetEmployee(ctx context.Context, id int) (planfix.Employee, error)
	ListEmployees(ctx context.Context, limit, offset int) ([]planfix.Employee, error)
	ListProcesses(ctx context.Context, limit, offset int) ([]planfix.Process, error)
}

// AnalyticsAPI covers saved and generated reports.
type AnalyticsAPI interface {
	ListReports(ctx context.Context, limit, offset int) ([]planfix.Report, error)
	GetAnalyticsReport(ctx context.Context, req planfix.ReportRequest) (planfix.Report, error)
}
