package domain

import (
	"context"
	"time"

	"planfixmcp/internal/planfix"
)

type fakeTaskAPI struct {
	searchResp []planfix.Task
	searchErr  error
	lastFilter planfix.TaskFilter

	getResp planfix.Task
	getErr  error

	createResp planfix.Task
	createErr  error
	lastCreate planfix.TaskCreate

	updateResp planfix.Task
	updateErr  error
}

func (f *fakeTaskAPI) SearchTasks(_ context.Context, filter planfix.TaskFilter) ([]planfix.Task, error) {
	f.lastFilter = filter
	return f.searchResp, f.searchErr
}

func (f *fakeTaskAPI) GetTask(_ context.Context, id int) (planfix.Task, error) {
	return f.getResp, f.getErr
}

func (f *fakeTaskAPI) CreateTask(_ context.Context, in planfix.TaskCreate) (planfix.Task, error) {
	f.lastCreate = in
	return f.createResp, f.createErr
}

func (f *fakeTaskAPI) UpdateTaskStatus(_ context.Context, id, statusID int, idempotencyKey string) (planfix.Task, error) {
	return f.updateResp, f.updateErr
}

type fakeCollaborationAPI struct {
	commentsResp []planfix.Comment
	commentsErr  error

	addResp planfix.Comment
	addErr  error
	lastAdd planfix.CommentCreate

	filesResp []planfix.File
	filesErr  error
}

func (f *fakeCollaborationAPI) ListComments(_ context.Context, filter planfix.CommentFilter) ([]planfix.Comment, error) {
	return f.commentsResp, f.commentsErr
}

func (f *fakeCollaborationAPI) AddComment(_ context.Context, in planfix.CommentCreate) (planfix.Comment, error) {
	f.lastAdd = in
	return f.addResp, f.addErr
}

func (f *fakeCollaborationAPI) ListFiles(_ context.Context, filter planfix.FileFilter) ([]planfix.File, error) {
	return f.filesResp, f.filesErr
}

type fakeContactAPI struct {
	getResp planfix.Contact
	getErr  error

	listResp []planfix.Contact
	listErr  error

	addResp planfix.Contact
	addErr  error
	lastAdd planfix.ContactCreate
}

func (f *fakeContactAPI) GetContactDetails(_ context.Context, id int) (planfix.Contact, error) {
	return f.getResp, f.getErr
}

func (f *fakeContactAPI) ListContacts(_ context.Context, limit, offset int, isCompany bool) ([]planfix.Contact, error) {
	return f.listResp, f.listErr
}

func (f *fakeContactAPI) AddContact(_ context.Context, in planfix.ContactCreate) (planfix.Contact, error) {
	f.lastAdd = in
	return f.addResp, f.addErr
}

type fakeProjectAPI struct {
	getResp planfix.Project
	getErr  error

	listResp []planfix.Project
	listErr  error

	createResp planfix.Project
	createErr  error
}

func (f *fakeProjectAPI) GetProject(_ context.Context, id int) (planfix.Project, error) {
	return f.getResp, f.getErr
}

func (f *fakeProjectAPI) ListProjects(_ context.Context, limit, offset int) ([]planfix.Project, error) {
	return f.listResp, f.listErr
}

func (f *fakeProjectAPI) CreateProject(_ context.Context, in planfix.ProjectCreate) (planfix.Project, error) {
	return f.createResp, f.createErr
}

type fakeDirectoryAPI struct {
	employeesResp []planfix.Employee
	employeesErr  error

	employeeResp planfix.Employee
	employeeErr  error

	processesResp []planfix.Process
	processesErr  error
}

func (f *fakeDirectoryAPI) GetEmployee(_ context.Context, id int) (planfix.Employee, error) {
	return f.employeeResp, f.employeeErr
}

func (f *fakeDirectoryAPI) ListEmployees(_ context.Context, limit, offset int) ([]planfix.Employee, error) {
	return f.employeesResp, f.employeesErr
}

func (f *fakeDirectoryAPI) ListProcesses(_ context.Context, limit, offset int) ([]planfix.Process, error) {
	return f.processesResp, f.processesErr
}

type fakeAnalyticsAPI struct {
	reportsResp []planfix.Report
	reportsErr  error

	generateResp planfix.Report
	generateErr  error
	lastRequest  planfix.ReportRequest
}

func (f *fakeAnalyticsAPI) ListReports(_ context.Context, limit, offset int) ([]planfix.Report, error) {
	return f.reportsResp, f.reportsErr
}

func (f *fakeAnalyticsAPI) GetAnalyticsReport(_ context.Context, req planfix.ReportRequest) (planfix.Report, error) {
	f.lastRequest = req
	return f.generateResp, f.generateErr
}

func testTask(id int, name string) planfix.Task {
	return planfix.Task{
		ID:       id,
		Name:     name,
		Status:   planfix.TaskStatus{ID: 1, Name: "active", Kind: planfix.StatusActive},
		Priority: planfix.PriorityNormal,
		DueAt:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}
