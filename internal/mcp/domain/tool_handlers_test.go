package domain

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"planfixmcp/internal/planfix"
)

func TestTaskSearchHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		api := &fakeTaskAPI{searchResp: []planfix.Task{testTask(1, "First"), testTask(2, "Second")}}
		handler := TaskSearchHandler(api)
		toolResult, result, err := handler(context.Background(), nil, TaskSearchInput{Query: "report"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if toolResult == nil {
			t.Fatal("expected non-nil tool result")
		}
		if result.Count != 2 || len(result.Tasks) != 2 {
			t.Errorf("expected 2 tasks, got count %d len %d", result.Count, len(result.Tasks))
		}
		if result.Tasks[0].StatusKind != "active" {
			t.Errorf("expected active status kind, got %q", result.Tasks[0].StatusKind)
		}
		if api.lastFilter.Query != "report" {
			t.Errorf("query not forwarded: %q", api.lastFilter.Query)
		}
	})

	t.Run("page overrides offset", func(t *testing.T) {
		api := &fakeTaskAPI{}
		handler := TaskSearchHandler(api)
		_, _, err := handler(context.Background(), nil, TaskSearchInput{Limit: 10, Offset: 3, Page: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if api.lastFilter.Offset != 20 {
			t.Errorf("expected offset 20 from page 3, got %d", api.lastFilter.Offset)
		}
	})

	t.Run("limit out of range", func(t *testing.T) {
		handler := TaskSearchHandler(&fakeTaskAPI{})
		_, _, err := handler(context.Background(), nil, TaskSearchInput{Limit: 500})
		if err == nil {
			t.Fatal("expected error for limit over 100")
		}
	})

	t.Run("API error keeps its category", func(t *testing.T) {
		api := &fakeTaskAPI{searchErr: planfix.NewError(planfix.CategoryRemoteUnavailable, "planfix returned HTTP 503")}
		handler := TaskSearchHandler(api)
		_, _, err := handler(context.Background(), nil, TaskSearchInput{})
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "RemoteUnavailable") {
			t.Errorf("expected category in message, got %q", err.Error())
		}
	})
}

func TestTaskGetHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		api := &fakeTaskAPI{getResp: testTask(7, "Review")}
		handler := TaskGetHandler(api)
		_, result, err := handler(context.Background(), nil, TaskGetInput{TaskID: 7})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Task.ID != 7 || result.Task.Name != "Review" {
			t.Errorf("unexpected task %+v", result.Task)
		}
		if result.Task.DueAt == "" {
			t.Error("expected a due date")
		}
	})

	t.Run("missing id", func(t *testing.T) {
		handler := TaskGetHandler(&fakeTaskAPI{})
		_, _, err := handler(context.Background(), nil, TaskGetInput{})
		if err == nil {
			t.Fatal("expected error for missing task_id")
		}
	})
}

func TestTaskCreateHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		api := &fakeTaskAPI{createResp: planfix.Task{ID: 42, Name: "Подготовить презентацию", Priority: planfix.PriorityHigh}}
		handler := TaskCreateHandler(api)
		_, result, err := handler(context.Background(), nil, TaskCreateInput{
			Name:     "Подготовить презентацию",
			Priority: "HIGH",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Task.Name != "Подготовить презентацию" {
			t.Errorf("name not preserved: %q", result.Task.Name)
		}
		if result.Task.Priority != "HIGH" {
			t.Errorf("expected HIGH priority, got %q", result.Task.Priority)
		}
		if api.lastCreate.Priority != planfix.PriorityHigh {
			t.Errorf("priority not forwarded: %q", api.lastCreate.Priority)
		}
	})

	t.Run("unknown priority is rejected", func(t *testing.T) {
		handler := TaskCreateHandler(&fakeTaskAPI{})
		_, _, err := handler(context.Background(), nil, TaskCreateInput{Name: "X", Priority: "BLOCKER"})
		if err == nil {
			t.Fatal("expected error for unknown priority")
		}
	})

	t.Run("missing name", func(t *testing.T) {
		handler := TaskCreateHandler(&fakeTaskAPI{})
		_, _, err := handler(context.Background(), nil, TaskCreateInput{Name: "  "})
		if err == nil {
			t.Fatal("expected error for missing name")
		}
	})
}

func TestTaskStatusUpdateHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		api := &fakeTaskAPI{updateResp: planfix.Task{ID: 7, Name: "Review", Status: planfix.TaskStatus{ID: 3, Name: "Completed", Kind: planfix.StatusCompleted}}}
		handler := TaskStatusUpdateHandler(api)
		_, result, err := handler(context.Background(), nil, TaskStatusUpdateInput{TaskID: 7, StatusID: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Task.StatusKind != "completed" {
			t.Errorf("expected completed, got %q", result.Task.StatusKind)
		}
	})

	t.Run("missing status id", func(t *testing.T) {
		handler := TaskStatusUpdateHandler(&fakeTaskAPI{})
		_, _, err := handler(context.Background(), nil, TaskStatusUpdateInput{TaskID: 7})
		if err == nil {
			t.Fatal("expected error for missing status_id")
		}
	})
}

func TestCommentAddHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		api := &fakeCollaborationAPI{addResp: planfix.Comment{ID: 55, TaskID: 7, Body: "Done"}}
		handler := CommentAddHandler(api)
		_, result, err := handler(context.Background(), nil, CommentAddInput{TaskID: 7, Body: "Done"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Comment.ID != 55 || result.Comment.Body != "Done" {
			t.Errorf("unexpected comment %+v", result.Comment)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		handler := CommentAddHandler(&fakeCollaborationAPI{})
		_, _, err := handler(context.Background(), nil, CommentAddInput{TaskID: 7})
		if err == nil {
			t.Fatal("expected error for empty body")
		}
	})
}

func TestContactGetHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		api := &fakeContactAPI{getResp: planfix.Contact{ID: 5, Name: "Ivan", Lastname: "Petrov"}}
		handler := ContactGetHandler(api)
		_, result, err := handler(context.Background(), nil, ContactGetInput{ContactID: 5})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Contact.FullName != "Ivan Petrov" {
			t.Errorf("unexpected full name %q", result.Contact.FullName)
		}
	})

	t.Run("not found keeps its category", func(t *testing.T) {
		api := &fakeContactAPI{getErr: planfix.NewError(planfix.CategoryNotFound, "API error 404: contact not found")}
		handler := ContactGetHandler(api)
		_, _, err := handler(context.Background(), nil, ContactGetInput{ContactID: 123})
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "NotFound") {
			t.Errorf("expected NotFound in message, got %q", err.Error())
		}
	})
}

func TestContactAddHandler(t *testing.T) {
	api := &fakeContactAPI{addResp: planfix.Contact{ID: 8, Name: "Ivan"}}
	handler := ContactAddHandler(api)
	_, result, err := handler(context.Background(), nil, ContactAddInput{Name: "Ivan", Email: "ivan@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Contact.ID != 8 {
		t.Errorf("unexpected contact %+v", result.Contact)
	}
	if api.lastAdd.Email != "ivan@example.com" {
		t.Errorf("email not forwarded: %q", api.lastAdd.Email)
	}
}

func TestProjectCreateHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		api := &fakeProjectAPI{createResp: planfix.Project{ID: 3, Name: "Finance"}}
		handler := ProjectCreateHandler(api)
		_, result, err := handler(context.Background(), nil, ProjectCreateInput{Name: "Finance"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Project.ID != 3 {
			t.Errorf("unexpected project %+v", result.Project)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		handler := ProjectCreateHandler(&fakeProjectAPI{})
		_, _, err := handler(context.Background(), nil, ProjectCreateInput{})
		if err == nil {
			t.Fatal("expected error for missing name")
		}
	})
}

func TestEmployeeListHandler(t *testing.T) {
	api := &fakeDirectoryAPI{employeesResp: []planfix.Employee{{ID: "user:1", Name: "Anna Smith"}}}
	handler := EmployeeListHandler(api)
	_, result, err := handler(context.Background(), nil, EmployeeListInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Count != 1 || result.Employees[0].Name != "Anna Smith" {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestEmployeeGetHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		api := &fakeDirectoryAPI{employeeResp: planfix.Employee{ID: "user:3", Name: "Anna Smith", Position: "Manager"}}
		handler := EmployeeGetHandler(api)
		_, result, err := handler(context.Background(), nil, EmployeeGetInput{EmployeeID: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Employee.Name != "Anna Smith" || result.Employee.Position != "Manager" {
			t.Errorf("unexpected employee %+v", result.Employee)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		handler := EmployeeGetHandler(&fakeDirectoryAPI{})
		_, _, err := handler(context.Background(), nil, EmployeeGetInput{})
		if err == nil {
			t.Fatal("expected error for missing employee_id")
		}
	})
}

func TestTaskEntrySerialization(t *testing.T) {
	task := testTask(7, "Review")
	entry := taskEntryFromDomain(task)

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded TaskEntry
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.ID != task.ID {
		t.Errorf("id lost in round trip: %d", decoded.ID)
	}
	if decoded.Name != task.Name {
		t.Errorf("name lost in round trip: %q", decoded.Name)
	}
	if decoded.Status != task.Status.Name || decoded.StatusKind != string(task.Status.Kind) {
		t.Errorf("status lost in round trip: %q/%q", decoded.Status, decoded.StatusKind)
	}
}

func TestAnalyticsReportHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		api := &fakeAnalyticsAPI{generateResp: planfix.Report{
			Kind: planfix.ReportKindTime,
			Rows: []planfix.ReportRow{{"user": "Anna", "hours": 12}},
		}}
		handler := AnalyticsReportHandler(api)
		_, result, err := handler(context.Background(), nil, AnalyticsReportInput{
			Kind:        "time",
			PeriodStart: "2026-08-01",
			PeriodEnd:   "2026-08-31",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.RowCount != 1 {
			t.Errorf("expected 1 row, got %d", result.RowCount)
		}
		if api.lastRequest.PeriodStart.Format("2006-01-02") != "2026-08-01" {
			t.Errorf("period start not forwarded: %v", api.lastRequest.PeriodStart)
		}
	})

	t.Run("bad kind", func(t *testing.T) {
		handler := AnalyticsReportHandler(&fakeAnalyticsAPI{})
		_, _, err := handler(context.Background(), nil, AnalyticsReportInput{Kind: "weather", PeriodStart: "2026-08-01", PeriodEnd: "2026-08-31"})
		if err == nil {
			t.Fatal("expected error for unknown kind")
		}
	})

	t.Run("bad date", func(t *testing.T) {
		handler := AnalyticsReportHandler(&fakeAnalyticsAPI{})
		_, _, err := handler(context.Background(), nil, AnalyticsReportInput{Kind: "time", PeriodStart: "August 1st", PeriodEnd: "2026-08-31"})
		if err == nil {
			t.Fatal("expected error for unparseable date")
		}
	})
}
