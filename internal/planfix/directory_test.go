package planfix

import (
	"context"
	"net/http"
	"testing"
)

func TestListEmployees(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"users": [
			{"id": "user:1", "name": "Anna", "lastname": "Smith", "email": "anna@example.com", "position": "PM"},
			{"id": 2, "name": "Boris"}
		]}`))
	}))
	employees, err := client.ListEmployees(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("ListEmployees: %v", err)
	}
	if len(employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(employees))
	}
	if employees[0].Name != "Anna Smith" {
		t.Errorf("expected joined name, got %q", employees[0].Name)
	}
	if employees[0].ID != "user:1" {
		t.Errorf("unexpected id %q", employees[0].ID)
	}
	if employees[1].ID != "2" {
		t.Errorf("numeric id must survive as a string, got %q", employees[1].ID)
	}
}

func TestGetEmployee(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var path string
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			w.Write([]byte(`{"user": {"id": "user:3", "name": "Anna", "lastname": "Smith", "position": "Manager"}}`))
		}))
		employee, err := client.GetEmployee(context.Background(), 3)
		if err != nil {
			t.Fatalf("GetEmployee: %v", err)
		}
		if path != "/user/3" {
			t.Errorf("unexpected path %s", path)
		}
		if employee.Name != "Anna Smith" || employee.Position != "Manager" {
			t.Errorf("unexpected employee %+v", employee)
		}
	})

	t.Run("missing id is rejected", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		}))
		_, err := client.GetEmployee(context.Background(), 0)
		assertCategory(t, err, CategoryValidation)
	})
}

func TestListComments(t *testing.T) {
	t.Run("task scope picks the task endpoint", func(t *testing.T) {
		var path string
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			w.Write([]byte(`{"comments": [{"id": 1, "description": "Looks good", "owner": {"id": "user:1", "name": "Anna"}}]}`))
		}))
		comments, err := client.ListComments(context.Background(), CommentFilter{TaskID: 7})
		if err != nil {
			t.Fatalf("ListComments: %v", err)
		}
		if path != "/task/7/comments/list" {
			t.Errorf("unexpected path %s", path)
		}
		if len(comments) != 1 || comments[0].AuthorName != "Anna" {
			t.Errorf("unexpected comments %+v", comments)
		}
	})

	t.Run("task and project together are rejected", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		}))
		_, err := client.ListComments(context.Background(), CommentFilter{TaskID: 7, ProjectID: 3})
		assertCategory(t, err, CategoryValidation)
	})
}

func TestAddComment(t *testing.T) {
	t.Run("fills gaps in a sparse echo", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id": 55}`))
		}))
		comment, err := client.AddComment(context.Background(), CommentCreate{TaskID: 7, Body: "Done"})
		if err != nil {
			t.Fatalf("AddComment: %v", err)
		}
		if comment.ID != 55 || comment.TaskID != 7 || comment.Body != "Done" {
			t.Errorf("unexpected comment %+v", comment)
		}
	})

	t.Run("empty body is rejected", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		}))
		_, err := client.AddComment(context.Background(), CommentCreate{TaskID: 7, Body: " "})
		assertCategory(t, err, CategoryValidation)
	})
}

func TestListFiles(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"files": [{"id": 1, "name": "brief.pdf", "size": 2048, "downloadUrl": "https://example.test/f/1", "task": {"id": 7}}]}`))
	}))
	files, err := client.ListFiles(context.Background(), FileFilter{TaskID: 7})
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].Size != 2048 || files[0].TaskID != 7 {
		t.Errorf("unexpected file %+v", files[0])
	}
}

func TestListProcesses(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"processes": [{"id": 1, "name": "Onboarding", "status": {"name": "active"}}]}`))
	}))
	processes, err := client.ListProcesses(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("ListProcesses: %v", err)
	}
	if len(processes) != 1 || processes[0].Status != "active" {
		t.Errorf("unexpected processes %+v", processes)
	}
}
