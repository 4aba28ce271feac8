package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"planfixmcp/internal/planfix"
)

// summaryWindow caps how many records the dashboard aggregates per entity.
const summaryWindow = 100

// ContactListPayload represents the MCP resource payload for recent contacts.
type ContactListPayload struct {
	Contacts []ContactEntry `json:"contacts"`
}

// ReportListPayload represents the MCP resource payload for saved reports.
type ReportListPayload struct {
	Reports []ReportEntry `json:"reports"`
}

// TaskPayload represents the MCP resource payload for a single task.
type TaskPayload struct {
	Task TaskEntry `json:"task"`
}

// ProjectListResource defines the MCP resource for project listings.
func ProjectListResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "project_list",
		Title:       "Projects",
		Description: "Readable listing of the account's projects",
		MIMEType:    "text/plain",
		URI:         "projects://list",
	}
}

// DashboardResource defines the MCP resource for the workspace summary.
func DashboardResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "dashboard_summary",
		Title:       "Workspace summary",
		Description: "Counts of active and overdue tasks and of projects",
		MIMEType:    "text/plain",
		URI:         "dashboard://summary",
	}
}

// TaskResourceTemplate defines the MCP resource template for task detail.
func TaskResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "task_detail",
		Title:       "Task detail",
		Description: "Full detail of one task addressed as task://{task_id}",
		MIMEType:    "application/json",
		URITemplate: "task://{task_id}",
	}
}

// RecentContactsResource defines the MCP resource for recent contacts.
func RecentContactsResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "recent_contacts",
		Title:       "Recent contacts",
		Description: "The ten most recently added contacts",
		MIMEType:    "application/json",
		URI:         "contacts://recent",
	}
}

// ReportListResource defines the MCP resource for saved reports.
func ReportListResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "report_list",
		Title:       "Reports",
		Description: "The account's saved report definitions",
		MIMEType:    "application/json",
		URI:         "reports://list",
	}
}

// ProjectListResourceHandler returns a readable project listing.
func ProjectListResourceHandler(api ProjectAPI) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if api == nil {
			return nil, fmt.Errorf("project client is not configured")
		}
		uri := ProjectListResource().URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		projects, err := api.ListProjects(runCtx, summaryWindow, 0)
		if err != nil {
			return nil, operationError("project list", err)
		}

		tw := table.NewWriter()
		tw.AppendHeader(table.Row{"ID", "NAME", "OWNER", "TASKS"})
		for _, project := range projects {
			tw.AppendRow(table.Row{project.ID, project.Name, project.OwnerName, project.TaskCount})
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "text/plain",
					Text:     tw.Render(),
				},
			},
		}, nil
	}
}

// DashboardResourceHandler returns the workspace summary table.
func DashboardResourceHandler(tasks TaskAPI, projects ProjectAPI) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if tasks == nil || projects == nil {
			return nil, fmt.Errorf("dashboard clients are not configured")
		}
		uri := DashboardResource().URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		active, err := tasks.SearchTasks(runCtx, planfix.TaskFilter{Status: "active", Limit: summaryWindow})
		if err != nil {
			return nil, operationError("task search", err)
		}
		projectList, err := projects.ListProjects(runCtx, summaryWindow, 0)
		if err != nil {
			return nil, operationError("project list", err)
		}

		now := time.Now()
		overdue := 0
		for _, task := range active {
			if task.Status.Kind == planfix.StatusOverdue {
				overdue++
				continue
			}
			if !task.DueAt.IsZero() && task.DueAt.Before(now) {
				overdue++
			}
		}

		tw := table.NewWriter()
		tw.AppendHeader(table.Row{"METRIC", "COUNT"})
		tw.AppendRow(table.Row{"Active tasks", len(active)})
		tw.AppendRow(table.Row{"Overdue tasks", overdue})
		tw.AppendRow(table.Row{"Projects", len(projectList)})

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "text/plain",
					Text:     tw.Render(),
				},
			},
		}, nil
	}
}

// TaskResourceHandler returns one task addressed by a task://{task_id} URI.
func TaskResourceHandler(api TaskAPI) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if api == nil {
			return nil, fmt.Errorf("task client is not configured")
		}
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("task id is required; use URI format task://{task_id}")
		}
		uri := req.Params.URI

		taskID, err := parseTaskIDFromURI(uri)
		if err != nil {
			return nil, fmt.Errorf("parse task id from URI: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		task, err := api.GetTask(runCtx, taskID)
		if err != nil {
			return nil, operationError("task read", err)
		}

		data, err := json.MarshalIndent(TaskPayload{Task: taskEntryFromDomain(task)}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal task: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

// RecentContactsResourceHandler returns the ten most recent contacts.
func RecentContactsResourceHandler(api ContactAPI) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if api == nil {
			return nil, fmt.Errorf("contact client is not configured")
		}
		uri := RecentContactsResource().URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		contacts, err := api.ListContacts(runCtx, 10, 0, false)
		if err != nil {
			return nil, operationError("contact list", err)
		}

		payload := ContactListPayload{Contacts: make([]ContactEntry, 0, len(contacts))}
		for _, contact := range contacts {
			payload.Contacts = append(payload.Contacts, contactEntryFromDomain(contact))
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal contact list: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

// ReportListResourceHandler returns the saved report definitions.
func ReportListResourceHandler(api AnalyticsAPI) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if api == nil {
			return nil, fmt.Errorf("report client is not configured")
		}
		uri := ReportListResource().URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		reports, err := api.ListReports(runCtx, summaryWindow, 0)
		if err != nil {
			return nil, operationError("report list", err)
		}

		payload := ReportListPayload{Reports: make([]ReportEntry, 0, len(reports))}
		for _, report := range reports {
			payload.Reports = append(payload.Reports, ReportEntry{
				ID:          report.ID,
				Name:        report.Name,
				Description: report.Description,
				Kind:        string(report.Kind),
			})
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal report list: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
