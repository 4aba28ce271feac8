package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"planfixmcp/internal/planfix"
)

// EmployeeListInput represents the MCP tool input for listing account users.
type EmployeeListInput struct {
	Limit  int `json:"limit,omitempty" jsonschema:"maximum number of results (1-100, default 20)"`
	Offset int `json:"offset,omitempty" jsonschema:"number of results to skip"`
	Page   int `json:"page,omitempty" jsonschema:"1-based page number, alternative to offset"`
}

// EmployeeEntry represents one account user in MCP tool output.
type EmployeeEntry struct {
	ID       string `json:"id" jsonschema:"user identifier"`
	Name     string `json:"name" jsonschema:"display name"`
	Email    string `json:"email,omitempty" jsonschema:"email address"`
	Position string `json:"position,omitempty" jsonschema:"job title"`
}

// EmployeeListResult represents the MCP tool output for listing account users.
type EmployeeListResult struct {
	Employees []EmployeeEntry `json:"employees" jsonschema:"account users"`
	Count     int             `json:"count" jsonschema:"number of returned users"`
}

// EmployeeGetInput represents the MCP tool input for a user detail read.
type EmployeeGetInput struct {
	EmployeeID int `json:"employee_id" jsonschema:"user identifier"`
}

// EmployeeGetResult represents the MCP tool output for a user detail read.
type EmployeeGetResult struct {
	Employee EmployeeEntry `json:"employee" jsonschema:"user detail"`
}

// ReportListInput represents the MCP tool input for listing saved reports.
type ReportListInput struct {
	Limit  int `json:"limit,omitempty" jsonschema:"maximum number of results (1-100, default 20)"`
	Offset int `json:"offset,omitempty" jsonschema:"number of results to skip"`
	Page   int `json:"page,omitempty" jsonschema:"1-based page number, alternative to offset"`
}

// ReportEntry represents one saved report definition in MCP tool output.
type ReportEntry struct {
	ID          int    `json:"id" jsonschema:"report identifier"`
	Name        string `json:"name" jsonschema:"report name"`
	Description string `json:"description,omitempty" jsonschema:"report description"`
	Kind        string `json:"kind" jsonschema:"report family (time, financial, task, unknown)"`
}

// ReportListResult represents the MCP tool output for listing saved reports.
type ReportListResult struct {
	Reports []ReportEntry `json:"reports" jsonschema:"saved report definitions"`
	Count   int           `json:"count" jsonschema:"number of returned reports"`
}

// ProcessListInput represents the MCP tool input for listing processes.
type ProcessListInput struct {
	Limit  int `json:"limit,omitempty" jsonschema:"maximum number of results (1-100, default 20)"`
	Offset int `json:"offset,omitempty" jsonschema:"number of results to skip"`
	Page   int `json:"page,omitempty" jsonschema:"1-based page number, alternative to offset"`
}

// ProcessEntry represents one business process in MCP tool output.
type ProcessEntry struct {
	ID          int    `json:"id" jsonschema:"process identifier"`
	Name        string `json:"name" jsonschema:"process name"`
	Description string `json:"description,omitempty" jsonschema:"process description"`
	Status      string `json:"status,omitempty" jsonschema:"process status name"`
	CreatedAt   string `json:"created_at,omitempty" jsonschema:"RFC3339 creation timestamp"`
}

// ProcessListResult represents the MCP tool output for listing processes.
type ProcessListResult struct {
	Processes []ProcessEntry `json:"processes" jsonschema:"business process definitions"`
	Count     int            `json:"count" jsonschema:"number of returned processes"`
}

// AnalyticsReportInput represents the MCP tool input for report generation.
type AnalyticsReportInput struct {
	Kind        string `json:"kind" jsonschema:"report family (time, financial, task)"`
	PeriodStart string `json:"period_start" jsonschema:"period start date in YYYY-MM-DD form"`
	PeriodEnd   string `json:"period_end" jsonschema:"period end date in YYYY-MM-DD form"`
}

// AnalyticsReportResult represents the MCP tool output for report generation.
type AnalyticsReportResult struct {
	ID          int              `json:"id,omitempty" jsonschema:"report identifier"`
	Name        string           `json:"name,omitempty" jsonschema:"report name"`
	Kind        string           `json:"kind" jsonschema:"report family"`
	PeriodStart string           `json:"period_start" jsonschema:"period start date"`
	PeriodEnd   string           `json:"period_end" jsonschema:"period end date"`
	Rows        []map[string]any `json:"rows" jsonschema:"generated report rows"`
	RowCount    int              `json:"row_count" jsonschema:"number of rows"`
}

// EmployeeListTool defines the MCP tool schema for listing account users.
func EmployeeListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_employees",
		Description: "Lists the account's users",
	}
}

// EmployeeGetTool defines the MCP tool schema for a user detail read.
func EmployeeGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_employee",
		Description: "Fetches one account user by id",
	}
}

// ReportListTool defines the MCP tool schema for listing saved reports.
func ReportListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_reports",
		Description: "Lists the account's saved report definitions",
	}
}

// ProcessListTool defines the MCP tool schema for listing processes.
func ProcessListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_processes",
		Description: "Lists the account's business process definitions",
	}
}

// AnalyticsReportTool defines the MCP tool schema for report generation.
func AnalyticsReportTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_analytics_report",
		Description: "Generates a time, financial, or task report over a date period",
	}
}

// EmployeeListHandler executes an account user listing.
func EmployeeListHandler(api DirectoryAPI) mcp.ToolHandlerFor[EmployeeListInput, EmployeeListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EmployeeListInput) (*mcp.CallToolResult, EmployeeListResult, error) {
		invocationID := NewInvocationID()
		limit, offset, err := resolveWindow(input.Limit, input.Offset, input.Page)
		if err != nil {
			return nil, EmployeeListResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		employees, err := api.ListEmployees(runCtx, limit, offset)
		if err != nil {
			return nil, EmployeeListResult{}, operationError("employee list", err)
		}

		result := EmployeeListResult{Employees: make([]EmployeeEntry, 0, len(employees)), Count: len(employees)}
		for _, employee := range employees {
			result.Employees = append(result.Employees, EmployeeEntry{
				ID:       employee.ID,
				Name:     employee.Name,
				Email:    employee.Email,
				Position: employee.Position,
			})
		}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// EmployeeGetHandler executes a user detail read.
func EmployeeGetHandler(api DirectoryAPI) mcp.ToolHandlerFor[EmployeeGetInput, EmployeeGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EmployeeGetInput) (*mcp.CallToolResult, EmployeeGetResult, error) {
		invocationID := NewInvocationID()
		if input.EmployeeID <= 0 {
			return nil, EmployeeGetResult{}, fmt.Errorf("employee_id is required")
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		employee, err := api.GetEmployee(runCtx, input.EmployeeID)
		if err != nil {
			return nil, EmployeeGetResult{}, operationError("employee read", err)
		}
		return CallToolResultWithMetadata(invocationID), EmployeeGetResult{Employee: EmployeeEntry{
			ID:       employee.ID,
			Name:     employee.Name,
			Email:    employee.Email,
			Position: employee.Position,
		}}, nil
	}
}

// ReportListHandler executes a saved report listing.
func ReportListHandler(api AnalyticsAPI) mcp.ToolHandlerFor[ReportListInput, ReportListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ReportListInput) (*mcp.CallToolResult, ReportListResult, error) {
		invocationID := NewInvocationID()
		limit, offset, err := resolveWindow(input.Limit, input.Offset, input.Page)
		if err != nil {
			return nil, ReportListResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		reports, err := api.ListReports(runCtx, limit, offset)
		if err != nil {
			return nil, ReportListResult{}, operationError("report list", err)
		}

		result := ReportListResult{Reports: make([]ReportEntry, 0, len(reports)), Count: len(reports)}
		for _, report := range reports {
			result.Reports = append(result.Reports, ReportEntry{
				ID:          report.ID,
				Name:        report.Name,
				Description: report.Description,
				Kind:        string(report.Kind),
			})
		}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// ProcessListHandler executes a business process listing.
func ProcessListHandler(api DirectoryAPI) mcp.ToolHandlerFor[ProcessListInput, ProcessListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ProcessListInput) (*mcp.CallToolResult, ProcessListResult, error) {
		invocationID := NewInvocationID()
		limit, offset, err := resolveWindow(input.Limit, input.Offset, input.Page)
		if err != nil {
			return nil, ProcessListResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		processes, err := api.ListProcesses(runCtx, limit, offset)
		if err != nil {
			return nil, ProcessListResult{}, operationError("process list", err)
		}

		result := ProcessListResult{Processes: make([]ProcessEntry, 0, len(processes)), Count: len(processes)}
		for _, process := range processes {
			result.Processes = append(result.Processes, ProcessEntry{
				ID:          process.ID,
				Name:        process.Name,
				Description: process.Description,
				Status:      process.Status,
				CreatedAt:   formatTime(process.CreatedAt),
			})
		}
		return CallToolResultWithMetadata(invocationID), result, nil
	}
}

// AnalyticsReportHandler executes a report generation request.
func AnalyticsReportHandler(api AnalyticsAPI) mcp.ToolHandlerFor[AnalyticsReportInput, AnalyticsReportResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AnalyticsReportInput) (*mcp.CallToolResult, AnalyticsReportResult, error) {
		invocationID := NewInvocationID()

		kind := planfix.ParseReportKind(input.Kind)
		if kind == planfix.ReportKindUnknown {
			return nil, AnalyticsReportResult{}, fmt.Errorf("kind must be one of: time, financial, task")
		}
		start, err := time.Parse("2006-01-02", input.PeriodStart)
		if err != nil {
			return nil, AnalyticsReportResult{}, fmt.Errorf("period_start must be a YYYY-MM-DD date")
		}
		end, err := time.Parse("2006-01-02", input.PeriodEnd)
		if err != nil {
			return nil, AnalyticsReportResult{}, fmt.Errorf("period_end must be a YYYY-MM-DD date")
		}

		runCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		report, err := api.GetAnalyticsReport(runCtx, planfix.ReportRequest{
			Kind:        kind,
			PeriodStart: start,
			PeriodEnd:   end,
		})
		if err != nil {
			return nil, AnalyticsReportResult{}, operationError("report generation", err)
		}

		rows := make([]map[string]any, 0, len(report.Rows))
		for _, row := range report.Rows {
			rows = append(rows, map[string]any(row))
		}
		return CallToolResultWithMetadata(invocationID), AnalyticsReportResult{
			ID:          report.ID,
			Name:        report.Name,
			Kind:        string(report.Kind),
			PeriodStart: input.PeriodStart,
			PeriodEnd:   input.PeriodEnd,
			Rows:        rows,
			RowCount:    len(rows),
		}, nil
	}
}
