package domain

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// defaultSprintDays is the sprint length used when the caller gives none.
const defaultSprintDays = 14

// AnalyzeProjectStatusPrompt defines the project health review prompt.
func AnalyzeProjectStatusPrompt() *mcp.Prompt {
	return &mcp.Prompt{
		Name:        "analyze_project_status",
		Description: "Guides a health review of one project using the task and project tools",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "project_name",
				Description: "Name of the project to analyze",
				Required:    true,
			},
		},
	}
}

// CreateWeeklyReportPrompt defines the weekly activity report prompt.
func CreateWeeklyReportPrompt() *mcp.Prompt {
	return &mcp.Prompt{
		Name:        "create_weekly_report",
		Description: "Guides the assembly of a weekly activity report for a given week",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "week_start",
				Description: "First day of the week in YYYY-MM-DD form",
				Required:    true,
			},
		},
	}
}

// PlanSprintPrompt defines the sprint planning prompt.
func PlanSprintPrompt() *mcp.Prompt {
	return &mcp.Prompt{
		Name:        "plan_sprint",
		Description: "Guides sprint planning from the current backlog",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "sprint_duration",
				Description: "Sprint length in days (default 14)",
			},
		},
	}
}

func promptArgument(req *mcp.GetPromptRequest, name string) string {
	if req == nil || req.Params == nil {
		return ""
	}
	return strings.TrimSpace(req.Params.Arguments[name])
}

func promptResult(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}

// AnalyzeProjectStatusHandler renders the project health review prompt.
func AnalyzeProjectStatusHandler() mcp.PromptHandler {
	return func(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		projectName := promptArgument(req, "project_name")
		if projectName == "" {
			return nil, fmt.Errorf("project_name is required")
		}

		text := fmt.Sprintf(`Analyze the status of the project %q.

1. Call search_tasks with query %q to locate the project's tasks, or read
   projects://list to find the project id first.
2. Call search_tasks with the project_id and status "active", then again with
   status "completed", to measure progress.
3. Flag tasks whose due_at is in the past and tasks with priority HIGH or
   URGENT that have no assignee.
4. Summarize: completion ratio, overdue count, risks, and suggested next
   actions for the project owner.`, projectName, projectName)

		return promptResult(fmt.Sprintf("Health review of project %q", projectName), text), nil
	}
}

// CreateWeeklyReportHandler renders the weekly report prompt. The week runs
// from week_start through the following six days.
func CreateWeeklyReportHandler() mcp.PromptHandler {
	return func(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		weekStart := promptArgument(req, "week_start")
		if weekStart == "" {
			return nil, fmt.Errorf("week_start is required")
		}
		start, err := time.Parse("2006-01-02", weekStart)
		if err != nil {
			return nil, fmt.Errorf("week_start must be a YYYY-MM-DD date")
		}
		end := start.AddDate(0, 0, 6)

		text := fmt.Sprintf(`Assemble the weekly activity report for %s through %s.

1. Call get_analytics_report with kind "time", period_start %q, and
   period_end %q for the hours worked.
2. Call search_tasks with status "completed" to list what was finished this
   week, and with status "active" for what carried over.
3. Read dashboard://summary for the current workspace totals.
4. Write the report with sections: accomplishments, hours by person, carried
   over work, and blockers.`,
			start.Format("2006-01-02"), end.Format("2006-01-02"),
			start.Format("2006-01-02"), end.Format("2006-01-02"))

		return promptResult(fmt.Sprintf("Weekly report for %s", start.Format("2006-01-02")), text), nil
	}
}

// PlanSprintHandler renders the sprint planning prompt.
func PlanSprintHandler() mcp.PromptHandler {
	return func(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		days := defaultSprintDays
		if raw := promptArgument(req, "sprint_duration"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				return nil, fmt.Errorf("sprint_duration must be a positive number of days")
			}
			days = parsed
		}

		text := fmt.Sprintf(`Plan the next sprint of %d days.

1. Call search_tasks with status "active" to collect the backlog.
2. Call list_employees to see who is available for assignment.
3. Select the tasks that fit the sprint, preferring URGENT and HIGH priority
   and anything already overdue.
4. For each selected task, call update_task_status to move it into the
   sprint status, and create_task for any missing follow-up work with a
   due_date inside the sprint window.
5. Summarize the sprint plan: scope, assignments, and capacity risks.`, days)

		return promptResult(fmt.Sprintf("Sprint plan for %d days", days), text), nil
	}
}
