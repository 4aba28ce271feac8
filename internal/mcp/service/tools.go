package service

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"planfixmcp/internal/mcp/domain"
	"planfixmcp/internal/planfix"
)

func registerTaskTools(mcpServer *mcp.Server, client *planfix.Client) {
	mcp.AddTool(mcpServer, domain.TaskSearchTool(), domain.TaskSearchHandler(client))
	mcp.AddTool(mcpServer, domain.TaskGetTool(), domain.TaskGetHandler(client))
	mcp.AddTool(mcpServer, domain.TaskCreateTool(), domain.TaskCreateHandler(client))
	mcp.AddTool(mcpServer, domain.TaskStatusUpdateTool(), domain.TaskStatusUpdateHandler(client))
	mcp.AddTool(mcpServer, domain.CommentAddTool(), domain.CommentAddHandler(client))
	mcp.AddTool(mcpServer, domain.CommentListTool(), domain.CommentListHandler(client))
	mcp.AddTool(mcpServer, domain.FileListTool(), domain.FileListHandler(client))
}

func registerContactTools(mcpServer *mcp.Server, client *planfix.Client) {
	mcp.AddTool(mcpServer, domain.ContactGetTool(), domain.ContactGetHandler(client))
	mcp.AddTool(mcpServer, domain.ContactAddTool(), domain.ContactAddHandler(client))
}

func registerProjectTools(mcpServer *mcp.Server, client *planfix.Client) {
	mcp.AddTool(mcpServer, domain.ProjectCreateTool(), domain.ProjectCreateHandler(client))
}

func registerDirectoryTools(mcpServer *mcp.Server, client *planfix.Client) {
	mcp.AddTool(mcpServer, domain.EmployeeListTool(), domain.EmployeeListHandler(client))
	mcp.AddTool(mcpServer, domain.EmployeeGetTool(), domain.EmployeeGetHandler(client))
	mcp.AddTool(mcpServer, domain.ReportListTool(), domain.ReportListHandler(client))
	mcp.AddTool(mcpServer, domain.ProcessListTool(), domain.ProcessListHandler(client))
	mcp.AddTool(mcpServer, domain.AnalyticsReportTool(), domain.AnalyticsReportHandler(client))
}

// registerWorkspaceResources registers the readable MCP resources.
func registerWorkspaceResources(mcpServer *mcp.Server, client *planfix.Client) {
	mcpServer.AddResource(domain.ProjectListResource(), domain.ProjectListResourceHandler(client))
	mcpServer.AddResource(domain.DashboardResource(), domain.DashboardResourceHandler(client, client))
	mcpServer.AddResource(domain.RecentContactsResource(), domain.RecentContactsResourceHandler(client))
	mcpServer.AddResource(domain.ReportListResource(), domain.ReportListResourceHandler(client))
	mcpServer.AddResourceTemplate(domain.TaskResourceTemplate(), domain.TaskResourceHandler(client))
}

// registerPlanningPrompts registers the parameterized prompt templates.
func registerPlanningPrompts(mcpServer *mcp.Server, _ *planfix.Client) {
	mcpServer.AddPrompt(domain.AnalyzeProjectStatusPrompt(), domain.AnalyzeProjectStatusHandler())
	mcpServer.AddPrompt(domain.CreateWeeklyReportPrompt(), domain.CreateWeeklyReportHandler())
	mcpServer.AddPrompt(domain.PlanSprintPrompt(), domain.PlanSprintHandler())
}
