package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/lumina/pkg/grid"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerCreateTaskTool(srv, svc)
	registerCreateFromTextTool(srv, svc)
	registerToggleTaskTool(srv, svc)
	registerDeleteTaskTool(srv, svc)
	registerTasksOnTool(srv, svc)
	registerGridTool(srv, svc, "month_grid", grid.Month)
	registerGridTool(srv, svc, "week_grid", grid.Week)
	registerListTasksTool(srv, svc)
}

func registerCreateTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_task",
		mcp.WithDescription("Create a calendar task."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the task."),
		),
		mcp.WithString("date",
			mcp.Description("Start date as YYYY-MM-DD. Defaults to today."),
		),
		mcp.WithString("endDate",
			mcp.Description("Optional last date (YYYY-MM-DD) for a multi-day task."),
		),
		mcp.WithString("startTime",
			mcp.Description("Optional start time as HH:mm."),
		),
		mcp.WithString("endTime",
			mcp.Description("Optional end time as HH:mm."),
		),
		mcp.WithString("priority",
			mcp.Description("Priority of the task. Defaults to medium."),
			mcp.Enum("low", "medium", "high"),
		),
		mcp.WithString("category",
			mcp.Description("Optional category such as work or personal."),
		),
		mcp.WithString("description",
			mcp.Description("Optional longer description."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title       string `json:"title"`
			Date        string `json:"date"`
			EndDate     string `json:"endDate"`
			StartTime   string `json:"startTime"`
			EndTime     string `json:"endTime"`
			Priority    string `json:"priority"`
			Category    string `json:"category"`
			Description string `json:"description"`
		}

		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		t, err := svc.CreateTask(ctx, CreateTaskOptions(args))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(t)
	})
}

func registerCreateFromTextTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_task_from_text",
		mcp.WithDescription("Create a task from a natural language description such as \"Lunch with Sam tomorrow at noon\"."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Free text describing the task."),
		),
		mcp.WithString("reference",
			mcp.Description("Date (YYYY-MM-DD) that relative phrases resolve against. Defaults to today."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		ref := request.GetString("reference", "")

		t, err := svc.CreateFromText(ctx, text, ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(t)
	})
}

func registerToggleTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_task",
		mcp.WithDescription("Flip the completion state of a task. An unknown id changes nothing and reports found=false."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to toggle."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		c, err := svc.ToggleTask(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(c)
	})
}

func registerDeleteTaskTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_task",
		mcp.WithDescription("Delete a task. An unknown id changes nothing and reports found=false."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		c, err := svc.DeleteTask(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(c)
	})
}

func registerTasksOnTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"tasks_on",
		mcp.WithDescription("List the tasks active on a day, timed tasks by start time and then all-day tasks."),
		mcp.WithString("date",
			mcp.Description("Day as YYYY-MM-DD. Defaults to today."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		agenda, err := svc.TasksOn(ctx, request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(agenda)
	})
}

func registerGridTool(srv *server.MCPServer, svc *Service, name string, mode grid.Mode) {
	tool := mcp.NewTool(
		name,
		mcp.WithDescription(fmt.Sprintf("Show the %s page containing a day, with each day's tasks and load.", mode)),
		mcp.WithString("date",
			mcp.Description("Any day on the page as YYYY-MM-DD. Defaults to today."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		page, err := svc.Grid(ctx, mode, request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(page)
	})
}

func registerListTasksTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List every task in creation order."),
		mcp.WithBoolean("openOnly",
			mcp.Description("Only include tasks that are not completed."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tasks, err := svc.ListTasks(ctx, request.GetBool("openOnly", false))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"tasks": tasks,
			"count": len(tasks),
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
