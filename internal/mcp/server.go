// Package mcp exposes the timeline engine as MCP tools over stdio.
package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/stint/internal/clock"
	"github.com/rpggio/stint/internal/repository"
)

const serverInstructions = `stint tracks time spent on named activities for a single user.
Activities live in a hierarchical catalog and must be created (create_activity)
before they can be started. Starting an activity finishes the one in progress.
Use get_status to see what is running and recent_activity for the log.`

// Config contains server configuration.
type Config struct {
	Store  repository.Store
	Clock  clock.Clock
	Logger *slog.Logger
}

// NewServer creates an MCP server with all timeline tools registered.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "stint",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	h := &handler{store: cfg.Store, clock: cfg.Clock, logger: cfg.Logger}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "start_activity",
		Description: "Start a catalogued activity, finishing any activity in progress",
	}, h.startActivity)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "finish_activity",
		Description: "Finish the activity in progress",
	}, h.finishActivity)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_activity",
		Description: "Create a new activity at an absolute path such as /work/project-x",
	}, h.createActivity)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_status",
		Description: "Report the activity in progress, if any",
	}, h.getStatus)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_activity",
		Description: "List the most recent activity intervals, grouped by day",
	}, h.recentActivity)

	return server
}
