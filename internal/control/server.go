// Package control exposes slideshow controls as MCP tools.
package control

import (
	"context"
	"fmt"

	"github.com/jwulff/slider/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Controller is the slideshow the tools operate on.
type Controller interface {
	Next(ctx context.Context) (session.State, error)
	Previous(ctx context.Context) (session.State, error)
	Show(ctx context.Context, index int) (session.State, error)
	Pause(ctx context.Context) (session.State, error)
	Resume(ctx context.Context) (session.State, error)
	Status(ctx context.Context) (session.State, error)
}

// Tool names.
const (
	ToolNext     = "next_slide"
	ToolPrevious = "previous_slide"
	ToolShow     = "show_slide"
	ToolPause    = "pause_slideshow"
	ToolResume   = "resume_slideshow"
	ToolStatus   = "slideshow_status"
)

// NewServer builds an MCP server with one tool per slideshow control.
func NewServer(ctrl Controller, version string) *server.MCPServer {
	s := server.NewMCPServer("slider", version, server.WithToolCapabilities(false))
	h := handlers{ctrl: ctrl}

	s.AddTool(mcp.NewTool(ToolNext,
		mcp.WithDescription("Advance to the next slide, wrapping to the first after the last."),
	), h.next)
	s.AddTool(mcp.NewTool(ToolPrevious,
		mcp.WithDescription("Go back one slide, wrapping to the last. Stops auto-advance."),
	), h.previous)
	s.AddTool(mcp.NewTool(ToolShow,
		mcp.WithDescription("Show the slide at a zero-based index. Out-of-range indexes wrap."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based slide index")),
	), h.show)
	s.AddTool(mcp.NewTool(ToolPause,
		mcp.WithDescription("Stop automatic slide advance."),
	), h.pause)
	s.AddTool(mcp.NewTool(ToolResume,
		mcp.WithDescription("Restart automatic slide advance."),
	), h.resume)
	s.AddTool(mcp.NewTool(ToolStatus,
		mcp.WithDescription("Report the visible slide and whether auto-advance is running."),
	), h.status)

	return s
}

// ServeStdio runs the MCP server on stdin/stdout until the peer disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

type handlers struct {
	ctrl Controller
}

func (h handlers) next(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return result(h.ctrl.Next(ctx))
}

func (h handlers) previous(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return result(h.ctrl.Previous(ctx))
}

func (h handlers) show(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index, err := req.RequireInt("index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return result(h.ctrl.Show(ctx, index))
}

func (h handlers) pause(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return result(h.ctrl.Pause(ctx))
}

func (h handlers) resume(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return result(h.ctrl.Resume(ctx))
}

func (h handlers) status(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return result(h.ctrl.Status(ctx))
}

func result(st session.State, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(Describe(st)), nil
}

// Describe renders a state as one line of text.
func Describe(st session.State) string {
	if st.Total == 0 {
		return "No slides loaded."
	}
	auto := "paused"
	if st.AutoAdvance {
		auto = "auto-advancing"
	}
	return fmt.Sprintf("Slide %d of %d: %s (%s)", st.Cursor+1, st.Total, st.Title(), auto)
}
