package mcp

import (
	"context"
	"io"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/framewm/internal/geometry"
	"github.com/1broseidon/framewm/internal/ipc"
)

const (
	ServerName    = "framewm"
	ServerVersion = "0.1.0"
)

// Frame is the remote-control surface of a running frame. *ipc.Client
// implements it.
type Frame interface {
	GetStatus() (*ipc.StatusData, error)
	Maximize() error
	Minimize() error
	Restore() error
	Snap(side geometry.Side) error
	SaveGeometry() error
	Reload() error
	Quit() error
}

var _ Frame = (*ipc.Client)(nil)

// Server is the MCP server exposing frame control as tools.
type Server struct {
	mcpServer *mcpsdk.Server
	frame     Frame
	logger    *slog.Logger
}

// NewServer creates an MCP server that forwards tool calls to frame.
func NewServer(frame Frame, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		frame:  frame,
		logger: logger,
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "frame_status",
		Description: "Report the state of the running frameless window: interaction mode, snap side, window state, geometry, the geometry it restores to, active flags and whether a preview overlay is showing.",
	}, s.handleStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "frame_maximize",
		Description: "Toggle maximize. A maximized window is restored to its previous geometry; otherwise it is maximized.",
	}, s.handleMaximize)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "frame_minimize",
		Description: "Minimize (iconify) the window.",
	}, s.handleMinimize)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "frame_restore",
		Description: "Leave maximized or snapped state and return the window to its last free-floating geometry.",
	}, s.handleRestore)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "frame_snap",
		Description: "Snap the window to a side or corner of the available desktop area. Half-snap sides take half the area; corners take a quarter.",
	}, s.handleSnap)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "frame_save_geometry",
		Description: "Persist the window's free-floating geometry to the settings file now.",
	}, s.handleSaveGeometry)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "frame_reload",
		Description: "Re-read the configuration file and apply it to the running frame. An invalid file is reported and the running configuration is kept.",
	}, s.handleReload)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "frame_quit",
		Description: "Close the frame. Geometry is saved before the window goes away.",
	}, s.handleQuit)
}
