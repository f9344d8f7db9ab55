package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/framewm/internal/geometry"
	"github.com/1broseidon/framewm/internal/ipc"
)

func (s *Server) handleStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, ipc.StatusData, error) {
	st, err := s.frame.GetStatus()
	if err != nil {
		return nil, ipc.StatusData{}, fmt.Errorf("failed to get frame status: %w", err)
	}
	return nil, *st, nil
}

func (s *Server) handleMaximize(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	return s.act("maximize", s.frame.Maximize, true)
}

func (s *Server) handleMinimize(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	return s.act("minimize", s.frame.Minimize, true)
}

func (s *Server) handleRestore(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	return s.act("restore", s.frame.Restore, true)
}

func (s *Server) handleSnap(_ context.Context, _ *mcpsdk.CallToolRequest, args SnapInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	side, err := geometry.ParseSide(args.Side)
	if err != nil {
		return nil, ActionOutput{}, err
	}
	if side == geometry.SideNone {
		return nil, ActionOutput{}, fmt.Errorf("side is required")
	}
	return s.act("snap "+side.String(), func() error { return s.frame.Snap(side) }, true)
}

func (s *Server) handleSaveGeometry(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	return s.act("save_geometry", s.frame.SaveGeometry, false)
}

func (s *Server) handleReload(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	return s.act("reload", s.frame.Reload, true)
}

func (s *Server) handleQuit(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	// The frame is gone afterwards; there is no status to report.
	return s.act("quit", s.frame.Quit, false)
}

// act runs fn and, when withStatus is set, attaches the resulting frame
// state. A failed status read does not fail the action.
func (s *Server) act(name string, fn func() error, withStatus bool) (*mcpsdk.CallToolResult, ActionOutput, error) {
	if err := fn(); err != nil {
		s.logger.Warn("frame action failed", "action", name, "error", err)
		return nil, ActionOutput{}, fmt.Errorf("%s failed: %w", name, err)
	}
	s.logger.Debug("frame action", "action", name)

	out := ActionOutput{Action: name, OK: true}
	if withStatus {
		if st, err := s.frame.GetStatus(); err == nil {
			out.Status = st
		} else {
			s.logger.Debug("status after action unavailable", "action", name, "error", err)
		}
	}
	return nil, out, nil
}
