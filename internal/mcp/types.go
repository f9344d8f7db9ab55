package mcp

import "github.com/1broseidon/framewm/internal/ipc"

// EmptyInput is the input for tools that take no arguments.
type EmptyInput struct{}

// SnapInput is the input for the frame_snap tool.
type SnapInput struct {
	Side string `json:"side" jsonschema:"Desktop side to snap to: left, right, top, bottom, top_left, top_right, bottom_left or bottom_right"`
}

// ActionOutput is the output for tools that change the frame.
type ActionOutput struct {
	Action string `json:"action"`
	OK     bool   `json:"ok"`
	// Status is the frame state after the action, when it could be read.
	Status *ipc.StatusData `json:"status,omitempty"`
}
