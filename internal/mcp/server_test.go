package mcp

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/framewm/internal/geometry"
	"github.com/1broseidon/framewm/internal/ipc"
)

type fakeFrame struct {
	mu        sync.Mutex
	calls     []string
	status    ipc.StatusData
	statusErr error
	actionErr error
}

func (f *fakeFrame) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.actionErr
}

func (f *fakeFrame) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeFrame) GetStatus() (*ipc.StatusData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	st := f.status
	return &st, nil
}

func (f *fakeFrame) Maximize() error     { return f.record("maximize") }
func (f *fakeFrame) Minimize() error     { return f.record("minimize") }
func (f *fakeFrame) Restore() error      { return f.record("restore") }
func (f *fakeFrame) SaveGeometry() error { return f.record("save") }
func (f *fakeFrame) Reload() error       { return f.record("reload") }
func (f *fakeFrame) Quit() error         { return f.record("quit") }
func (f *fakeFrame) Snap(side geometry.Side) error {
	return f.record("snap " + side.String())
}

func connect(t *testing.T, frame Frame) *mcpsdk.ClientSession {
	t.Helper()
	ctx := context.Background()
	s := NewServer(frame, nil)

	serverTransport, clientTransport := mcpsdk.NewInMemoryTransports()
	ss, err := s.mcpServer.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	t.Cleanup(func() { ss.Close() })

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test", Version: "0"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { cs.Close() })
	return cs
}

func call(t *testing.T, cs *mcpsdk.ClientSession, name string, args map[string]any) *mcpsdk.CallToolResult {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	res, err := cs.CallTool(context.Background(), &mcpsdk.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	return res
}

func resultText(res *mcpsdk.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		if tc, ok := c.(*mcpsdk.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func TestListTools(t *testing.T) {
	cs := connect(t, &fakeFrame{})
	res, err := cs.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	want := []string{
		"frame_maximize", "frame_minimize", "frame_quit", "frame_reload",
		"frame_restore", "frame_save_geometry", "frame_snap", "frame_status",
	}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("tools = %v, want %v", names, want)
	}
}

func TestStatusTool(t *testing.T) {
	f := &fakeFrame{status: ipc.StatusData{
		Name:     "demo",
		Mode:     "none",
		SnapSide: "left",
		Geometry: geometry.Rect{X: 0, Y: 0, Width: 960, Height: 1080},
	}}
	cs := connect(t, f)

	res := call(t, cs, "frame_status", nil)
	if res.IsError {
		t.Fatalf("frame_status failed: %s", resultText(res))
	}
	out, ok := res.StructuredContent.(map[string]any)
	if !ok {
		t.Fatalf("structured content = %T", res.StructuredContent)
	}
	if out["name"] != "demo" || out["snap_side"] != "left" {
		t.Fatalf("unexpected status: %v", out)
	}
}

func TestStatusToolReportsError(t *testing.T) {
	cs := connect(t, &fakeFrame{statusErr: errors.New("no frame running")})
	res := call(t, cs, "frame_status", nil)
	if !res.IsError {
		t.Fatal("expected tool error")
	}
	if !strings.Contains(resultText(res), "no frame running") {
		t.Fatalf("error text = %q", resultText(res))
	}
}

func TestActionTools(t *testing.T) {
	tests := []struct {
		tool string
		args map[string]any
		want string
	}{
		{"frame_maximize", nil, "maximize"},
		{"frame_minimize", nil, "minimize"},
		{"frame_restore", nil, "restore"},
		{"frame_save_geometry", nil, "save"},
		{"frame_reload", nil, "reload"},
		{"frame_quit", nil, "quit"},
		{"frame_snap", map[string]any{"side": "top-left"}, "snap top_left"},
		{"frame_snap", map[string]any{"side": "Right"}, "snap right"},
	}
	for _, tt := range tests {
		t.Run(tt.tool+" "+tt.want, func(t *testing.T) {
			f := &fakeFrame{status: ipc.StatusData{Name: "demo"}}
			cs := connect(t, f)
			res := call(t, cs, tt.tool, tt.args)
			if res.IsError {
				t.Fatalf("%s failed: %s", tt.tool, resultText(res))
			}
			calls := f.recorded()
			if len(calls) != 1 || calls[0] != tt.want {
				t.Fatalf("calls = %v, want [%s]", calls, tt.want)
			}
		})
	}
}

func TestSnapRejectsBadSide(t *testing.T) {
	for _, side := range []string{"sideways", "none", ""} {
		f := &fakeFrame{}
		cs := connect(t, f)
		res := call(t, cs, "frame_snap", map[string]any{"side": side})
		if !res.IsError {
			t.Fatalf("side %q: expected tool error", side)
		}
		if calls := f.recorded(); len(calls) != 0 {
			t.Fatalf("side %q: frame should not be called, got %v", side, calls)
		}
	}
}

func TestActionErrorIsToolError(t *testing.T) {
	f := &fakeFrame{actionErr: errors.New("frame error: boom")}
	cs := connect(t, f)
	res := call(t, cs, "frame_maximize", nil)
	if !res.IsError {
		t.Fatal("expected tool error")
	}
	if !strings.Contains(resultText(res), "maximize failed") {
		t.Fatalf("error text = %q", resultText(res))
	}
}

func TestActionSurvivesStatusFailure(t *testing.T) {
	f := &fakeFrame{statusErr: errors.New("gone")}
	_, out, err := NewServer(f, nil).act("restore", f.Restore, true)
	if err != nil {
		t.Fatalf("act: %v", err)
	}
	if !out.OK || out.Status != nil {
		t.Fatalf("out = %+v", out)
	}
}
