package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/framewm/internal/frame"
	"github.com/1broseidon/framewm/internal/geometry"
)

// CommandType names a request.
type CommandType string

const (
	CommandGetStatus    CommandType = "GET_STATUS"
	CommandMaximize     CommandType = "MAXIMIZE"
	CommandMinimize     CommandType = "MINIMIZE"
	CommandRestore      CommandType = "RESTORE"
	CommandSnap         CommandType = "SNAP"
	CommandSaveGeometry CommandType = "SAVE_GEOMETRY"
	CommandReload       CommandType = "RELOAD"
	CommandQuit         CommandType = "QUIT"
)

// Request is one newline-terminated JSON object sent by a client.
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response is the server's single reply to a Request.
type Response struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData is the GET_STATUS reply.
type StatusData struct {
	Name              string        `json:"name"`
	Mode              string        `json:"mode"`
	SnapSide          string        `json:"snap_side"`
	State             string        `json:"state"`
	Maximized         bool          `json:"maximized"`
	Minimized         bool          `json:"minimized"`
	Geometry          geometry.Rect `json:"geometry"`
	PreModifyGeometry geometry.Rect `json:"pre_modify_geometry"`
	Flags             string        `json:"flags"`
	BorderWidth       int           `json:"border_width"`
	PreviewActive     bool          `json:"preview_active"`
	ConfigPath        string        `json:"config_path,omitempty"`
	UptimeSeconds     int64         `json:"uptime_seconds"`
}

// NewStatusData converts a manager snapshot into its wire form.
func NewStatusData(st frame.Status) StatusData {
	return StatusData{
		Name:              st.Name,
		Mode:              st.Mode.String(),
		SnapSide:          st.SnapSide.String(),
		State:             st.State.String(),
		Maximized:         st.Maximized(),
		Minimized:         st.Minimized(),
		Geometry:          st.Geometry,
		PreModifyGeometry: st.PreModifyGeometry,
		Flags:             st.Flags.String(),
		BorderWidth:       st.BorderWidth,
		PreviewActive:     st.PreviewActive,
	}
}

// SnapPayload is the payload of SNAP.
type SnapPayload struct {
	Side string `json:"side"`
}

const (
	statusOK    = "OK"
	statusError = "ERROR"
)

// okResponse wraps data, which may be nil, in a successful response.
func okResponse(data any) *Response {
	resp := &Response{Status: statusOK}
	if data == nil {
		return resp
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return errorResponse("failed to marshal response data: %v", err)
	}
	resp.Data = raw
	return resp
}

func errorResponse(format string, args ...any) *Response {
	return &Response{Status: statusError, Error: fmt.Sprintf(format, args...)}
}

// Err returns the server-side failure carried by r, if any.
func (r *Response) Err() error {
	if r.Status != statusError {
		return nil
	}
	return fmt.Errorf("frame error: %s", r.Error)
}
