package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/framewm/internal/geometry"
	"github.com/1broseidon/framewm/internal/runtimepath"
)

const defaultClientTimeout = 5 * time.Second

// Client talks to a running frame over its unix socket. Each call opens
// a fresh connection.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the named frame. An empty name selects
// the default frame. Path errors surface on the first call.
func NewClient(name string) *Client {
	socketPath, _ := runtimepath.SocketPath(name)
	return NewClientAt(socketPath)
}

// NewClientAt creates a client for the server listening on socketPath.
func NewClientAt(socketPath string) *Client {
	return &Client{socketPath: socketPath, timeout: defaultClientTimeout}
}

// call sends req and decodes the reply. A reply with status ERROR is
// returned as an error.
func (c *Client) call(req *Request) (*Response, error) {
	if c.socketPath == "" {
		return nil, fmt.Errorf("no socket path for frame")
	}
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to frame: %w (is `framewm run` running?)", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(c.timeout))

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", req.Command, err)
	}
	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to read %s reply: %w", req.Command, err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) simple(cmd CommandType) error {
	_, err := c.call(&Request{Command: cmd})
	return err
}

// GetStatus retrieves the frame status.
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.call(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}
	st := new(StatusData)
	if err := json.Unmarshal(resp.Data, st); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}
	return st, nil
}

// Maximize toggles maximization, as the maximize button does.
func (c *Client) Maximize() error { return c.simple(CommandMaximize) }

func (c *Client) Minimize() error { return c.simple(CommandMinimize) }

// Restore returns a maximized or snapped window to its free geometry.
func (c *Client) Restore() error { return c.simple(CommandRestore) }

func (c *Client) SaveGeometry() error { return c.simple(CommandSaveGeometry) }

// Reload asks the frame to re-read its configuration file.
func (c *Client) Reload() error { return c.simple(CommandReload) }

// Quit closes the frame. Geometry is saved first when enabled.
func (c *Client) Quit() error { return c.simple(CommandQuit) }

// Snap snaps the window to a desktop side.
func (c *Client) Snap(side geometry.Side) error {
	payload, err := json.Marshal(SnapPayload{Side: side.String()})
	if err != nil {
		return fmt.Errorf("failed to marshal snap payload: %w", err)
	}
	_, err = c.call(&Request{Command: CommandSnap, Payload: payload})
	return err
}

// Ping reports whether a frame answers on the socket.
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
