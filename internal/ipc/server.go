package ipc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/1broseidon/framewm/internal/geometry"
	"github.com/1broseidon/framewm/internal/runtimepath"
)

// Controller is the frame the server controls. Implementations must be safe
// to call from the server's connection goroutines.
type Controller interface {
	Status() (StatusData, error)
	Maximize() error
	Minimize() error
	Restore() error
	Snap(side geometry.Side) error
	SaveGeometry() error
	Reload() error
	Quit() error
}

// Server answers one request per connection on a unix socket.
type Server struct {
	socketPath string
	ctrl       Controller
	logger     *slog.Logger

	listener net.Listener
	stopping atomic.Bool
	wg       sync.WaitGroup
}

// connDeadline bounds a whole request, including the controller call.
const connDeadline = 10 * time.Second

// NewServer creates a server on the socket of the named frame.
func NewServer(name string, ctrl Controller, logger *slog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath(name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return NewServerAt(socketPath, ctrl, logger), nil
}

// NewServerAt creates a server listening on socketPath.
func NewServerAt(socketPath string, ctrl Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{socketPath: socketPath, ctrl: ctrl, logger: logger}
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string { return s.socketPath }

// Start binds the socket and serves in the background. It refuses to
// replace a socket another frame still answers on.
func (s *Server) Start() error {
	if conn, err := net.DialTimeout("unix", s.socketPath, 200*time.Millisecond); err == nil {
		conn.Close()
		return fmt.Errorf("another frame is already listening on %s", s.socketPath)
	}
	if err := os.Remove(s.socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stale socket: %w", err)
	}

	ln, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	if err := os.Chmod(s.socketPath, 0o600); err != nil {
		ln.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}
	s.listener = ln
	s.logger.Info("ipc server listening", "socket", s.socketPath)

	s.wg.Add(1)
	go s.serve()
	return nil
}

func (s *Server) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.stopping.Load() {
				return
			}
			s.logger.Warn("ipc accept failed", "error", err)
			continue
		}
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(connDeadline))

	var resp *Response
	var req Request
	if err := json.NewDecoder(conn).Decode(&req); err != nil {
		resp = errorResponse("Invalid request: %v", err)
	} else {
		s.logger.Debug("ipc request", "command", req.Command)
		resp = s.dispatch(&req)
	}
	if err := json.NewEncoder(conn).Encode(resp); err != nil {
		s.logger.Warn("ipc write failed", "error", err)
	}
}

func (s *Server) dispatch(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.status()
	case CommandMaximize:
		return result(s.ctrl.Maximize(), "maximize")
	case CommandMinimize:
		return result(s.ctrl.Minimize(), "minimize")
	case CommandRestore:
		return result(s.ctrl.Restore(), "restore")
	case CommandSnap:
		return s.snap(req.Payload)
	case CommandSaveGeometry:
		return result(s.ctrl.SaveGeometry(), "save geometry")
	case CommandReload:
		return result(s.ctrl.Reload(), "reload config")
	case CommandQuit:
		return result(s.ctrl.Quit(), "quit")
	}
	return errorResponse("Unknown command: %s", req.Command)
}

func result(err error, what string) *Response {
	if err != nil {
		return errorResponse("Failed to %s: %v", what, err)
	}
	return okResponse(nil)
}

func (s *Server) status() *Response {
	st, err := s.ctrl.Status()
	if err != nil {
		return errorResponse("Failed to get status: %v", err)
	}
	return okResponse(st)
}

func (s *Server) snap(payload json.RawMessage) *Response {
	var p SnapPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return errorResponse("Invalid snap payload: %v", err)
	}
	side, err := geometry.ParseSide(p.Side)
	if err != nil {
		return errorResponse("%v", err)
	}
	if side == geometry.SideNone {
		return errorResponse("side is required")
	}
	return result(s.ctrl.Snap(side), "snap")
}

// Stop closes the listener, waits for the accept loop and removes the
// socket. It is safe to call more than once.
func (s *Server) Stop() {
	if s.stopping.Swap(true) {
		return
	}
	if s.listener != nil {
		s.listener.Close()
		s.wg.Wait()
	}
	os.Remove(s.socketPath)
}
