package remote

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/jwulff/slider/internal/session"
)

// Controller is the slideshow the server drives.
type Controller interface {
	Next(ctx context.Context) (session.State, error)
	Previous(ctx context.Context) (session.State, error)
	Show(ctx context.Context, index int) (session.State, error)
	Pause(ctx context.Context) (session.State, error)
	Resume(ctx context.Context) (session.State, error)
	Status(ctx context.Context) (session.State, error)
	Subscribe() (<-chan session.State, func())
}

// Server accepts control connections on a Unix socket.
type Server struct {
	ctrl   Controller
	ln     net.Listener
	path   string
	logger *log.Logger

	mu    sync.Mutex
	conns map[net.Conn]struct{}
	wg    sync.WaitGroup
}

// Listen binds the socket at path, replacing a stale socket file.
func Listen(path string, ctrl Controller, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create socket dir: %w", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove stale socket: %w", err)
	}
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}
	return &Server{
		ctrl:   ctrl,
		ln:     ln,
		path:   path,
		logger: logger,
		conns:  make(map[net.Conn]struct{}),
	}, nil
}

// Path returns the socket path.
func (s *Server) Path() string { return s.path }

// Serve accepts connections until ctx is cancelled, then closes every open
// connection and waits for handlers to return.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.ln.Close()
		s.mu.Lock()
		for c := range s.conns {
			c.Close()
		}
		s.mu.Unlock()
	}()
	defer os.Remove(s.path)

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			s.wg.Wait()
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		s.mu.Lock()
		s.conns[conn] = struct{}{}
		if ctx.Err() != nil {
			conn.Close()
		}
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.forget(conn)
			s.handle(ctx, conn)
		}()
	}
}

func (s *Server) forget(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	conn.Close()
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	enc := json.NewEncoder(conn)

	for scanner.Scan() {
		var cmd Command
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil {
			if enc.Encode(Response{Error: "invalid command: " + err.Error()}) != nil {
				return
			}
			continue
		}

		if cmd.Cmd == CmdSubscribe {
			s.stream(ctx, conn, enc)
			return
		}

		if err := enc.Encode(s.dispatch(ctx, cmd)); err != nil {
			s.logger.Printf("remote: write response: %v", err)
			return
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		s.logger.Printf("remote: read command: %v", err)
	}
}

func (s *Server) dispatch(ctx context.Context, cmd Command) Response {
	var (
		st  session.State
		err error
	)
	switch cmd.Cmd {
	case CmdNext:
		st, err = s.ctrl.Next(ctx)
	case CmdPrev:
		st, err = s.ctrl.Previous(ctx)
	case CmdShow:
		if cmd.Index == nil {
			return Response{Error: "show requires index"}
		}
		st, err = s.ctrl.Show(ctx, *cmd.Index)
	case CmdPause:
		st, err = s.ctrl.Pause(ctx)
	case CmdResume:
		st, err = s.ctrl.Resume(ctx)
	case CmdStatus:
		st, err = s.ctrl.Status(ctx)
	default:
		return Response{Error: fmt.Sprintf("unknown command %q", cmd.Cmd)}
	}
	if err != nil {
		return Response{Error: err.Error()}
	}
	return responseFromState(st)
}

// stream acknowledges a subscription and forwards slide events until the
// session or the connection ends.
func (s *Server) stream(ctx context.Context, conn net.Conn, enc *json.Encoder) {
	events, cancel := s.ctrl.Subscribe()
	defer cancel()

	// Subscribers only listen; any read result means the peer went away.
	gone := make(chan struct{})
	go func() {
		io.Copy(io.Discard, conn)
		close(gone)
	}()

	st, err := s.ctrl.Status(ctx)
	if err != nil {
		enc.Encode(Response{Error: err.Error()})
		return
	}
	if err := enc.Encode(responseFromState(st)); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-gone:
			return
		case st, ok := <-events:
			if !ok {
				return
			}
			if err := enc.Encode(eventFromState(st)); err != nil {
				return
			}
		}
	}
}
