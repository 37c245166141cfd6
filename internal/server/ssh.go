package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"
	"github.com/google/uuid"

	"matrix-arcade/internal/config"
	"matrix-arcade/internal/input"
	"matrix-arcade/internal/matrix"
	"matrix-arcade/internal/metrics"
	"matrix-arcade/internal/puzzle"
)

// Action is a decoded keypress.
type Action int

const (
	ActionNone Action = iota
	ActionButton
	ActionQuit
)

const launcherText = "space: play   q: quit"

// SSHServer serves one puzzle engine per SSH session.
type SSHServer struct {
	addr    string
	hostKey string
	cfg     *config.Config
	metrics *metrics.Collector
}

// NewSSHServer creates a new SSH server bound to the given address.
// m may be nil to disable metrics.
func NewSSHServer(addr string, hostKey string, cfg *config.Config, m *metrics.Collector) *SSHServer {
	return &SSHServer{
		addr:    addr,
		hostKey: hostKey,
		cfg:     cfg,
		metrics: m,
	}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH server listening on %s", s.addr)
	return server.ListenAndServe()
}

func (s *SSHServer) newEngine(id string, term *matrix.Terminal, in puzzle.Input) *puzzle.Engine {
	opts := s.cfg.ControllerOptions()
	opts.Source = s.cfg.Source()
	if s.metrics != nil {
		opts.Observer = s.metrics
	}
	eng := puzzle.NewEngine(term, in, opts)
	eng.SetLogger(log.New(log.Writer(), "["+id[:8]+"] ", log.Flags()))
	return eng
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}
	sessionID := uuid.NewString()

	log.Printf("Session connected: %s (%s)", username, sessionID)
	defer log.Printf("Session closed: %s (%s)", username, sessionID)
	if s.metrics != nil {
		s.metrics.SessionStarted()
		defer s.metrics.SessionEnded()
	}

	term := matrix.NewTerminal(sess, s.cfg.Tint())
	term.Center(ptyReq.Window.Width, ptyReq.Window.Height)
	var latch input.Latch
	eng := s.newEngine(sessionID, term, &latch)

	// Setup terminal
	io.WriteString(sess, matrix.EnableAltScreen())
	io.WriteString(sess, matrix.HideCursor())
	defer func() {
		io.WriteString(sess, matrix.ShowCursor())
		io.WriteString(sess, matrix.DisableAltScreen())
	}()

	ctx, cancel := context.WithCancel(sess.Context())
	defer cancel()

	// presses wakes the launcher; the latch serves the engine.
	presses := make(chan struct{}, 1)

	// Goroutine: read input
	go func() {
		defer cancel()
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				return
			}
			for _, action := range parseInput(buf[:n]) {
				switch action {
				case ActionQuit:
					return
				case ActionButton:
					latch.Release()
					select {
					case presses <- struct{}{}:
					default:
					}
				}
			}
		}
	}()

	// Goroutine: handle window resizes
	go func() {
		for win := range winCh {
			term.Center(win.Width, win.Height)
		}
	}()

	for {
		latch.PollReleaseEdge()
		err := eng.Run(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("Session %s: %v", sessionID, err)
			}
			return
		}

		// Button released: back to the launcher until it is pressed again.
		select {
		case <-presses:
		default:
		}
		io.WriteString(sess, matrix.ClearScreen()+matrix.MoveTo(1, 1)+launcherText)
		term.Invalidate()

		select {
		case <-ctx.Done():
			return
		case <-presses:
		}
	}
}

// parseInput converts raw bytes into actions.
// Space and Enter press the button; Q and Ctrl-C quit. Escape sequences are
// skipped whole.
func parseInput(data []byte) []Action {
	var actions []Action
	i := 0
	for i < len(data) {
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			i += 3
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case ' ', '\r', '\n':
			actions = append(actions, ActionButton)
		case 'q', 'Q':
			actions = append(actions, ActionQuit)
		case 3: // Ctrl-C
			actions = append(actions, ActionQuit)
		}
		i += size
	}
	return actions
}
