package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"squares-board/internal/board"
	"squares-board/internal/domain"
)

// State names the listener's position in its connect/reconnect lifecycle.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
	Reconnecting
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Reconnecting:
		return "reconnecting"
	default:
		return "disconnected"
	}
}

// Config controls dialing and the reconnect backoff. Zero durations fall
// back to the defaults below; MaxRetries of zero retries without a ceiling.
type Config struct {
	URL              string
	Token            string
	InitialDelay     time.Duration
	MaxDelay         time.Duration
	MaxRetries       uint64
	HandshakeTimeout time.Duration
}

const (
	defaultInitialDelay     = 2 * time.Second
	defaultMaxDelay         = 30 * time.Second
	defaultHandshakeTimeout = 10 * time.Second
)

// Listener maintains one reconnecting push connection and applies "update"
// frames to the board. Frames of any other type are ignored; malformed
// frames are logged and skipped without tearing down the channel.
type Listener struct {
	cfg    Config
	board  *board.Board
	log    zerolog.Logger
	dialer *websocket.Dialer

	mu    sync.RWMutex
	state State
}

func NewListener(cfg Config, b *board.Board, log zerolog.Logger) *Listener {
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = defaultInitialDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = defaultMaxDelay
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = defaultHandshakeTimeout
	}
	return &Listener{
		cfg:    cfg,
		board:  b,
		log:    log,
		dialer: &websocket.Dialer{HandshakeTimeout: cfg.HandshakeTimeout},
	}
}

// State reports the current lifecycle state.
func (l *Listener) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

func (l *Listener) setState(s State) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
}

// Run connects and consumes frames until ctx is canceled or the retry
// ceiling is hit. Every dropped connection is re-dialed with exponential
// backoff; a successful dial resets the backoff window. Cancelling ctx
// closes the open socket and stops any pending reconnect timer.
func (l *Listener) Run(ctx context.Context) error {
	defer l.setState(Disconnected)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = l.cfg.InitialDelay
	policy.MaxInterval = l.cfg.MaxDelay
	policy.MaxElapsedTime = 0

	var bo backoff.BackOff = policy
	if l.cfg.MaxRetries > 0 {
		bo = backoff.WithMaxRetries(bo, l.cfg.MaxRetries)
	}
	bo = backoff.WithContext(bo, ctx)

	everConnected := false
	operation := func() error {
		if everConnected {
			l.setState(Reconnecting)
		} else {
			l.setState(Connecting)
		}

		conn, err := l.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			l.log.Warn().Err(err).Str("url", l.cfg.URL).Msg("push channel dial failed")
			return err
		}
		everConnected = true
		l.setState(Connected)
		l.log.Info().Str("url", l.cfg.URL).Msg("push channel connected")
		bo.Reset()

		err = l.read(ctx, conn)
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		l.log.Warn().Err(err).Msg("push channel closed, reconnecting")
		return err
	}

	return backoff.Retry(operation, bo)
}

func (l *Listener) dial(ctx context.Context) (*websocket.Conn, error) {
	header := http.Header{}
	if l.cfg.Token != "" {
		header.Set("Authorization", "Bearer "+l.cfg.Token)
	}
	conn, _, err := l.dialer.DialContext(ctx, l.cfg.URL, header)
	return conn, err
}

// read consumes frames until the connection drops or ctx is canceled.
func (l *Listener) read(ctx context.Context, conn *websocket.Conn) error {
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}
		l.handleFrame(data)
	}
}

type pushFrame struct {
	Type string `json:"type"`
	domain.Update
}

func (l *Listener) handleFrame(data []byte) {
	var frame pushFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		l.log.Warn().Err(err).Msg("dropping malformed push frame")
		return
	}
	if frame.Type != "update" {
		return
	}
	l.board.ApplyUpdate(frame.Update)
}
