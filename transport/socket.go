// Package transport implements the Socket layer of spec §4.2: a TLS
// WebSocket duplex connection carrying codec-framed messages, with a
// dedicated reader goroutine draining into a mutex-protected inbound queue.
package transport

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/krunkerbot/client/codec"
)

// Origin is the fixed Origin header the game server expects from every
// client connection (spec §4.2).
const Origin = "https://krunker.io"

// ErrSocketNotOpen is returned by Send before Connect or once the socket
// has been closed.
var ErrSocketNotOpen = errors.New("transport: socket not open")

// Descriptor carries the host/gameId/clientId tuple an external matchmaker
// collaborator hands back for one game session (spec §6).
type Descriptor struct {
	Host     string
	GameID   string
	ClientID string
}

// Kind distinguishes the three shapes an inbound queue entry can take.
type Kind int

const (
	KindMessage Kind = iota
	KindError
	KindClose
)

// Event is one drained entry from the inbound queue.
type Event struct {
	Kind Kind
	Msg  codec.Message
	Err  error
}

// Socket is a single-writer, single-reader duplex connection. The writer is
// whichever goroutine calls Send/Close (the spec requires this be the tick
// loop); the reader is the goroutine spawned by Connect.
type Socket struct {
	rolling   *codec.Rolling
	tlsConfig *tls.Config

	mu     sync.Mutex
	events []Event

	connMu sync.Mutex
	conn   *websocket.Conn
	closed bool
}

// New returns a Socket that will roll its outbound padding counter using
// prime, starting at num=0 as required for a freshly opened socket.
func New(prime uint16) *Socket {
	return &Socket{rolling: codec.NewRolling(prime), tlsConfig: &tls.Config{}}
}

// AllowInsecureTLS disables certificate verification on the next Connect.
// Test-only: never call this against the real game server.
func (s *Socket) AllowInsecureTLS() {
	s.tlsConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
}

// Connect opens the TLS WebSocket described by desc and spawns the reader
// task. It blocks until the handshake completes.
func (s *Socket) Connect(desc Descriptor) error {
	uri := fmt.Sprintf("wss://%s/ws?gameId=%s&clientKey=%s", desc.Host, desc.GameID, desc.ClientID)

	cfg, err := websocket.NewConfig(uri, Origin)
	if err != nil {
		return fmt.Errorf("transport: building websocket config: %w", err)
	}
	cfg.TlsConfig = s.tlsConfig
	cfg.Header = http.Header{
		"Host":                  []string{desc.Host},
		"Connection":            []string{"Upgrade"},
		"Upgrade":               []string{"websocket"},
		"Sec-WebSocket-Version": []string{"13"},
	}

	conn, err := websocket.DialConfig(cfg)
	if err != nil {
		return fmt.Errorf("transport: dial: %w", err)
	}
	conn.PayloadType = websocket.BinaryFrame

	s.connMu.Lock()
	s.conn = conn
	s.closed = false
	s.connMu.Unlock()

	s.rolling = codec.NewRolling(s.rolling.Prime())
	s.mu.Lock()
	s.events = nil
	s.mu.Unlock()

	go s.readLoop(conn)
	return nil
}

func (s *Socket) readLoop(conn *websocket.Conn) {
	for {
		var raw []byte
		err := websocket.Message.Receive(conn, &raw)
		if err != nil {
			s.push(Event{Kind: KindClose})
			return
		}

		msg, decodeErr := codec.Decode(raw)
		if decodeErr != nil {
			s.push(Event{Kind: KindError, Err: decodeErr})
			continue
		}
		s.push(Event{Kind: KindMessage, Msg: msg})
	}
}

func (s *Socket) push(e Event) {
	s.mu.Lock()
	s.events = append(s.events, e)
	s.mu.Unlock()
}

// GetMessages atomically drains and returns every event queued since the
// last call.
func (s *Socket) GetMessages() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return nil
	}
	drained := s.events
	s.events = nil
	return drained
}

// Send encodes v via the codec and writes it as a single binary frame.
func (s *Socket) Send(v any) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	if s.closed || s.conn == nil {
		return ErrSocketNotOpen
	}

	payload, err := s.rolling.Encode(v)
	if err != nil {
		return fmt.Errorf("transport: encode: %w", err)
	}

	if _, err := s.conn.Write(payload); err != nil {
		return fmt.Errorf("transport: write: %w", err)
	}
	return nil
}

// Close sends a close frame and marks the socket closed. Idempotent;
// subsequent Sends fail with ErrSocketNotOpen.
func (s *Socket) Close() error {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
