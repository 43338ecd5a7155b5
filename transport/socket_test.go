package transport

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/websocket"

	"github.com/stretchr/testify/require"

	"github.com/krunkerbot/client/codec"
)

// echoServer accepts a connection, decodes each frame with the given prime,
// and immediately echoes it back re-encoded with the same prime — enough to
// exercise Connect/Send/GetMessages end to end without a real game server.
func echoServer(t *testing.T, prime uint16) *httptest.Server {
	t.Helper()
	handler := websocket.Handler(func(ws *websocket.Conn) {
		ws.PayloadType = websocket.BinaryFrame
		rolling := codec.NewRolling(prime)
		for {
			var raw []byte
			if err := websocket.Message.Receive(ws, &raw); err != nil {
				return
			}
			msg, err := codec.Decode(raw)
			if err != nil {
				continue
			}
			args := make([]any, 0, len(msg.Args)+1)
			args = append(args, msg.Type)
			args = append(args, msg.Args...)
			encoded, err := rolling.Encode(args)
			if err != nil {
				continue
			}
			_ = websocket.Message.Send(ws, encoded)
		}
	})
	return httptest.NewTLSServer(handler)
}

func TestSocket_ConnectSendReceive(t *testing.T) {
	const prime = 17
	server := echoServer(t, prime)
	defer server.Close()

	host := strings.TrimPrefix(server.URL, "https://")

	sock := New(prime)
	sock.AllowInsecureTLS()
	require.NoError(t, sock.Connect(Descriptor{Host: host, GameID: "g", ClientID: "c"}))
	defer sock.Close()

	require.NoError(t, sock.Send([]any{"po"}))

	var events []Event
	require.Eventually(t, func() bool {
		events = append(events, sock.GetMessages()...)
		return len(events) > 0
	}, 2*time.Second, 10*time.Millisecond)

	require.Equal(t, KindMessage, events[0].Kind)
	require.Equal(t, "po", events[0].Msg.Type)
}

func TestSocket_SendAfterCloseFails(t *testing.T) {
	const prime = 5
	server := echoServer(t, prime)
	defer server.Close()

	host := strings.TrimPrefix(server.URL, "https://")
	sock := New(prime)
	sock.AllowInsecureTLS()
	require.NoError(t, sock.Connect(Descriptor{Host: host, GameID: "g", ClientID: "c"}))

	require.NoError(t, sock.Close())
	require.NoError(t, sock.Close()) // idempotent

	err := sock.Send([]any{"po"})
	require.ErrorIs(t, err, ErrSocketNotOpen)
}

func TestSocket_SendBeforeConnectFails(t *testing.T) {
	sock := New(1)
	err := sock.Send([]any{"po"})
	require.ErrorIs(t, err, ErrSocketNotOpen)
}
