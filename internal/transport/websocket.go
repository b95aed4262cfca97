// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultHandshakeTimeout is the time allowed for the WebSocket handshake.
const DefaultHandshakeTimeout = 10 * time.Second

// closeWait is the time allowed to send the close frame on [WebSocketConn.Close].
const closeWait = time.Second

// WebSocketConn is a [MessageConn] on a WebSocket connection.
type WebSocketConn struct {
	conn *websocket.Conn
}

var _ MessageConn = (*WebSocketConn)(nil)

// NewWebSocketConn creates a new [WebSocketConn] on the given established
// connection.
func NewWebSocketConn(conn *websocket.Conn) *WebSocketConn {
	return &WebSocketConn{conn: conn}
}

// Receive returns the next data or close frame. Control frames other than
// close are handled by the connection itself.
func (c *WebSocketConn) Receive() (Frame, error) {
	msgType, data, err := c.conn.ReadMessage()
	if err != nil {
		var closeErr *websocket.CloseError
		if !errors.As(err, &closeErr) {
			return Frame{}, err //nolint:wrapcheck
		}

		switch closeErr.Code {
		case websocket.CloseAbnormalClosure:
			// Connection dropped without close frame.
			return Frame{}, io.EOF
		case websocket.CloseNoStatusReceived:
			return Frame{Kind: FrameClose}, nil
		default:
			return Frame{
				Kind: FrameClose,
				Close: &CloseStatus{
					Code:   closeErr.Code,
					Reason: closeErr.Text,
				},
			}, nil
		}
	}

	switch msgType {
	case websocket.BinaryMessage:
		return Frame{Kind: FrameBinary, Data: data}, nil
	case websocket.TextMessage:
		return Frame{Kind: FrameText, Data: data}, nil
	default:
		return Frame{Kind: FrameUnknown, Data: data}, nil
	}
}

// Send sends the given frame.
func (c *WebSocketConn) Send(frame Frame) error {
	switch frame.Kind {
	case FrameBinary:
		return c.conn.WriteMessage(websocket.BinaryMessage, frame.Data) //nolint:wrapcheck
	case FrameText:
		return c.conn.WriteMessage(websocket.TextMessage, frame.Data) //nolint:wrapcheck
	case FrameClose:
		var msg []byte
		if frame.Close != nil {
			msg = websocket.FormatCloseMessage(frame.Close.Code, frame.Close.Reason)
		}

		return c.conn.WriteControl( //nolint:wrapcheck
			websocket.CloseMessage,
			msg,
			time.Now().Add(closeWait),
		)
	default:
		return fmt.Errorf("%d: %w", frame.Kind, ErrUnknownFrameKind)
	}
}

// Flush does nothing, as each message is written to the connection right
// away.
func (*WebSocketConn) Flush() error {
	return nil
}

// Close sends a normal close frame and closes the connection. A failure to
// send the close frame is ignored, as the remote side might be gone already.
func (c *WebSocketConn) Close() error {
	err := c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(closeWait),
	)
	if err != nil {
		slog.Debug("Failed to send close frame", slog.Any("error", err))
	}

	return c.conn.Close() //nolint:wrapcheck
}

// DialTunnel connects to the WebSocket at the given URL and returns a
// [Tunnel] on it. The given header is sent with the handshake request and
// may be nil.
func DialTunnel(ctx context.Context, url string, header http.Header) (*Tunnel, error) {
	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: DefaultHandshakeTimeout,
	}

	conn, resp, err := dialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			err = fmt.Errorf("%w (status %s)", err, resp.Status)
		}

		return nil, &Error{Op: "dial tunnel", Err: err}
	}

	slog.Debug("Tunnel connected", slog.String("url", url))

	return NewTunnel(NewWebSocketConn(conn)), nil
}
