// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package transport_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/aibor/solstice/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn is a [transport.MessageConn] replaying a fixed list of frames.
type fakeConn struct {
	frames     []transport.Frame
	receiveErr error
	sendErr    error
	flushErr   error
	closeErr   error

	sent     []transport.Frame
	receives int
	flushed  int
	closed   bool
}

func (c *fakeConn) Receive() (transport.Frame, error) {
	c.receives++

	if len(c.frames) == 0 {
		if c.receiveErr != nil {
			return transport.Frame{}, c.receiveErr
		}

		return transport.Frame{}, io.EOF
	}

	frame := c.frames[0]
	c.frames = c.frames[1:]

	return frame, nil
}

func (c *fakeConn) Send(frame transport.Frame) error {
	if c.sendErr != nil {
		return c.sendErr
	}

	frame.Data = bytes.Clone(frame.Data)
	c.sent = append(c.sent, frame)

	return nil
}

func (c *fakeConn) Flush() error {
	c.flushed++
	return c.flushErr
}

func (c *fakeConn) Close() error {
	c.closed = true
	return c.closeErr
}

func binary(s string) transport.Frame {
	return transport.Frame{Kind: transport.FrameBinary, Data: []byte(s)}
}

func text(s string) transport.Frame {
	return transport.Frame{Kind: transport.FrameText, Data: []byte(s)}
}

func closeFrame(status *transport.CloseStatus) transport.Frame {
	return transport.Frame{Kind: transport.FrameClose, Close: status}
}

func TestTunnel_Read(t *testing.T) {
	tests := []struct {
		name        string
		frames      []transport.Frame
		expected    string
		expectedErr error
	}{
		{
			name:     "frame boundaries are invisible",
			frames:   []transport.Frame{binary("abc"), binary(""), binary("defgh")},
			expected: "abcdefgh",
		},
		{
			name:     "text frames are discarded",
			frames:   []transport.Frame{binary("abc"), text("hello"), binary("def")},
			expected: "abcdef",
		},
		{
			name:     "close without status",
			frames:   []transport.Frame{binary("abc"), closeFrame(nil), binary("ignored")},
			expected: "abc",
		},
		{
			name: "close normal",
			frames: []transport.Frame{
				binary("abc"),
				closeFrame(&transport.CloseStatus{Code: transport.CloseNormal}),
			},
			expected: "abc",
		},
		{
			name: "close going away",
			frames: []transport.Frame{
				closeFrame(&transport.CloseStatus{Code: transport.CloseGoingAway}),
			},
		},
		{
			name: "close with error code",
			frames: []transport.Frame{
				binary("abc"),
				closeFrame(&transport.CloseStatus{
					Code:   transport.CloseInternalError,
					Reason: "vm crashed",
				}),
			},
			expected:    "abc",
			expectedErr: &transport.CloseError{},
		},
		{
			name: "close with protocol error",
			frames: []transport.Frame{
				closeFrame(&transport.CloseStatus{Code: transport.CloseProtocolError}),
			},
			expectedErr: &transport.CloseError{},
		},
		{
			name:     "connection ended",
			frames:   []transport.Frame{binary("abc")},
			expected: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := &fakeConn{frames: tt.frames}
			tunnel := transport.NewTunnel(conn)

			actual, err := io.ReadAll(tunnel)
			assert.Equal(t, tt.expected, string(actual))

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				require.ErrorIs(t, err, &transport.Error{})
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestTunnel_Read_Short(t *testing.T) {
	conn := &fakeConn{frames: []transport.Frame{binary("abcdef"), binary("gh")}}
	tunnel := transport.NewTunnel(conn)

	buf := make([]byte, 4)

	n, err := tunnel.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(buf[:n]))

	n, err = tunnel.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ef", string(buf[:n]), "read must not cross frame")

	n, err = tunnel.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "gh", string(buf[:n]))

	assert.Equal(t, 2, conn.receives)
}

func TestTunnel_Read_CloseErrorDetails(t *testing.T) {
	conn := &fakeConn{frames: []transport.Frame{
		closeFrame(&transport.CloseStatus{Code: 4001, Reason: "session expired"}),
	}}
	tunnel := transport.NewTunnel(conn)

	_, err := tunnel.Read(make([]byte, 8))

	var closeErr *transport.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, 4001, closeErr.Code)
	assert.Equal(t, "session expired", closeErr.Reason)
	assert.ErrorContains(t, err, "session expired")
}

func TestTunnel_Read_Sticky(t *testing.T) {
	conn := &fakeConn{frames: []transport.Frame{
		closeFrame(&transport.CloseStatus{Code: transport.CloseInternalError}),
		binary("never"),
	}}
	tunnel := transport.NewTunnel(conn)

	buf := make([]byte, 8)

	_, firstErr := tunnel.Read(buf)
	require.Error(t, firstErr)

	n, secondErr := tunnel.Read(buf)
	assert.Zero(t, n)
	assert.Equal(t, firstErr, secondErr)
	assert.Equal(t, 1, conn.receives, "no receive after terminal outcome")
}

func TestTunnel_Read_UnknownKind(t *testing.T) {
	conn := &fakeConn{frames: []transport.Frame{
		{Kind: transport.FrameUnknown, Data: []byte("ping")},
		binary("abc"),
	}}
	tunnel := transport.NewTunnel(conn)

	buf := make([]byte, 8)

	n, err := tunnel.Read(buf)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = tunnel.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(buf[:n]))
}

func TestTunnel_Read_ReceiveError(t *testing.T) {
	conn := &fakeConn{receiveErr: assert.AnError}
	tunnel := transport.NewTunnel(conn)

	_, err := tunnel.Read(make([]byte, 8))
	require.ErrorIs(t, err, assert.AnError)
	require.ErrorIs(t, err, &transport.Error{})
	assert.ErrorContains(t, err, assert.AnError.Error())
}

func TestTunnel_Read_Empty(t *testing.T) {
	conn := &fakeConn{frames: []transport.Frame{binary("abc")}}
	tunnel := transport.NewTunnel(conn)

	n, err := tunnel.Read(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, conn.receives)
}

func TestTunnel_Write(t *testing.T) {
	conn := &fakeConn{}
	tunnel := transport.NewTunnel(conn)

	for _, chunk := range []string{"abc", "", "defgh"} {
		n, err := tunnel.Write([]byte(chunk))
		require.NoError(t, err)
		assert.Equal(t, len(chunk), n)
	}

	require.NoError(t, tunnel.Flush())
	require.NoError(t, tunnel.Close())

	expected := []transport.Frame{binary("abc"), binary(""), binary("defgh")}
	assert.Equal(t, expected, conn.sent)
	assert.Equal(t, 1, conn.flushed)
	assert.True(t, conn.closed)
}

func TestTunnel_Errors(t *testing.T) {
	conn := &fakeConn{
		sendErr:  assert.AnError,
		flushErr: assert.AnError,
		closeErr: assert.AnError,
	}
	tunnel := transport.NewTunnel(conn)

	n, err := tunnel.Write([]byte("abc"))
	assert.Zero(t, n)
	require.ErrorIs(t, err, assert.AnError)
	require.ErrorIs(t, err, &transport.Error{})

	err = tunnel.Flush()
	require.ErrorIs(t, err, assert.AnError)
	require.ErrorIs(t, err, &transport.Error{})

	err = tunnel.Close()
	require.ErrorIs(t, err, assert.AnError)
	require.ErrorIs(t, err, &transport.Error{})
}
