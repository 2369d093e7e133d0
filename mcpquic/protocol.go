// Package mcpquic serves MCP sessions over QUIC streams.
//
// Wire contract: the client opens one bidirectional stream per session and
// sends a 4-byte magic preamble before any JSON-RPC traffic, so a server can
// reject protocol confusion (HTTP/3, random UDP) before handing the stream to
// the MCP SDK. ALPN pins the protocol version.
package mcpquic

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/quic-go/quic-go"
)

const (
	// ALPNProtocolMCP is the TLS ALPN token for MCP-over-QUIC.
	ALPNProtocolMCP = "mcp-quic-v1"

	// MagicBytesMCP is written by the client as the first bytes of a stream.
	MagicBytesMCP = "MCP1"

	// MaxMessageSize bounds a single JSON-RPC message.
	MaxMessageSize = 10 * 1024 * 1024

	// DefaultIdleTimeout closes connections with no activity.
	DefaultIdleTimeout = 5 * time.Minute

	// DefaultKeepAlive keeps NAT bindings open between tool calls.
	DefaultKeepAlive = 30 * time.Second
)

// Application error codes carried in QUIC CONNECTION_CLOSE frames.
const (
	ConnErrorNoError           quic.ApplicationErrorCode = 0x00
	ConnErrorUnsupportedALPN   quic.ApplicationErrorCode = 0x02
	ConnErrorProtocolViolation quic.ApplicationErrorCode = 0x03
)

// StreamErrorProtocolConfusion resets streams that fail the magic preamble.
const StreamErrorProtocolConfusion quic.StreamErrorCode = 0x10

var (
	// ErrInvalidMagicBytes indicates a stream that did not start with MagicBytesMCP.
	ErrInvalidMagicBytes = errors.New("mcpquic: invalid magic bytes")

	// ErrUnsupportedALPN indicates a connection negotiated a foreign protocol.
	ErrUnsupportedALPN = errors.New("mcpquic: unsupported ALPN")

	// ErrConnectionClosed indicates an operation on a closed connection.
	ErrConnectionClosed = errors.New("mcpquic: connection closed")
)

// ConnectionError wraps a transport failure with the remote address and the
// QUIC application error code used to close the connection.
type ConnectionError struct {
	RemoteAddr string
	Code       quic.ApplicationErrorCode
	Err        error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("mcpquic: connection %s closed with code 0x%02x: %v", e.RemoteAddr, uint64(e.Code), e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// SendMagicBytes writes the MCP stream preamble.
func SendMagicBytes(w io.Writer) error {
	if _, err := io.WriteString(w, MagicBytesMCP); err != nil {
		return fmt.Errorf("mcpquic: send magic bytes: %w", err)
	}
	return nil
}

// ValidateMagicBytes consumes and checks the MCP stream preamble.
func ValidateMagicBytes(r io.Reader) error {
	buf := make([]byte, len(MagicBytesMCP))
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMagicBytes, err)
	}
	if string(buf) != MagicBytesMCP {
		return fmt.Errorf("%w: got %q", ErrInvalidMagicBytes, buf)
	}
	return nil
}

// ProductionQUICConfig returns the QUIC settings used by both ends:
// bounded idle timeout, keepalive, 0-RTT disabled (replayable tool calls
// would be a footgun).
func ProductionQUICConfig() *quic.Config {
	return &quic.Config{
		MaxIdleTimeout:  DefaultIdleTimeout,
		KeepAlivePeriod: DefaultKeepAlive,
		Allow0RTT:       false,
	}
}
