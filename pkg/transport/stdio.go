package transport

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/richard-senior/livexg/internal/logger"
	"github.com/richard-senior/livexg/pkg/protocol"
)

// maxMessageSize bounds a single request line
const maxMessageSize = 4 * 1024 * 1024

// ParseError is returned for a line that is not a valid request.
// The stream is still usable after it.
type ParseError struct {
	Line []byte
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse JSON-RPC request: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err came from a malformed request line
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// StdioTransport reads one JSON-RPC message per line and writes one per line
type StdioTransport struct {
	scanner *bufio.Scanner
	writer  *bufio.Writer
	mu      sync.Mutex
}

// NewStdioTransport creates a new transport that uses stdin/stdout
func NewStdioTransport() *StdioTransport {
	return NewStreamTransport(os.Stdin, os.Stdout)
}

// NewStreamTransport creates a line transport over any reader and writer
func NewStreamTransport(r io.Reader, w io.Writer) *StdioTransport {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)
	return &StdioTransport{
		scanner: scanner,
		writer:  bufio.NewWriter(w),
	}
}

// ReadRequest blocks until the next non-empty line. It returns io.EOF when
// the client disconnects and a *ParseError for a malformed line.
func (t *StdioTransport) ReadRequest() (*protocol.JsonRpcRequest, error) {
	for t.scanner.Scan() {
		line := bytes.TrimSpace(t.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		logger.Debug("Received raw request:", string(line))

		request, err := protocol.ParseJsonRpcRequest(line)
		if err != nil {
			logger.Warn("Failed to parse JSON-RPC request:", err)
			return nil, &ParseError{Line: append([]byte(nil), line...), Err: err}
		}
		return request, nil
	}
	if err := t.scanner.Err(); err != nil {
		logger.Error("Error reading from stdin:", err)
		return nil, err
	}
	logger.Info("Received EOF on stdin, client disconnected")
	return nil, io.EOF
}

// WriteResponse writes a JSON-RPC response as a single line
func (t *StdioTransport) WriteResponse(response *protocol.JsonRpcResponse) error {
	responseBytes, err := json.Marshal(response)
	if err != nil {
		logger.Error("Failed to marshal response:", err)
		return err
	}
	responseBytes = append(responseBytes, '\n')

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.writer.Write(responseBytes); err != nil {
		logger.Error("Failed to write response:", err)
		return err
	}
	if err := t.writer.Flush(); err != nil {
		logger.Error("Failed to flush response:", err)
		return err
	}
	logger.Debug("Sent response:", string(bytes.TrimSpace(responseBytes)))
	return nil
}
