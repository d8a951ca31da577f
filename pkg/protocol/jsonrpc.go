package protocol

import (
	"encoding/json"
	"fmt"
)

/**
https://modelcontextprotocol.info/specification/draft/basic/lifecycle/
Flow:
	The client starts the livexg server from its mcp.json and sends 'initialize'
	  eg {"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{}},"jsonrpc":"2.0","id":0}
	We answer with our protocol version, capabilities and server info.
	The client sends the 'notifications/initialized' notification, which needs no answer,
	followed by 'tools/list' to discover live_goals_projection and league_presets.
	Each projection is then one 'tools/call':
	  eg {"method":"tools/call","params":{"name":"live_goals_projection","arguments":{"minutes_played":70,...}},"jsonrpc":"2.0","id":2}
*/

// MethodType defines the possible JSON-RPC method types
type MethodType string

const (
	MethodInitialize  MethodType = "initialize"
	MethodInitialized MethodType = "initialized"
	MethodToolsList   MethodType = "tools/list"
	MethodToolsCall   MethodType = "tools/call"
	MethodPing        MethodType = "ping"
	MethodShutdown    MethodType = "shutdown"
)

// NotificationPrefix marks methods that never get a response
const NotificationPrefix = "notifications/"

// Version is the JSON-RPC protocol version
const JsonRpcVersion = "2.0"

// DefaultProtocolVersion is used when the client does not ask for one
const DefaultProtocolVersion = "2024-11-05"

// JsonRpcRequest represents a JSON-RPC 2.0 request object
type JsonRpcRequest struct {
	// MUST be exactly "2.0".
	JsonRPC string `json:"jsonrpc"`

	Method string `json:"method"`

	// This member MAY be omitted.
	Params json.RawMessage `json:"params,omitempty"`

	// A request without an id is a notification.
	ID any `json:"id,omitempty"`
}

// IsNotification reports whether the request expects no response
func (r *JsonRpcRequest) IsNotification() bool {
	return r.ID == nil
}

// JsonRpcResponse represents a JSON-RPC 2.0 response object
type JsonRpcResponse struct {
	JsonRPC string `json:"jsonrpc"`

	// REQUIRED on success, MUST NOT exist on error.
	Result json.RawMessage `json:"result,omitempty"`

	// REQUIRED on error, MUST NOT exist on success.
	Error *JsonRpcError `json:"error,omitempty"`

	// MUST be null if the id of the request could not be read.
	ID any `json:"id"`
}

// JsonRpcError represents a JSON-RPC 2.0 error object
type JsonRpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type ToolProperty struct {
	Type        string        `json:"type"`
	Description string        `json:"description,omitempty"`
	Enum        []string      `json:"enum,omitempty"`
	Items       *ToolProperty `json:"items,omitempty"`
}

type InputSchema struct {
	Type                 string                  `json:"type"`
	Properties           map[string]ToolProperty `json:"properties,omitempty"`
	Required             []string                `json:"required"`
	AdditionalProperties bool                    `json:"additionalProperties"`
}

// Tool describes a callable tool to the client
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
}

// ToolsResponse is the result of tools/list
type ToolsResponse struct {
	Tools []Tool `json:"tools"`
}

// ToolCallParams are the params of tools/call
type ToolCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ToolContent is one content block of a tool result
type ToolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResult is the result of tools/call
type ToolResult struct {
	Content           []ToolContent `json:"content"`
	StructuredContent any           `json:"structuredContent,omitempty"`
	IsError           bool          `json:"isError,omitempty"`
}

// ServerInfo identifies this server in the initialize result
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// InitializeResult is the result of initialize
type InitializeResult struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ServerInfo      ServerInfo     `json:"serverInfo"`
}

// Standard error codes defined by the JSON-RPC 2.0 specification
const (
	// Parse error: Invalid JSON was received by the server.
	ErrParse = -32700

	// Invalid Request: The JSON sent is not a valid Request object.
	ErrInvalidRequest = -32600

	// Method not found: The method does not exist / is not available.
	ErrMethodNotFound = -32601

	// Invalid params: Invalid method parameter(s).
	ErrInvalidParams = -32602

	// Internal error: Internal JSON-RPC error.
	ErrInternal = -32603

	// Tool execution failed, from the -32000 to -32099 server range
	ErrToolExecutionFailed = -32000
)

// Error returns a string representation of the error
func (e *JsonRpcError) Error() string {
	return fmt.Sprintf("jsonrpc error: code=%d message=%s", e.Code, e.Message)
}

// NewJsonRpcRequest creates a new JSON-RPC 2.0 request
func NewJsonRpcRequest(method string, params any, id any) (*JsonRpcRequest, error) {
	var paramsJSON json.RawMessage
	if params != nil {
		var err error
		if paramsJSON, err = json.Marshal(params); err != nil {
			return nil, err
		}
	}
	return &JsonRpcRequest{
		JsonRPC: JsonRpcVersion,
		Method:  method,
		Params:  paramsJSON,
		ID:      id,
	}, nil
}

// NewJsonRpcResponse creates a new JSON-RPC 2.0 success response
func NewJsonRpcResponse(result any, id any) (*JsonRpcResponse, error) {
	var resultJSON json.RawMessage
	if result != nil {
		var err error
		if resultJSON, err = json.Marshal(result); err != nil {
			return nil, err
		}
	}
	return &JsonRpcResponse{
		JsonRPC: JsonRpcVersion,
		Result:  resultJSON,
		ID:      id,
	}, nil
}

// NewJsonRpcErrorResponse creates a new JSON-RPC 2.0 error response
func NewJsonRpcErrorResponse(code int, message string, data any, id any) *JsonRpcResponse {
	return &JsonRpcResponse{
		JsonRPC: JsonRpcVersion,
		Error: &JsonRpcError{
			Code:    code,
			Message: message,
			Data:    data,
		},
		ID: id,
	}
}

// ParseJsonRpcRequest parses a JSON-RPC 2.0 request from raw JSON
func ParseJsonRpcRequest(data []byte) (*JsonRpcRequest, error) {
	var req JsonRpcRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	if req.JsonRPC != JsonRpcVersion {
		return nil, fmt.Errorf("invalid JSON-RPC version: %s", req.JsonRPC)
	}
	if req.Method == "" {
		return nil, fmt.Errorf("missing method")
	}
	return &req, nil
}

// ParseJsonRpcResponse parses a JSON-RPC 2.0 response from raw JSON
func ParseJsonRpcResponse(data []byte) (*JsonRpcResponse, error) {
	var resp JsonRpcResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	if resp.JsonRPC != JsonRpcVersion {
		return nil, fmt.Errorf("invalid JSON-RPC version: %s", resp.JsonRPC)
	}
	return &resp, nil
}
