package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/richard-senior/livexg/internal/logger"
	"github.com/richard-senior/livexg/pkg/protocol"
	"github.com/richard-senior/livexg/pkg/tools"
	"github.com/richard-senior/livexg/pkg/transport"
	"github.com/richard-senior/livexg/pkg/util/livexg"
)

// Name and Version are reported to clients in the initialize result
const (
	Name    = "livexg"
	Version = "1.0.0"
)

// toolPrefix is stripped from tool names some clients add
const toolPrefix = "mcp___"

// HandlerFunc is a function that handles an MCP request
type HandlerFunc func(params any) (any, error)

// Server represents an MCP server
type Server struct {
	transport transport.Transport
	handlers  map[string]HandlerFunc
	tools     []protocol.Tool
	mu        sync.RWMutex
}

// NewServer creates a server bound to a transport with the livexg tools registered
func NewServer(t transport.Transport, svc *livexg.Service) *Server {
	s := &Server{
		transport: t,
		handlers:  make(map[string]HandlerFunc),
	}
	s.handlers[string(protocol.MethodInitialize)] = s.handleInitialize
	s.handlers[string(protocol.MethodInitialized)] = s.handleInitialized
	s.handlers[string(protocol.MethodToolsList)] = s.handleToolsList
	s.handlers[string(protocol.MethodToolsCall)] = s.handleToolsCall
	s.handlers[string(protocol.MethodPing)] = s.handlePing

	s.RegisterTool(tools.ProjectionTool(), HandlerFunc(tools.NewProjectionHandler(svc)))
	if svc.Store != nil {
		s.RegisterTool(tools.PresetsTool(), HandlerFunc(tools.NewPresetsHandler(svc.Store)))
	}
	return s
}

// RegisterTool registers a tool with the server
func (s *Server) RegisterTool(tool protocol.Tool, handler HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools = append(s.tools, tool)
	s.handlers[tool.Name] = handler
	logger.Info("Registered tool:", tool.Name)
}

// GetTools returns the list of registered tools
func (s *Server) GetTools() []protocol.Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]protocol.Tool(nil), s.tools...)
}

// Start processes requests until the client disconnects or a signal arrives
func (s *Server) Start() error {
	logger.Info("Starting MCP server")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.ProcessRequests()
	}()

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		logger.Info("Received signal:", sig.String())
		return nil
	}
}

// ProcessRequests reads and answers requests in order. A clean disconnect returns nil.
func (s *Server) ProcessRequests() error {
	for {
		req, err := s.transport.ReadRequest()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if transport.IsParseError(err) {
			if werr := s.transport.WriteResponse(protocol.NewJsonRpcErrorResponse(protocol.ErrParse, err.Error(), nil, nil)); werr != nil {
				return werr
			}
			continue
		}
		if err != nil {
			return err
		}

		// nil means no response is required
		resp := s.HandleRequest(req)
		if resp == nil {
			continue
		}
		if err := s.transport.WriteResponse(resp); err != nil {
			return err
		}
	}
}

// HandleRequest dispatches a request and builds its response, nil for notifications
func (s *Server) HandleRequest(req *protocol.JsonRpcRequest) *protocol.JsonRpcResponse {
	logger.Info(">> ", req.Method)

	if strings.HasPrefix(req.Method, protocol.NotificationPrefix) {
		logger.Debug("Received notification:", req.Method)
		return nil
	}

	s.mu.RLock()
	handler := s.handlers[req.Method]
	s.mu.RUnlock()

	if handler == nil {
		if req.IsNotification() {
			return nil
		}
		return protocol.NewJsonRpcErrorResponse(protocol.ErrMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), nil, req.ID)
	}

	result, err := handler(req.Params)
	if err != nil {
		var rpcErr *protocol.JsonRpcError
		if errors.As(err, &rpcErr) {
			return protocol.NewJsonRpcErrorResponse(rpcErr.Code, rpcErr.Message, rpcErr.Data, req.ID)
		}
		logger.Warn("Request failed:", req.Method, err)
		return protocol.NewJsonRpcErrorResponse(protocol.ErrToolExecutionFailed, err.Error(), nil, req.ID)
	}
	if req.IsNotification() {
		return nil
	}

	resp, err := protocol.NewJsonRpcResponse(result, req.ID)
	if err != nil {
		return protocol.NewJsonRpcErrorResponse(protocol.ErrInternal, "Failed to marshal result: "+err.Error(), nil, req.ID)
	}
	if resp.Result == nil {
		resp.Result = json.RawMessage("{}")
	}
	return resp
}

// handleToolsList handles the tools/list method
func (s *Server) handleToolsList(params any) (any, error) {
	return protocol.ToolsResponse{Tools: s.GetTools()}, nil
}

// handleInitialize answers with the requested protocol version and our capabilities
func (s *Server) handleInitialize(params any) (any, error) {
	version := protocol.DefaultProtocolVersion

	if raw, ok := params.(json.RawMessage); ok && len(raw) > 0 {
		var p struct {
			ProtocolVersion string `json:"protocolVersion"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, &protocol.JsonRpcError{Code: protocol.ErrInvalidParams, Message: "invalid initialize parameters: " + err.Error()}
		}
		if p.ProtocolVersion != "" {
			version = p.ProtocolVersion
		}
	}
	logger.Info("Initializing with protocol version", version, "and", len(s.GetTools()), "tools")

	return protocol.InitializeResult{
		ProtocolVersion: version,
		Capabilities: map[string]any{
			"tools": map[string]any{"listChanged": false},
		},
		ServerInfo: protocol.ServerInfo{Name: Name, Version: Version},
	}, nil
}

// handleInitialized handles the bare 'initialized' notification
func (s *Server) handleInitialized(params any) (any, error) {
	return nil, nil
}

func (s *Server) handlePing(params any) (any, error) {
	return struct{}{}, nil
}

func (s *Server) handleToolsCall(params any) (any, error) {
	raw, _ := params.(json.RawMessage)
	var call protocol.ToolCallParams
	if err := json.Unmarshal(raw, &call); err != nil {
		return nil, &protocol.JsonRpcError{Code: protocol.ErrInvalidParams, Message: "invalid tools/call parameters: " + err.Error()}
	}
	logger.Info("Tool call requested for:", call.Name)

	name := strings.TrimPrefix(call.Name, toolPrefix)
	s.mu.RLock()
	handler := s.handlers[name]
	s.mu.RUnlock()
	if handler == nil || !s.isTool(name) {
		return nil, &protocol.JsonRpcError{Code: protocol.ErrInvalidParams, Message: "tool not found: " + call.Name}
	}

	if call.Arguments == nil {
		call.Arguments = map[string]any{}
	}
	result, err := handler(call.Arguments)
	if err != nil {
		return nil, fmt.Errorf("tool execution failed: %w", err)
	}
	return result, nil
}

func (s *Server) isTool(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tools {
		if t.Name == name {
			return true
		}
	}
	return false
}
