// Package mcp serves the task tools over the Model Context Protocol:
// JSON-RPC 2.0, one message per line, on a reader/writer pair (stdio in
// production). Every tool acts on the session user fixed at startup.
package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/jsamuelsen11/go-task-tracker/internal/domain"
	"github.com/jsamuelsen11/go-task-tracker/internal/platform/logging"
)

// ProtocolVersion is the MCP revision this server speaks.
const ProtocolVersion = "2024-11-05"

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// maxLineSize bounds a single JSON-RPC message.
const maxLineSize = 1 << 20

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// isNotification reports whether the request carries no id and so expects
// no response.
func (r *request) isNotification() bool {
	return len(r.ID) == 0 || bytes.Equal(r.ID, []byte("null"))
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type initializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	ServerInfo      serverInfo         `json:"serverInfo"`
	Capabilities    serverCapabilities `json:"capabilities"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type serverCapabilities struct {
	Tools *toolsCapability `json:"tools,omitempty"`
}

type toolsCapability struct {
	ListChanged bool `json:"listChanged"`
}

type listToolsResult struct {
	Tools []Tool `json:"tools"`
}

type callToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// CallToolResult is the MCP tools/call result envelope.
type CallToolResult struct {
	Content []ToolContent `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// ToolContent is one content block of a tool result.
type ToolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Server reads JSON-RPC requests and writes responses.
type Server struct {
	tools   *ToolHandler
	name    string
	version string
	logger  *slog.Logger

	writeMu sync.Mutex
}

// NewServer creates a Server dispatching tool calls to tools.
// A nil logger discards output.
func NewServer(tools *ToolHandler, name, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		tools:   tools,
		name:    name,
		version: version,
		logger:  logger,
	}
}

// Serve handles messages from r until EOF or ctx is done. Responses go to w,
// one JSON document per line. Returns nil on clean EOF and ctx.Err() on
// cancellation, even while a read on r is still blocked.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	s.logger.InfoContext(ctx, "mcp server started", slog.String("protocol", ProtocolVersion))

	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(r, done)

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "mcp server stopping", logging.Err(ctx.Err()))
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("reading request: %w", err)
				}
				s.logger.InfoContext(ctx, "mcp server input closed")
				return nil
			}
			resp := s.handleLine(ctx, line)
			if resp == nil {
				continue
			}
			if err := s.send(w, resp); err != nil {
				return fmt.Errorf("writing response: %w", err)
			}
		}
	}
}

// readLines scans r on its own goroutine so a blocked read never delays
// cancellation. Blank lines are skipped. The scan error, or nil on EOF, is
// delivered once lines is closed. The goroutine stops sending when done
// closes; a read already in progress ends with r.
func readLines(r io.Reader, done <-chan struct{}) (<-chan []byte, <-chan error) {
	lines := make(chan []byte)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			select {
			case lines <- bytes.Clone(line):
			case <-done:
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()

	return lines, errc
}

func (s *Server) handleLine(ctx context.Context, line []byte) *response {
	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		s.logger.WarnContext(ctx, "unparseable message", logging.Err(err))
		return errorResponse(nil, codeParseError, "Parse error")
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		if req.isNotification() {
			return nil
		}
		return errorResponse(req.ID, codeInvalidRequest, "Invalid Request")
	}

	resp := s.handleRequest(ctx, &req)
	if req.isNotification() {
		return nil
	}
	return resp
}

func (s *Server) handleRequest(ctx context.Context, req *request) *response {
	switch req.Method {
	case "initialize":
		return resultResponse(req.ID, initializeResult{
			ProtocolVersion: ProtocolVersion,
			ServerInfo:      serverInfo{Name: s.name, Version: s.version},
			Capabilities:    serverCapabilities{Tools: &toolsCapability{}},
		})
	case "ping":
		return resultResponse(req.ID, struct{}{})
	case "tools/list":
		return resultResponse(req.ID, listToolsResult{Tools: ToolDefinitions()})
	case "tools/call":
		return s.handleCallTool(ctx, req)
	case "notifications/initialized", "notifications/cancelled":
		return nil
	default:
		return errorResponse(req.ID, codeMethodNotFound, "Method not found")
	}
}

func (s *Server) handleCallTool(ctx context.Context, req *request) *response {
	var params callToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.Name == "" {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params")
	}

	logger := s.logger.With(logging.Tool(params.Name))
	ctx = logging.WithLogger(ctx, logger)

	result, err := s.tools.Handle(ctx, params.Name, params.Arguments)
	if errors.Is(err, ErrUnknownTool) {
		return errorResponse(req.ID, codeInvalidParams, err.Error())
	}
	if err != nil {
		logger.WarnContext(ctx, "tool call failed", logging.Err(err))
		return resultResponse(req.ID, CallToolResult{
			Content: []ToolContent{{Type: "text", Text: errorText(err)}},
			IsError: true,
		})
	}

	text, err := json.Marshal(result)
	if err != nil {
		logger.ErrorContext(ctx, "encoding tool result", logging.Err(err))
		return resultResponse(req.ID, CallToolResult{
			Content: []ToolContent{{Type: "text", Text: "internal: encoding result failed"}},
			IsError: true,
		})
	}
	return resultResponse(req.ID, CallToolResult{
		Content: []ToolContent{{Type: "text", Text: string(text)}},
	})
}

func (s *Server) send(w io.Writer, resp *response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_, err = w.Write(data)
	return err
}

// errorText prefixes the message with the error kind so clients can branch
// on it, e.g. "invalid_parameter: task ...: task was already paused".
func errorText(err error) string {
	return domain.Kind(err) + ": " + err.Error()
}

func resultResponse(id json.RawMessage, result any) *response {
	return &response{JSONRPC: "2.0", ID: normalizeID(id), Result: result}
}

func errorResponse(id json.RawMessage, code int, message string) *response {
	return &response{JSONRPC: "2.0", ID: normalizeID(id), Error: &rpcError{Code: code, Message: message}}
}

// normalizeID turns a missing id into an explicit JSON null.
func normalizeID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return json.RawMessage("null")
	}
	return id
}
