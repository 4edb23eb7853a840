package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/ironsheep/design-indexer/internal/design"
	"github.com/ironsheep/design-indexer/internal/imaging"
	"github.com/ironsheep/design-indexer/internal/palette"
)

const (
	jsonRPCVersion  = "2.0"
	protocolVersion = "2024-11-05"
	serverName      = "design-indexer"
)

// JSON-RPC error codes.
const (
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
	codeToolFailed     = -32000
)

// Server handles MCP protocol communication
type Server struct {
	cache   *imaging.ImageCache
	logger  hclog.Logger
	version string
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new MCP server instance. A nil logger discards all output.
func New(logger hclog.Logger, version string) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if version == "" {
		version = "dev"
	}
	return &Server{
		cache:   imaging.NewImageCache(),
		logger:  logger,
		version: version,
	}
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes responses to w
// until r is exhausted.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	s.logger.Info("serving MCP requests", "version", s.version)
	defer func() {
		s.logger.Debug("releasing image cache", "images", s.cache.Len())
		s.cache.Clear()
	}()

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Error("failed to parse request", "error", err)
			continue
		}

		s.logger.Debug("request", "method", req.Method, "id", req.ID)

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.logger.Error("failed to encode response", "method", req.Method, "error", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return s.result(req.ID, map[string]interface{}{})
	default:
		return s.errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), "")
	}
}

// DesignInfo describes the fixed design geometry and palette the server
// indexes into. It is reported in the initialize handshake.
type DesignInfo struct {
	TilePixels        int `json:"tile_pixels"`
	MaxColors         int `json:"max_colors"`
	HueBuckets        int `json:"hue_buckets"`
	SaturationBuckets int `json:"saturation_buckets"`
	ValueBuckets      int `json:"value_buckets"`
}

// CurrentDesignInfo returns the geometry and palette limits of this build.
func CurrentDesignInfo() DesignInfo {
	return DesignInfo{
		TilePixels:        design.TilePixels,
		MaxColors:         palette.MaxColors,
		HueBuckets:        palette.HueBuckets,
		SaturationBuckets: palette.SaturationBuckets + 1,
		ValueBuckets:      palette.ValueBuckets + 1,
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	info := CurrentDesignInfo()
	return s.result(req.ID, map[string]interface{}{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    serverName,
			"version": s.version,
			"design":  info,
		},
		"instructions": fmt.Sprintf("Designs are grids of %dx%d pixel tiles using at most %d colours. "+
			"Call design_tile_dimensions to preview the grid, then design_index to build the design.",
			info.TilePixels, info.TilePixels, info.MaxColors),
	})
}

// result wraps a successful result in a response.
func (s *Server) result(id interface{}, result interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Result:  result,
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
// An empty data string is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	mcpErr := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		mcpErr.Data = data
	}
	return &MCPResponse{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error:   mcpErr,
	}
}
