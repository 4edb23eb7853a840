// Package server implements the MCP (Model Context Protocol) server for the
// design indexer.
//
// This package provides a JSON-RPC 2.0 server that exposes the indexing
// pipeline as tools, so MCP-compatible clients can turn pictures into tile
// designs without going through the command line.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// The initialize response reports the tile size and palette limits in
// serverInfo.design.
//
// # Available Tools
//
//   - image_info: Load an image and report its size, format and file size
//   - design_tile_dimensions: Resolve the tile height for a tile width
//   - design_quantize_color: Snap a colour to its HSV palette bucket
//   - design_index: Run the full pipeline and return legend and label map,
//     optionally with a base64 PNG preview or a written output file
//
// # Image Caching
//
// Images are cached by path and reused across tool calls until the input
// stream ends. Tools that read an image accept "reload" to decode a file that
// changed on disk.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000 and the Go error string as data. A result that cannot be encoded
// returns -32603. Unparsable request lines are logged and skipped.
//
// # Usage
//
//	srv := server.New(logger, version)
//	if err := srv.Run(); err != nil {
//	    logger.Error("server failed", "error", err)
//	}
package server
