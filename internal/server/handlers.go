package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/design-indexer/internal/design"
	"github.com/ironsheep/design-indexer/internal/imaging"
	"github.com/ironsheep/design-indexer/internal/palette"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_info", "design_index").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000. A
// result that cannot be encoded returns -32603.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Debug("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	text, err := marshalResult(result)
	if err != nil {
		s.logger.Error("failed to encode tool result", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, codeInternalError, "Internal error", err.Error())
	}

	return s.result(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": text,
			},
		},
	})
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/design/palette function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_info":
		return s.handleImageInfo(args)
	case "design_tile_dimensions":
		return s.handleTileDimensions(args)
	case "design_quantize_color":
		return s.handleQuantizeColor(args)
	case "design_index":
		return s.handleDesignIndex(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// marshalResult converts a tool result to pretty-printed JSON.
func marshalResult(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(b), nil
}

// loadImage returns the decoded image at path. reload drops any cached copy
// first so a file changed on disk is decoded again.
func (s *Server) loadImage(path string, reload bool) (image.Image, error) {
	if reload {
		s.cache.Evict(path)
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("image loaded", "path", path, "reload", reload, "cached_images", s.cache.Len())
	return img, nil
}

// === Image Information ===

type imageInfoArgs struct {
	Path   string `json:"path"`
	Reload bool   `json:"reload"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Reload {
		s.cache.Evict(a.Path)
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Tile Geometry ===

type tileDimensionsArgs struct {
	Path      string `json:"path"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	TileWidth int    `json:"tile_width"`
	Reload    bool   `json:"reload"`
}

// TileDimensionsResult is the result of the design_tile_dimensions tool.
type TileDimensionsResult struct {
	SourceWidth  int `json:"source_width"`
	SourceHeight int `json:"source_height"`
	TileWidth    int `json:"tile_width"`
	TileHeight   int `json:"tile_height"`
	PixelWidth   int `json:"pixel_width"`
	PixelHeight  int `json:"pixel_height"`
}

func (s *Server) handleTileDimensions(args json.RawMessage) (interface{}, error) {
	var a tileDimensionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.TileWidth == 0 {
		a.TileWidth = 1
	}

	if a.Path != "" {
		img, err := s.loadImage(a.Path, a.Reload)
		if err != nil {
			return nil, err
		}
		bounds := img.Bounds()
		a.Width, a.Height = bounds.Dx(), bounds.Dy()
	}

	dims, err := design.Resolve(a.Width, a.Height, a.TileWidth)
	if err != nil {
		return nil, err
	}

	return &TileDimensionsResult{
		SourceWidth:  a.Width,
		SourceHeight: a.Height,
		TileWidth:    dims.TileWidth,
		TileHeight:   dims.TileHeight,
		PixelWidth:   dims.PixelWidth(),
		PixelHeight:  dims.PixelHeight(),
	}, nil
}

// === Palette ===

type quantizeColorArgs struct {
	Color string `json:"color"`
}

// QuantizeColorResult is the result of the design_quantize_color tool.
type QuantizeColorResult struct {
	Input     string         `json:"input"`
	Quantized string         `json:"quantized"`
	RGB       [3]uint8       `json:"rgb"`
	Bucket    palette.Bucket `json:"bucket"` // 1-based
}

func (s *Server) handleQuantizeColor(args json.RawMessage) (interface{}, error) {
	var a quantizeColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" {
		return nil, fmt.Errorf("color is required")
	}

	parsed, err := colorful.Hex(a.Color)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", a.Color, err)
	}
	in := palette.NewColor(parsed.RGB255())
	q := palette.Quantize(in)
	r, g, b := q.RGB()

	return &QuantizeColorResult{
		Input:     in.Hex(),
		Quantized: q.Hex(),
		RGB:       [3]uint8{r, g, b},
		Bucket:    palette.BucketOf(q).OneBased(),
	}, nil
}

// === Design Indexing ===

type designIndexArgs struct {
	Path           string `json:"path"`
	TileWidth      int    `json:"tile_width"`
	IncludePreview bool   `json:"include_preview"`
	OutputPath     string `json:"output_path"`
	ShowGrid       bool   `json:"show_grid"`
	GridColor      string `json:"grid_color"`
	Reload         bool   `json:"reload"`
}

// DesignIndexResult is the result of the design_index tool.
type DesignIndexResult struct {
	*design.Summary
	OutputPath    string `json:"output_path,omitempty"`
	PreviewBase64 string `json:"preview_base64,omitempty"`
	PreviewFormat string `json:"preview_format,omitempty"`
}

func (s *Server) handleDesignIndex(args json.RawMessage) (interface{}, error) {
	var a designIndexArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.TileWidth == 0 {
		a.TileWidth = 1
	}
	if a.GridColor == "" {
		a.GridColor = imaging.DefaultGridColor
	}

	img, err := s.loadImage(a.Path, a.Reload)
	if err != nil {
		return nil, err
	}

	ix, err := design.New(design.Options{
		TileWidth: a.TileWidth,
		Logger:    s.logger.Named("indexer"),
	})
	if err != nil {
		return nil, err
	}

	d, err := ix.Index(img)
	if err != nil {
		return nil, err
	}

	summary, err := d.Summary()
	if err != nil {
		return nil, err
	}
	result := &DesignIndexResult{Summary: summary}

	if !a.IncludePreview && a.OutputPath == "" {
		return result, nil
	}

	var preview image.Image = d.Image()
	if a.ShowGrid {
		preview, err = imaging.GridOverlay(preview, design.TilePixels, a.GridColor)
		if err != nil {
			return nil, err
		}
	}

	if a.OutputPath != "" {
		if err := imaging.Save(a.OutputPath, preview); err != nil {
			return nil, err
		}
		result.OutputPath = a.OutputPath
	}

	if a.IncludePreview {
		encoded, err := imaging.EncodePNGBase64(preview)
		if err != nil {
			return nil, err
		}
		result.PreviewBase64 = encoded
		result.PreviewFormat = "png"
	}

	return result, nil
}
