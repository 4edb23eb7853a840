package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_info",
			Description: "Load an image file and return its dimensions, format, alpha channel presence and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"reload": map[string]interface{}{
						"type":        "boolean",
						"description": "Decode the file again even if it is cached. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "design_tile_dimensions",
			Description: "Compute how many 32x32 tiles tall a design should be so that a grid tile_width tiles wide best matches the aspect ratio of an image. Give either an image path or an explicit width and height.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"reload": map[string]interface{}{
						"type":        "boolean",
						"description": "Decode the file again even if it is cached. Default false",
						"default":     false,
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Image width in pixels, used when no path is given",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Image height in pixels, used when no path is given",
					},
					"tile_width": map[string]interface{}{
						"type":        "integer",
						"description": "Design width in tiles. Default 1",
						"default":     1,
					},
				},
			},
		},
		{
			Name:        "design_quantize_color",
			Description: "Snap a colour to the centre of its bucket in the 30x16x16 HSV design palette and report the 1-based bucket indices.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Colour as a hex string, e.g. #FF8000",
					},
				},
				"required": []string{"color"},
			},
		},
		{
			Name:        "design_index",
			Description: "Index an image into a tile design: crop and scale it to the tile grid, quantize it, reduce it to at most 15 colours and return the colour legend and the per-pixel label map.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"reload": map[string]interface{}{
						"type":        "boolean",
						"description": "Decode the file again even if it is cached. Default false",
						"default":     false,
					},
					"tile_width": map[string]interface{}{
						"type":        "integer",
						"description": "Design width in tiles. Default 1",
						"default":     1,
					},
					"include_preview": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the reduced design as a base64-encoded PNG. Default false",
						"default":     false,
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file to write the reduced design to (.png, .jpg or .bmp)",
					},
					"show_grid": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw tile boundaries on the preview and the written file. Default false",
						"default":     false,
					},
					"grid_color": map[string]interface{}{
						"type":        "string",
						"description": "Grid line colour as hex with optional alpha. Default #00000060",
						"default":     "#00000060",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
