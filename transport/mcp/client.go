package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/snakesim/game/engine"
	"github.com/wricardo/mcp-training/snakesim/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Snake Simulation",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Snake Simulation - MCP Interface

This is a thin client that proxies all requests to the REST API server.

SIMULATION OBJECTIVE:
Steer the snake (@ head, # body) onto goal cells (*) to grow and score.
Hitting a wall or the snake's own body ends the run.

AVAILABLE TOOLS:
- create_instance: Create a new simulation instance
- list_instances: List all live instances
- get_instance: Get instance details
- destroy_instance: Release an instance
- render: Get an ASCII view of the board
- tick: Advance the simulation by N steps
- set_direction: Queue a direction for the next step
- set_mode: Switch between manual and automatic play
- touch: Feed a pointer gesture (down/move/up)
- resize: Change the board dimensions
- list_configs: List available configurations
- game_instructions: Get the full rules

TIP: In automatic mode the built-in pilot chases the goal; just tick.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Instance lifecycle
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_instance",
		Description: "Create a new simulation instance with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Name of the config to use (optional)",
				},
				"width": map[string]interface{}{
					"type":        "integer",
					"description": "Board width in cells (optional, overrides the config)",
				},
				"height": map[string]interface{}{
					"type":        "integer",
					"description": "Board height in cells (optional, overrides the config)",
				},
			},
		},
	}, c.handleCreateInstance)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_instances",
		Description: "List all live simulation instances",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListInstances)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_instance",
		Description: "Get details of a specific instance",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"handle": map[string]interface{}{
					"type":        "integer",
					"description": "Instance handle",
				},
			},
			Required: []string{"handle"},
		},
	}, c.handleGetInstance)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "destroy_instance",
		Description: "Release an instance and invalidate its handle",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"handle": map[string]interface{}{
					"type":        "integer",
					"description": "Instance handle",
				},
			},
			Required: []string{"handle"},
		},
	}, c.handleDestroyInstance)

	// Simulation operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "render",
		Description: "Render the current board as ASCII (@ head, # body, * goal)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"handle": map[string]interface{}{
					"type":        "integer",
					"description": "Instance handle",
				},
			},
			Required: []string{"handle"},
		},
	}, c.handleRender)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "tick",
		Description: "Advance the simulation by N steps (default 1)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"handle": map[string]interface{}{
					"type":        "integer",
					"description": "Instance handle",
				},
				"ticks": map[string]interface{}{
					"type":        "integer",
					"description": "Number of steps to advance",
				},
			},
			Required: []string{"handle"},
		},
	}, c.handleTick)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_direction",
		Description: "Queue a direction for the next step",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"handle": map[string]interface{}{
					"type":        "integer",
					"description": "Instance handle",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction for the snake's next step",
				},
			},
			Required: []string{"handle", "direction"},
		},
	}, c.handleSetDirection)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_mode",
		Description: "Switch an instance between manual and automatic play",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"handle": map[string]interface{}{
					"type":        "integer",
					"description": "Instance handle",
				},
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"manual", "automatic"},
					"description": "Play mode",
				},
			},
			Required: []string{"handle", "mode"},
		},
	}, c.handleSetMode)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "touch",
		Description: "Feed a pointer event into an instance (a down-then-up swipe steers the snake)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"handle": map[string]interface{}{
					"type":        "integer",
					"description": "Instance handle",
				},
				"x": map[string]interface{}{
					"type":        "number",
					"description": "Pointer x coordinate",
				},
				"y": map[string]interface{}{
					"type":        "number",
					"description": "Pointer y coordinate",
				},
				"action": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"down", "up", "move"},
					"description": "Pointer action",
				},
			},
			Required: []string{"handle", "x", "y", "action"},
		},
	}, c.handleTouch)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "resize",
		Description: "Change the board dimensions, rescaling the snake and goal",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"handle": map[string]interface{}{
					"type":        "integer",
					"description": "Instance handle",
				},
				"width": map[string]interface{}{
					"type":        "integer",
					"description": "New board width in cells",
				},
				"height": map[string]interface{}{
					"type":        "integer",
					"description": "New board height in cells",
				},
			},
			Required: []string{"handle", "width", "height"},
		},
	}, c.handleResize)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available simulation configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the full simulation rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func argHandle(args map[string]interface{}) (service.Handle, error) {
	raw, ok := args["handle"].(float64)
	if !ok || raw < 0 {
		return 0, fmt.Errorf("handle must be a non-negative integer")
	}
	return service.Handle(raw), nil
}

// Tool handlers

func (c *Client) handleCreateInstance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	body := map[string]interface{}{}
	if configID != "" {
		body["config_id"] = configID
	}
	if width, ok := args["width"].(float64); ok {
		body["width"] = int(width)
	}
	if height, ok := args["height"].(float64); ok {
		body["height"] = int(height)
	}

	var info service.InstanceInfo
	err := c.apiCall("POST", "/api/instances", body, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created instance: %d\nConfig: %s\n\n%s",
		info.Handle, info.ConfigName, formatSnapshot(&info.Snapshot))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListInstances(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count     int                    `json:"count"`
		Instances []service.InstanceInfo `json:"instances"`
	}

	err := c.apiCall("GET", "/api/instances", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Live Instances (%d):\n\n", response.Count)
	for _, info := range response.Instances {
		result += fmt.Sprintf("- %d (Config: %s, Score: %d, Phase: %s, Created: %s)\n",
			info.Handle, info.ConfigName, info.Snapshot.Score, info.Snapshot.Phase,
			info.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetInstance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	handle, err := argHandle(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var info service.InstanceInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/instances/%d", handle), nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Instance: %d\nConfig: %s\nCreated: %s\n\n%s",
		info.Handle, info.ConfigName,
		info.CreatedAt.Format("2006-01-02 15:04:05"),
		formatSnapshot(&info.Snapshot))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDestroyInstance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	handle, err := argHandle(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := c.apiCall("DELETE", fmt.Sprintf("/api/instances/%d", handle), nil, nil); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Instance %d destroyed", handle)), nil
}

func (c *Client) handleRender(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	handle, err := argHandle(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var snapshot engine.Snapshot
	if err := c.apiCall("GET", fmt.Sprintf("/api/instances/%d/snapshot", handle), nil, &snapshot); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSnapshot(&snapshot)), nil
}

func (c *Client) handleTick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	handle, err := argHandle(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ticks := 1
	if n, ok := args["ticks"].(float64); ok && n > 0 {
		ticks = int(n)
	}

	var result service.TickResult
	body := map[string]interface{}{"ticks": ticks}
	if err := c.apiCall("POST", fmt.Sprintf("/api/instances/%d/update", handle), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatTickResult(&result)), nil
}

func (c *Client) handleSetDirection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	handle, err := argHandle(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	direction, _ := args["direction"].(string)

	body := map[string]interface{}{"direction": direction}
	if err := c.apiCall("POST", fmt.Sprintf("/api/instances/%d/direction", handle), body, nil); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Direction %s queued for instance %d", direction, handle)), nil
}

func (c *Client) handleSetMode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	handle, err := argHandle(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mode, _ := args["mode"].(string)

	body := map[string]interface{}{"mode": mode}
	if err := c.apiCall("POST", fmt.Sprintf("/api/instances/%d/mode", handle), body, nil); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Instance %d switched to %s mode", handle, mode)), nil
}

func (c *Client) handleTouch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	handle, err := argHandle(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	x, _ := args["x"].(float64)
	y, _ := args["y"].(float64)
	action, _ := args["action"].(string)

	body := map[string]interface{}{"x": x, "y": y, "action": action}
	if err := c.apiCall("POST", fmt.Sprintf("/api/instances/%d/touch", handle), body, nil); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Touch %s at (%.1f, %.1f) recorded for instance %d", action, x, y, handle)), nil
}

func (c *Client) handleResize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	handle, err := argHandle(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	width, _ := args["width"].(float64)
	height, _ := args["height"].(float64)

	var snapshot engine.Snapshot
	body := map[string]interface{}{"width": int(width), "height": int(height)}
	if err := c.apiCall("POST", fmt.Sprintf("/api/instances/%d/resize", handle), body, &snapshot); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Instance %d resized to %dx%d\n\n%s",
		handle, snapshot.Width, snapshot.Height, formatSnapshot(&snapshot))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s\n  %s\n  Board: %dx%d\n\n",
			config.Name, config.Description, config.Width, config.Height)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Snake Simulation - Complete Rules

OBJECTIVE:
Steer the snake onto goal cells to grow and score. The run ends when the
snake hits a wall or its own body.

BOARD LEGEND:
• @ - Snake head
• # - Snake body
• * - Goal cell
• . - Empty cell

MECHANICS:
• The snake advances one cell per tick in its facing direction
• Eating a goal grows the snake by one cell and scores one point
• A new goal appears on a free cell after each one is eaten
• Reversing into the snake's own neck is ignored (when longer than one cell)
• The snake does not move until it receives its first direction

INPUT:
• set_direction queues a discrete direction for the next tick
• touch gestures work like swipes: a down event followed by an up event
  steers along the dominant axis of the drag (ties go horizontal)
• A discrete direction queued in the same tick beats a gesture

MODES:
• manual: you drive with set_direction or touch
• automatic: a built-in pilot greedily chases the goal, preferring the
  axis with the larger distance and avoiding illegal moves

RESIZING:
• resize rescales the snake and goal proportionally onto the new board
• Dimensions are clamped to the supported range

LIFECYCLE:
• Instances are independent; handles are never reused
• Operations on a destroyed handle return an error
• tick requests are capped per call; check ticks_executed in the result`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSnapshot(snapshot *engine.Snapshot) string {
	if snapshot == nil {
		return "No snapshot available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Board: %dx%d | Score: %d | Length: %d | Tick: %d | Phase: %s | Mode: %s\n\n",
		snapshot.Width, snapshot.Height, snapshot.Score, len(snapshot.Actor),
		snapshot.Tick, snapshot.Phase, snapshot.Mode))

	occupied := make(map[engine.Cell]byte, len(snapshot.Actor)+1)
	for i, cell := range snapshot.Actor {
		if i == 0 {
			occupied[cell] = '@'
		} else {
			occupied[cell] = '#'
		}
	}
	if _, taken := occupied[snapshot.Goal]; !taken {
		occupied[snapshot.Goal] = '*'
	}

	for y := 0; y < snapshot.Height; y++ {
		for x := 0; x < snapshot.Width; x++ {
			if ch, ok := occupied[engine.Cell{X: x, Y: y}]; ok {
				result.WriteByte(ch)
			} else {
				result.WriteByte('.')
			}
		}
		result.WriteString("\n")
	}

	if snapshot.Phase == engine.PhaseEnded {
		result.WriteString("\nRUN ENDED")
	}

	return result.String()
}

func formatTickResult(result *service.TickResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Executed %d/%d ticks\n", result.TicksExecuted, result.TicksRequested))
	if result.Truncated {
		b.WriteString(fmt.Sprintf("Request truncated to the per-call limit of %d\n", result.Limit))
	}
	if result.ScoreDelta > 0 {
		b.WriteString(fmt.Sprintf("Goals eaten this call: %d\n", result.ScoreDelta))
	}
	if result.Ended {
		b.WriteString("The run ended during this call\n")
	}

	b.WriteString("\n")
	b.WriteString(formatSnapshot(&result.Snapshot))
	return b.String()
}
