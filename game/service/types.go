package service

import (
	"time"

	"github.com/wricardo/mcp-training/snakesim/game/engine"
)

// InstanceInfo provides information about a simulation instance
type InstanceInfo struct {
	Handle         Handle          `json:"handle"`
	ConfigName     string          `json:"config_name"`
	CreatedAt      time.Time       `json:"created_at"`
	LastAccessedAt time.Time       `json:"last_accessed_at"`
	Snapshot       engine.Snapshot `json:"snapshot"`
}

// TickResult contains the outcome of advancing an instance
type TickResult struct {
	Handle         Handle          `json:"handle"`
	TicksRequested int             `json:"ticks_requested"`
	TicksExecuted  int             `json:"ticks_executed"`
	Truncated      bool            `json:"truncated,omitempty"`
	Limit          int             `json:"limit,omitempty"`
	Ended          bool            `json:"ended"`
	ScoreDelta     int             `json:"score_delta"`
	Snapshot       engine.Snapshot `json:"snapshot"`
}

// ConfigInfo provides information about an instance configuration preset
type ConfigInfo struct {
	Filename    string      `json:"filename"`
	ConfigID    string      `json:"config_id"` // The identifier to use for instance creation
	Name        string      `json:"name"`      // Display name
	Description string      `json:"description"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	StartMode   engine.Mode `json:"start_mode"`
}
