package service

import (
	"context"
	"time"

	"github.com/wricardo/mcp-training/snakesim/game/engine"
)

// Handle is the opaque token identifying one independently-owned simulation
// instance. Values are allocated monotonically and never reused, so a
// destroyed handle can never alias a later instance.
type Handle uint64

// GameService defines all simulation-boundary operations
type GameService interface {
	// Instance lifecycle
	CreateInstance(ctx context.Context, configName string, width, height int) (*InstanceInfo, error)
	GetInstance(ctx context.Context, handle Handle) (*InstanceInfo, error)
	ListInstances(ctx context.Context) ([]*InstanceInfo, error)
	DestroyInstance(ctx context.Context, handle Handle) error

	// Per-frame operations
	Tick(ctx context.Context, handle Handle, ticks int) (*TickResult, error)
	Render(ctx context.Context, handle Handle) (*engine.Snapshot, error)

	// Input and surface
	SetDirection(ctx context.Context, handle Handle, direction engine.Direction) error
	SetMode(ctx context.Context, handle Handle, mode engine.Mode) error
	Touch(ctx context.Context, handle Handle, x, y float64, action engine.TouchAction) error
	Resize(ctx context.Context, handle Handle, width, height int) error

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.Config, error)
	SaveConfig(ctx context.Context, configName string, config *engine.Config) error
}

// InstanceRegistry defines instance storage operations
type InstanceRegistry interface {
	Create(config *engine.Config) (*Instance, error)
	Get(handle Handle) (*Instance, error)
	Destroy(handle Handle) error
	List() []*Instance
	UpdateLastAccessed(handle Handle) error
	Count() int
}

// ConfigManager handles instance configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.Config, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.Config
	SaveConfig(name string, config *engine.Config) error
}

// Instance pairs a live engine with its handle and bookkeeping
type Instance struct {
	Handle         Handle
	Engine         *engine.Engine
	Config         *engine.Config
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
