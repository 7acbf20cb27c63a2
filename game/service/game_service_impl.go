package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/wricardo/mcp-training/snakesim/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	instances InstanceRegistry
	configs   ConfigManager
	mu        sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(instances InstanceRegistry, configs ConfigManager) GameService {
	return &gameServiceImpl{
		instances: instances,
		configs:   configs,
	}
}

// CreateInstance allocates a new simulation instance. An explicit width and
// height override the preset's dimensions; zero values keep the preset's.
func (s *gameServiceImpl) CreateInstance(ctx context.Context, configName string, width, height int) (*InstanceInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.Config
	if configName != "" {
		loaded, err := s.configs.LoadConfig(configName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				available, listErr := s.configs.ListConfigs()
				if listErr == nil && len(available) > 0 {
					var configIDs []string
					for _, cfg := range available {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
		config = loaded
	} else {
		config = s.configs.GetDefault()
	}

	// Never mutate a cached preset; instances own their config copy
	cfg := *config
	if width > 0 {
		cfg.Width = width
	}
	if height > 0 {
		cfg.Height = height
	}

	instance, err := s.instances.Create(&cfg)
	if err != nil {
		return nil, err
	}

	return s.instanceInfo(instance), nil
}

// GetInstance retrieves instance information
func (s *gameServiceImpl) GetInstance(ctx context.Context, handle Handle) (*InstanceInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	instance, err := s.instances.Get(handle)
	if err != nil {
		return nil, err
	}
	s.instances.UpdateLastAccessed(handle)

	return s.instanceInfo(instance), nil
}

// ListInstances returns all live instances
func (s *gameServiceImpl) ListInstances(ctx context.Context) ([]*InstanceInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	instances := s.instances.List()
	result := make([]*InstanceInfo, 0, len(instances))
	for _, instance := range instances {
		result = append(result, s.instanceInfo(instance))
	}
	return result, nil
}

// DestroyInstance releases an instance and invalidates its handle
func (s *gameServiceImpl) DestroyInstance(ctx context.Context, handle Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.instances.Destroy(handle)
}

// Tick advances an instance by the requested number of ticks (each one
// simulation step), stopping early when the run ends. Requests beyond
// MaxBulkTicks are truncated.
func (s *gameServiceImpl) Tick(ctx context.Context, handle Handle, ticks int) (*TickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	instance, err := s.instances.Get(handle)
	if err != nil {
		return nil, err
	}
	s.instances.UpdateLastAccessed(handle)

	requested := ticks
	if requested < 1 {
		requested = 1
	}
	truncated := false
	limit := requested
	if limit > engine.MaxBulkTicks {
		limit = engine.MaxBulkTicks
		truncated = true
	}

	eng := instance.Engine
	startScore := eng.Score()
	executed := 0
	for i := 0; i < limit; i++ {
		if eng.Phase() == engine.PhaseEnded {
			break
		}
		eng.Update()
		executed++
	}

	return &TickResult{
		Handle:         handle,
		TicksRequested: requested,
		TicksExecuted:  executed,
		Truncated:      truncated,
		Limit:          engine.MaxBulkTicks,
		Ended:          eng.Phase() == engine.PhaseEnded,
		ScoreDelta:     eng.Score() - startScore,
		Snapshot:       eng.Render(),
	}, nil
}

// Render produces a read-only snapshot of an instance
func (s *gameServiceImpl) Render(ctx context.Context, handle Handle) (*engine.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	instance, err := s.instances.Get(handle)
	if err != nil {
		return nil, err
	}

	snapshot := instance.Engine.Render()
	return &snapshot, nil
}

// SetDirection records a discrete directional command for the next tick
func (s *gameServiceImpl) SetDirection(ctx context.Context, handle Handle, direction engine.Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	instance, err := s.instances.Get(handle)
	if err != nil {
		return err
	}
	s.instances.UpdateLastAccessed(handle)

	instance.Engine.SetDirection(direction)
	return nil
}

// SetMode switches an instance between manual and automatic play
func (s *gameServiceImpl) SetMode(ctx context.Context, handle Handle, mode engine.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	instance, err := s.instances.Get(handle)
	if err != nil {
		return err
	}
	s.instances.UpdateLastAccessed(handle)

	instance.Engine.SetMode(mode)
	return nil
}

// Touch feeds a raw pointer event into an instance's input accumulator
func (s *gameServiceImpl) Touch(ctx context.Context, handle Handle, x, y float64, action engine.TouchAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	instance, err := s.instances.Get(handle)
	if err != nil {
		return err
	}
	s.instances.UpdateLastAccessed(handle)

	instance.Engine.Touch(x, y, action)
	return nil
}

// Resize updates an instance's surface bounds
func (s *gameServiceImpl) Resize(ctx context.Context, handle Handle, width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	instance, err := s.instances.Get(handle)
	if err != nil {
		return err
	}
	s.instances.UpdateLastAccessed(handle)

	instance.Engine.Resize(width, height)
	return nil
}

// ListConfigs returns all available configuration presets
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a configuration preset by name
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.Config, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig persists a configuration preset
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.Config) error {
	return s.configs.SaveConfig(configName, config)
}

// instanceInfo builds the transport-facing view of an instance
func (s *gameServiceImpl) instanceInfo(instance *Instance) *InstanceInfo {
	return &InstanceInfo{
		Handle:         instance.Handle,
		ConfigName:     instance.Config.Name,
		CreatedAt:      instance.CreatedAt,
		LastAccessedAt: instance.LastAccessedAt,
		Snapshot:       instance.Engine.Render(),
	}
}
