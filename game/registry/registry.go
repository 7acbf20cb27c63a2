package registry

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/snakesim/game/engine"
	"github.com/wricardo/mcp-training/snakesim/game/service"
)

var (
	ErrInvalidHandle   = errors.New("invalid handle")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Registry owns every simulation instance it creates, mapping opaque handles
// to instances. The map is the only shared structure between callers driving
// different instances, so it carries its own lock; the instances themselves
// do not.
type Registry struct {
	instances map[service.Handle]*service.Instance
	next      service.Handle
	mu        sync.RWMutex
}

// NewRegistry creates an empty instance registry
func NewRegistry() *Registry {
	return &Registry{
		instances: make(map[service.Handle]*service.Instance),
	}
}

// Create allocates a new instance from the given configuration and returns
// it under a fresh handle. Invalid configurations fail with
// ErrInvalidArgument and leave the registry unchanged.
func (r *Registry) Create(config *engine.Config) (*service.Instance, error) {
	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	instance := &service.Instance{
		Handle:         r.next,
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	r.instances[instance.Handle] = instance

	return instance, nil
}

// Get retrieves a live instance by handle
func (r *Registry) Get(handle service.Handle) (*service.Instance, error) {
	r.mu.RLock()
	instance, exists := r.instances[handle]
	r.mu.RUnlock()

	if !exists {
		return nil, ErrInvalidHandle
	}
	return instance, nil
}

// Destroy releases an instance and invalidates its handle. Destroying an
// unknown or already-destroyed handle fails with ErrInvalidHandle and has no
// side effects.
func (r *Registry) Destroy(handle service.Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.instances[handle]; !exists {
		return ErrInvalidHandle
	}
	delete(r.instances, handle)
	return nil
}

// List returns all live instances
func (r *Registry) List() []*service.Instance {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*service.Instance, 0, len(r.instances))
	for _, instance := range r.instances {
		result = append(result, instance)
	}
	return result
}

// UpdateLastAccessed updates the last accessed time for an instance
func (r *Registry) UpdateLastAccessed(handle service.Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	instance, exists := r.instances[handle]
	if !exists {
		return ErrInvalidHandle
	}
	instance.LastAccessedAt = time.Now()
	return nil
}

// Count returns the number of live instances
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.instances)
}
