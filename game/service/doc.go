// Package service provides the business logic layer for the snake simulation
// engine.
//
// The service package implements:
//   - Multi-instance lifecycle management behind opaque handles
//   - Per-frame tick and render orchestration
//   - Input routing (discrete directions, pointer gestures, mode switches)
//   - Configuration preset management
//
// Core Interfaces:
//
// GameService is the main service interface providing the boundary
// operations. InstanceRegistry handles instance creation, retrieval and
// destruction. ConfigManager manages configuration preset loading.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the simulation engine, acting as the frame driver the engine expects:
// it serializes update/render/mutator calls per process while the engine
// itself stays lock-free. Each instance owns an independent engine; handles
// are never reused.
//
// Usage:
//
//	reg := registry.NewRegistry()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(reg, configMgr)
//
//	info, err := gameService.CreateInstance(ctx, "classic", 0, 0)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameService.SetDirection(ctx, info.Handle, engine.DirRight)
//	result, err := gameService.Tick(ctx, info.Handle, 1)
package service
