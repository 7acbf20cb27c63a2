// Package engine provides the core simulation logic for the grid snake game.
//
// The engine package implements the per-instance state machine including:
//   - Grid-based movement and collision detection
//   - Goal placement, growth and scoring
//   - Pointer-gesture and directional-command input translation
//   - An automatic-play policy that substitutes for a human player
//   - Render snapshots for host compositors
//
// Core Types:
//
// Engine owns one instance's full state and executes the per-tick
// transition. Snapshot is the immutable drawable description handed to
// hosts. Config defines the initial grid, RNG seed and starting mode,
// loaded from JSON presets or built from explicit dimensions.
//
// Usage:
//
//	eng, err := engine.NewEngine(engine.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng.SetDirection(engine.DirRight)
//	eng.Update()               // advance one tick
//	snap := eng.Render()       // read-only snapshot
//
// Game Rules:
//
// The actor advances one cell per tick in its facing direction. Reaching the
// goal grows the actor by one segment, increments the score and re-places the
// goal on a free cell. Stepping off the grid or into the actor's own body
// ends the run permanently; the frozen end state remains renderable. A
// 180-degree reversal is never a legal intent while the actor is longer than
// one cell.
//
// Concurrency:
//
// An Engine has no internal locking. The host drives Update/Render/mutators
// for one instance serially; distinct instances are fully independent.
package engine
