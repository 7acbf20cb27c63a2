package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/wricardo/mcp-training/snakesim/game/engine"
	"github.com/wricardo/mcp-training/snakesim/game/registry"
	"github.com/wricardo/mcp-training/snakesim/game/service"
)

// fakeConfigs is an in-memory ConfigManager for service tests
type fakeConfigs struct {
	presets map[string]*engine.Config
}

func newFakeConfigs() *fakeConfigs {
	return &fakeConfigs{
		presets: map[string]*engine.Config{
			"classic": {Name: "classic", Width: 16, Height: 16, Seed: 3},
			"tiny":    {Name: "tiny", Width: 4, Height: 4, Seed: 5},
		},
	}
}

func (f *fakeConfigs) LoadConfig(name string) (*engine.Config, error) {
	if cfg, ok := f.presets[name]; ok {
		return cfg, nil
	}
	return nil, fmt.Errorf("configuration not found: %s", name)
}

func (f *fakeConfigs) ListConfigs() ([]*service.ConfigInfo, error) {
	var infos []*service.ConfigInfo
	for id, cfg := range f.presets {
		infos = append(infos, &service.ConfigInfo{
			ConfigID: id,
			Name:     cfg.Name,
			Width:    cfg.Width,
			Height:   cfg.Height,
		})
	}
	return infos, nil
}

func (f *fakeConfigs) GetDefault() *engine.Config {
	return f.presets["classic"]
}

func (f *fakeConfigs) SaveConfig(name string, cfg *engine.Config) error {
	f.presets[name] = cfg
	return nil
}

func newTestService() service.GameService {
	return service.NewGameService(registry.NewRegistry(), newFakeConfigs())
}

func TestCreateInstanceWithDefaults(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, err := svc.CreateInstance(ctx, "", 0, 0)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	if info.Handle == 0 {
		t.Error("expected a non-zero handle")
	}
	if info.Snapshot.Width != 16 || info.Snapshot.Height != 16 {
		t.Errorf("grid = %dx%d, want the default preset's 16x16", info.Snapshot.Width, info.Snapshot.Height)
	}
	if info.Snapshot.Phase != engine.PhaseRunning {
		t.Errorf("phase = %q, want running", info.Snapshot.Phase)
	}
}

func TestCreateInstanceExplicitDimensions(t *testing.T) {
	svc := newTestService()

	info, err := svc.CreateInstance(context.Background(), "", 8, 20)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	if info.Snapshot.Width != 8 || info.Snapshot.Height != 20 {
		t.Errorf("grid = %dx%d, want 8x20", info.Snapshot.Width, info.Snapshot.Height)
	}
}

func TestCreateInstanceInvalidDimensions(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateInstance(context.Background(), "", 2, 2)
	if !errors.Is(err, registry.ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestCreateInstanceUnknownConfig(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateInstance(context.Background(), "nope", 0, 0)
	if err == nil {
		t.Fatal("expected error for unknown config")
	}
}

func TestTickAdvancesAndReports(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, err := svc.CreateInstance(ctx, "classic", 0, 0)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	if err := svc.SetDirection(ctx, info.Handle, engine.DirRight); err != nil {
		t.Fatalf("SetDirection failed: %v", err)
	}

	result, err := svc.Tick(ctx, info.Handle, 3)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if result.TicksRequested != 3 || result.TicksExecuted != 3 {
		t.Errorf("requested/executed = %d/%d, want 3/3", result.TicksRequested, result.TicksExecuted)
	}
	if result.Snapshot.Tick != 3 {
		t.Errorf("snapshot tick = %d, want 3", result.Snapshot.Tick)
	}
	wantHead := engine.Cell{X: 8 + 3, Y: 8}
	if result.Snapshot.Actor[0] != wantHead {
		t.Errorf("head = %v, want %v", result.Snapshot.Actor[0], wantHead)
	}
}

func TestTickStopsWhenRunEnds(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, err := svc.CreateInstance(ctx, "tiny", 0, 0)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	if err := svc.SetDirection(ctx, info.Handle, engine.DirRight); err != nil {
		t.Fatalf("SetDirection failed: %v", err)
	}

	// 4x4 grid, actor starts at (2,2): one step to (3,2), the next hits the
	// boundary and ends the run.
	result, err := svc.Tick(ctx, info.Handle, 10)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if !result.Ended {
		t.Fatal("run should have ended at the boundary")
	}
	if result.TicksExecuted >= 10 {
		t.Errorf("executed %d ticks, want early stop", result.TicksExecuted)
	}

	// Ticking an ended instance is well-defined and executes nothing
	again, err := svc.Tick(ctx, info.Handle, 5)
	if err != nil {
		t.Fatalf("Tick on ended instance failed: %v", err)
	}
	if again.TicksExecuted != 0 {
		t.Errorf("executed %d ticks on an ended instance, want 0", again.TicksExecuted)
	}
}

func TestTickTruncatesBulkRequests(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, err := svc.CreateInstance(ctx, "classic", 0, 0)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}

	result, err := svc.Tick(ctx, info.Handle, engine.MaxBulkTicks+100)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if !result.Truncated {
		t.Error("oversized tick request must be truncated")
	}
	if result.TicksExecuted > engine.MaxBulkTicks {
		t.Errorf("executed %d ticks, limit is %d", result.TicksExecuted, engine.MaxBulkTicks)
	}
}

func TestRenderIsReadOnly(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, err := svc.CreateInstance(ctx, "classic", 0, 0)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}

	first, err := svc.Render(ctx, info.Handle)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	second, err := svc.Render(ctx, info.Handle)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if first.Tick != second.Tick || first.Score != second.Score {
		t.Error("render must not advance the simulation")
	}
}

func TestOperationsOnStaleHandle(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, err := svc.CreateInstance(ctx, "classic", 0, 0)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	if err := svc.DestroyInstance(ctx, info.Handle); err != nil {
		t.Fatalf("DestroyInstance failed: %v", err)
	}

	if _, err := svc.Render(ctx, info.Handle); !errors.Is(err, registry.ErrInvalidHandle) {
		t.Errorf("Render error = %v, want ErrInvalidHandle", err)
	}
	if _, err := svc.Tick(ctx, info.Handle, 1); !errors.Is(err, registry.ErrInvalidHandle) {
		t.Errorf("Tick error = %v, want ErrInvalidHandle", err)
	}
	if err := svc.SetMode(ctx, info.Handle, engine.ModeAutomatic); !errors.Is(err, registry.ErrInvalidHandle) {
		t.Errorf("SetMode error = %v, want ErrInvalidHandle", err)
	}
	if err := svc.Touch(ctx, info.Handle, 1, 1, engine.TouchDown); !errors.Is(err, registry.ErrInvalidHandle) {
		t.Errorf("Touch error = %v, want ErrInvalidHandle", err)
	}
	if err := svc.DestroyInstance(ctx, info.Handle); !errors.Is(err, registry.ErrInvalidHandle) {
		t.Errorf("DestroyInstance error = %v, want ErrInvalidHandle", err)
	}
}

func TestAutomaticModeScoresOverTicks(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, err := svc.CreateInstance(ctx, "classic", 0, 0)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	if err := svc.SetMode(ctx, info.Handle, engine.ModeAutomatic); err != nil {
		t.Fatalf("SetMode failed: %v", err)
	}

	result, err := svc.Tick(ctx, info.Handle, 200)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if result.ScoreDelta < 1 {
		t.Errorf("score delta = %d, want at least one goal reached in 200 ticks", result.ScoreDelta)
	}
}
