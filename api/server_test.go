package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wricardo/mcp-training/snakesim/game/engine"
	"github.com/wricardo/mcp-training/snakesim/game/registry"
	"github.com/wricardo/mcp-training/snakesim/game/service"
	"github.com/wricardo/mcp-training/snakesim/transport/websocket"
)

type stubConfigs struct {
	presets map[string]*engine.Config
}

func newStubConfigs() *stubConfigs {
	return &stubConfigs{
		presets: map[string]*engine.Config{
			"classic": {Name: "classic", Width: 16, Height: 16, Seed: 3},
		},
	}
}

func (s *stubConfigs) LoadConfig(name string) (*engine.Config, error) {
	if cfg, ok := s.presets[name]; ok {
		return cfg, nil
	}
	return nil, fmt.Errorf("configuration not found: %s", name)
}

func (s *stubConfigs) ListConfigs() ([]*service.ConfigInfo, error) {
	var infos []*service.ConfigInfo
	for id, cfg := range s.presets {
		infos = append(infos, &service.ConfigInfo{ConfigID: id, Name: cfg.Name, Width: cfg.Width, Height: cfg.Height})
	}
	return infos, nil
}

func (s *stubConfigs) GetDefault() *engine.Config {
	return s.presets["classic"]
}

func (s *stubConfigs) SaveConfig(name string, cfg *engine.Config) error {
	s.presets[name] = cfg
	return nil
}

func newTestServer() *Server {
	svc := service.NewGameService(registry.NewRegistry(), newStubConfigs())
	hub := websocket.NewHub()
	go hub.Run()
	return NewServer(svc, hub)
}

func doRequest(t *testing.T, server *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder
}

func createTestInstance(t *testing.T, server *Server) service.Handle {
	t.Helper()

	recorder := doRequest(t, server, "POST", "/api/instances", map[string]interface{}{})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create instance returned %d: %s", recorder.Code, recorder.Body.String())
	}

	var info service.InstanceInfo
	if err := json.Unmarshal(recorder.Body.Bytes(), &info); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	return info.Handle
}

func TestCreateInstanceEndpoint(t *testing.T) {
	server := newTestServer()

	recorder := doRequest(t, server, "POST", "/api/instances", map[string]interface{}{
		"config_id": "classic",
		"width":     10,
		"height":    12,
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", recorder.Code, recorder.Body.String())
	}

	var info service.InstanceInfo
	if err := json.Unmarshal(recorder.Body.Bytes(), &info); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if info.Snapshot.Width != 10 || info.Snapshot.Height != 12 {
		t.Errorf("grid = %dx%d, want 10x12", info.Snapshot.Width, info.Snapshot.Height)
	}
}

func TestCreateInstanceInvalidDimensionsEndpoint(t *testing.T) {
	server := newTestServer()

	recorder := doRequest(t, server, "POST", "/api/instances", map[string]interface{}{
		"width":  2,
		"height": 2,
	})
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", recorder.Code)
	}
}

func TestSnapshotEndpoint(t *testing.T) {
	server := newTestServer()
	handle := createTestInstance(t, server)

	recorder := doRequest(t, server, "GET", fmt.Sprintf("/api/instances/%d/snapshot", handle), nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}

	var snapshot engine.Snapshot
	if err := json.Unmarshal(recorder.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	if snapshot.Phase != engine.PhaseRunning || len(snapshot.Actor) != 1 {
		t.Errorf("unexpected initial snapshot: %+v", snapshot)
	}
}

func TestUpdateEndpoint(t *testing.T) {
	server := newTestServer()
	handle := createTestInstance(t, server)

	recorder := doRequest(t, server, "POST", fmt.Sprintf("/api/instances/%d/direction", handle), map[string]interface{}{
		"direction": "right",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("set direction status = %d: %s", recorder.Code, recorder.Body.String())
	}

	recorder = doRequest(t, server, "POST", fmt.Sprintf("/api/instances/%d/update", handle), map[string]interface{}{
		"ticks": 2,
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", recorder.Code, recorder.Body.String())
	}

	var result service.TickResult
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode tick result: %v", err)
	}
	if result.TicksExecuted != 2 {
		t.Errorf("executed = %d, want 2", result.TicksExecuted)
	}
	if result.Snapshot.Actor[0].X != 10 {
		t.Errorf("head x = %d, want 10", result.Snapshot.Actor[0].X)
	}
}

func TestDirectionByCodeEndpoint(t *testing.T) {
	server := newTestServer()
	handle := createTestInstance(t, server)

	// 4 is right in the compact integer encoding
	recorder := doRequest(t, server, "POST", fmt.Sprintf("/api/instances/%d/direction", handle), map[string]interface{}{
		"code": 4,
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", recorder.Code, recorder.Body.String())
	}

	var resp struct {
		Direction engine.Direction `json:"direction"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Direction != engine.DirRight {
		t.Errorf("direction = %q, want right", resp.Direction)
	}
}

func TestTouchEndpoint(t *testing.T) {
	server := newTestServer()
	handle := createTestInstance(t, server)

	down := map[string]interface{}{"x": 10.0, "y": 10.0, "action": "down"}
	if rec := doRequest(t, server, "POST", fmt.Sprintf("/api/instances/%d/touch", handle), down); rec.Code != http.StatusOK {
		t.Fatalf("touch down status = %d: %s", rec.Code, rec.Body.String())
	}
	up := map[string]interface{}{"x": 90.0, "y": 12.0, "action": "up"}
	if rec := doRequest(t, server, "POST", fmt.Sprintf("/api/instances/%d/touch", handle), up); rec.Code != http.StatusOK {
		t.Fatalf("touch up status = %d: %s", rec.Code, rec.Body.String())
	}

	recorder := doRequest(t, server, "POST", fmt.Sprintf("/api/instances/%d/update", handle), map[string]interface{}{"ticks": 1})
	var result service.TickResult
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode tick result: %v", err)
	}
	if result.Snapshot.Actor[0].X != 9 {
		t.Errorf("head x = %d, want 9 after a rightward swipe", result.Snapshot.Actor[0].X)
	}
}

func TestResizeEndpoint(t *testing.T) {
	server := newTestServer()
	handle := createTestInstance(t, server)

	recorder := doRequest(t, server, "POST", fmt.Sprintf("/api/instances/%d/resize", handle), map[string]interface{}{
		"width":  32,
		"height": 32,
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", recorder.Code, recorder.Body.String())
	}

	var snapshot engine.Snapshot
	if err := json.Unmarshal(recorder.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	if snapshot.Width != 32 || snapshot.Height != 32 {
		t.Errorf("grid = %dx%d after resize, want 32x32", snapshot.Width, snapshot.Height)
	}
}

func TestDestroyInstanceEndpoint(t *testing.T) {
	server := newTestServer()
	handle := createTestInstance(t, server)

	recorder := doRequest(t, server, "DELETE", fmt.Sprintf("/api/instances/%d", handle), nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}

	// Stale handle is a 404 from now on
	recorder = doRequest(t, server, "GET", fmt.Sprintf("/api/instances/%d/snapshot", handle), nil)
	if recorder.Code != http.StatusNotFound {
		t.Errorf("stale handle status = %d, want 404", recorder.Code)
	}
}

func TestUnknownHandleEndpoints(t *testing.T) {
	server := newTestServer()

	recorder := doRequest(t, server, "GET", "/api/instances/9999/snapshot", nil)
	if recorder.Code != http.StatusNotFound {
		t.Errorf("unknown handle status = %d, want 404", recorder.Code)
	}

	recorder = doRequest(t, server, "GET", "/api/instances/not-a-number/snapshot", nil)
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("malformed handle status = %d, want 400", recorder.Code)
	}
}

func TestListConfigsEndpoint(t *testing.T) {
	server := newTestServer()

	recorder := doRequest(t, server, "GET", "/api/configs", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}

	var configs []*service.ConfigInfo
	if err := json.Unmarshal(recorder.Body.Bytes(), &configs); err != nil {
		t.Fatalf("failed to decode configs: %v", err)
	}
	if len(configs) != 1 || configs[0].ConfigID != "classic" {
		t.Errorf("unexpected configs: %+v", configs)
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer()

	recorder := doRequest(t, server, "GET", "/api/health", nil)
	if recorder.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", recorder.Code)
	}
}
