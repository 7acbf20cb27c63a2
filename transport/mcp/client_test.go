package mcp

import (
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/snakesim/game/engine"
	"github.com/wricardo/mcp-training/snakesim/game/service"
)

func TestFormatSnapshot(t *testing.T) {
	snapshot := &engine.Snapshot{
		Width:  4,
		Height: 3,
		Actor:  []engine.Cell{{X: 1, Y: 1}, {X: 0, Y: 1}},
		Goal:   engine.Cell{X: 3, Y: 0},
		Score:  2,
		Phase:  engine.PhaseRunning,
		Mode:   engine.ModeManual,
		Tick:   7,
	}

	out := formatSnapshot(snapshot)

	wantBoard := "...*\n#@..\n....\n"
	if !strings.Contains(out, wantBoard) {
		t.Errorf("board rendering wrong:\n%s\nwant to contain:\n%s", out, wantBoard)
	}
	if !strings.Contains(out, "Score: 2") || !strings.Contains(out, "Length: 2") {
		t.Errorf("header missing score or length:\n%s", out)
	}
	if strings.Contains(out, "RUN ENDED") {
		t.Error("running snapshot must not be marked ended")
	}
}

func TestFormatSnapshotEnded(t *testing.T) {
	snapshot := &engine.Snapshot{
		Width:  4,
		Height: 4,
		Actor:  []engine.Cell{{X: 0, Y: 0}},
		Goal:   engine.Cell{X: 2, Y: 2},
		Phase:  engine.PhaseEnded,
	}

	if out := formatSnapshot(snapshot); !strings.Contains(out, "RUN ENDED") {
		t.Errorf("ended snapshot missing marker:\n%s", out)
	}
}

func TestFormatSnapshotHeadCoversGoal(t *testing.T) {
	// When the head sits on the goal cell the head wins the glyph
	snapshot := &engine.Snapshot{
		Width:  3,
		Height: 3,
		Actor:  []engine.Cell{{X: 1, Y: 1}},
		Goal:   engine.Cell{X: 1, Y: 1},
		Phase:  engine.PhaseRunning,
	}

	out := formatSnapshot(snapshot)
	if strings.Contains(out, "*") {
		t.Errorf("goal glyph must not appear under the head:\n%s", out)
	}
	if !strings.Contains(out, "@") {
		t.Errorf("head glyph missing:\n%s", out)
	}
}

func TestFormatTickResult(t *testing.T) {
	result := &service.TickResult{
		TicksRequested: 700,
		TicksExecuted:  600,
		Truncated:      true,
		Limit:          engine.MaxBulkTicks,
		Ended:          true,
		ScoreDelta:     3,
		Snapshot: engine.Snapshot{
			Width:  4,
			Height: 4,
			Actor:  []engine.Cell{{X: 2, Y: 2}},
			Phase:  engine.PhaseEnded,
		},
	}

	out := formatTickResult(result)
	for _, want := range []string{"Executed 600/700", "truncated", "Goals eaten this call: 3", "ended during this call"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestToolRegistration(t *testing.T) {
	client := NewClient("http://localhost:0")

	if client.GetMCPServer() == nil {
		t.Fatal("MCP server not initialized")
	}
}
