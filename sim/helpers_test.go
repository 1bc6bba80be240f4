package sim

import (
	"fmt"
	"math/rand"
	"testing"

	"go.uber.org/zap/zaptest"
)

// quietConfig 没有食物、没有机器人、不补充食物的配置，测试自行摆放实体
func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.FoodTarget = 0
	cfg.BotTarget = 0
	cfg.FoodSpawnChance = 0
	return cfg
}

func newTestWorld(t *testing.T, cfg Config, ports Ports) *World {
	t.Helper()
	w, err := NewWorld(cfg, ports, WithRand(rand.New(rand.NewSource(42))), WithLogger(zaptest.NewLogger(t)))
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

// addPlayer 直接把一条蛇作为玩家放入世界
func addPlayer(w *World, s *Snake, in Input) {
	w.player = &Agent{Snake: s, Control: PlayerControl{Input: in}}
}

func addBot(w *World, s *Snake) *Agent {
	a := &Agent{Snake: s, Control: NewBot(s.X, s.Y, w.rng)}
	w.bots = append(w.bots, a)
	return a
}

type fakeInput struct {
	state PointerState
}

func (f *fakeInput) Pointer() PointerState { return f.state }

type recordScreen struct {
	calls []string
}

func (r *recordScreen) Clear() { r.calls = append(r.calls, "clear") }
func (r *recordScreen) Camera(x, y float64) { r.calls = append(r.calls, fmt.Sprintf("camera %.0f,%.0f", x, y)) }
func (r *recordScreen) ResetCamera() { r.calls = append(r.calls, "reset") }
func (r *recordScreen) DrawGrid(w, h float64) { r.calls = append(r.calls, fmt.Sprintf("grid %.0fx%.0f", w, h)) }
func (r *recordScreen) DrawLabel(x, y float64, s string) { r.calls = append(r.calls, "label "+s) }
func (r *recordScreen) DrawCircle(x, y, radius float64, color string, glow bool) {
	r.calls = append(r.calls, fmt.Sprintf("circle %s", color))
}

type fakeStore struct {
	recorded []Result
	best     float64
}

func (f *fakeStore) Record(r Result) error {
	f.recorded = append(f.recorded, r)
	if r.Score > f.best {
		f.best = r.Score
	}
	return nil
}

func (f *fakeStore) Best() (float64, error) { return f.best, nil }

// indexOf 返回第一个匹配的调用位置，不存在时为 -1
func indexOf(calls []string, want string) int {
	for i, c := range calls {
		if c == want {
			return i
		}
	}
	return -1
}
