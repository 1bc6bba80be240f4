package sim

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestNewWorld_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 0
	if _, err := NewWorld(cfg, Ports{}); err == nil {
		t.Fatalf("expected error for zero width")
	}

	cfg = DefaultConfig()
	cfg.BodySampleStride = 0
	if _, err := NewWorld(cfg, Ports{}); err == nil {
		t.Fatalf("expected error for zero stride")
	}
}

func TestWorld_StartSpawnsPopulation(t *testing.T) {
	cfg := DefaultConfig()
	w := newTestWorld(t, cfg, Ports{})
	w.Start("")

	p := w.Player()
	if p == nil || p.Name != "Player" {
		t.Fatalf("player=%+v want default name", p)
	}
	if p.X != cfg.Width/2 || p.Y != cfg.Height/2 {
		t.Fatalf("player at (%v,%v) want world center", p.X, p.Y)
	}
	if len(w.Bots()) != cfg.BotTarget || len(w.Foods()) != cfg.FoodTarget {
		t.Fatalf("bots=%d foods=%d", len(w.Bots()), len(w.Foods()))
	}
	for i, b := range w.Bots() {
		if b.X < cfg.BotSpawnMargin || b.X > cfg.Width-cfg.BotSpawnMargin ||
			b.Y < cfg.BotSpawnMargin || b.Y > cfg.Height-cfg.BotSpawnMargin {
			t.Fatalf("bot %d spawned at (%v,%v) outside margin", i, b.X, b.Y)
		}
		if !b.IsBot() || !strings.HasPrefix(b.Name, "Bot ") {
			t.Fatalf("bot %d=%q", i, b.Name)
		}
	}
	for i, f := range w.Foods() {
		if f.X < 0 || f.X > cfg.Width || f.Y < 0 || f.Y > cfg.Height {
			t.Fatalf("food %d out of world: (%v,%v)", i, f.X, f.Y)
		}
	}
}

func TestWorld_PointerSteersRelativeToScreenCenter(t *testing.T) {
	in := &fakeInput{state: PointerState{X: 500, Y: 300, ScreenW: 800, ScreenH: 600}}
	w := newTestWorld(t, quietConfig(), Ports{Input: in})
	w.Start("alice")

	p := w.Player()
	x0 := p.X
	w.Update(1.0 / 60)
	if math.Abs(p.X-x0-BaseSpeed) > 1e-9 || p.Angle != 0 {
		t.Fatalf("x=%v angle=%v want one base step to the right", p.X, p.Angle)
	}

	in.state.Dash = true
	w.Update(1.0 / 60)
	if math.Abs(p.X-x0-BaseSpeed-DashSpeed) > 1e-9 {
		t.Fatalf("dash step not applied, x=%v", p.X)
	}
}

func TestWorld_LeavingBoundsEndsGame(t *testing.T) {
	in := &fakeInput{state: PointerState{X: 0, Y: 300, ScreenW: 800, ScreenH: 600}}
	store := &fakeStore{best: 50}
	var results []Result
	w := newTestWorld(t, quietConfig(), Ports{
		Input:  in,
		Host:   HostFunc(func(r Result) { results = append(results, r) }),
		Scores: store,
	})
	w.Start("alice")

	var over []Event
	w.Events().Subscribe(EventGameOver, func(e Event) { over = append(over, e) })

	p := w.Player()
	p.Grow(3)
	p.X = 1
	p.Angle = math.Pi

	w.Update(1.0 / 60)

	if p.Alive() || !w.Over() {
		t.Fatalf("player at x=%v should be dead", p.X)
	}
	if len(results) != 1 {
		t.Fatalf("host notified %d times", len(results))
	}
	r := results[0]
	if r.Score != 30 || r.Name != "alice" || r.Best != 50 || r.Ticks != 1 {
		t.Fatalf("result=%+v", r)
	}
	if len(store.recorded) != 1 || store.recorded[0].Score != 30 {
		t.Fatalf("store recorded %+v", store.recorded)
	}
	if len(over) != 1 || over[0].Value != 30 {
		t.Fatalf("game over events=%+v", over)
	}

	// 死亡后继续 Update 不会重复通知
	w.Update(1.0 / 60)
	if len(results) != 1 {
		t.Fatalf("host notified again after death")
	}
}

func TestWorld_BestIncludesCurrentScore(t *testing.T) {
	store := &fakeStore{best: 5}
	var got Result
	w := newTestWorld(t, quietConfig(), Ports{Host: HostFunc(func(r Result) { got = r }), Scores: store})
	w.Start("bob")
	w.Player().Grow(4)
	w.KillSnake(w.Player())

	if got.Score != 40 || got.Best != 40 {
		t.Fatalf("result=%+v want best=score=40", got)
	}
}

func TestWorld_BotRespawnsAfterDelay(t *testing.T) {
	cfg := quietConfig()
	cfg.BotTarget = 1
	w := newTestWorld(t, cfg, Ports{})
	w.Reset()

	w.KillSnake(w.Bots()[0].Snake)
	if len(w.Bots()) != 0 {
		t.Fatalf("dead bot still in list")
	}

	for i := 0; i < 5; i++ {
		w.Update(0.5)
		if len(w.Bots()) != 0 {
			t.Fatalf("bot respawned early after %.1fs", float64(i+1)*0.5)
		}
	}
	w.Update(0.5)
	if len(w.Bots()) != 1 {
		t.Fatalf("bot not respawned after %.1fs", cfg.BotRespawnDelay)
	}
	if name := w.Bots()[0].Name; name != "Bot 2" {
		t.Fatalf("respawned bot name=%q want Bot 2", name)
	}
}

func TestWorld_RespawnSkippedWhenTargetMet(t *testing.T) {
	cfg := quietConfig()
	cfg.BotTarget = 1
	w := newTestWorld(t, cfg, Ports{})
	w.Reset()

	w.KillSnake(w.Bots()[0].Snake)
	w.SpawnBot()
	for i := 0; i < 8; i++ {
		w.Update(0.5)
	}
	if len(w.Bots()) != 1 {
		t.Fatalf("bots=%d want 1", len(w.Bots()))
	}
}

func TestWorld_CloseCancelsRespawn(t *testing.T) {
	cfg := quietConfig()
	cfg.BotTarget = 1
	w := newTestWorld(t, cfg, Ports{})
	w.Reset()

	w.KillSnake(w.Bots()[0].Snake)
	w.Close()

	if w.tasks.pending() != 0 {
		t.Fatalf("pending=%d after Close", w.tasks.pending())
	}
	ticks := w.Ticks()
	for i := 0; i < 10; i++ {
		w.Update(0.5)
	}
	if len(w.Bots()) != 0 || w.Ticks() != ticks {
		t.Fatalf("closed world advanced: bots=%d ticks=%d", len(w.Bots()), w.Ticks())
	}
}

func TestWorld_StartDiscardsPendingRespawns(t *testing.T) {
	cfg := quietConfig()
	cfg.BotTarget = 1
	w := newTestWorld(t, cfg, Ports{})
	w.Reset()

	w.KillSnake(w.Bots()[0].Snake)
	w.Start("alice")

	if w.tasks.pending() != 0 {
		t.Fatalf("pending=%d after Start", w.tasks.pending())
	}
	if len(w.Bots()) != 1 || w.Bots()[0].Name != "Bot 1" {
		t.Fatalf("bots after Start: %d", len(w.Bots()))
	}
	if w.Over() || w.Ticks() != 0 {
		t.Fatalf("Start should reset over/ticks")
	}
}

func TestWorld_FoodReplenishesOnePerTick(t *testing.T) {
	cfg := quietConfig()
	cfg.FoodTarget = 5
	cfg.FoodSpawnChance = 1
	w := newTestWorld(t, cfg, Ports{})
	w.Reset()

	if len(w.Foods()) != 5 {
		t.Fatalf("foods=%d", len(w.Foods()))
	}
	w.foods = w.foods[:3]
	for _, want := range []int{4, 5, 5} {
		w.Update(1.0 / 60)
		if len(w.Foods()) != want {
			t.Fatalf("foods=%d want %d", len(w.Foods()), want)
		}
	}
}

func TestWorld_DrawOrder(t *testing.T) {
	cfg := quietConfig()
	cfg.BotTarget = 1
	cfg.FoodTarget = 1
	scr := &recordScreen{}
	w := newTestWorld(t, cfg, Ports{Screen: scr})
	w.Start("alice")

	w.Draw()

	calls := scr.calls
	if calls[0] != "clear" || calls[1] != "camera 1500,1500" || calls[2] != "grid 3000x3000" {
		t.Fatalf("prologue=%v", calls[:3])
	}
	if want := "circle " + w.Foods()[0].Color; calls[3] != want {
		t.Fatalf("calls[3]=%q want food %q", calls[3], want)
	}
	bot, player := indexOf(calls, "label Bot 1"), indexOf(calls, "label alice")
	if bot < 0 || player < 0 || bot > player {
		t.Fatalf("bot label at %d, player label at %d; player must be drawn last", bot, player)
	}
	if calls[len(calls)-1] != "reset" {
		t.Fatalf("last call=%q want reset", calls[len(calls)-1])
	}

	// 每条蛇：20 节 + 2 眼白 + 2 瞳孔
	circles := 0
	for _, c := range calls {
		if strings.HasPrefix(c, "circle ") {
			circles++
		}
	}
	if want := 1 + 2*(int(InitialLength)+4); circles != want {
		t.Fatalf("circles=%d want %d", circles, want)
	}
}

func TestWorld_DrawWithoutLivePlayerSkipsCamera(t *testing.T) {
	cfg := quietConfig()
	cfg.BotTarget = 2
	scr := &recordScreen{}
	w := newTestWorld(t, cfg, Ports{Screen: scr})
	w.Start("alice")
	w.KillSnake(w.Player())

	w.Draw()

	for _, c := range scr.calls {
		if strings.HasPrefix(c, "camera") || c == "reset" || c == "label alice" {
			t.Fatalf("unexpected call %q after player death", c)
		}
	}
	if indexOf(scr.calls, "label Bot 1") < 0 {
		t.Fatalf("bots should still be drawn")
	}
}

func TestWorld_LeaderboardTopFiveAlive(t *testing.T) {
	cfg := quietConfig()
	cfg.BotTarget = 7
	w := newTestWorld(t, cfg, Ports{})
	w.Start("alice")

	if len(w.Leaderboard()) != 0 {
		t.Fatalf("leaderboard should be empty before first Draw")
	}

	for i, b := range w.Bots() {
		b.Grow(float64(i + 1))
	}
	w.KillSnake(w.Bots()[6].Snake)
	w.Draw()

	lb := w.Leaderboard()
	if len(lb) != LeaderboardSize {
		t.Fatalf("leaderboard len=%d", len(lb))
	}
	wantNames := []string{"Bot 6", "Bot 5", "Bot 4", "Bot 3", "Bot 2"}
	for i, r := range lb {
		if r.Name != wantNames[i] || r.Player {
			t.Fatalf("rank %d=%+v want %s", i, r, wantNames[i])
		}
		if i > 0 && lb[i-1].Score < r.Score {
			t.Fatalf("leaderboard not descending: %+v", lb)
		}
	}

	w.Player().Grow(10)
	w.Draw()
	if top := w.Leaderboard()[0]; top.Name != "alice" || !top.Player || top.Score != 100 {
		t.Fatalf("top=%+v want alice", top)
	}
}

func TestWorld_ReconfigureKeepsSize(t *testing.T) {
	w := newTestWorld(t, quietConfig(), Ports{})
	w.Start("alice")

	cfg := w.Config()
	cfg.Width = 1000
	if err := w.Reconfigure(cfg); err == nil {
		t.Fatalf("resize should be rejected")
	}

	cfg = w.Config()
	cfg.ScaleMovement = true
	cfg.BotTarget = 3
	if err := w.Reconfigure(cfg); err != nil {
		t.Fatalf("Reconfigure: %v", err)
	}
	if !w.Player().scaled || w.Config().BotTarget != 3 {
		t.Fatalf("reconfigure not applied")
	}

	cfg.CorpseStride = 0
	if err := w.Reconfigure(cfg); err == nil {
		t.Fatalf("invalid stride should be rejected")
	}
}

func TestStepSince_Clamps(t *testing.T) {
	base := time.Unix(100, 0)
	if dt := StepSince(base, base.Add(10*time.Millisecond)); math.Abs(dt-0.01) > 1e-9 {
		t.Fatalf("dt=%v", dt)
	}
	if dt := StepSince(base, base.Add(2*time.Second)); dt != MaxStep {
		t.Fatalf("dt=%v want clamp %v", dt, MaxStep)
	}
	if dt := StepSince(base, base.Add(-time.Second)); dt != 0 {
		t.Fatalf("negative dt=%v", dt)
	}
}
