package sim

import (
	"testing"
)

func TestBot_WanderWithoutFood(t *testing.T) {
	cfg := quietConfig()
	cfg.BotTarget = 1
	w := newTestWorld(t, cfg, Ports{})
	w.Reset()

	a := w.Bots()[0]
	bot := a.Control.(*Bot)
	for i := 0; i < 50; i++ {
		bot.Decide(a.Snake, w.Foods())
		d := Distance(a.X, a.Y, bot.TargetX, bot.TargetY)
		if d < BotWanderMin-1e-9 || d > BotWanderMax+1e-9 {
			t.Fatalf("wander distance=%v want in [%v,%v]", d, BotWanderMin, BotWanderMax)
		}
	}
}

func TestBot_SeeksNearestFoodInRange(t *testing.T) {
	w := newTestWorld(t, quietConfig(), Ports{})
	s := NewSnake(1000, 1000, "#FF0055", "Bot 1", KindBot)
	bot := NewBot(s.X, s.Y, w.rng)

	foods := []*Food{
		{X: 1300, Y: 1000, Radius: 4, Value: 1},
		{X: 1000, Y: 1120, Radius: 4, Value: 1},
		{X: 1450, Y: 1000, Radius: 4, Value: 1},
	}
	bot.Decide(s, foods)
	if bot.TargetX != 1000 || bot.TargetY != 1120 {
		t.Fatalf("target=(%v,%v) want nearest food (1000,1120)", bot.TargetX, bot.TargetY)
	}
}

func TestBot_IgnoresFoodOutOfRange(t *testing.T) {
	w := newTestWorld(t, quietConfig(), Ports{})
	s := NewSnake(1000, 1000, "#FF0055", "Bot 1", KindBot)
	bot := NewBot(s.X, s.Y, w.rng)

	bot.Decide(s, []*Food{{X: 1000 + BotFoodSeekRange, Y: 1000, Radius: 4, Value: 1}})
	if bot.TargetX == 1000+BotFoodSeekRange && bot.TargetY == 1000 {
		t.Fatalf("bot chased food at exactly the seek range")
	}
	if d := Distance(s.X, s.Y, bot.TargetX, bot.TargetY); d < BotWanderMin-1e-9 || d > BotWanderMax+1e-9 {
		t.Fatalf("expected a wander target, distance=%v", d)
	}
}

func TestBot_DecisionCadence(t *testing.T) {
	w := newTestWorld(t, quietConfig(), Ports{})
	s := NewSnake(1500, 1500, "#FF0055", "Bot 1", KindBot)
	bot := NewBot(s.X, s.Y, w.rng)

	// 首次 Steer 立即决策
	bot.Steer(s, w, 0.01)
	if bot.timer < BotDecisionMin-0.01 || bot.timer > BotDecisionMax {
		t.Fatalf("timer=%v want re-armed in [%v,%v]", bot.timer, BotDecisionMin, BotDecisionMax)
	}
	tx, ty := bot.TargetX, bot.TargetY

	for i := 0; i < 10; i++ {
		bot.Steer(s, w, 0.01)
		if bot.TargetX != tx || bot.TargetY != ty {
			t.Fatalf("step %d: target changed before timer elapsed", i)
		}
	}

	bot.timer = 0.005
	bot.Steer(s, w, 0.01)
	if bot.timer <= 0 {
		t.Fatalf("timer not re-armed after decision: %v", bot.timer)
	}
}

func TestBot_EdgeAvoidanceOverridesTarget(t *testing.T) {
	w := newTestWorld(t, quietConfig(), Ports{})
	width, height := w.Config().Width, w.Config().Height

	cases := []struct {
		name   string
		x, y   float64
		wantX  float64
		wantY  float64
		checkX bool
		checkY bool
	}{
		{name: "left", x: 50, y: 1500, wantX: 250, checkX: true},
		{name: "right", x: width - 40, y: 1500, wantX: width - 240, checkX: true},
		{name: "top", x: 1500, y: 10, wantY: 210, checkY: true},
		{name: "bottom-right", x: width - 1, y: height - 1, wantX: width - 201, wantY: height - 201, checkX: true, checkY: true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewSnake(c.x, c.y, "#FF0055", "Bot 1", KindBot)
			bot := NewBot(c.x, c.y, w.rng)
			st := bot.Steer(s, w, 0.01)
			if c.checkX && st.X != c.wantX {
				t.Fatalf("target x=%v want %v", st.X, c.wantX)
			}
			if c.checkY && st.Y != c.wantY {
				t.Fatalf("target y=%v want %v", st.Y, c.wantY)
			}
			if st.Dash {
				t.Fatalf("bots never dash")
			}
		})
	}
}
