package sim

import (
	"math"
	"math/rand"
)

// Bot 机器人决策：定时重新选择目标（最近食物或随机游走），每 Tick 做边界规避
type Bot struct {
	TargetX float64
	TargetY float64

	timer float64 // 距下一次决策的剩余秒数
	rng   *rand.Rand
}

func NewBot(x, y float64, rng *rand.Rand) *Bot {
	return &Bot{TargetX: x, TargetY: y, rng: rng}
}

func (b *Bot) Steer(s *Snake, w *World, dt float64) Steering {
	b.timer -= dt
	if b.timer <= 0 {
		b.Decide(s, w.foods)
		b.timer = randRange(b.rng, BotDecisionMin, BotDecisionMax)
	}
	b.avoidEdges(s, w.cfg.Width, w.cfg.Height)
	return Steering{X: b.TargetX, Y: b.TargetY}
}

// Decide 500 以内有食物则追最近的食物，否则随机游走
func (b *Bot) Decide(s *Snake, foods []*Food) {
	nearest := math.Inf(1)
	var target *Food
	for _, f := range foods {
		if d := Distance(s.X, s.Y, f.X, f.Y); d < nearest {
			nearest = d
			target = f
		}
	}

	if target != nil && nearest < BotFoodSeekRange {
		b.TargetX = target.X
		b.TargetY = target.Y
		return
	}

	angle := randRange(b.rng, 0, math.Pi*2)
	dist := randRange(b.rng, BotWanderMin, BotWanderMax)
	b.TargetX = s.X + math.Cos(angle)*dist
	b.TargetY = s.Y + math.Sin(angle)*dist
}

// avoidEdges 靠近边界时把目标强制推向内侧，覆盖之前选定的目标
func (b *Bot) avoidEdges(s *Snake, width, height float64) {
	if s.X < BotEdgeMargin {
		b.TargetX = s.X + BotEdgePush
	}
	if s.X > width-BotEdgeMargin {
		b.TargetX = s.X - BotEdgePush
	}
	if s.Y < BotEdgeMargin {
		b.TargetY = s.Y + BotEdgePush
	}
	if s.Y > height-BotEdgeMargin {
		b.TargetY = s.Y - BotEdgePush
	}
}
