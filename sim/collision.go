package sim

import "go.uber.org/zap"

// resolveCollisions 食物消耗与头-身碰撞检测，O(N² × 历史/步长)
func (w *World) resolveCollisions() {
	alive := make([]*Snake, 0, len(w.bots)+1)
	for _, s := range w.snakes() {
		if s.Alive() {
			alive = append(alive, s)
		}
	}

	// 同一 Tick 多条蛇争抢同一食物时，列表中靠前的蛇获胜
	for _, s := range alive {
		kept := w.foods[:0]
		for _, f := range w.foods {
			if Distance(s.X, s.Y, f.X, f.Y) < s.Radius+f.Radius {
				s.Grow(float64(f.Value))
				w.events.Emit(Event{
					Type:   EventFoodEaten,
					X:      f.X,
					Y:      f.Y,
					Name:   s.Name,
					Player: !s.IsBot(),
					Value:  float64(f.Value),
					Length: s.Length,
				})
				continue
			}
			kept = append(kept, f)
		}
		clear(w.foods[len(kept):])
		w.foods = kept
	}

	// 本轮被击杀的蛇仍保留历史，迎头相撞时双方都会死亡
	for _, s1 := range alive {
		if !s1.Alive() {
			continue
		}
		for _, s2 := range alive {
			if s1 == s2 {
				continue
			}
			if w.headHitsBody(s1, s2) {
				w.log.Debug("head hit body", zap.String("victim", s1.Name), zap.String("by", s2.Name))
				w.KillSnake(s1)
				break
			}
		}
	}
}

// headHitsBody 按 BodySampleStride 采样 s2 的历史，检查 s1 的头是否撞上
func (w *World) headHitsBody(s1, s2 *Snake) bool {
	limit := s1.Radius + s2.Radius
	h := s2.history
	for i := 0; i < len(h); i += w.cfg.BodySampleStride {
		if Distance(s1.X, s1.Y, h[i].X, h[i].Y) < limit {
			return true
		}
	}
	return false
}

// KillSnake 标记死亡并把身体转成食物。玩家死亡结束游戏，机器人移除后延迟重生。
func (w *World) KillSnake(s *Snake) {
	if s == nil || !s.Alive() {
		return
	}
	s.dead = true

	for i := 0; i < len(s.history); i += w.cfg.CorpseStride {
		p := s.history[i]
		w.foods = append(w.foods, NewCorpseFood(p.X, p.Y, s.Color))
	}
	w.events.Emit(Event{
		Type:   EventSnakeDied,
		X:      s.X,
		Y:      s.Y,
		Name:   s.Name,
		Player: !s.IsBot(),
		Value:  s.Score,
		Length: s.Length,
	})

	if w.player != nil && s == w.player.Snake {
		w.gameOver(s)
		return
	}

	w.removeBot(s)
	epoch := w.epoch
	w.tasks.after(w.cfg.BotRespawnDelay, func() {
		if w.closed || w.epoch != epoch || len(w.bots) >= w.cfg.BotTarget {
			return
		}
		a := w.SpawnBot()
		w.log.Debug("bot respawned", zap.String("name", a.Name))
	})
}

func (w *World) removeBot(s *Snake) {
	for i, b := range w.bots {
		if b.Snake == s {
			w.bots = append(w.bots[:i], w.bots[i+1:]...)
			return
		}
	}
}

func (w *World) gameOver(s *Snake) {
	w.over = true
	r := Result{
		Name:   s.Name,
		Score:  s.Score,
		Length: s.Length,
		Ticks:  w.ticks,
		Best:   s.Score,
	}

	if store := w.ports.Scores; store != nil {
		if err := store.Record(r); err != nil {
			w.log.Warn("record result failed", zap.Error(err))
		}
		best, err := store.Best()
		if err != nil {
			w.log.Warn("read best score failed", zap.Error(err))
		} else if best > r.Best {
			r.Best = best
		}
	}

	w.log.Info("game over", zap.String("player", r.Name), zap.Float64("score", r.Score), zap.Int64("ticks", r.Ticks))
	if w.ports.Host != nil {
		w.ports.Host.GameOver(r)
	}
	w.events.Emit(Event{Type: EventGameOver, X: s.X, Y: s.Y, Name: s.Name, Player: true, Value: r.Score, Length: r.Length})
}
