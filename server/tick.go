package server

import (
	"time"

	"snakearena/sim"
)

const (
	// TicksPerSecond 世界推进与帧下发频率；移动按 Tick 步进，需接近 60
	TicksPerSecond = 60
)

var tickInterval = time.Second / TicksPerSecond

// StartTicker 启动会话的 Tick 循环（单线程推进世界）
func (s *Session) StartTicker() {
	if s.tickerStarted {
		return
	}
	s.tickerStarted = true
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		last := time.Now()
		for now := range ticker.C {
			// 核心循环：处理输入 → 更新世界 → 下发帧
			start := time.Now()
			s.BeginTick()
			s.ProcessInputs()
			if s.closed {
				return
			}
			s.UpdateWorld(sim.StepSince(last, now))
			s.Broadcast()
			last = now
			s.metrics.AddTick(time.Since(start).Nanoseconds())
		}
	}()
}

// Done 在 Tick 循环退出后关闭
func (s *Session) Done() <-chan struct{} { return s.done }
