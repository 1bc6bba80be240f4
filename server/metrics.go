package server

import (
	"sync/atomic"
)

// SessionMetrics 记录会话运行期的关键指标（用于监控与调试）
type SessionMetrics struct {
	TickCount         int64 // 统计的 Tick 次数
	InputsAccepted    int64 // 被接受的输入数
	RateLimited       int64 // 因同帧限流被拒绝的输入数
	OldSeqIgnored     int64 // 因旧序列被忽略的输入数
	ChanFullDiscarded int64 // 因通道满被丢弃的输入数
	FoodEaten         int64 // 玩家吃掉的食物数
	SnakesDied        int64
	BotsSpawned       int64
	GamesPlayed       int64
	FramesDropped     int64 // 编码失败的帧
	TotalTickNs       int64 // Tick 累计耗时（纳秒）
}

func (m *SessionMetrics) IncAccepted() { atomic.AddInt64(&m.InputsAccepted, 1) }
func (m *SessionMetrics) IncRateLimited() { atomic.AddInt64(&m.RateLimited, 1) }
func (m *SessionMetrics) IncOldSeqIgnored() { atomic.AddInt64(&m.OldSeqIgnored, 1) }
func (m *SessionMetrics) IncChanFullDiscarded() { atomic.AddInt64(&m.ChanFullDiscarded, 1) }
func (m *SessionMetrics) IncFoodEaten() { atomic.AddInt64(&m.FoodEaten, 1) }
func (m *SessionMetrics) IncSnakesDied() { atomic.AddInt64(&m.SnakesDied, 1) }
func (m *SessionMetrics) IncBotsSpawned() { atomic.AddInt64(&m.BotsSpawned, 1) }
func (m *SessionMetrics) IncGamesPlayed() { atomic.AddInt64(&m.GamesPlayed, 1) }
func (m *SessionMetrics) IncFramesDropped() { atomic.AddInt64(&m.FramesDropped, 1) }
func (m *SessionMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *SessionMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":          tick,
		"inputs_accepted":     atomic.LoadInt64(&m.InputsAccepted),
		"rate_limited":        atomic.LoadInt64(&m.RateLimited),
		"old_seq_ignored":     atomic.LoadInt64(&m.OldSeqIgnored),
		"chan_full_discarded": atomic.LoadInt64(&m.ChanFullDiscarded),
		"food_eaten":          atomic.LoadInt64(&m.FoodEaten),
		"snakes_died":         atomic.LoadInt64(&m.SnakesDied),
		"bots_spawned":        atomic.LoadInt64(&m.BotsSpawned),
		"games_played":        atomic.LoadInt64(&m.GamesPlayed),
		"frames_dropped":      atomic.LoadInt64(&m.FramesDropped),
		"avg_tick_ms":         avgMs,
	}
}
