package arena

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"snakearena/sim"
	"snakearena/store"
)

// ResultSink 接收每条机器人的死亡结果，通常是 *store.Archive
type ResultSink interface {
	Record(row store.ResultRow) error
}

// DeathUpdate 推给看板的一条死亡记录
type DeathUpdate struct {
	Name   string
	Score  float64
	Length float64
	Tick   int64
}

// Stats 运行计数快照
type Stats struct {
	Ticks     int64
	Deaths    int64
	FoodEaten int64
	Bots      int64
	Recorded  int64
}

// Runner 无玩家的机器人竞技场，在单独协程里推进世界
type Runner struct {
	world   *sim.World
	sink    ResultSink
	session string
	log     *zap.Logger

	ticks    atomic.Int64
	deaths   atomic.Int64
	food     atomic.Int64
	bots     atomic.Int64
	recorded atomic.Int64

	updates chan DeathUpdate

	mu    sync.Mutex
	board []sim.Rank
}

func NewRunner(cfg sim.Config, sink ResultSink, session string, log *zap.Logger) (*Runner, error) {
	w, err := sim.NewWorld(cfg, sim.Ports{}, sim.WithLogger(log))
	if err != nil {
		return nil, err
	}
	r := &Runner{
		world:   w,
		sink:    sink,
		session: session,
		log:     log,
		updates: make(chan DeathUpdate, 64),
	}

	ev := w.Events()
	ev.Subscribe(sim.EventFoodEaten, func(sim.Event) { r.food.Add(1) })
	ev.Subscribe(sim.EventSnakeDied, r.onDeath)

	w.Reset()
	r.bots.Store(int64(len(w.Bots())))
	return r, nil
}

func (r *Runner) onDeath(e sim.Event) {
	if e.Player {
		return
	}
	r.deaths.Add(1)
	tick := r.world.Ticks()
	if r.sink != nil {
		err := r.sink.Record(store.ResultRow{
			Session: r.session,
			Name:    e.Name,
			Score:   e.Value,
			Length:  e.Length,
			Ticks:   tick,
		})
		if err != nil {
			r.log.Warn("record bot result failed", zap.Error(err))
		} else {
			r.recorded.Add(1)
		}
	}
	// 看板不消费时丢弃，不阻塞模拟
	select {
	case r.updates <- DeathUpdate{Name: e.Name, Score: e.Value, Length: e.Length, Tick: tick}:
	default:
	}
}

// Step 推进一帧并刷新排行榜
func (r *Runner) Step(dt float64) {
	r.world.Update(dt)
	r.world.Draw()
	r.ticks.Store(r.world.Ticks())
	r.bots.Store(int64(len(r.world.Bots())))

	lb := r.world.Leaderboard()
	r.mu.Lock()
	r.board = lb
	r.mu.Unlock()
}

// Run 以 speed 倍速推进，直到 ctx 取消；speed <= 0 表示不限速
func (r *Runner) Run(ctx context.Context, speed float64) {
	const dt = 1.0 / 60
	if speed <= 0 {
		for ctx.Err() == nil {
			r.Step(dt)
		}
		return
	}
	ticker := time.NewTicker(time.Duration(float64(time.Second) * dt / speed))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Step(dt)
		}
	}
}

func (r *Runner) Updates() <-chan DeathUpdate { return r.updates }

func (r *Runner) Stats() Stats {
	return Stats{
		Ticks:     r.ticks.Load(),
		Deaths:    r.deaths.Load(),
		FoodEaten: r.food.Load(),
		Bots:      r.bots.Load(),
		Recorded:  r.recorded.Load(),
	}
}

func (r *Runner) Leaderboard() []sim.Rank {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sim.Rank, len(r.board))
	copy(out, r.board)
	return out
}
