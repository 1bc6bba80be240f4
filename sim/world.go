package sim

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// World 有界矩形世界：玩家、机器人、食物与延迟任务，单线程推进
type World struct {
	cfg   Config
	ports Ports
	rng   *rand.Rand
	log   *zap.Logger

	player *Agent
	bots   []*Agent
	foods  []*Food

	tasks   schedule
	events  *EventBus
	ranking []Rank

	ticks  int64
	botSeq int
	epoch  int // 每次 Start/Reset 自增，用于作废旧的延迟任务
	over   bool
	closed bool
}

type Option func(*World)

// WithLogger 设置日志；默认不输出
func WithLogger(l *zap.Logger) Option {
	return func(w *World) { w.log = l }
}

// WithRand 注入随机源，测试中用于复现
func WithRand(r *rand.Rand) Option {
	return func(w *World) { w.rng = r }
}

// NewWorld 创建空世界，调用 Start 或 Reset 后才有实体
func NewWorld(cfg Config, ports Ports, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid world config: %w", err)
	}
	w := &World{
		cfg:    cfg,
		ports:  ports,
		log:    zap.NewNop(),
		events: NewEventBus(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		w.rng = rand.New(rand.NewSource(seed))
	}
	return w, nil
}

// Start 完全重新初始化并生成名为 name 的玩家
func (w *World) Start(name string) {
	if name == "" {
		name = "Player"
	}
	w.Reset()
	s := NewSnake(w.cfg.Width/2, w.cfg.Height/2, RandomColor(w.rng), name, KindPlayer)
	s.scaled = w.cfg.ScaleMovement
	w.player = &Agent{Snake: s, Control: PlayerControl{Input: w.ports.Input}}
	w.log.Info("game started", zap.String("player", name), zap.Int("bots", len(w.bots)), zap.Int("food", len(w.foods)))
}

// Reset 重新初始化世界但不生成玩家（纯机器人竞技场）
func (w *World) Reset() {
	w.tasks.cancel()
	w.epoch++
	w.player = nil
	w.bots = w.bots[:0]
	w.foods = w.foods[:0]
	w.ranking = nil
	w.ticks = 0
	w.botSeq = 0
	w.over = false
	w.closed = false

	for i := 0; i < w.cfg.FoodTarget; i++ {
		w.foods = append(w.foods, NewFood(w.rng, w.cfg.Width, w.cfg.Height))
	}
	for i := 0; i < w.cfg.BotTarget; i++ {
		w.SpawnBot()
	}
}

// Close 销毁世界：取消延迟任务，之后的 Update 与重生都不再生效
func (w *World) Close() {
	w.closed = true
	w.tasks.cancel()
}

// SpawnBot 在随机位置生成一个新机器人
func (w *World) SpawnBot() *Agent {
	w.botSeq++
	m := w.cfg.BotSpawnMargin
	x := randRange(w.rng, m, w.cfg.Width-m)
	y := randRange(w.rng, m, w.cfg.Height-m)
	s := NewSnake(x, y, RandomColor(w.rng), fmt.Sprintf("Bot %d", w.botSeq), KindBot)
	s.scaled = w.cfg.ScaleMovement
	a := &Agent{Snake: s, Control: NewBot(x, y, w.rng)}
	w.bots = append(w.bots, a)
	w.events.Emit(Event{Type: EventBotSpawned, X: x, Y: y, Name: s.Name})
	return a
}

// Update 推进一帧：玩家、机器人、碰撞、食物补充、延迟任务
func (w *World) Update(dt float64) {
	if w.closed {
		return
	}
	w.ticks++

	if p := w.player; p != nil && p.Alive() {
		w.move(p, dt)
		if !w.inBounds(p.X, p.Y) {
			w.log.Debug("player left the world", zap.Float64("x", p.X), zap.Float64("y", p.Y))
			w.KillSnake(p.Snake)
		}
	}

	for _, b := range w.bots {
		w.move(b, dt)
	}

	w.resolveCollisions()

	if len(w.foods) < w.cfg.FoodTarget && w.rng.Float64() < w.cfg.FoodSpawnChance {
		w.foods = append(w.foods, NewFood(w.rng, w.cfg.Width, w.cfg.Height))
	}

	w.tasks.advance(dt)
}

// move 统一的移动入口：先由控制器给出转向，再交给蛇执行
func (w *World) move(a *Agent, dt float64) {
	if !a.Alive() {
		return
	}
	st := a.Control.Steer(a.Snake, w, dt)
	a.Update(dt, st.X, st.Y, st.Dash)
}

func (w *World) inBounds(x, y float64) bool {
	return x >= 0 && x <= w.cfg.Width && y >= 0 && y <= w.cfg.Height
}

// Draw 绘制一帧并刷新排行榜；机器人先画，玩家在最上层
func (w *World) Draw() {
	defer func() { w.ranking = w.rank() }()

	scr := w.ports.Screen
	if scr == nil {
		return
	}
	scr.Clear()

	camera := w.player != nil && w.player.Alive()
	if camera {
		scr.Camera(w.player.X, w.player.Y)
	}

	scr.DrawGrid(w.cfg.Width, w.cfg.Height)
	for _, f := range w.foods {
		scr.DrawCircle(f.X, f.Y, f.Radius, f.Color, f.Glow)
	}
	for _, b := range w.bots {
		drawSnake(scr, b.Snake)
	}
	if w.player != nil {
		drawSnake(scr, w.player.Snake)
	}

	if camera {
		scr.ResetCamera()
	}
}

func drawSnake(scr Screen, s *Snake) {
	if !s.Alive() {
		return
	}
	for _, seg := range s.Segments() {
		scr.DrawCircle(seg.X, seg.Y, seg.Radius, seg.Color, seg.Head)
	}
	eyes := s.Eyes()
	for _, e := range eyes {
		scr.DrawCircle(e.X, e.Y, s.Radius*0.3, "white", false)
	}
	for _, e := range eyes {
		scr.DrawCircle(e.X, e.Y, s.Radius*0.1, "black", false)
	}
	l := s.LabelAnchor()
	scr.DrawLabel(l.X, l.Y, s.Name)
}

func (w *World) Config() Config { return w.cfg }

// Reconfigure 运行中调整参数；世界尺寸不可变
func (w *World) Reconfigure(cfg Config) error {
	if cfg.Width != w.cfg.Width || cfg.Height != w.cfg.Height {
		return fmt.Errorf("world size cannot change while running (%vx%v -> %vx%v)",
			w.cfg.Width, w.cfg.Height, cfg.Width, cfg.Height)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.ScaleMovement != w.cfg.ScaleMovement {
		for _, s := range w.snakes() {
			s.scaled = cfg.ScaleMovement
		}
	}
	w.cfg = cfg
	return nil
}

func (w *World) Events() *EventBus { return w.events }

// Player 当前玩家；未开始或纯机器人模式时为 nil
func (w *World) Player() *Snake {
	if w.player == nil {
		return nil
	}
	return w.player.Snake
}

func (w *World) PlayerScore() float64 {
	if w.player == nil {
		return 0
	}
	return w.player.Score
}

func (w *World) Bots() []*Agent { return w.bots }

func (w *World) Foods() []*Food { return w.foods }

// Over 玩家死亡后为 true，直到下一次 Start
func (w *World) Over() bool { return w.over }

func (w *World) Closed() bool { return w.closed }

func (w *World) Ticks() int64 { return w.ticks }

// Leaderboard 最近一次 Draw 计算出的排行榜副本
func (w *World) Leaderboard() []Rank {
	out := make([]Rank, len(w.ranking))
	copy(out, w.ranking)
	return out
}

// snakes 所有实体，玩家在前
func (w *World) snakes() []*Snake {
	out := make([]*Snake, 0, len(w.bots)+1)
	if w.player != nil {
		out = append(out, w.player.Snake)
	}
	for _, b := range w.bots {
		out = append(out, b.Snake)
	}
	return out
}
