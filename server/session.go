package server

import (
	"context"
	"fmt"
	"sync"

	"snakearena/sim"
)

// DefaultMaxInputsPerTick 每 Tick 接受的指针输入上限
const DefaultMaxInputsPerTick = 8

// Session 一个连接对应一个世界：权威状态维护在内存，单线程 Tick 推进
type Session struct {
	ID   string
	Name string // 最近一次开局使用的名字

	world   *sim.World
	pointer *pointerInput
	frame   *FrameRecorder
	conn    *ClientConn
	codec   Codec
	metrics *SessionMetrics

	inputChan chan Input
	tuneChan  chan tuneRequest
	leaveChan chan struct{}
	done      chan struct{}

	maxInputsPerTick int
	inputsThisTick   int
	lastSeq          int64

	tickerStarted bool
	closed        bool
	onClose       func(*Session)

	// 以下字段供 HTTP 协程读取
	mu          sync.RWMutex
	leaderboard []sim.Rank
	settings    Settings
}

// Settings 可热更新的会话参数
type Settings struct {
	sim.Config
	MaxInputsPerTick int `json:"maxInputsPerTick"`
}

// SettingsPatch 以指针字段表示“只更新给出的字段”
type SettingsPatch struct {
	FoodTarget       *int     `json:"foodTarget,omitempty"`
	FoodSpawnChance  *float64 `json:"foodSpawnChance,omitempty"`
	BotTarget        *int     `json:"botTarget,omitempty"`
	BotRespawnDelay  *float64 `json:"botRespawnDelay,omitempty"`
	BodySampleStride *int     `json:"bodySampleStride,omitempty"`
	CorpseStride     *int     `json:"corpseStride,omitempty"`
	ScaleMovement    *bool    `json:"scaleMovement,omitempty"`
	MaxInputsPerTick *int     `json:"maxInputsPerTick,omitempty"`
}

type tuneRequest struct {
	patch SettingsPatch
	reply chan error
}

// NewSession 创建会话并初始化世界；name 非空时直接开局，否则只有机器人
func NewSession(id, name string, cfg sim.Config, scores sim.ScoreStore, codec Codec, conn *ClientConn) (*Session, error) {
	s := &Session{
		ID:               id,
		Name:             name,
		pointer:          newPointerInput(),
		frame:            NewFrameRecorder(),
		conn:             conn,
		codec:            codec,
		metrics:          &SessionMetrics{},
		inputChan:        make(chan Input, 256), // 足够缓冲，避免网络读阻塞影响 Tick
		tuneChan:         make(chan tuneRequest, 4),
		leaveChan:        make(chan struct{}, 1),
		done:             make(chan struct{}),
		maxInputsPerTick: DefaultMaxInputsPerTick,
	}

	ports := sim.Ports{
		Input:  s.pointer,
		Screen: s.frame,
		Host:   sim.HostFunc(s.onGameOver),
		Scores: scores,
	}
	w, err := sim.NewWorld(cfg, ports, sim.WithLogger(Logger().Named("sim")))
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	s.world = w

	ev := w.Events()
	ev.Subscribe(sim.EventFoodEaten, func(e sim.Event) {
		if e.Player {
			s.metrics.IncFoodEaten()
		}
	})
	ev.Subscribe(sim.EventSnakeDied, func(sim.Event) { s.metrics.IncSnakesDied() })
	ev.Subscribe(sim.EventBotSpawned, func(sim.Event) { s.metrics.IncBotsSpawned() })

	if name != "" {
		w.Start(name)
	} else {
		w.Reset()
	}
	s.settings = Settings{Config: cfg, MaxInputsPerTick: s.maxInputsPerTick}
	return s, nil
}

// OnInput 入站输入（不立即生效），等下一次 Tick 处理
func (s *Session) OnInput(in Input) {
	select {
	case s.inputChan <- in:
	default:
		// 丢弃：为了实时性，避免背压影响世界推进
		s.metrics.IncChanFullDiscarded()
	}
}

// RequestLeave 请求在 Tick 线程中关闭会话，可重复调用
func (s *Session) RequestLeave() {
	select {
	case s.leaveChan <- struct{}{}:
	default:
	}
}

// Tune 在 Tick 线程中应用参数补丁，并等待结果
func (s *Session) Tune(ctx context.Context, patch SettingsPatch) error {
	req := tuneRequest{patch: patch, reply: make(chan error, 1)}
	select {
	case s.tuneChan <- req:
	case <-s.done:
		return fmt.Errorf("session %s closed", s.ID)
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.reply:
		return err
	case <-s.done:
		return fmt.Errorf("session %s closed", s.ID)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// BeginTick 重置帧内状态
func (s *Session) BeginTick() {
	s.inputsThisTick = 0
}

// ProcessInputs 处理当前帧的所有输入与管理请求（非阻塞 drain）
func (s *Session) ProcessInputs() {
	for {
		select {
		case <-s.leaveChan:
			s.close()
			return
		case req := <-s.tuneChan:
			req.reply <- s.applyPatch(req.patch)
		case in := <-s.inputChan:
			s.applyInput(in)
		default:
			return
		}
	}
}

func (s *Session) applyInput(in Input) {
	if in.Seq > 0 {
		if in.Seq <= s.lastSeq {
			s.metrics.IncOldSeqIgnored()
			return
		}
		s.lastSeq = in.Seq
	}

	switch in.Kind {
	case InputPointer:
		// 同一 Tick 内只有最后一个指针位置有意义，超出上限直接丢弃
		if s.inputsThisTick >= s.maxInputsPerTick {
			s.metrics.IncRateLimited()
			return
		}
		s.inputsThisTick++
		s.pointer.apply(in)
	case InputDash:
		s.pointer.apply(in)
	case InputStart:
		if in.Name != "" {
			s.Name = in.Name
		}
		s.world.Start(s.Name)
		s.Name = s.world.Player().Name
		Log.Infof("session %s: game started by %q", s.ID, s.Name)
	}
	s.metrics.IncAccepted()
}

func (s *Session) applyPatch(p SettingsPatch) error {
	cfg := s.world.Config()
	if p.FoodTarget != nil {
		cfg.FoodTarget = *p.FoodTarget
	}
	if p.FoodSpawnChance != nil {
		cfg.FoodSpawnChance = *p.FoodSpawnChance
	}
	if p.BotTarget != nil {
		cfg.BotTarget = *p.BotTarget
	}
	if p.BotRespawnDelay != nil {
		cfg.BotRespawnDelay = *p.BotRespawnDelay
	}
	if p.BodySampleStride != nil {
		cfg.BodySampleStride = *p.BodySampleStride
	}
	if p.CorpseStride != nil {
		cfg.CorpseStride = *p.CorpseStride
	}
	if p.ScaleMovement != nil {
		cfg.ScaleMovement = *p.ScaleMovement
	}
	maxInputs := s.maxInputsPerTick
	if p.MaxInputsPerTick != nil {
		if *p.MaxInputsPerTick <= 0 {
			return fmt.Errorf("maxInputsPerTick must be positive, got %d", *p.MaxInputsPerTick)
		}
		maxInputs = *p.MaxInputsPerTick
	}
	if err := s.world.Reconfigure(cfg); err != nil {
		return err
	}
	s.maxInputsPerTick = maxInputs

	// 调高机器人目标时立即补齐，调低则等自然死亡
	for len(s.world.Bots()) < cfg.BotTarget {
		s.world.SpawnBot()
	}

	s.mu.Lock()
	s.settings = Settings{Config: cfg, MaxInputsPerTick: maxInputs}
	s.mu.Unlock()
	Log.Infof("session %s: settings updated food=%d bots=%d stride=%d maxInputsPerTick=%d",
		s.ID, cfg.FoodTarget, cfg.BotTarget, cfg.BodySampleStride, maxInputs)
	return nil
}

// UpdateWorld 推进世界一帧
func (s *Session) UpdateWorld(dt float64) {
	s.world.Update(dt)
}

// Broadcast 绘制当前帧并下发给客户端
func (s *Session) Broadcast() {
	s.frame.Reset()
	s.world.Draw()
	lb := s.world.Leaderboard()

	s.mu.Lock()
	s.leaderboard = lb
	s.mu.Unlock()

	s.send(FrameMessage{
		Type:        "frame",
		Tick:        s.world.Ticks(),
		Score:       s.world.PlayerScore(),
		Ops:         s.frame.Ops(),
		Leaderboard: lb,
	})
}

func (s *Session) onGameOver(r sim.Result) {
	s.metrics.IncGamesPlayed()
	Log.Infof("session %s: game over name=%q score=%.0f best=%.0f ticks=%d", s.ID, r.Name, r.Score, r.Best, r.Ticks)
	s.send(GameOverMessage{Type: "gameover", Score: r.Score, Best: r.Best})
}

// send 编码并压入发送队列；编码失败只记日志
func (s *Session) send(v any) {
	b, err := s.codec.Encode(v)
	if err != nil {
		s.metrics.IncFramesDropped()
		Log.Warnf("session %s: encode %T: %v", s.ID, v, err)
		return
	}
	if s.conn != nil {
		s.conn.Enqueue(b)
	}
}

func (s *Session) close() {
	if s.closed {
		return
	}
	s.closed = true
	s.world.Close()
	if s.conn != nil {
		s.conn.Close()
	}
	if s.onClose != nil {
		s.onClose(s)
	}
	Log.Infof("session %s closed after %d ticks", s.ID, s.world.Ticks())
}

// Leaderboard 最近一帧的排行榜副本
func (s *Session) Leaderboard() []sim.Rank {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]sim.Rank, len(s.leaderboard))
	copy(out, s.leaderboard)
	return out
}

func (s *Session) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *Session) Metrics() *SessionMetrics { return s.metrics }
