package sim

import (
	"fmt"
	"time"
)

// 蛇的固定参数
const (
	GapStride     = 5    // 相邻身体节在历史中的间隔
	BaseSpeed     = 3.0  // 每次 Update 前进距离
	DashSpeed     = 6.0
	TurnRate      = 0.1  // 每次 Update 修正角度误差的比例
	InitialLength = 20.0
	MinRadius     = 10.0
	MaxRadius     = 25.0

	// ReferenceFPS 仅在 ScaleMovement 打开时使用
	ReferenceFPS = 60.0
)

// 机器人决策参数
const (
	BotDecisionMin   = 0.5
	BotDecisionMax   = 2.0
	BotFoodSeekRange = 500.0
	BotWanderMin     = 100.0
	BotWanderMax     = 300.0
	BotEdgeMargin    = 100.0
	BotEdgePush      = 200.0
)

// 食物参数
const (
	FoodSpecialChance = 0.05
	CorpseFoodValue   = 2
	CorpseFoodRadius  = 8.0
)

// LeaderboardSize 排行榜显示条数
const LeaderboardSize = 5

// MaxStep 调度边界上的 dt 上限（秒），避免切后台后的大步长
const MaxStep = 0.033

// Config 世界的可调参数
type Config struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	FoodTarget      int     `json:"foodTarget"`
	FoodSpawnChance float64 `json:"foodSpawnChance"` // 每 Tick 补充一个食物的概率

	BotTarget       int     `json:"botTarget"`
	BotRespawnDelay float64 `json:"botRespawnDelay"` // 秒（模拟时间）
	BotSpawnMargin  float64 `json:"botSpawnMargin"`

	BodySampleStride int `json:"bodySampleStride"` // 头-身碰撞的历史采样步长
	CorpseStride     int `json:"corpseStride"`     // 尸体转食物的历史采样步长

	// ScaleMovement 打开后移动与转向按 dt 缩放（默认保持逐帧步进）
	ScaleMovement bool `json:"scaleMovement"`

	Seed int64 `json:"seed"` // 0 表示使用当前时间
}

// DefaultConfig 返回默认世界配置
func DefaultConfig() Config {
	return Config{
		Width:            3000,
		Height:           3000,
		FoodTarget:       300,
		FoodSpawnChance:  0.1,
		BotTarget:        10,
		BotRespawnDelay:  3,
		BotSpawnMargin:   100,
		BodySampleStride: 3,
		CorpseStride:     5,
	}
}

// Validate 检查配置是否可用
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("world size must be positive, got %vx%v", c.Width, c.Height)
	}
	if c.BodySampleStride <= 0 {
		return fmt.Errorf("body sample stride must be positive, got %d", c.BodySampleStride)
	}
	if c.CorpseStride <= 0 {
		return fmt.Errorf("corpse stride must be positive, got %d", c.CorpseStride)
	}
	if c.FoodTarget < 0 || c.BotTarget < 0 {
		return fmt.Errorf("targets must not be negative (food=%d bots=%d)", c.FoodTarget, c.BotTarget)
	}
	if c.FoodSpawnChance < 0 || c.FoodSpawnChance > 1 {
		return fmt.Errorf("food spawn chance must be in [0,1], got %v", c.FoodSpawnChance)
	}
	if c.BotSpawnMargin*2 >= c.Width || c.BotSpawnMargin*2 >= c.Height {
		return fmt.Errorf("bot spawn margin %v does not fit a %vx%v world", c.BotSpawnMargin, c.Width, c.Height)
	}
	return nil
}

// StepSince 计算两帧之间的 dt（秒），并截断到 MaxStep
func StepSince(last, now time.Time) float64 {
	dt := now.Sub(last).Seconds()
	if dt < 0 {
		return 0
	}
	if dt > MaxStep {
		return MaxStep
	}
	return dt
}
