package sim

import "math"

// Steering 一次 Tick 的转向决策
type Steering struct {
	X, Y float64 // 目标点（世界坐标）
	Dash bool
}

// Controller 为蛇计算转向：玩家由外部输入驱动，机器人由决策策略驱动
type Controller interface {
	Steer(s *Snake, w *World, dt float64) Steering
}

// Agent 蛇实体 + 控制器
type Agent struct {
	*Snake
	Control Controller
}

// PlayerControl 以屏幕中心为原点的指针偏移作为转向目标
type PlayerControl struct {
	Input Input
}

func (p PlayerControl) Steer(s *Snake, _ *World, _ float64) Steering {
	if p.Input == nil {
		// 没有输入源时保持当前朝向直行
		return Steering{X: s.X + math.Cos(s.Angle), Y: s.Y + math.Sin(s.Angle)}
	}
	ps := p.Input.Pointer()
	return Steering{
		X:    s.X + ps.X - ps.ScreenW/2,
		Y:    s.Y + ps.Y - ps.ScreenH/2,
		Dash: ps.Dash,
	}
}
