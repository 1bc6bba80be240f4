package sim

import "math"

// Kind 蛇的控制方式
type Kind int

const (
	KindPlayer Kind = iota
	KindBot
)

func (k Kind) String() string {
	if k == KindBot {
		return "bot"
	}
	return "player"
}

// Segment 一个可绘制的身体节
type Segment struct {
	X      float64
	Y      float64
	Radius float64
	Color  string
	Head   bool
}

// Snake 蛇实体：头部运动学状态 + 头部位置历史（最新在前）
type Snake struct {
	Name  string
	Kind  Kind
	Color string

	X     float64
	Y     float64
	Angle float64 // 朝向，(-π, π]
	Speed float64

	Length float64
	Radius float64
	Score  float64

	history []Vec
	dead    bool

	// scaled 为 true 时移动与转向按 dt 缩放
	scaled bool
}

// NewSnake 在 (x, y) 生成一条初始长度的蛇，历史预先填满以免身体缩成一个点
func NewSnake(x, y float64, color, name string, kind Kind) *Snake {
	return newSnake(x, y, color, name, kind, InitialLength)
}

func newSnake(x, y float64, color, name string, kind Kind, length float64) *Snake {
	s := &Snake{
		Name:   name,
		Kind:   kind,
		Color:  color,
		X:      x,
		Y:      y,
		Speed:  BaseSpeed,
		Length: length,
		Radius: radiusFor(length),
	}
	n := s.historyCap()
	s.history = make([]Vec, n, n+1)
	for i := range s.history {
		s.history[i] = Vec{X: x, Y: y}
	}
	return s
}

// radiusFor 半径只由长度决定，限制在 [MinRadius, MaxRadius]
func radiusFor(length float64) float64 {
	r := MinRadius + math.Sqrt(length)*0.5
	if r > MaxRadius {
		r = MaxRadius
	}
	return r
}

func (s *Snake) historyCap() int {
	return int(math.Floor(s.Length * GapStride))
}

func (s *Snake) Alive() bool { return !s.dead }

func (s *Snake) IsBot() bool { return s.Kind == KindBot }

func (s *Snake) Head() Vec { return Vec{X: s.X, Y: s.Y} }

// History 返回头部位置历史（只读，最新在前）
func (s *Snake) History() []Vec { return s.history }

// Update 朝目标点转向并前进一步。死亡的蛇不做任何改变。
// 转向是每次调用固定比例，位移不乘 dt（帧率耦合），除非打开了 scaled。
func (s *Snake) Update(dt, targetX, targetY float64, dash bool) {
	if s.dead {
		return
	}

	desired := math.Atan2(targetY-s.Y, targetX-s.X)
	diff := NormalizeAngle(desired - s.Angle)

	turn := TurnRate
	if s.scaled {
		turn = 1 - math.Pow(1-TurnRate, dt*ReferenceFPS)
	}
	s.Angle = NormalizeAngle(s.Angle + diff*turn)

	s.Speed = BaseSpeed
	if dash {
		s.Speed = DashSpeed
	}
	step := s.Speed
	if s.scaled {
		step = s.Speed * dt * ReferenceFPS
	}

	s.X += math.Cos(s.Angle) * step
	s.Y += math.Sin(s.Angle) * step

	s.history = append(s.history, Vec{})
	copy(s.history[1:], s.history)
	s.history[0] = Vec{X: s.X, Y: s.Y}
	if n := s.historyCap(); len(s.history) > n {
		s.history = s.history[:n]
	}
}

// Grow 增长长度与分数，并重新计算半径
func (s *Snake) Grow(amount float64) {
	if s.dead {
		return
	}
	s.Length += amount
	s.Score += amount * 10
	s.Radius = radiusFor(s.Length)
}

// Segments 按尾到头的顺序返回身体节，头部最后绘制在最上层
func (s *Snake) Segments() []Segment {
	if s.dead {
		return nil
	}
	n := int(s.Length)
	out := make([]Segment, 0, n)
	for i := n - 1; i >= 0; i-- {
		idx := i * GapStride
		if idx >= len(s.history) {
			continue
		}
		p := s.history[idx]
		out = append(out, Segment{X: p.X, Y: p.Y, Radius: s.Radius, Color: s.Color, Head: i == 0})
	}
	return out
}

// Eyes 返回左右两只眼睛的中心
func (s *Snake) Eyes() [2]Vec {
	off := s.Radius * 0.6
	return [2]Vec{
		{X: s.X + math.Cos(s.Angle-0.5)*off, Y: s.Y + math.Sin(s.Angle-0.5)*off},
		{X: s.X + math.Cos(s.Angle+0.5)*off, Y: s.Y + math.Sin(s.Angle+0.5)*off},
	}
}

// LabelAnchor 名字标签位置（头部上方）
func (s *Snake) LabelAnchor() Vec {
	return Vec{X: s.X, Y: s.Y - s.Radius - 10}
}
