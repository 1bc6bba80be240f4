package sim

// PointerState 指针输入快照（屏幕坐标）
type PointerState struct {
	X       float64
	Y       float64
	ScreenW float64
	ScreenH float64
	Dash    bool // 按下即冲刺
}

// Input 指针/触摸输入源
type Input interface {
	Pointer() PointerState
}

// Screen 绘制端口，由宿主实现（WebSocket 帧、终端、桌面窗口）
type Screen interface {
	Clear()
	Camera(x, y float64) // 将 (x, y) 置于视口中心
	ResetCamera()
	DrawGrid(width, height float64)
	DrawCircle(x, y, radius float64, color string, glow bool)
	DrawLabel(x, y float64, text string)
}

// Result 一局游戏的最终结果
type Result struct {
	Name   string
	Score  float64
	Length float64
	Ticks  int64
	Best   float64 // 包含本局在内的历史最高分
}

// Host 宿主通知通道，目前只有游戏结束
type Host interface {
	GameOver(r Result)
}

// HostFunc 让普通函数实现 Host
type HostFunc func(Result)

func (f HostFunc) GameOver(r Result) { f(r) }

// ScoreStore 持久化端口
type ScoreStore interface {
	Record(r Result) error
	Best() (float64, error)
}

// Ports 传入世界的全部外部协作者，均可为 nil
type Ports struct {
	Input  Input
	Screen Screen
	Host   Host
	Scores ScoreStore
}
