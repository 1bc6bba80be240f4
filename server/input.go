package server

// InputKind 客户端意图类型
type InputKind int

const (
	InputPointer InputKind = iota
	InputDash
	InputStart
)

// Input 客户端输入（意图），由 Tick 线程解释后交给世界
type Input struct {
	Kind InputKind
	X    float64
	Y    float64
	W    float64 // 客户端视口宽
	H    float64 // 客户端视口高
	Dash bool
	Name string
	Seq  int64 // 客户端本地序列号，用于去重
}

// InputMessage 入站 JSON 文本消息
// 示例：{"type":"pointer","x":412,"y":300,"w":800,"h":600,"seq":17}
//
//	{"type":"dash","on":true}
//	{"type":"start","name":"alice"}
type InputMessage struct {
	Type string  `json:"type"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
	W    float64 `json:"w,omitempty"`
	H    float64 `json:"h,omitempty"`
	On   bool    `json:"on,omitempty"`
	Name string  `json:"name,omitempty"`
	Seq  int64   `json:"seq,omitempty"`
}

// ToInput 将消息转换为 Input；未知类型返回 false
func (m InputMessage) ToInput() (Input, bool) {
	switch m.Type {
	case "pointer":
		return Input{Kind: InputPointer, X: m.X, Y: m.Y, W: m.W, H: m.H, Seq: m.Seq}, true
	case "dash":
		return Input{Kind: InputDash, Dash: m.On, Seq: m.Seq}, true
	case "start":
		return Input{Kind: InputStart, Name: m.Name, Seq: m.Seq}, true
	default:
		return Input{}, false
	}
}
