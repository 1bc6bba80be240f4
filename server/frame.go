package server

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"snakearena/sim"
)

// DrawOp 一条绘制指令，客户端按顺序在 canvas 上重放
type DrawOp struct {
	Op    string  `json:"op" msgpack:"op"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	R     float64 `json:"r,omitempty" msgpack:"r,omitempty"`
	W     float64 `json:"w,omitempty" msgpack:"w,omitempty"`
	H     float64 `json:"h,omitempty" msgpack:"h,omitempty"`
	Color string  `json:"color,omitempty" msgpack:"color,omitempty"`
	Glow  bool    `json:"glow,omitempty" msgpack:"glow,omitempty"`
	Text  string  `json:"text,omitempty" msgpack:"text,omitempty"`
}

// FrameRecorder 实现 sim.Screen，把一帧的绘制调用记录成指令列表
type FrameRecorder struct {
	ops []DrawOp
}

func NewFrameRecorder() *FrameRecorder {
	return &FrameRecorder{ops: make([]DrawOp, 0, 1024)}
}

// Reset 复用底层数组，开始新的一帧
func (f *FrameRecorder) Reset() { f.ops = f.ops[:0] }

// Ops 当前帧的指令；下一次 Reset 后失效
func (f *FrameRecorder) Ops() []DrawOp { return f.ops }

func (f *FrameRecorder) Clear() {
	f.ops = append(f.ops, DrawOp{Op: "clear"})
}

func (f *FrameRecorder) Camera(x, y float64) {
	f.ops = append(f.ops, DrawOp{Op: "camera", X: round1(x), Y: round1(y)})
}

func (f *FrameRecorder) ResetCamera() {
	f.ops = append(f.ops, DrawOp{Op: "reset"})
}

func (f *FrameRecorder) DrawGrid(w, h float64) {
	f.ops = append(f.ops, DrawOp{Op: "grid", W: w, H: h})
}

func (f *FrameRecorder) DrawCircle(x, y, r float64, color string, glow bool) {
	f.ops = append(f.ops, DrawOp{Op: "circle", X: round1(x), Y: round1(y), R: round1(r), Color: color, Glow: glow})
}

func (f *FrameRecorder) DrawLabel(x, y float64, text string) {
	f.ops = append(f.ops, DrawOp{Op: "label", X: round1(x), Y: round1(y), Text: text})
}

// round1 保留一位小数，减小帧体积
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// FrameMessage 每 Tick 下发的一帧
type FrameMessage struct {
	Type        string     `json:"type" msgpack:"type"`
	Tick        int64      `json:"tick" msgpack:"tick"`
	Score       float64    `json:"score" msgpack:"score"`
	Ops         []DrawOp   `json:"ops" msgpack:"ops"`
	Leaderboard []sim.Rank `json:"leaderboard" msgpack:"leaderboard"`
}

// GameOverMessage 玩家死亡通知
type GameOverMessage struct {
	Type  string  `json:"type" msgpack:"type"`
	Score float64 `json:"score" msgpack:"score"`
	Best  float64 `json:"best" msgpack:"best"`
}

// WelcomeMessage 连接建立后的第一条消息
type WelcomeMessage struct {
	Type    string `json:"type" msgpack:"type"`
	Session string `json:"session" msgpack:"session"`
	Codec   string `json:"codec" msgpack:"codec"`
}

// Codec 出站消息编码；入站始终是 JSON 文本
type Codec interface {
	Name() string
	Encode(v any) ([]byte, error)
	MessageType() int // websocket.TextMessage 或 websocket.BinaryMessage
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }
func (jsonCodec) Encode(v any) ([]byte, error) { return json.Marshal(v) }
func (jsonCodec) MessageType() int { return websocket.TextMessage }

type msgpackCodec struct{}

func (msgpackCodec) Name() string { return "msgpack" }
func (msgpackCodec) Encode(v any) ([]byte, error) { return msgpack.Marshal(v) }
func (msgpackCodec) MessageType() int { return websocket.BinaryMessage }

// CodecFor 按名称选择编码，空字符串为 json
func CodecFor(name string) (Codec, error) {
	switch name {
	case "", "json":
		return jsonCodec{}, nil
	case "msgpack":
		return msgpackCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}
