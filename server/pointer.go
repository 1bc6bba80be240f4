package server

import "snakearena/sim"

// pointerInput 会话的指针状态，只在 Tick 线程读写
type pointerInput struct {
	state sim.PointerState
}

// newPointerInput 默认视口 800x600，指针居中（蛇保持直行）
func newPointerInput() *pointerInput {
	return &pointerInput{state: sim.PointerState{X: 400, Y: 300, ScreenW: 800, ScreenH: 600}}
}

func (p *pointerInput) Pointer() sim.PointerState { return p.state }

func (p *pointerInput) apply(in Input) {
	switch in.Kind {
	case InputPointer:
		p.state.X, p.state.Y = in.X, in.Y
		if in.W > 0 && in.H > 0 {
			p.state.ScreenW, p.state.ScreenH = in.W, in.H
		}
	case InputDash:
		p.state.Dash = in.Dash
	}
}
