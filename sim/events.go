package sim

type EventType int

const (
	EventFoodEaten EventType = iota
	EventSnakeDied
	EventBotSpawned
	EventGameOver
)

// Event 模拟内部事件，在 Update 调用中同步派发
type Event struct {
	Type   EventType
	X, Y   float64
	Name   string
	Player bool
	Value  float64 // 食物价值或最终分数
	Length float64
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
