package engine

type EventType int

const (
	EventSelfCollision EventType = iota
	EventOtherCollision
	EventWallCollision
	EventBump
	EventDie
	EventGrow
	EventShrink
	EventRespawn
	EventStateChanged
)

func (t EventType) String() string {
	switch t {
	case EventSelfCollision:
		return "self-collision"
	case EventOtherCollision:
		return "other-collision"
	case EventWallCollision:
		return "wall-collision"
	case EventBump:
		return "bump"
	case EventDie:
		return "die"
	case EventGrow:
		return "grow"
	case EventShrink:
		return "shrink"
	case EventRespawn:
		return "respawn"
	case EventStateChanged:
		return "state-changed"
	}
	return "unknown"
}

type Event struct {
	Type  EventType
	Snake string // ID of the snake that raised the event
	Other string // Peer involved in an other collision.
	X, Y  float64
	Data  int // Generic payload (new state, segment count).
}

type EventHandler func(Event)

// EventBus dispatches synchronously on the caller's goroutine.
// Subscribe before the first tick; handlers must not block.
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
	if eb == nil {
		return
	}
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
