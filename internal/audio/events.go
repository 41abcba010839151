package audio

import "snakenet/internal/engine"

// Player is anything that can play an effect.
type Player interface {
	Play(Sound)
}

// eventSounds maps engine events to the effects they trigger.
var eventSounds = map[engine.EventType]Sound{
	engine.EventBump:    SoundBump,
	engine.EventDie:     SoundDie,
	engine.EventGrow:    SoundGrow,
	engine.EventShrink:  SoundShrink,
	engine.EventRespawn: SoundRespawn,
}

// Subscribe plays effects for events raised by the snake with the given ID.
// An empty ID follows every snake.
func Subscribe(bus *engine.EventBus, p Player, snakeID string) {
	for et, snd := range eventSounds {
		snd := snd
		bus.Subscribe(et, func(e engine.Event) {
			if snakeID == "" || e.Snake == snakeID {
				p.Play(snd)
			}
		})
	}
}
