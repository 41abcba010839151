package engine

import (
	"fmt"
	"strings"
)

// State is the lifecycle state of a snake.
type State int

const (
	StateUnknown State = iota
	StateActive
	StateInvulnerable
	StateCrashed
	StateInvisible // reserved, never entered
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateInvulnerable:
		return "invulnerable"
	case StateCrashed:
		return "crashed"
	case StateInvisible:
		return "invisible"
	}
	return "unknown"
}

// CollisionMode selects which collision checks run for a session.
type CollisionMode uint8

const (
	CollideWall CollisionMode = 1 << iota
	CollideOwn
	CollideOther

	collideAll = CollideWall | CollideOwn | CollideOther
)

func (m CollisionMode) Has(f CollisionMode) bool { return m&f != 0 }

// Valid reports whether m only uses known bits.
func (m CollisionMode) Valid() bool { return m&^collideAll == 0 }

func (m CollisionMode) String() string {
	var parts []string
	if m.Has(CollideWall) {
		parts = append(parts, "wall")
	}
	if m.Has(CollideOwn) {
		parts = append(parts, "own")
	}
	if m.Has(CollideOther) {
		parts = append(parts, "other")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ParseCollisionMode accepts "wall", "own" and "other" flag names.
func ParseCollisionMode(names []string) (CollisionMode, error) {
	var m CollisionMode
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "wall":
			m |= CollideWall
		case "own", "self":
			m |= CollideOwn
		case "other":
			m |= CollideOther
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidCollisionMode, n)
		}
	}
	return m, nil
}
