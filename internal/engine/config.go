package engine

// Body layout.
// A visible part is drawn every PointDist slots of the body ring, so parts
// sit PartDist pixels apart when the snake moves at BaseStep.
const (
	PointDist  = 3
	BaseStep   = 4
	PartDist   = PointDist * BaseStep // 12
	StartParts = 5
	MaxParts   = 40
)

// Ring capacities.
const (
	MaxPoints     = (MaxParts + 1) * PointDist
	TrailCapacity = MaxPoints * 6
)

// Steering and speed.
const (
	TurnStep         = 10.0 // degrees per steering input
	MaxStep          = 6    // largest plausible pixels-per-tick
	MinSpeedModifier = 1 - BaseStep
	MaxSpeedModifier = MaxStep - BaseStep
)

// Collision geometry (in pixels).
// Segment X/Y is the top-left corner of a PartSize box.
const (
	PartSize       = 12.0
	CollisionInset = 2.0
	WrapTolerance  = 5.0
)

// Grace windows.
// SelfGraceSlots is the neck exemption for self collision; the value is
// empirically tuned and kept as-is.
const (
	SelfGraceSlots  = PointDist * 3
	CrashGraceTicks = StartParts * PointDist
	// RespawnGraceTicks is the INVULNERABLE window after the respawn walk,
	// whatever the snake's length.
	RespawnGraceTicks = StartParts * PointDist
)
