package engine

import "errors"

var (
	ErrInvalidCollisionMode = errors.New("engine: invalid collision mode")
	ErrNoObstacleMap        = errors.New("engine: no obstacle map")
	ErrSpawnOutOfBounds     = errors.New("engine: spawn point outside map")
	ErrSnapshotOutOfRange   = errors.New("engine: snapshot index outside body ring")
)
