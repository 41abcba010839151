package session

type GameState int

const (
	StatePlaying GameState = iota
	StateOver              // score floor or time limit reached
)

func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateOver:
		return "over"
	}
	return "unknown"
}

// OverReason says why a session ended.
type OverReason int

const (
	ReasonNone OverReason = iota
	ReasonScore
	ReasonTime
)

func (r OverReason) String() string {
	switch r {
	case ReasonScore:
		return "score"
	case ReasonTime:
		return "time"
	}
	return "none"
}
