package turn

type State uint8

const (
	StateIdle State = iota
	StateReady
	StateActive
	StatePaused
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReady:
		return "ready"
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

type EndReason uint8

const (
	EndReasonNone EndReason = iota
	EndReasonTimerExpired
	EndReasonManual
	EndReasonSkipCycleComplete
	EndReasonCompletedAllCards
)

func (r EndReason) String() string {
	switch r {
	case EndReasonNone:
		return "none"
	case EndReasonTimerExpired:
		return "timerExpired"
	case EndReasonManual:
		return "manual"
	case EndReasonSkipCycleComplete:
		return "skipCycleComplete"
	case EndReasonCompletedAllCards:
		return "completedAllCards"
	default:
		return "unknown"
	}
}
