package match

type Stage uint8

const (
	StageIntake Stage = iota + 1
	StageRoundIntro
	StageTurnHandoff
	StageTurn
	StageTurnPaused
	StageRecap
	StageRoundEnd
	StageGameEnd
)

func (s Stage) String() string {
	switch s {
	case StageIntake:
		return "intake"
	case StageRoundIntro:
		return "roundIntro"
	case StageTurnHandoff:
		return "turnHandoff"
	case StageTurn:
		return "turn"
	case StageTurnPaused:
		return "turnPaused"
	case StageRecap:
		return "recap"
	case StageRoundEnd:
		return "roundEnd"
	case StageGameEnd:
		return "gameEnd"
	default:
		return "unknown"
	}
}
