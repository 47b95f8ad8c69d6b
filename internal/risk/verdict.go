package risk

const (
	// MinLevel and MaxLevel bound the danger scale.
	MinLevel = 1
	MaxLevel = 5

	// BlockThreshold is the level at or above which execution is refused
	// outright. There is no bypass, including --yes.
	BlockThreshold = 4
)

// Verdict is the merged risk assessment for a synthesized command. It is a
// pure function of the command text and the model's self-reported level.
type Verdict struct {
	PatternFlag bool
	ModelLevel  int
	FinalLevel  int
}

// Merge combines the pattern detector with the model-reported danger level.
// The model level is clamped to [MinLevel, MaxLevel]; a pattern match pins
// the final level to MaxLevel.
func Merge(command string, modelLevel int) Verdict {
	lvl := clamp(modelLevel)
	v := Verdict{
		PatternFlag: IsDangerous(command),
		ModelLevel:  lvl,
		FinalLevel:  lvl,
	}
	if v.PatternFlag {
		v.FinalLevel = MaxLevel
	}
	return v
}

// Blocked reports whether the verdict forbids execution.
func (v Verdict) Blocked() bool {
	return v.FinalLevel >= BlockThreshold
}

func clamp(n int) int {
	if n < MinLevel {
		return MinLevel
	}
	if n > MaxLevel {
		return MaxLevel
	}
	return n
}
