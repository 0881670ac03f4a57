package services

// Difficulty is the tier of a technical question.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyModerate  Difficulty = "moderate"
	DifficultyDifficult Difficulty = "difficult"
)

// BaseDifficulty maps the candidate's declared proficiency to the floor tier.
// Unknown labels default to moderate.
func BaseDifficulty(proficiency string) Difficulty {
	switch proficiency {
	case "Beginner":
		return DifficultyEasy
	case "Intermediate":
		return DifficultyModerate
	case "Advanced", "Expert":
		return DifficultyDifficult
	default:
		return DifficultyModerate
	}
}

// PlanDifficulty decides the tier for one technical question. The baseline
// rises with the question's ordinal (1-based within the technical phase),
// then the most recent score overrides: a weak answer steps the tier down
// one level but never below the candidate's base tier, and a strong answer
// forces difficult.
func PlanDifficulty(proficiency string, ordinal int, lastScore *int) Difficulty {
	base := BaseDifficulty(proficiency)

	var tier Difficulty
	switch {
	case ordinal <= 1:
		tier = base
	case ordinal == 2:
		tier = stepUp(base)
	default:
		tier = DifficultyDifficult
	}

	if lastScore != nil {
		switch {
		case *lastScore < 4:
			tier = maxDifficulty(base, stepDown(tier))
		case *lastScore > 7:
			tier = DifficultyDifficult
		}
	}

	return tier
}

func stepUp(d Difficulty) Difficulty {
	if d == DifficultyEasy {
		return DifficultyModerate
	}
	return DifficultyDifficult
}

func stepDown(d Difficulty) Difficulty {
	if d == DifficultyDifficult {
		return DifficultyModerate
	}
	return DifficultyEasy
}

func rankOf(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 0
	case DifficultyModerate:
		return 1
	default:
		return 2
	}
}

func maxDifficulty(a, b Difficulty) Difficulty {
	if rankOf(a) >= rankOf(b) {
		return a
	}
	return b
}
