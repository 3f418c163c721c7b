package locale

// Partial-match scores used by the built-in behaviours. An exact match is
// always 1 and a candidate with nothing in common is always 0.
const (
	scoreExact     = 1.0
	scorePreferred = 0.8
	scoreSecondary = 0.75
)

type behaviourKind int

const (
	behaviourRequirePerfectMatch behaviourKind = iota
	behaviourPreferLanguageMatch
	behaviourPreferRegionMatch
	behaviourCustom
)

// ScoreFunc scores a candidate key against a requested key. Results are
// clamped to [0, 1] before use.
type ScoreFunc func(requested, candidate Key) float64

// MatchBehaviour decides how imperfectly matching localizations are ranked
// during resolution.
type MatchBehaviour struct {
	kind  behaviourKind
	score ScoreFunc
}

// RequirePerfectMatch scores every candidate that is not an exact
// (language, region) match as 0.
func RequirePerfectMatch() MatchBehaviour {
	return MatchBehaviour{kind: behaviourRequirePerfectMatch}
}

// PreferLanguageMatch ranks language-only matches above region-only matches.
func PreferLanguageMatch() MatchBehaviour {
	return MatchBehaviour{kind: behaviourPreferLanguageMatch}
}

// PreferRegionMatch ranks region-only matches above language-only matches.
func PreferRegionMatch() MatchBehaviour {
	return MatchBehaviour{kind: behaviourPreferRegionMatch}
}

// Custom delegates scoring to the supplied function.
func Custom(fn ScoreFunc) MatchBehaviour {
	return MatchBehaviour{kind: behaviourCustom, score: fn}
}

// Score rates how well the candidate key k serves a request for the given
// localization, in [0, 1]. An exact match always scores 1 regardless of
// behaviour.
func (k Key) Score(requested Key, behaviour MatchBehaviour) float64 {
	if behaviour.kind == behaviourCustom && behaviour.score != nil {
		return clampScore(behaviour.score(requested, k))
	}

	languageMatches := sameLanguage(k.Language, requested.Language)
	regionMatches := sameRegion(k.Region, requested.Region)

	if languageMatches && regionMatches {
		return scoreExact
	}

	switch behaviour.kind {
	case behaviourPreferLanguageMatch:
		if languageMatches {
			return scorePreferred
		}
		if regionMatches {
			return scoreSecondary
		}
	case behaviourPreferRegionMatch:
		if regionMatches {
			return scorePreferred
		}
		if languageMatches {
			return scoreSecondary
		}
	case behaviourRequirePerfectMatch, behaviourCustom:
	}

	return 0
}

func clampScore(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}
