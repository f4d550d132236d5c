package survey

import (
	"fmt"
	"strings"

	"behavior-go/internal/metrics"
	"behavior-go/internal/models"
)

// Dominant names the stronger SPSRQ sensitivity.
type Dominant string

const (
	DominantReward     Dominant = "Reward"
	DominantPunishment Dominant = "Punishment"
)

// ScoreSummary is derived from SPSRQ responses and recomputed on demand.
type ScoreSummary struct {
	RewardTotal     int
	PunishmentTotal int
	Dominant        Dominant
	RewardMean      float64
	PunishmentMean  float64
	RewardSD        float64
	PunishmentSD    float64
}

// Branch returns the follow-up questionnaire for the score. Equal totals
// default to the reward path.
func (s ScoreSummary) Branch() models.QuestionSet {
	if s.PunishmentTotal > s.RewardTotal {
		return models.SetASQ
	}
	return models.SetRSS
}

// Tied reports whether the totals are equal and the branch came from the
// tie-break.
func (s ScoreSummary) Tied() bool {
	return s.RewardTotal == s.PunishmentTotal
}

// Score aggregates SPSRQ responses per category. Every question must be
// answered.
func Score(questions []models.Question, responses *Responses) (ScoreSummary, error) {
	if missing := responses.Missing(questions); len(missing) > 0 {
		return ScoreSummary{}, fmt.Errorf("%w: unanswered %s", models.ErrIncompleteSubmission, strings.Join(missing, ", "))
	}

	byCategory := make(map[models.Category][]int, 2)
	for _, q := range questions {
		rating, _ := responses.Rating(q.QualifiedID(responses.Set()))
		byCategory[q.Category] = append(byCategory[q.Category], rating)
	}

	reward := metrics.Describe(byCategory[models.CategoryReward])
	punishment := metrics.Describe(byCategory[models.CategoryPunishment])

	summary := ScoreSummary{
		RewardTotal:     reward.Total,
		PunishmentTotal: punishment.Total,
		RewardMean:      reward.Mean,
		PunishmentMean:  punishment.Mean,
		RewardSD:        reward.SD,
		PunishmentSD:    punishment.SD,
		Dominant:        DominantReward,
	}
	if summary.PunishmentTotal > summary.RewardTotal {
		summary.Dominant = DominantPunishment
	}
	return summary, nil
}
