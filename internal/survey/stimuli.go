package survey

import (
	"sort"

	"behavior-go/internal/models"
)

// TopStimuliLimit is the number of stimuli carried into the export.
const TopStimuliLimit = 5

// Stimulus is one ranked follow-up item.
type Stimulus struct {
	QID    string
	Text   string
	Rating int
}

// StimulusKind labels follow-up items as reinforcers (RSS) or punishers
// (ASQ).
func StimulusKind(set models.QuestionSet) string {
	if set == models.SetRSS {
		return "Reinforcer"
	}
	return "Punisher"
}

// TopStimuli returns at most limit answered questions sorted by rating,
// highest first. Equal ratings keep question order.
func TopStimuli(questions []models.Question, responses *Responses, limit int) []Stimulus {
	stimuli := make([]Stimulus, 0, len(questions))
	for _, q := range questions {
		qid := q.QualifiedID(responses.Set())
		rating, ok := responses.Rating(qid)
		if !ok {
			continue
		}
		stimuli = append(stimuli, Stimulus{QID: qid, Text: q.Text, Rating: rating})
	}

	sort.SliceStable(stimuli, func(i, j int) bool {
		return stimuli[i].Rating > stimuli[j].Rating
	})

	if limit >= 0 && len(stimuli) > limit {
		stimuli = stimuli[:limit]
	}
	return stimuli
}
