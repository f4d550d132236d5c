package survey

import (
	"fmt"

	"behavior-go/internal/models"
)

const (
	MinRating     = 1
	MaxRating     = 7
	NeutralRating = 4
)

// Responses collects one rating per question of a single set. Each rating
// carries an explicit answered flag so that a missing answer is never
// confused with a neutral one. Responses are frozen on submit.
type Responses struct {
	set      models.QuestionSet
	ratings  map[string]int
	answered map[string]bool
	frozen   bool
}

// NewResponses returns an empty collection for a question set.
func NewResponses(set models.QuestionSet) *Responses {
	return &Responses{
		set:      set,
		ratings:  make(map[string]int),
		answered: make(map[string]bool),
	}
}

// Set is the question set the responses belong to.
func (r *Responses) Set() models.QuestionSet { return r.set }

// Record stores the rating for a qualified question id.
func (r *Responses) Record(qid string, rating int) error {
	if r.frozen {
		return fmt.Errorf("%w: %s responses already submitted", models.ErrStageOrder, r.set)
	}
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: rating for %s must be between %d and %d, got %d",
			models.ErrValidationFailed, qid, MinRating, MaxRating, rating)
	}
	r.ratings[qid] = rating
	r.answered[qid] = true
	return nil
}

// Rating returns the rating of a question and whether it was answered.
func (r *Responses) Rating(qid string) (int, bool) {
	if !r.answered[qid] {
		return 0, false
	}
	return r.ratings[qid], true
}

// Answered reports whether the question has an explicit answer.
func (r *Responses) Answered(qid string) bool {
	return r.answered[qid]
}

// Len is the number of answered questions.
func (r *Responses) Len() int {
	return len(r.answered)
}

// Missing lists the qualified ids of questions that have no answer, in
// question order.
func (r *Responses) Missing(questions []models.Question) []string {
	var missing []string
	for _, q := range questions {
		qid := q.QualifiedID(r.set)
		if !r.answered[qid] {
			missing = append(missing, qid)
		}
	}
	return missing
}

// Freeze prevents any further Record calls.
func (r *Responses) Freeze() { r.frozen = true }

// Frozen reports whether the responses were submitted.
func (r *Responses) Frozen() bool { return r.frozen }
