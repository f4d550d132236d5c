package survey

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"behavior-go/internal/models"
)

// Stage is the position of a session in the assessment wizard. Stages
// only move forward.
type Stage int

const (
	// StageConsent waits for the participant's name.
	StageConsent Stage = iota
	// StageSPSRQ waits for the SPSRQ submission.
	StageSPSRQ
	// StageFollowUp waits for the RSS or ASQ submission.
	StageFollowUp
	// StageSummary is terminal; the summary can be viewed any number of
	// times.
	StageSummary
)

func (s Stage) String() string {
	switch s {
	case StageConsent:
		return "consent"
	case StageSPSRQ:
		return "spsrq"
	case StageFollowUp:
		return "follow-up"
	case StageSummary:
		return "summary"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Summary is the outcome of a completed session.
type Summary struct {
	Participant models.Participant
	Score       ScoreSummary
	Branch      models.QuestionSet
	Kind        string
	Stimuli     []Stimulus
	CompletedAt time.Time
}

// ExportFilename is the sticker export file name for the participant.
func (s Summary) ExportFilename() string {
	return s.Participant.ExportFilename()
}

// Session carries one participant through consent, SPSRQ, the follow-up
// questionnaire and the summary.
type Session struct {
	ID string

	mu          sync.Mutex
	bank        *models.Bank
	stage       Stage
	participant models.Participant
	spsrq       *Responses
	followUp    *Responses
	branch      models.QuestionSet
	completedAt time.Time
	now         func() time.Time
}

// NewSession starts a session at the consent stage.
func NewSession(id string, bank *models.Bank) *Session {
	return &Session{ID: id, bank: bank, stage: StageConsent, now: time.Now}
}

// Stage returns the current stage.
func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// Participant returns the consenting participant. It is the zero value
// before consent.
func (s *Session) Participant() models.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.participant
}

// Branch returns the follow-up set chosen after the SPSRQ, or "" before.
func (s *Session) Branch() models.QuestionSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.branch
}

// Consent records the participant and opens the SPSRQ.
func (s *Session) Consent(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != StageConsent {
		return fmt.Errorf("%w: consent already given", models.ErrStageOrder)
	}
	p, err := models.NewParticipant(name)
	if err != nil {
		return err
	}
	s.participant = p
	s.stage = StageSPSRQ
	return nil
}

// CurrentSet returns the question set awaiting answers at the current
// stage.
func (s *Session) CurrentSet() (models.QuestionSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentSet()
}

func (s *Session) currentSet() (models.QuestionSet, error) {
	switch s.stage {
	case StageSPSRQ:
		return models.SetSPSRQ, nil
	case StageFollowUp:
		return s.branch, nil
	}
	return "", fmt.Errorf("%w: no questionnaire open at %s stage", models.ErrStageOrder, s.stage)
}

// SubmitSPSRQ scores the SPSRQ answers and fixes the follow-up branch. The
// stage only advances when every SPSRQ question has an answer.
func (s *Session) SubmitSPSRQ(answers map[string]int) (ScoreSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != StageSPSRQ {
		return ScoreSummary{}, fmt.Errorf("%w: SPSRQ is not open at %s stage", models.ErrStageOrder, s.stage)
	}
	questions, err := s.bank.Questions(models.SetSPSRQ)
	if err != nil {
		return ScoreSummary{}, err
	}
	responses, err := collect(models.SetSPSRQ, questions, answers)
	if err != nil {
		return ScoreSummary{}, err
	}
	score, err := Score(questions, responses)
	if err != nil {
		return ScoreSummary{}, err
	}

	responses.Freeze()
	s.spsrq = responses
	s.branch = score.Branch()
	s.stage = StageFollowUp
	return score, nil
}

// SubmitFollowUp stores the answers for the branch-selected questionnaire
// and completes the session. When finalize is non-nil it receives the
// outcome before the session advances; if it fails the session stays at
// the follow-up stage so the submission can be retried.
func (s *Session) SubmitFollowUp(answers map[string]int, finalize func(Summary) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != StageFollowUp {
		return fmt.Errorf("%w: follow-up questionnaire is not open at %s stage", models.ErrStageOrder, s.stage)
	}
	questions, err := s.bank.Questions(s.branch)
	if err != nil {
		return err
	}
	responses, err := collect(s.branch, questions, answers)
	if err != nil {
		return err
	}
	responses.Freeze()

	completedAt := s.now()
	if finalize != nil {
		summary, err := s.summarize(responses, completedAt)
		if err != nil {
			return err
		}
		if err := finalize(summary); err != nil {
			return err
		}
	}

	s.followUp = responses
	s.stage = StageSummary
	s.completedAt = completedAt
	return nil
}

// Score recomputes the SPSRQ score once the SPSRQ has been submitted.
func (s *Session) Score() (ScoreSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.spsrq == nil {
		return ScoreSummary{}, fmt.Errorf("%w: SPSRQ not submitted", models.ErrStageOrder)
	}
	questions, err := s.bank.Questions(models.SetSPSRQ)
	if err != nil {
		return ScoreSummary{}, err
	}
	return Score(questions, s.spsrq)
}

// Summary recomputes the outcome from the stored responses. Calling it
// repeatedly yields the same result.
func (s *Session) Summary() (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != StageSummary {
		return Summary{}, fmt.Errorf("%w: assessment not complete", models.ErrStageOrder)
	}
	return s.summarize(s.followUp, s.completedAt)
}

func (s *Session) summarize(followUp *Responses, completedAt time.Time) (Summary, error) {
	spsrqQuestions, err := s.bank.Questions(models.SetSPSRQ)
	if err != nil {
		return Summary{}, err
	}
	score, err := Score(spsrqQuestions, s.spsrq)
	if err != nil {
		return Summary{}, err
	}
	followUpQuestions, err := s.bank.Questions(s.branch)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Participant: s.participant,
		Score:       score,
		Branch:      s.branch,
		Kind:        StimulusKind(s.branch),
		Stimuli:     TopStimuli(followUpQuestions, followUp, TopStimuliLimit),
		CompletedAt: completedAt,
	}, nil
}

// collect builds a responses collection from submitted answers. Nothing is
// returned unless every question is answered within range.
func collect(set models.QuestionSet, questions []models.Question, answers map[string]int) (*Responses, error) {
	responses := NewResponses(set)
	var missing []string
	for _, q := range questions {
		qid := q.QualifiedID(set)
		rating, ok := answers[qid]
		if !ok {
			missing = append(missing, qid)
			continue
		}
		if err := responses.Record(qid, rating); err != nil {
			return nil, err
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %d of %d %s questions unanswered (%s)",
			models.ErrIncompleteSubmission, len(missing), len(questions), set, strings.Join(missing, ", "))
	}
	return responses, nil
}
