package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"behavior-go/internal/export"
	"behavior-go/internal/models"
	"behavior-go/internal/survey"
	"behavior-go/internal/utils"
	"behavior-go/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionArchive stores completed assessments. It is optional.
type SessionArchive interface {
	SaveSession(ctx context.Context, summary survey.Summary, exportPath string) (*models.SessionRecord, error)
}

type AssessmentHandler struct {
	log       *zap.Logger
	bank      *models.Bank
	exportDir string
	archive   SessionArchive
}

// NewAssessmentHandler serves the questionnaires. Completed sessions are
// exported to exportDir and, when archive is non-nil, archived.
func NewAssessmentHandler(log *zap.Logger, bank *models.Bank, exportDir string, archive SessionArchive) *AssessmentHandler {
	return &AssessmentHandler{log: log, bank: bank, exportDir: exportDir, archive: archive}
}

// Start renders the questionnaire open at the session's stage.
func (h *AssessmentHandler) Start(c *gin.Context) {
	s := SessionFrom(c)
	set, err := s.CurrentSet()
	if err != nil {
		c.Redirect(http.StatusSeeOther, StagePath(s.Stage()))
		return
	}
	h.renderQuestionnaire(c, http.StatusOK, s, set, nil, nil, nil)
}

// SubmitSPSRQ scores the SPSRQ and moves on to the selected follow-up.
func (h *AssessmentHandler) SubmitSPSRQ(c *gin.Context) {
	h.submit(c, models.SetSPSRQ, func(s *survey.Session, answers map[string]int) error {
		score, err := s.SubmitSPSRQ(answers)
		if err != nil {
			return err
		}
		h.log.Info("SPSRQ scored",
			zap.String("session", s.ID),
			zap.Int("reward", score.RewardTotal),
			zap.Int("punishment", score.PunishmentTotal),
			zap.String("branch", string(score.Branch())),
		)
		return nil
	})
}

// SubmitFollowUp stores the RSS or ASQ answers, writes the sticker export
// and shows the summary. The session only completes once the export is on
// disk.
func (h *AssessmentHandler) SubmitFollowUp(c *gin.Context) {
	s := SessionFrom(c)
	set, err := s.CurrentSet()
	if err != nil {
		redirect(c, StagePath(s.Stage()))
		return
	}

	h.submit(c, set, func(s *survey.Session, answers map[string]int) error {
		var path string
		var summary survey.Summary
		err := s.SubmitFollowUp(answers, func(sum survey.Summary) error {
			p, err := export.Save(h.exportDir, sum.Participant, sum.Stimuli)
			if err != nil {
				return &exportError{err: err}
			}
			path, summary = p, sum
			return nil
		})
		if err != nil {
			return err
		}
		h.complete(c.Request.Context(), s, summary, path)
		return nil
	})
}

// exportError marks a sticker export that could not be written.
type exportError struct {
	err error
}

func (e *exportError) Error() string { return "export stimuli: " + e.err.Error() }

func (e *exportError) Unwrap() error { return e.err }

// complete logs and archives a finished session. Archive failures are
// logged; the CSV export is what the tracker consumes.
func (h *AssessmentHandler) complete(ctx context.Context, s *survey.Session, summary survey.Summary, path string) {
	h.log.Info("Assessment complete",
		zap.String("session", s.ID),
		zap.String("participant", summary.Participant.Name),
		zap.String("export", path),
	)

	if h.archive != nil {
		if _, err := h.archive.SaveSession(ctx, summary, path); err != nil {
			h.log.Error("Failed to archive session", zap.String("session", s.ID), zap.Error(err))
		}
	}
}

func (h *AssessmentHandler) submit(c *gin.Context, set models.QuestionSet, apply func(*survey.Session, map[string]int) error) {
	s := SessionFrom(c)
	questions, err := h.bank.Questions(set)
	if err != nil {
		fail(c, h.log, "Questionnaire unavailable", err)
		return
	}

	answers, err := parseAnswers(c, set, questions)
	if err == nil {
		err = apply(s, answers)
	}

	switch {
	case err == nil:
		redirect(c, StagePath(s.Stage()))
	case errors.Is(err, models.ErrValidationFailed), errors.Is(err, models.ErrIncompleteSubmission):
		h.log.Warn("Submission rejected", zap.String("session", s.ID), zap.String("set", string(set)), zap.Error(err))
		h.renderQuestionnaire(c, http.StatusUnprocessableEntity, s, set, answers, missingIDs(set, questions, answers),
			&views.Message{Kind: views.AlertWarning, Text: submissionWarning(err)})
	case errors.Is(err, models.ErrStageOrder):
		redirect(c, StagePath(s.Stage()))
	case errors.As(err, new(*exportError)):
		h.log.Error("Failed to export stimuli", zap.String("session", s.ID), zap.Error(err))
		h.renderQuestionnaire(c, http.StatusInternalServerError, s, set, answers, nil,
			&views.Message{Kind: views.AlertError, Text: "Your answers could not be saved. Please submit them again."})
	default:
		fail(c, h.log, "Could not save answers", err)
	}
}

func (h *AssessmentHandler) renderQuestionnaire(c *gin.Context, status int, s *survey.Session, set models.QuestionSet,
	values map[string]int, missing map[string]bool, message *views.Message) {
	questions, err := h.bank.Questions(set)
	if err != nil {
		fail(c, h.log, "Questionnaire unavailable", err)
		return
	}

	items := make([]views.QuestionItem, 0, len(questions))
	for _, q := range questions {
		qid := q.QualifiedID(set)
		value, ok := values[qid]
		if !ok {
			value = survey.NeutralRating
		}
		items = append(items, views.QuestionItem{QID: qid, Text: q.Text, Value: value, Missing: missing[qid]})
	}

	action := "/assessment/spsrq"
	var banner *views.Message
	if set != models.SetSPSRQ {
		action = "/assessment/followup"
		banner = branchBanner(s)
	}

	render(c, status, set.Title(), views.Questionnaire(views.QuestionnaireData{
		CSRFToken: c.GetString(csrfTokenContextKey),
		Title:     set.Title(),
		Prompt:    set.Prompt(),
		Action:    action,
		Submit:    fmt.Sprintf("Submit %s", set),
		Items:     items,
		Banner:    banner,
		Message:   message,
	}))
}

// branchBanner explains which follow-up questionnaire was chosen.
func branchBanner(s *survey.Session) *views.Message {
	score, err := s.Score()
	if err != nil {
		return nil
	}
	totals := fmt.Sprintf("Total Sensitivity to Reward (SR): %d. Total Sensitivity to Punishment (SP): %d. ",
		score.RewardTotal, score.PunishmentTotal)
	switch {
	case score.Tied():
		return &views.Message{Kind: views.AlertInfo, Text: totals + "Scores are equal. Defaulting to the Reinforcement Survey Schedule (RSS)."}
	case score.Branch() == models.SetRSS:
		return &views.Message{Kind: views.AlertSuccess, Text: totals + "Based on your profile, we will proceed with the Reinforcement Survey Schedule (RSS)."}
	}
	return &views.Message{Kind: views.AlertWarning, Text: totals + "Based on your profile, we will proceed with the Aversive Stimuli Questionnaire (ASQ)."}
}

// parseAnswers reads one rating per question from the form. Fields that
// were not submitted are left out so the session can report them.
func parseAnswers(c *gin.Context, set models.QuestionSet, questions []models.Question) (map[string]int, error) {
	answers := make(map[string]int, len(questions))
	var invalid []string
	for _, q := range questions {
		qid := q.QualifiedID(set)
		raw, ok := c.GetPostForm(qid)
		if !ok {
			continue
		}
		rating, err := utils.ParseRating(raw, survey.MinRating, survey.MaxRating)
		if err != nil {
			invalid = append(invalid, fmt.Sprintf("%s (%v)", qid, err))
			continue
		}
		answers[qid] = rating
	}
	if len(invalid) > 0 {
		return answers, fmt.Errorf("%w: %s", models.ErrValidationFailed, strings.Join(invalid, "; "))
	}
	return answers, nil
}

func missingIDs(set models.QuestionSet, questions []models.Question, answers map[string]int) map[string]bool {
	missing := make(map[string]bool)
	for _, q := range questions {
		qid := q.QualifiedID(set)
		if _, ok := answers[qid]; !ok {
			missing[qid] = true
		}
	}
	return missing
}

func submissionWarning(err error) string {
	if errors.Is(err, models.ErrIncompleteSubmission) {
		return "Please answer every question before submitting: " + err.Error()
	}
	return "Some answers could not be read: " + err.Error()
}
